package httpclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Query builds url.Values from filter maps, dropping nil, empty-string and nil-pointer
// values so that an absent filter never reaches the backend.
func Query(filters map[string]interface{}) url.Values {
	values := url.Values{}
	for key, raw := range filters {
		if s, ok := format(raw); ok {
			values.Set(key, s)
		}
	}
	return values
}

// Add sets key when value is present and returns the same values for chaining.
func Add(values url.Values, key string, value interface{}) url.Values {
	if values == nil {
		values = url.Values{}
	}
	if s, ok := format(value); ok {
		values.Set(key, s)
	}
	return values
}

func format(raw interface{}) (string, bool) {
	if raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return v.Format("2006-01-02"), true
	case fmt.Stringer:
		s := v.String()
		return s, s != ""
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		return format(rv.Elem().Interface())
	}
	s := fmt.Sprint(raw)
	return s, s != ""
}
