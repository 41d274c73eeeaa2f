// Package envelope probes and normalizes backend response bodies. The backend does not
// guarantee one shape: list endpoints answer with records nested under data, a bare data
// array, top-level records or a plain array, and some responses carry a {code, message}
// wrapper while others do not.
package envelope

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Shape names the envelope layout Normalize recognized.
type Shape string

const (
	ShapeDataRecords Shape = "data.records"
	ShapeDataArray   Shape = "data[]"
	ShapeRecords     Shape = "records"
	ShapeArray       Shape = "[]"
	ShapeUnknown     Shape = ""
)

// Result is either Items (Recognized) or Unrecognized, never both.
type Result[T any] struct {
	Shape  Shape
	Items  []T
	Total  int
	Reason string
}

func (r Result[T]) Recognized() bool {
	return r.Shape != ShapeUnknown
}

// Unrecognized builds the negative variant.
func Unrecognized[T any](reason string) Result[T] {
	return Result[T]{Shape: ShapeUnknown, Reason: reason}
}

// Normalize reconstructs a list from any of the known shapes. A missing total falls back
// to the number of items.
func Normalize[T any](body []byte) Result[T] {
	if len(body) == 0 {
		return Unrecognized[T]("empty body")
	}
	if !gjson.ValidBytes(body) {
		return Unrecognized[T]("body is not valid JSON")
	}
	root := gjson.ParseBytes(body)

	if records := root.Get("data.records"); records.IsArray() {
		return decode[T](ShapeDataRecords, records, root.Get("data.total"))
	}
	if data := root.Get("data"); data.IsArray() {
		return decode[T](ShapeDataArray, data, root.Get("total"))
	}
	if records := root.Get("records"); records.IsArray() {
		return decode[T](ShapeRecords, records, root.Get("total"))
	}
	if root.IsArray() {
		return decode[T](ShapeArray, root, gjson.Result{})
	}
	return Unrecognized[T]("no list found in response")
}

func decode[T any](shape Shape, list, total gjson.Result) Result[T] {
	items := make([]T, 0)
	if err := json.Unmarshal([]byte(list.Raw), &items); err != nil {
		return Unrecognized[T]("decode " + string(shape) + ": " + err.Error())
	}
	n := len(items)
	if total.Exists() && total.Type == gjson.Number {
		n = int(total.Int())
	}
	return Result[T]{Shape: shape, Items: items, Total: n}
}

// Code returns the envelope's code field when present and numeric.
func Code(body []byte) (int, bool) {
	code := gjson.GetBytes(body, "code")
	if !code.Exists() {
		return 0, false
	}
	switch code.Type {
	case gjson.Number:
		return int(code.Int()), true
	case gjson.String:
		if n := code.Int(); n != 0 || strings.TrimSpace(code.Str) == "0" {
			return int(n), true
		}
	}
	return 0, false
}

// Message returns the human readable reason carried by a body: message first, then
// detail. Validation details arriving as a list are joined.
func Message(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	if msg := gjson.GetBytes(body, "message"); msg.Type == gjson.String && msg.Str != "" {
		return msg.Str
	}
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.Str
	case detail.IsArray():
		parts := make([]string, 0)
		detail.ForEach(func(_, item gjson.Result) bool {
			if m := item.Get("msg"); m.Exists() {
				parts = append(parts, m.String())
			} else {
				parts = append(parts, item.String())
			}
			return true
		})
		return strings.Join(parts, "; ")
	}
	return ""
}

// Data returns the raw data member when the body is a {code?, data, message?} wrapper,
// otherwise the body itself.
func Data(body []byte) []byte {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return body
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return body
	}
	data := root.Get("data")
	if !data.Exists() {
		return body
	}
	if root.Get("code").Exists() || root.Get("success").Exists() || root.Get("message").Exists() || len(root.Map()) == 1 {
		return []byte(data.Raw)
	}
	return body
}

// IsJSON reports whether body parses as JSON.
func IsJSON(body []byte) bool {
	return len(body) > 0 && gjson.ValidBytes(body)
}
