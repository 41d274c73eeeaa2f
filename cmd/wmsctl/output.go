package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fastygo/warehouse-console/api/transport"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseFilters turns repeated key=value flags into a filter set.
func parseFilters(pairs []string) (transport.Filters, error) {
	filters := transport.Filters{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("filter %q must be key=value", pair)
		}
		filters[key] = value
	}
	return filters, nil
}

func marshalPayload(v interface{}) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return raw, nil
}
