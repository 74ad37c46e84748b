package parsing

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseHeaders parses a JSON object of extra HTTP headers, e.g.
// '{"Authorization":"Bearer TOKEN","User-Agent":"MyAgent/1.0"}'.
// Non-string values are stringified. An empty input yields nil.
func ParseHeaders(headersJSON string) (map[string]string, error) {
	headersJSON = strings.TrimSpace(headersJSON)
	if headersJSON == "" {
		return nil, nil
	}

	var raw any
	if err := json.Unmarshal([]byte(headersJSON), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse headers JSON: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf(`headers must be a JSON object (e.g. '{"Header":"Value"}')`)
	}

	headers := make(map[string]string, len(obj))
	for k, v := range obj {
		if strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("header names cannot be empty")
		}
		switch val := v.(type) {
		case string:
			headers[k] = val
		case nil:
			headers[k] = ""
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return nil, fmt.Errorf("failed to stringify header %q: %w", k, err)
			}
			headers[k] = string(b)
		}
	}
	return headers, nil
}
