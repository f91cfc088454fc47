package output

import (
	json "github.com/goccy/go-json"
)

// FormatJSON marshals any result record to JSON, optionally indented.
func FormatJSON(v any, pretty bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
