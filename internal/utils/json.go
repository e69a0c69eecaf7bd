package utils

import (
	"bytes"

	"github.com/goccy/go-json"
)

// MarshalJsonNoHTMLEspace marshals v without escaping <, > and &.
func MarshalJsonNoHTMLEspace(v any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(v); err != nil {
		return nil, err
	}

	//remove newline
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
