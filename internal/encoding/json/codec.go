package json

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Codec implements the encoding.Encoder interface for JSON encoding.
type Codec struct {
	// prefix for JSON marshal.
	Prefix string

	// indentation for JSON marshal.
	Indent string
}

// Encode writes v as one JSON document terminated by a newline. HTML
// characters in paths are left unescaped.
func (c *Codec) Encode(v map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(c.Prefix, c.Indent)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("json marshalling value: %w", err)
	}
	return buf.Bytes(), nil
}
