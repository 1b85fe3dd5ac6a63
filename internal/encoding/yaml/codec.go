package yaml

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec implements the encoding.Encoder interface for YAML encoding.
type Codec struct {
	// Indent is the number of spaces per nesting level; 0 keeps the
	// library default.
	Indent int
}

func (c *Codec) Encode(v map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if c.Indent > 0 {
		enc.SetIndent(c.Indent)
	}

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("yaml marshalling value: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml marshalling value: %w", err)
	}
	return buf.Bytes(), nil
}
