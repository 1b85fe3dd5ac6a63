package toml

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Codec implements the encoding.Encoder interface for TOML encoding.
// Lists of records are written as arrays of tables.
type Codec struct {
	// IndentTables indents nested tables for readability.
	IndentTables bool
}

func (c *Codec) Encode(v map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(c.IndentTables)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("toml marshalling value: %w", err)
	}
	return buf.Bytes(), nil
}
