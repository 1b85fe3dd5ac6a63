// Package encoding selects the structured codec behind the --output
// option.
package encoding

import (
	"errors"
	"fmt"

	"github.com/uwu-tools/fshell/internal/encoding/json"
	"github.com/uwu-tools/fshell/internal/encoding/toml"
	"github.com/uwu-tools/fshell/internal/encoding/yaml"
	"github.com/uwu-tools/fshell/internal/options"
)

// Encoder renders a flattened result document.
type Encoder interface {
	Encode(v map[string]interface{}) ([]byte, error)
}

var errUnknownFormat = errors.New("unknown output format")

// ForFormat returns the encoder for a structured output format. The table
// format has no encoder and is rejected like any other unknown value.
func ForFormat(format string) (Encoder, error) {
	switch format {
	case options.OutputJSON:
		return &json.Codec{Indent: "  "}, nil
	case options.OutputYAML:
		return &yaml.Codec{Indent: 2}, nil
	case options.OutputTOML:
		return &toml.Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}
