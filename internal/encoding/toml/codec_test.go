package toml

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
)

func TestEncodeEntriesAsArrayOfTables(t *testing.T) {
	codec := Codec{}

	b, err := codec.Encode(map[string]interface{}{
		"success": true,
		"entries": []interface{}{
			map[string]interface{}{"name": "a", "size": int64(1)},
			map[string]interface{}{"name": "b", "size": int64(2)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(string(b), "[[entries]]"))

	var decoded struct {
		Success bool
		Entries []struct {
			Name string
			Size int64
		}
	}
	require.NoError(t, toml.Unmarshal(b, &decoded))
	require.True(t, decoded.Success)
	require.Len(t, decoded.Entries, 2)
	require.Equal(t, "b", decoded.Entries[1].Name)
	require.EqualValues(t, 2, decoded.Entries[1].Size)
}
