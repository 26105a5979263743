package cli

import (
	"encoding/json"
	"io"
)

// WriteJSON writes v to w as indented JSON, the output format used by
// subcommands when --format json is requested.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
