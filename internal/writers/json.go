// internal/writers/json.go
package writers

import (
	"io"

	"resagg-core/record"

	"resagg/internal/jsonutil"
)

func init() {
	Register("json", WriteJSON)
}

// WriteJSON writes the record as indented JSON. This is the format
// ReadJSON accepts back, and the pair round-trips byte-for-byte.
func WriteJSON(w io.Writer, out *record.Output) error {
	return jsonutil.EncodePretty(w, out)
}

// ReadJSON loads a previously written record.
func ReadJSON(path string) (*record.Output, error) {
	var out record.Output
	if err := jsonutil.DecodeFile(path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
