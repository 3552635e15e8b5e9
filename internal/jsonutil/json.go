// internal/jsonutil/json.go
package jsonutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DecodeFile reads one JSON document from path into v, rejecting
// unknown fields so typos in hand-written inputs surface early.
func DecodeFile(path string, v any) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = fh.Close() }()

	dec := json.NewDecoder(fh)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
