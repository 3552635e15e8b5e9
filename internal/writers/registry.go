// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"resagg-core/record"
)

// Writer registry (format → handler). Formats register in init()
// blocks from their writer files.
var registry = map[string]func(io.Writer, *record.Output) error{}

// Register installs a format handler (last registration wins).
func Register(format string, fn func(io.Writer, *record.Output) error) {
	registry[format] = fn
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write dispatches out to the handler registered for format.
func Write(format string, w io.Writer, out *record.Output) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (have %v)", format, Formats())
	}
	return fn(w, out)
}
