// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

// TestImportBoundaries keeps the layering honest: writers stay below
// the app, the app stays below cmd, and pkg/ never reaches into
// internal/.
func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		"resagg/internal/writers": {
			"resagg/internal/app", "resagg/internal/cli", "resagg/internal/config", "resagg/cmd/",
		},
		"resagg/internal/structsource": {
			"resagg/internal/app", "resagg/internal/cli", "resagg/internal/config",
			"resagg/internal/writers", "resagg/cmd/",
		},
		"resagg/internal/config": {
			"resagg/internal/app", "resagg/internal/cli", "resagg/cmd/",
		},
		"resagg/internal/app": {
			"resagg/internal/cli", "resagg/cmd/",
		},
		"resagg/pkg/logging": {"resagg/internal/"},
		"resagg/pkg/metrics": {"resagg/internal/"},
	}

	for {
		var p pkg
		if err := dec.Decode(&p); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("decode: %v", err)
		}
		if p.Standard {
			continue
		}
		banned := bans[p.ImportPath]
		if banned == nil {
			continue
		}
		for _, imp := range p.Imports {
			for _, b := range banned {
				if imp == b || strings.HasPrefix(imp, b) {
					t.Errorf("%s must not import %s", p.ImportPath, imp)
				}
			}
		}
	}
}
