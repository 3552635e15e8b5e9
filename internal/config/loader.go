// internal/config/loader.go
package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadFile merges the YAML run-config at path into cfg. Keys absent
// from the file leave cfg untouched, so defaults and later flag
// overrides survive. koanf is case-preserving, which matters for the
// chain IDs keying the offsets map.
func LoadFile(path string, cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
