package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid match config")

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadMatch reads a match file, fills in defaults and validates it.
func LoadMatch(path string) (*MatchConfig, error) {
	var mc MatchConfig
	if err := loadYAML(path, &mc); err != nil {
		return nil, err
	}
	mc.Dir = filepath.Dir(path)
	mc.applyDefaults()
	if err := mc.Validate(); err != nil {
		return nil, err
	}
	return &mc, nil
}

// Default returns a config without groups, for runs whose warriors come
// from a directory scan.
func Default() *MatchConfig {
	mc := &MatchConfig{Dir: "."}
	mc.applyDefaults()
	return mc
}
