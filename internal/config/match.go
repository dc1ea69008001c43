package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultZombieSpeed  = 1
	DefaultMaxRounds    = 200000
	DefaultMinGap       = 1024
	DefaultLoadAttempts = 100
)

type MatchConfig struct {
	Seed            int64      `yaml:"seed"`
	ZombieSpeed     int        `yaml:"zombie_speed"`
	StartPaused     bool       `yaml:"start_paused"`
	MaxRounds       int        `yaml:"max_rounds"`
	RoundsPerSecond float64    `yaml:"rounds_per_second"`
	MinGap          *int       `yaml:"min_gap"`
	LoadAttempts    int        `yaml:"load_attempts"`
	Groups          []GroupDef `yaml:"groups"`

	// Dir is the directory relative warrior files are resolved against.
	Dir string `yaml:"-"`
}

type GroupDef struct {
	Name     string       `yaml:"name"`
	Warriors []WarriorDef `yaml:"warriors"`
}

// WarriorDef names a warrior and where its code comes from: a binary file
// or an inline hex string.
type WarriorDef struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	Hex  string `yaml:"hex"`
	Type string `yaml:"type"`
}

// Code reads the warrior's machine code. Relative files are resolved
// against dir.
func (w WarriorDef) Code(dir string) ([]byte, error) {
	if w.Hex != "" {
		b, err := hex.DecodeString(strings.Join(strings.Fields(w.Hex), ""))
		if err != nil {
			return nil, fmt.Errorf("warrior %q: bad hex: %w", w.Name, err)
		}
		return b, nil
	}
	path := w.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("warrior %q: %w", w.Name, err)
	}
	return b, nil
}

func (c *MatchConfig) applyDefaults() {
	if c.ZombieSpeed <= 0 {
		c.ZombieSpeed = DefaultZombieSpeed
	}
	if c.MaxRounds <= 0 {
		c.MaxRounds = DefaultMaxRounds
	}
	if c.MinGap == nil {
		gap := DefaultMinGap
		c.MinGap = &gap
	}
	if c.LoadAttempts <= 0 {
		c.LoadAttempts = DefaultLoadAttempts
	}
}

// Validate checks the groups. Warrior types are checked by whoever turns
// them into engine values.
func (c *MatchConfig) Validate() error {
	if c.MinGap != nil && *c.MinGap < 0 {
		return fmt.Errorf("%w: min_gap %d", ErrInvalid, *c.MinGap)
	}
	if c.RoundsPerSecond < 0 {
		return fmt.Errorf("%w: rounds_per_second %v", ErrInvalid, c.RoundsPerSecond)
	}
	seen := map[string]bool{}
	for gi, g := range c.Groups {
		if len(g.Warriors) == 0 {
			return fmt.Errorf("%w: group %d (%q) has no warriors", ErrInvalid, gi, g.Name)
		}
		for _, w := range g.Warriors {
			if w.Name == "" {
				return fmt.Errorf("%w: warrior without a name in group %q", ErrInvalid, g.Name)
			}
			if seen[w.Name] {
				return fmt.Errorf("%w: duplicate warrior name %q", ErrInvalid, w.Name)
			}
			seen[w.Name] = true
			if (w.File == "") == (w.Hex == "") {
				return fmt.Errorf("%w: warrior %q needs exactly one of file or hex", ErrInvalid, w.Name)
			}
		}
	}
	return nil
}
