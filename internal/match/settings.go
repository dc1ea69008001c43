// Package match drives wars to completion: single paced matches and
// batches of independent matches.
package match

import (
	"fmt"

	"corewars/internal/config"
	"corewars/internal/war"
)

// Settings control one match.
type Settings struct {
	Seed            int64
	ZombieSpeed     int
	StartPaused     bool
	MaxRounds       int
	RoundsPerSecond float64
	MinGap          int
	LoadAttempts    int
	// Record keeps the birth/death event log in the Result.
	Record bool
}

func SettingsFromConfig(c *config.MatchConfig) Settings {
	s := Settings{
		Seed:            c.Seed,
		ZombieSpeed:     c.ZombieSpeed,
		StartPaused:     c.StartPaused,
		MaxRounds:       c.MaxRounds,
		RoundsPerSecond: c.RoundsPerSecond,
		MinGap:          config.DefaultMinGap,
		LoadAttempts:    c.LoadAttempts,
	}
	if c.MinGap != nil {
		s.MinGap = *c.MinGap
	}
	return s
}

// Groups reads every warrior's code and turns the config groups into
// engine input.
func Groups(dir string, defs []config.GroupDef) ([]war.WarriorGroup, error) {
	groups := make([]war.WarriorGroup, 0, len(defs))
	for _, gd := range defs {
		g := war.WarriorGroup{Name: gd.Name, Warriors: make([]war.WarriorData, 0, len(gd.Warriors))}
		for _, wd := range gd.Warriors {
			code, err := wd.Code(dir)
			if err != nil {
				return nil, err
			}
			typ, err := war.ParseType(wd.Type)
			if err != nil {
				return nil, fmt.Errorf("warrior %q: %w", wd.Name, err)
			}
			g.Warriors = append(g.Warriors, war.WarriorData{Name: wd.Name, Code: code, Type: typ})
		}
		groups = append(groups, g)
	}
	return groups, nil
}
