package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScanWarriors builds groups from a directory of warrior binaries. Two files
// sharing a name apart from a trailing 1 or 2 (e.g. "rex1", "rex2") form one
// group; every other file is a group on its own. Files in zombieDir, if set,
// become single zombie groups.
func ScanWarriors(dir, zombieDir string) ([]GroupDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan warriors: %w", err)
	}

	var groups []GroupDef
	index := map[string]int{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		def := WarriorDef{Name: name, File: filepath.Join(dir, e.Name())}

		team := name
		if n := len(name); n > 1 && (name[n-1] == '1' || name[n-1] == '2') {
			team = name[:n-1]
		}
		if i, ok := index[team]; ok {
			groups[i].Warriors = append(groups[i].Warriors, def)
			continue
		}
		index[team] = len(groups)
		groups = append(groups, GroupDef{Name: team, Warriors: []WarriorDef{def}})
	}

	if zombieDir == "" {
		return groups, nil
	}
	zombies, err := os.ReadDir(zombieDir)
	if err != nil {
		return nil, fmt.Errorf("scan zombies: %w", err)
	}
	for _, e := range zombies {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		groups = append(groups, GroupDef{Name: name, Warriors: []WarriorDef{{
			Name: name,
			File: filepath.Join(zombieDir, e.Name()),
			Type: "zombie",
		}}})
	}
	return groups, nil
}
