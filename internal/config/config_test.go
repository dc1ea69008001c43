package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

const matchYAML = `
seed: 7
max_rounds: 500
groups:
  - name: rex
    warriors:
      - name: rex1
        file: bin/rex1.com
      - name: rex2
        hex: "90 90 eb fe"
  - name: walker
    warriors:
      - name: walker
        hex: ebfe
        type: zombie_h
`

func TestLoadMatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bin", "rex1.com"), []byte{0xEB, 0xFE})
	path := filepath.Join(dir, "match.yaml")
	writeFile(t, path, []byte(matchYAML))

	mc, err := LoadMatch(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), mc.Seed)
	assert.Equal(t, 500, mc.MaxRounds)
	assert.Equal(t, DefaultZombieSpeed, mc.ZombieSpeed)
	assert.Equal(t, DefaultLoadAttempts, mc.LoadAttempts)
	require.NotNil(t, mc.MinGap)
	assert.Equal(t, DefaultMinGap, *mc.MinGap)
	assert.Equal(t, dir, mc.Dir)
	require.Len(t, mc.Groups, 2)
	assert.Equal(t, "zombie_h", mc.Groups[1].Warriors[0].Type)

	code, err := mc.Groups[0].Warriors[0].Code(mc.Dir)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEB, 0xFE}, code)

	code, err = mc.Groups[0].Warriors[1].Code(mc.Dir)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x90, 0x90, 0xEB, 0xFE}, code)
}

func TestLoadMatchKeepsZeroGap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.yaml")
	writeFile(t, path, []byte("min_gap: 0\ngroups:\n  - name: a\n    warriors:\n      - {name: a, hex: '90'}\n"))

	mc, err := LoadMatch(path)
	require.NoError(t, err)
	assert.Equal(t, 0, *mc.MinGap)
}

func TestLoadMatchErrors(t *testing.T) {
	_, err := LoadMatch(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, []byte("groups: [unterminated"))
	_, err = LoadMatch(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	gap := -1
	tests := []struct {
		name string
		cfg  MatchConfig
	}{
		{"negative gap", MatchConfig{MinGap: &gap}},
		{"negative pace", MatchConfig{RoundsPerSecond: -1}},
		{"empty group", MatchConfig{Groups: []GroupDef{{Name: "g"}}}},
		{"unnamed warrior", MatchConfig{Groups: []GroupDef{{Name: "g", Warriors: []WarriorDef{{Hex: "90"}}}}}},
		{"duplicate name", MatchConfig{Groups: []GroupDef{
			{Name: "a", Warriors: []WarriorDef{{Name: "x", Hex: "90"}}},
			{Name: "b", Warriors: []WarriorDef{{Name: "x", Hex: "90"}}},
		}}},
		{"file and hex", MatchConfig{Groups: []GroupDef{{Name: "g", Warriors: []WarriorDef{{Name: "x", Hex: "90", File: "x.com"}}}}}},
		{"no code", MatchConfig{Groups: []GroupDef{{Name: "g", Warriors: []WarriorDef{{Name: "x"}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cfg.Validate(), ErrInvalid)
		})
	}

	ok := Default()
	ok.Groups = []GroupDef{{Name: "g", Warriors: []WarriorDef{{Name: "x", Hex: "90"}}}}
	assert.NoError(t, ok.Validate())
}

func TestWarriorCodeErrors(t *testing.T) {
	_, err := WarriorDef{Name: "x", Hex: "zz"}.Code(".")
	assert.ErrorContains(t, err, "bad hex")

	_, err = WarriorDef{Name: "x", File: "nope.com"}.Code(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanWarriors(t *testing.T) {
	dir, zdir := t.TempDir(), t.TempDir()
	for _, name := range []string{"rex1.com", "rex2.com", "imp.com", ".hidden"} {
		writeFile(t, filepath.Join(dir, name), []byte{0x90})
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(zdir, "shambler.bin"), []byte{0x90})

	groups, err := ScanWarriors(dir, zdir)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "imp", groups[0].Name)
	assert.Len(t, groups[0].Warriors, 1)

	assert.Equal(t, "rex", groups[1].Name)
	require.Len(t, groups[1].Warriors, 2)
	assert.Equal(t, "rex1", groups[1].Warriors[0].Name)
	assert.Equal(t, filepath.Join(dir, "rex2.com"), groups[1].Warriors[1].File)

	assert.Equal(t, "shambler", groups[2].Name)
	assert.Equal(t, "zombie", groups[2].Warriors[0].Type)

	_, err = ScanWarriors(filepath.Join(dir, "missing"), "")
	assert.Error(t, err)
}

func TestSampleMatch(t *testing.T) {
	mc, err := LoadMatch(filepath.Join("..", "..", "assets", "match.yaml"))
	require.NoError(t, err)
	require.Len(t, mc.Groups, 3)
	for _, g := range mc.Groups {
		for _, w := range g.Warriors {
			code, err := w.Code(mc.Dir)
			require.NoError(t, err, w.Name)
			assert.NotEmpty(t, code)
		}
	}
}
