package engine

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:        "Test Config",
		Description: "A valid test configuration",
		Variant:     VariantFreeCell,
		Seed:        7,
		Suits:       4,
		Stacks:      8,
		FreeCells:   4,
	}
}

func TestValidateGameConfig_ValidConfig(t *testing.T) {
	assert.NoError(t, ValidateGameConfig(createValidConfig()))
}

func TestValidateGameConfig_Presets(t *testing.T) {
	for name, config := range Presets() {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ValidateGameConfig(config))
			assert.Equal(t, name, config.Name)
		})
	}
}

func TestValidateGameConfig_Nil(t *testing.T) {
	err := ValidateGameConfig(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateGameConfig_MissingName(t *testing.T) {
	config := createValidConfig()
	config.Name = ""
	err := ValidateGameConfig(config)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "name is required")
}

func TestValidateGameConfig_Limits(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*GameConfig)
		expectedError string
	}{
		{"no suits", func(c *GameConfig) { c.Suits = 0 }, "suits must be between"},
		{"negative suits", func(c *GameConfig) { c.Suits = -1 }, "suits must be between"},
		{"too many suits", func(c *GameConfig) { c.Suits = MaxGoalCells + 1 }, "suits must be between"},
		{"no stacks", func(c *GameConfig) { c.Stacks = 0 }, "stacks must be between"},
		{"too many stacks", func(c *GameConfig) { c.Stacks = MaxStacks + 1 }, "stacks must be between"},
		{"negative free cells", func(c *GameConfig) { c.FreeCells = -1 }, "free_cells must be between"},
		{"too many free cells", func(c *GameConfig) { c.FreeCells = MaxFreeCells + 1 }, "free_cells must be between"},
		{"too many shuffle passes", func(c *GameConfig) { c.ShufflePasses = MaxShufflePasses + 1 }, "shuffle_passes must be between"},
		{"unknown variant", func(c *GameConfig) { c.Variant = "klondike" }, "unknown variant"},
		{"NaN difficulty", func(c *GameConfig) { c.Difficulty = math.NaN() }, "finite"},
		{"huge difficulty", func(c *GameConfig) { c.Difficulty = 14 }, "difficulty must be between"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := createValidConfig()
			test.mutate(config)
			err := ValidateGameConfig(config)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), test.expectedError)
		})
	}
}

func TestValidateGameConfig_Boundaries(t *testing.T) {
	config := createValidConfig()
	config.Suits = MaxGoalCells
	config.Stacks = MaxStacks
	config.FreeCells = MaxFreeCells
	config.Difficulty = -SuitLength
	assert.NoError(t, ValidateGameConfig(config))

	config.FreeCells = 0
	config.Stacks = 1
	config.Suits = 1
	assert.NoError(t, ValidateGameConfig(config))
}

func TestDecodeGameConfig(t *testing.T) {
	jsonData := []byte(`{"name":"j","variant":"freecell","suits":2,"stacks":6,"free_cells":3,"difficulty":-1,"seed":9}`)
	config, err := DecodeGameConfig("j.json", jsonData)
	require.NoError(t, err)
	assert.Equal(t, "j", config.Name)
	assert.Equal(t, 3, config.FreeCells)
	assert.Equal(t, int64(9), config.Seed)
	assert.Equal(t, -1.0, config.Difficulty)

	yamlData := []byte("name: y\nvariant: staircase\nsuits: 8\nstacks: 8\nfree_cells: 4\nshuffle_passes: 5\n")
	config, err = DecodeGameConfig("y.YAML", yamlData)
	require.NoError(t, err)
	assert.Equal(t, VariantStaircase, config.Variant)
	assert.Equal(t, 5, config.ShufflePasses)

	_, err = DecodeGameConfig("bad.json", []byte("{"))
	assert.Error(t, err)
	_, err = DecodeGameConfig("bad.yml", []byte("name: [unclosed"))
	assert.Error(t, err)
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte("name: valid\nsuits: 4\nstacks: 8\nfree_cells: 4\n"), 0644))
	config, err := LoadGameConfig(valid)
	require.NoError(t, err)
	assert.Equal(t, "valid", config.Name)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"name":"invalid","suits":0,"stacks":8}`), 0644))
	_, err = LoadGameConfig(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadGameConfig(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDefaultConfigIsACopy(t *testing.T) {
	config := DefaultConfig()
	config.FreeCells = 0
	assert.Equal(t, 4, DefaultConfig().FreeCells)
}

func TestParseDeckRef(t *testing.T) {
	ref, err := ParseDeckRef("play:3")
	require.NoError(t, err)
	assert.Equal(t, DeckRef{Role: Play, Index: 3}, ref)
	assert.Equal(t, "play:3", ref.String())

	for _, bad := range []string{"", "play", "play:x", "play:-1", "table:1"} {
		_, err := ParseDeckRef(bad)
		assert.ErrorIs(t, err, ErrUnknownDeck, bad)
	}
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "hard (8 suits, 12 stacks, 6 cells, difficulty 2)", ShortName(Presets()["hard"]))
	assert.Equal(t, "", ShortName(nil))
}
