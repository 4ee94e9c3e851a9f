package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("config validation")
	ErrUnknownCard   = errors.New("unknown card")
	ErrUnknownDeck   = errors.New("unknown deck")
)

// ValidateGameConfig checks that a configuration can be dealt.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}

	switch config.Variant {
	case "", VariantFreeCell, VariantStaircase:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, config.Variant)
	}

	if config.Suits <= 0 || config.Suits > MaxGoalCells {
		return fmt.Errorf("%w: suits must be between 1 and %d, got %d", ErrInvalidConfig, MaxGoalCells, config.Suits)
	}
	if config.Stacks <= 0 || config.Stacks > MaxStacks {
		return fmt.Errorf("%w: stacks must be between 1 and %d, got %d", ErrInvalidConfig, MaxStacks, config.Stacks)
	}
	if config.FreeCells < 0 || config.FreeCells > MaxFreeCells {
		return fmt.Errorf("%w: free_cells must be between 0 and %d, got %d", ErrInvalidConfig, MaxFreeCells, config.FreeCells)
	}
	if config.ShufflePasses < 0 || config.ShufflePasses > MaxShufflePasses {
		return fmt.Errorf("%w: shuffle_passes must be between 0 and %d, got %d", ErrInvalidConfig, MaxShufflePasses, config.ShufflePasses)
	}
	if math.IsNaN(config.Difficulty) || math.IsInf(config.Difficulty, 0) {
		return fmt.Errorf("%w: difficulty must be a finite number", ErrInvalidConfig)
	}
	if math.Abs(config.Difficulty) > SuitLength {
		return fmt.Errorf("%w: difficulty must be between -%d and %d, got %g", ErrInvalidConfig, SuitLength, SuitLength, config.Difficulty)
	}

	return nil
}

// DecodeGameConfig parses a configuration file body. YAML is used for
// .yaml and .yml names, JSON otherwise.
func DecodeGameConfig(name string, data []byte) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config '%s': %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse json config '%s': %w", name, err)
		}
	}
	return &config, nil
}

// LoadGameConfig loads and validates a configuration file.
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := DecodeGameConfig(filename, data)
	if err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Presets are the built-in variants.
func Presets() map[string]*GameConfig {
	return map[string]*GameConfig{
		"normal": {
			Name:        "normal",
			Description: "Classic FreeCell: four free cells, one deck, eight stacks",
			Variant:     VariantFreeCell,
			Suits:       4,
			Stacks:      8,
			FreeCells:   4,
		},
		"hard": {
			Name:        "hard",
			Description: "Two decks over twelve stacks with low cards buried",
			Variant:     VariantFreeCell,
			Difficulty:  2,
			Suits:       8,
			Stacks:      12,
			FreeCells:   6,
		},
		"easy": {
			Name:        "easy",
			Description: "Half a deck, one free cell, low cards raised",
			Variant:     VariantFreeCell,
			Difficulty:  -1,
			Suits:       2,
			Stacks:      8,
			FreeCells:   1,
		},
		"staircase": {
			Name:        "staircase",
			Description: "Staircase Rummy table: two decks, per-seat piles",
			Variant:     VariantStaircase,
			Suits:       SuitsPerDeck * 2,
			Stacks:      8,
			FreeCells:   4,
		},
	}
}

// DefaultConfig returns a copy of the "normal" preset.
func DefaultConfig() *GameConfig {
	return Presets()["normal"]
}

func (c *GameConfig) shufflePasses() int {
	if c.ShufflePasses == 0 {
		return DefaultShufflePasses
	}
	return c.ShufflePasses
}

func (c *GameConfig) variant() Variant {
	if c.Variant == "" {
		return VariantFreeCell
	}
	return c.Variant
}
