// Command validate provides a small CLI that validates the game variant
// files (.json, .yaml, .yml) in the ../configs directory, or the directory
// given as the first argument. It checks:
//   - File syntax, rejecting unknown fields so typos do not pass silently
//   - The engine's own limits on suits, stacks, free cells and difficulty
//   - That the variant deals: every card lands on a play stack
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/solitaire-engine/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// decodeStrict parses data like engine.DecodeGameConfig but fails on
// fields GameConfig does not declare
func decodeStrict(name string, data []byte) (*engine.GameConfig, error) {
	var config engine.GameConfig
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&config); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&config); err != nil {
			return nil, err
		}
	}
	return &config, nil
}

// validateConfig loads and validates a single variant file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	config, err := decodeStrict(filePath, data)
	if err != nil {
		result.fail("Invalid syntax: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		result.fail("%v", err)
		return result
	}

	if stem := strings.TrimSuffix(result.File, filepath.Ext(result.File)); config.Name != stem {
		result.info("Name %q differs from file name; sessions use %q", config.Name, stem)
	}

	checkDeal(&result, config)
	return result
}

// checkDeal deals the variant once and checks where the cards went.
func checkDeal(result *ValidationResult, config *engine.GameConfig) {
	game, err := engine.NewEngine(config, nil)
	if err != nil {
		result.fail("Deal failed: %v", err)
		return
	}

	want := config.Suits * engine.SuitLength
	dealt, deepest := 0, 0
	for _, d := range game.PlayStacks() {
		dealt += d.Len()
		deepest = max(deepest, d.Len())
	}
	if dealt != want {
		result.fail("Deal placed %d of %d cards on the play stacks", dealt, want)
		return
	}

	result.info("Deal: %d cards over %d stacks, deepest %d", dealt, len(game.PlayStacks()), deepest)
	result.info("Movable limit at start: %d", game.MovableStackLimit(false))

	if cleared := game.Autocomplete(true); cleared > 0 {
		result.info("Autocomplete clears %d cards before the first move (seed %d)", cleared, config.Seed)
	}
}

// configFiles lists the variant files in dir
func configFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

// main scans the configs directory and validates each file, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := configFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No variant files in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
