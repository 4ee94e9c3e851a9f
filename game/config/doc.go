// Package config provides configuration management for the solitaire
// engine.
//
// The config package handles:
//   - Loading game variants from JSON or YAML files
//   - Validation through engine.ValidateGameConfig
//   - Falling back to the built-in presets
//   - Configuration discovery and listing
//
// Configuration Format:
//
// A variant file holds one engine.GameConfig:
//
//	name: hard
//	description: Two decks over twelve stacks
//	variant: freecell
//	suits: 8
//	stacks: 12
//	free_cells: 6
//	difficulty: 2
//
// Files are looked up as <name>.json, <name>.yaml and <name>.yml. A file
// shadows the preset of the same name (normal, hard, easy, staircase).
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("hard")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
