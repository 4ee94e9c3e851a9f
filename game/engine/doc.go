// Package engine provides the rule engine for FreeCell style solitaire.
//
// The engine package implements:
//   - The card and deck model, with every card owned by exactly one deck
//   - Reversible moves (single, stack, swap, multi) and the undo/redo log
//   - Drag validation and the movable stack limit
//   - Draggability, autocomplete to the goals and win detection
//   - A seeded, reproducible deal with an optional difficulty bias
//
// Core Types:
//
// The Engine interface defines the operations the presentation layer
// calls, implemented by GameEngine. GameConfig describes a variant, and
// GameState is a read-only snapshot of the table. Notifications go to an
// Observer; EventLog buffers them for transports.
//
// Usage:
//
//	config := engine.Presets()["normal"]
//	config.Seed = 42
//
//	events := engine.NewEventLog()
//	game, err := engine.NewEngine(config, events)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	card, _ := game.Card(12)
//	target, _ := game.Deck(engine.DeckRef{Role: engine.FreeCell, Index: 0})
//	if game.CardDrag(card, target) {
//		state := game.GetState()
//		_ = state
//	}
//
// Every accepted move goes through DoMove, which keeps the move log,
// draggability and the win flag consistent. GameEngine is not safe for
// concurrent use; callers serialize access.
package engine
