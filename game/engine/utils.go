package engine

import "fmt"

// countEmpty counts the decks holding no cards
func countEmpty(decks []*Deck) int {
	n := 0
	for _, d := range decks {
		if !d.HasCards() {
			n++
		}
	}
	return n
}

// CardsInGoals returns how many cards sit on the goal decks
func (e *GameEngine) CardsInGoals() int {
	n := 0
	for _, d := range e.goalCells {
		n += d.Len()
	}
	return n
}

// RemainingCards returns how many cards are not yet on a goal deck
func (e *GameEngine) RemainingCards() int {
	return len(e.cards) - e.CardsInGoals()
}

// IsInSequence reports whether a pile, bottom first, is one descending
// alternating-color run.
func IsInSequence(cards []*Card) bool {
	for i := 1; i < len(cards); i++ {
		if !stacksOn(cards[i], cards[i-1]) {
			return false
		}
	}
	return true
}

// ShortName returns a compact description of a configuration for logs and
// listings, e.g. "hard (8 suits, 12 stacks, 6 cells, difficulty 2)".
func ShortName(config *GameConfig) string {
	if config == nil {
		return ""
	}
	return fmt.Sprintf("%s (%d suits, %d stacks, %d cells, difficulty %g)",
		config.Name, config.Suits, config.Stacks, config.FreeCells, config.Difficulty)
}
