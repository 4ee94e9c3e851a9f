package engine

// Autocomplete sends top cards to the goals until a pass over the table
// moves nothing or the game is won. With onlySafe set, only cards passing
// IsCardSafeToMove are sent. It returns the number of moves made.
func (e *GameEngine) Autocomplete(onlySafe bool) int {
	if e.won || e.auto {
		return 0
	}
	e.auto = true
	defer func() { e.auto = false }()

	before := e.log.len()
	for !e.won && e.autocompletePass(onlySafe) {
	}
	return e.log.len() - before
}

// AdvanceAutocomplete runs a single pass and reports whether it moved
// anything. Callers that pace autocomplete themselves call it until it
// returns false.
func (e *GameEngine) AdvanceAutocomplete(onlySafe bool) bool {
	if e.won || e.auto {
		return false
	}
	e.auto = true
	defer func() { e.auto = false }()

	return e.autocompletePass(onlySafe)
}

// autocompletePass looks at the top card of each free cell, then each play
// stack, moving at most one card per deck.
func (e *GameEngine) autocompletePass(onlySafe bool) bool {
	moved := false
	for _, decks := range [][]*Deck{e.freeCells, e.playCells} {
		for _, d := range decks {
			if e.won {
				return moved
			}
			if e.sendToGoal(d, onlySafe) {
				moved = true
			}
		}
	}
	return moved
}

func (e *GameEngine) sendToGoal(d *Deck, onlySafe bool) bool {
	top := d.TopCard()
	if top == nil {
		return false
	}
	goal := e.GoalDeckFor(top)
	if goal == nil {
		return false
	}
	if onlySafe && !e.IsCardSafeToMove(top) {
		return false
	}
	e.DoMove(Single(top, goal))
	return true
}

// GoalDeckFor returns the goal that accepts card next: the first empty
// goal for an Ace, otherwise the goal of the same suit topped by the rank
// below. It returns nil when there is none.
func (e *GameEngine) GoalDeckFor(card *Card) *Deck {
	for _, d := range e.goalCells {
		if fitsGoal(card, d) {
			return d
		}
	}
	return nil
}

// IsCardSafeToMove reports whether sending card to a goal cannot strand
// anything: no play stack or free cell holds a card one rank lower of the
// opposite color, which might still want card as a landing spot.
func (e *GameEngine) IsCardSafeToMove(card *Card) bool {
	if card.rank == Ace {
		return true
	}
	rank := card.rank - 1
	color := card.Color().Opposite()
	for _, decks := range [][]*Deck{e.playCells, e.freeCells} {
		for _, d := range decks {
			if d.Has(rank, color) {
				return false
			}
		}
	}
	return true
}
