package engine

// CardDrag tries to move card, and every card above it, onto target. It
// returns true when the move was performed. Rejected drags leave the table
// untouched.
func (e *GameEngine) CardDrag(card *Card, target *Deck) bool {
	if card == nil || target == nil || e.won || !card.Draggable {
		return false
	}
	source := card.deck
	if source == nil || source == target || !e.owns(target) {
		return false
	}

	switch target.role {
	case FreeCell:
		if !card.IsTop() || target.HasCards() {
			return false
		}
		e.DoMove(Single(card, target))
		return true

	case Play:
		if top := target.TopCard(); top != nil && !stacksOn(card, top) {
			return false
		}
		return e.doStackMove(card, target)

	case Goal:
		if !card.IsTop() || !fitsGoal(card, target) {
			return false
		}
		e.DoMove(Single(card, target))
		return true
	}

	return false
}

// doStackMove moves the run starting at card onto target if the run fits
// the movable stack limit.
func (e *GameEngine) doStackMove(card *Card, target *Deck) bool {
	source := card.deck
	i := source.IndexOf(card)
	count := source.Len() - i
	if count > e.MovableStackLimit(target.role == Play && !target.HasCards()) {
		return false
	}

	if count == 1 {
		e.DoMove(Single(card, target))
	} else {
		e.DoMove(Stack(source, target, source.cards[i:]))
	}
	return true
}

// StackLimit is the number of cards that may move together given the empty
// free cells and empty play stacks. When the destination is itself one of
// the empty play stacks it cannot be used as an intermediate. With no empty
// play stacks the flag has no effect and the limit is 1+freeCellsEmpty.
func StackLimit(freeCellsEmpty, playCellsEmpty int, targetIsEmptyPlayDeck bool) int {
	exp := playCellsEmpty
	if targetIsEmptyPlayDeck && exp > 0 {
		exp--
	}
	return (1 + freeCellsEmpty) << uint(exp)
}

// MovableStackLimit applies StackLimit to the current table
func (e *GameEngine) MovableStackLimit(targetIsEmptyPlayDeck bool) int {
	return StackLimit(countEmpty(e.freeCells), countEmpty(e.playCells), targetIsEmptyPlayDeck)
}

// DoMove is the only way moves reach the table after the deal. It executes
// m, logs it, then refreshes draggability and the win flag. Unless the
// move is a redo, or autocomplete is already running, a safe autocomplete
// pass follows.
func (e *GameEngine) DoMove(m Move) {
	m.Execute()
	e.log.push(m, e.redoing)
	e.observer.MoveExecuted(Describe(m, e.log.len()))

	if e.won {
		return
	}
	e.calculateDragableCards()
	if e.checkWin() {
		return
	}
	if !e.redoing && !e.auto && !e.config.DeferAutocomplete {
		e.Autocomplete(true)
	}
}

// OnDoubleClick sends card to the best place it can go, trying in order:
// a goal, a play stack it stacks onto, an empty free cell, an empty play
// stack. It returns false when nothing fits.
func (e *GameEngine) OnDoubleClick(card *Card) bool {
	if card == nil || card.deck == nil || e.won || !card.Draggable {
		return false
	}
	source := card.deck
	if !e.owns(source) {
		return false
	}

	if card.IsTop() && source.role != Goal {
		if goal := e.GoalDeckFor(card); goal != nil {
			e.DoMove(Single(card, goal))
			return true
		}
	}

	for _, d := range e.playCells {
		if d == source || !d.HasCards() || !stacksOn(card, d.TopCard()) {
			continue
		}
		if e.doStackMove(card, d) {
			return true
		}
	}

	if card.IsTop() && source.role != FreeCell {
		for _, d := range e.freeCells {
			if !d.HasCards() {
				e.DoMove(Single(card, d))
				return true
			}
		}
	}

	// Moving a whole pile onto an empty pile changes nothing.
	if source.role == Play && source.BottomCard() == card {
		return false
	}
	for _, d := range e.playCells {
		if d == source || d.HasCards() {
			continue
		}
		if e.doStackMove(card, d) {
			return true
		}
	}

	return false
}

// owns reports whether d is part of the current game. Decks from a
// previous deal are stale.
func (e *GameEngine) owns(d *Deck) bool {
	got, err := e.Deck(d.Ref())
	return err == nil && got == d
}

// stacksOn reports whether card may be placed on top: opposite color, one
// rank lower.
func stacksOn(card, top *Card) bool {
	return card.Color() != top.Color() && card.rank+1 == top.rank
}

// fitsGoal reports whether card is the next card for goal
func fitsGoal(card *Card, goal *Deck) bool {
	top := goal.TopCard()
	if top == nil {
		return card.rank == Ace
	}
	return top.suit == card.suit && top.rank+1 == card.rank
}
