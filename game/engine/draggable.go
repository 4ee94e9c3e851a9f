package engine

// calculateDragableCards refreshes every card's Draggable flag. On a play
// stack the flag is set for the longest run from the top that is in
// sequence, face up and no longer than the movable limit. Free cells and
// goals expose only their top card.
func (e *GameEngine) calculateDragableCards() {
	limit := e.MovableStackLimit(false)

	for _, deck := range e.playCells {
		inRun := true
		length := 0
		for i := deck.Len() - 1; i >= 0; i-- {
			c := deck.cards[i]
			if !c.FaceUp {
				inRun = false
			}
			e.setDraggable(c, inRun)
			if !inRun {
				continue
			}
			length++
			if i == 0 {
				continue
			}
			below := deck.cards[i-1]
			if !below.FaceUp || !stacksOn(c, below) || length >= limit {
				inRun = false
			}
		}
	}

	for _, decks := range [][]*Deck{e.freeCells, e.goalCells} {
		for _, deck := range decks {
			top := deck.TopCard()
			for _, c := range deck.cards {
				e.setDraggable(c, c == top)
			}
		}
	}

	for _, deck := range e.seatDecks {
		for _, c := range deck.cards {
			e.setDraggable(c, false)
		}
	}
	for _, c := range e.dealer.cards {
		e.setDraggable(c, false)
	}
}

func (e *GameEngine) setDraggable(c *Card, draggable bool) {
	if c.Draggable == draggable {
		return
	}
	old := c.Draggable
	c.Draggable = draggable
	e.observer.CardDraggableChanged(c, old, draggable)
}
