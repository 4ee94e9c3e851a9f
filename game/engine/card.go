package engine

// Card is a single playing card. Suit, rank and id never change; the deck
// back reference is only written by moveCard.
type Card struct {
	id        int
	suit      Suit
	rank      Rank
	FaceUp    bool
	Draggable bool

	deck *Deck
}

func newCard(id int, suit Suit, rank Rank) *Card {
	return &Card{id: id, suit: suit, rank: rank}
}

func (c *Card) ID() int { return c.id }
func (c *Card) Suit() Suit { return c.suit }
func (c *Card) Rank() Rank { return c.rank }
func (c *Card) Color() Color { return c.suit.Color() }

// Deck returns the deck currently holding the card. Use it for lookup only.
func (c *Card) Deck() *Deck { return c.deck }

// Code is the short name of the card, e.g. "QH" or "10S".
func (c *Card) Code() string {
	return c.rank.String() + suitLetters[c.suit]
}

func (c *Card) String() string {
	return c.Code()
}

// IsTop reports whether the card is the top card of its deck.
func (c *Card) IsTop() bool {
	return c.deck != nil && c.deck.TopCard() == c
}

func (c *Card) state() CardState {
	return CardState{
		ID:        c.id,
		Code:      c.Code(),
		Suit:      c.suit.String(),
		Rank:      int(c.rank),
		Color:     c.Color().String(),
		FaceUp:    c.FaceUp,
		Draggable: c.Draggable,
	}
}

// Deck is a passive ordered pile of cards, bottom first. It never checks
// legality; the engine does.
type Deck struct {
	role  DeckRole
	index int
	seat  string
	cards []*Card
}

func newDeck(role DeckRole, index int) *Deck {
	return &Deck{role: role, index: index}
}

func (d *Deck) Role() DeckRole { return d.role }
func (d *Deck) Index() int { return d.index }
func (d *Deck) Seat() string { return d.seat }
func (d *Deck) Ref() DeckRef { return DeckRef{Role: d.role, Index: d.index} }
func (d *Deck) Len() int { return len(d.cards) }
func (d *Deck) HasCards() bool { return len(d.cards) > 0 }

// Cards returns a copy of the pile, bottom first.
func (d *Deck) Cards() []*Card {
	out := make([]*Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// At returns the card at position i, bottom is 0.
func (d *Deck) At(i int) *Card {
	if i < 0 || i >= len(d.cards) {
		return nil
	}
	return d.cards[i]
}

// TopCard returns the last card or nil.
func (d *Deck) TopCard() *Card {
	if len(d.cards) == 0 {
		return nil
	}
	return d.cards[len(d.cards)-1]
}

// BottomCard returns the first card or nil.
func (d *Deck) BottomCard() *Card {
	if len(d.cards) == 0 {
		return nil
	}
	return d.cards[0]
}

// IndexOf returns the position of c or -1.
func (d *Deck) IndexOf(c *Card) int {
	for i, card := range d.cards {
		if card == c {
			return i
		}
	}
	return -1
}

// Has reports whether any card in the deck matches rank and color.
func (d *Deck) Has(rank Rank, color Color) bool {
	for _, c := range d.cards {
		if c.rank == rank && c.Color() == color {
			return true
		}
	}
	return false
}

// Push moves c from wherever it is onto the top of d.
func (d *Deck) Push(c *Card) {
	moveCard(c, d, len(d.cards))
}

// PopFrom moves the run starting at index i onto target, keeping order,
// and returns the moved cards.
func (d *Deck) PopFrom(i int, target *Deck) []*Card {
	if i < 0 || i >= len(d.cards) {
		return nil
	}
	run := make([]*Card, len(d.cards)-i)
	copy(run, d.cards[i:])
	for _, c := range run {
		moveCard(c, target, target.Len())
	}
	return run
}

func (d *Deck) state() DeckState {
	cards := make([]CardState, len(d.cards))
	for i, c := range d.cards {
		cards[i] = c.state()
	}
	return DeckState{
		Ref:   d.Ref().String(),
		Role:  d.role,
		Index: d.index,
		Seat:  d.seat,
		Cards: cards,
	}
}

// moveCard is the only place card ownership changes. It detaches c from
// its current deck and inserts it into to at position at (clamped).
func moveCard(c *Card, to *Deck, at int) {
	if from := c.deck; from != nil {
		i := from.IndexOf(c)
		if i < 0 {
			panic("engine: card " + c.Code() + " not found in its owning deck")
		}
		from.cards = append(from.cards[:i], from.cards[i+1:]...)
	}
	if at < 0 || at > len(to.cards) {
		at = len(to.cards)
	}
	to.cards = append(to.cards, nil)
	copy(to.cards[at+1:], to.cards[at:])
	to.cards[at] = c
	c.deck = to
}
