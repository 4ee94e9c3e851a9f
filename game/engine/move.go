package engine

// Move is a reversible state transition. Execute and Undo must strictly
// alternate, starting with Execute; anything else panics.
type Move interface {
	Type() MoveType
	Source() *Deck
	Target() *Deck
	// Cards lists the moved cards bottom to top.
	Cards() []*Card
	Execute()
	Undo()
}

type flagSnapshot struct {
	faceUp    bool
	draggable bool
}

func snapshot(c *Card) flagSnapshot {
	return flagSnapshot{faceUp: c.FaceUp, draggable: c.Draggable}
}

func (s flagSnapshot) restore(c *Card) {
	c.FaceUp = s.faceUp
	c.Draggable = s.draggable
}

// SingleMove moves one card. Moving a card turns it face up.
type SingleMove struct {
	card     *Card
	from     *Deck
	to       *Deck
	at       int
	prior    int
	snap     flagSnapshot
	executed bool
}

// Single builds a move of card onto the top of target.
func Single(card *Card, target *Deck) *SingleMove {
	return &SingleMove{card: card, from: card.deck, to: target, at: -1}
}

// Shift builds a move of card to position at inside its own deck.
func Shift(card *Card, at int) *SingleMove {
	return &SingleMove{card: card, from: card.deck, to: card.deck, at: at}
}

func (m *SingleMove) Type() MoveType { return SingleMoveType }
func (m *SingleMove) Source() *Deck { return m.from }
func (m *SingleMove) Target() *Deck { return m.to }
func (m *SingleMove) Cards() []*Card { return []*Card{m.card} }
func (m *SingleMove) Card() *Card { return m.card }

func (m *SingleMove) Execute() {
	if m.executed {
		panic("engine: single move executed twice")
	}
	if m.card.deck != m.from {
		panic("engine: single move source no longer holds " + m.card.Code())
	}
	m.prior = m.from.IndexOf(m.card)
	m.snap = snapshot(m.card)
	moveCard(m.card, m.to, m.at)
	m.card.FaceUp = true
	m.executed = true
}

func (m *SingleMove) Undo() {
	if !m.executed {
		panic("engine: undo of a single move that is not executed")
	}
	if m.card.deck != m.to {
		panic("engine: single move target no longer holds " + m.card.Code())
	}
	moveCard(m.card, m.from, m.prior)
	m.snap.restore(m.card)
	m.executed = false
}

// StackMove moves a contiguous top run from one deck to another.
type StackMove struct {
	from     *Deck
	to       *Deck
	cards    []*Card
	prior    int
	snaps    []flagSnapshot
	executed bool
}

// Stack builds a move of run, which must be the top run of source, onto
// target. The run is resolved by the caller.
func Stack(source, target *Deck, run []*Card) *StackMove {
	cards := make([]*Card, len(run))
	copy(cards, run)
	return &StackMove{from: source, to: target, cards: cards}
}

func (m *StackMove) Type() MoveType { return StackMoveType }
func (m *StackMove) Source() *Deck { return m.from }
func (m *StackMove) Target() *Deck { return m.to }

func (m *StackMove) Cards() []*Card {
	out := make([]*Card, len(m.cards))
	copy(out, m.cards)
	return out
}

func (m *StackMove) Execute() {
	if m.executed {
		panic("engine: stack move executed twice")
	}
	if len(m.cards) == 0 {
		panic("engine: empty stack move")
	}
	m.prior = m.from.Len() - len(m.cards)
	if !isTopRun(m.from, m.cards) {
		panic("engine: stack move run is not the top of its source")
	}
	if !IsInSequence(m.cards) {
		panic("engine: stack move run is out of sequence")
	}
	m.snaps = make([]flagSnapshot, len(m.cards))
	for i, c := range m.cards {
		m.snaps[i] = snapshot(c)
		moveCard(c, m.to, m.to.Len())
		c.FaceUp = true
	}
	m.executed = true
}

func (m *StackMove) Undo() {
	if !m.executed {
		panic("engine: undo of a stack move that is not executed")
	}
	if !isTopRun(m.to, m.cards) {
		panic("engine: stack move run is not the top of its target")
	}
	for i, c := range m.cards {
		moveCard(c, m.from, m.prior+i)
		m.snaps[i].restore(c)
	}
	m.executed = false
}

func isTopRun(d *Deck, run []*Card) bool {
	base := d.Len() - len(run)
	if base < 0 {
		return false
	}
	for i, c := range run {
		if d.At(base+i) != c {
			return false
		}
	}
	return true
}

// SwapMove runs two single moves as one undoable unit, e.g. a discard
// followed by its refill.
type SwapMove struct {
	first, second *SingleMove
}

func Swap(first, second *SingleMove) *SwapMove {
	return &SwapMove{first: first, second: second}
}

func (m *SwapMove) Type() MoveType { return SwapMoveType }
func (m *SwapMove) Source() *Deck { return m.first.from }
func (m *SwapMove) Target() *Deck { return m.first.to }
func (m *SwapMove) Cards() []*Card { return []*Card{m.first.card, m.second.card} }

func (m *SwapMove) Execute() {
	m.first.Execute()
	m.second.Execute()
}

func (m *SwapMove) Undo() {
	m.second.Undo()
	m.first.Undo()
}

// MultiMove executes a batch of moves in order and undoes them in reverse.
type MultiMove struct {
	moves    []Move
	executed bool
}

func Multi(moves ...Move) *MultiMove {
	return &MultiMove{moves: moves}
}

// Add appends an already executed move to the batch. It is used when each
// step depends on the result of the previous one.
func (m *MultiMove) Add(move Move) {
	m.moves = append(m.moves, move)
	m.executed = true
}

func (m *MultiMove) Len() int { return len(m.moves) }
func (m *MultiMove) Type() MoveType { return MultiMoveType }
func (m *MultiMove) Moves() []Move { return m.moves }

func (m *MultiMove) Source() *Deck {
	if len(m.moves) == 0 {
		return nil
	}
	return m.moves[0].Source()
}

func (m *MultiMove) Target() *Deck {
	if len(m.moves) == 0 {
		return nil
	}
	return m.moves[len(m.moves)-1].Target()
}

func (m *MultiMove) Cards() []*Card {
	var out []*Card
	for _, mv := range m.moves {
		out = append(out, mv.Cards()...)
	}
	return out
}

func (m *MultiMove) Execute() {
	if m.executed {
		panic("engine: multi move executed twice")
	}
	for _, mv := range m.moves {
		mv.Execute()
	}
	m.executed = true
}

func (m *MultiMove) Undo() {
	if !m.executed {
		panic("engine: undo of a multi move that is not executed")
	}
	for i := len(m.moves) - 1; i >= 0; i-- {
		m.moves[i].Undo()
	}
	m.executed = false
}

// Describe turns a move into a MoveRecord numbered n.
func Describe(m Move, n int) MoveRecord {
	rec := MoveRecord{Number: n, Type: m.Type()}
	if src := m.Source(); src != nil {
		rec.From = src.Ref().String()
	}
	if dst := m.Target(); dst != nil {
		rec.To = dst.Ref().String()
	}
	for _, c := range m.Cards() {
		rec.Cards = append(rec.Cards, c.Code())
	}
	return rec
}
