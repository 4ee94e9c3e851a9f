package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Game lifecycle
	NewGame(config *GameConfig) error
	Restart(seed int64) error
	GetState() *GameState
	GetConfig() *GameConfig
	HasWon() bool

	// Input
	CardDrag(card *Card, target *Deck) bool
	OnDoubleClick(card *Card) bool
	DoMove(m Move)

	// History
	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	GetMoveHistory() []MoveRecord

	// Automation
	Autocomplete(onlySafe bool) int
	AdvanceAutocomplete(onlySafe bool) bool
	ReplayStep() bool

	// Lookup
	Card(id int) (*Card, error)
	Deck(ref DeckRef) (*Deck, error)
	MovableStackLimit(targetIsEmptyPlayDeck bool) int
}

// GameEngine implements the Engine interface. It is not safe for
// concurrent use.
type GameEngine struct {
	config   *GameConfig
	observer Observer

	cards     []*Card
	dealer    *Deck
	freeCells []*Deck
	playCells []*Deck
	goalCells []*Deck
	seatDecks []*Deck

	// dealAdjustment holds the difficulty bias shifts. They are part of the
	// deal and never enter the move log.
	dealAdjustment *MultiMove

	log     moveLog
	won     bool
	redoing bool
	auto    bool
	replay  replayState
}

// NewEngine creates an engine and deals the first game from config. A nil
// observer is replaced by NopObserver.
func NewEngine(config *GameConfig, observer Observer) (*GameEngine, error) {
	if observer == nil {
		observer = NopObserver{}
	}
	e := &GameEngine{observer: observer}
	if err := e.NewGame(config); err != nil {
		return nil, err
	}
	return e, nil
}

// NewGame validates config and deals a fresh game. The deal is left as
// dealt with an empty move log; autocomplete only follows player moves. On
// error the current game is left untouched.
func (e *GameEngine) NewGame(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	cfg := *config
	e.config = &cfg
	e.log.reset()
	e.won = false
	e.redoing = false
	e.auto = false
	e.replay = replayState{}

	e.deal()
	e.observer.NewGame(cfg)
	e.calculateDragableCards()
	return nil
}

// Restart deals the current configuration again with a different seed
func (e *GameEngine) Restart(seed int64) error {
	cfg := *e.config
	cfg.Seed = seed
	return e.NewGame(&cfg)
}

// GetConfig returns a copy of the active configuration
func (e *GameEngine) GetConfig() *GameConfig {
	cfg := *e.config
	return &cfg
}

// HasWon reports whether every goal deck holds a full suit
func (e *GameEngine) HasWon() bool {
	return e.won
}

// CanUndo reports whether there is a move to undo
func (e *GameEngine) CanUndo() bool {
	return e.log.len() > 0
}

// CanRedo reports whether there is an undone move to redo
func (e *GameEngine) CanRedo() bool {
	return len(e.log.redo) > 0
}

// GetMoveHistory returns the executed moves, oldest first
func (e *GameEngine) GetMoveHistory() []MoveRecord {
	return e.log.records()
}

// MovesMade returns the number of moves in the history
func (e *GameEngine) MovesMade() int {
	return e.log.len()
}

// DealAdjustment returns the shifts applied by the difficulty bias
func (e *GameEngine) DealAdjustment() *MultiMove {
	return e.dealAdjustment
}

// Cards returns every card in creation order
func (e *GameEngine) Cards() []*Card {
	out := make([]*Card, len(e.cards))
	copy(out, e.cards)
	return out
}

// Card looks a card up by id
func (e *GameEngine) Card(id int) (*Card, error) {
	if id < 0 || id >= len(e.cards) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCard, id)
	}
	return e.cards[id], nil
}

// CardByCode returns the first card with the given code, e.g. "QH".
// Multi-deck games hold several cards per code; use Card for an exact
// lookup.
func (e *GameEngine) CardByCode(code string) (*Card, error) {
	for _, c := range e.cards {
		if c.Code() == code {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCard, code)
}

// Deck resolves a deck reference
func (e *GameEngine) Deck(ref DeckRef) (*Deck, error) {
	var decks []*Deck
	switch ref.Role {
	case FreeCell:
		decks = e.freeCells
	case Play:
		decks = e.playCells
	case Goal:
		decks = e.goalCells
	case Dealer:
		decks = []*Deck{e.dealer}
	case Staircase, Hand, Junk:
		for _, d := range e.seatDecks {
			if d.role == ref.Role && d.index == ref.Index {
				return d, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownDeck, ref)
	}
	if ref.Index < 0 || ref.Index >= len(decks) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDeck, ref)
	}
	return decks[ref.Index], nil
}

// FreeCells returns the free cell decks
func (e *GameEngine) FreeCells() []*Deck { return e.freeCells }

// PlayStacks returns the play decks
func (e *GameEngine) PlayStacks() []*Deck { return e.playCells }

// Foundations returns the goal decks
func (e *GameEngine) Foundations() []*Deck { return e.goalCells }

// SeatDecks returns the per-seat decks of the staircase table
func (e *GameEngine) SeatDecks() []*Deck { return e.seatDecks }

// Undo reverts the last move. It returns false when there is nothing to
// undo.
func (e *GameEngine) Undo() bool {
	e.endReplay()
	return e.undo()
}

// Redo re-executes the last undone move. It returns false when there is
// nothing to redo.
func (e *GameEngine) Redo() bool {
	e.endReplay()
	return e.redo()
}

// endReplay stops a win replay and drops the won flag when the replay left
// the table short of a full set of goals.
func (e *GameEngine) endReplay() {
	if !e.replay.active {
		return
	}
	e.replay = replayState{}
	e.won = e.isComplete()
}

func (e *GameEngine) undo() bool {
	m, ok := e.log.popHistory()
	if !ok {
		return false
	}
	n := e.log.len() + 1
	m.Undo()
	e.log.pushRedo(m)
	if !e.replay.active {
		e.won = false
	}
	e.calculateDragableCards()
	e.observer.MoveUndone(Describe(m, n))
	return true
}

func (e *GameEngine) redo() bool {
	m, ok := e.log.popRedo()
	if !ok {
		return false
	}
	e.redoing = true
	defer func() { e.redoing = false }()
	e.DoMove(m)
	return true
}

// checkWin sets the won flag and notifies once all goal decks are full
func (e *GameEngine) checkWin() bool {
	if !e.isComplete() {
		return false
	}
	e.won = true
	e.observer.Won()
	return true
}

func (e *GameEngine) isComplete() bool {
	if len(e.goalCells) == 0 {
		return false
	}
	for _, d := range e.goalCells {
		if d.Len() != SuitLength {
			return false
		}
	}
	return true
}

// GetState returns a snapshot of the whole table
func (e *GameEngine) GetState() *GameState {
	state := &GameState{
		ConfigName:   e.config.Name,
		Variant:      e.config.variant(),
		Seed:         e.config.Seed,
		Difficulty:   e.config.Difficulty,
		FreeCells:    deckStates(e.freeCells),
		PlayStacks:   deckStates(e.playCells),
		Foundations:  deckStates(e.goalCells),
		SeatDecks:    deckStates(e.seatDecks),
		Dealer:       e.dealer.state(),
		MovableLimit: e.MovableStackLimit(false),
		Won:          e.won,
		MovesMade:    e.log.len(),
		CanUndo:      e.CanUndo(),
		CanRedo:      e.CanRedo(),
	}
	if e.won {
		state.Message = "All foundations complete"
	}
	return state
}

func deckStates(decks []*Deck) []DeckState {
	if len(decks) == 0 {
		return nil
	}
	out := make([]DeckState, len(decks))
	for i, d := range decks {
		out[i] = d.state()
	}
	return out
}

var _ Engine = (*GameEngine)(nil)
