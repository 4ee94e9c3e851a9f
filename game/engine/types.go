package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit is one of the four French suits. Games with more than four suits
// cycle through them, so two goal decks can share a suit.
type Suit int

const (
	Spades Suit = iota + 1
	Hearts
	Diamonds
	Clubs
)

// Rank is the card value, Ace low.
type Rank int

const (
	Ace Rank = iota + 1
	Deuce
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Color is derived from the suit.
type Color int

const (
	Black Color = iota
	Red
)

// DeckRole tags what a deck is used for.
type DeckRole string

const (
	FreeCell  DeckRole = "free"
	Play      DeckRole = "play"
	Goal      DeckRole = "goal"
	Staircase DeckRole = "staircase"
	Hand      DeckRole = "hand"
	Junk      DeckRole = "junk"
	Dealer    DeckRole = "dealer"
)

// MoveType tags the kind of Move.
type MoveType string

const (
	SingleMoveType MoveType = "single"
	StackMoveType  MoveType = "stack"
	SwapMoveType   MoveType = "swap"
	MultiMoveType  MoveType = "multi"
)

// Variant selects which game a config describes.
type Variant string

const (
	VariantFreeCell  Variant = "freecell"
	VariantStaircase Variant = "staircase"
)

const (
	// Limits
	MaxFreeCells  = 6
	MaxGoalCells  = 8
	MaxStacks     = 12
	SuitLength    = 13
	SuitsPerDeck  = 4
	SeatsPerTable = 4
	JunkPerSeat   = 3

	// Dealing
	DefaultShufflePasses = 3
	MaxShufflePasses     = 16
	LowRankCeiling       = Three
)

// Seat names the per-player positions of the staircase table.
var Seats = [SeatsPerTable]string{"south", "west", "north", "east"}

var suitLetters = map[Suit]string{Spades: "S", Hearts: "H", Diamonds: "D", Clubs: "C"}

var rankLetters = map[Rank]string{
	Ace: "A", Deuce: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "10", Jack: "J", Queen: "Q", King: "K",
}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	}
	return fmt.Sprintf("suit(%d)", int(s))
}

// Color returns Red for hearts and diamonds, Black otherwise.
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

func (r Rank) String() string {
	if l, ok := rankLetters[r]; ok {
		return l
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Opposite returns the other color.
func (c Color) Opposite() Color {
	if c == Red {
		return Black
	}
	return Red
}

// DeckRef addresses a deck by role and index, e.g. "play:3".
type DeckRef struct {
	Role  DeckRole `json:"role"`
	Index int      `json:"index"`
}

func (r DeckRef) String() string {
	return fmt.Sprintf("%s:%d", r.Role, r.Index)
}

// ParseDeckRef parses the "role:index" form produced by DeckRef.String.
func ParseDeckRef(s string) (DeckRef, error) {
	role, idx, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return DeckRef{}, fmt.Errorf("%w: %q is not role:index", ErrUnknownDeck, s)
	}
	index, err := strconv.Atoi(idx)
	if err != nil || index < 0 {
		return DeckRef{}, fmt.Errorf("%w: bad index in %q", ErrUnknownDeck, s)
	}
	switch DeckRole(role) {
	case FreeCell, Play, Goal, Staircase, Hand, Junk, Dealer:
	default:
		return DeckRef{}, fmt.Errorf("%w: unknown role %q", ErrUnknownDeck, role)
	}
	return DeckRef{Role: DeckRole(role), Index: index}, nil
}

// GameConfig describes one variant of the game. All values that the
// original statics held live here and are passed to NewGame.
type GameConfig struct {
	Name              string  `json:"name" yaml:"name"`
	Description       string  `json:"description" yaml:"description"`
	Variant           Variant `json:"variant" yaml:"variant"`
	Seed              int64   `json:"seed" yaml:"seed"`
	Difficulty        float64 `json:"difficulty" yaml:"difficulty"`
	Suits             int     `json:"suits" yaml:"suits"`
	Stacks            int     `json:"stacks" yaml:"stacks"`
	FreeCells         int     `json:"free_cells" yaml:"free_cells"`
	ShufflePasses     int     `json:"shuffle_passes,omitempty" yaml:"shuffle_passes,omitempty"`
	DeferAutocomplete bool    `json:"defer_autocomplete,omitempty" yaml:"defer_autocomplete,omitempty"`
}

// CardState is the presentation view of a card.
type CardState struct {
	ID        int    `json:"id"`
	Code      string `json:"code"`
	Suit      string `json:"suit"`
	Rank      int    `json:"rank"`
	Color     string `json:"color"`
	FaceUp    bool   `json:"face_up"`
	Draggable bool   `json:"draggable"`
}

// DeckState is the presentation view of a deck, cards bottom to top.
type DeckState struct {
	Ref   string      `json:"ref"`
	Role  DeckRole    `json:"role"`
	Index int         `json:"index"`
	Seat  string      `json:"seat,omitempty"`
	Cards []CardState `json:"cards"`
}

// GameState is a snapshot of the whole table.
type GameState struct {
	ConfigName   string      `json:"config_name"`
	Variant      Variant     `json:"variant"`
	Seed         int64       `json:"seed"`
	Difficulty   float64     `json:"difficulty"`
	FreeCells    []DeckState `json:"free_cells"`
	PlayStacks   []DeckState `json:"play_stacks"`
	Foundations  []DeckState `json:"foundations"`
	SeatDecks    []DeckState `json:"seat_decks,omitempty"`
	Dealer       DeckState   `json:"dealer"`
	MovableLimit int         `json:"movable_limit"`
	Won          bool        `json:"won"`
	MovesMade    int         `json:"moves_made"`
	CanUndo      bool        `json:"can_undo"`
	CanRedo      bool        `json:"can_redo"`
	Message      string      `json:"message,omitempty"`
}

// MoveRecord is the loggable description of an executed move.
type MoveRecord struct {
	Number int      `json:"number"`
	Type   MoveType `json:"type"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Cards  []string `json:"cards"`
}
