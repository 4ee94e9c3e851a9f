package engine

// EventType names a notification sent to the presentation layer.
type EventType string

const (
	EventDraggableChanged EventType = "draggable_changed"
	EventMoveExecuted     EventType = "move_executed"
	EventMoveUndone       EventType = "move_undone"
	EventWin              EventType = "win"
	EventNewGame          EventType = "new_game"
)

// Observer receives fire-and-forget notifications. The engine ignores
// anything an observer does.
type Observer interface {
	CardDraggableChanged(card *Card, old, new bool)
	MoveExecuted(move MoveRecord)
	MoveUndone(move MoveRecord)
	Won()
	NewGame(config GameConfig)
}

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) CardDraggableChanged(*Card, bool, bool) {}
func (NopObserver) MoveExecuted(MoveRecord)                {}
func (NopObserver) MoveUndone(MoveRecord)                  {}
func (NopObserver) Won()                                   {}
func (NopObserver) NewGame(GameConfig)                     {}

// Event is the serializable form of a notification.
type Event struct {
	Type      EventType   `json:"type"`
	CardID    *int        `json:"card_id,omitempty"`
	Card      string      `json:"card,omitempty"`
	Old       *bool       `json:"old,omitempty"`
	New       *bool       `json:"new,omitempty"`
	Move      *MoveRecord `json:"move,omitempty"`
	Seed      *int64      `json:"seed,omitempty"`
	Variation string      `json:"config,omitempty"`
}

// EventLog is an Observer that buffers events until the caller drains
// them. It is not safe for concurrent use; callers serialize access to
// the engine anyway.
type EventLog struct {
	events []Event
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) CardDraggableChanged(card *Card, old, new bool) {
	id := card.ID()
	l.events = append(l.events, Event{
		Type:   EventDraggableChanged,
		CardID: &id,
		Card:   card.Code(),
		Old:    &old,
		New:    &new,
	})
}

func (l *EventLog) MoveExecuted(move MoveRecord) {
	l.events = append(l.events, Event{Type: EventMoveExecuted, Move: &move})
}

func (l *EventLog) MoveUndone(move MoveRecord) {
	l.events = append(l.events, Event{Type: EventMoveUndone, Move: &move})
}

func (l *EventLog) Won() {
	l.events = append(l.events, Event{Type: EventWin})
}

func (l *EventLog) NewGame(config GameConfig) {
	seed := config.Seed
	l.events = append(l.events, Event{Type: EventNewGame, Seed: &seed, Variation: config.Name})
}

// Len returns the number of buffered events.
func (l *EventLog) Len() int {
	return len(l.events)
}

// Drain returns the buffered events and empties the log.
func (l *EventLog) Drain() []Event {
	out := l.events
	l.events = nil
	return out
}
