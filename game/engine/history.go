package engine

// moveLog holds executed moves and undone moves waiting to be redone.
type moveLog struct {
	history []Move
	redo    []Move
}

// push records an executed move. A brand-new move invalidates redo; a
// replayed one keeps it.
func (l *moveLog) push(m Move, replayed bool) {
	l.history = append(l.history, m)
	if !replayed {
		l.redo = nil
	}
}

func (l *moveLog) popHistory() (Move, bool) {
	if len(l.history) == 0 {
		return nil, false
	}
	m := l.history[len(l.history)-1]
	l.history = l.history[:len(l.history)-1]
	return m, true
}

func (l *moveLog) pushRedo(m Move) {
	l.redo = append(l.redo, m)
}

func (l *moveLog) popRedo() (Move, bool) {
	if len(l.redo) == 0 {
		return nil, false
	}
	m := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	return m, true
}

func (l *moveLog) clearRedo() {
	l.redo = nil
}

func (l *moveLog) reset() {
	l.history = nil
	l.redo = nil
}

func (l *moveLog) len() int {
	return len(l.history)
}

// records describes the history oldest first.
func (l *moveLog) records() []MoveRecord {
	out := make([]MoveRecord, len(l.history))
	for i, m := range l.history {
		out[i] = Describe(m, i+1)
	}
	return out
}
