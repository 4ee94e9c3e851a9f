package engine

// replayState drives the win replay. While active, undo keeps the won flag.
type replayState struct {
	active  bool
	forward bool
}

// ReplayStep advances the win replay by one move: the whole game is undone
// move by move, then redone, then undone again for as long as the caller
// keeps stepping. It returns false when the game is not won or there is no
// history to replay. Any manual Undo or Redo ends the replay.
func (e *GameEngine) ReplayStep() bool {
	if !e.won {
		return false
	}
	if !e.replay.active {
		e.replay = replayState{active: true}
		e.log.clearRedo()
	}

	for turn := 0; turn < 2; turn++ {
		if e.replay.forward {
			if e.redo() {
				return true
			}
		} else if e.undo() {
			return true
		}
		e.replay.forward = !e.replay.forward
	}

	e.replay.active = false
	return false
}

// Replaying reports whether a win replay is in progress
func (e *GameEngine) Replaying() bool {
	return e.replay.active
}
