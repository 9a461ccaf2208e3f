package task

// State represents the current scheduling State of a task
type State string

const (
	StateReady      State = "ready"
	StateRunning    State = "running"
	StateBlocked    State = "blocked"
	StateSuspended  State = "suspended"
	StateTerminated State = "terminated"
)

// IsSchedulable reports whether a task in this state may be dispatched or
// kept on a ready queue.
func (s State) IsSchedulable() bool {
	return s == StateReady || s == StateRunning
}

// IsBlocked reports whether the task waits for a wake event (sleep timer or
// synchronization primitive).
func (s State) IsBlocked() bool {
	return s == StateBlocked
}
