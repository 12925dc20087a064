package flappy

// Phase is the game's top-level mode.
type Phase int

const (
	PhaseIdle   Phase = iota // Intro screen, nothing simulated
	PhaseReady               // Reset done, avatar hovering, waiting for first flap
	PhaseActive              // Full simulation
	PhaseOver                // Frozen after a terminal event
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseActive:
		return "active"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// TerminalCause records what ended a run.
type TerminalCause int

const (
	CauseNone TerminalCause = iota
	CauseCollision
	CauseGround
)

// String returns a human-readable name for the cause.
func (c TerminalCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseCollision:
		return "collision"
	case CauseGround:
		return "ground"
	default:
		return "unknown"
	}
}
