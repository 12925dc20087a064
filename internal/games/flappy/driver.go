package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// PhaseFunc is called after every phase transition with the snapshot taken
// right after it.
type PhaseFunc func(from, to Phase, snap Snapshot)

// Driver sequences one Game per frame. Frontends deliver input to the
// driver's buffer from any goroutine; the driver applies it at the start of
// the next tick, then advances the game. It holds no game rules.
type Driver struct {
	game    *Game
	input   *core.InputBuffer
	onPhase PhaseFunc
}

// NewDriver wraps game with an input buffer using the game's key timings.
func NewDriver(game *Game) *Driver {
	in := game.cfg.Input
	return &Driver{
		game:  game,
		input: core.NewInputBuffer(in.KeyHold, in.RepeatDelay),
	}
}

// OnPhaseChange registers a transition callback. Pass nil to remove it.
func (d *Driver) OnPhaseChange(fn PhaseFunc) {
	d.onPhase = fn
}

// Game returns the driven game.
func (d *Driver) Game() *Game {
	return d.game
}

// Input returns the buffer frontends write to.
func (d *Driver) Input() *core.InputBuffer {
	return d.input
}

// Tick drains buffered input, applies it, and advances the game one frame.
func (d *Driver) Tick(now time.Time) Snapshot {
	frame := d.input.Drain(now)
	g := d.game

	start := func() bool { return g.StartAt(now) }
	activate := func() bool { return g.ActivateAt(now) }

	started := false
	if frame.Has(core.ActionStart) || frame.Has(core.ActionRestart) {
		started = d.transition(start)
	}
	if frame.Has(core.ActionFlap) && !started {
		switch g.Phase() {
		case PhaseIdle, PhaseOver:
			d.transition(start)
		default:
			d.transition(activate)
		}
	}
	g.SetLift(frame.Lift && g.Phase() == PhaseActive)

	before := g.Phase()
	snap := g.Tick(now)
	if snap.Phase != before {
		d.notify(before, snap.Phase, snap)
	}
	return snap
}

// transition runs op and reports the phase change, if any.
func (d *Driver) transition(op func() bool) bool {
	before := d.game.Phase()
	if !op() {
		return false
	}
	if after := d.game.Phase(); after != before {
		d.notify(before, after, d.game.Snapshot())
	}
	return true
}

func (d *Driver) notify(from, to Phase, snap Snapshot) {
	if d.onPhase != nil {
		d.onPhase(from, to, snap)
	}
}
