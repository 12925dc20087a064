// Package flappy implements the flappy-bird simulation: avatar physics, the
// obstacle stream, collision and scoring, and the Idle/Ready/Active/Over
// state machine. It has no rendering or I/O; frontends draw from Snapshot.
package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game is a single simulation session. It is not safe for concurrent use;
// asynchronous input goes through a Driver.
type Game struct {
	cfg    config.FlappyConfig
	clock  core.Clock
	stream *Stream
	avatar Avatar

	phase Phase
	score int
	best  int
	lift  bool
	cause TerminalCause

	tick        uint64
	runTicks    uint64
	hover       float64
	activeSince time.Time
	lastTick    time.Time
}

// New creates a game in the Idle phase. cfg must already be validated.
func New(cfg config.FlappyConfig, clock core.Clock, seed int64) *Game {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &Game{
		cfg:    cfg,
		clock:  clock,
		stream: NewStream(seed, cfg.Field, cfg.Obstacles),
		avatar: NewAvatar(cfg),
		phase:  PhaseIdle,
	}
}

// Start moves Idle or Over into Ready, resetting the session. Returns false
// (and does nothing) in any other phase.
func (g *Game) Start() bool {
	return g.StartAt(g.clock.Now())
}

// StartAt is Start with the spawn timer restarted at now. Hosts that drive
// Tick from their own timeline use it to stay on that timeline.
func (g *Game) StartAt(now time.Time) bool {
	if g.phase != PhaseIdle && g.phase != PhaseOver {
		return false
	}
	g.reset(now)
	g.phase = PhaseReady
	return true
}

// reset restores the per-session state. bestScore survives.
func (g *Game) reset(now time.Time) {
	g.avatar = NewAvatar(g.cfg)
	g.stream.Reset(now)
	g.score = 0
	g.lift = false
	g.hover = 0
	g.cause = CauseNone
	g.runTicks = 0
	g.activeSince = time.Time{}
}

// Activate is the edge-triggered flap input. In Ready it starts the run and
// applies the jump impulse; in Active it flaps. Otherwise it is a no-op.
func (g *Game) Activate() bool {
	return g.ActivateAt(g.clock.Now())
}

// ActivateAt is Activate with the run start recorded at now.
func (g *Game) ActivateAt(now time.Time) bool {
	switch g.phase {
	case PhaseReady:
		g.hover = 0
		g.phase = PhaseActive
		g.activeSince = now
		Flap(&g.avatar, g.cfg.Physics)
		return true
	case PhaseActive:
		Flap(&g.avatar, g.cfg.Physics)
		return true
	default:
		return false
	}
}

// SetLift sets the level-triggered lift input. Repeated calls with the same
// value have no additional effect.
func (g *Game) SetLift(held bool) {
	g.lift = held
}

// Tick advances the simulation by one frame and returns the resulting
// snapshot. Only Active simulates; Ready animates the cosmetic hover; Idle
// and Over are frozen.
func (g *Game) Tick(now time.Time) Snapshot {
	g.tick++
	g.lastTick = now

	switch g.phase {
	case PhaseReady:
		g.hover = HoverOffset(now, g.cfg.Hover)
	case PhaseActive:
		g.step(now)
	}
	return g.Snapshot()
}

// step runs one Active frame in fixed order: obstacles, avatar, then
// collision against this frame's positions.
func (g *Game) step(now time.Time) {
	g.runTicks++

	g.stream.Prune()
	g.stream.MaybeSpawn(now)
	g.stream.Advance(g.cfg.Obstacles.Speed)

	Integrate(&g.avatar, g.cfg.Physics, g.lift)
	grounded := Confine(&g.avatar, g.cfg.Field)

	out := Evaluate(g.avatar, g.stream.Obstacles(), g.cfg.Avatar.HitboxFraction)
	g.stream.MarkPassed(out.Crossed)
	g.score += out.Points

	switch {
	case out.Collided:
		g.end(CauseCollision)
	case grounded:
		g.end(CauseGround)
	}
}

// end latches the terminal state.
func (g *Game) end(cause TerminalCause) {
	g.phase = PhaseOver
	g.cause = cause
	g.lift = false
	if g.score > g.best {
		g.best = g.score
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Score returns the current session's score.
func (g *Game) Score() int {
	return g.score
}

// BestScore returns the highest score reached in this process.
func (g *Game) BestScore() int {
	return g.best
}

// Cause returns what ended the last run, or CauseNone.
func (g *Game) Cause() TerminalCause {
	return g.cause
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}
