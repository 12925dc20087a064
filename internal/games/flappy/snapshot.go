package flappy

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Pose is the avatar state a renderer needs.
type Pose struct {
	X        float64
	Y        float64 // Physics position; draw at Y+Hover
	Velocity float64
	Rotation float64
	HalfW    float64
	HalfH    float64
	Hover    float64 // Cosmetic offset, non-zero only in Ready
}

// Snapshot is a read-only copy of the game state after a tick. It shares no
// memory with the Game.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Avatar    Pose
	Obstacles []Obstacle
	Score     int
	BestScore int
	Lift      bool
	Cause     TerminalCause
	RunTicks  uint64        // Active ticks in the current run
	ActiveFor time.Duration // Wall time since the first flap; 0 outside a run
	Field     config.FlappyField
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(g.stream.Obstacles()))
	copy(obstacles, g.stream.Obstacles())

	var activeFor time.Duration
	if !g.activeSince.IsZero() && !g.lastTick.IsZero() {
		activeFor = max(g.lastTick.Sub(g.activeSince), 0)
	}

	return Snapshot{
		Tick:  g.tick,
		Phase: g.phase,
		Avatar: Pose{
			X:        g.avatar.X,
			Y:        g.avatar.Y,
			Velocity: g.avatar.Velocity,
			Rotation: g.avatar.Rotation,
			HalfW:    g.avatar.HalfW,
			HalfH:    g.avatar.HalfH,
			Hover:    g.hover,
		},
		Obstacles: obstacles,
		Score:     g.score,
		BestScore: g.best,
		Lift:      g.lift,
		Cause:     g.cause,
		RunTicks:  g.runTicks,
		ActiveFor: activeFor,
		Field:     g.cfg.Field,
	}
}

// Hash returns a simple hash of the simulation state for determinism testing.
// Cosmetic fields (hover, elapsed wall time) are excluded.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BestScore) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cause)     //#nosec G115 -- hash computation
	h = h*31 + snap.RunTicks
	h = h*31 + math.Float64bits(snap.Avatar.Y)
	h = h*31 + math.Float64bits(snap.Avatar.Velocity)

	for _, o := range snap.Obstacles {
		h = h*31 + o.Pair
		h = h*31 + math.Float64bits(o.X)
		h = h*31 + math.Float64bits(o.Height)
		if o.Passed {
			h = h*31 + 1
		}
	}
	return h
}
