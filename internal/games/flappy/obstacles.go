package flappy

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is one half of a pipe pair. Only X and Passed change after
// creation.
type Obstacle struct {
	Pair   uint64  // Sequence number shared by both members of a pair
	X      float64 // Left edge
	Y      float64 // Top edge
	Width  float64
	Height float64
	Top    bool // Anchored to the top of the field; the scoring member
	Passed bool // Scored (or counted as crossed) already
}

// Rect returns the obstacle's collision rectangle.
func (o Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.Width, o.Height)
}

// Right returns the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// Stream handles spawning, movement, and removal of obstacles.
type Stream struct {
	obstacles []Obstacle
	rng       *rand.Rand
	cfg       config.FlappyObstacles
	field     config.FlappyField
	lastSpawn time.Time
	nextPair  uint64
}

// NewStream creates an empty stream with the given RNG seed.
func NewStream(seed int64, field config.FlappyField, cfg config.FlappyObstacles) *Stream {
	return &Stream{
		obstacles: make([]Obstacle, 0, 8),
		rng:       rand.New(rand.NewSource(seed)),
		cfg:       cfg,
		field:     field,
	}
}

// Reset clears all obstacles and restarts the spawn timer at now.
func (s *Stream) Reset(now time.Time) {
	s.obstacles = s.obstacles[:0]
	s.lastSpawn = now
}

// MaybeSpawn adds a pair once more than the spawn interval has elapsed since
// the previous spawn (or the last Reset). Returns true if it spawned.
func (s *Stream) MaybeSpawn(now time.Time) bool {
	if now.Sub(s.lastSpawn) <= s.cfg.SpawnInterval {
		return false
	}
	s.Spawn()
	s.lastSpawn = now
	return true
}

// Spawn appends one pair at the right edge of the field. The gap top is an
// integer drawn uniformly from [min_height, groundLine-gap-min_height], so
// both members are at least min_height tall.
func (s *Stream) Spawn() (top, bottom Obstacle) {
	ground := s.field.GroundLine()
	gap := s.cfg.Gap
	minH := s.cfg.MinHeight

	lo := int(math.Ceil(minH))
	hi := int(math.Floor(ground - gap - minH))
	gapTop := minH
	if hi >= lo {
		gapTop = float64(lo + s.rng.Intn(hi-lo+1))
	}

	s.nextPair++
	top = Obstacle{
		Pair:   s.nextPair,
		X:      s.field.Width,
		Y:      0,
		Width:  s.cfg.Width,
		Height: gapTop,
		Top:    true,
	}
	bottom = Obstacle{
		Pair:   s.nextPair,
		X:      s.field.Width,
		Y:      gapTop + gap,
		Width:  s.cfg.Width,
		Height: ground - gapTop - gap,
	}

	s.obstacles = append(s.obstacles, top, bottom)
	return top, bottom
}

// Advance moves every obstacle left by speed.
func (s *Stream) Advance(speed float64) {
	for i := range s.obstacles {
		s.obstacles[i].X -= speed
	}
}

// Prune removes obstacles whose trailing edge has left the field.
// Returns the number removed.
func (s *Stream) Prune() int {
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.Right() > 0 {
			kept = append(kept, o)
		}
	}
	removed := len(s.obstacles) - len(kept)
	clear(s.obstacles[len(kept):])
	s.obstacles = kept
	return removed
}

// MarkPassed flags the obstacles at the given indices as passed.
func (s *Stream) MarkPassed(indices []int) {
	for _, i := range indices {
		if i >= 0 && i < len(s.obstacles) {
			s.obstacles[i].Passed = true
		}
	}
}

// Obstacles returns the live obstacles in creation order. The slice is owned
// by the stream and must not be modified.
func (s *Stream) Obstacles() []Obstacle {
	return s.obstacles
}

// Len returns the number of live obstacles.
func (s *Stream) Len() int {
	return len(s.obstacles)
}
