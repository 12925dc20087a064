package flappy

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestStream(seed int64) (*Stream, config.FlappyConfig) {
	cfg := config.DefaultFlappyConfig()
	return NewStream(seed, cfg.Field, cfg.Obstacles), cfg
}

func TestSpawnPairGeometry(t *testing.T) {
	s, cfg := newTestStream(42)
	ground := cfg.Field.GroundLine()
	minH := cfg.Obstacles.MinHeight
	gap := cfg.Obstacles.Gap

	for i := range 1000 {
		top, bottom := s.Spawn()

		if top.Height < minH || bottom.Height < minH {
			t.Fatalf("pair %d: heights %v/%v below minimum %v", i, top.Height, bottom.Height, minH)
		}
		if top.Height+gap+bottom.Height != ground {
			t.Fatalf("pair %d: %v + %v + %v != %v", i, top.Height, gap, bottom.Height, ground)
		}
		if bottom.Y-top.Height != gap {
			t.Fatalf("pair %d: gap band %v, expected %v", i, bottom.Y-top.Height, gap)
		}
		if top.Y != 0 || bottom.Y+bottom.Height != ground {
			t.Fatalf("pair %d: members not anchored to ceiling and ground", i)
		}
		if top.Pair != bottom.Pair || !top.Top || bottom.Top {
			t.Fatalf("pair %d: members mislabelled: %+v %+v", i, top, bottom)
		}
		if top.X != cfg.Field.Width {
			t.Fatalf("pair %d: spawned at x=%v, expected right edge", i, top.X)
		}
	}
}

func TestSpawnDegenerateRange(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	// Exactly room for the gap and two minimum obstacles.
	cfg.Obstacles.Gap = cfg.Field.GroundLine() - 2*cfg.Obstacles.MinHeight
	s := NewStream(1, cfg.Field, cfg.Obstacles)

	top, bottom := s.Spawn()
	if top.Height != cfg.Obstacles.MinHeight || bottom.Height != cfg.Obstacles.MinHeight {
		t.Errorf("expected both at min height, got %v/%v", top.Height, bottom.Height)
	}
}

func TestMaybeSpawnInterval(t *testing.T) {
	s, cfg := newTestStream(7)
	s.Reset(t0)
	interval := cfg.Obstacles.SpawnInterval

	if s.MaybeSpawn(t0.Add(interval)) {
		t.Error("spawn requires strictly more than the interval")
	}
	if !s.MaybeSpawn(t0.Add(interval + time.Millisecond)) {
		t.Fatal("expected spawn after interval")
	}
	if s.MaybeSpawn(t0.Add(interval + 2*time.Millisecond)) {
		t.Error("timer should restart after a spawn")
	}
}

func TestTwoConsecutivePairs(t *testing.T) {
	s, cfg := newTestStream(7)
	s.Reset(t0)
	step := cfg.Obstacles.SpawnInterval + time.Millisecond

	s.MaybeSpawn(t0.Add(step))
	s.MaybeSpawn(t0.Add(2 * step))

	obs := s.Obstacles()
	if len(obs) != 4 {
		t.Fatalf("expected 4 obstacles, got %d", len(obs))
	}
	for i := 1; i < len(obs); i++ {
		if obs[i].Pair < obs[i-1].Pair {
			t.Errorf("obstacles out of creation order at %d", i)
		}
	}
	if obs[0].Pair == obs[2].Pair {
		t.Error("second spawn should be a new pair")
	}
}

func TestAdvanceAndPrune(t *testing.T) {
	s, cfg := newTestStream(3)
	s.Spawn()
	s.Spawn()
	obs := s.Obstacles()
	// Move the first pair so its trailing edge sits exactly on the left boundary.
	obs[0].X = -cfg.Obstacles.Width
	obs[1].X = -cfg.Obstacles.Width

	if n := s.Prune(); n != 2 {
		t.Fatalf("Prune removed %d, expected 2", n)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 live obstacles, got %d", s.Len())
	}

	before := s.Obstacles()[0].X
	s.Advance(1.5)
	if got := s.Obstacles()[0].X; got != before-1.5 {
		t.Errorf("x = %v, expected %v", got, before-1.5)
	}
}

func TestResetClearsStream(t *testing.T) {
	s, _ := newTestStream(3)
	s.Spawn()
	s.Reset(t0)
	if s.Len() != 0 {
		t.Errorf("Reset left %d obstacles", s.Len())
	}
}

func TestStreamDeterministicBySeed(t *testing.T) {
	a, _ := newTestStream(99)
	b, _ := newTestStream(99)
	for i := range 50 {
		ta, _ := a.Spawn()
		tb, _ := b.Spawn()
		if ta.Height != tb.Height {
			t.Fatalf("spawn %d differs: %v vs %v", i, ta.Height, tb.Height)
		}
	}
}
