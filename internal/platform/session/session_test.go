package session

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func TestNewDefaults(t *testing.T) {
	s := New(Options{Game: config.DefaultFlappyConfig()})
	if s.Runtime.Seed == 0 {
		t.Error("zero seed should be replaced")
	}
	if s.Runtime.TickRate != 60 || s.Frame() != time.Second/60 {
		t.Errorf("tick rate %d, frame %v", s.Runtime.TickRate, s.Frame())
	}
	if s.Player != DefaultPlayer {
		t.Errorf("player = %q", s.Player)
	}
	if s.Logger == nil {
		t.Error("logger should default to a discarding logger")
	}
	if !s.CanBrowse() {
		t.Error("idle session should allow browsing")
	}
}

func TestSessionRecordsRun(t *testing.T) {
	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var buf bytes.Buffer
	clock := core.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := New(Options{
		Game:    config.DefaultFlappyConfig(),
		Runtime: core.RuntimeConfig{Seed: 4, TickRate: 60},
		Store:   store,
		Logger:  log.New(&buf),
		Player:  "ana",
		Clock:   clock,
	})

	in := s.Driver.Input()
	in.Trigger(core.ActionStart)
	s.Driver.Tick(clock.Advance(s.Frame()))
	if s.CanBrowse() {
		t.Error("browsing should be blocked in Ready")
	}
	in.Trigger(core.ActionFlap)
	for range 600 {
		if s.Driver.Tick(clock.Advance(s.Frame())).Phase == flappy.PhaseOver {
			break
		}
	}

	runs, err := store.TopRuns(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(runs))
	}
	r := runs[0]
	if r.Player != "ana" || r.Cause != "ground" || r.Ticks == 0 || r.Duration <= 0 {
		t.Errorf("unexpected run: %+v", r)
	}
	if !strings.Contains(buf.String(), "run over") {
		t.Errorf("expected a run over log line, got %q", buf.String())
	}
	if !s.CanBrowse() {
		t.Error("browsing should be allowed after the run")
	}
}

func TestPhaseHookWithoutStore(t *testing.T) {
	hook := PhaseHook(log.New(&bytes.Buffer{}), nil, "p")
	// Must not panic.
	hook(flappy.PhaseActive, flappy.PhaseOver, flappy.Snapshot{Score: 2})
}
