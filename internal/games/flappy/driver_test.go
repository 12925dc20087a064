package flappy

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

type transition struct{ from, to Phase }

func newTestDriver() (*Driver, *core.ManualClock, *[]transition) {
	g, clock := newTestGame(1)
	d := NewDriver(g)
	var seen []transition
	d.OnPhaseChange(func(from, to Phase, _ Snapshot) {
		seen = append(seen, transition{from, to})
	})
	return d, clock, &seen
}

func TestDriverFlapWalksThroughPhases(t *testing.T) {
	d, clock, seen := newTestDriver()

	d.Input().Trigger(core.ActionFlap)
	if snap := d.Tick(clock.Advance(frame)); snap.Phase != PhaseReady {
		t.Fatalf("flap in Idle should start a session, phase = %v", snap.Phase)
	}

	d.Input().Trigger(core.ActionFlap)
	snap := d.Tick(clock.Advance(frame))
	if snap.Phase != PhaseActive {
		t.Fatalf("flap in Ready should activate, phase = %v", snap.Phase)
	}
	// The impulse is applied before this tick's integration.
	p := d.Game().Config().Physics
	if want := p.JumpStrength + p.Gravity; snap.Avatar.Velocity != want {
		t.Errorf("velocity = %v, expected %v", snap.Avatar.Velocity, want)
	}

	want := []transition{{PhaseIdle, PhaseReady}, {PhaseReady, PhaseActive}}
	if len(*seen) != len(want) {
		t.Fatalf("transitions = %v, expected %v", *seen, want)
	}
	for i := range want {
		if (*seen)[i] != want[i] {
			t.Errorf("transition %d = %v, expected %v", i, (*seen)[i], want[i])
		}
	}
}

func TestDriverStartAndFlapSameFrame(t *testing.T) {
	d, clock, _ := newTestDriver()
	d.Input().Trigger(core.ActionStart)
	d.Input().Trigger(core.ActionFlap)

	if snap := d.Tick(clock.Advance(frame)); snap.Phase != PhaseReady {
		t.Errorf("one frame must not skip Ready, phase = %v", snap.Phase)
	}
}

func TestDriverEdgeAppliedOnce(t *testing.T) {
	d, clock, _ := newTestDriver()
	d.Input().Trigger(core.ActionStart)
	d.Tick(clock.Advance(frame))
	d.Input().Trigger(core.ActionFlap)
	d.Tick(clock.Advance(frame))

	v := d.Game().Snapshot().Avatar.Velocity
	snap := d.Tick(clock.Advance(frame))
	if snap.Avatar.Velocity <= v {
		t.Error("a consumed flap edge must not be applied again")
	}
}

func TestDriverPointerReleaseEndsLift(t *testing.T) {
	d, clock, _ := newTestDriver()
	d.Input().Trigger(core.ActionStart)
	d.Tick(clock.Advance(frame))

	d.Input().PressPointer(clock.Now())
	d.Tick(clock.Advance(frame))
	d.Input().ReleasePointer()

	if d.Game().Phase() != PhaseActive {
		t.Fatalf("press should activate, phase = %v", d.Game().Phase())
	}
	snap := d.Tick(clock.Advance(frame))
	if snap.Lift {
		t.Error("lift should end with the release")
	}
}

func TestDriverPointerHoldLifts(t *testing.T) {
	d, clock, _ := newTestDriver()
	d.Input().Trigger(core.ActionStart)
	d.Tick(clock.Advance(frame))
	d.Input().Trigger(core.ActionFlap)
	d.Tick(clock.Advance(frame))

	d.Input().PressPointer(clock.Now())
	snap := d.Tick(clock.Advance(frame))
	if !snap.Lift {
		t.Fatal("held pointer should lift while Active")
	}
	for range 30 {
		snap = d.Tick(clock.Advance(frame))
		if !snap.Lift {
			t.Fatal("pointer hold must not time out")
		}
	}
}

func TestDriverRestartAfterOver(t *testing.T) {
	d, clock, seen := newTestDriver()
	d.Input().Trigger(core.ActionStart)
	d.Tick(clock.Advance(frame))
	d.Input().Trigger(core.ActionFlap)
	d.Tick(clock.Advance(frame))

	// Free fall into the ground.
	for range 400 {
		if d.Tick(clock.Advance(frame)).Phase == PhaseOver {
			break
		}
	}
	if d.Game().Phase() != PhaseOver {
		t.Fatal("expected the run to end")
	}
	last := (*seen)[len(*seen)-1]
	if last != (transition{PhaseActive, PhaseOver}) {
		t.Errorf("last transition = %v, expected active->over", last)
	}

	d.Input().Trigger(core.ActionRestart)
	if snap := d.Tick(clock.Advance(frame)); snap.Phase != PhaseReady || snap.Score != 0 {
		t.Errorf("restart should reset into Ready, got %v score %d", snap.Phase, snap.Score)
	}
}

func TestDriverRestartIgnoredWhileActive(t *testing.T) {
	d, clock, _ := newTestDriver()
	d.Input().Trigger(core.ActionStart)
	d.Tick(clock.Advance(frame))
	d.Input().Trigger(core.ActionFlap)
	d.Tick(clock.Advance(frame))

	d.Input().Trigger(core.ActionRestart)
	if snap := d.Tick(clock.Advance(frame)); snap.Phase != PhaseActive {
		t.Errorf("restart mid-run should be ignored, phase = %v", snap.Phase)
	}
}

func TestDriverHeldKeyIsOneEdge(t *testing.T) {
	d, clock, seen := newTestDriver()
	start := clock.Now()

	d.Input().PressKey(start)
	if snap := d.Tick(clock.Advance(frame)); snap.Phase != PhaseReady {
		t.Fatalf("key press in Idle should start a session, phase = %v", snap.Phase)
	}

	// Keep holding: autorepeat begins after half a second.
	for range 60 {
		now := clock.Advance(frame)
		if now.Sub(start) >= 500*time.Millisecond {
			d.Input().PressKey(now)
		}
		d.Tick(now)
	}

	if got := d.Game().Phase(); got != PhaseReady {
		t.Errorf("autorepeat must not flap again, phase = %v", got)
	}
	if len(*seen) != 1 {
		t.Errorf("transitions = %v, expected only idle -> ready", *seen)
	}
}

func TestDriverUsesTickTimeline(t *testing.T) {
	// The game's own clock never moves; only tick times do.
	d, clock, _ := newTestDriver()
	now := clock.Now().Add(time.Hour)

	d.Input().Trigger(core.ActionStart)
	d.Tick(now)
	d.Input().Trigger(core.ActionFlap)
	now = now.Add(frame)
	snap := d.Tick(now)
	if snap.Phase != PhaseActive {
		t.Fatalf("phase = %v, expected active", snap.Phase)
	}
	if snap.ActiveFor != 0 {
		t.Errorf("ActiveFor = %v on the first active tick, expected 0", snap.ActiveFor)
	}
	if len(snap.Obstacles) != 0 {
		t.Fatal("spawn timer should restart at the tick that started the session")
	}

	interval := d.Game().Config().Obstacles.SpawnInterval
	snap = d.Tick(now.Add(interval))
	if snap.ActiveFor != interval {
		t.Errorf("ActiveFor = %v, expected %v", snap.ActiveFor, interval)
	}
	if len(snap.Obstacles) != 2 {
		t.Errorf("expected one pair once the interval passed, got %d obstacles", len(snap.Obstacles))
	}
}
