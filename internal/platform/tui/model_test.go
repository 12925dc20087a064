package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	return NewModel(Options{
		Game:    config.DefaultFlappyConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1},
		Store:   store,
		Player:  "tester",
		Clock:   core.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
}

// step feeds msg through Update and returns the new model.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

// tick advances the model's clock by one frame and delivers the tick, so
// key holds expire on the same timeline as the simulation.
func tick(t *testing.T, m Model) Model {
	t.Helper()
	clock, ok := m.clock.(*core.ManualClock)
	if !ok {
		t.Fatalf("test model clock is %T", m.clock)
	}
	return step(t, m, TickMsg(clock.Advance(time.Second/60)))
}

func TestKeyMapMapKey(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", keySpace, core.ActionFlap},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlap},
		{"w", runeKey('w'), core.ActionFlap},
		{"enter", keyEnter, core.ActionStart},
		{"r", runeKey('r'), core.ActionRestart},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('x'), core.ActionNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestDeliverMouse(t *testing.T) {
	in := core.NewInputBuffer(time.Second, time.Second)
	now := time.Now()

	press := tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	if !DeliverMouse(in, press, now) || !in.Held(now) {
		t.Fatal("left press should start a hold")
	}
	release := tea.MouseMsg{Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}
	if !DeliverMouse(in, release, now) || in.Held(now) {
		t.Error("release should end the hold")
	}
	wheel := tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}
	if DeliverMouse(in, wheel, now) {
		t.Error("wheel events are not game input")
	}
}

func TestModelStartAndFlap(t *testing.T) {
	m := newTestModel(t, nil)
	if m.Snapshot().Phase != flappy.PhaseIdle {
		t.Fatal("new model should be idle")
	}

	m = tick(t, step(t, m, keyEnter))
	if m.Snapshot().Phase != flappy.PhaseReady {
		t.Fatalf("enter should start a session, phase = %v", m.Snapshot().Phase)
	}

	m = tick(t, step(t, m, keySpace))
	if m.Snapshot().Phase != flappy.PhaseActive {
		t.Fatalf("space should start the run, phase = %v", m.Snapshot().Phase)
	}
}

func TestModelMouseStartsRun(t *testing.T) {
	m := newTestModel(t, nil)
	press := tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	release := tea.MouseMsg{Action: tea.MouseActionRelease}

	m = tick(t, step(t, step(t, m, press), release))
	m = tick(t, step(t, m, press))
	if m.Snapshot().Phase != flappy.PhaseActive {
		t.Fatalf("two clicks should reach Active, phase = %v", m.Snapshot().Phase)
	}
	if !m.Snapshot().Lift {
		t.Error("held button should lift")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	out := m.View()
	if !strings.Contains(out, "F L A P P Y") {
		t.Error("idle view should show the intro")
	}
	if !strings.Contains(out, "run board") {
		t.Error("footer should list key help")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m := newTestModel(t, nil)
	m = tick(t, step(t, m, keyEnter))
	m = tick(t, step(t, m, keySpace))

	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.Snapshot().Phase != flappy.PhaseActive {
		t.Error("resize must not reset the run")
	}
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen %dx%d, expected 120x39", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBoardOnlyWhenFrozen(t *testing.T) {
	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = step(t, m, keyTab)
	if !m.BoardOpen() {
		t.Fatal("tab in Idle should open the board")
	}
	if !strings.Contains(m.View(), "RUN BOARD") {
		t.Error("board view expected")
	}

	m = step(t, m, keyEsc)
	if m.BoardOpen() {
		t.Fatal("esc should close the board")
	}

	m = tick(t, step(t, m, keyEnter))
	m = step(t, m, keyTab)
	if m.BoardOpen() {
		t.Error("board must not open mid-session")
	}
}

func TestModelRecordsFinishedRun(t *testing.T) {
	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = tick(t, step(t, m, keyEnter))
	m = tick(t, step(t, m, keySpace))

	// Free fall into the ground.
	for range 600 {
		m = tick(t, m)
		if m.Snapshot().Phase == flappy.PhaseOver {
			break
		}
	}
	if m.Snapshot().Phase != flappy.PhaseOver {
		t.Fatal("expected the run to end")
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Player != "tester" || runs[0].Cause != "ground" {
		t.Errorf("unexpected runs: %+v", runs)
	}

	m = step(t, m, keyTab)
	if !m.BoardOpen() || m.board.Rows() != 1 {
		t.Error("board should list the finished run")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorTitle)
	s.DrawText(2, 0, "cd")
	out := RenderScreen(s)
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00.0"},
		{5300 * time.Millisecond, "0:05.3"},
		{75 * time.Second, "1:15.0"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.d); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, expected %q", tc.d, got, tc.want)
		}
	}
}
