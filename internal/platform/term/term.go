// Package term is the tcell frontend. It drives a session from a ticker
// while a goroutine feeds terminal events through a channel, and draws the
// scene straight into tcell cells.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/session"
	"github.com/vovakirdan/tui-flappy/internal/scene"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// boardRows is how many runs the board overlay lists.
const boardRows = 10

// styles maps palette roles to tcell styles.
var styles = map[core.Color]tcell.Style{
	core.ColorDefault:  tcell.StyleDefault,
	core.ColorSky:      tcell.StyleDefault.Foreground(tcell.ColorSkyblue),
	core.ColorCloud:    tcell.StyleDefault.Foreground(tcell.ColorWhite),
	core.ColorPipe:     tcell.StyleDefault.Foreground(tcell.ColorYellowGreen),
	core.ColorPipeCap:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorGround:   tcell.StyleDefault.Foreground(tcell.ColorKhaki),
	core.ColorGrass:    tcell.StyleDefault.Foreground(tcell.ColorLimeGreen),
	core.ColorBird:     tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true),
	core.ColorBeak:     tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true),
	core.ColorThrust:   tcell.StyleDefault.Foreground(tcell.ColorOrange),
	core.ColorText:     tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	core.ColorTitle:    tcell.StyleDefault.Foreground(tcell.ColorLightYellow).Bold(true),
	core.ColorAccent:   tcell.StyleDefault.Foreground(tcell.ColorGray),
	core.ColorHint:     tcell.StyleDefault.Foreground(tcell.ColorWhite),
	core.ColorHintFade: tcell.StyleDefault.Foreground(tcell.ColorSilver),
	core.ColorHintDim:  tcell.StyleDefault.Foreground(tcell.ColorDimGray),
}

// Frontend runs one session on a tcell screen.
type Frontend struct {
	screen    tcell.Screen
	sess      *session.Session
	scene     *scene.Scene
	buf       *core.Screen
	snap      flappy.Snapshot
	showBoard bool
}

// New creates a frontend on an initialised screen.
func New(screen tcell.Screen, opts session.Options) *Frontend {
	w, h := screen.Size()
	sess := session.New(opts)
	return &Frontend{
		screen: screen,
		sess:   sess,
		scene:  scene.New(opts.Game.Presentation),
		buf:    core.NewScreen(w, h),
		snap:   sess.Driver.Game().Snapshot(),
	}
}

// Session returns the running session.
func (f *Frontend) Session() *session.Session {
	return f.sess
}

// HandleEvent applies one terminal event. Returns false when the user asked
// to quit.
func (f *Frontend) HandleEvent(ev tcell.Event, now time.Time) bool {
	in := f.sess.Driver.Input()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		if f.showBoard {
			return f.handleBoardKey(ev)
		}
		switch MapKey(ev) {
		case core.ActionQuit:
			return false
		case core.ActionFlap:
			in.PressKey(now)
		case core.ActionStart:
			in.Trigger(core.ActionStart)
		case core.ActionRestart:
			in.Trigger(core.ActionRestart)
		case core.ActionNone:
			if ev.Key() == tcell.KeyTab && f.sess.CanBrowse() {
				f.showBoard = true
				in.Reset()
			}
		}

	case *tcell.EventMouse:
		if f.showBoard {
			return true
		}
		if ev.Buttons()&tcell.Button1 != 0 {
			in.PressPointer(now)
		} else {
			in.ReleasePointer()
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		f.buf.Resize(w, h)
		f.screen.Sync()
	}
	return true
}

func (f *Frontend) handleBoardKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyTab, tcell.KeyEscape:
		f.showBoard = false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'b':
			f.showBoard = false
		}
	}
	return true
}

// MapKey translates a tcell key event to a game action.
func MapKey(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return core.ActionQuit
	case tcell.KeyUp:
		return core.ActionFlap
	case tcell.KeyEnter:
		return core.ActionStart
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 'w', 'k':
			return core.ActionFlap
		case 'r':
			return core.ActionRestart
		case 'q':
			return core.ActionQuit
		}
	}
	return core.ActionNone
}

// Frame advances the session one tick and draws the result.
func (f *Frontend) Frame(now time.Time) flappy.Snapshot {
	f.snap = f.sess.Driver.Tick(now)
	f.Draw()
	return f.snap
}

// Draw renders the last snapshot (or the board) to the tcell screen.
func (f *Frontend) Draw() {
	if f.showBoard {
		f.drawBoard()
	} else {
		f.scene.Draw(f.buf, f.snap)
	}

	for y := range f.buf.Height() {
		for x := range f.buf.Width() {
			c := f.buf.GetCell(x, y)
			style, ok := styles[c.Color]
			if !ok {
				style = tcell.StyleDefault
			}
			f.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	f.screen.Show()
}

// drawBoard lists the best runs in the cell buffer.
func (f *Frontend) drawBoard() {
	f.buf.Clear()
	f.buf.DrawTextCentered(1, "RUN BOARD", core.ColorTitle)

	lines := f.boardLines()
	for i, l := range lines {
		f.buf.DrawTextCentered(3+i, l, core.ColorText)
	}
	f.buf.DrawTextCentered(f.buf.Height()-2, "TAB / ESC back    Q quit", core.ColorAccent)
}

func (f *Frontend) boardLines() []string {
	if f.sess.Store == nil {
		return []string{"no run board"}
	}
	runs, err := f.sess.Store.TopRuns(boardRows)
	if err != nil {
		return []string{"could not load runs: " + err.Error()}
	}
	if len(runs) == 0 {
		return []string{"No runs recorded yet."}
	}
	lines := make([]string, 0, len(runs))
	for i, r := range runs {
		lines = append(lines, formatRun(i+1, r))
	}
	return lines
}

func formatRun(rank int, r storage.Run) string {
	return fmt.Sprintf("%2d. %-14.14s %4d  %6.1fs  %s", rank, r.Player, r.Score, r.Duration.Seconds(), r.Cause)
}

// Loop runs the session until ctx is done or the user quits. Events are
// read on their own goroutine and handled between ticks.
func (f *Frontend) Loop(ctx context.Context) error {
	ticker := time.NewTicker(f.sess.Frame())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go f.screen.ChannelEvents(events, quit)

	f.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !f.HandleEvent(ev, time.Now()) {
				return nil
			}

		case now := <-ticker.C:
			f.Frame(now)
		}
	}
}

// Run opens the terminal, plays until the user quits, and restores the
// terminal.
func Run(ctx context.Context, opts session.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: cannot init screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()

	w, h := screen.Size()
	opts.Runtime.ScreenW, opts.Runtime.ScreenH = w, h

	return New(screen, opts).Loop(ctx)
}
