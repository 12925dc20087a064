// Package scene draws a flappy.Snapshot into a core.Screen. The simulation
// runs in field units; the scene scales them to whatever cell grid the
// frontend provides.
package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Smallest grid the scene will draw a playfield into.
const (
	MinWidth  = 24
	MinHeight = 10
)

// Glyphs.
const (
	glyphPipe   = '█'
	glyphGrass  = '▀'
	glyphSoil   = '▒'
	glyphStripe = '░'
	glyphCloud  = '░'
	glyphBody   = '█'
)

// Cloud positions in field units.
var clouds = []core.RectF{
	core.NewRectF(90, 55, 140, 75),
	core.NewRectF(295, 20, 130, 75),
}

// Scene renders snapshots. It is stateless apart from its settings and may
// be shared between sessions.
type Scene struct {
	pres config.FlappyPresentation
}

// New creates a scene with the given presentation settings.
func New(pres config.FlappyPresentation) *Scene {
	return &Scene{pres: pres}
}

// viewport maps field units to cells.
type viewport struct {
	sx, sy float64
}

func newViewport(s *core.Screen, field config.FlappyField) viewport {
	return viewport{
		sx: float64(s.Width()) / field.Width,
		sy: float64(s.Height()) / field.Height,
	}
}

func (v viewport) x(fx float64) int { return int(math.Round(fx * v.sx)) }
func (v viewport) y(fy float64) int { return int(math.Round(fy * v.sy)) }

// rect converts a field box to cells. Anything with positive size covers at
// least one cell.
func (v viewport) rect(r core.RectF) core.Rect {
	x0, y0 := v.x(r.X), v.y(r.Y)
	x1, y1 := v.x(r.Right()), v.y(r.Bottom())
	if r.W > 0 && x1 == x0 {
		x1++
	}
	if r.H > 0 && y1 == y0 {
		y1++
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Draw clears s and renders the snapshot into it.
func (sc *Scene) Draw(s *core.Screen, snap flappy.Snapshot) {
	s.Clear()
	if s.Width() < MinWidth || s.Height() < MinHeight {
		s.DrawTextCentered(s.Height()/2, "terminal too small", core.ColorText)
		return
	}

	v := newViewport(s, snap.Field)
	sc.drawSky(s, v)
	sc.drawPipes(s, v, snap.Obstacles)
	sc.drawAvatar(s, v, snap)
	sc.drawThrust(s, v, snap)
	sc.drawGround(s, v, snap.Field)
	sc.drawHUD(s, snap)

	switch snap.Phase {
	case flappy.PhaseIdle:
		sc.drawIntro(s, snap)
	case flappy.PhaseReady:
		sc.drawGetReady(s)
	case flappy.PhaseActive:
		sc.drawHint(s, v, snap)
	case flappy.PhaseOver:
		sc.drawGameOver(s, snap)
	}
}

func (sc *Scene) drawSky(s *core.Screen, v viewport) {
	for _, c := range clouds {
		r := v.rect(c)
		for y := r.Y; y < r.Bottom(); y++ {
			// Round the corners by pulling the top and bottom rows in.
			inset := 0
			if r.H > 1 && (y == r.Y || y == r.Bottom()-1) {
				inset = r.W / 4
			}
			s.DrawHLine(r.X+inset, y, r.W-2*inset, glyphCloud, core.ColorCloud)
		}
	}
}

func (sc *Scene) drawPipes(s *core.Screen, v viewport, obstacles []flappy.Obstacle) {
	for _, o := range obstacles {
		s.FillRect(v.rect(o.Rect()), glyphPipe, core.ColorPipe)

		capX := o.X - (sc.pres.CapWidth-o.Width)/2
		capH := math.Min(sc.pres.CapHeight, o.Height)
		capY := o.Y
		if o.Top {
			capY = o.Height - capH
		}
		if capH > 0 {
			s.FillRect(v.rect(core.NewRectF(capX, capY, sc.pres.CapWidth, capH)), glyphPipe, core.ColorPipeCap)
		}
	}
}

// tiltGlyphs returns the wing and beak for a rotation.
func tiltGlyphs(rotation float64, flapping bool) (wing, beak rune) {
	wing = 'v'
	if flapping {
		wing = '^'
	}
	switch {
	case rotation < -0.1:
		beak = '/'
	case rotation > 0.1:
		beak = '\\'
	default:
		beak = '>'
	}
	return wing, beak
}

// avatarCells returns the avatar's cell row and horizontal extent.
func avatarCells(v viewport, p flappy.Pose) (y, x0, width int) {
	width = max(3, v.x(2*p.HalfW))
	x0 = v.x(p.X) - width/2
	y = int(math.Floor((p.Y + p.Hover) * v.sy))
	return y, x0, width
}

func (sc *Scene) drawAvatar(s *core.Screen, v viewport, snap flappy.Snapshot) {
	p := snap.Avatar
	y, x0, w := avatarCells(v, p)
	wing, beak := tiltGlyphs(p.Rotation, p.Velocity < 0 || snap.Lift)

	s.SetColored(x0, y, wing, core.ColorBird)
	s.DrawHLine(x0+1, y, w-2, glyphBody, core.ColorBird)
	s.SetColored(x0+w-1, y, beak, core.ColorBeak)
}

// particle returns a stable pseudo-random value in [0, 1) for the given
// tick and slot, so particles flicker without an RNG in the render path.
func particle(tick uint64, slot int) float64 {
	h := tick*2654435761 + uint64(slot)*40503 //#nosec G115 -- hash computation
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return float64(h%1000) / 1000
}

var thrustGlyphs = []rune{'*', '·', '°'}

func (sc *Scene) drawThrust(s *core.Screen, v viewport, snap flappy.Snapshot) {
	if snap.Phase != flappy.PhaseActive || !snap.Lift {
		return
	}
	p := snap.Avatar
	row, _, _ := avatarCells(v, p)
	for i := range 3 {
		fx := p.X - 10 + particle(snap.Tick, i)*20
		fy := p.Y + p.HalfH + particle(snap.Tick, i+3)*5
		y := max(int(math.Floor(fy*v.sy)), row+1)
		s.SetColored(v.x(fx), y, thrustGlyphs[i], core.ColorThrust)
	}
}

func (sc *Scene) drawGround(s *core.Screen, v viewport, field config.FlappyField) {
	top := v.y(field.GroundLine())
	s.DrawHLine(0, top, s.Width(), glyphGrass, core.ColorGrass)
	for y := top + 1; y < s.Height(); y++ {
		g := glyphSoil
		if (y-top)%2 == 0 {
			g = glyphStripe
		}
		s.DrawHLine(0, y, s.Width(), g, core.ColorGround)
	}
}

func (sc *Scene) drawHUD(s *core.Screen, snap flappy.Snapshot) {
	if snap.Phase == flappy.PhaseIdle {
		return
	}
	s.DrawTextCentered(1, fmt.Sprintf("%d", snap.Score), core.ColorText)
	s.DrawTextCentered(2, fmt.Sprintf("High Score: %d", snap.BestScore), core.ColorAccent)
}

// panel draws a boxed block of centered lines in the middle of the screen.
func panel(s *core.Screen, lines []string, colors []core.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	r := core.NewRect((s.Width()-w)/2, (s.Height()-h)/2, w, h)
	s.FillRect(r, ' ', core.ColorDefault)
	s.DrawBox(r, core.ColorText)
	for i, l := range lines {
		s.DrawTextCentered(r.Y+1+i, l, colors[i])
	}
}

func (sc *Scene) drawIntro(s *core.Screen, snap flappy.Snapshot) {
	lines := []string{
		"F L A P P Y",
		"",
		"Hold SPACE or the mouse to rise,",
		"release to glide between the pipes.",
		"",
		"SPACE / ENTER / click  start",
		"TAB  run board    Q  quit",
	}
	colors := []core.Color{
		core.ColorTitle, core.ColorDefault,
		core.ColorText, core.ColorText, core.ColorDefault,
		core.ColorAccent, core.ColorAccent,
	}
	if snap.BestScore > 0 {
		lines = append(lines, fmt.Sprintf("Best this session: %d", snap.BestScore))
		colors = append(colors, core.ColorAccent)
	}
	panel(s, lines, colors)
}

func (sc *Scene) drawGetReady(s *core.Screen) {
	y := s.Height() / 3
	s.DrawTextCentered(y, "GET READY", core.ColorTitle)
	s.DrawTextCentered(y+2, "Press & hold SPACE to fly", core.ColorText)
	s.DrawTextCentered(y+3, "Release to glide gently", core.ColorText)
}

// HintLevel returns how visible the control hint is after activeFor of
// play: 1 at the start of a run, falling to 0 at fade.
func HintLevel(activeFor, fade time.Duration) float64 {
	if fade <= 0 || activeFor >= fade {
		return 0
	}
	return 1 - float64(activeFor)/float64(fade)
}

func (sc *Scene) drawHint(s *core.Screen, v viewport, snap flappy.Snapshot) {
	c, ok := core.HintColor(HintLevel(snap.ActiveFor, sc.pres.HelpFade))
	if !ok {
		return
	}
	y := min(v.y(snap.Field.GroundLine()-20), s.Height()-1) - 1
	s.DrawTextCentered(y, "Hold SPACE to rise, release to glide", c)
}

func (sc *Scene) drawGameOver(s *core.Screen, snap flappy.Snapshot) {
	cause := "You crashed."
	if snap.Cause == flappy.CauseGround {
		cause = "You hit the ground."
	}
	lines := []string{
		"GAME OVER",
		cause,
		"",
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Best:  %d", snap.BestScore),
		"",
		"SPACE / R  play again",
		"TAB  run board    Q  quit",
	}
	colors := []core.Color{
		core.ColorTitle, core.ColorText, core.ColorDefault,
		core.ColorText, core.ColorAccent, core.ColorDefault,
		core.ColorAccent, core.ColorAccent,
	}
	panel(s, lines, colors)
}
