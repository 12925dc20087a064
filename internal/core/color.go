package core

// Color represents a foreground color for a screen cell. Values name the
// role of what is drawn; each frontend maps roles to its own terminal
// colors.
type Color uint8

// Palette roles.
const (
	ColorDefault Color = iota
	ColorSky
	ColorCloud
	ColorPipe
	ColorPipeCap
	ColorGround
	ColorGrass
	ColorBird
	ColorBeak
	ColorThrust
	ColorText
	ColorTitle
	ColorAccent
	ColorHint     // Fading control hint, strongest
	ColorHintFade // Fading control hint, halfway
	ColorHintDim  // Fading control hint, nearly gone
)

// HintColor returns the hint color for a fade level in [0, 1], where 1 is
// fully visible. It returns ColorDefault (and ok=false) once the hint has
// faded out.
func HintColor(level float64) (c Color, ok bool) {
	switch {
	case level <= 0:
		return ColorDefault, false
	case level > 2.0/3:
		return ColorHint, true
	case level > 1.0/3:
		return ColorHintFade, true
	default:
		return ColorHintDim, true
	}
}
