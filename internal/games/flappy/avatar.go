package flappy

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Avatar is the player-controlled bird. X never changes; Y is the centre of
// the body. Rotation is derived from velocity for presentation and has no
// effect on collisions.
type Avatar struct {
	X        float64
	Y        float64
	Velocity float64 // Negative is up
	Rotation float64 // Radians, positive tilts nose down
	HalfW    float64
	HalfH    float64
}

// NewAvatar returns an avatar at its resting position.
func NewAvatar(cfg config.FlappyConfig) Avatar {
	return Avatar{
		X:     cfg.Avatar.X,
		Y:     cfg.RestY(),
		HalfW: cfg.Avatar.Width / 2,
		HalfH: cfg.Avatar.Height / 2,
	}
}

// Bounds returns the full body box.
func (a Avatar) Bounds() core.RectF {
	return core.RectAround(a.X, a.Y, a.HalfW, a.HalfH)
}

// Hitbox returns the forgiving collision box. fraction is the half-extent as
// a share of the full size, so 0.25 keeps the middle half of the body.
func (a Avatar) Hitbox(fraction float64) core.RectF {
	return core.RectAround(a.X, a.Y, a.HalfW*2*fraction, a.HalfH*2*fraction)
}

// Integrate advances the avatar by one tick: gravity, optional lift, the
// velocity clamp, position and the derived tilt.
func Integrate(a *Avatar, p config.FlappyPhysics, lift bool) {
	a.Velocity += p.Gravity
	if lift {
		a.Velocity += p.LiftForce
	}
	a.Velocity = core.ClampF(a.Velocity, p.MaxUpwardVelocity, p.MaxFallVelocity)

	a.Y += a.Velocity
	a.Rotation = core.ClampF(a.Velocity*p.RotationGain, -p.RotationMax, p.RotationMax)
}

// Flap replaces the current velocity with the jump impulse.
func Flap(a *Avatar, p config.FlappyPhysics) {
	a.Velocity = p.JumpStrength
}

// Confine keeps the avatar inside the sky. Hitting the ceiling stops upward
// motion without a bounce; reaching the ground line pins the avatar to it
// and reports a ground strike.
func Confine(a *Avatar, f config.FlappyField) (grounded bool) {
	if a.Y-a.HalfH < 0 {
		a.Y = a.HalfH
		a.Velocity = 0
	}

	ground := f.GroundLine()
	if a.Y+a.HalfH >= ground {
		a.Y = ground - a.HalfH
		return true
	}
	return false
}

// HoverOffset returns the cosmetic bob applied to the resting avatar while
// waiting for the first flap.
func HoverOffset(now time.Time, h config.FlappyHover) float64 {
	ms := float64(now.UnixNano()) / float64(time.Millisecond)
	period := float64(h.Period) / float64(time.Millisecond)
	return math.Sin(ms/period) * h.Amplitude
}
