package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a playable field. In
// particular every obstacle pair must fit both minimum heights and the gap
// above the ground, so the spawner never has to handle an empty range.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	f := c.Field
	check(f.Width > 0, "field.width must be positive, got %v", f.Width)
	check(f.Height > 0, "field.height must be positive, got %v", f.Height)
	check(f.GroundHeight >= 0 && f.GroundHeight < f.Height,
		"field.ground_height must be in [0, height), got %v", f.GroundHeight)

	p := c.Physics
	check(p.Gravity >= 0, "physics.gravity must not be negative, got %v", p.Gravity)
	check(p.MaxUpwardVelocity < 0, "physics.max_upward_velocity must be negative, got %v", p.MaxUpwardVelocity)
	check(p.MaxFallVelocity > 0, "physics.max_fall_velocity must be positive, got %v", p.MaxFallVelocity)
	check(p.JumpStrength < 0 && p.JumpStrength >= p.MaxUpwardVelocity,
		"physics.jump_strength must be in [max_upward_velocity, 0), got %v", p.JumpStrength)
	check(p.LiftForce <= 0, "physics.lift_force must not be positive, got %v", p.LiftForce)
	check(p.RotationMax >= 0, "physics.rotation_max must not be negative, got %v", p.RotationMax)

	a := c.Avatar
	check(a.Width > 0 && a.Height > 0, "avatar size must be positive, got %vx%v", a.Width, a.Height)
	check(a.X > 0 && a.X < f.Width, "avatar.x must be inside the field, got %v", a.X)
	check(a.HitboxFraction > 0 && a.HitboxFraction <= 0.5,
		"avatar.hitbox_fraction must be in (0, 0.5], got %v", a.HitboxFraction)
	rest := c.RestY()
	check(rest-a.Height/2 >= 0 && rest+a.Height/2 < f.GroundLine(),
		"avatar resting position %v is outside the sky", rest)

	check(c.Hover.Period > 0, "hover.period must be positive, got %v", c.Hover.Period)

	o := c.Obstacles
	check(o.Width > 0, "obstacles.width must be positive, got %v", o.Width)
	check(o.Gap > 0, "obstacles.gap must be positive, got %v", o.Gap)
	check(o.MinHeight >= 0, "obstacles.min_height must not be negative, got %v", o.MinHeight)
	check(o.Speed > 0, "obstacles.speed must be positive, got %v", o.Speed)
	check(o.SpawnInterval > 0, "obstacles.spawn_interval must be positive, got %v", o.SpawnInterval)
	check(f.GroundLine()-o.Gap-2*o.MinHeight >= 0,
		"field too short for gap %v and two obstacles of min_height %v", o.Gap, o.MinHeight)

	check(c.Input.KeyHold >= 0, "input.key_hold must not be negative, got %v", c.Input.KeyHold)
	check(c.Input.RepeatDelay >= c.Input.KeyHold,
		"input.repeat_delay (%v) must not be shorter than input.key_hold (%v)", c.Input.RepeatDelay, c.Input.KeyHold)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
