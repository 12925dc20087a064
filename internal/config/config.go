// Package config provides YAML-based game configuration loading and
// validation.
package config

import "time"

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	Field        FlappyField        `yaml:"field"`
	Physics      FlappyPhysics      `yaml:"physics"`
	Avatar       FlappyAvatar       `yaml:"avatar"`
	Hover        FlappyHover        `yaml:"hover"`
	Obstacles    FlappyObstacles    `yaml:"obstacles"`
	Input        FlappyInput        `yaml:"input"`
	Presentation FlappyPresentation `yaml:"presentation"`
}

// FlappyField defines the playfield size in field units.
type FlappyField struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// FlappyPhysics defines per-tick physics parameters.
type FlappyPhysics struct {
	Gravity           float64 `yaml:"gravity"`
	JumpStrength      float64 `yaml:"jump_strength"`
	LiftForce         float64 `yaml:"lift_force"`
	MaxUpwardVelocity float64 `yaml:"max_upward_velocity"`
	MaxFallVelocity   float64 `yaml:"max_fall_velocity"`
	RotationGain      float64 `yaml:"rotation_gain"`
	RotationMax       float64 `yaml:"rotation_max"`
}

// FlappyAvatar defines the player's size and placement.
type FlappyAvatar struct {
	X              float64 `yaml:"x"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	RestOffset     float64 `yaml:"rest_offset"`
	HitboxFraction float64 `yaml:"hitbox_fraction"`
}

// FlappyHover defines the cosmetic bobbing shown before the first flap.
type FlappyHover struct {
	Amplitude float64       `yaml:"amplitude"`
	Period    time.Duration `yaml:"period"`
}

// FlappyObstacles defines obstacle generation and motion.
type FlappyObstacles struct {
	Width         float64       `yaml:"width"`
	Gap           float64       `yaml:"gap"`
	MinHeight     float64       `yaml:"min_height"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	Speed         float64       `yaml:"speed"`
}

// FlappyInput defines input normalisation.
type FlappyInput struct {
	KeyHold     time.Duration `yaml:"key_hold"`     // Lift after each key press or repeat
	RepeatDelay time.Duration `yaml:"repeat_delay"` // Longest wait for autorepeat to begin
}

// FlappyPresentation holds renderer-only settings.
type FlappyPresentation struct {
	HelpFade  time.Duration `yaml:"help_fade"`
	CapWidth  float64       `yaml:"cap_width"`
	CapHeight float64       `yaml:"cap_height"`
}

// GroundLine returns the y coordinate of the ground surface.
func (f FlappyField) GroundLine() float64 {
	return f.Height - f.GroundHeight
}

// RestY returns the avatar's resting centre.
func (c FlappyConfig) RestY() float64 {
	return c.Field.Height/2 + c.Avatar.RestOffset
}
