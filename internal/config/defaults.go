package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It matches the
// embedded defaults/flappy.yaml.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Field: FlappyField{
			Width:        480,
			Height:       640,
			GroundHeight: 100,
		},
		Physics: FlappyPhysics{
			Gravity:           0.25,
			JumpStrength:      -4,
			LiftForce:         -0.4,
			MaxUpwardVelocity: -6,
			MaxFallVelocity:   3,
			RotationGain:      0.035,
			RotationMax:       0.4,
		},
		Avatar: FlappyAvatar{
			X:              80,
			Width:          40,
			Height:         30,
			RestOffset:     -50,
			HitboxFraction: 0.25,
		},
		Hover: FlappyHover{
			Amplitude: 3,
			Period:    300 * time.Millisecond,
		},
		Obstacles: FlappyObstacles{
			Width:         70,
			Gap:           180,
			MinHeight:     80,
			SpawnInterval: 2200 * time.Millisecond,
			Speed:         1.5,
		},
		Input: FlappyInput{
			KeyHold:     180 * time.Millisecond,
			RepeatDelay: 700 * time.Millisecond,
		},
		Presentation: FlappyPresentation{
			HelpFade:  5 * time.Second,
			CapWidth:  80,
			CapHeight: 28,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
