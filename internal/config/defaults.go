package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the reference configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Playfield: Playfield{
			Width:  150,
			Height: 100,
			Scale:  6,
		},
		Timing: Timing{
			TickMS:         10,
			ShotCooldownMS: 200,
		},
		Ship: Ship{
			Margin: 2,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "invaders":
		return defaultInvadersYAML
	default:
		return nil
	}
}
