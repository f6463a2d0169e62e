// Package config provides YAML-based configuration loading and validation
// for the invaders simulation.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

// InvadersConfig contains all configuration for the invaders game.
type InvadersConfig struct {
	Playfield Playfield `yaml:"playfield"`
	Timing    Timing    `yaml:"timing"`
	Ship      Ship      `yaml:"ship"`
}

// Playfield defines the screen buffer dimensions.
type Playfield struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"` // Display pixels per cell
}

// Timing defines the tick budget and fire rate.
type Timing struct {
	TickMS         int `yaml:"tick_ms"`
	ShotCooldownMS int `yaml:"shot_cooldown_ms"`
}

// Ship defines player ship placement.
type Ship struct {
	Margin int `yaml:"margin"` // Gap from the left, right and bottom edges
}

// Validate checks that the ship fits in the playfield and timings are usable.
func (c InvadersConfig) Validate() error {
	if c.Ship.Margin < 0 {
		return fmt.Errorf("config: ship margin %d is negative", c.Ship.Margin)
	}
	if minW := invaders.ShipWidth + 2*c.Ship.Margin; c.Playfield.Width < minW {
		return fmt.Errorf("config: playfield width %d is smaller than ship plus margins (%d)", c.Playfield.Width, minW)
	}
	// One free row above the ship for shots to spawn into.
	if minH := invaders.ShipHeight + c.Ship.Margin + 1; c.Playfield.Height < minH {
		return fmt.Errorf("config: playfield height %d is smaller than ship plus margin (%d)", c.Playfield.Height, minH)
	}
	if c.Playfield.Scale < 1 {
		return fmt.Errorf("config: scale %d must be at least 1", c.Playfield.Scale)
	}
	if c.Timing.TickMS <= 0 {
		return fmt.Errorf("config: tick_ms %d must be positive", c.Timing.TickMS)
	}
	if c.Timing.ShotCooldownMS < 0 {
		return fmt.Errorf("config: shot_cooldown_ms %d is negative", c.Timing.ShotCooldownMS)
	}
	return nil
}

// Runtime converts the file format into the configuration games consume.
func (c InvadersConfig) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		Width:        c.Playfield.Width,
		Height:       c.Playfield.Height,
		Scale:        c.Playfield.Scale,
		TickBudget:   time.Duration(c.Timing.TickMS) * time.Millisecond,
		ShotCooldown: time.Duration(c.Timing.ShotCooldownMS) * time.Millisecond,
		ShipMargin:   c.Ship.Margin,
	}
}
