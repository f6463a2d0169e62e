package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	Width        int           // Playfield width in cells
	Height       int           // Playfield height in cells
	Scale        int           // Display pixels per cell (window and PNG output)
	TickBudget   time.Duration // Target duration of one tick
	ShotCooldown time.Duration // Minimum time between two player shots
	ShipMargin   int           // Gap between the ship and the playfield edges
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Width:        150,
		Height:       100,
		Scale:        6,
		TickBudget:   10 * time.Millisecond,
		ShotCooldown: 200 * time.Millisecond,
		ShipMargin:   2,
	}
}

// GameState summarizes the simulation for platforms and session history.
type GameState struct {
	Tick       int // Ticks simulated since Reset
	ShotsFired int // Shots spawned since Reset
	LiveShots  int // Shots currently in play
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
