// Package config centralizes all tunable game parameters.
package config

import "time"

// Design resolution. Gameplay distances in Tuning are expressed in this
// space and scaled to the live canvas every frame.
const (
	BaseWidth  = 400.0
	BaseHeight = 600.0
)

// Max render resolution in terminal cells. Larger terminals get a centred,
// bordered play field.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Themes
const (
	ThemeCount = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Hub
const (
	LeaderboardRefresh = 10 * time.Second
	LeaderboardSize    = 5
	SubmitTimeout      = 10 * time.Second
)

// Profile prompt
const (
	MaxFirstNameLength = 32
)
