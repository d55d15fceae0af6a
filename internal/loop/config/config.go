// Package config centralizes the tunables of the terminal frontends.
package config

import "time"

// Maximum render resolution in terminal cells. Larger terminals get a
// centered, bordered play area. 160x45 cells give 160x90 half-block
// sub-pixels, the same 16:9 aspect as the world.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 45
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Leaderboard
const (
	BoardSize          = 5               // Entries shown in the HUD
	BoardRefreshPeriod = 250 * time.Millisecond
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
