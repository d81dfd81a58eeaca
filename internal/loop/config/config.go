// Package config centralizes the frame, view and screen constants of the client loop.
// Gameplay balance lives in the YAML tuning of internal/config.
package config

import "time"

// View resolution - the visible playfield in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Max render resolution in terminal cells. Larger terminals get a centred,
// bordered play area instead of a stretched one.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Player
const (
	PlayerBlinkFrequency = 10.0 // Hz, while the hit flash is active
	MaxUsernameLength    = 16   // Maximum display length for player usernames
)

// Globe shown on the country screen.
const (
	GlobeRadius   = 30.0 // Logical units
	GlobeSegments = 48
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

// MaxFrameDelta caps a single simulation step after a stall (e.g. a slow SSH link),
// so entities never tunnel through each other.
const MaxFrameDelta = 100 * time.Millisecond
