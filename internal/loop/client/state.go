package client

import (
	"time"

	"github.com/tomz197/dodge/internal/game"
	"github.com/tomz197/dodge/internal/input"
)

// ClientState holds per-session frontend state around the game.
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shuttingDown  bool          // Server announced shutdown
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	wasInactive   bool
	prevPhase     game.Phase
	pointerInside bool // Last pointer report was inside the play area
	reportedRun   int  // Last run whose final score went to the server
	boardRecord   bool // Last finished run entered the leaderboard
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{Running: true}
}
