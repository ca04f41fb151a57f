package client

import (
	"time"

	"github.com/tomz197/flapssh/internal/input"
)

// Screen is what the client shows on top of the game.
type Screen int

const (
	ScreenGame     Screen = iota // Title, play, game over; follows the session phase
	ScreenProfile                // Asking for a name before the first score is saved
	ScreenShutdown               // Server is shutting down
)

// SubmitStatus tracks the score submission for the last finished run.
type SubmitStatus int

const (
	SubmitNone     SubmitStatus = iota // Nothing submitted for this run
	SubmitPending                      // Request in flight
	SubmitSaved                        // Accepted by the score service
	SubmitFailed                       // Blocking alert shown; S retries, ESC dismisses
	SubmitSkipped                      // Player dismissed the alert or the profile prompt
	SubmitDisabled                     // No score service configured
)

// profileField is the focused field of the profile prompt.
type profileField int

const (
	fieldFirstName profileField = iota
	fieldLastInitial
)

// ProfileForm is the name prompt shown when the score service needs a
// profile for a new player.
type ProfileForm struct {
	FirstName   []rune
	LastInitial rune
	field       profileField
	Err         string
}

// ClientState holds per-session UI state around the simulation.
type ClientState struct {
	Input   input.Input
	Screen  Screen
	Running bool // Client loop running

	Submit      SubmitStatus
	SubmitErr   string // Message of the last failed submission
	SubmitScore int    // Score of the run being submitted
	Best        int    // Best score this session
	SavedBest   int    // Best score the service reported for this player; -1 if unknown
	Profile     ProfileForm

	delta         time.Duration // Frame delta time
	clock         time.Duration // Animation clock
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	wasInactive   bool
	prevScreen    Screen
	lastInput     time.Time
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:    ScreenGame,
		Running:   true,
		SavedBest: -1,
		lastInput: time.Now(),
	}
}
