package server

import (
	"time"

	"github.com/tomz197/flapssh/internal/scores"
)

// Snapshot is a view of the hub for rendering. Clients read it every frame
// without locking; each GetSnapshot call returns its own copy.
type Snapshot struct {
	Players     int            // Connected sessions
	TopScores   []scores.Entry // Best scores, best first
	Scoring     bool           // A score service is configured
	RefreshedAt time.Time      // Last successful leaderboard refresh; zero if never
}

// ClientHandle represents one session's registration with the hub.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to the session (shutdown, etc.)
}

// ClientEvent is sent from the hub to a session.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)
