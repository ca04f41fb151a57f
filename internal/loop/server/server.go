// Package server is the hub shared by all sessions of one process. Sessions
// never share game state; the hub only tracks who is connected, keeps the
// leaderboard fresh and forwards score submissions.
package server

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flapssh/internal/loop/config"
	"github.com/tomz197/flapssh/internal/scores"
)

// ErrScoringDisabled is returned by Submit when no score service is set.
var ErrScoringDisabled = errors.New("score service not configured")

// GameServer is the interface clients use to communicate with the hub.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	GetSnapshot() *Snapshot
	Submit(ctx context.Context, sub scores.Submission) (scores.Result, error)
}

// Server tracks connected sessions and publishes snapshots for them.
type Server struct {
	board        scores.Board
	logger       *log.Logger
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	top          []scores.Entry
	refreshedAt  time.Time
	refreshCh    chan struct{}
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a hub. board may be nil to play without scores.
func NewServer(board scores.Board, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		board:        board,
		logger:       logger,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		refreshCh:    make(chan struct{}, 1),
	}
	s.publishLocked()
	return s
}

// Run refreshes the leaderboard on a fixed interval and after every accepted
// submission. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	if s.board == nil {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(config.LeaderboardRefresh)
	defer ticker.Stop()

	s.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		case <-s.refreshCh:
			s.refresh(ctx)
		}
	}
}

// refresh reloads the leaderboard. A failed refresh keeps the previous one.
func (s *Server) refresh(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, config.SubmitTimeout)
	defer cancel()

	top, err := s.board.List(ctx, config.LeaderboardSize)
	if err != nil {
		if parent.Err() == nil {
			s.logger.Warn("leaderboard refresh failed", "err", err)
		}
		return
	}

	s.mu.Lock()
	s.top = top
	s.refreshedAt = time.Now()
	s.publishLocked()
	s.mu.Unlock()
}

// Shutdown gracefully shuts down the hub by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.GetSnapshot().Players == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle
	s.publishLocked()
	return handle
}

// UnregisterClient removes a client and closes its event channel.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.publishLocked()
}

// GetSnapshot returns a copy of the current snapshot. Callers may keep or
// modify it without affecting other sessions.
func (s *Server) GetSnapshot() *Snapshot {
	snap := *s.snapshot.Load()
	snap.TopScores = slices.Clone(snap.TopScores)
	return &snap
}

// Submit forwards a score to the board with a bounded timeout. An accepted
// submission triggers a leaderboard refresh.
func (s *Server) Submit(ctx context.Context, sub scores.Submission) (scores.Result, error) {
	if s.board == nil {
		return scores.Result{}, ErrScoringDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, config.SubmitTimeout)
	defer cancel()

	res, err := s.board.Submit(ctx, sub)
	if err != nil {
		return res, err
	}
	select {
	case s.refreshCh <- struct{}{}:
	default:
	}
	return res, nil
}

// publishLocked stores a fresh snapshot. Must be called with the lock held
// or before the server is shared.
func (s *Server) publishLocked() {
	top := make([]scores.Entry, len(s.top))
	copy(top, s.top)
	s.snapshot.Store(&Snapshot{
		Players:     len(s.clients),
		TopScores:   top,
		Scoring:     s.board != nil,
		RefreshedAt: s.refreshedAt,
	})
}
