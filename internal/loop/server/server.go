// Package server tracks the terminal sessions connected to one process.
//
// Each session plays its own independent game; the server only keeps what
// sessions share: the player count, the leaderboard of the day and the
// shutdown broadcast.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/dodge/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID, score int)
	GetStatus() *Status
}

// Server manages the session registry and the shared leaderboard.
type Server struct {
	status       atomic.Pointer[Status]
	clients      map[int]*ClientHandle
	nextClientID int
	requestCh    chan request // Score reports and unregistrations, in call order
	board        *board
	now          func() time.Time
	logger       *log.Logger
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client
}

// ScoreReport is a finished run reported by a client.
type ScoreReport struct {
	ClientID int
	Score    int
}

// request is a client call handled by Run. Score reports and
// unregistrations share one channel so a run reported just before leaving
// is never lost.
type request struct {
	score      *ScoreReport
	unregister int
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventBoardRecord                    // The client's run entered the leaderboard
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for session and board events.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock replaces time.Now, used for day rollover of the board.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer creates a new session server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		requestCh:    make(chan request, 64),
		now:          time.Now,
		logger:       log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.board = newBoard(s.now())

	// Create initial empty status
	s.status.Store(&Status{Day: s.board.day})

	return s
}

// Run processes score reports and unregistrations and publishes status.
// Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.BoardRefreshPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-s.requestCh:
			if req.score != nil {
				s.recordScore(*req.score)
			} else {
				s.removeClient(req.unregister)
			}
		case <-ticker.C:
		}
		s.publishStatus()
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.mu.Lock()
	s.clients[id] = handle
	s.mu.Unlock()
	s.logger.Info("player joined", "id", id, "user", username)
	return handle
}

// UnregisterClient removes a client from the server once its earlier
// score reports have been handled.
func (s *Server) UnregisterClient(clientID int) {
	s.requestCh <- request{unregister: clientID}
}

// removeClient closes the client's event channel and forgets it.
func (s *Server) removeClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.logger.Info("player left", "id", clientID, "user", handle.Username)
}

// ReportScore submits a finished run for the leaderboard.
func (s *Server) ReportScore(clientID, score int) {
	select {
	case s.requestCh <- request{score: &ScoreReport{ClientID: clientID, Score: score}}:
	default:
		// Report channel full, drop the score
		s.logger.Warn("dropped score report", "id", clientID, "score", score)
	}
}

// GetStatus returns the current shared status.
func (s *Server) GetStatus() *Status {
	return s.status.Load()
}

// recordScore puts a finished run on the board and tells the client if it made it.
func (s *Server) recordScore(r ScoreReport) {
	s.mu.RLock()
	handle, ok := s.clients[r.ClientID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	if !s.board.record(s.now(), handle.ID, handle.Username, r.Score) {
		return
	}
	s.logger.Info("board record", "user", handle.Username, "score", r.Score)

	select {
	case handle.EventsCh <- ClientEvent{Type: EventBoardRecord}:
	default:
	}
}

// publishStatus stores a fresh immutable status for clients.
func (s *Server) publishStatus() {
	s.mu.RLock()
	players := len(s.clients)
	s.mu.RUnlock()

	// Day rollover without new scores still empties the board.
	s.board.record(s.now(), 0, "", 0)

	s.status.Store(&Status{
		Players:   players,
		TopScores: s.board.top(config.BoardSize),
		Day:       s.board.day,
	})
}
