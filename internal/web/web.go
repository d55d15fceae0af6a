// Package web serves the browser frontend: an embedded canvas page and a
// websocket endpoint on which each connection plays its own game.
package web

import (
	_ "embed"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/dodge/internal/game"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 25 * time.Second
	maxMessage   = 1 << 12
	frameRate    = 60
	inputBacklog = 64
)

//go:embed index.html
var indexPage []byte

// Client message types.
const (
	MsgMove  = "move"
	MsgEnter = "enter"
	MsgLeave = "leave"
	MsgClick = "click"
)

// ClientMessage is a pointer event sent by the browser, in world coordinates.
type ClientMessage struct {
	Type string  `json:"type" jsonschema:"enum=move,enum=enter,enum=leave,enum=click"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

// ServerMessage carries one frame to the browser.
type ServerMessage struct {
	Type     string        `json:"type" jsonschema:"enum=snapshot"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// Options configures a Handler.
type Options struct {
	Config  game.Config         // Zero value means game.DefaultConfig
	Store   game.HighScoreStore // Shared by all sessions; nil keeps scores in memory
	Logger  *log.Logger
	NewRand func() game.Random // Nil seeds a fresh PCG source per session
}

// Handler serves the page and the play socket.
type Handler struct {
	mux      *http.ServeMux
	cfg      game.Config
	store    game.HighScoreStore
	logger   *log.Logger
	newRand  func() game.Random
	upgrader websocket.Upgrader
	sessions atomic.Int64
	nextID   atomic.Int64
}

// NewHandler creates the HTTP handler.
func NewHandler(opts Options) *Handler {
	cfg := opts.Config
	if cfg.WorldWidth == 0 {
		cfg = game.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	newRand := opts.NewRand
	if newRand == nil {
		newRand = func() game.Random {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}

	h := &Handler{
		mux:     http.NewServeMux(),
		cfg:     cfg,
		store:   opts.Store,
		logger:  logger,
		newRand: newRand,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	h.mux.HandleFunc("GET /{$}", h.servePage)
	h.mux.HandleFunc("GET /ws", h.serveSocket)
	h.mux.HandleFunc("GET /healthz", h.serveHealth)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Sessions returns the number of open play sockets.
func (h *Handler) Sessions() int {
	return int(h.sessions.Load())
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (h *Handler) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"sessions": h.Sessions()})
}

func (h *Handler) serveSocket(w http.ResponseWriter, r *http.Request) {
	cfg := h.cfg
	if debug, err := strconv.ParseBool(r.URL.Query().Get("debug")); err == nil {
		cfg.Debug = debug
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	id := h.nextID.Add(1)
	logger := h.logger.With("session", id, "remote", r.RemoteAddr)

	g, err := game.New(cfg, h.newRand(), h.store)
	if g == nil {
		logger.Error("creating game", "err", err)
		return
	}
	if err != nil {
		logger.Warn("high score unavailable", "err", err)
	}

	h.sessions.Add(1)
	defer h.sessions.Add(-1)
	logger.Info("web session started")

	s := &session{conn: conn, game: g, logger: logger}
	s.run()
	logger.Info("web session ended", "runs", g.Runs(), "high", g.HighScore())
}
