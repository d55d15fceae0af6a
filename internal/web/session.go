package web

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/dodge/internal/game"
)

// session runs one game for one socket. Only run writes to the connection.
type session struct {
	conn   *websocket.Conn
	game   *game.Game
	logger *log.Logger
	over   bool
}

func (s *session) run() {
	s.conn.SetReadLimit(maxMessage)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	inputs := make(chan ClientMessage, inputBacklog)
	done := make(chan struct{})
	stop := make(chan struct{})
	defer close(stop)
	go s.readLoop(inputs, done, stop)

	frame := time.NewTicker(time.Second / frameRate)
	defer frame.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := s.send(); err != nil {
		return
	}

	last := time.Now()
	for {
		select {
		case <-done:
			return
		case msg := <-inputs:
			s.apply(msg)
		case <-ping.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case now := <-frame.C:
			if err := s.game.Step(now.Sub(last)); err != nil {
				s.logger.Error("saving high score", "err", err)
			}
			last = now
			s.logTransitions()
			if err := s.send(); err != nil {
				return
			}
		}
	}
}

// readLoop decodes pointer messages until the socket fails or run stops.
func (s *session) readLoop(inputs chan<- ClientMessage, done chan<- struct{}, stop <-chan struct{}) {
	defer close(done)
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", "err", err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Debug("discarding malformed message", "err", err)
			continue
		}
		if msg.Type == MsgMove {
			select {
			case inputs <- msg:
			default:
				// Backlog full; a later move supersedes this one.
			}
			continue
		}
		select {
		case inputs <- msg:
		case <-stop:
			return
		}
	}
}

// apply forwards a pointer message to the game.
func (s *session) apply(msg ClientMessage) {
	switch msg.Type {
	case MsgMove:
		s.game.PointerMove(msg.X, msg.Y)
	case MsgEnter:
		s.game.PointerMove(msg.X, msg.Y)
		s.game.PointerEnter()
	case MsgLeave:
		s.game.PointerLeave()
	case MsgClick:
		s.game.Click()
	default:
		s.logger.Debug("unknown message type", "type", msg.Type)
	}
}

func (s *session) logTransitions() {
	over := s.game.Phase() == game.PhaseGameOver
	if over && !s.over {
		s.logger.Info("run over", "run", s.game.Runs(), "score", s.game.Score(),
			"survived", s.game.Elapsed().Round(time.Millisecond))
	}
	s.over = over
}

func (s *session) send() error {
	data, err := json.Marshal(ServerMessage{Type: "snapshot", Snapshot: s.game.Snapshot()})
	if err != nil {
		return err
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
