package client

import (
	"time"

	"github.com/tomz197/dodge/internal/loop/config"
	"github.com/tomz197/dodge/internal/render"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	snapshot := c.game.Snapshot()

	// On phase or inactivity transitions, do a full terminal clear
	// so overlays from the previous state don't persist on screen.
	phaseChanged := snapshot.Phase != c.state.prevPhase
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if phaseChanged || inactiveChanged {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevPhase = snapshot.Phase
		c.state.wasInactive = c.state.isInactive
	}

	render.Frame(c.canvas, c.chunkWriter, snapshot, c.session())
	if c.state.boardRecord && !c.state.shuttingDown && !c.state.isInactive {
		c.drawBoardRecord()
	}

	return c.chunkWriter.Flush()
}

// session collects what the HUD shows besides the game itself.
func (c *Client) session() render.Session {
	status := c.server.GetStatus()
	sess := render.Session{
		Players:           status.Players,
		Inactive:          c.state.isInactive,
		DisconnectIn:      time.Duration(config.InactivityDisconnectUser)*time.Second - time.Since(c.lastInput),
		ShuttingDown:      c.state.shuttingDown,
		ShutdownRemaining: time.Duration(c.state.shutdownTimer * float64(time.Second)),
	}
	for _, e := range status.TopScores {
		sess.Board = append(sess.Board, render.BoardEntry{Name: e.Username, Score: e.Score})
	}
	return sess
}

// drawBoardRecord tells the player their last run made today's board.
func (c *Client) drawBoardRecord() {
	const msg = "Your run made today's leaderboard!"
	col := c.canvas.TerminalWidth()/2 - len(msg)/2 + 1
	row := c.canvas.TerminalHeight() - 2
	if col < 1 || row < 1 {
		return
	}
	c.chunkWriter.WriteAt(col, row, msg)
	c.canvas.MarkTextDirty(col, row, len(msg))
}
