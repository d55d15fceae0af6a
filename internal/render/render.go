// Package render draws game snapshots onto a terminal canvas.
package render

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tomz197/dodge/internal/draw"
	"github.com/tomz197/dodge/internal/game"
)

// BoardEntry is one line of the shared leaderboard.
type BoardEntry struct {
	Name  string
	Score int
}

// Session carries per-connection information shown next to the game HUD.
type Session struct {
	Players           int
	Board             []BoardEntry
	Inactive          bool
	DisconnectIn      time.Duration
	ShuttingDown      bool
	ShutdownRemaining time.Duration
}

// shieldRingScale is the shield ring radius relative to the ship width.
const shieldRingScale = 0.75

// Frame draws one complete frame: world onto the canvas, canvas to cw, then
// the HUD and overlays as text on top.
func Frame(c *draw.Canvas, cw *draw.ChunkWriter, s game.Snapshot, sess Session) {
	c.Clear()
	World(c, s)
	c.Render(cw)
	c.RenderBorder(cw)

	t := textLayer{c: c, cw: cw}
	switch {
	case sess.ShuttingDown:
		t.shutdown(sess)
		return
	case sess.Inactive:
		t.inactive(sess)
		return
	}

	t.labels(s)
	t.hud(s, sess)
	switch s.Phase {
	case game.PhasePaused:
		t.paused()
	case game.PhaseConfirmingResume:
		t.resuming(s)
	case game.PhaseGameOver:
		t.gameOver(s)
	}
	if s.Debug {
		t.debug(s)
	}
}

// World draws every entity of s onto the canvas.
func World(c *draw.Canvas, s game.Snapshot) {
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		filled := o.Hazardous()
		switch o.Shape {
		case game.ShapeRound:
			c.DrawCircle(o.X+o.Size/2, o.Y+o.Size/2, o.Size/2, filled)
		default:
			c.DrawRect(o.X, o.Y, o.Size, o.Size, filled)
		}
	}

	for _, p := range s.Pickups {
		c.DrawRect(p.X, p.Y, p.Size, p.Size, false)
	}

	for _, p := range s.Projectiles {
		c.DrawCircle(p.X, p.Y, p.Radius, true)
	}

	if s.Phase != game.PhaseGameOver {
		drawShip(c, s)
	}
}

// drawShip draws the rocket as a right-pointing arrow, plus the shield ring.
func drawShip(c *draw.Canvas, s game.Snapshot) {
	sh := s.Ship
	pts := c.BorrowPoints(4)
	pts[0] = draw.Point{X: sh.X, Y: sh.Y}
	pts[1] = draw.Point{X: sh.X + sh.Width, Y: sh.Y + sh.Height/2}
	pts[2] = draw.Point{X: sh.X, Y: sh.Y + sh.Height}
	pts[3] = draw.Point{X: sh.X + sh.Width*0.25, Y: sh.Y + sh.Height/2}
	c.DrawPolygon(pts, true)

	if s.ShieldVisible {
		c.DrawCircle(sh.X+sh.Width/2, sh.Y+sh.Height/2, sh.Width*shieldRingScale, false)
	}
}

// textLayer writes HUD text and marks the covered cells so the canvas
// repaints them on the next frame.
type textLayer struct {
	c  *draw.Canvas
	cw *draw.ChunkWriter
}

func (t textLayer) at(col, row int, s string) {
	n := utf8.RuneCountInString(s)
	if row < 1 || row > t.c.TerminalHeight() || col < 1 || col+n-1 > t.c.TerminalWidth() {
		return
	}
	t.cw.WriteAt(col, row, s)
	t.c.MarkTextDirty(col, row, n)
}

func (t textLayer) colored(col, row int, color, s string) {
	n := utf8.RuneCountInString(s)
	if row < 1 || row > t.c.TerminalHeight() || col < 1 || col+n-1 > t.c.TerminalWidth() {
		return
	}
	t.cw.WriteStyledAt(col, row, color, s)
	t.c.MarkTextDirty(col, row, n)
}

func (t textLayer) centered(row int, s string) {
	t.at(t.c.TerminalWidth()/2-utf8.RuneCountInString(s)/2+1, row, s)
}

func (t textLayer) centeredColored(row int, color, s string) {
	t.colored(t.c.TerminalWidth()/2-utf8.RuneCountInString(s)/2+1, row, color, s)
}

func (t textLayer) center() int {
	return t.c.TerminalHeight() / 2
}

// labels marks pickups with the letter of their ability.
func (t textLayer) labels(s game.Snapshot) {
	for _, p := range s.Pickups {
		col, row := t.c.LogicalToTerminal(p.X+p.Size/2, p.Y+p.Size/2)
		switch p.Ability {
		case game.AbilityShield:
			t.colored(col, row, draw.ColorBrightCyan, "S")
		case game.AbilityAmmo:
			t.colored(col, row, draw.ColorYellow, "R")
		}
	}
}

// hud draws the always-visible status line and session info.
func (t textLayer) hud(s game.Snapshot, sess Session) {
	width := t.c.TerminalWidth()
	height := t.c.TerminalHeight()

	t.at(2, 1, fmt.Sprintf("Score: %-7d High: %-7d", s.Score, s.HighScore))

	rockets := fmt.Sprintf("Rockets: %d/%d", s.Ship.Ammo, s.Ship.AmmoCapacity)
	t.at(width-len(rockets), 1, rockets)

	if s.ShieldState != game.ShieldInactive {
		color := draw.ColorBrightCyan
		if s.ShieldState == game.ShieldBlinkWarning {
			color = draw.ColorRed
		}
		bar := fmt.Sprintf("Shield %s %4.1fs", draw.Bar(s.ShieldFraction, 10), s.Ship.ShieldRemaining.Seconds())
		t.colored(2, 2, color, bar)
	}

	if sess.Players > 0 {
		players := fmt.Sprintf("Players: %-4d", sess.Players)
		t.at(width-len(players), height, players)
	}
	for i, e := range sess.Board {
		line := fmt.Sprintf("%d. %-12s %6d", i+1, e.Name, e.Score)
		t.at(width-utf8.RuneCountInString(line), 2+i, line)
	}
}

func (t textLayer) paused() {
	cy := t.center()
	t.centeredColored(cy-1, draw.ColorBold, "PAUSED")
	t.centered(cy+1, "Move the pointer back onto the rocket to resume")
}

func (t textLayer) resuming(s game.Snapshot) {
	cy := t.center()
	t.centered(cy-1, fmt.Sprintf("Resuming in %d", s.ResumeCountdown))
	t.centered(cy+1, "Keep the pointer on the rocket")
}

func (t textLayer) gameOver(s game.Snapshot) {
	art := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	top := t.center() - 6
	for i, line := range art {
		t.centered(top+i, line)
	}

	t.centered(top+len(art)+1, fmt.Sprintf("Score: %d", s.Score))
	best := fmt.Sprintf("High score: %d", s.HighScore)
	if s.Score > 0 && s.Score >= s.HighScore {
		best = fmt.Sprintf("New high score: %d", s.HighScore)
	}
	t.centered(top+len(art)+2, best)
	t.centered(top+len(art)+3, fmt.Sprintf("Survived %.1f seconds", s.Elapsed.Seconds()))

	if time.Now().UnixMilli()/600%2 == 0 {
		t.centered(top+len(art)+5, ">>  Click or press SPACE to play again  <<")
	}
}

func (t textLayer) debug(s game.Snapshot) {
	line := fmt.Sprintf("obstacles:%-3d pickups:%-2d rockets:%-2d spawn:%-5.2fs t:%-6.1fs",
		len(s.Obstacles), len(s.Pickups), len(s.Projectiles),
		s.SpawnInterval.Seconds(), s.Elapsed.Seconds())
	t.colored(2, t.c.TerminalHeight(), draw.ColorDim, line)
}

func (t textLayer) inactive(sess Session) {
	cy := t.center()
	t.centeredColored(cy-2, draw.ColorYellow, "INACTIVITY WARNING")
	t.centered(cy, fmt.Sprintf("You will be disconnected in %d seconds.", int(sess.DisconnectIn.Seconds())))
	t.centered(cy+2, "Move the mouse or press any key to continue")
}

func (t textLayer) shutdown(sess Session) {
	cy := t.center()
	t.centeredColored(cy-3, draw.ColorRed, "SERVER SHUTTING DOWN")
	t.centered(cy-1, "The server is restarting for maintenance.")
	t.centered(cy, "Please reconnect in a moment.")
	t.centered(cy+2, fmt.Sprintf("Disconnecting in %d seconds...", int(sess.ShutdownRemaining.Seconds())+1))
	t.centered(cy+4, "Press Q to disconnect now")
}
