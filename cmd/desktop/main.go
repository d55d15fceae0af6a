package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/dodge/internal/config"
	"github.com/tomz197/dodge/internal/game"
	"github.com/tomz197/dodge/internal/store"
)

const frameTime = time.Second / 60

var (
	colorShip      = color.RGBA{0xe8, 0xee, 0xfc, 0xff}
	colorShield    = color.RGBA{0x57, 0xd7, 0xff, 0xff}
	colorWarning   = color.RGBA{0xff, 0x6b, 0x6b, 0xff}
	colorRock      = color.RGBA{0x7d, 0x85, 0x97, 0xff}
	colorHazard    = color.RGBA{0xe0, 0x48, 0x3e, 0xff}
	colorRocket    = color.RGBA{0xff, 0xd1, 0x66, 0xff}
	colorBarBorder = color.RGBA{0x57, 0xd7, 0xff, 0x80}
)

// AppGame adapts a game.Game to ebiten's Update/Draw/Layout loop.
type AppGame struct {
	game   *game.Game
	logger *log.Logger
	inside bool
	over   bool
}

func (a *AppGame) Update() error {
	cfg := a.game.Config()
	x, y := ebiten.CursorPosition()
	inside := ebiten.IsFocused() &&
		x >= 0 && y >= 0 && float64(x) < cfg.WorldWidth && float64(y) < cfg.WorldHeight

	switch {
	case inside:
		a.game.PointerMove(float64(x), float64(y))
		if !a.inside {
			a.game.PointerEnter()
		}
	case a.inside:
		a.game.PointerLeave()
	}
	a.inside = inside

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.game.Click()
	}

	if err := a.game.Step(frameTime); err != nil {
		a.logger.Error("saving high score", "err", err)
	}

	over := a.game.Phase() == game.PhaseGameOver
	if over && !a.over {
		a.logger.Info("run over", "run", a.game.Runs(), "score", a.game.Score(),
			"high", a.game.HighScore(), "survived", a.game.Elapsed().Round(time.Millisecond))
	}
	a.over = over
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	s := a.game.Snapshot()

	for _, o := range s.Obstacles {
		c := colorRock
		if o.Hazardous() {
			c = colorHazard
		}
		if o.Shape == game.ShapeRound {
			vector.DrawFilledCircle(screen, f32(o.X+o.Size/2), f32(o.Y+o.Size/2), f32(o.Size/2), c, true)
		} else {
			vector.DrawFilledRect(screen, f32(o.X), f32(o.Y), f32(o.Size), f32(o.Size), c, true)
		}
	}

	for _, p := range s.Pickups {
		c, label := colorShield, "S"
		if p.Ability == game.AbilityAmmo {
			c, label = colorRocket, "R"
		}
		vector.StrokeRect(screen, f32(p.X), f32(p.Y), f32(p.Size), f32(p.Size), 3, c, true)
		ebitenutil.DebugPrintAt(screen, label, int(p.X+p.Size/2)-3, int(p.Y+p.Size/2)-8)
	}

	for _, r := range s.Projectiles {
		vector.DrawFilledCircle(screen, f32(r.X), f32(r.Y), f32(r.Radius), colorRocket, true)
	}

	if s.Phase != game.PhaseGameOver {
		drawShip(screen, s)
	}
	drawHUD(screen, s)
}

func drawShip(screen *ebiten.Image, s game.Snapshot) {
	sh := s.Ship
	nose := [2]float32{f32(sh.X + sh.Width), f32(sh.Y + sh.Height/2)}
	top := [2]float32{f32(sh.X), f32(sh.Y)}
	bottom := [2]float32{f32(sh.X), f32(sh.Y + sh.Height)}
	notch := [2]float32{f32(sh.X + sh.Width*0.25), f32(sh.Y + sh.Height/2)}
	for _, seg := range [][2][2]float32{{top, nose}, {nose, bottom}, {bottom, notch}, {notch, top}} {
		vector.StrokeLine(screen, seg[0][0], seg[0][1], seg[1][0], seg[1][1], 4, colorShip, true)
	}

	if s.ShieldVisible {
		c := colorShield
		if s.ShieldState == game.ShieldBlinkWarning {
			c = colorWarning
		}
		vector.StrokeCircle(screen, f32(sh.X+sh.Width/2), f32(sh.Y+sh.Height/2), f32(sh.Width*0.75), 4, c, true)
	}
}

func drawHUD(screen *ebiten.Image, s game.Snapshot) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d   High: %d", s.Score, s.HighScore), 16, 12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Rockets: %d/%d", s.Ship.Ammo, s.Ship.AmmoCapacity), int(s.Width)-110, 12)

	if s.ShieldState != game.ShieldInactive {
		c := colorShield
		if s.ShieldState == game.ShieldBlinkWarning {
			c = colorWarning
		}
		vector.StrokeRect(screen, 16, 34, 200, 10, 1, colorBarBorder, false)
		vector.DrawFilledRect(screen, 16, 34, f32(200*s.ShieldFraction), 10, c, false)
	}

	cx, cy := int(s.Width/2), int(s.Height/2)
	switch s.Phase {
	case game.PhasePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", cx-18, cy-20)
		ebitenutil.DebugPrintAt(screen, "Move the pointer back onto the rocket to resume", cx-141, cy)
	case game.PhaseConfirmingResume:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Resuming in %d", s.ResumeCountdown), cx-42, cy-20)
	case game.PhaseGameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER", cx-27, cy-40)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d   High score: %d", s.Score, s.HighScore), cx-80, cy-16)
		ebitenutil.DebugPrintAt(screen, "Click to play again", cx-57, cy+8)
	}

	if s.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("obstacles: %d  spawn: %.2fs  tps: %.0f",
			len(s.Obstacles), s.SpawnInterval.Seconds(), ebiten.ActualTPS()), 16, int(s.Height)-24)
	}
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := a.game.Config()
	return int(cfg.WorldWidth), int(cfg.WorldHeight)
}

func f32(v float64) float32 {
	return float32(v)
}

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	settings := config.LoadSettings()
	logger := settings.NewLogger(os.Stderr, "dodge-desktop")

	rng := settings.Rand()
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g, err := game.New(settings.GameConfig(), rng, store.NewFileStore(settings.HighScoreFile))
	if g == nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		logger.Warn("high score unavailable", "err", err)
	}

	cfg := g.Config()
	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Rocket Dodge")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	logger.Info("starting desktop game", "high", g.HighScore())
	if err := ebiten.RunGame(&AppGame{game: g, logger: logger}); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
