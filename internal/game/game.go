// Package game implements the frame-driven simulation: spawning, motion,
// collisions, the shield and pause/resume state machines, and scoring.
//
// A Game is not safe for concurrent use. Drive it from a single goroutine:
// feed pointer input through the adapter methods, call Step once per frame
// and hand Snapshot to a renderer.
package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tomz197/dodge/internal/physics"
)

// Phase is the overall state of the game as seen by a frontend.
type Phase string

const (
	PhaseRunning          Phase = "running"
	PhasePaused           Phase = "paused"
	PhaseConfirmingResume Phase = "confirming_resume"
	PhaseGameOver         Phase = "game_over"
)

// Game is the simulation aggregate for one player.
type Game struct {
	cfg     Config
	rng     Random
	world   *World
	spawner *Spawner
	shield  Shield
	pause   PauseController
	score   *ScoreTracker
	grid    *physics.SpatialGrid
	elapsed time.Duration
	over    bool
	runs    int

	pointerX, pointerY float64
}

// New creates a game and starts the first run.
// The high score is read from store; a nil store keeps it in memory only.
// A store error is returned alongside a usable game with a zero high score.
func New(cfg Config, rng Random, store HighScoreStore) (*Game, error) {
	if rng == nil {
		return nil, errors.New("game: nil random source")
	}
	score, err := NewScoreTracker(store)
	g := &Game{
		cfg:   cfg,
		rng:   rng,
		score: score,
		grid:  physics.NewSpatialGrid(cfg.WorldWidth, cfg.WorldHeight, max(cfg.TriggerDistance, cfg.ExplosionRadius)),
	}
	g.Restart()
	return g, err
}

// Restart begins a fresh run. Entities, timers, score and controller states
// are rebuilt; the high score is kept.
func (g *Game) Restart() {
	if g.spawner != nil {
		g.spawner.Stop()
	}
	g.world = NewWorld(g.cfg)
	g.spawner = newSpawner(&g.cfg, g.rng)
	g.shield = newShield(g.cfg)
	g.pause = newPauseController(g.cfg)
	g.score.Reset()
	g.elapsed = 0
	g.over = false
	g.runs++
	g.pointerX = g.world.Ship.X + g.world.Ship.Width/2
	g.pointerY = g.world.Ship.Y + g.world.Ship.Height/2
}

// Step advances the simulation by one frame of duration dt.
// The returned error only reports high-score persistence failures; the
// frame itself has been fully applied.
func (g *Game) Step(dt time.Duration) error {
	if g.over {
		return nil
	}
	g.elapsed += dt

	ship := &g.world.Ship
	g.shield.Advance(ship, dt)

	if !g.pause.Running() {
		g.pause.Advance(dt, g.pointerOverShip)
		return nil
	}

	g.spawner.Advance(g.world, dt, g.elapsed, g.score.Score)

	moveShip(ship)
	cleared := moveObstacles(g.world)
	movePickups(g.world, g.cfg.PickupSpeed)
	moveProjectiles(g.world)

	var errs []error
	if err := g.score.Add(cleared); err != nil {
		errs = append(errs, err)
	}

	res := g.resolveCollisions()
	if res.lethal {
		g.end()
		return errors.Join(errs...)
	}
	if err := g.score.Add(res.destroyed); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// end moves the run into its terminal state and cancels every timer.
func (g *Game) end() {
	g.over = true
	g.spawner.Stop()
	g.shield.Deactivate(&g.world.Ship)
	g.pause.Stop()
}

// PointerMove records the pointer position and steers the ship's centre towards it.
// Positions are clamped to the world; non-finite ones are ignored.
func (g *Game) PointerMove(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	x = max(0, min(g.world.Width, x))
	y = max(0, min(g.world.Height, y))
	g.pointerX = x
	g.pointerY = y
	ship := &g.world.Ship
	ship.TargetX = x - ship.Width/2
	ship.TargetY = y - ship.Height/2
}

// Click fires a rocket while running and restarts after game over.
// It reports whether it had any effect.
func (g *Game) Click() bool {
	switch g.Phase() {
	case PhaseGameOver:
		g.Restart()
		return true
	case PhaseRunning:
		return fire(g.world, &g.cfg)
	default:
		return false
	}
}

// PointerLeave pauses the game when the pointer leaves the play area.
func (g *Game) PointerLeave() {
	if g.over {
		return
	}
	g.pause.Leave()
}

// PointerEnter starts the hover-to-resume confirmation.
func (g *Game) PointerEnter() {
	if g.over {
		return
	}
	g.pause.Enter()
}

// pointerOverShip reports whether the last pointer position is on the ship.
func (g *Game) pointerOverShip() bool {
	return g.world.Ship.Contains(g.pointerX, g.pointerY)
}

// Phase returns the current overall phase.
func (g *Game) Phase() Phase {
	if g.over {
		return PhaseGameOver
	}
	switch g.pause.State() {
	case PausePaused:
		return PhasePaused
	case PauseConfirmingResume:
		return PhaseConfirmingResume
	default:
		return PhaseRunning
	}
}

// Score returns the score of the current run.
func (g *Game) Score() int {
	return g.score.Score
}

// HighScore returns the best score seen by this game's tracker.
func (g *Game) HighScore() int {
	return g.score.HighScore
}

// Elapsed returns the time since the current run started.
func (g *Game) Elapsed() time.Duration {
	return g.elapsed
}

// Runs returns how many runs have been started, including the current one.
func (g *Game) Runs() int {
	return g.runs
}

// Config returns the configuration the game was created with.
func (g *Game) Config() Config {
	return g.cfg
}

// String implements fmt.Stringer for log output.
func (g *Game) String() string {
	return fmt.Sprintf("run=%d phase=%s score=%d high=%d obstacles=%d",
		g.runs, g.Phase(), g.score.Score, g.score.HighScore, len(g.world.Obstacles))
}
