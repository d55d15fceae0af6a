// Package client runs one terminal session: input, its own game, and rendering.
package client

import (
	"bufio"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/dodge/internal/draw"
	"github.com/tomz197/dodge/internal/game"
	"github.com/tomz197/dodge/internal/input"
	"github.com/tomz197/dodge/internal/loop/config"
	"github.com/tomz197/dodge/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	game         *game.Game
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Config       game.Config         // Zero value means game.DefaultConfig
	Store        game.HighScoreStore // Nil keeps the high score in memory
	Rand         game.Random         // Nil seeds a fresh PCG source
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
// A high-score load failure is logged and the session starts from zero.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	cfg := opts.Config
	if cfg.WorldWidth == 0 {
		cfg = game.DefaultConfig()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	g, err := game.New(cfg, rng, opts.Store)
	if g == nil {
		return nil, err
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("id", handle.ID, "user", handle.Username)
	if err != nil {
		logger.Warn("high score unavailable", "err", err)
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, cfg.WorldWidth, cfg.WorldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	state := NewClientState()
	state.prevPhase = g.Phase()

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		game:         g,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}, nil
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.EnterScreen(c.writer)
	input.EnableMouse(c.writer)
	defer draw.LeaveScreen(c.writer)
	defer input.DisableMouse(c.writer)

	c.logger.Info("run started", "run", c.game.Runs())
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		if c.state.shuttingDown {
			c.updateShutdownState()
		} else {
			c.updateGame()
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.finishRun()

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)
	return nil
}

// processInput reads input and forwards pointer events to the game.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)
	c.state.Input = in

	if in.Closed {
		c.state.Running = false
		return
	}

	if in.Active() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting idle session")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}
	if c.state.shuttingDown {
		return
	}

	if in.Moved {
		c.movePointer(in.Col, in.Row)
	}
	if in.Blur {
		c.leave()
	}
	if in.Click {
		if c.game.Phase() == game.PhaseGameOver {
			c.state.boardRecord = false
		}
		c.game.Click()
	}
}

// movePointer maps an absolute terminal cell onto the world. Cells outside
// the canvas count as leaving the play area.
func (c *Client) movePointer(col, row int) {
	x, y, ok := c.canvas.TerminalToLogical(col, row)
	if !ok {
		c.leave()
		return
	}
	c.game.PointerMove(x, y)
	if !c.state.pointerInside {
		c.state.pointerInside = true
		c.game.PointerEnter()
	}
}

func (c *Client) leave() {
	if !c.state.pointerInside {
		return
	}
	c.state.pointerInside = false
	c.game.PointerLeave()
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.shuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
				c.game.PointerLeave()
			case server.EventBoardRecord:
				c.state.boardRecord = true
			}
		default:
			return
		}
	}
}

// updateGame advances the session's game by one frame.
func (c *Client) updateGame() {
	if err := c.game.Step(c.state.delta); err != nil {
		c.logger.Error("saving high score", "err", err)
	}

	phase := c.game.Phase()
	if phase != c.state.prevPhase {
		c.logger.Debug("phase changed", "from", c.state.prevPhase, "to", phase)
		if c.state.prevPhase == game.PhaseGameOver {
			c.logger.Info("run started", "run", c.game.Runs())
		}
	}
	if phase == game.PhaseGameOver {
		c.finishRun()
	}
}

// finishRun reports the final score of an ended run once.
func (c *Client) finishRun() {
	if c.game.Phase() != game.PhaseGameOver || c.state.reportedRun == c.game.Runs() {
		return
	}
	c.state.reportedRun = c.game.Runs()
	c.logger.Info("run over", "run", c.game.Runs(), "score", c.game.Score(),
		"high", c.game.HighScore(), "survived", c.game.Elapsed().Round(time.Millisecond))
	c.server.ReportScore(c.handle.ID, c.game.Score())
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
