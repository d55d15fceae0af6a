package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/dodge/internal/config"
	"github.com/tomz197/dodge/internal/draw"
	"github.com/tomz197/dodge/internal/loop/client"
	"github.com/tomz197/dodge/internal/loop/server"
	"github.com/tomz197/dodge/internal/store"
)

const (
	defaultHost         = "::"
	defaultPort         = "2222"
	defaultHostKeyPath  = "/app/keys/host_key"
	defaultShutdownWait = 15 * time.Second
)

// Shared by all SSH sessions
var (
	gameServer   *server.Server
	cancelServer context.CancelFunc
	serverOnce   sync.Once
	highScores   *store.FileStore
	settings     config.Settings
	logger       *log.Logger
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	settings = config.LoadSettings()
	logger = settings.NewLogger(os.Stderr, "dodge-ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	shutdownTimeout := config.GetEnvDuration("SSH_SHUTDOWN_TIMEOUT", defaultShutdownWait)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"workingDir", workingDir, "shutdownTimeout", shutdownTimeout)

	highScores = store.NewFileStore(settings.HighScoreFile)
	if high, err := highScores.Load(); err != nil {
		logger.Warn("high score unavailable", "path", highScores.Path(), "err", err)
	} else {
		logger.Info("high score loaded", "path", highScores.Path(), "score", high)
	}

	// Initialize and start the shared session server
	serverOnce.Do(func() {
		var ctx context.Context
		ctx, cancelServer = context.WithCancel(context.Background())
		gameServer = server.NewServer(server.WithLogger(logger))
		go gameServer.Run(ctx)
		logger.Info("session server started")
	})

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Gracefully shut down the session server: notify players and wait for them to disconnect
	if gameServer != nil {
		logger.Info("notifying connected players about shutdown", "players", gameServer.GetStatus().Players)
		gameServer.Shutdown(shutdownTimeout)
		cancelServer()
		logger.Info("session server stopped")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs the game client.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger.Info("new game session", "user", sess.User(), "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		clientOpts := client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Config:       settings.GameConfig(),
			Store:        highScores,
			Rand:         settings.Rand(),
			Logger:       logger,
		}

		// Each session plays its own game; the server only shares the board
		c, err := client.NewClient(gameServer, reader, sess, clientOpts)
		if err != nil {
			logger.Error("creating session", "user", sess.User(), "err", err)
			return
		}
		if err := c.Run(); err != nil {
			logger.Error("game error", "user", sess.User(), "err", err)
		}

		logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
