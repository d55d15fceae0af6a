package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/dodge/internal/config"
	"github.com/tomz197/dodge/internal/loop/client"
	"github.com/tomz197/dodge/internal/loop/server"
	"github.com/tomz197/dodge/internal/store"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	settings := config.LoadSettings()

	// The terminal belongs to the game; logs go to a file if asked for.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("DODGE_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := settings.NewLogger(logOut, "dodge")

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gs := server.NewServer(server.WithLogger(logger))
	go gs.Run(ctx)

	c, err := client.NewClient(gs, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: "local",
		Config:   settings.GameConfig(),
		Store:    store.NewFileStore(settings.HighScoreFile),
		Rand:     settings.Rand(),
		Logger:   logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
