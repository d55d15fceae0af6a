package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/dodge/internal/config"
	"github.com/tomz197/dodge/internal/game"
	"github.com/tomz197/dodge/internal/store"
	"github.com/tomz197/dodge/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	settings := config.LoadSettings()
	logger := settings.NewLogger(os.Stderr, "dodge-web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	var newRand func() game.Random
	if settings.Seed != 0 {
		newRand = settings.Rand
	}
	handler := web.NewHandler(web.Options{
		Config:  settings.GameConfig(),
		Store:   store.NewFileStore(settings.HighScoreFile),
		Logger:  logger,
		NewRand: newRand,
	})

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "url", "http://"+addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down web server", "sessions", handler.Sessions())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
