package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/DavidBarbosag/taller2AREP/internal/api"
	"github.com/DavidBarbosag/taller2AREP/internal/router"
	"github.com/DavidBarbosag/taller2AREP/internal/server"
	"github.com/DavidBarbosag/taller2AREP/internal/static"
	"github.com/DavidBarbosag/taller2AREP/internal/task"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "httpserver: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	level, err := server.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := server.NewLogger(os.Stdout, level, !color.NoColor)

	store := task.NewStore()
	r := router.New(api.NewTasks(store), static.NewDirResolver(cfg.StaticDir))
	registerRoutes(r)

	srv := server.New(server.Config{
		Addr:        cfg.Addr(),
		Workers:     cfg.WorkerCount(),
		ReadTimeout: cfg.ReadTimeout.Std(),
		MaxBodySize: cfg.MaxBodyBytes,
		Logger:      logger,
	}, r)

	l, err := srv.Listen()
	if err != nil {
		logger.Error("cannot start server", server.Field{Key: "error", Value: err})
		return err
	}
	logger.Info("serving static files", server.Field{Key: "dir", Value: cfg.StaticDir})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(l)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", server.Field{Key: "signal", Value: sig.String()})
	case err := <-serveErr:
		if !errors.Is(err, server.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", server.Field{Key: "error", Value: err})
			return err
		}
	}

	ctx := context.Background()
	if timeout := cfg.ShutdownTimeout.Std(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("final stats: "+srv.Stats().String(), server.Field{Key: "tasks", Value: store.Len()})
	return nil
}
