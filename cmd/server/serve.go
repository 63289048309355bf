package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medreminder/internal/config"
	"github.com/medreminder/internal/db"
	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/handler"
	"github.com/medreminder/internal/logging"
	"github.com/medreminder/internal/router"
	"github.com/medreminder/internal/store"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close(db.DB)

	repo := store.NewRepository(store.NewGormKV(db.DB), logger)
	hub := events.NewHub(logger)

	r := router.SetupRouter(router.Config{
		SessionSecret: cfg.SessionSecret,
		Repository:    repo,
		Hub:           hub,
		Options: handler.Options{
			WaterGoalML:      cfg.WaterGoalML,
			WaterIncrementML: cfg.WaterIncrementML,
			DefaultLanguage:  cfg.DefaultLanguage,
			Location:         loc,
		},
		Logger: logger,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Str("database", cfg.DatabasePath).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
