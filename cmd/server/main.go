package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Gangsta686/HabitForgeApp2/configs"
	"github.com/Gangsta686/HabitForgeApp2/internal/engine"
	"github.com/Gangsta686/HabitForgeApp2/internal/handlers"
	"github.com/Gangsta686/HabitForgeApp2/internal/logger"
	"github.com/Gangsta686/HabitForgeApp2/internal/routes"
	"github.com/Gangsta686/HabitForgeApp2/internal/seed"
	"github.com/Gangsta686/HabitForgeApp2/internal/store"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	configs.LoadConfig()

	snapshots, err := store.OpenSnapshots(configs.AppConfig.Store.SnapshotPath)
	if err != nil {
		logger.Log.Fatal("failed to open snapshot store", zap.Error(err))
	}
	defer snapshots.Close()

	history, err := store.OpenHistory(configs.AppConfig.Store.HistoryPath)
	if err != nil {
		logger.Log.Fatal("failed to open history store", zap.Error(err))
	}
	defer history.Close()

	restored, err := snapshots.LoadSnapshot()
	if err != nil {
		// A corrupt snapshot must not block startup; the engine begins
		// from a blank profile.
		logger.Log.Warn("failed to restore snapshot", zap.Error(err))
	}

	eng := engine.New(engine.Options{
		Snapshots: snapshots,
		History:   history,
		Restore:   restored,
	})
	defer eng.Close()

	if configs.AppConfig.Demo.Enabled {
		seed.Run(eng)
	}

	router := routes.NewRoutes(handlers.NewHandler(eng, history))

	srv := &http.Server{
		Addr:         configs.AppConfig.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Log.Info("server stopped")
}
