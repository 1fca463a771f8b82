package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/nightsky-studio/zzzcalc/internal/api"
	"github.com/nightsky-studio/zzzcalc/internal/cache"
	"github.com/nightsky-studio/zzzcalc/internal/config"
	"github.com/nightsky-studio/zzzcalc/internal/equipment"
	zlog "github.com/nightsky-studio/zzzcalc/internal/log"
)

func main() {
	if workDir := os.Getenv("WORKDIR"); workDir != "" {
		if err := os.Chdir(workDir); err != nil {
			slog.Warn("failed to change working directory", slog.String("dir", workDir), slog.String("error", err.Error()))
		}
	}

	zlog.Initialize()

	envFiles := []string{".env", ".env.local", "../.env"}
	loaded := false
	for _, f := range envFiles {
		if err := godotenv.Load(f); err == nil {
			zlog.Info("loaded environment file", "file", f)
			loaded = true
			break
		}
	}
	if !loaded {
		zlog.Warn("no environment file found, continuing with system environment variables")
	}

	cfg := config.FromEnv()

	manager := cache.NewManager(cfg.BaseDir, cache.ConfigFromEnv())
	defer manager.Shutdown()
	registerFolders(manager)

	if err := manager.Prewarm(context.Background()); err != nil {
		zlog.Error("initial prewarm failed", "error", err.Error())
	}

	router := mux.NewRouter()
	api.RegisterRoutes(router, manager, cfg.BaseDir)

	server := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zlog.Info("starting zzzcalc server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Error("server failed to start", "error", err.Error())
			log.Fatal(err)
		}
	}()

	<-quit
	zlog.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("server forced to shutdown", "error", err.Error())
		log.Fatal(err)
	}
	zlog.Info("server stopped gracefully")
}

// registerFolders wires every on-disk definition category into the
// cache (spec.md §4.3: agents, weapons, dds, rotations, plus the
// fixed enemy profile).
func registerFolders(m *cache.Manager) {
	m.RegisterFolder("agents", "json", func(raw []byte) (any, error) { return equipment.LoadAgent(json.RawMessage(raw)) }, false)
	m.RegisterFolder("weapons", "json", func(raw []byte) (any, error) { return equipment.LoadWeapon(json.RawMessage(raw)) }, false)
	m.RegisterFolder("dds", "json", func(raw []byte) (any, error) { return equipment.LoadDiscSet(json.RawMessage(raw)) }, false)
	m.RegisterFolder("rotations", "json", func(raw []byte) (any, error) { return equipment.LoadRotation(json.RawMessage(raw)) }, true)
	m.RegisterFolder("enemy", "json", func(raw []byte) (any, error) { return equipment.LoadEnemy(json.RawMessage(raw)) }, false)
}
