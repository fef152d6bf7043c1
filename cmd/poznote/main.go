package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"poznote/internal/config"
	"poznote/internal/store"
	"poznote/internal/web"
)

func main() {
	level := parseLogLevel(os.Getenv("POZNOTE_DEBUG_LEVEL"))
	pretty := strings.EqualFold(os.Getenv("POZNOTE_LOG_PRETTY"), "1") || strings.EqualFold(os.Getenv("POZNOTE_LOG_PRETTY"), "true")
	var handler slog.Handler
	if pretty {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))

	cfg := config.Load()
	if cfg.DataPath == "" {
		slog.Error("POZNOTE_DATA_PATH is required")
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
		slog.Error("create data dir", "err", err)
		os.Exit(1)
	}

	st, err := store.OpenWithOptions(filepath.Join(cfg.DataPath, "poznote.sqlite"), store.Options{
		LockTimeout: cfg.LockTimeout,
	})
	if err != nil {
		slog.Error("open store", "err", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = st.Init(ctx)
	cancel()
	if err != nil {
		slog.Error("init store", "err", err)
		os.Exit(1)
	}

	srv := web.NewServer(cfg, st)
	slog.Info("listening", "addr", cfg.ListenAddr, "data_path", cfg.DataPath)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Handler()); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func parseLogLevel(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
