package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"geoquiz/internal/config"
	"geoquiz/internal/geodata"
	"geoquiz/internal/geom"
	"geoquiz/internal/hint"
	"geoquiz/internal/history"
	"geoquiz/internal/logger"
	"geoquiz/internal/metrics"
	"geoquiz/internal/quiz"
	"geoquiz/internal/tui"
	"geoquiz/internal/viewport"
)

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	defer logger.Close()

	cfg := config.FromEnv()
	// a path argument overrides the configured document
	if len(os.Args) > 1 {
		cfg.GeoJSONFile = os.Args[1]
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				l.Error("metrics_listen_error", "addr", cfg.MetricsAddr, "err", err)
			}
		}()
	}

	store := openHistory(ctx, cfg)
	if store != nil {
		defer store.Close()
	}

	provider := &hint.Provider{Lang: langString(cfg), Timeout: cfg.Hint.Timeout}
	if cfg.Hint.APIKey != "" {
		provider.Remote = &hint.Client{BaseURL: cfg.Hint.APIURL, APIKey: cfg.Hint.APIKey, Model: cfg.Hint.Model}
	} else {
		l.Info("hint_remote_disabled")
	}
	if rc := openRedis(ctx, cfg); rc != nil {
		defer rc.Close()
		provider.Cache = hint.NewRedisCache(rc, cfg.Hint.CacheTTL)
	}

	opts := geom.DecodeOptions{Lang: cfg.Lang}
	var loader tui.RegionLoader
	if cfg.GeoJSONFile != "" {
		path := cfg.GeoJSONFile
		loader = tui.LoaderFunc(func(context.Context) ([]geom.Region, error) {
			return geodata.LoadFile(path, opts)
		})
	} else {
		loader = &geodata.Loader{URL: cfg.GeoJSONURL, CacheDir: cfg.CacheDir, Options: opts}
	}

	m := tui.New(tui.Config{
		Controller: quiz.New(nil, quiz.Options{UserID: cfg.UserID}),
		Loader:     loader,
		Hints:      provider,
		History:    store,
		Input:      viewport.ParseInputClass(cfg.Input),
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		l.Error("program_error", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openHistory returns a Postgres store when configured, otherwise an
// in-memory one. Without a user identity nothing is persisted.
func openHistory(ctx context.Context, cfg config.Config) history.Store {
	l := logger.L()
	if cfg.UserID == "" {
		l.Info("history_disabled", "reason", "no user")
		return nil
	}
	if !cfg.Postgres.Enabled {
		return history.NewMemoryStore()
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	st, err := history.OpenPostgres(pctx, cfg.Postgres.DSN())
	if err != nil {
		l.Error("db_open_error", "err", err)
		return history.NewMemoryStore()
	}
	l.Info("db_open_ok")
	return st
}

func openRedis(ctx context.Context, cfg config.Config) *redis.Client {
	l := logger.L()
	if !cfg.Redis.Enabled {
		l.Info("redis_disabled")
		return nil
	}
	l.Debug("redis_env", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	rc := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Pass, DB: cfg.Redis.DB})
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pctx).Err(); err != nil {
		l.Error("redis_ping_error", "err", err)
		rc.Close()
		return nil
	}
	l.Info("redis_ping_ok")
	return rc
}

func langString(cfg config.Config) string {
	if cfg.Lang.IsRoot() {
		return ""
	}
	return cfg.Lang.String()
}
