package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/statblock-api/internal/config"
	"github.com/KirkDiggler/statblock-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/statblock-api/internal/orchestrators/statblock"
	"github.com/KirkDiggler/statblock-api/internal/pkg/clock"
	"github.com/KirkDiggler/statblock-api/internal/pkg/idgen"
	"github.com/KirkDiggler/statblock-api/internal/redis"
	rolllog "github.com/KirkDiggler/statblock-api/internal/repositories/roll_log"
	statblockrepo "github.com/KirkDiggler/statblock-api/internal/repositories/statblock"
	"github.com/KirkDiggler/statblock-api/internal/services/conversion"
	"github.com/KirkDiggler/statblock-api/internal/vocabulary"
)

// services are the orchestrators shared by every command
type services struct {
	statblocks statblock.Service
	dice       dice.Service
	close      func()
}

// addStoreFlags registers the flags that override store settings from the environment
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("store", "", "store backend: redis or sqlite (env STATBLOCK_STORE)")
	cmd.Flags().String("redis-addr", "", "Redis address (env STATBLOCK_REDIS_ADDR)")
	cmd.Flags().String("sqlite-path", "", "SQLite database file (env STATBLOCK_SQLITE_PATH)")
	cmd.Flags().String("vocabulary", "", "vocabulary YAML file (env STATBLOCK_VOCABULARY_FILE)")
	cmd.Flags().String("log-level", "", "log level (env STATBLOCK_LOG_LEVEL)")
}

// loadConfig reads the environment, then applies any flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overrides := map[string]*string{
		"store":       &cfg.Store,
		"redis-addr":  &cfg.RedisAddr,
		"sqlite-path": &cfg.SQLitePath,
		"vocabulary":  &cfg.VocabularyFile,
		"log-level":   &cfg.LogLevel,
	}
	for name, target := range overrides {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.GRPCPort, _ = flags.GetInt("port")
	}
	if flags.Lookup("http-port") != nil && flags.Changed("http-port") {
		cfg.HTTPPort, _ = flags.GetInt("http-port")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging installs the default slog handler
func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// stores are the repositories behind the orchestrators
type stores struct {
	statblocks statblockrepo.Repository
	// rolls is nil when the store cannot keep roll history
	rolls rolllog.Repository
	close func()
}

// newStores opens the configured store. Roll history lives in Redis only.
func newStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		repo, err := statblockrepo.NewSQLite(ctx, &statblockrepo.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, err
		}
		return &stores{statblocks: repo, close: func() { _ = repo.Close() }}, nil
	default:
		client, err := redis.NewClient(cfg.RedisOptions())
		if err != nil {
			return nil, err
		}
		closeClient := func() { _ = client.Close() }

		if err := client.Ping(ctx).Err(); err != nil {
			closeClient()
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		repo, err := statblockrepo.NewRedis(&statblockrepo.RedisConfig{Client: client})
		if err != nil {
			closeClient()
			return nil, err
		}
		rolls, err := rolllog.NewRedisRepository(&rolllog.Config{
			Client:     client,
			MaxEntries: cfg.RollHistorySize,
			TTL:        cfg.RollHistoryTTL,
		})
		if err != nil {
			closeClient()
			return nil, err
		}
		return &stores{statblocks: repo, rolls: rolls, close: closeClient}, nil
	}
}

// buildServices wires the store, vocabulary and orchestrators
func buildServices(ctx context.Context, cfg *config.Config) (*services, error) {
	vocab, err := vocabulary.Load(cfg.VocabularyFile)
	if err != nil {
		return nil, err
	}

	st, err := newStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	statblockSvc, err := statblock.NewOrchestrator(&statblock.Config{
		Repository: st.statblocks,
		Converter:  conversion.New(),
		Vocabulary: vocab,
	})
	if err != nil {
		st.close()
		return nil, fmt.Errorf("failed to create stat block orchestrator: %w", err)
	}

	diceSvc, err := dice.NewOrchestrator(&dice.Config{
		Repository:  st.statblocks,
		IDGenerator: idgen.NewUUID("roll"),
		Clock:       clock.New(),
		RollLog:     st.rolls,
	})
	if err != nil {
		st.close()
		return nil, fmt.Errorf("failed to create dice orchestrator: %w", err)
	}

	slog.InfoContext(ctx, "services ready", "store", cfg.Store, "roll_history", st.rolls != nil)

	return &services{
		statblocks: statblockSvc,
		dice:       diceSvc,
		close:      st.close,
	}, nil
}
