// Package config loads the server configuration from STATBLOCK_* environment variables
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/statblock-api/internal/errors"
	"github.com/KirkDiggler/statblock-api/internal/redis"
)

// Store backends
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the server configuration
type Config struct {
	GRPCPort int `env:"STATBLOCK_GRPC_PORT" envDefault:"50051"`
	HTTPPort int `env:"STATBLOCK_HTTP_PORT" envDefault:"8080"`

	Store string `env:"STATBLOCK_STORE" envDefault:"redis"`

	RedisAddr            string        `env:"STATBLOCK_REDIS_ADDR"             envDefault:"localhost:6379"`
	RedisMasterName      string        `env:"STATBLOCK_REDIS_MASTER_NAME"`
	RedisSentinelAddrs   []string      `env:"STATBLOCK_REDIS_SENTINEL_ADDRS"   envSeparator:","`
	RedisPassword        string        `env:"STATBLOCK_REDIS_PASSWORD"`
	RedisDB              int           `env:"STATBLOCK_REDIS_DB"               envDefault:"0"`
	RedisPoolSize        int           `env:"STATBLOCK_REDIS_POOL_SIZE"        envDefault:"10"`
	RedisConnMaxIdleTime time.Duration `env:"STATBLOCK_REDIS_CONN_MAX_IDLE"    envDefault:"5m"`
	RedisTLS             bool          `env:"STATBLOCK_REDIS_TLS"              envDefault:"false"`

	SQLitePath string `env:"STATBLOCK_SQLITE_PATH" envDefault:"data/statblocks.db"`

	VocabularyFile string `env:"STATBLOCK_VOCABULARY_FILE"`

	// Roll history is kept in Redis only
	RollHistorySize int           `env:"STATBLOCK_ROLL_HISTORY_SIZE" envDefault:"20"`
	RollHistoryTTL  time.Duration `env:"STATBLOCK_ROLL_HISTORY_TTL"  envDefault:"24h"`

	LogLevel  string `env:"STATBLOCK_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"STATBLOCK_LOG_FORMAT" envDefault:"text"`

	CORSOrigins []string `env:"STATBLOCK_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	ShutdownTimeout time.Duration `env:"STATBLOCK_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ports, the store backend and the logging options
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("GRPCPort", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRange("HTTPPort", c.HTTPPort, 0, 65535, vb)
	errors.ValidateEnum("Store", c.Store, []string{StoreRedis, StoreSQLite}, vb)
	errors.ValidateEnum("LogLevel", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("LogFormat", c.LogFormat, []string{"text", "json"}, vb)
	errors.ValidateRange("RollHistorySize", c.RollHistorySize, 1, 1000, vb)
	if c.RollHistoryTTL <= 0 {
		vb.Field("RollHistoryTTL", "must be positive")
	}

	switch c.Store {
	case StoreRedis:
		if c.RedisMasterName != "" {
			if len(c.RedisSentinelAddrs) == 0 {
				vb.RequiredField("RedisSentinelAddrs")
			}
		} else {
			errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
		}
	case StoreSQLite:
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	}

	return vb.Build()
}

// RedisOptions returns the client options for the Redis store
func (c *Config) RedisOptions() redis.Options {
	return redis.Options{
		Addr:            c.RedisAddr,
		MasterName:      c.RedisMasterName,
		SentinelAddrs:   c.RedisSentinelAddrs,
		Password:        c.RedisPassword,
		DB:              c.RedisDB,
		PoolSize:        c.RedisPoolSize,
		ConnMaxIdleTime: c.RedisConnMaxIdleTime,
		UseTLS:          c.RedisTLS,
	}
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
