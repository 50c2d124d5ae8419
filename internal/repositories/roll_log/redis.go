package rolllog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/KirkDiggler/statblock-api/internal/entities/roll"
	"github.com/KirkDiggler/statblock-api/internal/errors"
	redisclient "github.com/KirkDiggler/statblock-api/internal/redis"
)

const (
	// Key pattern: roll_log:{entity_id}
	logKeyPrefix = "roll_log:"

	// DefaultMaxEntries is how many rolls are kept per entity
	DefaultMaxEntries = 20
	// DefaultTTL is how long an entity's log lives after its last roll
	DefaultTTL = 24 * time.Hour

	errRollNil       = "roll cannot be nil"
	errEntityIDEmpty = "entity ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	// MaxEntries defaults to DefaultMaxEntries
	MaxEntries int
	// TTL defaults to DefaultTTL
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateNotNil("Client", c.Client != nil, vb)
	if c.MaxEntries < 0 {
		vb.Field("MaxEntries", "must not be negative")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client     redisclient.Client
	maxEntries int
	ttl        time.Duration
}

// NewRedisRepository creates a new Redis repository for roll history
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxEntries := cfg.MaxEntries
	if maxEntries == 0 {
		maxEntries = DefaultMaxEntries
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client:     cfg.Client,
		maxEntries: maxEntries,
		ttl:        ttl,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Append pushes the roll onto the front of the entity's list and trims the tail
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.Roll == nil {
		return nil, errors.InvalidArgument(errRollNil)
	}
	if input.Roll.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	data, err := json.Marshal(input.Roll)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal roll")
	}

	key := buildKey(input.Roll.EntityID)

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(r.maxEntries-1))
	pipe.Expire(ctx, key, r.ttl)
	length := pipe.LLen(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to append roll in Redis")
	}

	return &AppendOutput{Kept: int(length.Val())}, nil
}

// List reads the newest rolls first, skipping entries that no longer decode
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit must not be negative")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}

	entries, err := r.client.LRange(ctx, buildKey(input.EntityID), 0, stop).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rolls from Redis")
	}

	rolls := make([]*roll.Attack, 0, len(entries))
	for _, entry := range entries {
		var attack roll.Attack
		if err := json.Unmarshal([]byte(entry), &attack); err != nil {
			slog.WarnContext(ctx, "skipping unreadable roll", "entity_id", input.EntityID, "error", err)
			continue
		}
		rolls = append(rolls, &attack)
	}

	return &ListOutput{Rolls: rolls}, nil
}

// buildKey creates the Redis key for an entity's roll log
func buildKey(entityID string) string {
	return logKeyPrefix + entityID
}
