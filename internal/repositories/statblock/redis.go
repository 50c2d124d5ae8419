package statblock

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
	redisclient "github.com/KirkDiggler/statblock-api/internal/redis"
)

const (
	recordKeyPrefix = "statblock:record:"
	indexKey        = "statblock:index"
	sequenceKey     = "statblock:seq"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis stat block repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateNotNil("Client", cfg.Client != nil, vb)
	return vb.Build()
}

// NewRedis creates a Redis-backed repository. Each stat block is a JSON value
// under statblock:record:<key>; listing order comes from a sorted set scored by an
// increasing sequence.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	key, err := keyFor(input.Name)
	if err != nil {
		return nil, err
	}

	result, err := r.client.Get(ctx, recordKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf(errNotFoundFm, input.Name).WithMeta("name", input.Name)
		}
		return nil, errors.Wrapf(err, "failed to get stat block")
	}

	record, err := decodeRecord(result)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Record: record}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	key, data, err := encodeForPut(input.Record)
	if err != nil {
		return nil, err
	}

	seq, err := r.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to allocate sequence")
	}

	pipe := r.client.TxPipeline()
	existed := pipe.Exists(ctx, recordKeyPrefix+key)
	pipe.Set(ctx, recordKeyPrefix+key, data, 0)
	pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(seq), Member: key})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store stat block")
	}

	slog.DebugContext(ctx, "stored stat block",
		"key", key,
		"seq", seq,
		"replaced", existed.Val() > 0)

	return &PutOutput{Record: input.Record, Replaced: existed.Val() > 0}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	key, err := keyFor(input.Name)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	deleted := pipe.Del(ctx, recordKeyPrefix+key)
	pipe.ZRem(ctx, indexKey, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete stat block")
	}
	if deleted.Val() == 0 {
		return nil, errors.NotFoundf(errNotFoundFm, input.Name).WithMeta("name", input.Name)
	}

	slog.DebugContext(ctx, "deleted stat block", "key", key)

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	keys, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read stat block index")
	}
	if len(keys) == 0 {
		return &ListOutput{Records: []*entity.Record{}}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, recordKeyPrefix+key)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to load stat blocks")
	}

	records := make([]*entity.Record, 0, len(keys))
	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if err == redis.Nil {
			slog.WarnContext(ctx, "index entry without stat block", "key", keys[i])
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load stat block %s", keys[i])
		}

		record, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return &ListOutput{Records: records}, nil
}
