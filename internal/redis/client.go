// Package redis wraps the go-redis client so stores depend on a small interface
package redis

import (
	"crypto/tls"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configures how the client connects
type Options struct {
	Addr string
	// MasterName selects sentinel mode; SentinelAddrs then lists the sentinels
	MasterName      string
	SentinelAddrs   []string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
}

// NewClient creates a client for a single node, or for a sentinel-managed
// primary when MasterName is set.
// Cluster mode is not offered: stores update a record and its index in one
// MULTI block, which needs both keys on one node.
func NewClient(opts Options) (Client, error) {
	var tlsConfig *tls.Config
	if opts.UseTLS {
		tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	if opts.MasterName != "" {
		if len(opts.SentinelAddrs) == 0 {
			return nil, errors.New("redis: at least one sentinel address is required")
		}
		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:      opts.MasterName,
			SentinelAddrs:   opts.SentinelAddrs,
			Password:        opts.Password,
			DB:              opts.DB,
			PoolSize:        opts.PoolSize,
			MinIdleConns:    opts.MinIdleConns,
			ConnMaxIdleTime: opts.ConnMaxIdleTime,
			MaxRetries:      opts.MaxRetries,
			TLSConfig:       tlsConfig,
		}), nil
	}

	if opts.Addr == "" {
		return nil, errors.New("redis: address is required")
	}

	return redis.NewClient(&redis.Options{
		Addr:            opts.Addr,
		Password:        opts.Password,
		DB:              opts.DB,
		PoolSize:        opts.PoolSize,
		MinIdleConns:    opts.MinIdleConns,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
		TLSConfig:       tlsConfig,
	}), nil
}
