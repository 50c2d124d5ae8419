package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/redis.go -package=redismocks -source=interface.go

// Client is the subset of go-redis every store is written against.
// Single node, cluster and sentinel clients all satisfy it.
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of a missing key
const Nil = redis.Nil
