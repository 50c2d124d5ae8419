// Package testutils provides shared test helpers and stat block fixtures
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/statblock-api/internal/redis"
)

// CreateTestRedisClient creates a client backed by an in-memory Redis.
// The server is closed when the test ends.
func CreateTestRedisClient(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient(redis.Options{Addr: mr.Addr()})
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}
