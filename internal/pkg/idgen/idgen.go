// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/statblock-api/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates random UUIDs with an optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a UUID generator. A non-empty prefix is joined with "_".
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns a new ID such as "roll_5f0c..."
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return g.prefix + "_" + id
	}
	return id
}

// SequentialGenerator generates predictable IDs for tests
type SequentialGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequential creates a sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns prefix_1, prefix_2 and so on
func (g *SequentialGenerator) Generate() string {
	n := g.counter.Add(1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}
