// Package rolllog keeps the recent attack rolls of each adversary
package rolllog

import (
	"context"

	"github.com/KirkDiggler/statblock-api/internal/entities/roll"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rolllogmock github.com/KirkDiggler/statblock-api/internal/repositories/roll_log Repository

// AppendInput contains the roll to record
type AppendInput struct {
	Roll *roll.Attack
}

// AppendOutput contains the number of rolls kept for the entity after the append
type AppendOutput struct {
	Kept int
}

// ListInput selects the rolls of one entity
type ListInput struct {
	EntityID string
	// Limit caps the rolls returned; zero returns every kept roll
	Limit int
}

// ListOutput contains the rolls newest first
type ListOutput struct {
	Rolls []*roll.Attack
}

// Repository defines the storage operations for roll history
type Repository interface {
	// Append records a roll under its entity, dropping the oldest beyond the cap
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// List returns an entity's rolls newest first. An unknown entity has no rolls.
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}
