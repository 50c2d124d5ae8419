// Package statblock provides the interface for stat block persistence
package statblock

//go:generate mockgen -destination=mock/mock_repository.go -package=statblockmock github.com/KirkDiggler/statblock-api/internal/repositories/statblock Repository

import (
	"context"
	"encoding/json"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
)

// Repository stores stat blocks keyed by case-insensitive name
type Repository interface {
	// Get retrieves a stat block by name
	// Returns errors.InvalidArgument for a blank name
	// Returns errors.NotFound if no stat block has that name
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put inserts or replaces the stat block with the record's name.
	// A replaced stat block moves to the end of the listing order.
	// Returns errors.InvalidArgument for a nil record or a blank name
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Delete removes a stat block by name
	// Returns errors.InvalidArgument for a blank name
	// Returns errors.NotFound if no stat block has that name
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns every stat block in insertion order
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// GetInput defines the input for getting a stat block
type GetInput struct {
	Name string
}

// GetOutput defines the output for getting a stat block
type GetOutput struct {
	Record *entity.Record
}

// PutInput defines the input for storing a stat block
type PutInput struct {
	Record *entity.Record
}

// PutOutput defines the output for storing a stat block
type PutOutput struct {
	Record *entity.Record
	// Replaced reports whether a stat block with the same name existed
	Replaced bool
}

// DeleteInput defines the input for deleting a stat block
type DeleteInput struct {
	Name string
}

// DeleteOutput defines the output for deleting a stat block
type DeleteOutput struct{}

// ListInput defines the input for listing stat blocks
type ListInput struct{}

// ListOutput defines the output for listing stat blocks
type ListOutput struct {
	Records []*entity.Record
}

const (
	errRecordNil  = "record cannot be nil"
	errNameEmpty  = "name cannot be empty"
	errNotFoundFm = "stat block %q not found"
)

// keyFor returns the lookup key for a name, or an InvalidArgument error
func keyFor(name string) (string, error) {
	key := entity.Key(name)
	if key == "" {
		return "", errors.InvalidArgument(errNameEmpty)
	}
	return key, nil
}

func decodeRecord(data []byte) (*entity.Record, error) {
	var record entity.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal stat block")
	}
	return &record, nil
}

// encodeForPut validates a record and returns its key and stored document
func encodeForPut(record *entity.Record) (string, []byte, error) {
	if record == nil {
		return "", nil, errors.InvalidArgument(errRecordNil)
	}
	key, err := keyFor(record.Name.String())
	if err != nil {
		return "", nil, err
	}
	data, err := entity.Encode(record)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to marshal stat block")
	}
	return key, data, nil
}
