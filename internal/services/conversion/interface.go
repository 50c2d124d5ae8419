// Package conversion turns stored stat block records into their display text and
// their normalized export objects. Both transforms are pure and safe for concurrent use.
package conversion

import (
	"github.com/KirkDiggler/statblock-api/internal/entities/statblock"
)

// Converter exposes the record transforms to orchestrators.
//
//go:generate mockgen -destination=mock/mock_converter.go -package=conversionmock github.com/KirkDiggler/statblock-api/internal/services/conversion Converter
type Converter interface {
	// RenderText formats a record as a text block
	RenderText(record *statblock.Record) string

	// Export maps a record to its normalized export object
	Export(record *statblock.Record) Output
}

type converter struct{}

// New returns the Converter backed by RenderText and Export
func New() Converter {
	return converter{}
}

func (converter) RenderText(record *statblock.Record) string {
	return RenderText(record)
}

func (converter) Export(record *statblock.Record) Output {
	return Export(record)
}
