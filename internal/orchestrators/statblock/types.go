package statblock

import (
	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/services/conversion"
)

// GetStatblockInput defines the request for looking up a stat block
type GetStatblockInput struct {
	Name string
}

// GetStatblockOutput defines the response for looking up a stat block
type GetStatblockOutput struct {
	Record *entity.Record
}

// SearchStatblocksInput holds the optional search filters. Empty filters match everything.
type SearchStatblocksInput struct {
	Category string
	// Tier is compared as an integer
	Tier string
	Type string
	// Text is a case-insensitive substring matched against the searchable fields
	Text string
}

// SearchStatblocksOutput defines the response for a search
type SearchStatblocksOutput struct {
	Results []Summary
}

// Summary is the short form of a stat block returned by search
type Summary struct {
	Name        string `json:"name"`
	Tier        string `json:"tier"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// SaveStatblockInput defines the request for saving a stat block
type SaveStatblockInput struct {
	Record *entity.Record
}

// SaveStatblockOutput defines the response for saving a stat block
type SaveStatblockOutput struct {
	// Record is the stat block as stored
	Record   *entity.Record
	Replaced bool
}

// DeleteStatblockInput defines the request for deleting a stat block
type DeleteStatblockInput struct {
	Name string
}

// DeleteStatblockOutput defines the response for deleting a stat block
type DeleteStatblockOutput struct{}

// ListTypesInput defines the request for the types of a category
type ListTypesInput struct {
	Category string
}

// ListTypesOutput defines the response for the types of a category
type ListTypesOutput struct {
	Types []string
}

// ListCategoriesInput defines the request for the full vocabulary
type ListCategoriesInput struct{}

// ListCategoriesOutput defines the response for the full vocabulary
type ListCategoriesOutput struct {
	Categories map[entity.Category][]string
	Tiers      []int
}

// RenderStatblockInput defines the request for rendering a stat block as text
type RenderStatblockInput struct {
	Name string
}

// RenderStatblockOutput defines the response for rendering a stat block as text
type RenderStatblockOutput struct {
	Text string
}

// ExportStatblockInput defines the request for exporting a stat block
type ExportStatblockInput struct {
	Name string
}

// ExportStatblockOutput defines the response for exporting a stat block
type ExportStatblockOutput struct {
	Export conversion.Output
}
