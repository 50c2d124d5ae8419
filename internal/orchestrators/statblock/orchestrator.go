// Package statblock implements the stat block orchestrator: lookup, search,
// save and the text and export transforms
package statblock

//go:generate mockgen -destination=mock/mock_service.go -package=statblockmock github.com/KirkDiggler/statblock-api/internal/orchestrators/statblock Service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
	statblockrepo "github.com/KirkDiggler/statblock-api/internal/repositories/statblock"
	"github.com/KirkDiggler/statblock-api/internal/services/conversion"
	"github.com/KirkDiggler/statblock-api/internal/vocabulary"
)

// ErrNameRequired is the message returned when a stat block is saved without a name
const ErrNameRequired = "Name is required"

// Service defines the stat block operations
type Service interface {
	GetStatblock(ctx context.Context, input *GetStatblockInput) (*GetStatblockOutput, error)
	SearchStatblocks(ctx context.Context, input *SearchStatblocksInput) (*SearchStatblocksOutput, error)
	SaveStatblock(ctx context.Context, input *SaveStatblockInput) (*SaveStatblockOutput, error)
	DeleteStatblock(ctx context.Context, input *DeleteStatblockInput) (*DeleteStatblockOutput, error)

	ListTypes(ctx context.Context, input *ListTypesInput) (*ListTypesOutput, error)
	ListCategories(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error)

	RenderStatblock(ctx context.Context, input *RenderStatblockInput) (*RenderStatblockOutput, error)
	ExportStatblock(ctx context.Context, input *ExportStatblockInput) (*ExportStatblockOutput, error)
}

// Config holds the dependencies for the stat block orchestrator
type Config struct {
	Repository statblockrepo.Repository
	Converter  conversion.Converter
	Vocabulary *vocabulary.Vocabulary
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateNotNil("Repository", c.Repository != nil, vb)
	errors.ValidateNotNil("Converter", c.Converter != nil, vb)
	errors.ValidateNotNil("Vocabulary", c.Vocabulary != nil, vb)

	return vb.Build()
}

type orchestrator struct {
	repo       statblockrepo.Repository
	converter  conversion.Converter
	vocabulary *vocabulary.Vocabulary
}

// NewOrchestrator creates a stat block orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:       cfg.Repository,
		converter:  cfg.Converter,
		vocabulary: cfg.Vocabulary,
	}, nil
}

// GetStatblock looks a stat block up by case-insensitive name
func (o *orchestrator) GetStatblock(ctx context.Context, input *GetStatblockInput) (*GetStatblockOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.repo.Get(ctx, statblockrepo.GetInput{Name: input.Name})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get stat block %q", input.Name)
	}

	return &GetStatblockOutput{Record: out.Record}, nil
}

// SearchStatblocks returns summaries of the stat blocks matching every given filter,
// in storage order
func (o *orchestrator) SearchStatblocks(ctx context.Context, input *SearchStatblocksInput) (*SearchStatblocksOutput, error) {
	if input == nil {
		input = &SearchStatblocksInput{}
	}

	out, err := o.repo.List(ctx, statblockrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stat blocks")
	}

	f := newFilter(input)
	results := []Summary{}
	for _, record := range out.Records {
		if !f.matches(record) {
			continue
		}
		results = append(results, Summary{
			Name:        record.Name.String(),
			Tier:        record.Tier.String(),
			Type:        record.Type.String(),
			Category:    record.Category.String(),
			Description: record.Description.String(),
		})
	}

	slog.DebugContext(ctx, "searched stat blocks",
		"category", input.Category,
		"tier", input.Tier,
		"type", input.Type,
		"text", input.Text,
		"scanned", len(out.Records),
		"matched", len(results))

	return &SearchStatblocksOutput{Results: results}, nil
}

// SaveStatblock stores a stat block, replacing any with the same name.
// Adversaries and Environments keep only their own fields; other categories
// are stored as given.
func (o *orchestrator) SaveStatblock(ctx context.Context, input *SaveStatblockInput) (*SaveStatblockOutput, error) {
	if input == nil || input.Record == nil {
		return nil, errors.InvalidArgument(ErrNameRequired).WithMeta("field", "name")
	}

	name := strings.TrimSpace(input.Record.Name.String())
	if name == "" {
		return nil, errors.InvalidArgument(ErrNameRequired).WithMeta("field", "name")
	}

	record := project(input.Record, name)

	out, err := o.repo.Put(ctx, statblockrepo.PutInput{Record: record})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save stat block %q", name)
	}

	slog.InfoContext(ctx, "saved stat block",
		"name", name,
		"category", record.Category.String(),
		"replaced", out.Replaced)

	return &SaveStatblockOutput{Record: record, Replaced: out.Replaced}, nil
}

// DeleteStatblock removes a stat block by name
func (o *orchestrator) DeleteStatblock(ctx context.Context, input *DeleteStatblockInput) (*DeleteStatblockOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.repo.Delete(ctx, statblockrepo.DeleteInput{Name: input.Name}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete stat block %q", input.Name)
	}

	slog.InfoContext(ctx, "deleted stat block", "name", input.Name)

	return &DeleteStatblockOutput{}, nil
}

// ListTypes returns the types of a category; unknown categories have none
func (o *orchestrator) ListTypes(_ context.Context, input *ListTypesInput) (*ListTypesOutput, error) {
	if input == nil {
		input = &ListTypesInput{}
	}
	return &ListTypesOutput{Types: o.vocabulary.Types(entity.Category(input.Category))}, nil
}

// ListCategories returns every category with its types, and the tiers
func (o *orchestrator) ListCategories(_ context.Context, _ *ListCategoriesInput) (*ListCategoriesOutput, error) {
	return &ListCategoriesOutput{
		Categories: o.vocabulary.CategoryMap(),
		Tiers:      append([]int{}, o.vocabulary.Tiers...),
	}, nil
}

// RenderStatblock returns the text form of a stored stat block
func (o *orchestrator) RenderStatblock(ctx context.Context, input *RenderStatblockInput) (*RenderStatblockOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	got, err := o.GetStatblock(ctx, &GetStatblockInput{Name: input.Name})
	if err != nil {
		return nil, err
	}

	return &RenderStatblockOutput{Text: o.converter.RenderText(got.Record)}, nil
}

// ExportStatblock returns the normalized export of a stored stat block
func (o *orchestrator) ExportStatblock(ctx context.Context, input *ExportStatblockInput) (*ExportStatblockOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	got, err := o.GetStatblock(ctx, &GetStatblockInput{Name: input.Name})
	if err != nil {
		return nil, err
	}

	return &ExportStatblockOutput{Export: o.converter.Export(got.Record)}, nil
}

// filter is a compiled SearchStatblocksInput
type filter struct {
	category string
	hasTier  bool
	tier     int
	tierOK   bool
	typ      string
	text     string
}

func newFilter(input *SearchStatblocksInput) filter {
	f := filter{
		category: strings.TrimSpace(input.Category),
		typ:      strings.TrimSpace(input.Type),
		text:     strings.ToLower(strings.TrimSpace(input.Text)),
	}
	if tier := strings.TrimSpace(input.Tier); tier != "" {
		f.hasTier = true
		f.tier, f.tierOK = parseInt(tier)
	}
	return f
}

func (f filter) matches(record *entity.Record) bool {
	if f.category != "" && record.Category.String() != f.category {
		return false
	}
	if f.hasTier {
		// A filter or a stored tier that is not an integer never matches
		tier, ok := parseInt(record.Tier.String())
		if !f.tierOK || !ok || tier != f.tier {
			return false
		}
	}
	if f.typ != "" && record.Type.String() != f.typ {
		return false
	}
	if f.text != "" && !strings.Contains(haystack(record), f.text) {
		return false
	}
	return true
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

// haystack builds the lower-cased searchable text of a record
func haystack(record *entity.Record) string {
	parts := []string{
		record.Name.String(),
		record.Description.String(),
		record.Type.String(),
	}

	switch v := entity.Classify(record).(type) {
	case *entity.Adversary:
		parts = append(parts, v.MotivesTactics, v.Weapon, v.DamageType)
	case *entity.Environment:
		parts = append(parts, v.Impulses.String(), v.PotentialAdversaries.String())
	}

	for _, feature := range record.Features {
		parts = append(parts, feature.Name.String(), feature.Description.String())
	}

	return strings.ToLower(strings.Join(parts, " "))
}

// project returns the record that is stored for a save
func project(in *entity.Record, name string) *entity.Record {
	switch in.Category {
	case entity.CategoryAdversaries:
		return &entity.Record{
			Name:           entity.FlexString(name),
			Category:       in.Category,
			Tier:           in.Tier,
			Type:           in.Type,
			Description:    in.Description,
			MotivesTactics: in.MotivesTactics,
			Difficulty:     in.Difficulty,
			Thresholds:     in.Thresholds,
			HP:             in.HP,
			Stress:         in.Stress,
			Atk:            in.Atk,
			Weapon:         in.Weapon,
			Range:          in.Range,
			DamageDice:     in.DamageDice,
			DamageType:     in.DamageType,
			Experience:     in.Experience,
			Features:       namedFeatures(in.Features),
		}
	case entity.CategoryEnvironments:
		return &entity.Record{
			Name:                 entity.FlexString(name),
			Category:             in.Category,
			Tier:                 in.Tier,
			Type:                 in.Type,
			Description:          in.Description,
			Impulses:             in.Impulses,
			Difficulty:           in.Difficulty,
			PotentialAdversaries: in.PotentialAdversaries,
			Features:             namedFeatures(in.Features),
		}
	default:
		return in
	}
}

func namedFeatures(features []entity.Feature) []entity.Feature {
	out := make([]entity.Feature, 0, len(features))
	for _, f := range features {
		if strings.TrimSpace(f.Name.String()) == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}
