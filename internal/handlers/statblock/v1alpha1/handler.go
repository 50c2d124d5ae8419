// Package v1alpha1 serves the stat block gRPC service
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
	"github.com/KirkDiggler/statblock-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/statblock-api/internal/orchestrators/statblock"
	"github.com/KirkDiggler/statblock-api/internal/services/conversion"
)

// HandlerConfig holds dependencies for the stat block handler
type HandlerConfig struct {
	StatblockService statblock.Service
	DiceService      dice.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateNotNil("StatblockService", c.StatblockService != nil, vb)
	errors.ValidateNotNil("DiceService", c.DiceService != nil, vb)

	return vb.Build()
}

// Handler implements StatblockServiceServer
type Handler struct {
	statblocks statblock.Service
	dice       dice.Service
}

var _ StatblockServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		statblocks: cfg.StatblockService,
		dice:       cfg.DiceService,
	}, nil
}

// GetStatblock returns the stored record for a name
func (h *Handler) GetStatblock(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	out, err := h.statblocks.GetStatblock(ctx, &statblock.GetStatblockInput{Name: req.GetValue()})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := RecordToStruct(out.Record)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// searchFilters accepts the tier as a string or a number
type searchFilters struct {
	Category entity.FlexString `json:"category"`
	Tier     entity.FlexString `json:"tier"`
	Type     entity.FlexString `json:"type"`
	Text     entity.FlexString `json:"text"`
}

// SearchStatblocks takes {category, tier, type, text} and returns {results: [...]}
func (h *Handler) SearchStatblocks(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var filters searchFilters
	if err := DecodeStruct(req, &filters); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.statblocks.SearchStatblocks(ctx, &statblock.SearchStatblocksInput{
		Category: filters.Category.String(),
		Tier:     filters.Tier.String(),
		Type:     filters.Type.String(),
		Text:     filters.Text.String(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := StructFromValue(map[string]any{"results": out.Results})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// SaveStatblock stores a record and returns {saved, replaced}
func (h *Handler) SaveStatblock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var record entity.Record
	if err := DecodeStruct(req, &record); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.statblocks.SaveStatblock(ctx, &statblock.SaveStatblockInput{Record: &record})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := StructFromValue(map[string]bool{"saved": true, "replaced": out.Replaced})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// DeleteStatblock removes a record by name
func (h *Handler) DeleteStatblock(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if _, err := h.statblocks.DeleteStatblock(ctx, &statblock.DeleteStatblockInput{Name: req.GetValue()}); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &emptypb.Empty{}, nil
}

// ListTypes returns {types: [...]} for a category
func (h *Handler) ListTypes(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	out, err := h.statblocks.ListTypes(ctx, &statblock.ListTypesInput{Category: req.GetValue()})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := StructFromValue(map[string]any{"types": out.Types})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// ListCategories returns {categories: {...}, tiers: [...]}
func (h *Handler) ListCategories(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.statblocks.ListCategories(ctx, &statblock.ListCategoriesInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := StructFromValue(map[string]any{
		"categories": out.Categories,
		"tiers":      out.Tiers,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// RenderStatblock returns the text form of a record
func (h *Handler) RenderStatblock(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	out, err := h.statblocks.RenderStatblock(ctx, &statblock.RenderStatblockInput{Name: req.GetValue()})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return wrapperspb.String(out.Text), nil
}

// ExportStatblock returns the indented export document
func (h *Handler) ExportStatblock(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	out, err := h.statblocks.ExportStatblock(ctx, &statblock.ExportStatblockInput{Name: req.GetValue()})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	data, err := conversion.MarshalOutput(out.Export)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode export"))
	}
	return wrapperspb.String(string(data)), nil
}

// RollAttack rolls the named adversary's attack
func (h *Handler) RollAttack(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	out, err := h.dice.RollAttack(ctx, &dice.RollAttackInput{Name: req.GetValue()})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := StructFromValue(out.Roll)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// listRollsRequest accepts the limit as a number
type listRollsRequest struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

// ListRolls takes {name, limit} and returns {rolls: [...]} newest first
func (h *Handler) ListRolls(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listRollsRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.Limit < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("limit must not be negative"))
	}

	out, err := h.dice.ListRolls(ctx, &dice.ListRollsInput{Name: in.Name, Limit: in.Limit})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	rolls := out.Rolls
	if rolls == nil {
		rolls = []*dice.AttackRoll{}
	}
	resp, err := StructFromValue(map[string]any{"rolls": rolls})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}
