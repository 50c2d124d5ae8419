// Package http serves the stat block JSON API with chi
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	apierrors "github.com/KirkDiggler/statblock-api/internal/errors"
	"github.com/KirkDiggler/statblock-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/statblock-api/internal/orchestrators/statblock"
	"github.com/KirkDiggler/statblock-api/internal/services/conversion"
)

// Config holds the dependencies for the HTTP handler
type Config struct {
	StatblockService statblock.Service
	DiceService      dice.Service
	// CORSOrigins lists the allowed origins; empty allows none
	CORSOrigins []string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := apierrors.NewValidationBuilder()

	apierrors.ValidateNotNil("StatblockService", c.StatblockService != nil, vb)
	apierrors.ValidateNotNil("DiceService", c.DiceService != nil, vb)

	return vb.Build()
}

// Handler routes the JSON API
type Handler struct {
	statblocks statblock.Service
	dice       dice.Service
	router     chi.Router
	statRoutes map[statRoute]http.HandlerFunc
}

// statRoute is a method and the action segment that follows a stat block name
type statRoute struct {
	method string
	action string
}

// statActions are the path segments that address an action instead of a name
var statActions = []string{"text", "export", "roll", "rolls"}

// NewHandler creates the router with its middleware
func NewHandler(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, apierrors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, apierrors.Wrap(err, "invalid config")
	}

	h := &Handler{
		statblocks: cfg.StatblockService,
		dice:       cfg.DiceService,
		router:     chi.NewRouter(),
	}

	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.Logger)
	h.router.Use(middleware.Recoverer)
	h.router.Use(middleware.Compress(5))
	h.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h.routes()

	return h, nil
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/types", h.handleTypes)
		r.Get("/categories", h.handleCategories)
		r.Post("/search", h.handleSearch)
		r.Post("/save", h.handleSave)

		// Names may contain "/", so the rest of the path is split by hand
		r.HandleFunc("/stat/*", h.handleStat)
	})

	h.statRoutes = map[statRoute]http.HandlerFunc{
		{http.MethodGet, ""}:       h.handleGetStat,
		{http.MethodDelete, ""}:    h.handleDeleteStat,
		{http.MethodGet, "text"}:   h.handleRenderStat,
		{http.MethodGet, "export"}: h.handleExportStat,
		{http.MethodPost, "roll"}:  h.handleRollAttack,
		{http.MethodGet, "rolls"}:  h.handleListRolls,
	}

	h.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal error"}`, http.StatusInternalServerError)
		return
	}
	respondRaw(w, status, "application/json", body)
}

func respondRaw(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondError maps an error code to a status. Not found and internal errors
// use fixed messages; the rest carry the error's own message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := apierrors.GetCode(err)
	switch code {
	case apierrors.CodeNotFound:
		respondMessage(w, http.StatusNotFound, "Not found")
	case apierrors.CodeInternal, apierrors.CodeUnavailable, apierrors.CodeUnimplemented:
		slog.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
		respondMessage(w, code.HTTPStatus(), "Internal error")
	default:
		respondMessage(w, code.HTTPStatus(), apierrors.GetMessage(err))
	}
}

// decodeJSON decodes the body into v; an empty body leaves v unchanged
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return apierrors.InvalidArgument("Invalid JSON body")
	}
	return nil
}

// splitStatPath splits the path after /api/stat/ into a name and an action.
// The last segment is an action only when it is one of statActions, so
// "Ogre/Brute" is a name and "Ogre/Brute/text" renders it. A name ending in
// an action word is addressed with its slash escaped as %2F.
func splitStatPath(raw string) (name, action string) {
	raw = strings.TrimSuffix(raw, "/")
	if i := strings.LastIndex(raw, "/"); i > 0 && slices.Contains(statActions, raw[i+1:]) {
		raw, action = raw[:i], raw[i+1:]
	}
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped, action
	}
	return raw, action
}

func nameParam(r *http.Request) string {
	return chi.URLParam(r, "name")
}

// --- Handlers ---

// handleStat dispatches /api/stat/{name}[/{action}] to the route for the action and method
func (h *Handler) handleStat(w http.ResponseWriter, r *http.Request) {
	name, action := splitStatPath(chi.URLParam(r, "*"))
	if name == "" {
		respondMessage(w, http.StatusNotFound, "Not found")
		return
	}

	route, ok := h.statRoutes[statRoute{method: r.Method, action: action}]
	if !ok {
		respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	chi.RouteContext(r.Context()).URLParams.Add("name", name)
	route(w, r)
}

func (h *Handler) handleTypes(w http.ResponseWriter, r *http.Request) {
	out, err := h.statblocks.ListTypes(r.Context(), &statblock.ListTypesInput{
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"types": out.Types})
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	out, err := h.statblocks.ListCategories(r.Context(), &statblock.ListCategoriesInput{})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"categories": out.Categories,
		"tiers":      out.Tiers,
	})
}

// searchRequest accepts the tier as a string or a number
type searchRequest struct {
	Category entity.FlexString `json:"category"`
	Tier     entity.FlexString `json:"tier"`
	Type     entity.FlexString `json:"type"`
	Text     entity.FlexString `json:"text"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	out, err := h.statblocks.SearchStatblocks(r.Context(), &statblock.SearchStatblocksInput{
		Category: req.Category.String(),
		Tier:     req.Tier.String(),
		Type:     req.Type.String(),
		Text:     req.Text.String(),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"results": out.Results})
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var record entity.Record
	if err := decodeJSON(r, &record); err != nil {
		respondError(w, r, err)
		return
	}

	if _, err := h.statblocks.SaveStatblock(r.Context(), &statblock.SaveStatblockInput{Record: &record}); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

func (h *Handler) handleGetStat(w http.ResponseWriter, r *http.Request) {
	out, err := h.statblocks.GetStatblock(r.Context(), &statblock.GetStatblockInput{Name: nameParam(r)})
	if err != nil {
		respondError(w, r, err)
		return
	}

	body, err := entity.Encode(out.Record)
	if err != nil {
		respondError(w, r, apierrors.Wrap(err, "failed to encode stat block"))
		return
	}
	respondRaw(w, http.StatusOK, "application/json", body)
}

func (h *Handler) handleDeleteStat(w http.ResponseWriter, r *http.Request) {
	if _, err := h.statblocks.DeleteStatblock(r.Context(), &statblock.DeleteStatblockInput{Name: nameParam(r)}); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRenderStat(w http.ResponseWriter, r *http.Request) {
	out, err := h.statblocks.RenderStatblock(r.Context(), &statblock.RenderStatblockInput{Name: nameParam(r)})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondRaw(w, http.StatusOK, "text/plain; charset=utf-8", []byte(out.Text))
}

func (h *Handler) handleExportStat(w http.ResponseWriter, r *http.Request) {
	out, err := h.statblocks.ExportStatblock(r.Context(), &statblock.ExportStatblockInput{Name: nameParam(r)})
	if err != nil {
		respondError(w, r, err)
		return
	}

	body, err := conversion.MarshalOutput(out.Export)
	if err != nil {
		respondError(w, r, apierrors.Wrap(err, "failed to encode export"))
		return
	}
	respondRaw(w, http.StatusOK, "application/json", body)
}

func (h *Handler) handleRollAttack(w http.ResponseWriter, r *http.Request) {
	out, err := h.dice.RollAttack(r.Context(), &dice.RollAttackInput{Name: nameParam(r)})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out.Roll)
}

// handleListRolls returns {"rolls": [...]}, newest first, capped by ?limit=
func (h *Handler) handleListRolls(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondMessage(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	out, err := h.dice.ListRolls(r.Context(), &dice.ListRollsInput{Name: nameParam(r), Limit: limit})
	if err != nil {
		respondError(w, r, err)
		return
	}
	if out.Rolls == nil {
		out.Rolls = []*dice.AttackRoll{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"rolls": out.Rolls})
}
