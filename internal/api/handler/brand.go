package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/divisadero/divisadero/internal/api/middleware"
	"github.com/divisadero/divisadero/internal/api/response"
	"github.com/divisadero/divisadero/internal/api/validation"
	"github.com/divisadero/divisadero/internal/brand"
)

type createBrandRequest struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Config      json.RawMessage `json:"config"`
	Enrichment  json.RawMessage `json:"enrichment"`
	CategoryID  *int64          `json:"categoryId"`
}

type updateBrandRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Config      json.RawMessage `json:"config"`
	Enrichment  json.RawMessage `json:"enrichment"`
	CategoryID  *int64          `json:"categoryId"`
}

type brandResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Config      json.RawMessage `json:"config"`
	Enrichment  json.RawMessage `json:"enrichment"`
	CategoryID  *int64          `json:"categoryId,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func toBrandResponse(b *brand.Brand) brandResponse {
	return brandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		Config:      b.Config,
		Enrichment:  b.Enrichment,
		CategoryID:  b.CategoryID,
		CreatedAt:   b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   b.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// BrandHandler handles brand CRUD endpoints. Mutations are superuser-gated
// at the routing layer.
type BrandHandler struct {
	repo brand.Repository
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(repo brand.Repository) *BrandHandler {
	return &BrandHandler{repo: repo}
}

// List handles GET /brands.
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	brands, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list brands", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list brands", requestID)
		return
	}

	items := make([]brandResponse, 0, len(brands))
	for i := range brands {
		items = append(items, toBrandResponse(&brands[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// GetBySlug handles GET /brands/{slug}.
func (h *BrandHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	slug := chi.URLParam(r, "slug")

	b, err := h.repo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, brand.ErrBrandNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Brand not found", requestID)
			return
		}
		slog.Error("failed to get brand", "error", err, "slug", slug)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get brand", requestID)
		return
	}

	response.Success(w, http.StatusOK, toBrandResponse(b), requestID)
}

// Create handles POST /brands.
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateBrandRequest(validation.CreateBrandRequest{
		Name:       req.Name,
		Slug:       req.Slug,
		Config:     req.Config,
		Enrichment: req.Enrichment,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	b := &brand.Brand{
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		Description: req.Description,
		Config:      req.Config,
		Enrichment:  req.Enrichment,
		CategoryID:  req.CategoryID,
	}

	if err := h.repo.Create(r.Context(), b); err != nil {
		if errors.Is(err, brand.ErrDuplicateBrandSlug) {
			response.Err(w, http.StatusConflict, "DUPLICATE_SLUG", fmt.Sprintf("A brand with slug %q already exists", req.Slug), requestID)
			return
		}
		slog.Error("failed to create brand", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create brand", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toBrandResponse(b), requestID)
}

// Update handles PATCH /brands/{slug}.
func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	slug := chi.URLParam(r, "slug")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateBrandRequest(validation.UpdateBrandRequest{
		Name:       req.Name,
		Config:     req.Config,
		Enrichment: req.Enrichment,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	b, err := h.repo.Update(r.Context(), slug, brand.UpdateFields{
		Name:        req.Name,
		Description: req.Description,
		Config:      req.Config,
		Enrichment:  req.Enrichment,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, brand.ErrBrandNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Brand not found", requestID)
			return
		}
		slog.Error("failed to update brand", "error", err, "slug", slug)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update brand", requestID)
		return
	}

	response.Success(w, http.StatusOK, toBrandResponse(b), requestID)
}

// Delete handles DELETE /brands/{slug}.
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	slug := chi.URLParam(r, "slug")

	if err := h.repo.Delete(r.Context(), slug); err != nil {
		if errors.Is(err, brand.ErrBrandNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Brand not found", requestID)
			return
		}
		slog.Error("failed to delete brand", "error", err, "slug", slug)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete brand", requestID)
		return
	}

	response.NoContent(w)
}
