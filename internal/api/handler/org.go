package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/divisadero/divisadero/internal/api/middleware"
	"github.com/divisadero/divisadero/internal/api/response"
	"github.com/divisadero/divisadero/internal/api/validation"
	"github.com/divisadero/divisadero/internal/identity"
	"github.com/divisadero/divisadero/internal/invite"
	"github.com/divisadero/divisadero/internal/org"
)

type inviteRequest struct {
	Email string `json:"email"`
}

type orgResponse struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toOrgResponse(o *org.Org) orgResponse {
	return orgResponse{
		ID:        o.ID,
		Slug:      o.Slug,
		CreatedAt: o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: o.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// OrgHandler handles org membership and invite endpoints.
type OrgHandler struct {
	orgs    org.Repository
	invites *invite.Service
}

// NewOrgHandler creates a new OrgHandler.
func NewOrgHandler(orgs org.Repository, invites *invite.Service) *OrgHandler {
	return &OrgHandler{
		orgs:    orgs,
		invites: invites,
	}
}

// Me handles GET /org/me: the caller's own org.
func (h *OrgHandler) Me(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	caller := middleware.GetIdentity(r.Context())

	if caller.OrgID == nil {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Profile has no org", requestID)
		return
	}

	o, err := h.orgs.GetByID(r.Context(), *caller.OrgID)
	if err != nil {
		if errors.Is(err, org.ErrOrgNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Org not found", requestID)
			return
		}
		slog.Error("failed to get org", "error", err, "orgId", *caller.OrgID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get org", requestID)
		return
	}

	response.Success(w, http.StatusOK, toOrgResponse(o), requestID)
}

// Invite handles POST /org/{slug}/invite.
func (h *OrgHandler) Invite(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	caller := middleware.GetIdentity(r.Context())

	slug := chi.URLParam(r, "slug")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateInviteRequest(validation.InviteRequest{Email: req.Email})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	invited, err := h.invites.Issue(r.Context(), caller, slug, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, org.ErrOrgNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Org not found", requestID)
		case errors.Is(err, invite.ErrNotMember):
			response.Err(w, http.StatusForbidden, "FORBIDDEN", "Caller is not a member of this org", requestID)
		default:
			var provErr *identity.Error
			if errors.As(err, &provErr) {
				response.Err(w, http.StatusBadGateway, "PROVIDER_ERROR", provErr.Message, requestID)
				return
			}
			slog.Error("failed to issue invite", "error", err, "org", slug)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue invite", requestID)
		}
		return
	}

	response.Success(w, http.StatusOK, map[string]string{
		"userId":  invited.ID,
		"email":   invited.Email,
		"orgSlug": slug,
	}, requestID)
}
