package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/divisadero/divisadero/internal/api/middleware"
	"github.com/divisadero/divisadero/internal/api/response"
	"github.com/divisadero/divisadero/internal/invite"
	"github.com/divisadero/divisadero/internal/org"
)

// AcceptHandler handles POST /auth/accept: consuming an invite carried in
// the caller's token metadata.
type AcceptHandler struct {
	invites *invite.Service
}

// NewAcceptHandler creates a new AcceptHandler.
func NewAcceptHandler(invites *invite.Service) *AcceptHandler {
	return &AcceptHandler{invites: invites}
}

// ServeHTTP handles the accept request.
func (h *AcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	caller := middleware.GetIdentity(r.Context())

	o, err := h.invites.Accept(r.Context(), caller)
	if err != nil {
		switch {
		case errors.Is(err, invite.ErrNoOrgMetadata):
			response.Err(w, http.StatusUnprocessableEntity, "UNPROCESSABLE", "Token metadata carries no org to accept", requestID)
		case errors.Is(err, org.ErrOrgNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Org not found", requestID)
		case errors.Is(err, invite.ErrOrgMismatch):
			response.Err(w, http.StatusConflict, "CONFLICT", "Profile already belongs to a different org", requestID)
		default:
			slog.Error("failed to accept invite", "error", err, "userId", caller.UserID)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to accept invite", requestID)
		}
		return
	}

	response.Success(w, http.StatusOK, map[string]any{
		"orgId":   o.ID,
		"orgSlug": o.Slug,
	}, requestID)
}
