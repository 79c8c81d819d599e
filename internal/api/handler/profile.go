package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/divisadero/divisadero/internal/api/middleware"
	"github.com/divisadero/divisadero/internal/api/response"
	"github.com/divisadero/divisadero/internal/profile"
)

type profileResponse struct {
	ID          string  `json:"id"`
	IsSuperuser bool    `json:"isSuperuser"`
	OrgID       *int64  `json:"orgId,omitempty"`
	OrgSlug     *string `json:"orgSlug,omitempty"`
	IsActivated bool    `json:"isActivated"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toProfileResponse(p *profile.Profile) profileResponse {
	return profileResponse{
		ID:          p.ID.String(),
		IsSuperuser: p.IsSuperuser,
		OrgID:       p.OrgID,
		OrgSlug:     p.OrgSlug,
		IsActivated: p.IsActivated,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// ProfileHandler handles profile read endpoints.
type ProfileHandler struct {
	repo profile.Repository
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(repo profile.Repository) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

// List handles GET /profiles. Superusers see every profile, members see
// their org's profiles, and profiles with no org see only themselves.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	var (
		profiles []profile.Profile
		err      error
	)
	switch {
	case identity.IsSuperuser:
		profiles, err = h.repo.ListAll(r.Context())
	case identity.OrgID != nil:
		profiles, err = h.repo.ListByOrg(r.Context(), *identity.OrgID)
	default:
		var own *profile.Profile
		own, err = h.repo.GetByID(r.Context(), identity.UserID)
		if err == nil {
			profiles = []profile.Profile{*own}
		} else if errors.Is(err, profile.ErrProfileNotFound) {
			profiles, err = []profile.Profile{}, nil
		}
	}
	if err != nil {
		slog.Error("failed to list profiles", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list profiles", requestID)
		return
	}

	items := make([]profileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, toProfileResponse(&profiles[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}
