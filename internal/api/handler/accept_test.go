package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divisadero/divisadero/internal/api/handler"
	"github.com/divisadero/divisadero/internal/auth"
	"github.com/divisadero/divisadero/internal/invite"
	"github.com/divisadero/divisadero/internal/org"
	"github.com/divisadero/divisadero/internal/profile"
)

func newAcceptHandler(orgs org.Repository, profiles profile.Repository) *handler.AcceptHandler {
	return handler.NewAcceptHandler(invite.NewService(orgs, profiles, &mockProvider{}, nil, "http://localhost:5173"))
}

// invitedIdentity is a freshly-invited user: authenticated, org_slug in
// token metadata, but no org on the profile yet.
func invitedIdentity(orgSlug string) *auth.Identity {
	return &auth.Identity{
		UserID:       uuid.New(),
		Email:        "invited@acme.test",
		UserMetadata: map[string]any{"org_slug": orgSlug, "invited_by": uuid.New().String()},
		IsActivated:  true,
	}
}

func TestAccept_Success(t *testing.T) {
	t.Parallel()

	caller := invitedIdentity("acme")

	orgs := &mockOrgRepo{
		getBySlugFn: func(ctx context.Context, slug string) (*org.Org, error) {
			require.Equal(t, "acme", slug)
			return sampleOrg(7, slug), nil
		},
	}
	assigned := false
	profiles := &mockProfileRepo{
		assignOrgFn: func(ctx context.Context, id uuid.UUID, orgID int64) error {
			assert.Equal(t, caller.UserID, id)
			assert.EqualValues(t, 7, orgID)
			assigned = true
			return nil
		},
	}
	h := newAcceptHandler(orgs, profiles)

	req, w := makeChiRequest(http.MethodPost, "/auth/accept", nil, nil)
	h.ServeHTTP(w, authed(req, caller))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, assigned)

	env := parseEnvelope(t, w)
	assert.Equal(t, "success", env["status"])
	data := env["data"].(map[string]interface{})
	assert.EqualValues(t, 7, data["orgId"])
	assert.Equal(t, "acme", data["orgSlug"])
}

func TestAccept_Idempotent(t *testing.T) {
	t.Parallel()

	// Caller already belongs to the org named in the metadata: accepting
	// again succeeds without touching the profile.
	caller := invitedIdentity("acme")
	orgID := int64(7)
	caller.OrgID = &orgID

	orgs := &mockOrgRepo{
		getBySlugFn: func(ctx context.Context, slug string) (*org.Org, error) {
			return sampleOrg(7, slug), nil
		},
	}
	profiles := &mockProfileRepo{
		assignOrgFn: func(ctx context.Context, id uuid.UUID, orgID int64) error {
			t.Fatal("AssignOrg should not be called for an already-member caller")
			return nil
		},
	}
	h := newAcceptHandler(orgs, profiles)

	req, w := makeChiRequest(http.MethodPost, "/auth/accept", nil, nil)
	h.ServeHTTP(w, authed(req, caller))

	assert.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	data := env["data"].(map[string]interface{})
	assert.EqualValues(t, 7, data["orgId"])
}

func TestAccept_OrgMismatch(t *testing.T) {
	t.Parallel()

	caller := invitedIdentity("other")
	orgID := int64(7)
	caller.OrgID = &orgID

	orgs := &mockOrgRepo{
		getBySlugFn: func(ctx context.Context, slug string) (*org.Org, error) {
			return sampleOrg(99, slug), nil
		},
	}
	h := newAcceptHandler(orgs, &mockProfileRepo{})

	req, w := makeChiRequest(http.MethodPost, "/auth/accept", nil, nil)
	h.ServeHTTP(w, authed(req, caller))

	assert.Equal(t, http.StatusConflict, w.Code)

	env := parseEnvelope(t, w)
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "CONFLICT", errObj["code"])
}

func TestAccept_NoMetadata(t *testing.T) {
	t.Parallel()

	caller := &auth.Identity{UserID: uuid.New(), Email: "plain@acme.test", IsActivated: true}

	h := newAcceptHandler(&mockOrgRepo{}, &mockProfileRepo{})

	req, w := makeChiRequest(http.MethodPost, "/auth/accept", nil, nil)
	h.ServeHTTP(w, authed(req, caller))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := parseEnvelope(t, w)
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "UNPROCESSABLE", errObj["code"])
}

func TestAccept_OrgGone(t *testing.T) {
	t.Parallel()

	h := newAcceptHandler(&mockOrgRepo{}, &mockProfileRepo{})

	req, w := makeChiRequest(http.MethodPost, "/auth/accept", nil, nil)
	h.ServeHTTP(w, authed(req, invitedIdentity("ghost")))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
