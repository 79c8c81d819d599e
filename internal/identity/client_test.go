package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divisadero/divisadero/internal/identity"
)

func TestInviteByEmail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/invite", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new@acme.test", body["email"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "acme", data["org_slug"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "6f1b0a4e-0000-0000-0000-000000000001",
			"email":         "new@acme.test",
			"user_metadata": data,
		})
	}))
	defer srv.Close()

	c := identity.NewClient(srv.URL, "anon-key", "service-key")

	u, err := c.InviteByEmail(context.Background(), "new@acme.test", map[string]any{"org_slug": "acme"})
	require.NoError(t, err)
	assert.Equal(t, "6f1b0a4e-0000-0000-0000-000000000001", u.ID)
	assert.Equal(t, "new@acme.test", u.Email)
	assert.Equal(t, "acme", u.UserMetadata["org_slug"])
}

func TestInviteByEmail_ProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"msg":"A user with this email address has already been registered"}`))
	}))
	defer srv.Close()

	c := identity.NewClient(srv.URL, "anon-key", "service-key")

	_, err := c.InviteByEmail(context.Background(), "taken@acme.test", nil)
	var provErr *identity.Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusUnprocessableEntity, provErr.Status)
	assert.Equal(t, "A user with this email address has already been registered", provErr.Message)
}

func TestGenerateInviteLink(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/admin/generate_link", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "invite", body["type"])
		assert.Equal(t, "https://app.divisadero.app", body["redirect_to"])

		_, _ = w.Write([]byte(`{"action_link":"https://id.example.test/verify?token=abc&type=invite"}`))
	}))
	defer srv.Close()

	c := identity.NewClient(srv.URL, "anon-key", "service-key")

	link, err := c.GenerateInviteLink(context.Background(), "new@acme.test", nil, "https://app.divisadero.app")
	require.NoError(t, err)
	assert.Equal(t, "https://id.example.test/verify?token=abc&type=invite", link)
}

func TestGetUser_UsesCallerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer caller-access-token", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"id":"6f1b0a4e-0000-0000-0000-000000000002","email":"member@acme.test"}`))
	}))
	defer srv.Close()

	c := identity.NewClient(srv.URL, "anon-key", "service-key")

	u, err := c.GetUser(context.Background(), "caller-access-token")
	require.NoError(t, err)
	assert.Equal(t, "member@acme.test", u.Email)
}

func TestGetUser_InvalidToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error_description":"invalid JWT"}`))
	}))
	defer srv.Close()

	c := identity.NewClient(srv.URL, "anon-key", "service-key")

	_, err := c.GetUser(context.Background(), "garbage")
	var provErr *identity.Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusUnauthorized, provErr.Status)
	assert.Equal(t, "invalid JWT", provErr.Message)
}

func TestGetUserByID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/admin/users/6f1b0a4e-0000-0000-0000-000000000003", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"id":"6f1b0a4e-0000-0000-0000-000000000003","email":"lookup@acme.test"}`))
	}))
	defer srv.Close()

	c := identity.NewClient(srv.URL, "anon-key", "service-key")

	u, err := c.GetUserByID(context.Background(), "6f1b0a4e-0000-0000-0000-000000000003")
	require.NoError(t, err)
	assert.Equal(t, "lookup@acme.test", u.Email)
}

func TestProviderError_NonJSONBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream timeout"))
	}))
	defer srv.Close()

	c := identity.NewClient(srv.URL, "anon-key", "service-key")

	_, err := c.GetUser(context.Background(), "token")
	var provErr *identity.Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "upstream timeout", provErr.Message)
}
