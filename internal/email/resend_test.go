package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabled(t *testing.T) {
	t.Parallel()

	assert.True(t, NewClient("re_123", "invites@divisadero.app").Enabled())
	assert.False(t, NewClient("", "invites@divisadero.app").Enabled())
}

func TestSendInviteEmail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer re_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "invites@divisadero.app", payload["from"])
		assert.Equal(t, []any{"new@acme.test"}, payload["to"])
		assert.Contains(t, payload["subject"], "acme")
		assert.Contains(t, payload["html"], "https://id.example.test/verify")

		_, _ = w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer srv.Close()

	c := NewClient("re_123", "invites@divisadero.app")
	c.endpoint = srv.URL

	err := c.SendInviteEmail(context.Background(), "new@acme.test", "acme", "https://id.example.test/verify")
	assert.NoError(t, err)
}

func TestSendInviteEmail_ProviderFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"API key is invalid"}`))
	}))
	defer srv.Close()

	c := NewClient("re_bad", "invites@divisadero.app")
	c.endpoint = srv.URL

	err := c.SendInviteEmail(context.Background(), "new@acme.test", "acme", "https://link")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSendInviteEmail_SkipsWhenUnconfigured(t *testing.T) {
	t.Parallel()

	c := NewClient("", "invites@divisadero.app")

	err := c.SendInviteEmail(context.Background(), "new@acme.test", "acme", "https://link")
	assert.NoError(t, err)
}
