package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/divisadero/divisadero/internal/api/middleware"
	"github.com/divisadero/divisadero/internal/auth"
)

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

// authed attaches an Identity to the request context, the way the Auth
// middleware does in production.
func authed(req *http.Request, identity *auth.Identity) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), identity))
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err, "failed to parse response body")
	return env
}

func superuserIdentity() *auth.Identity {
	return &auth.Identity{
		UserID:      uuid.New(),
		Email:       "root@divisadero.app",
		IsSuperuser: true,
		IsActivated: true,
	}
}

func memberIdentity(orgID int64, orgSlug string) *auth.Identity {
	return &auth.Identity{
		UserID:      uuid.New(),
		Email:       "member@acme.test",
		OrgID:       &orgID,
		OrgSlug:     &orgSlug,
		IsActivated: true,
	}
}
