// Package identity is a thin HTTP client for the hosted identity provider
// (GoTrue-compatible auth API). It covers the handful of endpoints the
// service needs: inviting a user by email, minting a signed invite link,
// and looking users up.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// User is the provider's representation of an account.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	AppMetadata  map[string]any `json:"app_metadata"`
}

// Error carries a provider failure. The message is surfaced to callers
// verbatim; there is no retryable-vs-fatal classification.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("identity provider: %s (status %d)", e.Message, e.Status)
}

// Client talks to the identity provider's auth API. The anon key is the
// restricted credential used for caller-token lookups; the service-role key
// is the elevated credential required by admin endpoints.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a Client for the given provider base URL.
func NewClient(baseURL, anonKey, serviceRoleKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		anonKey:    anonKey,
		serviceKey: serviceRoleKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// InviteByEmail invites a user via the provider's admin invite endpoint.
// The metadata map is attached to the invited user record and delivered
// back inside the access token once the invitee completes the signed-link
// flow. The provider sends the invite email itself.
func (c *Client) InviteByEmail(ctx context.Context, email string, metadata map[string]any) (*User, error) {
	body := map[string]any{
		"email": email,
		"data":  metadata,
	}

	var u User
	if err := c.do(ctx, http.MethodPost, "/auth/v1/invite", c.serviceKey, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GenerateInviteLink mints a signed invite action link without sending the
// provider's own email, for callers that relay the link themselves.
func (c *Client) GenerateInviteLink(ctx context.Context, email string, metadata map[string]any, redirectTo string) (string, error) {
	body := map[string]any{
		"type":        "invite",
		"email":       email,
		"data":        metadata,
		"redirect_to": redirectTo,
	}

	var out struct {
		ActionLink string `json:"action_link"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/admin/generate_link", c.serviceKey, body, &out); err != nil {
		return "", err
	}
	return out.ActionLink, nil
}

// GetUser resolves an access token to the user it belongs to, using the
// restricted credential. An invalid token comes back as an Error with a
// 4xx status.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID looks up a user by id via the admin API.
func (c *Client) GetUserByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users/"+id, c.serviceKey, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// do performs a JSON request against the provider. The apikey header always
// carries the anon key; the bearer argument carries either the caller's
// access token or the service-role key depending on the endpoint.
func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling identity provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: providerMessage(raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding provider response: %w", err)
		}
	}

	return nil
}

// providerMessage extracts a human-readable message from a provider error
// body, which uses different keys across endpoints and versions.
func providerMessage(raw []byte) string {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		ErrorCode        string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Msg, body.Message, body.ErrorDescription, body.ErrorCode} {
			if m != "" {
				return m
			}
		}
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return "request failed"
}
