// Package email relays invite links through the Resend HTTP API. The relay
// is optional: without an API key the provider's own invite email is the
// only delivery path.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// Client sends transactional email via Resend.
type Client struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Client. An empty apiKey disables sending; SendInviteEmail
// then logs and returns nil.
func NewClient(apiKey, from string) *Client {
	return &Client{
		apiKey:     apiKey,
		from:       from,
		endpoint:   resendEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// SendInviteEmail relays an org invite link to the invitee.
func (c *Client) SendInviteEmail(ctx context.Context, to, orgSlug, link string) error {
	if !c.Enabled() {
		slog.Info("no RESEND_API_KEY configured, skipping invite relay", "to", to)
		return nil
	}

	payload := map[string]any{
		"from":    c.from,
		"to":      []string{to},
		"subject": fmt.Sprintf("You've been invited to join %s", orgSlug),
		"html": fmt.Sprintf(
			`<p>You've been invited to join <strong>%s</strong> on Divisadero.</p>`+
				`<p><a href=%q>Accept your invitation</a></p>`,
			orgSlug, link),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling email provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email provider returned status %d: %s", resp.StatusCode, raw)
	}

	return nil
}
