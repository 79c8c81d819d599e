package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/divisadero/divisadero/internal/identity"
	"github.com/divisadero/divisadero/internal/profile"
)

// ErrInvalidToken is returned when the bearer token is missing, malformed,
// expired, or rejected by the identity provider.
var ErrInvalidToken = errors.New("invalid or expired token")

// UserSource resolves an access token remotely, used when no local signing
// secret is configured.
type UserSource interface {
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
}

// Service resolves bearer tokens to identities.
type Service struct {
	verifier *Verifier
	users    UserSource
	profiles profile.Repository
}

// NewService creates an auth Service. verifier may be nil, in which case
// every token is resolved through the UserSource instead.
func NewService(verifier *Verifier, users UserSource, profiles profile.Repository) *Service {
	return &Service{
		verifier: verifier,
		users:    users,
		profiles: profiles,
	}
}

// Authenticate resolves a raw access token to an Identity. The profile row
// is created on first authentication, with no org and no elevated rights.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*Identity, error) {
	sub, email, metadata, err := s.resolveToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	p, err := s.profiles.GetByID(ctx, userID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		p = &profile.Profile{ID: userID, IsActivated: true}
		if err := s.profiles.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("creating profile on first authentication: %w", err)
		}
		slog.Info("profile created on first authentication", "userId", userID)
	} else if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	return &Identity{
		UserID:       userID,
		Email:        email,
		UserMetadata: metadata,
		OrgID:        p.OrgID,
		OrgSlug:      p.OrgSlug,
		IsSuperuser:  p.IsSuperuser,
		IsActivated:  p.IsActivated,
	}, nil
}

// resolveToken extracts subject, email, and user metadata from the token,
// verifying locally when a signing secret is configured and asking the
// provider otherwise.
func (s *Service) resolveToken(ctx context.Context, rawToken string) (string, string, map[string]any, error) {
	if s.verifier != nil {
		claims, err := s.verifier.Parse(rawToken)
		if err != nil {
			return "", "", nil, err
		}
		return claims.Subject, claims.Email, claims.UserMetadata, nil
	}

	u, err := s.users.GetUser(ctx, rawToken)
	if err != nil {
		var provErr *identity.Error
		if errors.As(err, &provErr) && provErr.Status >= 400 && provErr.Status < 500 {
			return "", "", nil, ErrInvalidToken
		}
		return "", "", nil, fmt.Errorf("resolving token with identity provider: %w", err)
	}
	return u.ID, u.Email, u.UserMetadata, nil
}
