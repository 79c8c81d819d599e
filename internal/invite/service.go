// Package invite implements the invite-and-accept lifecycle: an invite is
// identity-provider metadata (org_slug, invited_by) attached to an invited
// user, consumed by the accept step which turns it into a profile-org
// association.
package invite

import (
	"context"
	"errors"
	"log/slog"

	"github.com/divisadero/divisadero/internal/auth"
	"github.com/divisadero/divisadero/internal/identity"
	"github.com/divisadero/divisadero/internal/org"
	"github.com/divisadero/divisadero/internal/profile"
)

// ErrNotMember is returned when the inviter does not belong to the org
// they are inviting into.
var ErrNotMember = errors.New("caller is not a member of the org")

// ErrNoOrgMetadata is returned when an accepting token carries no org slug
// in its user metadata.
var ErrNoOrgMetadata = errors.New("token metadata carries no org")

// ErrOrgMismatch is returned when a profile already associated with one org
// accepts an invite into a different org.
var ErrOrgMismatch = errors.New("profile already belongs to a different org")

// Provider is the slice of the identity-provider client the lifecycle needs.
type Provider interface {
	InviteByEmail(ctx context.Context, email string, metadata map[string]any) (*identity.User, error)
	GenerateInviteLink(ctx context.Context, email string, metadata map[string]any, redirectTo string) (string, error)
}

// Mailer relays invite links when an email provider is configured.
type Mailer interface {
	Enabled() bool
	SendInviteEmail(ctx context.Context, to, orgSlug, link string) error
}

// Service composes the org and profile repositories with the identity
// provider's invitation primitive.
type Service struct {
	orgs     org.Repository
	profiles profile.Repository
	provider Provider
	mailer   Mailer
	siteURL  string
}

// NewService creates an invite Service. mailer may be nil.
func NewService(orgs org.Repository, profiles profile.Repository, provider Provider, mailer Mailer, siteURL string) *Service {
	return &Service{
		orgs:     orgs,
		profiles: profiles,
		provider: provider,
		mailer:   mailer,
		siteURL:  siteURL,
	}
}

// Issue invites email into the org named by orgSlug. The org must exist
// (org.ErrOrgNotFound otherwise) and the caller must belong to it unless
// they are a superuser (ErrNotMember). Provider failures surface with the
// provider's message; there is no retry.
func (s *Service) Issue(ctx context.Context, caller *auth.Identity, orgSlug, email string) (*identity.User, error) {
	o, err := s.orgs.GetBySlug(ctx, orgSlug)
	if err != nil {
		return nil, err
	}

	if !caller.IsSuperuser && (caller.OrgID == nil || *caller.OrgID != o.ID) {
		return nil, ErrNotMember
	}

	metadata := map[string]any{
		"org_slug":   o.Slug,
		"invited_by": caller.UserID.String(),
	}

	invited, err := s.provider.InviteByEmail(ctx, email, metadata)
	if err != nil {
		return nil, err
	}

	// Best-effort relay: the provider already sent (or will send) its own
	// invite email, so a relay failure does not fail the invite.
	if s.mailer != nil && s.mailer.Enabled() {
		link, err := s.provider.GenerateInviteLink(ctx, email, metadata, s.siteURL)
		if err != nil {
			slog.Warn("could not mint invite link for relay", "error", err, "email", email)
		} else if err := s.mailer.SendInviteEmail(ctx, email, o.Slug, link); err != nil {
			slog.Warn("invite relay failed", "error", err, "email", email)
		}
	}

	return invited, nil
}

// Accept consumes the invite carried in the caller's token metadata and
// associates the caller's profile with the named org. Accepting the same
// invite again is a no-op success; accepting into a different org than the
// profile's current one is ErrOrgMismatch.
func (s *Service) Accept(ctx context.Context, caller *auth.Identity) (*org.Org, error) {
	slug, ok := orgSlugFromMetadata(caller.UserMetadata)
	if !ok {
		return nil, ErrNoOrgMetadata
	}

	o, err := s.orgs.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if caller.OrgID != nil {
		if *caller.OrgID == o.ID {
			return o, nil
		}
		return nil, ErrOrgMismatch
	}

	if err := s.profiles.AssignOrg(ctx, caller.UserID, o.ID); err != nil {
		return nil, err
	}

	slog.Info("invite accepted", "userId", caller.UserID, "org", o.Slug)

	return o, nil
}

func orgSlugFromMetadata(metadata map[string]any) (string, bool) {
	v, ok := metadata["org_slug"]
	if !ok {
		return "", false
	}
	slug, ok := v.(string)
	if !ok || slug == "" {
		return "", false
	}
	return slug, true
}
