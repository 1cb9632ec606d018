// Package application holds the client-side business logic: session state,
// the route authorization decision, and the pure list-shaping functions
// (pagination and transaction aggregation).
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kevharding/stockpanel/internal/domain/model"
	"github.com/kevharding/stockpanel/internal/domain/port/driven"
)

// LoginPath is the destination denied navigations are redirected to.
const LoginPath = "/login"

// Session derives the client's authentication and authorization status from
// the two credentials held in the encrypted store. It owns no state of its
// own: every question is answered by reading the store, so the status
// survives process restarts and tests can substitute an in-memory store.
//
// Three states are reachable: anonymous (no token), authenticated non-admin,
// and authenticated admin. The only transitions are Login and Logout; there
// is no direct admin/non-admin switch without a full re-login.
type Session struct {
	creds  driven.CredentialStore
	logger *slog.Logger
}

// NewSession creates a Session backed by the given credential store.
func NewSession(creds driven.CredentialStore) *Session {
	return &Session{creds: creds, logger: slog.Default()}
}

// Login persists the credential values obtained from a successful
// authentication response. It performs no validation of its own; the caller
// is responsible for having authenticated against the API first.
func (s *Session) Login(ctx context.Context, token string, role model.Role) error {
	if err := s.creds.Set(ctx, model.CredentialToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := s.creds.Set(ctx, model.CredentialRole, string(role)); err != nil {
		return fmt.Errorf("persist role: %w", err)
	}
	return nil
}

// Logout clears both persisted credentials, returning the session to the
// anonymous state. The bearer token is not revoked server-side; it simply
// stops being presented.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.creds.Delete(ctx, model.CredentialToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.creds.Delete(ctx, model.CredentialRole); err != nil {
		return fmt.Errorf("clear role: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when anonymous.
func (s *Session) Token(ctx context.Context) string {
	token, err := s.creds.Get(ctx, model.CredentialToken)
	if err != nil {
		s.logger.Warn("token read failed, treating as anonymous", "error", err)
		return ""
	}
	return token
}

// IsAuthenticated reports whether a non-empty token is stored. No expiry
// check is performed: a token stays valid client-side until Logout clears it,
// even past server-side expiry. API calls made with a stale token fail at the
// transport layer.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// IsAdmin reports whether the stored role is exactly RoleAdmin. An absent,
// corrupted, or unrecognized role parses to RoleUser and answers false.
func (s *Session) IsAdmin(ctx context.Context) bool {
	raw, err := s.creds.Get(ctx, model.CredentialRole)
	if err != nil {
		s.logger.Warn("role read failed, treating as non-admin", "error", err)
		return false
	}
	return model.ParseRole(raw) == model.RoleAdmin
}

// Decision is the outcome of a route authorization check. Denial is a normal
// branch, not an error: the caller redirects to RedirectTo carrying
// ReturnPath so the UI can resume at the original destination after login.
type Decision struct {
	Allow      bool
	RedirectTo string
	ReturnPath string
}

// Authorize evaluates whether the current session may enter the requested
// destination. Admin-gated routes require the admin role; everything else
// requires only a stored token.
func Authorize(ctx context.Context, requiresAdmin bool, requestedPath string, sess *Session) Decision {
	allowed := sess.IsAuthenticated(ctx)
	if requiresAdmin {
		allowed = sess.IsAdmin(ctx)
	}

	if allowed {
		return Decision{Allow: true}
	}
	return Decision{
		Allow:      false,
		RedirectTo: LoginPath,
		ReturnPath: requestedPath,
	}
}
