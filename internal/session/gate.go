package session

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/bloghub/internal/auth"
	"github.com/geocoder89/bloghub/internal/domain/user"
	"github.com/geocoder89/bloghub/internal/observability"
	"github.com/geocoder89/bloghub/internal/security"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type CredentialReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type Gate struct {
	users  CredentialReader
	store  Store
	tokens *auth.Manager
	now    func() time.Time
}

func NewGate(users CredentialReader, store Store, tokens *auth.Manager) *Gate {
	return &Gate{
		users:  users,
		store:  store,
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate checks the credentials and opens a session. Store failures
// are returned as is; every credential problem is ErrAuthentication.
func (g *Gate) Authenticate(ctx context.Context, c Credentials) (tok Token, err error) {
	ctx, span := observability.StartSpan(ctx, "session.authenticate")
	defer func() {
		span.SetAttributes(attribute.Bool("session.authenticated", err == nil))
		if err != nil && !errors.Is(err, ErrAuthentication) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "authenticate")
		}
		span.End()
	}()

	u, err := g.users.GetByEmail(ctx, c.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Token{}, ErrAuthentication
		}
		return Token{}, err
	}

	p := user.PrincipalOf(u)
	if !p.CanLogin() {
		return Token{}, ErrAuthentication
	}

	if err := security.CheckPassword(p.PasswordHash, c.Password); err != nil {
		return Token{}, ErrAuthentication
	}

	id := uuid.NewString()

	raw, expiresAt, err := g.tokens.GenerateSessionToken(id, p.UserID, p.Username)
	if err != nil {
		return Token{}, err
	}

	sess := Session{
		ID:        id,
		UserID:    p.UserID,
		Email:     p.Username,
		TokenHash: g.tokens.HashToken(raw),
		CreatedAt: g.now(),
		ExpiresAt: expiresAt,
	}

	if err := g.store.Save(ctx, sess); err != nil {
		return Token{}, err
	}

	return Token{Value: raw, ExpiresAt: expiresAt}, nil
}

// Resolve maps a presented token to its live session.
func (g *Gate) Resolve(ctx context.Context, raw string) (Session, error) {
	if raw == "" {
		return Session{}, ErrSessionNotFound
	}

	claims, err := g.tokens.VerifySessionToken(raw)
	if err != nil {
		return Session{}, ErrSessionNotFound
	}

	sess, err := g.store.Get(ctx, claims.ID)
	if err != nil {
		return Session{}, err
	}

	// verify hash matches the presented token (prevents token substitution)
	if sess.TokenHash != g.tokens.HashToken(raw) || sess.Expired(g.now()) {
		return Session{}, ErrSessionNotFound
	}

	return sess, nil
}

// Invalidate destroys the session behind raw. Unknown or malformed tokens
// are a no-op.
func (g *Gate) Invalidate(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}

	claims, err := g.tokens.VerifySessionToken(raw)
	if err != nil {
		return nil
	}

	return g.store.Delete(ctx, claims.ID)
}
