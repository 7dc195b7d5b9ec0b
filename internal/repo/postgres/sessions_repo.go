package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/bloghub/internal/observability"
	"github.com/geocoder89/bloghub/internal/session"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionsRepo is the session.Store for deployments without redis. Logout
// revokes the row instead of deleting it, which keeps an audit trail of
// when each session ended.
type SessionsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

var _ session.Store = (*SessionsRepo)(nil)

func NewSessionsRepo(pool *pgxpool.Pool, prom *observability.Prom) *SessionsRepo {
	return &SessionsRepo{pool: pool, prom: prom}
}

func (r *SessionsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *SessionsRepo) Save(ctx context.Context, s session.Session) error {
	err := r.observe("sessions.save", func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO sessions (id, user_id, email, token_hash, created_at, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.ID, s.UserID, s.Email, s.TokenHash, s.CreatedAt, s.ExpiresAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get only sees sessions that are neither revoked nor past expiry.
func (r *SessionsRepo) Get(ctx context.Context, id string) (session.Session, error) {
	var s session.Session

	err := r.observe("sessions.get", func() error {
		return r.pool.QueryRow(ctx, `
			SELECT id, user_id, email, token_hash, created_at, expires_at
			FROM sessions
			WHERE id = $1 AND revoked_at IS NULL AND expires_at > NOW()
		`, id).Scan(&s.ID, &s.UserID, &s.Email, &s.TokenHash, &s.CreatedAt, &s.ExpiresAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrSessionNotFound
		}
		return session.Session{}, fmt.Errorf("get session: %w", err)
	}

	return s, nil
}

func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	return r.observe("sessions.revoke", func() error {
		_, err := r.pool.Exec(ctx, `
			UPDATE sessions
			SET revoked_at = NOW()
			WHERE id = $1 AND revoked_at IS NULL
		`, id)
		return err
	})
}
