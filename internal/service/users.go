package service

import (
	"context"
	"fmt"

	"github.com/geocoder89/bloghub/internal/domain/user"
	"github.com/geocoder89/bloghub/internal/security"
)

type CredentialStore interface {
	Create(ctx context.Context, email, passwordHash string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserService struct {
	store CredentialStore
	hash  func(plain string) (string, error)
}

func NewUserService(store CredentialStore) *UserService {
	return &UserService{store: store, hash: security.HashPassword}
}

// Register stores a new credential record and returns its id. A taken email
// surfaces as user.ErrEmailTaken from the store's unique constraint.
func (s *UserService) Register(ctx context.Context, req user.RegisterUserRequest) (int64, error) {
	hash, err := s.hash(req.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.store.Create(ctx, req.Email, hash)
	if err != nil {
		return 0, err
	}

	return u.ID, nil
}
