package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/bloghub/internal/domain/user"
)

type UsersRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]user.User
	byEmail map[string]int64
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		byID:    make(map[int64]user.User),
		byEmail: make(map[string]int64),
	}
}

// Create mirrors the unique constraint on users.email.
func (r *UsersRepo) Create(_ context.Context, email, passwordHash string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return user.User{}, user.ErrEmailTaken
	}

	r.nextID++
	u := user.User{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	r.byID[u.ID] = u
	r.byEmail[email] = u.ID

	return u, nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.byID[id], nil
}
