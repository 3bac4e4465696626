package repo

import (
	"context"
	"sync"
	"time"

	dom "github.com/zayndotdev/real-estate/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MemoryUserRepo is an in-memory UserRepo for tests and local runs without
// Postgres. It mirrors the PG contract: pgx.ErrNoRows on miss and a
// *pgconn.PgError with code 23505 on unique violations, so callers translate
// errors identically against either implementation.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]dom.User // by id
}

// NewMemoryUserRepo returns an empty MemoryUserRepo.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]dom.User)}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func (r *MemoryUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *MemoryUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *MemoryUserRepo) GetByID(_ context.Context, id string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *MemoryUserRepo) Create(_ context.Context, username, email, passwordHash, avatar string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return dom.User{}, uniqueViolation("users_email_key")
		}
		if u.Username == username {
			return dom.User{}, uniqueViolation("users_username_key")
		}
	}
	now := time.Now().UTC()
	u := dom.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Avatar:       avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *MemoryUserRepo) Update(_ context.Context, id string, patch UserPatch) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	for otherID, other := range r.users {
		if otherID == id {
			continue
		}
		if patch.Email != nil && other.Email == *patch.Email {
			return dom.User{}, uniqueViolation("users_email_key")
		}
		if patch.Username != nil && other.Username == *patch.Username {
			return dom.User{}, uniqueViolation("users_username_key")
		}
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return u, nil
}
