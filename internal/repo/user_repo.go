package repo

import (
	"context"
	"fmt"
	"strings"

	dom "github.com/zayndotdev/real-estate/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserPatch carries the fields of a partial update. Nil fields are not touched.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Avatar       *string
}

// UserRepo provides user persistence. Lookups return pgx.ErrNoRows on miss;
// Create and Update surface unique-index violations as *pgconn.PgError 23505.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	GetByID(ctx context.Context, id string) (dom.User, error)
	Create(ctx context.Context, username, email, passwordHash, avatar string) (dom.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, avatar, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (dom.User, error) {
	var u dom.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByUsername returns the user by exact username match.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// GetByEmail returns the user by email.
func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByID returns the user by id.
func (r *PGUserRepo) GetByID(ctx context.Context, id string) (dom.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// Create inserts a new user and returns it. The id is assigned here.
func (r *PGUserRepo) Create(ctx context.Context, username, email, passwordHash, avatar string) (dom.User, error) {
	query := `
		INSERT INTO users (id, username, email, password_hash, avatar)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, uuid.NewString(), username, email, passwordHash, avatar))
}

// Update applies only the non-nil patch fields and returns the updated row.
// updated_at is always bumped. pgx.ErrNoRows if the id does not exist.
func (r *PGUserRepo) Update(ctx context.Context, id string, patch UserPatch) (dom.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	add := func(col string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("username", patch.Username)
	add("email", patch.Email)
	add("password_hash", patch.PasswordHash)
	add("avatar", patch.Avatar)

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + `
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, args...))
}
