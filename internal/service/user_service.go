package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"strings"

	"github.com/zayndotdev/real-estate/internal/auth"
	"github.com/zayndotdev/real-estate/internal/cache"
	dom "github.com/zayndotdev/real-estate/internal/domain"
	"github.com/zayndotdev/real-estate/internal/repo"
	"github.com/zayndotdev/real-estate/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrMissingFields      = errors.New("please provide a username, email, and password")
	ErrMissingEmail       = errors.New("email is required")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrNotOwner           = errors.New("you can only update your own profile")
)

const (
	minPasswordLen = 6

	// Federated signups retry fresh username suffixes up to this many times
	// before giving up with an internal error.
	maxUsernameAttempts = 50

	fallbackUsername = "user"
)

// ProfileUpdate carries the optional fields of a profile update.
// Nil or empty fields are left untouched.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Password *string
	Avatar   *string
}

// UserService implements registration, password and federated sign-in, and
// profile updates.
type UserService struct {
	repo   repo.UserRepo
	hasher *auth.PasswordHasher
	cache  *cache.UserCache // nil disables caching
	sf     singleflight.Group
}

// NewUserService creates a UserService. If c is nil, caching is disabled.
func NewUserService(r repo.UserRepo, hasher *auth.PasswordHasher, c *cache.UserCache) *UserService {
	return &UserService{repo: r, hasher: hasher, cache: c}
}

// Register creates a new account. All three fields are required. The email
// conflict is checked before the username conflict, so when both collide the
// email error wins. The pre-checks and the insert are not one transaction;
// the unique indexes close that race and the violation is translated to the
// same conflict errors here.
func (s *UserService) Register(ctx context.Context, username, email, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return dom.User{}, ErrMissingFields
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return dom.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return dom.User{}, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, username, email, hash, "")
	if err != nil {
		return dom.User{}, translateUnique(err)
	}
	return u, nil
}

// Authenticate checks an email/password pair. Unknown email and wrong
// password both return ErrInvalidCredentials so the response never reveals
// whether the email exists.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if !s.hasher.Check(password, u.PasswordHash) {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// FederatedSignIn finds or provisions the account for an externally asserted
// identity. A new account gets a username derived from the display name plus
// a random numeric suffix, and a random unrecoverable placeholder password —
// federated accounts keep authenticating via the provider.
func (s *UserService) FederatedSignIn(ctx context.Context, displayName, email, avatar string) (dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return dom.User{}, ErrMissingEmail
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}

	placeholder, err := randomPassword()
	if err != nil {
		return dom.User{}, err
	}
	hash, err := s.hasher.Hash(placeholder)
	if err != nil {
		return dom.User{}, err
	}

	base := usernameBase(displayName)
	for range maxUsernameAttempts {
		candidate := fmt.Sprintf("%s%04d", base, mrand.IntN(10000))
		if _, err := s.repo.GetByUsername(ctx, candidate); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, err
		}
		created, err := s.repo.Create(ctx, candidate, email, hash, avatar)
		if err != nil {
			if errors.Is(translateUnique(err), ErrEmailTaken) {
				// Lost a race against a concurrent signup with the same
				// email; that account wins.
				return s.repo.GetByEmail(ctx, email)
			}
			if errors.Is(translateUnique(err), ErrUsernameTaken) {
				continue
			}
			return dom.User{}, err
		}
		return created, nil
	}
	return dom.User{}, fmt.Errorf("no free username found for %q after %d attempts", base, maxUsernameAttempts)
}

// UpdateProfile applies a self-only partial update. Each supplied field is
// validated independently, then all staged fields land in a single update.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, targetID string, in ProfileUpdate) (dom.User, error) {
	if callerID != targetID {
		return dom.User{}, ErrNotOwner
	}

	var patch repo.UserPatch
	if present(in.Username) {
		other, err := s.repo.GetByUsername(ctx, *in.Username)
		if err == nil && other.ID != callerID {
			return dom.User{}, ErrUsernameTaken
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, err
		}
		patch.Username = in.Username
	}
	if present(in.Email) {
		other, err := s.repo.GetByEmail(ctx, *in.Email)
		if err == nil && other.ID != callerID {
			return dom.User{}, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, err
		}
		patch.Email = in.Email
	}
	if present(in.Password) {
		if len(*in.Password) < minPasswordLen {
			return dom.User{}, ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return dom.User{}, err
		}
		patch.PasswordHash = &hash
	}
	if present(in.Avatar) {
		patch.Avatar = in.Avatar
	}

	u, err := s.repo.Update(ctx, callerID, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, dom.ErrNotFound
		}
		return dom.User{}, translateUnique(err)
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, u.ID)
	}
	return u, nil
}

// ResolveUser returns the public view of the account with the given id.
// Used by the auth middleware on every protected request; reads go through
// the cache and concurrent misses for the same id are collapsed.
func (s *UserService) ResolveUser(ctx context.Context, id string) (dom.PublicUser, error) {
	v, err, _ := s.sf.Do("user:"+id, func() (interface{}, error) {
		if s.cache != nil {
			if u, err := s.cache.Get(ctx, id); err == nil && u != nil {
				return *u, nil
			}
		}
		u, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, dom.ErrNotFound
			}
			return nil, err
		}
		pub := u.Public()
		if s.cache != nil {
			_ = s.cache.Set(ctx, pub)
		}
		return pub, nil
	})
	if err != nil {
		return dom.PublicUser{}, err
	}
	return v.(dom.PublicUser), nil
}

func present(p *string) bool { return p != nil && *p != "" }

// translateUnique maps a Postgres unique violation onto the matching
// conflict error, by constraint name.
func translateUnique(err error) error {
	constraint, ok := utils.PGUniqueViolation(err)
	if !ok {
		return err
	}
	if strings.Contains(constraint, "email") {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// usernameBase lower-cases the display name and strips whitespace;
// falls back to a literal when the name is empty.
func usernameBase(displayName string) string {
	base := strings.ToLower(strings.Join(strings.Fields(displayName), ""))
	if base == "" {
		return fallbackUsername
	}
	return base
}

func randomPassword() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
