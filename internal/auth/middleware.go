package auth

import (
	"context"
	"errors"
	"net/http"

	dom "github.com/zayndotdev/real-estate/internal/domain"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "token"

const contextKeyUser = "current_user"

// UserResolver loads the account referenced by a verified token.
// domain.ErrNotFound means the account no longer exists.
type UserResolver interface {
	ResolveUser(ctx context.Context, id string) (dom.PublicUser, error)
}

// CurrentUser returns the account set by RequireAuth.
func CurrentUser(c *gin.Context) (dom.PublicUser, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.PublicUser{}, false
	}
	u, ok := v.(dom.PublicUser)
	return u, ok
}

// RequireAuth returns a middleware that verifies the session cookie and
// resolves the referenced account before any handler runs. Missing, invalid
// and expired tokens each get their own 401 message; a token referencing a
// deleted account gets 404.
func RequireAuth(tokens *TokenManager, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookieName)
		userID, err := tokens.Verify(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized - "+err.Error())
			return
		}
		u, err := users.ResolveUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, dom.ErrNotFound) {
				abort(c, http.StatusNotFound, "user not found")
				return
			}
			abort(c, http.StatusInternalServerError, "internal server error")
			return
		}
		c.Set(contextKeyUser, u)
		c.Next()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"statusCode": status,
		"message":    message,
	})
}
