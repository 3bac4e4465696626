package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func signUpAndSignIn(t *testing.T, r *gin.Engine, username, email, password string) (string, *http.Cookie) {
	t.Helper()
	created := signUp(t, r, username, email, password)
	id := userField(t, created)["id"].(string)

	w := doJSON(r, http.MethodPost, "/api/auth/signin", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	return id, sessionCookie(t, w)
}

func TestUpdateAvatarOnly(t *testing.T) {
	r, _ := newTestRouter(t)
	id, cookie := signUpAndSignIn(t, r, "alice", "alice@x.com", "secret1")

	w := doJSON(r, http.MethodPut, "/api/users/update/"+id, gin.H{
		"avatar": "https://cdn/alice.png",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	u := userField(t, decode(t, w))
	require.Equal(t, "https://cdn/alice.png", u["avatar"])
	require.Equal(t, "alice", u["username"])
	require.Equal(t, "alice@x.com", u["email"])
	require.NotContains(t, u, "passwordHash")
}

func TestUpdateShortPasswordRejectedWithoutMutation(t *testing.T) {
	r, _ := newTestRouter(t)
	id, cookie := signUpAndSignIn(t, r, "alice", "alice@x.com", "secret1")

	w := doJSON(r, http.MethodPut, "/api/users/update/"+id, gin.H{
		"password": "abc",
	}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "at least 6 characters")

	// Old password still works: nothing was staged.
	again := doJSON(r, http.MethodPost, "/api/auth/signin", gin.H{
		"email": "alice@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, again.Code)
}

func TestUpdateOtherUserForbidden(t *testing.T) {
	r, _ := newTestRouter(t)
	_, aliceCookie := signUpAndSignIn(t, r, "alice", "alice@x.com", "secret1")
	bobID, _ := signUpAndSignIn(t, r, "bob", "bob@x.com", "secret2")

	w := doJSON(r, http.MethodPut, "/api/users/update/"+bobID, gin.H{
		"username": "hacked",
	}, aliceCookie)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Bob signs in unchanged.
	again := doJSON(r, http.MethodPost, "/api/auth/signin", gin.H{
		"email": "bob@x.com", "password": "secret2",
	})
	require.Equal(t, http.StatusOK, again.Code)
	require.Equal(t, "bob", userField(t, decode(t, again))["username"])
}

func TestUpdateUsernameConflict(t *testing.T) {
	r, _ := newTestRouter(t)
	id, cookie := signUpAndSignIn(t, r, "alice", "alice@x.com", "secret1")
	signUp(t, r, "bob", "bob@x.com", "secret2")

	w := doJSON(r, http.MethodPut, "/api/users/update/"+id, gin.H{
		"username": "bob",
	}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "username already taken")
}

func TestUpdatePasswordChange(t *testing.T) {
	r, _ := newTestRouter(t)
	id, cookie := signUpAndSignIn(t, r, "alice", "alice@x.com", "secret1")

	w := doJSON(r, http.MethodPut, "/api/users/update/"+id, gin.H{
		"password": "newsecret",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	old := doJSON(r, http.MethodPost, "/api/auth/signin", gin.H{
		"email": "alice@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusBadRequest, old.Code)

	fresh := doJSON(r, http.MethodPost, "/api/auth/signin", gin.H{
		"email": "alice@x.com", "password": "newsecret",
	})
	require.Equal(t, http.StatusOK, fresh.Code)
}

func TestUpdateWithoutTokenUnauthorized(t *testing.T) {
	r, _ := newTestRouter(t)
	id, _ := signUpAndSignIn(t, r, "alice", "alice@x.com", "secret1")

	w := doJSON(r, http.MethodPut, "/api/users/update/"+id, gin.H{
		"avatar": "https://cdn/a.png",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
