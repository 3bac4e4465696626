package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zayndotdev/real-estate/internal/auth"
	"github.com/zayndotdev/real-estate/internal/repo"
	"github.com/zayndotdev/real-estate/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the real handlers and middleware over the in-memory
// repo, mirroring the route layout in internal/app.
func newTestRouter(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager([]byte("test-secret"), 7*24*time.Hour)
	userSvc := service.NewUserService(repo.NewMemoryUserRepo(), auth.NewPasswordHasher(), nil)

	r := gin.New()
	api := r.Group("/api")
	authHandler := NewAuthHandler(userSvc, tokens)
	api.POST("/auth/signup", authHandler.SignUp)
	api.POST("/auth/signin", authHandler.SignIn)
	api.POST("/auth/google", authHandler.Google)
	api.GET("/auth/signout", authHandler.SignOut)

	protected := api.Group("", auth.RequireAuth(tokens, userSvc))
	userHandler := NewUserHandler(userSvc)
	protected.PUT("/users/update/:id", userHandler.Update)

	return r, tokens
}

func doJSON(r *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", auth.SessionCookieName)
	return nil
}

func signUp(t *testing.T, r *gin.Engine, username, email, password string) map[string]any {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/signup", gin.H{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decode(t, w)
}

func userField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	u, ok := body["user"].(map[string]any)
	require.True(t, ok, "response has no user object")
	return u
}
