package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/catalog-service/internal/auth"
)

type fakeAuthenticator struct {
	claims *auth.Claims
	err    error
	got    string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*auth.Claims, error) {
	f.got = token
	return f.claims, f.err
}

func newAuthRouter(a Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireAuth(a), func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": claims.Identity})
	})
	return r
}

func serveWithAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_Valid(t *testing.T) {
	a := &fakeAuthenticator{claims: &auth.Claims{Identity: "7", ID: "jti"}}
	w := serveWithAuth(newAuthRouter(a), "Bearer abc.def.ghi")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"7"}`, w.Body.String())
	assert.Equal(t, "abc.def.ghi", a.got)
}

func TestRequireAuth_SchemeIsCaseInsensitive(t *testing.T) {
	a := &fakeAuthenticator{claims: &auth.Claims{Identity: "7"}}
	w := serveWithAuth(newAuthRouter(a), "bearer tok")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
		status int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", nil, http.StatusUnprocessableEntity},
		{"no token", "Bearer ", nil, http.StatusUnprocessableEntity},
		{"bare token", "abc.def.ghi", nil, http.StatusUnprocessableEntity},
		{"expired", "Bearer tok", fmt.Errorf("verify token: %w", auth.ErrTokenExpired), http.StatusUnauthorized},
		{"invalid", "Bearer tok", fmt.Errorf("verify token: %w", auth.ErrTokenInvalid), http.StatusUnauthorized},
		{"denylist down", "Bearer tok", errors.New("store unavailable"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &fakeAuthenticator{err: tt.err}
			w := serveWithAuth(newAuthRouter(a), tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
