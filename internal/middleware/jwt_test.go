package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authenticore/registry/internal/utils"
)

const secret = "test-secret"

func runChain(t *testing.T, mw []echo.MiddlewareFunc, header string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	require.NoError(t, h(c))
	return rec
}

func TestJWTAuth(t *testing.T) {
	t.Run("missing header rejected", func(t *testing.T) {
		rec := runChain(t, []echo.MiddlewareFunc{JWTAuth(secret)}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		rec := runChain(t, []echo.MiddlewareFunc{JWTAuth(secret)}, "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", 1, "admin", 15)
		require.NoError(t, err)
		rec := runChain(t, []echo.MiddlewareFunc{JWTAuth(secret)}, "Bearer "+tok.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		tok, err := utils.NewAccessToken(secret, 1, "admin", 15)
		require.NoError(t, err)
		rec := runChain(t, []echo.MiddlewareFunc{JWTAuth(secret)}, "Bearer "+tok.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	chain := func(roles ...string) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{JWTAuth(secret), RequireRole(roles...)}
	}

	t.Run("allowed role passes", func(t *testing.T) {
		tok, err := utils.NewAccessToken(secret, 1, "admin", 15)
		require.NoError(t, err)
		rec := runChain(t, chain("admin"), "Bearer "+tok.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disallowed role forbidden", func(t *testing.T) {
		tok, err := utils.NewAccessToken(secret, 1, "consumer", 15)
		require.NoError(t, err)
		rec := runChain(t, chain("admin"), "Bearer "+tok.Token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
