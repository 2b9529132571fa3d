package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authenticore/registry/internal/config"
)

func TestCacheKeyPerRequestPath(t *testing.T) {
	first := httptest.NewRequest(http.MethodGet, "/api/verify/ACAAAA11", nil)
	second := httptest.NewRequest(http.MethodGet, "/api/verify/ACBBBB22", nil)

	// Each product code must get its own cache entry.
	assert.NotEqual(t, cacheKey("passport:cache", first), cacheKey("passport:cache", second))

	repeat := httptest.NewRequest(http.MethodGet, "/api/verify/ACAAAA11", nil)
	assert.Equal(t, cacheKey("passport:cache", first), cacheKey("passport:cache", repeat))
}

func TestCacheKeyHonorsPrefix(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products/ACAAAA11", nil)

	assert.Contains(t, cacheKey("passport:cache", req), "passport:cache:")
}

func TestRedisCachePassThroughWithoutClient(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products/ACAAAA11", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestRedisCachePassThroughWhenDisabled(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/verify/ACAAAA11", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}
