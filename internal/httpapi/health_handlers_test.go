package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	h := decode[healthResponse](t, rec)
	assert.True(t, h.OK)
	assert.Equal(t, "ok", h.DB)
	assert.Equal(t, 10, h.Passions)
	assert.NotEmpty(t, h.Time)

	require.NoError(t, env.deps.DB.Close())
	rec = env.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	h = decode[healthResponse](t, rec)
	assert.False(t, h.OK)
	assert.Equal(t, "unavailable", h.DB)
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/health", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", decode[APIError](t, rec).Error.Code)
}
