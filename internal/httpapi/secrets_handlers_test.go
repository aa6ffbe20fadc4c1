package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"passionmatch-engine/internal/config"
	"passionmatch-engine/internal/secrets"
)

func TestSecrets_SetIMAPPassword(t *testing.T) {
	keyring.MockInit()
	env := newTestEnv(t)

	cfg := config.Default()
	cfg.Ingest.Email.Username = "deals@example.com"
	cfg.Ingest.Email.IMAPHost = "imap.example.com"
	env.cfgVal.Store(cfg)

	rec := env.do(t, http.MethodGet, "/api/secrets/imap", "")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[imapSecretStatus](t, rec)
	assert.False(t, st.Stored)
	assert.Equal(t, "passionmatch:imap:deals@example.com@imap.example.com", st.Account)

	rec = env.do(t, http.MethodPost, "/api/secrets/imap", `{"password":"s3cret"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/secrets/imap", "")
	assert.True(t, decode[imapSecretStatus](t, rec).Stored)

	pw, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(cfg))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	rec = env.do(t, http.MethodPost, "/api/secrets/imap", `{"password":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "keyring_failed", decode[APIError](t, rec).Error.Code)
}

func TestSecrets_DeleteIMAPPassword(t *testing.T) {
	keyring.MockInit()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/api/secrets/imap", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[APIError](t, rec).Error.Code)

	rec = env.do(t, http.MethodPost, "/api/secrets/imap", `{"password":"pw"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/secrets/imap", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/secrets/imap", "")
	assert.False(t, decode[imapSecretStatus](t, rec).Stored)
}
