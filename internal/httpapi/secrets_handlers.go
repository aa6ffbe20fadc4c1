package httpapi

import (
	"net/http"
	"sync/atomic"

	"passionmatch-engine/internal/config"
	"passionmatch-engine/internal/secrets"
)

// SecretsHandler manages the IMAP password of the account in the current
// config. The password itself is never returned.
type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setIMAPPasswordReq struct {
	Password string `json:"password"`
}

type imapSecretStatus struct {
	Account string `json:"account"`
	Stored  bool   `json:"stored"`
}

func (h SecretsHandler) account() string {
	return secrets.IMAPKeyringAccount(h.CfgVal.Load().(config.Config))
}

func (h SecretsHandler) Status(w http.ResponseWriter, r *http.Request) {
	acct := h.account()
	ok, err := secrets.HasIMAPPassword(acct)
	if err != nil {
		writeErr(w, r, err, "keyring_failed")
		return
	}
	writeJSON(w, imapSecretStatus{Account: acct, Stored: ok})
}

func (h SecretsHandler) SetIMAPPassword(w http.ResponseWriter, r *http.Request) {
	var req setIMAPPasswordReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := secrets.SetIMAPPassword(h.account(), req.Password); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_failed", "failed to store password: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteIMAPPassword(w http.ResponseWriter, r *http.Request) {
	if err := secrets.DeleteIMAPPassword(h.account()); err != nil {
		writeErr(w, r, err, "keyring_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
