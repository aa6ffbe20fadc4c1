package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"passionmatch-engine/internal/config"
)

const (
	// KeyringService groups the engine's secrets in the OS keychain.
	KeyringService = "passionmatch"
)

var ErrPasswordNotFound = errors.New("IMAP password not found in keychain")

func GetIMAPPassword(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) == "" {
		return "", errors.New("keyring account name is empty")
	}
	pw, err := keyring.Get(KeyringService, keyringAccount)
	if errors.Is(err, keyring.ErrNotFound) || (err == nil && strings.TrimSpace(pw) == "") {
		return "", ErrPasswordNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keyring get: %w", err)
	}
	return pw, nil
}

func SetIMAPPassword(keyringAccount string, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	if err := keyring.Set(KeyringService, keyringAccount, password); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

// HasIMAPPassword reports whether a password is stored without returning it.
func HasIMAPPassword(keyringAccount string) (bool, error) {
	_, err := GetIMAPPassword(keyringAccount)
	if errors.Is(err, ErrPasswordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func DeleteIMAPPassword(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	err := keyring.Delete(KeyringService, keyringAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrPasswordNotFound
	}
	if err != nil {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}

func IMAPKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"passionmatch:imap:%s@%s",
		cfg.Ingest.Email.Username,
		cfg.Ingest.Email.IMAPHost,
	)
}
