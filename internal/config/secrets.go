package config

import (
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "gitpulse"

	// EnvPassword supplies the warehouse credential directly, bypassing the
	// OS keychain. Useful for CI and containers without a keyring daemon.
	EnvPassword = "GITPULSE_PASSWORD"
)

// Password returns the warehouse credential for a profile. The environment
// variable wins over the OS keychain so that a shell export can override a
// stored secret. The credential is never written to the YAML config.
func Password(profileName string) (string, error) {
	if pw := os.Getenv(EnvPassword); pw != "" {
		return pw, nil
	}

	pw, err := keyring.Get(keyringService, profileName)
	if err != nil {
		return "", fmt.Errorf("no credential for profile %q (set %s or store one with `gitpulse -auth`): %w",
			profileName, EnvPassword, err)
	}
	return pw, nil
}

// StorePassword saves the warehouse credential for a profile in the OS keychain.
func StorePassword(profileName, password string) error {
	if err := keyring.Set(keyringService, profileName, password); err != nil {
		return fmt.Errorf("store credential for profile %q: %w", profileName, err)
	}
	return nil
}

// DeletePassword removes the stored credential for a profile, if any.
func DeletePassword(profileName string) error {
	err := keyring.Delete(keyringService, profileName)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("delete credential for profile %q: %w", profileName, err)
	}
	return nil
}
