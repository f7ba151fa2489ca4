// Package secret keeps the assistant API key in the OS keyring.
package secret

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	Service = "devo"
	User    = "assistant"
)

var (
	// ErrNotFound is returned when no key is stored.
	ErrNotFound = errors.New("api key not found in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be reached.
	ErrUnavailable = errors.New("OS keyring is not available")
)

// Get returns the stored API key.
func Get() (string, error) {
	v, err := keyring.Get(Service, User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v, nil
}

func Set(key string) error {
	if key == "" {
		return errors.New("api key cannot be empty")
	}
	if err := keyring.Set(Service, User, key); err != nil {
		return fmt.Errorf("failed to store api key in keyring: %w", err)
	}
	return nil
}

func Delete() error {
	if err := keyring.Delete(Service, User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete api key from keyring: %w", err)
	}
	return nil
}

// Resolve prefers the configured key and falls back to the keyring. A
// missing or unreachable keyring yields "".
func Resolve(configured string) string {
	if configured != "" {
		return configured
	}
	v, err := Get()
	if err != nil {
		return ""
	}
	return v
}
