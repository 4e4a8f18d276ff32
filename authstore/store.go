// Package authstore persists the session token and identity used by the API client.
package authstore

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Storage keys, shared with anything else reading the credentials file
const (
	TokenKey    = "auth:token"
	IdentityKey = "auth:identity"
)

// Storage is a durable string key-value store
type Storage interface {
	// Get returns the stored value and whether the key exists
	Get(key string) (string, bool, error)

	// Set stores value under key
	Set(key, value string) error

	// Remove deletes key; removing a missing key is not an error
	Remove(key string) error
}

// Store exposes the session credentials. Getters never report absence:
// a missing or unreadable value is returned as the empty string.
type Store struct {
	storage Storage
	logger  zerolog.Logger
}

// New creates a Store on top of storage
func New(storage Storage, logger zerolog.Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
	}
}

// Token returns the stored token or ""
func (s *Store) Token() string {
	return s.get(TokenKey)
}

// SetToken stores token. An empty token leaves the stored value untouched.
func (s *Store) SetToken(token string) error {
	return s.set(TokenKey, token)
}

// ClearToken removes the stored token
func (s *Store) ClearToken() error {
	return s.remove(TokenKey)
}

// Identity returns the stored identity or ""
func (s *Store) Identity() string {
	return s.get(IdentityKey)
}

// SetIdentity stores identity. An empty identity leaves the stored value untouched.
func (s *Store) SetIdentity(identity string) error {
	return s.set(IdentityKey, identity)
}

// ClearIdentity removes the stored identity
func (s *Store) ClearIdentity() error {
	return s.remove(IdentityKey)
}

// Clear removes both token and identity
func (s *Store) Clear() error {
	if err := s.ClearToken(); err != nil {
		return err
	}
	return s.ClearIdentity()
}

func (s *Store) get(key string) string {
	value, ok, err := s.storage.Get(key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to read credential")
		return ""
	}
	if !ok {
		return ""
	}
	return value
}

func (s *Store) set(key, value string) error {
	if value == "" {
		return nil
	}
	if err := s.storage.Set(key, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Msg("Stored credential")
	return nil
}

func (s *Store) remove(key string) error {
	if err := s.storage.Remove(key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Msg("Removed credential")
	return nil
}
