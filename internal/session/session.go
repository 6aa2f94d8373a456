// Package session owns the persisted auth state: the Session Credential
// (bearer token) and the User Snapshot, plus the independent locale
// preference. Only the auth adapter and the HTTP client's 401 path are
// expected to write; everything else reads.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/five82/kitchen/internal/store"
)

// Fixed store keys.
const (
	TokenKey  = "kitchenhelper_token"
	UserKey   = "kitchenhelper_user"
	LocaleKey = "kitchenhelper_lang"
)

// Session is a typed view over a store.Store.
type Session struct {
	store store.Store
}

// New wraps s. A nil store falls back to an in-memory one.
func New(s store.Store) *Session {
	if s == nil {
		s = store.NewMemory()
	}
	return &Session{store: s}
}

// Token returns the stored credential, or "" when absent.
func (s *Session) Token() string {
	v, err := s.store.Get(TokenKey)
	if err != nil {
		return ""
	}
	return string(v)
}

// HasToken reports whether a credential is stored.
func (s *Session) HasToken() bool {
	return s.Token() != ""
}

// SetToken stores the credential, replacing any previous one.
func (s *Session) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if err := s.store.Set(TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// SaveUser JSON-encodes user as the snapshot.
func (s *Session) SaveUser(user any) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(UserKey, data); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// LoadUser decodes the snapshot into dest. It reports false when no
// snapshot exists or the stored JSON is unreadable.
func (s *Session) LoadUser(dest any) bool {
	data, err := s.store.Get(UserKey)
	if err != nil || len(data) == 0 {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// HasUser reports whether a snapshot is stored.
func (s *Session) HasUser() bool {
	data, err := s.store.Get(UserKey)
	return err == nil && len(data) > 0
}

// Clear removes credential and snapshot together.
func (s *Session) Clear() error {
	if err := s.store.Delete(TokenKey, UserKey); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Locale returns the persisted language preference or "".
func (s *Session) Locale() string {
	v, err := s.store.Get(LocaleKey)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(v))
}

// SetLocale persists the language preference.
func (s *Session) SetLocale(lang string) error {
	return s.store.Set(LocaleKey, []byte(strings.TrimSpace(lang)))
}
