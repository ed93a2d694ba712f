// Package session holds per-visitor state (the cart) behind gorilla/sessions.
package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// Session is the request-scoped handle over a gorilla session. Values are
// stored as JSON strings so every backing store can persist them.
type Session struct {
	raw   *sessions.Session
	dirty bool
}

// Wrap adapts a gorilla session.
func Wrap(raw *sessions.Session) *Session {
	return &Session{raw: raw}
}

// ID returns the server-side session id. Cookie-backed sessions have none.
func (s *Session) ID() string {
	if s == nil || s.raw == nil {
		return ""
	}
	return s.raw.ID
}

func (s *Session) IsNew() bool {
	return s == nil || s.raw == nil || s.raw.IsNew
}

// Get decodes the value stored under key into dest. It reports false when the key is absent.
func (s *Session) Get(key string, dest any) (bool, error) {
	raw, ok := s.raw.Values[key]
	if !ok {
		return false, nil
	}
	encoded, ok := raw.(string)
	if !ok {
		return false, fmt.Errorf("session value %q has unexpected type %T", key, raw)
	}
	if err := json.Unmarshal([]byte(encoded), dest); err != nil {
		return false, fmt.Errorf("decode session value %q: %w", key, err)
	}
	return true, nil
}

func (s *Session) Set(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session value %q: %w", key, err)
	}
	s.raw.Values[key] = string(encoded)
	s.dirty = true
	return nil
}

func (s *Session) Delete(key string) {
	if _, ok := s.raw.Values[key]; !ok {
		return
	}
	delete(s.raw.Values, key)
	s.dirty = true
}

// Dirty reports whether values changed since the session was loaded.
func (s *Session) Dirty() bool {
	return s != nil && s.dirty
}

// Save persists pending changes. It must run before the response status is written.
func (s *Session) Save(r *http.Request, w http.ResponseWriter) error {
	if !s.Dirty() {
		return nil
	}
	if err := s.raw.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.dirty = false
	return nil
}
