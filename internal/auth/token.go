// Package auth holds the session token for the client runtime. The token is
// an opaque string owned by exactly one logical session: written on login,
// read before every authenticated request, cleared on logout.
package auth

import "github.com/ProcureNet/client_runtime/pkg/storage"

const (
	// primaryTokenKey is where new sessions are persisted.
	primaryTokenKey = "auth.token"
	// legacyTokenKey is read as a migration fallback and cleared on logout;
	// it is never written.
	legacyTokenKey = "token"
)

// Store reads and writes the session token. Persistence is best-effort: a
// storage failure degrades to a process-local value rather than surfacing,
// because losing a cached token must never block login or logout.
type Store struct {
	kv       storage.KV
	devToken string
}

// NewStore builds a token store over kv. devToken is the compile-time/dev
// fallback returned when nothing is persisted; it is never written to
// storage.
func NewStore(kv storage.KV, devToken string) *Store {
	return &Store{kv: storage.Silent(kv), devToken: devToken}
}

// Token returns the current bearer token: persisted primary key, then the
// legacy key, then the dev fallback, then empty.
func (s *Store) Token() string {
	if v, ok := s.kv.Get(primaryTokenKey); ok && len(v) > 0 {
		return string(v)
	}
	if v, ok := s.kv.Get(legacyTokenKey); ok && len(v) > 0 {
		return string(v)
	}
	return s.devToken
}

// SetToken stores a new session token. An empty value is a logout and clears
// both the primary and legacy keys.
func (s *Store) SetToken(token string) {
	if token == "" {
		_ = s.kv.Remove(primaryTokenKey)
		_ = s.kv.Remove(legacyTokenKey)
		return
	}
	_ = s.kv.Set(primaryTokenKey, []byte(token))
}
