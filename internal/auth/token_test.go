package auth

import (
	"errors"
	"testing"

	"github.com/ProcureNet/client_runtime/pkg/storage"
)

func TestStore_FallbackOrder(t *testing.T) {
	kv := storage.NewMemoryKV()
	if err := kv.Set("token", []byte("legacy-token")); err != nil {
		t.Fatal(err)
	}
	store := NewStore(kv, "dev-token")

	if got := store.Token(); got != "legacy-token" {
		t.Errorf("Token() = %q, want legacy fallback", got)
	}

	store.SetToken("fresh-token")
	if got := store.Token(); got != "fresh-token" {
		t.Errorf("Token() = %q, want primary to win", got)
	}
	// Writing the primary key must not touch the legacy one.
	if v, ok := kv.Get("token"); !ok || string(v) != "legacy-token" {
		t.Errorf("legacy key = %q, %v; want untouched", v, ok)
	}
}

func TestStore_LogoutClearsBothKeys(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.Set("auth.token", []byte("primary"))
	kv.Set("token", []byte("legacy"))
	store := NewStore(kv, "")

	store.SetToken("")

	if _, ok := kv.Get("auth.token"); ok {
		t.Error("primary key should be cleared on logout")
	}
	if _, ok := kv.Get("token"); ok {
		t.Error("legacy key should be cleared on logout")
	}
	if got := store.Token(); got != "" {
		t.Errorf("Token() after logout = %q, want empty", got)
	}
}

func TestStore_DevTokenFallback(t *testing.T) {
	store := NewStore(storage.NewMemoryKV(), "dev-token")
	if got := store.Token(); got != "dev-token" {
		t.Errorf("Token() = %q, want dev fallback", got)
	}

	store.SetToken("")
	if got := store.Token(); got != "dev-token" {
		t.Errorf("Token() after logout = %q, dev token is the floor", got)
	}
}

// brokenKV fails every persistent operation.
type brokenKV struct{}

func (brokenKV) Get(string) ([]byte, bool) { return nil, false }
func (brokenKV) Set(string, []byte) error  { return errors.New("storage offline") }
func (brokenKV) Remove(string) error       { return errors.New("storage offline") }

func TestStore_StorageFailureDegradesSilently(t *testing.T) {
	store := NewStore(brokenKV{}, "")

	// SetToken must not panic or surface the failure, and the value must
	// still be visible within the process.
	store.SetToken("session-1")
	if got := store.Token(); got != "session-1" {
		t.Errorf("Token() = %q, want in-process fallback after storage failure", got)
	}

	store.SetToken("")
	if got := store.Token(); got != "" {
		t.Errorf("Token() after logout = %q, want empty", got)
	}
}

// readOnlyKV reads a backing store but fails every write, like a file store
// on a full disk.
type readOnlyKV struct {
	backing *storage.MemoryKV
}

func (r readOnlyKV) Get(key string) ([]byte, bool) { return r.backing.Get(key) }
func (r readOnlyKV) Set(string, []byte) error      { return errors.New("disk full") }
func (r readOnlyKV) Remove(string) error           { return errors.New("disk full") }

func TestStore_WriteFailureMasksStalePersistedToken(t *testing.T) {
	backing := storage.NewMemoryKV()
	backing.Set("auth.token", []byte("stale-session"))
	store := NewStore(readOnlyKV{backing: backing}, "")

	// The store can still read the old token but cannot persist a new one;
	// the fresh login must win within the process anyway.
	store.SetToken("fresh-session")
	if got := store.Token(); got != "fresh-session" {
		t.Errorf("Token() = %q, want the fresh session despite the failed write", got)
	}

	// Logout cannot delete the persisted value either, but it must still
	// take effect: sending the stale token after logout is not acceptable.
	store.SetToken("")
	if got := store.Token(); got != "" {
		t.Errorf("Token() after logout = %q, want empty despite the failed remove", got)
	}
}
