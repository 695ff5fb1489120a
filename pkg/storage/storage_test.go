package storage

import (
	"bytes"
	"errors"
	"testing"
)

func TestFileKV_RoundTrip(t *testing.T) {
	kv := NewFileKV(t.TempDir())

	if _, ok := kv.Get("auth.token"); ok {
		t.Fatal("Get() on empty store should report absence")
	}

	if err := kv.Set("auth.token", []byte("tok-1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, ok := kv.Get("auth.token")
	if !ok || string(v) != "tok-1" {
		t.Fatalf("Get() = %q, %v, want tok-1, true", v, ok)
	}

	if err := kv.Remove("auth.token"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok := kv.Get("auth.token"); ok {
		t.Fatal("Get() after Remove() should report absence")
	}
	// Removing a missing key is not an error.
	if err := kv.Remove("auth.token"); err != nil {
		t.Fatalf("Remove() of missing key error = %v", err)
	}
}

func TestFileKV_KeyFlattening(t *testing.T) {
	kv := NewFileKV(t.TempDir())
	if err := kv.Set("../escape/attempt", []byte("x")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, ok := kv.Get("../escape/attempt")
	if !ok || string(v) != "x" {
		t.Fatalf("Get() = %q, %v, want x, true", v, ok)
	}
}

func TestMemoryKV_Isolation(t *testing.T) {
	kv := NewMemoryKV()
	original := []byte("value")
	if err := kv.Set("k", original); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	original[0] = 'X'

	v, _ := kv.Get("k")
	if !bytes.Equal(v, []byte("value")) {
		t.Errorf("stored value mutated through caller slice: %q", v)
	}
}

// failingKV rejects every operation, standing in for a broken storage backend.
type failingKV struct{}

func (failingKV) Get(string) ([]byte, bool) { return nil, false }
func (failingKV) Set(string, []byte) error { return errors.New("disk full") }
func (failingKV) Remove(string) error { return errors.New("disk full") }

func TestSilent_SwallowsFailuresAndShadows(t *testing.T) {
	kv := Silent(failingKV{})

	if err := kv.Set("token", []byte("abc")); err != nil {
		t.Fatalf("Silent Set() error = %v, want nil", err)
	}
	v, ok := kv.Get("token")
	if !ok || string(v) != "abc" {
		t.Fatalf("Get() after failed Set = %q, %v, want abc, true", v, ok)
	}

	if err := kv.Remove("token"); err != nil {
		t.Fatalf("Silent Remove() error = %v, want nil", err)
	}
	if _, ok := kv.Get("token"); ok {
		t.Fatal("Get() after Remove() should report absence")
	}
}

func TestSilent_SuccessfulWritePersists(t *testing.T) {
	inner := NewMemoryKV()
	kv := Silent(inner)

	if err := kv.Set("k", []byte("persisted")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, ok := inner.Get("k")
	if !ok || string(v) != "persisted" {
		t.Fatalf("inner store missing value: %q, %v", v, ok)
	}
	if got, _ := kv.Get("k"); string(got) != "persisted" {
		t.Fatalf("Get() = %q, want persisted", got)
	}
}

// readOnlyKV reads from a backing store but rejects every write, standing in
// for a file store on a full or read-only disk.
type readOnlyKV struct {
	backing *MemoryKV
}

func (r readOnlyKV) Get(key string) ([]byte, bool) { return r.backing.Get(key) }
func (r readOnlyKV) Set(string, []byte) error      { return errors.New("read-only filesystem") }
func (r readOnlyKV) Remove(string) error           { return errors.New("read-only filesystem") }

func TestSilent_ShadowMasksStaleInnerValue(t *testing.T) {
	backing := NewMemoryKV()
	backing.Set("token", []byte("stale"))
	kv := Silent(readOnlyKV{backing: backing})

	if err := kv.Set("token", []byte("fresh")); err != nil {
		t.Fatalf("Silent Set() error = %v, want nil", err)
	}
	v, ok := kv.Get("token")
	if !ok || string(v) != "fresh" {
		t.Fatalf("Get() = %q, %v, want the in-process write to win over the stale persisted value", v, ok)
	}
}

func TestSilent_FailedRemoveTombstones(t *testing.T) {
	backing := NewMemoryKV()
	backing.Set("token", []byte("stale"))
	kv := Silent(readOnlyKV{backing: backing})

	if err := kv.Remove("token"); err != nil {
		t.Fatalf("Silent Remove() error = %v, want nil", err)
	}
	if v, ok := kv.Get("token"); ok {
		t.Fatalf("Get() after Remove() = %q, want absence even though the inner delete failed", v)
	}

	// A later successful-looking write resurrects the key.
	if err := kv.Set("token", []byte("next")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, _ := kv.Get("token"); string(v) != "next" {
		t.Fatalf("Get() = %q, want next", v)
	}
}

func TestSilent_Idempotent(t *testing.T) {
	kv := Silent(NewMemoryKV())
	if Silent(kv) != kv {
		t.Error("Silent() should not re-wrap an already silent store")
	}
}
