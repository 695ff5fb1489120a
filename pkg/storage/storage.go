// Package storage provides the persisted key/value primitive the client
// runtime keeps its token and isolated-mock snapshot in. Values are opaque
// byte blobs; each logical key maps to one document.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// KV is a minimal persisted key/value store. Get reports absence (or an
// unreadable value) as ok == false rather than an error.
type KV interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte) error
	Remove(key string) error
}

// =============================================================================
// File-backed store
// =============================================================================

// FileKV stores each key as one file under a directory.
type FileKV struct {
	dir string
}

// NewFileKV creates a file-backed store rooted at dir. The directory is
// created lazily on the first write.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

func (f *FileKV) path(key string) string {
	// Keys are logical names like "auth.token"; flatten anything that would
	// escape the directory.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(f.dir, safe+".dat")
}

func (f *FileKV) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (f *FileKV) Set(key string, value []byte) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path(key), value, 0o600)
}

func (f *FileKV) Remove(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// =============================================================================
// In-memory store
// =============================================================================

// MemoryKV is a process-local store. It is safe for concurrent use and is
// primarily intended for tests and hosts without a writable filesystem.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
