package storage

import "sync"

// shadowEntry is the in-process record of a write the inner store rejected.
// deleted marks a tombstone from a failed Remove.
type shadowEntry struct {
	value   []byte
	deleted bool
}

// silentKV swallows storage failures. A failed Set or Remove is recorded in
// a process-local shadow map, and shadow entries are authoritative: Get
// consults the shadow before the inner store, so a write the disk rejected
// still masks the stale persisted value, and a failed Remove still reads as
// absent. This is the single place the runtime's "storage errors degrade,
// never surface" policy lives.
type silentKV struct {
	inner KV

	mu     sync.Mutex
	shadow map[string]shadowEntry
}

// Silent wraps a store so that Set and Remove never report errors and reads
// reflect the most recent in-process write even when the underlying store
// failed it. Wrapping an already-silent store returns it unchanged.
func Silent(inner KV) KV {
	if _, ok := inner.(*silentKV); ok {
		return inner
	}
	return &silentKV{inner: inner, shadow: make(map[string]shadowEntry)}
}

func (s *silentKV) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	entry, ok := s.shadow[key]
	s.mu.Unlock()
	if ok {
		if entry.deleted {
			return nil, false
		}
		return append([]byte(nil), entry.value...), true
	}
	return s.inner.Get(key)
}

func (s *silentKV) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inner.Set(key, value); err != nil {
		s.shadow[key] = shadowEntry{value: append([]byte(nil), value...)}
		return nil
	}
	delete(s.shadow, key)
	return nil
}

func (s *silentKV) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inner.Remove(key); err != nil {
		s.shadow[key] = shadowEntry{deleted: true}
		return nil
	}
	delete(s.shadow, key)
	return nil
}
