package mock

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ProcureNet/client_runtime/pkg/logger"
	"github.com/ProcureNet/client_runtime/pkg/storage"
)

// StateKey is the logical storage key the whole snapshot persists under.
const StateKey = "isolated.mock.state"

// TokenClearer is the slice of the token store Reset needs.
type TokenClearer interface {
	SetToken(string)
}

// Runtime owns the persisted snapshot. Update is read-modify-write against a
// single shared blob, so it is serialized with an in-process mutex; races
// across processes (two dev shells on the same state dir) remain possible
// and accepted for a development-only mode.
type Runtime struct {
	mu     sync.Mutex
	kv     storage.KV
	tokens TokenClearer
	now    func() time.Time
	log    *logger.Logger
}

// NewRuntime builds a runtime over kv. tokens may be nil; Reset then only
// clears the snapshot.
func NewRuntime(kv storage.KV, tokens TokenClearer, log *logger.Logger) *Runtime {
	if log == nil {
		log = logger.NewDefault("mock")
	}
	return &Runtime{
		kv:     storage.Silent(kv),
		tokens: tokens,
		now:    time.Now,
		log:    log,
	}
}

// Load reads and normalizes the persisted snapshot. It never fails: a
// missing or corrupt blob degrades to defaults field by field.
func (r *Runtime) Load() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *Runtime) loadLocked() State {
	raw, _ := r.kv.Get(StateKey)
	return decodeState(raw)
}

// Update applies a reducer to the current snapshot and persists the result.
// The returned state is re-read from storage after the write, so callers see
// exactly what the next Load will see even if the reducer returned a shape
// that only looked valid in memory.
func (r *Runtime) Update(reduce func(State) State) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := normalize(reduce(r.loadLocked()))
	next.UpdatedAt = r.now().UTC()

	data, err := json.Marshal(next)
	if err != nil {
		r.log.WithError(err).Warn("snapshot not serializable, keeping previous state")
		return r.loadLocked()
	}
	_ = r.kv.Set(StateKey, data)

	return r.loadLocked()
}

// Now is the clock mock entities are stamped with. Facades use it instead of
// time.Now so every timestamp in one snapshot comes from the same source.
func (r *Runtime) Now() time.Time {
	return r.now().UTC()
}

// Reset deletes the snapshot and the session token, returning the system to
// first-run defaults.
func (r *Runtime) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	_ = r.kv.Remove(StateKey)
	if r.tokens != nil {
		r.tokens.SetToken("")
	}
	r.log.Info("isolated mock state reset")
}
