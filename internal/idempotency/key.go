// Package idempotency derives stable keys for mutating requests so the
// backend can deduplicate retried submissions of the same logical operation.
package idempotency

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ProcureNet/client_runtime/internal/domain/order"
)

// Header is the request header the key travels in.
const Header = "Idempotency-Key"

// Fingerprint canonicalises a draft's semantic content. Items are sorted by
// SKU id so that reordering lines does not change the fingerprint; any change
// to quantities, the address or the remark does. Two fingerprints are equal
// iff their canonical JSON is equal.
func Fingerprint(draft order.Draft) string {
	items := append([]order.DraftItem(nil), draft.Items...)
	sort.Slice(items, func(i, j int) bool { return items[i].SKUID < items[j].SKUID })

	canonical := order.Draft{
		Items:   items,
		Address: draft.Address,
		Remark:  draft.Remark,
	}
	data, err := json.Marshal(canonical)
	if err != nil {
		// Unreachable for plain draft data; the sentinel just keeps
		// Fingerprint total.
		return "unfingerprintable"
	}
	return string(data)
}

// KeyManager hands out one idempotency key per distinct draft. Re-requesting
// the key for an unmodified draft returns the same key so retries are
// deduplicated server-side; any semantic change mints a fresh key.
type KeyManager struct {
	mu              sync.Mutex
	lastFingerprint string
	lastKey         string
}

// NewKeyManager creates an empty manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{}
}

// Key returns the idempotency key for the draft.
func (m *KeyManager) Key(draft order.Draft) string {
	fp := Fingerprint(draft)

	m.mu.Lock()
	defer m.mu.Unlock()
	if fp == m.lastFingerprint && m.lastKey != "" {
		return m.lastKey
	}
	m.lastFingerprint = fp
	m.lastKey = uuid.NewString()
	return m.lastKey
}

// Reset forgets the remembered pair so the next Key call always mints. Call
// after a submission reaches a terminal outcome, so an unrelated future
// draft with a coincidentally identical fingerprint cannot reuse the key.
func (m *KeyManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFingerprint = ""
	m.lastKey = ""
}
