package idempotency

import (
	"testing"

	"github.com/ProcureNet/client_runtime/internal/domain/address"
	"github.com/ProcureNet/client_runtime/internal/domain/order"
)

func draftFixture() order.Draft {
	return order.Draft{
		Items: []order.DraftItem{
			{SKUID: "sku-A", Qty: 1},
			{SKUID: "sku-B", Qty: 4},
		},
		Address: address.Address{ID: "addr-1", Contact: "Lin", City: "Shenzhen"},
		Remark:  "deliver to dock 3",
	}
}

func TestKeyManager_StableForUnchangedDraft(t *testing.T) {
	m := NewKeyManager()
	draft := draftFixture()

	k1 := m.Key(draft)
	k2 := m.Key(draft)
	if k1 == "" || k1 != k2 {
		t.Errorf("Key() = %q then %q, want identical non-empty keys", k1, k2)
	}
}

func TestKeyManager_ItemOrderIrrelevant(t *testing.T) {
	m := NewKeyManager()
	draft := draftFixture()
	k1 := m.Key(draft)

	reordered := draftFixture()
	reordered.Items[0], reordered.Items[1] = reordered.Items[1], reordered.Items[0]
	if k2 := m.Key(reordered); k2 != k1 {
		t.Errorf("reordered items minted a new key: %q vs %q", k2, k1)
	}
}

func TestKeyManager_ChangeMints(t *testing.T) {
	m := NewKeyManager()
	k1 := m.Key(draftFixture())

	changedQty := draftFixture()
	changedQty.Items[0].Qty = 2
	k2 := m.Key(changedQty)
	if k2 == k1 {
		t.Error("changing a quantity should mint a new key")
	}

	changedAddr := draftFixture()
	changedAddr.Address.Detail = "building 7"
	k3 := m.Key(changedAddr)
	if k3 == k1 || k3 == k2 {
		t.Error("changing the address should mint a new key")
	}
}

func TestKeyManager_NoCachingAcrossChanges(t *testing.T) {
	m := NewKeyManager()
	original := draftFixture()
	k1 := m.Key(original)

	changed := draftFixture()
	changed.Items[0].Qty = 9
	m.Key(changed)

	// Reverting to the original draft is a new pair, not a cache hit.
	if k3 := m.Key(original); k3 == k1 {
		t.Error("reverted draft must mint a fresh key, not resurrect the old one")
	}
}

func TestKeyManager_Reset(t *testing.T) {
	m := NewKeyManager()
	draft := draftFixture()
	k1 := m.Key(draft)

	m.Reset()
	if k2 := m.Key(draft); k2 == k1 {
		t.Error("Key() after Reset() should mint even for an identical draft")
	}
}

func TestFingerprint_Equality(t *testing.T) {
	a := Fingerprint(draftFixture())
	b := Fingerprint(draftFixture())
	if a != b {
		t.Error("identical drafts must produce identical fingerprints")
	}

	changed := draftFixture()
	changed.Remark = ""
	if Fingerprint(changed) == a {
		t.Error("remark change must change the fingerprint")
	}
}
