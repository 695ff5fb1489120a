package mock

import (
	"testing"
	"time"

	"github.com/ProcureNet/client_runtime/internal/auth"
	"github.com/ProcureNet/client_runtime/internal/domain/address"
	"github.com/ProcureNet/client_runtime/internal/domain/catalog"
	"github.com/ProcureNet/client_runtime/internal/domain/order"
	"github.com/ProcureNet/client_runtime/pkg/storage"
)

func newTestRuntime(t *testing.T) (*Runtime, storage.KV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	return NewRuntime(kv, nil, nil), kv
}

func TestRuntime_CartAccumulation(t *testing.T) {
	rt, _ := newTestRuntime(t)

	rt.Update(AddCartItem("sku-1001-1", 2))
	state := rt.Update(AddCartItem("sku-1001-1", 3))

	if len(state.CartEntries) != 1 {
		t.Fatalf("cart entries = %d, want 1", len(state.CartEntries))
	}
	if state.CartEntries[0].Qty != 5 {
		t.Errorf("qty = %d, want 5", state.CartEntries[0].Qty)
	}

	state = rt.Update(RemoveCartItem("sku-1001-1"))
	if len(state.CartEntries) != 0 {
		t.Errorf("cart entries after remove = %d, want 0", len(state.CartEntries))
	}
}

func TestRuntime_QtyNormalization(t *testing.T) {
	rt, _ := newTestRuntime(t)

	state := rt.Update(AddCartItem("sku-x", 0))
	if state.CartEntries[0].Qty != 1 {
		t.Errorf("qty = %d, non-positive input should collapse to 1", state.CartEntries[0].Qty)
	}

	state = rt.Update(SetCartQty("sku-x", -5))
	if state.CartEntries[0].Qty != 1 {
		t.Errorf("qty = %d, want 1", state.CartEntries[0].Qty)
	}
}

func TestRuntime_PersistsAcrossInstances(t *testing.T) {
	kv := storage.NewMemoryKV()
	first := NewRuntime(kv, nil, nil)
	first.Update(AddWishlist("sku-1002-1"))
	first.Update(AddCartItem("sku-1002-1", 4))

	// A fresh runtime over the same storage sees the same snapshot, as a
	// process restart would.
	second := NewRuntime(kv, nil, nil)
	state := second.Load()
	if len(state.WishlistSKUIDs) != 1 || state.WishlistSKUIDs[0] != "sku-1002-1" {
		t.Errorf("wishlist = %v, want persisted entry", state.WishlistSKUIDs)
	}
	if len(state.CartEntries) != 1 || state.CartEntries[0].Qty != 4 {
		t.Errorf("cart = %v, want persisted entry", state.CartEntries)
	}
	if state.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be stamped on update")
	}
}

func TestRuntime_ResetRestoresDefaultsAndClearsToken(t *testing.T) {
	kv := storage.NewMemoryKV()
	tokens := auth.NewStore(kv, "")
	tokens.SetToken("session-1")

	rt := NewRuntime(kv, tokens, nil)
	rt.Update(AddCartItem("sku-1", 2))
	rt.Update(AddWishlist("sku-2"))

	rt.Reset()

	state := rt.Load()
	if len(state.CartEntries) != 0 || len(state.WishlistSKUIDs) != 0 || len(state.Orders) != 0 {
		t.Errorf("state after reset = %+v, want defaults", state)
	}
	if got := tokens.Token(); got != "" {
		t.Errorf("token after reset = %q, want empty", got)
	}
}

func TestRuntime_CorruptBlobDegradesFieldByField(t *testing.T) {
	kv := storage.NewMemoryKV()
	// cartEntries is malformed; wishlist is valid and must survive.
	kv.Set(StateKey, []byte(`{"wishlistSkuIds":["sku-a","sku-a","","sku-b"],"cartEntries":"not an array","orders":42}`))

	rt := NewRuntime(kv, nil, nil)
	state := rt.Load()

	if len(state.WishlistSKUIDs) != 2 {
		t.Errorf("wishlist = %v, want deduped [sku-a sku-b]", state.WishlistSKUIDs)
	}
	if state.CartEntries == nil || len(state.CartEntries) != 0 {
		t.Errorf("cart = %v, want empty default for malformed field", state.CartEntries)
	}
	if len(state.Orders) != 0 {
		t.Errorf("orders = %v, want empty default", state.Orders)
	}
}

func TestRuntime_TotalGarbageNeverPanics(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.Set(StateKey, []byte(`}{[[[`))

	rt := NewRuntime(kv, nil, nil)
	state := rt.Load()
	if len(state.CartEntries) != 0 {
		t.Errorf("state = %+v, want pristine defaults", state)
	}
	// And the next update works normally.
	state = rt.Update(AddCartItem("sku-1", 1))
	if len(state.CartEntries) != 1 {
		t.Errorf("update after garbage blob failed: %+v", state)
	}
}

func TestRuntime_SubmitOrderSeedsTracking(t *testing.T) {
	rt, _ := newTestRuntime(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	draft := order.Draft{
		Items:   []order.DraftItem{{SKUID: "sku-1001-1", Qty: 100}},
		Address: address.Address{ID: "addr-1", City: "Shenzhen"},
		Remark:  "urgent",
	}
	state := rt.Update(SubmitOrder("ord-1", draft, now))

	o, ok := OrderByID(state, "ord-1")
	if !ok {
		t.Fatal("submitted order not found")
	}
	if o.Status != order.StatusCreated {
		t.Errorf("status = %s, want created", o.Status)
	}
	// 100 units hits the minQty=100 tier at 1100 fen.
	if o.TotalFen != 110000 {
		t.Errorf("TotalFen = %d, want 110000 (tier price applied)", o.TotalFen)
	}

	events := Tracking(state, "ord-1")
	if len(events) != 1 || events[0].Status != "created" {
		t.Errorf("tracking = %+v, want one seeded event", events)
	}

	state = rt.Update(SetOrderStatus("ord-1", order.StatusShipped, now.Add(time.Hour)))
	if events := Tracking(state, "ord-1"); len(events) != 2 {
		t.Errorf("tracking after status change = %+v, want 2 events", events)
	}
}

func TestRuntime_PriceTierOverridesAppendOnly(t *testing.T) {
	rt, _ := newTestRuntime(t)

	first := []catalog.PriceTier{{MinQty: 1, UnitPriceFen: 500}}
	second := []catalog.PriceTier{{MinQty: 1, UnitPriceFen: 999}}

	rt.Update(RecordPriceTiers("sku-ext-1", first))
	state := rt.Update(RecordPriceTiers("sku-ext-1", second))

	tiers := state.PriceTiersBySKU["sku-ext-1"]
	if len(tiers) != 1 || tiers[0].UnitPriceFen != 500 {
		t.Errorf("tiers = %+v, want the first observation kept", tiers)
	}

	// The override is what the lookup serves.
	sku := LookupSKU(state, "sku-ext-1")
	if len(sku.PriceTiers) != 1 || sku.PriceTiers[0].UnitPriceFen != 500 {
		t.Errorf("LookupSKU tiers = %+v, want recorded override", sku.PriceTiers)
	}
}

func TestLookupSKU_ThreeTierFallback(t *testing.T) {
	state := defaultState()

	// Exact fixture match.
	if sku := LookupSKU(state, "sku-1001-1"); sku.Name != "Work Gloves / Size M" {
		t.Errorf("fixture lookup = %+v", sku)
	}

	// SPU inference: unknown variant of a known product.
	inferred := LookupSKU(state, "sku-1001-9")
	if inferred.SPUID != "spu-1001" {
		t.Errorf("inferred SPUID = %s, want spu-1001", inferred.SPUID)
	}
	if inferred.UnitPriceFen != 1250 {
		t.Errorf("inferred price = %d, want base SKU price", inferred.UnitPriceFen)
	}

	// Placeholder for an id with no recognizable SPU.
	placeholder := LookupSKU(state, "totally-opaque-id")
	if placeholder.ID != "totally-opaque-id" || placeholder.UnitPriceFen != placeholderPriceFen {
		t.Errorf("placeholder = %+v", placeholder)
	}
	if len(placeholder.PriceTiers) == 0 {
		t.Error("placeholder must carry a default price tier")
	}
}

func TestProjections_CartTotals(t *testing.T) {
	rt, _ := newTestRuntime(t)
	state := rt.Update(AddCartItem("sku-1002-1", 250))

	c := Cart(state)
	if len(c.Items) != 1 {
		t.Fatalf("cart items = %d, want 1", len(c.Items))
	}
	// 250 boxes hits the minQty=250 tier at 320 fen.
	if c.TotalFen != 250*320 {
		t.Errorf("TotalFen = %d, want %d", c.TotalFen, 250*320)
	}
	if c.TotalQty != 250 {
		t.Errorf("TotalQty = %d, want 250", c.TotalQty)
	}
}

func TestProjections_ProductsFilterAndPage(t *testing.T) {
	state := defaultState()

	page := Products(state, catalog.Query{CategoryID: "cat-packaging"})
	if page.Total != 2 {
		t.Errorf("Total = %d, want 2 packaging products", page.Total)
	}

	page = Products(state, catalog.Query{Keyword: "gloves"})
	if page.Total != 1 || page.Items[0].ID != "spu-1001" {
		t.Errorf("keyword page = %+v", page)
	}

	page = Products(state, catalog.Query{Page: 2, PageSize: 2})
	if len(page.Items) != 1 {
		t.Errorf("page 2 items = %d, want 1", len(page.Items))
	}
}

func TestFixtures_Addresses(t *testing.T) {
	addrs := FixtureAddresses()
	if len(addrs) != 2 {
		t.Fatalf("addresses = %d, want 2", len(addrs))
	}
	if !addrs[0].Default {
		t.Error("first fixture address should be the default")
	}
}

func TestWishlistToggle(t *testing.T) {
	rt, _ := newTestRuntime(t)

	state := rt.Update(ToggleWishlist("sku-1003-1"))
	if len(state.WishlistSKUIDs) != 1 {
		t.Fatalf("wishlist = %v, want one entry", state.WishlistSKUIDs)
	}
	state = rt.Update(ToggleWishlist("sku-1003-1"))
	if len(state.WishlistSKUIDs) != 0 {
		t.Errorf("wishlist = %v, want empty after second toggle", state.WishlistSKUIDs)
	}
}
