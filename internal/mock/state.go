// Package mock is the isolated offline backend: a persisted snapshot of
// backend-equivalent state plus pure reducers over it. Facades running in
// isolated mock mode read and write this snapshot instead of the network,
// and project it into the same response shapes the live API returns.
package mock

import (
	"encoding/json"
	"time"

	"github.com/ProcureNet/client_runtime/internal/domain/aftersales"
	"github.com/ProcureNet/client_runtime/internal/domain/catalog"
	"github.com/ProcureNet/client_runtime/internal/domain/inquiry"
	"github.com/ProcureNet/client_runtime/internal/domain/order"
	"github.com/ProcureNet/client_runtime/internal/domain/prodreq"
)

// CartEntry is the stored form of a cart line: SKU id plus quantity. The SKU
// itself is resolved at projection time.
type CartEntry struct {
	SKUID string `json:"skuId"`
	Qty   int    `json:"qty"`
}

// State is the mock backend's single source of truth, persisted as one JSON
// document. It is owned exclusively by the Runtime and mutated only through
// reducers.
type State struct {
	WishlistSKUIDs    []string                         `json:"wishlistSkuIds"`
	CartEntries       []CartEntry                      `json:"cartEntries"`
	PriceTiersBySKU   map[string][]catalog.PriceTier   `json:"skuPriceTiersBySkuId"`
	Orders            []order.Order                    `json:"orders"`
	TrackingByOrderID map[string][]order.TrackingEvent `json:"trackingByOrderId"`
	ProductRequests   []prodreq.Request                `json:"productRequests"`
	Tickets           []aftersales.Ticket              `json:"afterSalesTickets"`
	TicketMessages    map[string][]aftersales.Message  `json:"afterSalesMessagesByTicketId"`
	Inquiries         []inquiry.Inquiry                `json:"inquiries"`
	InquiryMessages   map[string][]inquiry.Message     `json:"inquiryMessagesByInquiryId"`
	UpdatedAt         time.Time                        `json:"updatedAt"`
}

// defaultState is the first-run snapshot: everything empty but allocated.
func defaultState() State {
	return State{
		WishlistSKUIDs:    []string{},
		CartEntries:       []CartEntry{},
		PriceTiersBySKU:   map[string][]catalog.PriceTier{},
		Orders:            []order.Order{},
		TrackingByOrderID: map[string][]order.TrackingEvent{},
		ProductRequests:   []prodreq.Request{},
		Tickets:           []aftersales.Ticket{},
		TicketMessages:    map[string][]aftersales.Message{},
		Inquiries:         []inquiry.Inquiry{},
		InquiryMessages:   map[string][]inquiry.Message{},
	}
}

// decodeState rebuilds a State from a persisted blob. Every field decodes
// independently: a malformed field falls back to its default without taking
// the rest of the snapshot with it, so a corrupted blob can never crash the
// runtime.
func decodeState(raw []byte) State {
	s := defaultState()
	if len(raw) == 0 {
		return s
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s
	}

	decodeField(fields, "wishlistSkuIds", &s.WishlistSKUIDs)
	decodeField(fields, "cartEntries", &s.CartEntries)
	decodeField(fields, "skuPriceTiersBySkuId", &s.PriceTiersBySKU)
	decodeField(fields, "orders", &s.Orders)
	decodeField(fields, "trackingByOrderId", &s.TrackingByOrderID)
	decodeField(fields, "productRequests", &s.ProductRequests)
	decodeField(fields, "afterSalesTickets", &s.Tickets)
	decodeField(fields, "afterSalesMessagesByTicketId", &s.TicketMessages)
	decodeField(fields, "inquiries", &s.Inquiries)
	decodeField(fields, "inquiryMessagesByInquiryId", &s.InquiryMessages)
	decodeField(fields, "updatedAt", &s.UpdatedAt)

	return normalize(s)
}

func decodeField[T any](fields map[string]json.RawMessage, key string, out *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return
	}
	*out = value
}

// normalize repairs structural invariants: unique wishlist ids, cart entries
// unique by SKU with positive quantities, nil maps/slices allocated.
func normalize(s State) State {
	out := defaultState()
	out.UpdatedAt = s.UpdatedAt

	seen := make(map[string]bool)
	for _, id := range s.WishlistSKUIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out.WishlistSKUIDs = append(out.WishlistSKUIDs, id)
	}

	bySKU := make(map[string]int) // sku id -> index in out.CartEntries
	for _, entry := range s.CartEntries {
		if entry.SKUID == "" {
			continue
		}
		qty := normalizeQty(entry.Qty)
		if idx, ok := bySKU[entry.SKUID]; ok {
			out.CartEntries[idx].Qty = qty
			continue
		}
		bySKU[entry.SKUID] = len(out.CartEntries)
		out.CartEntries = append(out.CartEntries, CartEntry{SKUID: entry.SKUID, Qty: qty})
	}

	for sku, tiers := range s.PriceTiersBySKU {
		if sku == "" || len(tiers) == 0 {
			continue
		}
		out.PriceTiersBySKU[sku] = append([]catalog.PriceTier(nil), tiers...)
	}

	for _, o := range s.Orders {
		if o.ID == "" {
			continue
		}
		out.Orders = append(out.Orders, o)
	}
	for id, events := range s.TrackingByOrderID {
		if id == "" {
			continue
		}
		out.TrackingByOrderID[id] = append([]order.TrackingEvent(nil), events...)
	}

	for _, r := range s.ProductRequests {
		if r.ID == "" {
			continue
		}
		out.ProductRequests = append(out.ProductRequests, r)
	}

	for _, tic := range s.Tickets {
		if tic.ID == "" {
			continue
		}
		out.Tickets = append(out.Tickets, tic)
	}
	for id, msgs := range s.TicketMessages {
		if id == "" {
			continue
		}
		out.TicketMessages[id] = append([]aftersales.Message(nil), msgs...)
	}

	for _, inq := range s.Inquiries {
		if inq.ID == "" {
			continue
		}
		out.Inquiries = append(out.Inquiries, inq)
	}
	for id, msgs := range s.InquiryMessages {
		if id == "" {
			continue
		}
		out.InquiryMessages[id] = append([]inquiry.Message(nil), msgs...)
	}

	return out
}

// normalizeQty collapses anything non-positive to 1; quantities in the mock
// are always positive integers.
func normalizeQty(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}
