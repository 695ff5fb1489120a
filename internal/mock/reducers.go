package mock

import (
	"time"

	"github.com/ProcureNet/client_runtime/internal/domain/aftersales"
	"github.com/ProcureNet/client_runtime/internal/domain/catalog"
	"github.com/ProcureNet/client_runtime/internal/domain/inquiry"
	"github.com/ProcureNet/client_runtime/internal/domain/order"
	"github.com/ProcureNet/client_runtime/internal/domain/prodreq"
)

// Reducer is a pure state transition: look up by id, merge or append, return
// the next snapshot. Runtime.Update normalizes and persists the result.
type Reducer func(State) State

// Cart -------------------------------------------------------------------

// AddCartItem merges qty into an existing entry for the SKU or appends one.
func AddCartItem(skuID string, qty int) Reducer {
	return func(s State) State {
		qty = normalizeQty(qty)
		for i, entry := range s.CartEntries {
			if entry.SKUID == skuID {
				s.CartEntries[i].Qty += qty
				return s
			}
		}
		s.CartEntries = append(s.CartEntries, CartEntry{SKUID: skuID, Qty: qty})
		return s
	}
}

// SetCartQty replaces the quantity for a SKU, appending when absent.
func SetCartQty(skuID string, qty int) Reducer {
	return func(s State) State {
		qty = normalizeQty(qty)
		for i, entry := range s.CartEntries {
			if entry.SKUID == skuID {
				s.CartEntries[i].Qty = qty
				return s
			}
		}
		s.CartEntries = append(s.CartEntries, CartEntry{SKUID: skuID, Qty: qty})
		return s
	}
}

// RemoveCartItem drops the entry for a SKU; absent is a no-op.
func RemoveCartItem(skuID string) Reducer {
	return func(s State) State {
		kept := s.CartEntries[:0]
		for _, entry := range s.CartEntries {
			if entry.SKUID != skuID {
				kept = append(kept, entry)
			}
		}
		s.CartEntries = kept
		return s
	}
}

// ClearCart empties the cart.
func ClearCart() Reducer {
	return func(s State) State {
		s.CartEntries = nil
		return s
	}
}

// Wishlist ---------------------------------------------------------------

// AddWishlist records a SKU id once.
func AddWishlist(skuID string) Reducer {
	return func(s State) State {
		for _, id := range s.WishlistSKUIDs {
			if id == skuID {
				return s
			}
		}
		s.WishlistSKUIDs = append(s.WishlistSKUIDs, skuID)
		return s
	}
}

// RemoveWishlist drops a SKU id; absent is a no-op.
func RemoveWishlist(skuID string) Reducer {
	return func(s State) State {
		kept := s.WishlistSKUIDs[:0]
		for _, id := range s.WishlistSKUIDs {
			if id != skuID {
				kept = append(kept, id)
			}
		}
		s.WishlistSKUIDs = kept
		return s
	}
}

// ToggleWishlist flips membership for a SKU id.
func ToggleWishlist(skuID string) Reducer {
	return func(s State) State {
		for _, id := range s.WishlistSKUIDs {
			if id == skuID {
				return RemoveWishlist(skuID)(s)
			}
		}
		return AddWishlist(skuID)(s)
	}
}

// Orders -----------------------------------------------------------------

// SubmitOrder builds an order from the draft, prices each line off the
// resolved SKU's tier ladder, and seeds a first tracking event.
func SubmitOrder(id string, draft order.Draft, now time.Time) Reducer {
	return func(s State) State {
		o := order.Order{
			ID:        id,
			Status:    order.StatusCreated,
			Address:   draft.Address,
			Remark:    draft.Remark,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, line := range draft.Items {
			sku := LookupSKU(s, line.SKUID)
			qty := normalizeQty(line.Qty)
			unit := sku.TierPriceFor(qty)
			o.Items = append(o.Items, order.Item{SKU: sku, Qty: qty, UnitPriceFen: unit})
			o.TotalFen += unit * int64(qty)
		}
		s.Orders = append(s.Orders, o)
		if s.TrackingByOrderID == nil {
			s.TrackingByOrderID = map[string][]order.TrackingEvent{}
		}
		s.TrackingByOrderID[id] = []order.TrackingEvent{{
			Time:        now,
			Status:      string(order.StatusCreated),
			Description: "order received",
		}}
		return s
	}
}

// SetOrderStatus updates an order's status and appends a tracking event.
// Unknown ids are a no-op; the facade reports the 404 before reducing.
func SetOrderStatus(id string, status order.Status, now time.Time) Reducer {
	return func(s State) State {
		for i, o := range s.Orders {
			if o.ID != id {
				continue
			}
			s.Orders[i].Status = status
			s.Orders[i].UpdatedAt = now
			if s.TrackingByOrderID == nil {
				s.TrackingByOrderID = map[string][]order.TrackingEvent{}
			}
			s.TrackingByOrderID[id] = append(s.TrackingByOrderID[id], order.TrackingEvent{
				Time:   now,
				Status: string(status),
			})
			return s
		}
		return s
	}
}

// Price tiers ------------------------------------------------------------

// RecordPriceTiers stores a tier ladder for a SKU the first time it is
// observed. Existing overrides are never replaced, so tiers seen once in a
// mock session stay stable across repeated detail fetches.
func RecordPriceTiers(skuID string, tiers []catalog.PriceTier) Reducer {
	return func(s State) State {
		if skuID == "" || len(tiers) == 0 {
			return s
		}
		if s.PriceTiersBySKU == nil {
			s.PriceTiersBySKU = map[string][]catalog.PriceTier{}
		}
		if _, ok := s.PriceTiersBySKU[skuID]; ok {
			return s
		}
		s.PriceTiersBySKU[skuID] = append([]catalog.PriceTier(nil), tiers...)
		return s
	}
}

// After-sales ------------------------------------------------------------

// CreateTicket appends a ticket.
func CreateTicket(t aftersales.Ticket) Reducer {
	return func(s State) State {
		s.Tickets = append(s.Tickets, t)
		return s
	}
}

// PostTicketMessage appends a message to a ticket conversation.
func PostTicketMessage(m aftersales.Message) Reducer {
	return func(s State) State {
		if s.TicketMessages == nil {
			s.TicketMessages = map[string][]aftersales.Message{}
		}
		s.TicketMessages[m.TicketID] = append(s.TicketMessages[m.TicketID], m)
		for i, t := range s.Tickets {
			if t.ID == m.TicketID {
				s.Tickets[i].UpdatedAt = m.CreatedAt
			}
		}
		return s
	}
}

// Inquiries --------------------------------------------------------------

// CreateInquiry appends an inquiry.
func CreateInquiry(inq inquiry.Inquiry) Reducer {
	return func(s State) State {
		s.Inquiries = append(s.Inquiries, inq)
		return s
	}
}

// PostInquiryMessage appends a message to an inquiry conversation.
func PostInquiryMessage(m inquiry.Message) Reducer {
	return func(s State) State {
		if s.InquiryMessages == nil {
			s.InquiryMessages = map[string][]inquiry.Message{}
		}
		s.InquiryMessages[m.InquiryID] = append(s.InquiryMessages[m.InquiryID], m)
		for i, inq := range s.Inquiries {
			if inq.ID == m.InquiryID {
				s.Inquiries[i].UpdatedAt = m.CreatedAt
			}
		}
		return s
	}
}

// Product requests -------------------------------------------------------

// CreateProductRequest appends a sourcing request.
func CreateProductRequest(r prodreq.Request) Reducer {
	return func(s State) State {
		s.ProductRequests = append(s.ProductRequests, r)
		return s
	}
}
