package mock

import (
	"strings"

	"github.com/ProcureNet/client_runtime/internal/domain/aftersales"
	"github.com/ProcureNet/client_runtime/internal/domain/cart"
	"github.com/ProcureNet/client_runtime/internal/domain/catalog"
	"github.com/ProcureNet/client_runtime/internal/domain/inquiry"
	"github.com/ProcureNet/client_runtime/internal/domain/order"
	"github.com/ProcureNet/client_runtime/internal/domain/prodreq"
)

// Projections derive API-shaped responses from the snapshot on demand, so
// the mock-backed facades return exactly what the live backend would.

// Cart maps the stored entries through the SKU lookup into a full cart.
func Cart(s State) cart.Cart {
	c := cart.Cart{Items: []cart.Item{}}
	for _, entry := range s.CartEntries {
		c.Items = append(c.Items, cart.Item{
			SKU: LookupSKU(s, entry.SKUID),
			Qty: entry.Qty,
		})
	}
	c.Recalculate()
	return c
}

// Wishlist resolves the stored SKU ids.
func Wishlist(s State) []catalog.SKU {
	skus := []catalog.SKU{}
	for _, id := range s.WishlistSKUIDs {
		skus = append(skus, LookupSKU(s, id))
	}
	return skus
}

// Orders returns submitted orders, newest first.
func Orders(s State) []order.Order {
	out := make([]order.Order, 0, len(s.Orders))
	for i := len(s.Orders) - 1; i >= 0; i-- {
		out = append(out, s.Orders[i])
	}
	return out
}

// OrderByID finds one order.
func OrderByID(s State, id string) (order.Order, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return order.Order{}, false
}

// Tracking returns the logistics events for an order.
func Tracking(s State, orderID string) []order.TrackingEvent {
	return append([]order.TrackingEvent(nil), s.TrackingByOrderID[orderID]...)
}

// Products pages the fixture catalog with keyword/category filtering.
func Products(s State, q catalog.Query) catalog.ProductPage {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = 20
	}

	matched := []catalog.Product{}
	for _, detail := range FixtureProducts() {
		if q.CategoryID != "" && detail.CategoryID != q.CategoryID {
			continue
		}
		if q.Keyword != "" && !strings.Contains(strings.ToLower(detail.Name), strings.ToLower(q.Keyword)) {
			continue
		}
		matched = append(matched, detail.Product)
	}

	start := (page - 1) * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return catalog.ProductPage{
		Items:    matched[start:end],
		Total:    len(matched),
		Page:     page,
		PageSize: size,
	}
}

// ProductDetail resolves a product with any recorded tier overrides applied
// to its SKUs.
func ProductDetail(s State, spuID string) (catalog.ProductDetail, bool) {
	detail, ok := FixtureProduct(spuID)
	if !ok {
		return catalog.ProductDetail{}, false
	}
	// Clone before applying overrides; the fixture catalog is shared.
	detail.SKUs = append([]catalog.SKU(nil), detail.SKUs...)
	for i, sku := range detail.SKUs {
		if tiers, ok := s.PriceTiersBySKU[sku.ID]; ok && len(tiers) > 0 {
			detail.SKUs[i].PriceTiers = append([]catalog.PriceTier(nil), tiers...)
		}
	}
	return detail, true
}

// SearchSKUs matches fixture SKUs by name or spec.
func SearchSKUs(s State, keyword string) []catalog.SKU {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	out := []catalog.SKU{}
	for _, detail := range FixtureProducts() {
		for _, sku := range detail.SKUs {
			if keyword == "" ||
				strings.Contains(strings.ToLower(sku.Name), keyword) ||
				strings.Contains(strings.ToLower(sku.Spec), keyword) {
				out = append(out, LookupSKU(s, sku.ID))
			}
		}
	}
	return out
}

// Tickets returns after-sales tickets, newest first.
func Tickets(s State) []aftersales.Ticket {
	out := make([]aftersales.Ticket, 0, len(s.Tickets))
	for i := len(s.Tickets) - 1; i >= 0; i-- {
		out = append(out, s.Tickets[i])
	}
	return out
}

// TicketByID finds one ticket.
func TicketByID(s State, id string) (aftersales.Ticket, bool) {
	for _, t := range s.Tickets {
		if t.ID == id {
			return t, true
		}
	}
	return aftersales.Ticket{}, false
}

// TicketMessages returns a ticket conversation in posting order.
func TicketMessages(s State, ticketID string) []aftersales.Message {
	return append([]aftersales.Message(nil), s.TicketMessages[ticketID]...)
}

// Inquiries returns inquiries, newest first.
func Inquiries(s State) []inquiry.Inquiry {
	out := make([]inquiry.Inquiry, 0, len(s.Inquiries))
	for i := len(s.Inquiries) - 1; i >= 0; i-- {
		out = append(out, s.Inquiries[i])
	}
	return out
}

// InquiryByID finds one inquiry.
func InquiryByID(s State, id string) (inquiry.Inquiry, bool) {
	for _, inq := range s.Inquiries {
		if inq.ID == id {
			return inq, true
		}
	}
	return inquiry.Inquiry{}, false
}

// InquiryMessages returns an inquiry conversation in posting order.
func InquiryMessages(s State, inquiryID string) []inquiry.Message {
	return append([]inquiry.Message(nil), s.InquiryMessages[inquiryID]...)
}

// ProductRequests returns sourcing requests, newest first.
func ProductRequests(s State) []prodreq.Request {
	out := make([]prodreq.Request, 0, len(s.ProductRequests))
	for i := len(s.ProductRequests) - 1; i >= 0; i-- {
		out = append(out, s.ProductRequests[i])
	}
	return out
}
