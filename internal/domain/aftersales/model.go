// Package aftersales holds after-sales ticket and message models.
package aftersales

import "time"

// TicketType classifies what the buyer is asking for.
type TicketType string

const (
	TypeRefund   TicketType = "refund"
	TypeExchange TicketType = "exchange"
	TypeRepair   TicketType = "repair"
)

// TicketStatus is the backend-reported ticket state.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusProcessing TicketStatus = "processing"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// Ticket is one after-sales case against an order.
type Ticket struct {
	ID        string       `json:"id"`
	OrderID   string       `json:"orderId"`
	Type      TicketType   `json:"type"`
	Reason    string       `json:"reason"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Message is one entry in a ticket conversation.
type Message struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId"`
	Author    string    `json:"author"` // "buyer" or "support"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
