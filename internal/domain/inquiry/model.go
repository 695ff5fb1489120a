// Package inquiry holds price/stock inquiry models.
package inquiry

import "time"

// Status is the backend-reported inquiry state.
type Status string

const (
	StatusOpen     Status = "open"
	StatusAnswered Status = "answered"
	StatusClosed   Status = "closed"
)

// Inquiry is a buyer question about a SKU, usually asking for a quote.
type Inquiry struct {
	ID        string    `json:"id"`
	SKUID     string    `json:"skuId,omitempty"`
	Subject   string    `json:"subject"`
	Quantity  int       `json:"quantity,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is one entry in an inquiry conversation.
type Message struct {
	ID        string    `json:"id"`
	InquiryID string    `json:"inquiryId"`
	Author    string    `json:"author"` // "buyer" or "supplier"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
