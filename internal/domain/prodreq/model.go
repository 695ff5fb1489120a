// Package prodreq holds product request models: buyers asking the platform
// to source an item not yet in the catalog.
package prodreq

import "time"

// Status is the backend-reported sourcing state.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusSourcing  Status = "sourcing"
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// Request is one sourcing request.
type Request struct {
	ID             string    `json:"id"`
	ProductName    string    `json:"productName"`
	Description    string    `json:"description,omitempty"`
	Quantity       int       `json:"quantity"`
	TargetPriceFen int64     `json:"targetPriceFen,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
