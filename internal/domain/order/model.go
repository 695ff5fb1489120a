// Package order holds order, draft and tracking models. Status transitions
// are owned by the backend; this layer only stores and reports them.
package order

import (
	"time"

	"github.com/ProcureNet/client_runtime/internal/domain/address"
	"github.com/ProcureNet/client_runtime/internal/domain/catalog"
)

// Status is the backend-reported order state.
type Status string

const (
	StatusCreated   Status = "created"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Item is one order line with the unit price locked in at submission.
type Item struct {
	SKU          catalog.SKU `json:"sku"`
	Qty          int         `json:"qty"`
	UnitPriceFen int64       `json:"unitPriceFen"`
}

// Order is a submitted purchase.
type Order struct {
	ID        string          `json:"id"`
	Status    Status          `json:"status"`
	Address   address.Address `json:"address"`
	Items     []Item          `json:"items"`
	Remark    string          `json:"remark,omitempty"`
	TotalFen  int64           `json:"totalFen"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TrackingEvent is one logistics scan for an order.
type TrackingEvent struct {
	Time        time.Time `json:"time"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
}

// DraftItem is one line of an order draft.
type DraftItem struct {
	SKUID string `json:"skuId"`
	Qty   int    `json:"qty"`
}

// Draft is the semantic content of an order submission. Its canonical form
// is what the idempotency fingerprint is derived from.
type Draft struct {
	Items   []DraftItem     `json:"items"`
	Address address.Address `json:"address"`
	Remark  string          `json:"remark,omitempty"`
}
