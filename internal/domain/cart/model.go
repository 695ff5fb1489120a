// Package cart holds the shopping cart models.
package cart

import "github.com/ProcureNet/client_runtime/internal/domain/catalog"

// Item is one cart line: a SKU and its quantity.
type Item struct {
	SKU catalog.SKU `json:"sku"`
	Qty int         `json:"qty"`
}

// Cart is the full cart payload with derived totals.
type Cart struct {
	Items    []Item `json:"items"`
	TotalQty int    `json:"totalQty"`
	TotalFen int64  `json:"totalFen"`
}

// Recalculate fills the derived totals from the items, applying tier prices.
func (c *Cart) Recalculate() {
	c.TotalQty = 0
	c.TotalFen = 0
	for _, item := range c.Items {
		c.TotalQty += item.Qty
		c.TotalFen += item.SKU.TierPriceFor(item.Qty) * int64(item.Qty)
	}
}
