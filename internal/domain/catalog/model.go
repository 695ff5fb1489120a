// Package catalog holds the product models shared by the live facades and
// the isolated mock runtime.
package catalog

// PriceTier is one rung of a B2B quantity ladder. Prices are integer fen.
type PriceTier struct {
	MinQty       int   `json:"minQty"`
	UnitPriceFen int64 `json:"unitPriceFen"`
}

// SKU is a sellable variant of a product.
type SKU struct {
	ID           string      `json:"id"`
	SPUID        string      `json:"spuId"`
	Name         string      `json:"name"`
	Spec         string      `json:"spec,omitempty"`
	UnitPriceFen int64       `json:"unitPriceFen"`
	PriceTiers   []PriceTier `json:"priceTiers,omitempty"`
	Stock        int         `json:"stock"`
	ImageURL     string      `json:"imageUrl,omitempty"`
}

// TierPriceFor returns the unit price for a quantity, walking the ladder.
// Falls back to the base price when no tier applies.
func (s SKU) TierPriceFor(qty int) int64 {
	price := s.UnitPriceFen
	for _, tier := range s.PriceTiers {
		if qty >= tier.MinQty {
			price = tier.UnitPriceFen
		}
	}
	return price
}

// Product is the SPU-level summary shown in listings.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CategoryID  string `json:"categoryId,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	MinPriceFen int64  `json:"minPriceFen"`
}

// ProductDetail is the full product page payload.
type ProductDetail struct {
	Product
	Description string `json:"description,omitempty"`
	SKUs        []SKU  `json:"skus"`
}

// Query filters a product listing.
type Query struct {
	Keyword    string `json:"keyword,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Page       int    `json:"page,omitempty"`
	PageSize   int    `json:"pageSize,omitempty"`
}

// ProductPage is one page of listing results.
type ProductPage struct {
	Items    []Product `json:"items"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}
