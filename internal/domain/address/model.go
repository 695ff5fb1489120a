// Package address holds delivery address models.
package address

// Address is a delivery destination for orders.
type Address struct {
	ID       string `json:"id,omitempty"`
	Contact  string `json:"contact"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district,omitempty"`
	Detail   string `json:"detail"`
	Default  bool   `json:"default,omitempty"`
}
