package models

// Product is a sellable laundry service entry.
type Product struct {
	ID          int64   `json:"id"`
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	Pinned      bool    `json:"pinned"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}
