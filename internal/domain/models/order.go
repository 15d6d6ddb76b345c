package models

// OrderItem is one product line inside an order.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
}

// Order is a persisted laundry order.
type Order struct {
	ID            int64       `json:"id"`
	OrderID       string      `json:"orderId"`
	CustomerName  string      `json:"customerName"`
	Phone         string      `json:"phone"`
	Note          string      `json:"note,omitempty"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"orderItems"`
	CompletedDate string      `json:"completedDate,omitempty"`
	CancelledDate string      `json:"cancelledDate,omitempty"`
	CreatedAt     string      `json:"createdAt"`
	UpdatedAt     string      `json:"updatedAt"`
}
