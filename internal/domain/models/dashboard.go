package models

// OrderStats counts orders per status inside the selected range.
type OrderStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// RevenuePoint is one bucket of the revenue chart.
type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// Dashboard is the aggregate payload for the home view.
type Dashboard struct {
	OrderStats OrderStats `json:"orderStats"`
	Revenue    struct {
		Total     float64 `json:"total"`
		TimeRange string  `json:"timeRange"`
	} `json:"revenue"`
	TimeRangeRevenue []RevenuePoint `json:"timeRangeRevenue"`
	RecentOrders     []Order        `json:"recentOrders"`
	PendingOrders    []Order        `json:"pendingOrders"`
	CancelledOrders  []Order        `json:"cancelledOrders"`
}
