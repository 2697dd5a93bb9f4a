package admin

// DashboardStats is the headline block on the admin dashboard. Revenue sums
// every order that was not cancelled.
type DashboardStats struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalProducts int     `json:"totalProducts"`
	TotalOrders   int     `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	PendingOrders int     `json:"pendingOrders"`
}

// TopProduct ranks a product by units sold across order_items.
type TopProduct struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}

// MonthlyRevenue is one bucket of the trailing revenue series.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}
