package admin

type Repository interface {
	DashboardStats() (DashboardStats, error)
	TopProducts(limit int) ([]TopProduct, error)
	MonthlyRevenue(months int) ([]MonthlyRevenue, error)
}
