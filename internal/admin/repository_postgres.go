package admin

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const dashboardStatsQuery = `
    SELECT
        (SELECT COUNT(*) FROM users),
        (SELECT COUNT(*) FROM products WHERE is_active = TRUE),
        (SELECT COUNT(*) FROM orders),
        (SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled'),
        (SELECT COUNT(*) FROM orders WHERE status = 'pending')`

func (r *PostgresRepository) DashboardStats() (DashboardStats, error) {
	var s DashboardStats
	err := r.db.QueryRow(dashboardStatsQuery).Scan(
		&s.TotalUsers, &s.TotalProducts, &s.TotalOrders, &s.TotalRevenue, &s.PendingOrders)
	if err != nil {
		return DashboardStats{}, err
	}
	return s, nil
}

const topProductsQuery = `
    SELECT oi.product_id, oi.product_name,
           SUM(oi.quantity) AS units_sold,
           COALESCE(SUM(oi.total_price), 0) AS revenue
    FROM order_items oi
    JOIN orders o ON o.order_id = oi.order_id
    WHERE o.status <> 'cancelled'
    GROUP BY oi.product_id, oi.product_name
    ORDER BY units_sold DESC, revenue DESC
    LIMIT $1`

func (r *PostgresRepository) TopProducts(limit int) ([]TopProduct, error) {
	if limit < 1 {
		limit = 5
	}
	rows, err := r.db.Query(topProductsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TopProduct, 0, limit)
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.UnitsSold, &p.Revenue); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const monthlyRevenueQuery = `
    SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
           COUNT(*) AS orders,
           COALESCE(SUM(total_amount), 0) AS revenue
    FROM orders
    WHERE status <> 'cancelled'
      AND created_at >= date_trunc('month', now()) - ($1 - 1) * INTERVAL '1 month'
    GROUP BY 1
    ORDER BY 1`

func (r *PostgresRepository) MonthlyRevenue(months int) ([]MonthlyRevenue, error) {
	if months < 1 {
		months = 12
	}
	rows, err := r.db.Query(monthlyRevenueQuery, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MonthlyRevenue, 0, months)
	for rows.Next() {
		var m MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Orders, &m.Revenue); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
