package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const getCartQuery = `
        SELECT ci.product_id, p.name, p.price, p.image_url, p.stock, ci.quantity
        FROM cart_items ci
        JOIN products p ON p.product_id = ci.product_id
        WHERE ci.user_id = $1
        ORDER BY ci.cart_item_id
    `

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) ([]Item, error) {
	rows, err := r.db.Query(getCartQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Price, &it.ImageURL, &it.Stock, &it.Quantity); err != nil {
			return nil, err
		}
		it.LineTotal = round2(it.Price * float64(it.Quantity))
		out = append(out, it)
	}
	return out, rows.Err()
}

// Add checks stock, then upserts the line. The stock check is read-then-write
// without a serializable isolation level; concurrent adds can both pass a
// check that combined exceeds inventory.
func (r *PostgresRepository) Add(userID, productID, qty int) ([]Item, error) {
	var stock int
	var active bool
	err := r.db.QueryRow(`SELECT stock, is_active FROM products WHERE product_id = $1`, productID).
		Scan(&stock, &active)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrProductNotFound
	}

	var current int
	err = r.db.QueryRow(`SELECT quantity FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID).Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	hasRow := err == nil

	if current+qty > stock {
		return nil, ErrInsufficientStock
	}

	if hasRow {
		_, err = r.db.Exec(`UPDATE cart_items SET quantity = $3, updated_at = now() WHERE user_id = $1 AND product_id = $2`,
			userID, productID, current+qty)
	} else {
		_, err = r.db.Exec(`INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1, $2, $3)`,
			userID, productID, qty)
	}
	if err != nil {
		return nil, err
	}
	return r.Get(userID)
}

func (r *PostgresRepository) SetQuantity(userID, productID, qty int) ([]Item, error) {
	var stock int
	var active bool
	err := r.db.QueryRow(`SELECT stock, is_active FROM products WHERE product_id = $1`, productID).
		Scan(&stock, &active)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrProductNotFound
	}
	if qty > stock {
		return nil, ErrInsufficientStock
	}

	res, err := r.db.Exec(`UPDATE cart_items SET quantity = $3, updated_at = now() WHERE user_id = $1 AND product_id = $2`,
		userID, productID, qty)
	if err != nil {
		return nil, err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return nil, ErrItemNotFound
	}
	return r.Get(userID)
}

func (r *PostgresRepository) Remove(userID, productID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
