package order

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectOrderColumns = `order_id, user_id, order_number, status, subtotal, tax_amount,
        shipping_amount, total_amount, shipping_name, shipping_email, shipping_phone,
        shipping_address, shipping_city, shipping_state, shipping_postal_code,
        shipping_country, payment_method, payment_status, created_at, updated_at`

	checkoutCartQuery = `
        SELECT ci.product_id, p.name, p.image_url, p.price, ci.quantity
        FROM cart_items ci
        JOIN products p ON p.product_id = ci.product_id
        WHERE ci.user_id = $1
        ORDER BY ci.cart_item_id
    `

	insertOrderQuery = `
        INSERT INTO orders (user_id, order_number, status, subtotal, tax_amount,
            shipping_amount, total_amount, shipping_name, shipping_email, shipping_phone,
            shipping_address, shipping_city, shipping_state, shipping_postal_code,
            shipping_country, payment_method, payment_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING order_id, created_at, updated_at
    `

	insertOrderItemQuery = `
        INSERT INTO order_items (order_id, product_id, product_name, product_image,
            quantity, unit_price, total_price)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING order_item_id
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateFromCart is the checkout transaction. The cart is read joined with
// current product state, so the price charged is the price at this instant,
// not the price when the item was added. No row locks are taken; a
// double-submitted checkout can race (both reads seeing the same cart before
// either delete commits).
func (r *PostgresRepository) CreateFromCart(userID int, ship ShippingInfo, paymentMethod string) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	rows, err := tx.Query(checkoutCartQuery, userID)
	if err != nil {
		return Order{}, err
	}
	lines := make([]CheckoutLine, 0)
	for rows.Next() {
		var l CheckoutLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Image, &l.UnitPrice, &l.Quantity); err != nil {
			rows.Close()
			return Order{}, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return Order{}, err
	}
	rows.Close()

	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	totals := ComputeTotals(lines)
	if ship.Country == "" {
		ship.Country = DefaultCountry
	}

	ord := Order{
		UserID:             userID,
		OrderNumber:        GenerateOrderNumber(time.Now()),
		Status:             StatusPending,
		Subtotal:           totals.Subtotal,
		TaxAmount:          totals.Tax,
		ShippingAmount:     totals.Shipping,
		TotalAmount:        totals.Total,
		ShippingName:       ship.Name,
		ShippingEmail:      ship.Email,
		ShippingPhone:      ship.Phone,
		ShippingAddress:    ship.Address,
		ShippingCity:       ship.City,
		ShippingState:      ship.State,
		ShippingPostalCode: ship.PostalCode,
		ShippingCountry:    ship.Country,
		PaymentMethod:      paymentMethod,
		PaymentStatus:      PaymentStatusCompleted,
	}

	err = tx.QueryRow(insertOrderQuery,
		ord.UserID, ord.OrderNumber, ord.Status, ord.Subtotal, ord.TaxAmount,
		ord.ShippingAmount, ord.TotalAmount, ord.ShippingName, ord.ShippingEmail,
		ord.ShippingPhone, ord.ShippingAddress, ord.ShippingCity, ord.ShippingState,
		ord.ShippingPostalCode, ord.ShippingCountry, ord.PaymentMethod, ord.PaymentStatus,
	).Scan(&ord.ID, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}

	ord.Items = make([]Item, 0, len(lines))
	for _, l := range lines {
		item := Item{
			OrderID:      ord.ID,
			ProductID:    l.ProductID,
			ProductName:  l.Name,
			ProductImage: l.Image,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			TotalPrice:   l.LineTotal(),
		}
		if err := tx.QueryRow(insertOrderItemQuery,
			item.OrderID, item.ProductID, item.ProductName, item.ProductImage,
			item.Quantity, item.UnitPrice, item.TotalPrice,
		).Scan(&item.ID); err != nil {
			return Order{}, err
		}
		ord.Items = append(ord.Items, item)
	}

	// the cart rows this order was built from go away in the same commit
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+selectOrderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) GetForUser(userID, orderID int) (Order, error) {
	row := r.db.QueryRow(`SELECT `+selectOrderColumns+` FROM orders WHERE order_id = $1 AND user_id = $2`, orderID, userID)
	ord, err := scanOrder(row)
	if err != nil {
		return Order{}, err
	}
	orders := []Order{ord}
	if err := r.attachItems(orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *PostgresRepository) List(status string, page, pageSize int) ([]Order, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	where := "TRUE"
	args := make([]interface{}, 0, 3)
	if status != "" {
		args = append(args, status)
		where = fmt.Sprintf("status = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY order_id DESC LIMIT $%d OFFSET $%d`,
		selectOrderColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *PostgresRepository) UpdateStatus(orderID int, status string) (Order, error) {
	row := r.db.QueryRow(`UPDATE orders SET status = $2, updated_at = now() WHERE order_id = $1 RETURNING `+selectOrderColumns,
		orderID, status)
	ord, err := scanOrder(row)
	if err != nil {
		return Order{}, err
	}
	orders := []Order{ord}
	if err := r.attachItems(orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

// attachItems batch-loads the items of the given orders with one query.
func (r *PostgresRepository) attachItems(orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int, 0, len(orders))
	index := make(map[int]int, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = i
		orders[i].Items = make([]Item, 0)
	}

	rows, err := r.db.Query(`
        SELECT order_item_id, order_id, product_id, product_name, product_image,
               quantity, unit_price, total_price
        FROM order_items
        WHERE order_id = ANY($1::int[])
        ORDER BY order_item_id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.ProductImage, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return err
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.Status, &o.Subtotal, &o.TaxAmount,
		&o.ShippingAmount, &o.TotalAmount, &o.ShippingName, &o.ShippingEmail, &o.ShippingPhone,
		&o.ShippingAddress, &o.ShippingCity, &o.ShippingState, &o.ShippingPostalCode,
		&o.ShippingCountry, &o.PaymentMethod, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func scanOrders(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}
