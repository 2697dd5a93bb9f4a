package order

// Repository defines persistence operations for orders.
type Repository interface {
	// CreateFromCart runs the checkout transaction: snapshot the caller's
	// cart at current prices, write the order and its items, clear the
	// cart. All of it commits or none of it does.
	CreateFromCart(userID int, ship ShippingInfo, paymentMethod string) (Order, error)
	ListByUser(userID int) ([]Order, error)
	// GetForUser scopes the lookup to the owner; other users' orders are
	// indistinguishable from missing ones.
	GetForUser(userID, orderID int) (Order, error)
	// List is the back-office view across all users, optionally filtered
	// by status.
	List(status string, page, pageSize int) ([]Order, int, error)
	UpdateStatus(orderID int, status string) (Order, error)
}
