package cart

import (
	"errors"
	"math"
)

// Item is one cart line joined with live product state. Price and stock come
// from the products table on every read, so the view always reflects the
// current catalog; nothing is cached on the cart row itself.
type Item struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

var (
	ErrItemNotFound      = errors.New("cart item not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
