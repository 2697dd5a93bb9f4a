package product

import "time"

// Product is a catalog row. Products are soft-deleted by flipping is_active
// so historical order items keep a valid reference.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListFilter narrows and pages the public catalog listing.
type ListFilter struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

func (f ListFilter) limitOffset() (int, int) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = 12
	}
	if size > 100 {
		size = 100
	}
	return size, (page - 1) * size
}
