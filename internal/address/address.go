package address

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("address not found")

// Address is one entry in a user's address book. At most one row per user
// carries is_default; the repository clears the others whenever a default is
// written.
type Address struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	Country   string    `json:"country"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
