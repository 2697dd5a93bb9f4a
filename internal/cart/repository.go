package cart

import (
	"sort"
	"sync"

	"github.com/DrawDrewpf/FullMart-sub000/internal/product"
)

type Repository interface {
	Get(userID int) ([]Item, error)
	// Add increments the (user, product) line, creating it when absent.
	Add(userID, productID, qty int) ([]Item, error)
	// SetQuantity replaces the line's quantity; the line must exist.
	SetQuantity(userID, productID, qty int) ([]Item, error)
	Remove(userID, productID int) error
	Clear(userID int) error
}

// InMemoryRepository is used for tests and local scenarios. It carries its
// own product seed so stock checks behave like the joined queries do.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products map[int]product.Product
	items    map[int]map[int]int // userID -> productID -> quantity
}

func NewInMemoryRepository(seed []product.Product) *InMemoryRepository {
	products := make(map[int]product.Product, len(seed))
	for _, p := range seed {
		products[p.ID] = p
	}
	return &InMemoryRepository{products: products, items: make(map[int]map[int]int)}
}

func (r *InMemoryRepository) Get(userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view(userID), nil
}

func (r *InMemoryRepository) Add(userID, productID, qty int) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok || !p.IsActive {
		return nil, ErrProductNotFound
	}
	current := r.items[userID][productID]
	if current+qty > p.Stock {
		return nil, ErrInsufficientStock
	}
	if r.items[userID] == nil {
		r.items[userID] = make(map[int]int)
	}
	r.items[userID][productID] = current + qty
	return r.view(userID), nil
}

func (r *InMemoryRepository) SetQuantity(userID, productID, qty int) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[userID][productID]; !ok {
		return nil, ErrItemNotFound
	}
	p, ok := r.products[productID]
	if !ok || !p.IsActive {
		return nil, ErrProductNotFound
	}
	if qty > p.Stock {
		return nil, ErrInsufficientStock
	}
	r.items[userID][productID] = qty
	return r.view(userID), nil
}

func (r *InMemoryRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[userID][productID]; !ok {
		return ErrItemNotFound
	}
	delete(r.items[userID], productID)
	return nil
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, userID)
	return nil
}

func (r *InMemoryRepository) view(userID int) []Item {
	out := make([]Item, 0, len(r.items[userID]))
	for pid, qty := range r.items[userID] {
		p := r.products[pid]
		out = append(out, Item{
			ProductID: pid,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			Stock:     p.Stock,
			Quantity:  qty,
			LineTotal: round2(p.Price * float64(qty)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
