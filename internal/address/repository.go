package address

import (
	"sync"
	"time"
)

type Repository interface {
	ListByUser(userID int) ([]Address, error)
	Create(a Address) (Address, error)
	Update(userID, addressID int, a Address) (Address, error)
	Delete(userID, addressID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu        sync.RWMutex
	addresses []Address
	nextID    int
}

func NewInMemoryRepository(seed []Address) *InMemoryRepository {
	repo := &InMemoryRepository{addresses: make([]Address, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, a := range seed {
		repo.addresses = append(repo.addresses, a)
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Address, 0)
	for _, a := range r.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.IsDefault {
		r.clearDefaultLocked(a.UserID)
	}
	a.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.addresses = append(r.addresses, a)
	return a, nil
}

func (r *InMemoryRepository) Update(userID, addressID int, update Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.addresses {
		if a.ID == addressID && a.UserID == userID {
			if update.IsDefault {
				r.clearDefaultLocked(userID)
			}
			update.ID = a.ID
			update.UserID = a.UserID
			update.CreatedAt = a.CreatedAt
			update.UpdatedAt = time.Now().UTC()
			r.addresses[i] = update
			return update, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(userID, addressID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.addresses {
		if a.ID == addressID && a.UserID == userID {
			r.addresses = append(r.addresses[:i], r.addresses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) clearDefaultLocked(userID int) {
	for i := range r.addresses {
		if r.addresses[i].UserID == userID {
			r.addresses[i].IsDefault = false
		}
	}
}
