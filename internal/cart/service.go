package cart

// Service orchestrates cart operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(userID int) ([]Item, error) {
	return s.repo.Get(userID)
}

func (s *Service) Add(userID, productID, qty int) ([]Item, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	return s.repo.Add(userID, productID, qty)
}

// SetQuantity replaces a line's quantity. Zero or negative is rejected; the
// explicit remove endpoint is the way to drop a line.
func (s *Service) SetQuantity(userID, productID, qty int) ([]Item, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	return s.repo.SetQuantity(userID, productID, qty)
}

func (s *Service) Remove(userID, productID int) error {
	return s.repo.Remove(userID, productID)
}

func (s *Service) Clear(userID int) error {
	return s.repo.Clear(userID)
}
