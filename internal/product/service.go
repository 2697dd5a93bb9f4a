package product

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(f ListFilter) ([]Product, int, error) {
	return s.repo.List(f)
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) ListAll() ([]Product, error) {
	return s.repo.ListAll()
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

// UpdateInput carries the fields an admin may change; nil means keep the
// stored value, so stock can be set to zero without ambiguity.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Stock       *int
	ImageURL    *string
	IsActive    *bool
}

// Update merges the partial payload over the stored row and persists it.
func (s *Service) Update(id int, in UpdateInput) (Product, error) {
	p, err := s.repo.GetAnyByID(id)
	if err != nil {
		return Product{}, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return s.repo.Update(id, p)
}

func (s *Service) SoftDelete(id int) error {
	return s.repo.SoftDelete(id)
}
