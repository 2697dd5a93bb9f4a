package user

import "golang.org/x/crypto/bcrypt"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// Register hashes the password and creates a regular account. The role is
// always "user"; admins are promoted out of band.
func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)
	u.Role = "user"
	return s.repo.Create(u)
}

// Authenticate returns the account when the credentials match. An unknown
// email and a wrong password yield the same error so the response does not
// reveal which accounts exist.
func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile changes name and/or email; empty fields keep their value.
func (s *Service) UpdateProfile(id int, name, email string) (User, error) {
	return s.repo.Update(id, User{Name: name, Email: email})
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(id int, current, next string) (User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)) != nil {
		return User{}, ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return s.repo.Update(id, User{Password: string(hashed)})
}
