package user

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectUserColumns = `user_id, email, password, name, role, created_at, updated_at`

	insertUserQuery = `
        INSERT INTO users (email, password, name, role)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + selectUserColumns

	updateUserQuery = `
        UPDATE users
        SET email = $2, name = $3, password = $4, updated_at = now()
        WHERE user_id = $1
        RETURNING ` + selectUserColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(`SELECT `+selectUserColumns+` FROM users WHERE user_id = $1`, id)
	return scanUser(row)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(`SELECT `+selectUserColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresRepository) Create(u User) (User, error) {
	row := r.db.QueryRow(insertUserQuery, u.Email, u.Password, u.Name, u.Role)
	created, err := scanUser(row)
	if err != nil {
		// the unique index on email surfaces as a driver error string
		if strings.Contains(err.Error(), "duplicate key") {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return created, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if u.Email == "" {
		u.Email = existing.Email
	}
	if u.Name == "" {
		u.Name = existing.Name
	}
	if u.Password == "" {
		u.Password = existing.Password
	}

	row := r.db.QueryRow(updateUserQuery, id, u.Email, u.Name, u.Password)
	updated, err := scanUser(row)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return updated, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
