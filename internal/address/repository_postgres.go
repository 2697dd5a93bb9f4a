package address

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectAddressColumns = `address_id, user_id, street, city, state, zip, country, is_default, created_at, updated_at`

	insertAddressQuery = `
        INSERT INTO addresses (user_id, street, city, state, zip, country, is_default)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING ` + selectAddressColumns

	updateAddressQuery = `
        UPDATE addresses
        SET street=$3, city=$4, state=$5, zip=$6, country=$7, is_default=$8, updated_at=now()
        WHERE user_id=$1 AND address_id=$2
        RETURNING ` + selectAddressColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT `+selectAddressColumns+` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, address_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create inserts a new address. When it is flagged as default, the user's
// other defaults are cleared inside the same transaction so the invariant
// never escapes.
func (r *PostgresRepository) Create(a Address) (Address, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Address{}, err
	}
	defer tx.Rollback()

	if a.IsDefault {
		if _, err := tx.Exec(`UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, a.UserID); err != nil {
			return Address{}, err
		}
	}

	row := tx.QueryRow(insertAddressQuery, a.UserID, a.Street, a.City, a.State, a.Zip, a.Country, a.IsDefault)
	created, err := scanAddress(row)
	if err != nil {
		return Address{}, err
	}
	if err := tx.Commit(); err != nil {
		return Address{}, err
	}
	return created, nil
}

func (r *PostgresRepository) Update(userID, addressID int, a Address) (Address, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Address{}, err
	}
	defer tx.Rollback()

	if a.IsDefault {
		if _, err := tx.Exec(`UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, userID); err != nil {
			return Address{}, err
		}
	}

	row := tx.QueryRow(updateAddressQuery, userID, addressID, a.Street, a.City, a.State, a.Zip, a.Country, a.IsDefault)
	updated, err := scanAddress(row)
	if err != nil {
		return Address{}, err
	}
	if err := tx.Commit(); err != nil {
		return Address{}, err
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(userID, addressID int) error {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE user_id = $1 AND address_id = $2`, userID, addressID)
	if err != nil {
		return err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAddress(row rowScanner) (Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.State, &a.Zip, &a.Country,
		&a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, err
	}
	return a, nil
}
