package product

import (
	"database/sql"
	"fmt"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const selectProductColumns = `product_id, name, description, price, category, stock, image_url, is_active, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(f ListFilter) ([]Product, int, error) {
	where := []string{"is_active = TRUE"}
	args := make([]interface{}, 0, 4)

	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := f.limitOffset()
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY product_id DESC LIMIT $%d OFFSET $%d`,
		selectProductColumns, cond, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+selectProductColumns+` FROM products WHERE product_id = $1 AND is_active = TRUE`, id)
	return scanProduct(row)
}

func (r *PostgresRepository) GetAnyByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+selectProductColumns+` FROM products WHERE product_id = $1`, id)
	return scanProduct(row)
}

func (r *PostgresRepository) ListAll() ([]Product, error) {
	rows, err := r.db.Query(`SELECT ` + selectProductColumns + ` FROM products ORDER BY product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	row := r.db.QueryRow(`
        INSERT INTO products (name, description, price, category, stock, image_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING `+selectProductColumns,
		p.Name, p.Description, p.Price, p.Category, p.Stock, p.ImageURL)
	return scanProduct(row)
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	row := r.db.QueryRow(`
        UPDATE products
        SET name = $2, description = $3, price = $4, category = $5, stock = $6,
            image_url = $7, is_active = $8, updated_at = now()
        WHERE product_id = $1
        RETURNING `+selectProductColumns,
		id, p.Name, p.Description, p.Price, p.Category, p.Stock, p.ImageURL, p.IsActive)
	return scanProduct(row)
}

func (r *PostgresRepository) SoftDelete(id int) error {
	res, err := r.db.Exec(`UPDATE products SET is_active = FALSE, updated_at = now() WHERE product_id = $1`, id)
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

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock,
		&p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}
