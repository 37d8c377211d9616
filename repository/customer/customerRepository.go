package customerrepo

import (
	"context"
	"database/sql"

	"vidly/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.Customer, error)
	Detail(ctx context.Context, id int64) (*model.Customer, error)
	Create(ctx context.Context, c *model.Customer) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) List(ctx context.Context) ([]model.Customer, error) {
	const q = `
SELECT id, name, is_gold, phone
FROM customers
ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.IsGold, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Customer, error) {
	const q = `
SELECT id, name, is_gold, phone
FROM customers
WHERE id = $1`
	var c model.Customer
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.IsGold, &c.Phone); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, c *model.Customer) error {
	const q = `
INSERT INTO customers (name, is_gold, phone)
VALUES ($1, $2, $3)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, c.Name, c.IsGold, c.Phone).Scan(&c.ID)
}
