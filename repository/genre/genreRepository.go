package genrerepo

import (
	"context"
	"database/sql"

	"vidly/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.Genre, error)
	Detail(ctx context.Context, id int64) (*model.Genre, error)
	Create(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, id int64, name string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) List(ctx context.Context) ([]model.Genre, error) {
	const q = `
SELECT id, name
FROM genres
ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Genre, error) {
	const q = `
SELECT id, name
FROM genres
WHERE id = $1`
	var g model.Genre
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repo) Create(ctx context.Context, name string) (int64, error) {
	const q = `
INSERT INTO genres (name)
VALUES ($1)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Update(ctx context.Context, id int64, name string) (int64, error) {
	const q = `
UPDATE genres
SET name = $2
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `
DELETE FROM genres
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
