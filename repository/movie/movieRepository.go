package movierepo

import (
	"context"
	"database/sql"

	"vidly/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.Movie, error)
	Detail(ctx context.Context, id int64) (*model.Movie, error)
	Create(ctx context.Context, m *model.Movie) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) List(ctx context.Context) ([]model.Movie, error) {
	const q = `
SELECT m.id, m.title, m.genre_id, g.name, m.number_in_stock, m.daily_rental_rate
FROM movies m
JOIN genres g ON g.id = m.genre_id
ORDER BY m.title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.GenreID, &m.GenreName, &m.NumberInStock, &m.DailyRentalRate); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Movie, error) {
	const q = `
SELECT id, title, genre_id, number_in_stock, daily_rental_rate
FROM movies
WHERE id = $1`
	var m model.Movie
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.GenreID, &m.NumberInStock, &m.DailyRentalRate); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) Create(ctx context.Context, m *model.Movie) error {
	const q = `
INSERT INTO movies (title, genre_id, number_in_stock, daily_rental_rate)
VALUES ($1, $2, $3, $4)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, m.Title, m.GenreID, m.NumberInStock, m.DailyRentalRate).Scan(&m.ID)
}
