// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vidly/model"
)

var (
	// ErrNoStock is returned when the guarded stock decrement matches no
	// row: the movie had no copies left at commit time.
	ErrNoStock = errors.New("no stock available")

	// ErrAlreadyClosed is returned when the conditional close matches no
	// row: the rental was returned before this transaction committed.
	ErrAlreadyClosed = errors.New("rental already closed")
)

// HistoryRow is a rental joined with its customer and movie for listing.
type HistoryRow struct {
	RentalID     int64      `json:"rental_id"`
	CustomerID   int64      `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	MovieID      int64      `json:"movie_id"`
	MovieTitle   string     `json:"movie_title"`
	DateOut      time.Time  `json:"date_out"`
	DateReturned *time.Time `json:"date_returned,omitempty"`
	RentalFee    *float64   `json:"rental_fee,omitempty"`
}

type Repo interface {
	// FindLatest returns the most recent rental for the pair regardless
	// of state; callers inspect DateReturned themselves.
	FindLatest(ctx context.Context, customerID, movieID int64) (*model.Rental, error)

	HasOpen(ctx context.Context, customerID, movieID int64) (bool, error)

	// CreateWithStockDecrement inserts an OPEN rental and decrements the
	// movie's stock in one transaction. Fails with ErrNoStock when the
	// stock guard matches no row; nothing is persisted in that case.
	CreateWithStockDecrement(ctx context.Context, customerID, movieID int64, dateOut time.Time) (*model.Rental, error)

	// CloseWithRestock sets date_returned and rental_fee together and
	// increments the movie's stock in one transaction. The close is
	// conditional on the rental still being open; a concurrent return
	// loses the race and gets ErrAlreadyClosed with no restock.
	CloseWithRestock(ctx context.Context, rentalID, movieID int64, returnedAt time.Time, fee float64) error

	List(ctx context.Context) ([]HistoryRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) FindLatest(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
	const q = `
SELECT id, customer_id, movie_id, date_out, date_returned, rental_fee
FROM rentals
WHERE customer_id = $1 AND movie_id = $2
ORDER BY date_out DESC, id DESC
LIMIT 1`
	var rt model.Rental
	err := r.db.QueryRowContext(ctx, q, customerID, movieID).Scan(
		&rt.ID, &rt.CustomerID, &rt.MovieID, &rt.DateOut, &rt.DateReturned, &rt.RentalFee,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *repo) HasOpen(ctx context.Context, customerID, movieID int64) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1
	FROM rentals
	WHERE customer_id = $1 AND movie_id = $2 AND date_returned IS NULL
)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, customerID, movieID).Scan(&exists)
	return exists, err
}

func (r *repo) CreateWithStockDecrement(ctx context.Context, customerID, movieID int64, dateOut time.Time) (rental *model.Rental, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Guard: only decrement while a copy remains, checked at commit time
	// rather than at read time.
	const dec = `
UPDATE movies
SET number_in_stock = number_in_stock - 1
WHERE id = $1
AND number_in_stock > 0`
	res, err := tx.ExecContext(ctx, dec, movieID)
	if err != nil {
		return nil, err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		err = ErrNoStock
		return nil, err
	}

	const ins = `
INSERT INTO rentals (customer_id, movie_id, date_out)
VALUES ($1, $2, $3)
RETURNING id`
	rt := &model.Rental{CustomerID: customerID, MovieID: movieID, DateOut: dateOut}
	if err = tx.QueryRowContext(ctx, ins, customerID, movieID, dateOut).Scan(&rt.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *repo) CloseWithRestock(ctx context.Context, rentalID, movieID int64, returnedAt time.Time, fee float64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const markClosed = `
UPDATE rentals
SET date_returned = $2,
	rental_fee = $3
WHERE id = $1
AND date_returned IS NULL`
	res, err := tx.ExecContext(ctx, markClosed, rentalID, returnedAt, fee)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		err = ErrAlreadyClosed
		return err
	}

	const restock = `
UPDATE movies
SET number_in_stock = number_in_stock + 1
WHERE id = $1`
	if _, err = tx.ExecContext(ctx, restock, movieID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repo) List(ctx context.Context) ([]HistoryRow, error) {
	const q = `
SELECT
	r.id            AS rental_id,
	r.customer_id   AS customer_id,
	c.name          AS customer_name,
	r.movie_id      AS movie_id,
	m.title         AS movie_title,
	r.date_out      AS date_out,
	r.date_returned AS date_returned,
	r.rental_fee    AS rental_fee
FROM rentals r
JOIN customers c ON c.id = r.customer_id
JOIN movies m ON m.id = r.movie_id
ORDER BY r.date_out DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.RentalID, &h.CustomerID, &h.CustomerName, &h.MovieID,
			&h.MovieTitle, &h.DateOut, &h.DateReturned, &h.RentalFee,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
