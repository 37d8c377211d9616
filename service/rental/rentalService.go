package rental

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vidly/model"
	rentalrepo "vidly/repository/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrInvalidInput     ErrCode = "INVALID_INPUT"
	ErrCustomerNotFound ErrCode = "CUSTOMER_NOT_FOUND"
	ErrMovieNotFound    ErrCode = "MOVIE_NOT_FOUND"
	ErrRentalNotFound   ErrCode = "RENTAL_NOT_FOUND"
	ErrOutOfStock       ErrCode = "OUT_OF_STOCK"
	ErrAlreadyReturned  ErrCode = "ALREADY_RETURNED"
	ErrOpenExists       ErrCode = "OPEN_RENTAL_EXISTS"
	ErrDataIntegrity    ErrCode = "DATA_INTEGRITY"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// HistoryRow = repository shape
type HistoryRow = rentalrepo.HistoryRow

type Repo interface {
	FindLatest(ctx context.Context, customerID, movieID int64) (*model.Rental, error)
	HasOpen(ctx context.Context, customerID, movieID int64) (bool, error)
	CreateWithStockDecrement(ctx context.Context, customerID, movieID int64, dateOut time.Time) (*model.Rental, error)
	CloseWithRestock(ctx context.Context, rentalID, movieID int64, returnedAt time.Time, fee float64) error
	List(ctx context.Context) ([]HistoryRow, error)
}

type Customers interface {
	Detail(ctx context.Context, id int64) (*model.Customer, error)
}

type Movies interface {
	Detail(ctx context.Context, id int64) (*model.Movie, error)
}

type Service interface {
	// Checkout: create an OPEN rental for the pair and take one copy off
	// the shelf, both-or-neither.
	Checkout(ctx context.Context, customerID, movieID int64) (*model.Rental, error)

	// Return: close the open rental for the pair, charge the fee and put
	// the copy back, both-or-neither.
	Return(ctx context.Context, customerID, movieID int64) (*model.Rental, error)

	// List: all rentals joined with customer and movie.
	List(ctx context.Context) ([]HistoryRow, error)
}

// ----- Service implementation -----

type service struct {
	r Repo
	c Customers
	m Movies
}

func New(r Repo, c Customers, m Movies) Service {
	return &service{r: r, c: c, m: m}
}

func (s *service) Checkout(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
	if customerID <= 0 || movieID <= 0 {
		return nil, makeErr(ErrInvalidInput)
	}

	if _, err := s.c.Detail(ctx, customerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrCustomerNotFound)
		}
		return nil, err
	}

	movie, err := s.m.Detail(ctx, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrMovieNotFound)
		}
		return nil, err
	}
	if movie.NumberInStock == 0 {
		return nil, makeErr(ErrOutOfStock)
	}

	// One open rental per (customer, movie) pair.
	open, err := s.r.HasOpen(ctx, customerID, movieID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, makeErr(ErrOpenExists)
	}

	rt, err := s.r.CreateWithStockDecrement(ctx, customerID, movieID, time.Now().UTC())
	if err != nil {
		// The stock read above can go stale; the repository re-checks the
		// guard at commit time.
		if errors.Is(err, rentalrepo.ErrNoStock) {
			return nil, makeErr(ErrOutOfStock)
		}
		return nil, err
	}
	return rt, nil
}

func (s *service) Return(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
	if customerID <= 0 || movieID <= 0 {
		return nil, makeErr(ErrInvalidInput)
	}

	rt, err := s.r.FindLatest(ctx, customerID, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrRentalNotFound)
		}
		return nil, err
	}
	if rt.Closed() {
		return nil, makeErr(ErrAlreadyReturned)
	}

	// The movie was validated at checkout; it vanishing since is a data
	// problem, not a user-correctable one.
	movie, err := s.m.Detail(ctx, rt.MovieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrDataIntegrity)
		}
		return nil, err
	}

	returnedAt := time.Now().UTC()
	fee := feeFor(rt.DateOut, returnedAt, movie.DailyRentalRate)

	if err := s.r.CloseWithRestock(ctx, rt.ID, rt.MovieID, returnedAt, fee); err != nil {
		if errors.Is(err, rentalrepo.ErrAlreadyClosed) {
			return nil, makeErr(ErrAlreadyReturned)
		}
		return nil, err
	}

	rt.DateReturned = &returnedAt
	rt.RentalFee = &fee
	return rt, nil
}

func (s *service) List(ctx context.Context) ([]HistoryRow, error) {
	return s.r.List(ctx)
}

// feeFor charges the daily rate per whole day out. A same-day return is
// a zero-fee return, not an error.
func feeFor(dateOut, returnedAt time.Time, dailyRate float64) float64 {
	days := int64(returnedAt.Sub(dateOut) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return float64(days) * dailyRate
}
