// service/rental/rental_service_test.go
package rental

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"vidly/model"
	rentalrepo "vidly/repository/rental"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	findLatestFn func(ctx context.Context, customerID, movieID int64) (*model.Rental, error)
	hasOpenFn    func(ctx context.Context, customerID, movieID int64) (bool, error)
	createFn     func(ctx context.Context, customerID, movieID int64, dateOut time.Time) (*model.Rental, error)
	closeFn      func(ctx context.Context, rentalID, movieID int64, returnedAt time.Time, fee float64) error
	listFn       func(ctx context.Context) ([]HistoryRow, error)
}

var _ Repo = (*repoMock)(nil)

func (m *repoMock) FindLatest(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
	return m.findLatestFn(ctx, customerID, movieID)
}
func (m *repoMock) HasOpen(ctx context.Context, customerID, movieID int64) (bool, error) {
	if m.hasOpenFn == nil {
		return false, nil
	}
	return m.hasOpenFn(ctx, customerID, movieID)
}
func (m *repoMock) CreateWithStockDecrement(ctx context.Context, customerID, movieID int64, dateOut time.Time) (*model.Rental, error) {
	return m.createFn(ctx, customerID, movieID, dateOut)
}
func (m *repoMock) CloseWithRestock(ctx context.Context, rentalID, movieID int64, returnedAt time.Time, fee float64) error {
	return m.closeFn(ctx, rentalID, movieID, returnedAt, fee)
}
func (m *repoMock) List(ctx context.Context) ([]HistoryRow, error) { return m.listFn(ctx) }

type customersMock struct {
	detailFn func(ctx context.Context, id int64) (*model.Customer, error)
}

func (m *customersMock) Detail(ctx context.Context, id int64) (*model.Customer, error) {
	if m.detailFn == nil {
		return &model.Customer{ID: id, Name: "customer"}, nil
	}
	return m.detailFn(ctx, id)
}

type moviesMock struct {
	detailFn func(ctx context.Context, id int64) (*model.Movie, error)
}

func (m *moviesMock) Detail(ctx context.Context, id int64) (*model.Movie, error) {
	return m.detailFn(ctx, id)
}

func movieWith(stock int64, rate float64) *moviesMock {
	return &moviesMock{detailFn: func(ctx context.Context, id int64) (*model.Movie, error) {
		return &model.Movie{ID: id, Title: "movie", NumberInStock: stock, DailyRentalRate: rate}, nil
	}}
}

// --- checkout ---

func TestCheckout_Success(t *testing.T) {
	ctx := context.Background()
	var created bool
	r := &repoMock{
		createFn: func(ctx context.Context, customerID, movieID int64, dateOut time.Time) (*model.Rental, error) {
			created = true
			require.Equal(t, int64(1), customerID)
			require.Equal(t, int64(2), movieID)
			require.WithinDuration(t, time.Now().UTC(), dateOut, 10*time.Second)
			return &model.Rental{ID: 7, CustomerID: customerID, MovieID: movieID, DateOut: dateOut}, nil
		},
	}
	s := New(r, &customersMock{}, movieWith(10, 5))

	rt, err := s.Checkout(ctx, 1, 2)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, int64(7), rt.ID)
	require.False(t, rt.Closed())
	require.Nil(t, rt.DateReturned)
	require.Nil(t, rt.RentalFee)
}

func TestCheckout_InvalidInput(t *testing.T) {
	s := New(&repoMock{}, &customersMock{}, movieWith(10, 5))

	_, err := s.Checkout(context.Background(), 0, 2)
	require.Equal(t, ErrInvalidInput, Code(err))

	_, err = s.Checkout(context.Background(), 1, -3)
	require.Equal(t, ErrInvalidInput, Code(err))
}

func TestCheckout_CustomerNotFound(t *testing.T) {
	c := &customersMock{detailFn: func(ctx context.Context, id int64) (*model.Customer, error) {
		return nil, sql.ErrNoRows
	}}
	s := New(&repoMock{}, c, movieWith(10, 5))

	_, err := s.Checkout(context.Background(), 1, 2)
	require.Equal(t, ErrCustomerNotFound, Code(err))
}

func TestCheckout_MovieNotFound(t *testing.T) {
	m := &moviesMock{detailFn: func(ctx context.Context, id int64) (*model.Movie, error) {
		return nil, sql.ErrNoRows
	}}
	s := New(&repoMock{}, &customersMock{}, m)

	_, err := s.Checkout(context.Background(), 1, 2)
	require.Equal(t, ErrMovieNotFound, Code(err))
}

func TestCheckout_OutOfStock(t *testing.T) {
	r := &repoMock{
		createFn: func(ctx context.Context, customerID, movieID int64, dateOut time.Time) (*model.Rental, error) {
			t.Fatal("no rental should be created when stock is 0")
			return nil, nil
		},
	}
	s := New(r, &customersMock{}, movieWith(0, 5))

	_, err := s.Checkout(context.Background(), 1, 2)
	require.Equal(t, ErrOutOfStock, Code(err))
}

func TestCheckout_StockRaceLostAtCommit(t *testing.T) {
	// The read sees a copy left but another checkout wins the guarded
	// decrement first.
	r := &repoMock{
		createFn: func(ctx context.Context, customerID, movieID int64, dateOut time.Time) (*model.Rental, error) {
			return nil, rentalrepo.ErrNoStock
		},
	}
	s := New(r, &customersMock{}, movieWith(1, 5))

	_, err := s.Checkout(context.Background(), 1, 2)
	require.Equal(t, ErrOutOfStock, Code(err))
}

func TestCheckout_OpenRentalExists(t *testing.T) {
	r := &repoMock{
		hasOpenFn: func(ctx context.Context, customerID, movieID int64) (bool, error) {
			return true, nil
		},
		createFn: func(ctx context.Context, customerID, movieID int64, dateOut time.Time) (*model.Rental, error) {
			t.Fatal("no second open rental for the same pair")
			return nil, nil
		},
	}
	s := New(r, &customersMock{}, movieWith(10, 5))

	_, err := s.Checkout(context.Background(), 1, 2)
	require.Equal(t, ErrOpenExists, Code(err))
}

// --- return ---

func openRental(id int64, dateOut time.Time) *model.Rental {
	return &model.Rental{ID: id, CustomerID: 1, MovieID: 2, DateOut: dateOut}
}

func TestReturn_SameDayFeeIsZero(t *testing.T) {
	var gotFee float64
	var gotAt time.Time
	r := &repoMock{
		findLatestFn: func(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
			return openRental(7, time.Now().UTC()), nil
		},
		closeFn: func(ctx context.Context, rentalID, movieID int64, returnedAt time.Time, fee float64) error {
			gotFee, gotAt = fee, returnedAt
			return nil
		},
	}
	s := New(r, &customersMock{}, movieWith(9, 5))

	rt, err := s.Return(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, float64(0), gotFee)
	require.WithinDuration(t, time.Now().UTC(), gotAt, 10*time.Second)
	require.True(t, rt.Closed())
	require.Equal(t, float64(0), *rt.RentalFee)
}

func TestReturn_FeeAfterSevenDays(t *testing.T) {
	var gotFee float64
	r := &repoMock{
		findLatestFn: func(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
			return openRental(7, time.Now().UTC().Add(-7*24*time.Hour)), nil
		},
		closeFn: func(ctx context.Context, rentalID, movieID int64, returnedAt time.Time, fee float64) error {
			gotFee = fee
			return nil
		},
	}
	s := New(r, &customersMock{}, movieWith(9, 5))

	rt, err := s.Return(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, float64(35), gotFee)
	require.Equal(t, float64(35), *rt.RentalFee)
}

func TestReturn_InvalidInput(t *testing.T) {
	s := New(&repoMock{}, &customersMock{}, movieWith(9, 5))

	_, err := s.Return(context.Background(), -1, 2)
	require.Equal(t, ErrInvalidInput, Code(err))
}

func TestReturn_RentalNotFound(t *testing.T) {
	r := &repoMock{
		findLatestFn: func(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := New(r, &customersMock{}, movieWith(9, 5))

	_, err := s.Return(context.Background(), 1, 2)
	require.Equal(t, ErrRentalNotFound, Code(err))
}

func TestReturn_AlreadyReturned(t *testing.T) {
	at := time.Now().UTC().Add(-time.Hour)
	fee := 5.0
	r := &repoMock{
		findLatestFn: func(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
			rt := openRental(7, at.Add(-24*time.Hour))
			rt.DateReturned = &at
			rt.RentalFee = &fee
			return rt, nil
		},
		closeFn: func(ctx context.Context, rentalID, movieID int64, returnedAt time.Time, fee float64) error {
			t.Fatal("a closed rental must not be touched")
			return nil
		},
	}
	s := New(r, &customersMock{}, movieWith(9, 5))

	_, err := s.Return(context.Background(), 1, 2)
	require.Equal(t, ErrAlreadyReturned, Code(err))
}

func TestReturn_CloseRaceLostAtCommit(t *testing.T) {
	r := &repoMock{
		findLatestFn: func(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
			return openRental(7, time.Now().UTC()), nil
		},
		closeFn: func(ctx context.Context, rentalID, movieID int64, returnedAt time.Time, fee float64) error {
			return rentalrepo.ErrAlreadyClosed
		},
	}
	s := New(r, &customersMock{}, movieWith(9, 5))

	_, err := s.Return(context.Background(), 1, 2)
	require.Equal(t, ErrAlreadyReturned, Code(err))
}

func TestReturn_MovieGoneIsDataIntegrity(t *testing.T) {
	r := &repoMock{
		findLatestFn: func(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
			return openRental(7, time.Now().UTC()), nil
		},
	}
	m := &moviesMock{detailFn: func(ctx context.Context, id int64) (*model.Movie, error) {
		return nil, sql.ErrNoRows
	}}
	s := New(r, &customersMock{}, m)

	_, err := s.Return(context.Background(), 1, 2)
	require.Equal(t, ErrDataIntegrity, Code(err))
}

// --- fee ---

func TestFeeFor(t *testing.T) {
	out := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		at   time.Time
		rate float64
		want float64
	}{
		{"same day", out.Add(2 * time.Hour), 5, 0},
		{"seven days", out.Add(7 * 24 * time.Hour), 5, 35},
		{"partial day rounds down", out.Add(36 * time.Hour), 5, 5},
		{"clock skew clamps to zero", out.Add(-time.Hour), 5, 0},
		{"free rate", out.Add(3 * 24 * time.Hour), 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, feeFor(out, tc.at, tc.rate))
		})
	}
}

// --- end to end against an in-memory store ---

// fakeStore keeps one movie and its rentals with the same guard
// semantics the SQL repository has, so the full lifecycle can be
// exercised without a database.
type fakeStore struct {
	mu      sync.Mutex
	movieID int64
	stock   int64
	rate    float64
	nextID  int64
	rentals []*model.Rental
}

func newFakeStore(movieID, stock int64, rate float64) *fakeStore {
	return &fakeStore{movieID: movieID, stock: stock, rate: rate, nextID: 1}
}

func (f *fakeStore) FindLatest(ctx context.Context, customerID, movieID int64) (*model.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.rentals) - 1; i >= 0; i-- {
		r := f.rentals[i]
		if r.CustomerID == customerID && r.MovieID == movieID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) HasOpen(ctx context.Context, customerID, movieID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rentals {
		if r.CustomerID == customerID && r.MovieID == movieID && r.DateReturned == nil {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateWithStockDecrement(ctx context.Context, customerID, movieID int64, dateOut time.Time) (*model.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stock == 0 {
		return nil, rentalrepo.ErrNoStock
	}
	f.stock--
	r := &model.Rental{ID: f.nextID, CustomerID: customerID, MovieID: movieID, DateOut: dateOut}
	f.nextID++
	f.rentals = append(f.rentals, r)
	cp := *r
	return &cp, nil
}

func (f *fakeStore) CloseWithRestock(ctx context.Context, rentalID, movieID int64, returnedAt time.Time, fee float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rentals {
		if r.ID == rentalID && r.DateReturned == nil {
			at, fv := returnedAt, fee
			r.DateReturned = &at
			r.RentalFee = &fv
			f.stock++
			return nil
		}
	}
	return rentalrepo.ErrAlreadyClosed
}

func (f *fakeStore) List(ctx context.Context) ([]HistoryRow, error) { return nil, nil }

func (f *fakeStore) Detail(ctx context.Context, id int64) (*model.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.movieID {
		return nil, sql.ErrNoRows
	}
	return &model.Movie{ID: id, Title: "movie", NumberInStock: f.stock, DailyRentalRate: f.rate}, nil
}

func TestRoundTrip_CheckoutThenReturn(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(2, 10, 5)
	s := New(store, &customersMock{}, store)

	rt, err := s.Checkout(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(9), store.stock)

	closed, err := s.Return(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, closed.DateReturned)
	require.Equal(t, float64(0), *closed.RentalFee)
	require.Equal(t, rt.ID, closed.ID)
	require.Equal(t, int64(10), store.stock)
}

func TestConcurrentDoubleReturn(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(2, 5, 5)
	s := New(store, &customersMock{}, store)

	_, err := s.Checkout(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(4), store.stock)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Return(ctx, 1, 2)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, alreadyReturned int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case Code(err) == ErrAlreadyReturned:
			alreadyReturned++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, alreadyReturned)
	// restocked exactly once
	require.Equal(t, int64(5), store.stock)
}

func TestScenario_LastCopyLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(2, 1, 10)
	s := New(store, &customersMock{}, store)

	_, err := s.Checkout(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(0), store.stock)

	_, err = s.Checkout(ctx, 3, 2)
	require.Equal(t, ErrOutOfStock, Code(err))
	require.Equal(t, int64(0), store.stock)

	closed, err := s.Return(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(1), store.stock)
	require.Equal(t, float64(0), *closed.RentalFee)
}

// --- errors ---

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrOutOfStock, Code(makeErr(ErrOutOfStock)))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
	require.Equal(t, ErrCode(""), Code(nil))
}
