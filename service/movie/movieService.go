package moviesvc

import (
	"context"
	"database/sql"
	"errors"

	"vidly/model"
)

var ErrNotFound = errors.New("movie not found")
var ErrGenreNotFound = errors.New("genre not found")

type Repo interface {
	List(ctx context.Context) ([]model.Movie, error)
	Detail(ctx context.Context, id int64) (*model.Movie, error)
	Create(ctx context.Context, m *model.Movie) error
}

type Genres interface {
	Detail(ctx context.Context, id int64) (*model.Genre, error)
}

type Service interface {
	List(ctx context.Context) ([]model.Movie, error)
	Detail(ctx context.Context, id int64) (*model.Movie, error)
	Create(ctx context.Context, req model.MovieReq) (*model.Movie, error)
}

type service struct {
	r Repo
	g Genres
}

func New(r Repo, g Genres) Service { return &service{r: r, g: g} }

func (s *service) List(ctx context.Context) ([]model.Movie, error) {
	return s.r.List(ctx)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Movie, error) {
	m, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *service) Create(ctx context.Context, req model.MovieReq) (*model.Movie, error) {
	g, err := s.g.Detail(ctx, req.GenreID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}

	m := &model.Movie{
		Title:           req.Title,
		GenreID:         g.ID,
		GenreName:       g.Name,
		NumberInStock:   req.NumberInStock,
		DailyRentalRate: req.DailyRentalRate,
	}
	if err := s.r.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
