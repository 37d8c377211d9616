package genresvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"vidly/model"
)

var ErrNotFound = errors.New("genre not found")
var ErrBadInput = errors.New("bad input")

type Repo interface {
	List(ctx context.Context) ([]model.Genre, error)
	Detail(ctx context.Context, id int64) (*model.Genre, error)
	Create(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, id int64, name string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type Service interface {
	List(ctx context.Context) ([]model.Genre, error)
	Detail(ctx context.Context, id int64) (*model.Genre, error)
	Create(ctx context.Context, name string) (*model.Genre, error)
	Update(ctx context.Context, id int64, name string) (*model.Genre, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) List(ctx context.Context) ([]model.Genre, error) {
	return s.r.List(ctx)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Genre, error) {
	g, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *service) Create(ctx context.Context, name string) (*model.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBadInput
	}
	id, err := s.r.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &model.Genre{ID: id, Name: name}, nil
}

func (s *service) Update(ctx context.Context, id int64, name string) (*model.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBadInput
	}
	aff, err := s.r.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if aff == 0 {
		return nil, ErrNotFound
	}
	return &model.Genre{ID: id, Name: name}, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	aff, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}
