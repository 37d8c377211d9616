package customersvc

import (
	"context"
	"database/sql"
	"errors"

	"vidly/model"
)

var ErrNotFound = errors.New("customer not found")

type Repo interface {
	List(ctx context.Context) ([]model.Customer, error)
	Detail(ctx context.Context, id int64) (*model.Customer, error)
	Create(ctx context.Context, c *model.Customer) error
}

type Service interface {
	List(ctx context.Context) ([]model.Customer, error)
	Detail(ctx context.Context, id int64) (*model.Customer, error)
	Create(ctx context.Context, req model.CustomerReq) (*model.Customer, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) List(ctx context.Context) ([]model.Customer, error) {
	return s.r.List(ctx)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, req model.CustomerReq) (*model.Customer, error) {
	c := &model.Customer{
		Name:   req.Name,
		IsGold: req.IsGold,
		Phone:  req.Phone,
	}
	if err := s.r.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
