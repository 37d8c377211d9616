// service/auth/auth_service_test.go
package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"vidly/model"
	userrepo "vidly/repository/user"
	"vidly/util/hash"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn  func(ctx context.Context, u *model.User) error
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	byIDFn    func(ctx context.Context, id int64) (*model.User, error)
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Register(ctx, model.RegisterReq{
		Name:     "Halim Iskandar",
		Email:    "USER@Example.COM",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.NotEmpty(t, u.PasswordHash)
	require.True(t, hash.Check(u.PasswordHash, "supersecret"))
}

func TestRegister_BadInput(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    " ",
		Password: "123456",
	})
	require.ErrorIs(t, err, ErrBadInput)
}

func TestRegister_EmailTaken(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Name:     "Halim Iskandar",
		Email:    "taken@example.com",
		Password: "123456",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_CreateError(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Name:     "Halim Iskandar",
		Email:    "ok@example.com",
		Password: "123456",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           7,
				Name:         "Halim Iskandar",
				Email:        "user@example.com",
				PasswordHash: hashed,
			}, nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "User@Example.com",
		Password: pw,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestLogin_UserNotFound(t *testing.T) {
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           101,
				Email:        "user@example.com",
				PasswordHash: hashed,
			}, nil
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestMe_NotFound(t *testing.T) {
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := New(m, "test-secret")

	_, err := svc.Me(context.Background(), 99)
	require.ErrorIs(t, err, ErrUserNotFound)
}
