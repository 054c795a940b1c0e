package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (domain.Profile, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func TestSignupHashesPassword(t *testing.T) {
	repo := new(mockAuthRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p domain.Profile) bool {
		return p.Email == "ada@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(p.Password), []byte("s3cretpass")) == nil
	})).Return(domain.Profile{ID: uuid.New(), Email: "ada@example.com"}, nil)

	created, err := NewAuthService(repo).Signup(context.Background(), domain.Profile{Email: " Ada@Example.com ", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", created.Email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := new(mockAuthRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.Profile{}, apperr.Conflict("dao", ErrProfileEmailExists))

	_, err := NewAuthService(repo).Signup(context.Background(), domain.Profile{Email: "a@b.co", Password: "s3cretpass"})
	assert.ErrorIs(t, err, ErrProfileEmailExists)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(mockAuthRepo)
	repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(domain.Profile{Email: "ada@example.com", Password: string(hash)}, nil)
	repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(domain.Profile{}, apperr.NotFound("dao", ErrProfileNotFound))

	svc := NewAuthService(repo)

	_, err = svc.Login(context.Background(), "ADA@example.com", "s3cretpass")
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
