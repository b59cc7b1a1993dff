package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"talent-workflow-api/internal/domain"
	"talent-workflow-api/internal/usecase"
	"talent-workflow-api/pkg/apperror"
	"talent-workflow-api/pkg/auth"
	"talent-workflow-api/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthUsecase(repo *MockUserRepo) domain.AuthUsecase {
	return usecase.NewAuthUsecase(repo, validation.New(), zap.NewNop())
}

func storedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{ID: "u1", Name: "Jane", Email: "jane@example.com", PasswordHash: hash}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes email and hashes password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", ctx, "jane@example.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.Equal(t, "jane@example.com", u.Email)
			assert.Equal(t, "Jane", u.Name)
			assert.NotEqual(t, "supersecret", u.PasswordHash)
			assert.True(t, auth.VerifyPassword("supersecret", u.PasswordHash))
		})

		user, err := newAuthUsecase(repo).Signup(ctx, domain.SignupInput{
			Name: "  Jane ", Email: " Jane@Example.COM ", Password: "supersecret",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		repo.AssertExpectations(t)
	})

	t.Run("second signup with same email conflicts", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", ctx, "jane@example.com").Return(nil, domain.ErrNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetByEmail", ctx, "jane@example.com").Return(storedUser(t, "supersecret"), nil).Once()
		uc := newAuthUsecase(repo)
		in := domain.SignupInput{Name: "Jane", Email: "jane@example.com", Password: "supersecret"}

		_, err := uc.Signup(ctx, in)
		require.NoError(t, err)

		_, err = uc.Signup(ctx, in)
		assert.Equal(t, http.StatusConflict, apperror.StatusOf(err))
		assert.EqualError(t, err, "Email already registered")
		repo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("concurrent signup loses on unique index", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", ctx, "jane@example.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", ctx, mock.Anything).Return(domain.ErrAlreadyExists)

		_, err := newAuthUsecase(repo).Signup(ctx, domain.SignupInput{Name: "Jane", Email: "jane@example.com", Password: "supersecret"})
		assert.Equal(t, http.StatusConflict, apperror.StatusOf(err))
	})

	t.Run("72 byte password is accepted", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", ctx, "jane@example.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := newAuthUsecase(repo).Signup(ctx, domain.SignupInput{
			Name: "Jane", Email: "jane@example.com", Password: strings.Repeat("a", 72),
		})
		require.NoError(t, err)
	})

	t.Run("password over 72 bytes is a validation error", func(t *testing.T) {
		cases := map[string]string{
			"ascii":     strings.Repeat("a", 80),
			"multibyte": strings.Repeat("é", 40), // 40 runes, 80 bytes
		}
		for name, password := range cases {
			t.Run(name, func(t *testing.T) {
				repo := new(MockUserRepo)
				_, err := newAuthUsecase(repo).Signup(ctx, domain.SignupInput{
					Name: "Jane", Email: "jane@example.com", Password: password,
				})
				assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("short password rejected before any write", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newAuthUsecase(repo).Signup(ctx, domain.SignupInput{Name: "Jane", Email: "jane@example.com", Password: "short"})
		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	user := storedUser(t, "supersecret")

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

		got, err := newAuthUsecase(repo).Login(ctx, domain.LoginInput{Email: "JANE@example.com", Password: "supersecret"})
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

		_, err := newAuthUsecase(repo).Login(ctx, domain.LoginInput{Email: "jane@example.com", Password: "wrongpassword"})
		assert.Equal(t, http.StatusUnauthorized, apperror.StatusOf(err))
		assert.EqualError(t, err, "Invalid credentials")
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, err := newAuthUsecase(repo).Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "whatever1"})
		assert.Equal(t, http.StatusUnauthorized, apperror.StatusOf(err))
		assert.EqualError(t, err, "Invalid credentials")
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", ctx, "u1").Return(storedUser(t, "supersecret"), nil)

		err := newAuthUsecase(repo).ChangePassword(ctx, "u1", domain.ChangePasswordInput{
			CurrentPassword: "not-it-at-all", NewPassword: "brandnewpass",
		})
		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
		assert.EqualError(t, err, "Invalid current password")
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("new password over 72 bytes is a validation error", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", ctx, "u1").Return(storedUser(t, "supersecret"), nil).Maybe()

		err := newAuthUsecase(repo).ChangePassword(ctx, "u1", domain.ChangePasswordInput{
			CurrentPassword: "supersecret", NewPassword: strings.Repeat("ü", 40),
		})
		assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("user vanished", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", ctx, "u1").Return(nil, domain.ErrNotFound)

		err := newAuthUsecase(repo).ChangePassword(ctx, "u1", domain.ChangePasswordInput{
			CurrentPassword: "supersecret", NewPassword: "brandnewpass",
		})
		assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
	})

	t.Run("stores a new hash", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", ctx, "u1").Return(storedUser(t, "supersecret"), nil)
		repo.On("UpdatePassword", ctx, "u1", mock.AnythingOfType("string")).Return(nil).Run(func(args mock.Arguments) {
			assert.True(t, auth.VerifyPassword("brandnewpass", args.String(2)))
		})

		err := newAuthUsecase(repo).ChangePassword(ctx, "u1", domain.ChangePasswordInput{
			CurrentPassword: "supersecret", NewPassword: "brandnewpass",
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
