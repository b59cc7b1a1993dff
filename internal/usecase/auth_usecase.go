package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"talent-workflow-api/internal/domain"
	"talent-workflow-api/pkg/apperror"
	"talent-workflow-api/pkg/auth"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type authUsecase struct {
	userRepo domain.UserRepository
	validate *validator.Validate
	log      *zap.Logger
}

func NewAuthUsecase(userRepo domain.UserRepository, validate *validator.Validate, log *zap.Logger) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, validate: validate, log: log}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *authUsecase) Signup(ctx context.Context, in domain.SignupInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	if err := validateInput(u.validate, in); err != nil {
		return nil, err
	}

	if _, err := u.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Conflict("Email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, passwordHashError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, apperror.Internal(err)
	}

	u.log.Info("user signed up", zap.String("user_id", user.ID))
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.User, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := validateInput(u.validate, in); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, apperror.Internal(err)
	}

	if !auth.VerifyPassword(in.Password, user.PasswordHash) {
		return nil, apperror.Unauthorized("Invalid credentials")
	}
	return user, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID string, in domain.ChangePasswordInput) error {
	if err := validateInput(u.validate, in); err != nil {
		return err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}

	if !auth.VerifyPassword(in.CurrentPassword, user.PasswordHash) {
		return apperror.BadRequest("Invalid current password")
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return passwordHashError(err)
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func passwordHashError(err error) error {
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return apperror.Validation("Validation failed", []string{"password: must be at most 72 bytes"})
	}
	return apperror.Internal(err)
}
