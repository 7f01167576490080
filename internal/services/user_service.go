package services

import (
	"context"
	"fmt"

	"github.com/supabase-community/gotrue-go/types"
	"github.com/yleanad/village-homeschool-app/internal/models"
)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) SignUp(ctx context.Context, user *models.User) (*types.SignupResponse, error) {
	if err := models.Validate.Struct(user); err != nil {
		return nil, fmt.Errorf("invalid signup request: %w", err)
	}
	return us.userRepo.SignUp(ctx, user)
}

func (us *UserService) SignIn(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("invalid password format: %v", err)
	}
	return us.userRepo.SignIn(ctx, email, password)
}

func (us *UserService) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	return us.userRepo.RefreshToken(ctx, refreshToken)
}
