package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

type userService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(repos *repository.Repositories, logger *zap.Logger) *userService {
	return &userService{
		repos:  repos,
		logger: logger,
	}
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest carries optional profile changes. A nil field is left
// untouched. Email is accepted only so an attempt to change it can be
// rejected explicitly.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
}

// Register creates a new customer account. The password is stored as a
// bcrypt hash, never in clear text.
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}

	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("email", email))
	return user, nil
}

// Authenticate checks the credentials and returns the account. An unknown
// email surfaces as not found; a wrong password as unauthorized.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repos.User.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &errors.ErrUnauthorized{Message: "invalid password"}
	}

	return user, nil
}

// GetUser fetches an account by email.
func (s *userService) GetUser(ctx context.Context, email string) (*domain.User, error) {
	return s.repos.User.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// UpdateUser applies profile changes to the caller's own account. The email
// is the account key and cannot be changed here.
func (s *userService) UpdateUser(ctx context.Context, email string, req UpdateUserRequest) (*domain.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	if req.Email != nil && strings.ToLower(strings.TrimSpace(*req.Email)) != normalized {
		return nil, &errors.ErrValidation{Message: "email cannot be changed"}
	}

	user, err := s.repos.User.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if *req.Username == "" {
			return nil, &errors.ErrValidation{Message: "username cannot be empty"}
		}
		user.Username = *req.Username
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, &errors.ErrValidation{Message: "password must be at least 8 characters"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repos.User.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes the account.
func (s *userService) DeleteUser(ctx context.Context, email string) error {
	return s.repos.User.Delete(ctx, strings.ToLower(strings.TrimSpace(email)))
}
