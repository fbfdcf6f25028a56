package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"commdesk-backend-go/internal/db"
	"commdesk-backend-go/internal/models"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when an account already exists for the email.
var ErrDuplicateEmail = errors.New("an account with this email already exists")

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	auth     db.AuthProvider
	logger   *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, authProvider db.AuthProvider, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		auth:     authProvider,
		logger:   logger,
	}
}

// CreateUser registers the identity and mirrors the profile into Firestore. The email
// is not storage-enforced unique, so the guard is an auth-provider lookup before create.
func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if _, err := s.auth.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("duplicate-email check failed for '%s': %w", email, err)
	}

	displayName := strings.TrimSpace(req.FirstName + " " + req.LastName)
	uid, err := s.auth.CreateUser(ctx, email, req.Password, displayName)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uid,
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		TenantIDs: req.TenantIDs,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The auth account exists but the profile mirror failed; surface the error so
		// the caller can retry the initialize step.
		return nil, fmt.Errorf("failed to create user profile for '%s' after auth account creation: %w", uid, err)
	}

	s.logger.Info("user provisioned", zap.String("userId", uid), zap.String("email", email))
	return user, nil
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}
	return user, nil
}
