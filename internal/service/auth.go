package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
	"utility-bill-splitter/internal/security"
)

const minPasswordLength = 8

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	activity ActivityService
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, activity ActivityService) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		activity: activity,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	logger.EnterMethod("authService.Register", "email", email)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || !strings.Contains(email, "@") {
		err := fmt.Errorf("%w: name and a valid email are required", domain.ErrInvalidInput)
		logger.ExitMethodWithError("authService.Register", err)
		return nil, err
	}
	if len(password) < minPasswordLength {
		err := fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
		logger.ExitMethodWithError("authService.Register", err)
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethodWithError("authService.Register", err, "reason", "failed to check email")
		return nil, err
	}
	if existing != nil {
		err := fmt.Errorf("%w: user with this email already exists", domain.ErrConflict)
		logger.ExitMethodWithError("authService.Register", err, "email", email)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.UserRoleMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Register", err, "email", email)
		return nil, err
	}

	s.activity.Record(ctx, "User Registration", user.Username,
		fmt.Sprintf("New user registered with email: %s.", user.Email))

	logger.ExitMethod("authService.Register", "userID", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	logger.EnterMethod("authService.Login", "email", email)

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.ExitMethodWithError("authService.Login", domain.ErrInvalidCredentials, "reason", "user not found")
			return "", nil, domain.ErrInvalidCredentials
		}
		logger.ExitMethodWithError("authService.Login", err, "email", email)
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.ExitMethodWithError("authService.Login", domain.ErrInvalidCredentials, "reason", "password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "reason", "failed to sign token")
		return "", nil, err
	}

	s.activity.Record(ctx, "User Login", user.Username, fmt.Sprintf("User %s logged in.", user.Username))

	logger.ExitMethod("authService.Login", "userID", user.ID)
	return token, user, nil
}
