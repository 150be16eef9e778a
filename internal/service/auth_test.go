package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/security"
	"utility-bill-splitter/internal/service"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", time.Hour)

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokens, nopActivity{})
		users.On("GetByEmail", ctx, "bob@example.com").Return(nil, sql.ErrNoRows)
		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "bob" && u.Role == domain.UserRoleMember &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")) == nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 2
		}).Return(nil).Once()

		user, err := svc.Register(ctx, " bob ", "bob@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, int32(2), user.ID)
		users.AssertExpectations(t)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokens, nopActivity{})

		_, err := svc.Register(ctx, "bob", "bob@example.com", "short")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepo), tokens, nopActivity{})
		_, err := svc.Register(ctx, "bob", "not-an-email", "long enough")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokens, nopActivity{})
		users.On("GetByEmail", ctx, "bob@example.com").Return(&domain.User{ID: 2}, nil)

		_, err := svc.Register(ctx, "bob", "bob@example.com", "correct horse")
		assert.ErrorIs(t, err, domain.ErrConflict)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret", time.Hour)
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	bob := &domain.User{ID: 2, Username: "bob", Email: "bob@example.com", PasswordHash: string(hash), Role: domain.UserRoleAdmin}

	t.Run("Success", func(t *testing.T) {
		// Goal: The issued token carries the user's id and role.
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokens, nopActivity{})
		users.On("GetByEmail", ctx, "bob@example.com").Return(bob, nil)

		token, user, err := svc.Login(ctx, "bob@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, int32(2), user.ID)

		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int32(2), claims.UserID)
		assert.Equal(t, "Admin", claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokens, nopActivity{})
		users.On("GetByEmail", ctx, "bob@example.com").Return(bob, nil)

		_, _, err := svc.Login(ctx, "bob@example.com", "wrong horse")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokens, nopActivity{})
		users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Login(ctx, "nobody@example.com", "correct horse")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
