package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/service"
)

func TestNotificationService_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("EmailFailureSwallowed", func(t *testing.T) {
		// Goal: The notification is persisted even when the email cannot be sent.
		notes, email := new(MockNotificationRepo), new(MockEmailService)
		svc := service.NewNotificationService(notes, nil, email)
		notes.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 2 && n.Message == "hello" && !n.IsRead
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Notification).ID = 5
		}).Return(nil).Once()
		email.On("Send", ctx, "bob@example.com", "", "New Notification", "hello").Return(errors.New("smtp: 421")).Once()

		note, err := svc.Dispatch(ctx, 2, "bob@example.com", "hello")
		require.NoError(t, err)
		assert.Equal(t, int32(5), note.ID)
		notes.AssertExpectations(t)
		email.AssertExpectations(t)
	})

	t.Run("PersistFailureSkipsEmail", func(t *testing.T) {
		notes, email := new(MockNotificationRepo), new(MockEmailService)
		svc := service.NewNotificationService(notes, nil, email)
		notes.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

		_, err := svc.Dispatch(ctx, 2, "bob@example.com", "hello")
		assert.EqualError(t, err, "insert failed")
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNotificationService_NotifyUser(t *testing.T) {
	ctx := context.Background()

	t.Run("UsesRegisteredEmail", func(t *testing.T) {
		notes, users, email := new(MockNotificationRepo), new(MockUserRepo), new(MockEmailService)
		svc := service.NewNotificationService(notes, users, email)
		users.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2, Username: "bob", Email: "bob@example.com"}, nil)
		notes.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientEmail == "bob@example.com"
		})).Return(nil)
		email.On("Send", ctx, "bob@example.com", "", "New Notification", "rent is due").Return(nil)

		note, err := svc.NotifyUser(ctx, 2, "rent is due")
		require.NoError(t, err)
		assert.Equal(t, "bob", note.Username)
	})

	t.Run("EmptyMessage", func(t *testing.T) {
		svc := service.NewNotificationService(nil, nil, nil)
		_, err := svc.NotifyUser(ctx, 2, " ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewNotificationService(nil, users, nil)
		users.On("GetByID", ctx, int32(9)).Return(nil, sql.ErrNoRows)

		_, err := svc.NotifyUser(ctx, 9, "hi")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestNotificationService_Listing(t *testing.T) {
	ctx := context.Background()
	notes := new(MockNotificationRepo)
	svc := service.NewNotificationService(notes, nil, nil)

	// Page sizes default to 50 and are capped at 200.
	notes.On("ListByUser", ctx, int32(2), int32(50), int32(0)).Return([]domain.Notification{{ID: 1}}, int32(1), nil).Once()
	notes.On("List", ctx, int32(200), int32(400)).Return([]domain.Notification{}, int32(0), nil).Once()
	notes.On("MarkAsRead", ctx, int32(7), int32(2)).Return(sql.ErrNoRows).Once()

	list, total, err := svc.ListForUser(ctx, 2, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int32(1), total)

	_, _, err = svc.ListAll(ctx, 3, 1000)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.MarkAsRead(ctx, 2, 7), domain.ErrNotFound)
	notes.AssertExpectations(t)
}
