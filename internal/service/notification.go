package service

import (
	"context"
	"fmt"
	"strings"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/metrics"
	"utility-bill-splitter/internal/repository"
)

const notificationSubject = "New Notification"

type notificationService struct {
	noteRepo repository.NotificationRepository
	userRepo repository.UserRepository
	emailSvc EmailService
}

func NewNotificationService(noteRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc EmailService) NotificationService {
	return &notificationService{
		noteRepo: noteRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

func (s *notificationService) Dispatch(ctx context.Context, userID int32, recipientEmail, message string) (*domain.Notification, error) {
	logger.EnterMethod("notificationService.Dispatch", "userID", userID)

	note := &domain.Notification{
		UserID:         userID,
		RecipientEmail: recipientEmail,
		Message:        message,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.ExitMethodWithError("notificationService.Dispatch", err, "userID", userID)
		return nil, err
	}

	if err := s.emailSvc.Send(ctx, recipientEmail, "", notificationSubject, message); err != nil {
		metrics.NotificationsSent.WithLabelValues("failed").Inc()
		logger.Warn("Failed to send notification email", "notificationID", note.ID, "to", recipientEmail, "error", err)
	} else {
		metrics.NotificationsSent.WithLabelValues("sent").Inc()
	}

	logger.ExitMethod("notificationService.Dispatch", "notificationID", note.ID)
	return note, nil
}

// NotifyUser dispatches to the user's registered email address.
func (s *notificationService) NotifyUser(ctx context.Context, userID int32, message string) (*domain.Notification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %d", userID)
	}
	note, err := s.Dispatch(ctx, user.ID, user.Email, message)
	if err != nil {
		return nil, err
	}
	note.Username = user.Username
	return note, nil
}

func (s *notificationService) ListAll(ctx context.Context, page, pageSize int32) ([]domain.Notification, int32, error) {
	limit, offset := pageBounds(page, pageSize)
	return s.noteRepo.List(ctx, limit, offset)
}

func (s *notificationService) ListForUser(ctx context.Context, userID, page, pageSize int32) ([]domain.Notification, int32, error) {
	limit, offset := pageBounds(page, pageSize)
	return s.noteRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *notificationService) CountUnread(ctx context.Context, userID int32) (int32, error) {
	return s.noteRepo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	if err := s.noteRepo.MarkAsRead(ctx, notificationID, userID); err != nil {
		return notFound(err, "notification %d", notificationID)
	}
	return nil
}
