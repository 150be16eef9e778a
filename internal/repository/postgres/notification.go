package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "userID", n.UserID)

	query := `INSERT INTO notifications (user_id, recipient_email, message, is_read)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	logger.DatabaseCall("INSERT", "notifications", "userID", n.UserID)
	err := r.db.QueryRowContext(ctx, query, n.UserID, n.RecipientEmail, n.Message, n.IsRead).Scan(&n.ID, &n.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)

	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "userID", n.UserID)
	} else {
		logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	}
	return err
}

const notificationSelect = `
	SELECT n.id, n.user_id, n.recipient_email, n.message, n.is_read, n.created_at, COALESCE(u.username, '')
	FROM notifications n
	LEFT JOIN users u ON u.id = n.user_id`

func (r *notificationRepository) List(ctx context.Context, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications`).Scan(&count); err != nil {
		return nil, 0, err
	}
	notes, err := r.query(ctx, notificationSelect+` ORDER BY n.created_at DESC, n.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	return notes, count, err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}
	query := notificationSelect + ` WHERE n.user_id = $1 ORDER BY n.created_at DESC, n.id DESC LIMIT $2 OFFSET $3`
	notes, err := r.query(ctx, query, userID, limit, offset)
	return notes, count, err
}

func (r *notificationRepository) query(ctx context.Context, query string, args ...any) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.RecipientEmail, &n.Message, &n.IsRead, &n.CreatedAt, &n.Username); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

// MarkAsRead only touches a notification owned by userID; anything else
// reports sql.ErrNoRows.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int32) error {
	logger.EnterMethod("notificationRepository.MarkAsRead", "notificationID", id, "userID", userID)

	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		logger.ExitMethodWithError("notificationRepository.MarkAsRead", err, "notificationID", id)
		return err
	}
	if err := expectAffected(result); err != nil {
		err = fmt.Errorf("notification not found or access denied: %w", err)
		logger.ExitMethodWithError("notificationRepository.MarkAsRead", err, "notificationID", id)
		return err
	}

	logger.ExitMethod("notificationRepository.MarkAsRead", "notificationID", id)
	return nil
}

func (r *notificationRepository) DeleteByUser(ctx context.Context, userID int32) (int64, error) {
	return execCount(ctx, r.db, "notifications", `DELETE FROM notifications WHERE user_id = $1`, userID)
}
