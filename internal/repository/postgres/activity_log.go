package postgres

import (
	"context"
	"database/sql"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

type activityLogRepository struct {
	db *sql.DB
}

func NewActivityLogRepository(db *sql.DB) repository.ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Append(ctx context.Context, e *domain.ActivityLog) error {
	query := `INSERT INTO activity_logs (action, actor, description) VALUES ($1, $2, $3) RETURNING id, timestamp`
	logger.DatabaseCall("INSERT", "activity_logs", "action", e.Action, "actor", e.Actor)
	err := r.db.QueryRowContext(ctx, query, e.Action, e.Actor, e.Description).Scan(&e.ID, &e.Timestamp)
	logger.DatabaseResult("INSERT", 1, err, "logID", e.ID)
	return err
}

// List returns entries newest first with the total count.
func (r *activityLogRepository) List(ctx context.Context, limit, offset int32) ([]domain.ActivityLog, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM activity_logs`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, action, actor, timestamp, description FROM activity_logs
	          ORDER BY timestamp DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.ActivityLog
	for rows.Next() {
		var e domain.ActivityLog
		if err := rows.Scan(&e.ID, &e.Action, &e.Actor, &e.Timestamp, &e.Description); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
