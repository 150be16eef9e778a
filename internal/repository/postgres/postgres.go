package postgres

import (
	"context"
	"database/sql"
	_ "embed"

	_ "github.com/lib/pq"

	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.GroupRepository
	repository.GroupMemberRepository
	repository.BillRepository
	repository.BillShareRepository
	repository.PaymentRepository
	repository.NotificationRepository
	repository.ActivityLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		GroupRepository:        NewGroupRepository(db),
		GroupMemberRepository:  NewGroupMemberRepository(db),
		BillRepository:         NewBillRepository(db),
		BillShareRepository:    NewBillShareRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		ActivityLogRepository:  NewActivityLogRepository(db),
	}
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.DatabaseCall("MIGRATE", "schema")
	_, err := db.ExecContext(ctx, schemaSQL)
	logger.DatabaseResult("MIGRATE", 0, err)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}
