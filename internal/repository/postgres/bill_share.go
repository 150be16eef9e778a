package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

type billShareRepository struct {
	db *sql.DB
}

func NewBillShareRepository(db *sql.DB) repository.BillShareRepository {
	return &billShareRepository{db: db}
}

const shareDetailSelect = `
	SELECT s.id, s.bill_id, s.user_id, s.share_amount, s.is_paid,
	       COALESCE(u.username, ''), COALESCE(u.email, ''),
	       (SELECT COALESCE(SUM(p.amount_paid), 0) FROM payments p WHERE p.bill_share_id = s.id)
	FROM bill_shares s
	LEFT JOIN users u ON u.id = s.user_id`

func scanShareDetail(row rowScanner) (*domain.ShareDetail, error) {
	d := &domain.ShareDetail{}
	err := row.Scan(&d.ID, &d.BillID, &d.UserID, &d.ShareAmount, &d.IsPaid, &d.Username, &d.Email, &d.PaidAmount)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *billShareRepository) ListByBill(ctx context.Context, billID int32) ([]domain.ShareDetail, error) {
	rows, err := r.db.QueryContext(ctx, shareDetailSelect+` WHERE s.bill_id = $1 ORDER BY s.id`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []domain.ShareDetail
	for rows.Next() {
		d, err := scanShareDetail(rows)
		if err != nil {
			return nil, err
		}
		shares = append(shares, *d)
	}
	return shares, rows.Err()
}

// ListByBills loads the shares of several bills in one query, keyed by bill id.
func (r *billShareRepository) ListByBills(ctx context.Context, billIDs []int32) (map[int32][]domain.ShareDetail, error) {
	result := make(map[int32][]domain.ShareDetail, len(billIDs))
	if len(billIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx, shareDetailSelect+` WHERE s.bill_id = ANY($1) ORDER BY s.id`, pq.Array(billIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanShareDetail(rows)
		if err != nil {
			return nil, err
		}
		result[d.BillID] = append(result[d.BillID], *d)
	}
	return result, rows.Err()
}

func (r *billShareRepository) MarkAllPaid(ctx context.Context, billID int32) (int64, error) {
	return execCount(ctx, r.db, "bill_shares", `UPDATE bill_shares SET is_paid = TRUE WHERE bill_id = $1`, billID)
}

func (r *billShareRepository) DeleteByBill(ctx context.Context, billID int32) (int64, error) {
	return execCount(ctx, r.db, "bill_shares", `DELETE FROM bill_shares WHERE bill_id = $1`, billID)
}

func (r *billShareRepository) DeleteByUser(ctx context.Context, userID int32) (int64, error) {
	return execCount(ctx, r.db, "bill_shares", `DELETE FROM bill_shares WHERE user_id = $1`, userID)
}

// ListUnpaidDueBetween returns unpaid shares whose bill falls due in [from, to].
func (r *billShareRepository) ListUnpaidDueBetween(ctx context.Context, from, to time.Time) ([]domain.ShareReminder, error) {
	query := `
	SELECT s.id, s.user_id, u.email, u.username, b.id, b.title, s.share_amount,
	       (SELECT COALESCE(SUM(p.amount_paid), 0) FROM payments p WHERE p.bill_share_id = s.id),
	       b.due_date
	FROM bill_shares s
	JOIN bills b ON b.id = s.bill_id
	JOIN users u ON u.id = s.user_id
	WHERE s.is_paid = FALSE AND b.due_date BETWEEN $1 AND $2
	ORDER BY b.due_date, s.id`

	logger.DatabaseCall("SELECT", "bill_shares", "from", from, "to", to)
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var reminders []domain.ShareReminder
	for rows.Next() {
		var s domain.ShareReminder
		if err := rows.Scan(&s.ShareID, &s.UserID, &s.Email, &s.Username, &s.BillID, &s.BillTitle,
			&s.ShareAmount, &s.PaidAmount, &s.DueDate); err != nil {
			return nil, err
		}
		reminders = append(reminders, s)
	}
	logger.DatabaseResult("SELECT", int64(len(reminders)), rows.Err())
	return reminders, rows.Err()
}
