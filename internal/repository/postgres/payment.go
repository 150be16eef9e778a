package postgres

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

// Settle serializes concurrent payments against one share with a row lock,
// so the outstanding amount apply sees cannot change before the insert.
func (r *paymentRepository) Settle(ctx context.Context, shareID, userID int32, apply repository.SettleFunc) (*domain.Payment, *domain.BillShare, error) {
	logger.EnterMethod("paymentRepository.Settle", "shareID", shareID, "userID", userID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.Settle", err, "reason", "failed to begin transaction")
		return nil, nil, err
	}
	defer tx.Rollback()

	share := &domain.BillShare{}
	lockQuery := `SELECT id, bill_id, user_id, share_amount, is_paid
	              FROM bill_shares WHERE id = $1 AND user_id = $2 FOR UPDATE`
	logger.DatabaseCall("SELECT FOR UPDATE", "bill_shares", "shareID", shareID)
	err = tx.QueryRowContext(ctx, lockQuery, shareID, userID).
		Scan(&share.ID, &share.BillID, &share.UserID, &share.ShareAmount, &share.IsPaid)
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.Settle", err, "shareID", shareID)
		return nil, nil, err
	}

	var alreadyPaid decimal.Decimal
	sumQuery := `SELECT COALESCE(SUM(amount_paid), 0) FROM payments WHERE bill_share_id = $1`
	if err := tx.QueryRowContext(ctx, sumQuery, shareID).Scan(&alreadyPaid); err != nil {
		logger.ExitMethodWithError("paymentRepository.Settle", err, "reason", "failed to sum payments")
		return nil, nil, err
	}

	payment, err := apply(share, alreadyPaid)
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.Settle", err, "shareID", shareID)
		return nil, nil, err
	}

	insertQuery := `INSERT INTO payments (user_id, bill_share_id, amount_paid, method, paid_on)
	                VALUES ($1, $2, $3, $4, $5) RETURNING id`
	logger.DatabaseCall("INSERT", "payments", "shareID", shareID, "amount", payment.AmountPaid.StringFixed(2))
	err = tx.QueryRowContext(ctx, insertQuery, payment.UserID, payment.BillShareID, payment.AmountPaid,
		payment.Method, payment.PaidOn).Scan(&payment.ID)
	logger.DatabaseResult("INSERT", 1, err, "paymentID", payment.ID)
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.Settle", err, "shareID", shareID)
		return nil, nil, err
	}

	if share.IsPaid {
		if _, err := tx.ExecContext(ctx, `UPDATE bill_shares SET is_paid = TRUE WHERE id = $1`, shareID); err != nil {
			logger.ExitMethodWithError("paymentRepository.Settle", err, "reason", "failed to mark share paid")
			return nil, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("paymentRepository.Settle", err, "reason", "failed to commit")
		return nil, nil, err
	}
	logger.ExitMethod("paymentRepository.Settle", "paymentID", payment.ID, "sharePaid", share.IsPaid)
	return payment, share, nil
}

const paymentDetailSelect = `
	SELECT p.id, p.user_id, p.bill_share_id, p.amount_paid, p.method, p.paid_on,
	       b.id, b.title, b.amount, COALESCE(u.username, ''), COALESCE(u.email, '')
	FROM payments p
	JOIN bill_shares s ON s.id = p.bill_share_id
	JOIN bills b ON b.id = s.bill_id
	LEFT JOIN users u ON u.id = p.user_id`

func scanPaymentDetail(row rowScanner) (*domain.PaymentDetail, error) {
	d := &domain.PaymentDetail{}
	err := row.Scan(&d.ID, &d.UserID, &d.BillShareID, &d.AmountPaid, &d.Method, &d.PaidOn,
		&d.BillID, &d.BillTitle, &d.BillAmount, &d.Username, &d.Email)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.PaymentDetail, error) {
	return scanPaymentDetail(r.db.QueryRowContext(ctx, paymentDetailSelect+` WHERE p.id = $1`, id))
}

func (r *paymentRepository) List(ctx context.Context) ([]domain.PaymentDetail, error) {
	rows, err := r.db.QueryContext(ctx, paymentDetailSelect+` ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.PaymentDetail
	for rows.Next() {
		d, err := scanPaymentDetail(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *d)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) DeleteByBill(ctx context.Context, billID int32) (int64, error) {
	query := `DELETE FROM payments WHERE bill_share_id IN (SELECT id FROM bill_shares WHERE bill_id = $1)`
	return execCount(ctx, r.db, "payments", query, billID)
}

func (r *paymentRepository) DeleteByUser(ctx context.Context, userID int32) (int64, error) {
	return execCount(ctx, r.db, "payments", `DELETE FROM payments WHERE user_id = $1`, userID)
}

// DeleteByShareOwner removes payments made by anyone against the user's shares.
func (r *paymentRepository) DeleteByShareOwner(ctx context.Context, userID int32) (int64, error) {
	query := `DELETE FROM payments WHERE bill_share_id IN (SELECT id FROM bill_shares WHERE user_id = $1)`
	return execCount(ctx, r.db, "payments", query, userID)
}
