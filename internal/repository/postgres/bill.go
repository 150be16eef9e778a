package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

type billRepository struct {
	db *sql.DB
}

func NewBillRepository(db *sql.DB) repository.BillRepository {
	return &billRepository{db: db}
}

const billColumns = `id, title, amount, due_date, utility_type, description, group_id, payer_id, created_at`

func scanBill(row rowScanner) (*domain.Bill, error) {
	b := &domain.Bill{}
	err := row.Scan(&b.ID, &b.Title, &b.Amount, &b.DueDate, &b.UtilityType, &b.Description,
		&b.GroupID, &b.PayerID, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *billRepository) CreateWithShares(ctx context.Context, b *domain.Bill, shares []domain.BillShare) error {
	logger.EnterMethod("billRepository.CreateWithShares", "groupID", b.GroupID, "shares", len(shares))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("billRepository.CreateWithShares", err, "reason", "failed to begin transaction")
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO bills (title, amount, due_date, utility_type, description, group_id, payer_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	logger.DatabaseCall("INSERT", "bills", "groupID", b.GroupID, "payerID", b.PayerID)
	err = tx.QueryRowContext(ctx, query, b.Title, b.Amount, b.DueDate, b.UtilityType, b.Description,
		b.GroupID, b.PayerID).Scan(&b.ID, &b.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "billID", b.ID)
	if err != nil {
		logger.ExitMethodWithError("billRepository.CreateWithShares", err, "groupID", b.GroupID)
		return err
	}

	shareQuery := `INSERT INTO bill_shares (bill_id, user_id, share_amount, is_paid)
	               VALUES ($1, $2, $3, $4) RETURNING id`
	for i := range shares {
		shares[i].BillID = b.ID
		err := tx.QueryRowContext(ctx, shareQuery, b.ID, shares[i].UserID, shares[i].ShareAmount, shares[i].IsPaid).
			Scan(&shares[i].ID)
		if err != nil {
			err = fmt.Errorf("insert share for user %d: %w", shares[i].UserID, err)
			logger.ExitMethodWithError("billRepository.CreateWithShares", err, "billID", b.ID)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("billRepository.CreateWithShares", err, "reason", "failed to commit")
		return err
	}
	logger.ExitMethod("billRepository.CreateWithShares", "billID", b.ID)
	return nil
}

func (r *billRepository) GetByID(ctx context.Context, id int32) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	return scanBill(r.db.QueryRowContext(ctx, query, id))
}

func (r *billRepository) List(ctx context.Context) ([]domain.Bill, error) {
	return r.list(ctx, `SELECT `+billColumns+` FROM bills ORDER BY id`)
}

func (r *billRepository) ListByGroup(ctx context.Context, groupID int32) ([]domain.Bill, error) {
	return r.list(ctx, `SELECT `+billColumns+` FROM bills WHERE group_id = $1 ORDER BY id`, groupID)
}

func (r *billRepository) list(ctx context.Context, query string, args ...any) ([]domain.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *b)
	}
	return bills, rows.Err()
}

// Update rewrites the bill's descriptive fields. Amount and shares are fixed
// once created.
func (r *billRepository) Update(ctx context.Context, b *domain.Bill) error {
	query := `UPDATE bills SET title = $1, due_date = $2, utility_type = $3, description = $4 WHERE id = $5`
	logger.DatabaseCall("UPDATE", "bills", "billID", b.ID)
	result, err := r.db.ExecContext(ctx, query, b.Title, b.DueDate, b.UtilityType, b.Description, b.ID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "billID", b.ID)
		return err
	}
	return expectAffected(result)
}

func (r *billRepository) Delete(ctx context.Context, id int32) error {
	logger.DatabaseCall("DELETE", "bills", "billID", id)
	result, err := r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err, "billID", id)
		return err
	}
	return expectAffected(result)
}

func (r *billRepository) CountByPayer(ctx context.Context, userID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bills WHERE payer_id = $1`, userID).Scan(&count)
	return count, err
}
