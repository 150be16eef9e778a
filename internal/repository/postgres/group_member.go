package postgres

import (
	"context"
	"database/sql"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

type groupMemberRepository struct {
	db *sql.DB
}

func NewGroupMemberRepository(db *sql.DB) repository.GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

// Add inserts a membership. A duplicate (group_id, user_id) surfaces as the
// driver's unique-violation error.
func (r *groupMemberRepository) Add(ctx context.Context, m *domain.GroupMember) error {
	query := `INSERT INTO group_members (group_id, user_id, role)
	          VALUES ($1, $2, $3) RETURNING id, joined_on`
	logger.DatabaseCall("INSERT", "group_members", "groupID", m.GroupID, "userID", m.UserID)
	err := r.db.QueryRowContext(ctx, query, m.GroupID, m.UserID, m.Role).Scan(&m.ID, &m.JoinedOn)
	logger.DatabaseResult("INSERT", 1, err, "memberID", m.ID)
	return err
}

func (r *groupMemberRepository) Get(ctx context.Context, groupID, userID int32) (*domain.GroupMember, error) {
	m := &domain.GroupMember{}
	query := `SELECT id, group_id, user_id, role, joined_on FROM group_members WHERE group_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.JoinedOn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *groupMemberRepository) ListByGroup(ctx context.Context, groupID int32) ([]domain.MemberDetail, error) {
	query := `SELECT m.id, m.group_id, m.user_id, m.role, m.joined_on, COALESCE(u.username, ''), COALESCE(u.email, '')
	          FROM group_members m
	          LEFT JOIN users u ON u.id = m.user_id
	          WHERE m.group_id = $1
	          ORDER BY m.id`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.MemberDetail
	for rows.Next() {
		var m domain.MemberDetail
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.JoinedOn, &m.Username, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *groupMemberRepository) Remove(ctx context.Context, groupID, userID int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *groupMemberRepository) DeleteByGroup(ctx context.Context, groupID int32) (int64, error) {
	return execCount(ctx, r.db, "group_members", `DELETE FROM group_members WHERE group_id = $1`, groupID)
}

func (r *groupMemberRepository) DeleteByUser(ctx context.Context, userID int32) (int64, error) {
	return execCount(ctx, r.db, "group_members", `DELETE FROM group_members WHERE user_id = $1`, userID)
}

// execCount runs a bulk DELETE or UPDATE and reports how many rows it touched.
func execCount(ctx context.Context, db *sql.DB, table, query string, args ...any) (int64, error) {
	logger.DatabaseCall("EXEC", table, "args", args)
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("EXEC", 0, err, "table", table)
		return 0, err
	}
	rows, err := result.RowsAffected()
	logger.DatabaseResult("EXEC", rows, err, "table", table)
	return rows, err
}
