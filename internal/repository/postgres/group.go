package postgres

import (
	"context"
	"database/sql"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

const groupSummarySelect = `
	SELECT g.id, g.name, g.description, g.created_by_id, g.created_on,
	       (SELECT COUNT(*) FROM group_members m WHERE m.group_id = g.id),
	       (SELECT COALESCE(SUM(b.amount), 0) FROM bills b WHERE b.group_id = g.id),
	       (SELECT COUNT(*) FROM bills b WHERE b.group_id = g.id)
	FROM groups g`

func scanGroupSummary(row rowScanner) (*domain.GroupSummary, error) {
	s := &domain.GroupSummary{}
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedByID, &s.CreatedOn,
		&s.MemberCount, &s.BillTotal, &s.BillCount)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	logger.EnterMethod("groupRepository.Create", "name", g.Name, "createdByID", g.CreatedByID)

	query := `INSERT INTO groups (name, description, created_by_id)
	          VALUES ($1, $2, $3) RETURNING id, created_on`
	logger.DatabaseCall("INSERT", "groups", "createdByID", g.CreatedByID)
	err := r.db.QueryRowContext(ctx, query, g.Name, g.Description, g.CreatedByID).Scan(&g.ID, &g.CreatedOn)
	logger.DatabaseResult("INSERT", 1, err, "groupID", g.ID)

	if err != nil {
		logger.ExitMethodWithError("groupRepository.Create", err, "createdByID", g.CreatedByID)
		return err
	}
	logger.ExitMethod("groupRepository.Create", "groupID", g.ID)
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int32) (*domain.Group, error) {
	g := &domain.Group{}
	query := `SELECT id, name, description, created_by_id, created_on FROM groups WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.Description, &g.CreatedByID, &g.CreatedOn)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) GetSummary(ctx context.Context, id int32) (*domain.GroupSummary, error) {
	return scanGroupSummary(r.db.QueryRowContext(ctx, groupSummarySelect+` WHERE g.id = $1`, id))
}

func (r *groupRepository) ListSummaries(ctx context.Context) ([]domain.GroupSummary, error) {
	rows, err := r.db.QueryContext(ctx, groupSummarySelect+` ORDER BY g.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.GroupSummary
	for rows.Next() {
		s, err := scanGroupSummary(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *s)
	}
	return groups, rows.Err()
}

func (r *groupRepository) Update(ctx context.Context, g *domain.Group) error {
	query := `UPDATE groups SET name = $1, description = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, g.Name, g.Description, g.ID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *groupRepository) Delete(ctx context.Context, id int32) error {
	logger.DatabaseCall("DELETE", "groups", "groupID", id)
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err, "groupID", id)
		return err
	}
	return expectAffected(result)
}

func (r *groupRepository) CountByCreator(ctx context.Context, userID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups WHERE created_by_id = $1`, userID).Scan(&count)
	return count, err
}
