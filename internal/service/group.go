package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

type groupService struct {
	groupRepo   repository.GroupRepository
	memberRepo  repository.GroupMemberRepository
	userRepo    repository.UserRepository
	billRepo    repository.BillRepository
	shareRepo   repository.BillShareRepository
	paymentRepo repository.PaymentRepository
	activity    ActivityService
}

func NewGroupService(
	groupRepo repository.GroupRepository,
	memberRepo repository.GroupMemberRepository,
	userRepo repository.UserRepository,
	billRepo repository.BillRepository,
	shareRepo repository.BillShareRepository,
	paymentRepo repository.PaymentRepository,
	activity ActivityService,
) GroupService {
	return &groupService{
		groupRepo:   groupRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		billRepo:    billRepo,
		shareRepo:   shareRepo,
		paymentRepo: paymentRepo,
		activity:    activity,
	}
}

// CreateGroup inserts the group, its creator as Admin and every other listed
// user once as Contributor.
func (s *groupService) CreateGroup(ctx context.Context, creatorID int32, name, description string, memberIDs []int32) (*GroupDetail, error) {
	logger.EnterMethod("groupService.CreateGroup", "creatorID", creatorID, "members", len(memberIDs))

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrInvalidInput)
	}

	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		err = notFound(err, "user %d", creatorID)
		logger.ExitMethodWithError("groupService.CreateGroup", err, "creatorID", creatorID)
		return nil, err
	}

	seen := map[int32]bool{creatorID: true}
	var invited []int32
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			err = notFound(err, "user %d", id)
			logger.ExitMethodWithError("groupService.CreateGroup", err, "memberID", id)
			return nil, err
		}
		invited = append(invited, id)
	}

	group := &domain.Group{Name: name, Description: description, CreatedByID: creatorID}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		logger.ExitMethodWithError("groupService.CreateGroup", err, "creatorID", creatorID)
		return nil, err
	}

	members := []*domain.GroupMember{{GroupID: group.ID, UserID: creatorID, Role: domain.GroupMemberRoleAdmin}}
	for _, id := range invited {
		members = append(members, &domain.GroupMember{GroupID: group.ID, UserID: id, Role: domain.GroupMemberRoleContributor})
	}
	for _, m := range members {
		if err := s.memberRepo.Add(ctx, m); err != nil {
			err = fmt.Errorf("add member %d to group %d: %w", m.UserID, group.ID, err)
			logger.ExitMethodWithError("groupService.CreateGroup", err, "groupID", group.ID)
			return nil, err
		}
	}

	s.activity.Record(ctx, "Group Created", creator.Username,
		fmt.Sprintf("Group '%s' created with %d members.", group.Name, len(members)))

	detail, err := s.GetGroup(ctx, group.ID)
	if err != nil {
		logger.ExitMethodWithError("groupService.CreateGroup", err, "groupID", group.ID)
		return nil, err
	}
	logger.ExitMethod("groupService.CreateGroup", "groupID", group.ID)
	return detail, nil
}

func (s *groupService) ListGroups(ctx context.Context) ([]GroupDetail, error) {
	summaries, err := s.groupRepo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	groups := make([]GroupDetail, 0, len(summaries))
	for _, summary := range summaries {
		members, err := s.memberRepo.ListByGroup(ctx, summary.ID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, GroupDetail{GroupSummary: summary, Members: members})
	}
	return groups, nil
}

func (s *groupService) GetGroup(ctx context.Context, id int32) (*GroupDetail, error) {
	summary, err := s.groupRepo.GetSummary(ctx, id)
	if err != nil {
		return nil, notFound(err, "group %d", id)
	}
	members, err := s.memberRepo.ListByGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GroupDetail{GroupSummary: *summary, Members: members}, nil
}

func (s *groupService) UpdateGroup(ctx context.Context, id int32, name, description string) (*domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrInvalidInput)
	}
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "group %d", id)
	}
	group.Name = name
	group.Description = description
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, notFound(err, "group %d", id)
	}
	return group, nil
}

// DeleteGroup removes the group's members, then for every bill its payments
// and shares, then the bills and finally the group.
func (s *groupService) DeleteGroup(ctx context.Context, actorID, id int32) error {
	logger.EnterMethod("groupService.DeleteGroup", "groupID", id, "actorID", actorID)

	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, "group %d", id)
		logger.ExitMethodWithError("groupService.DeleteGroup", err, "groupID", id)
		return err
	}
	bills, err := s.billRepo.ListByGroup(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("groupService.DeleteGroup", err, "groupID", id)
		return err
	}

	eachBill := func(del func(ctx context.Context, billID int32) (int64, error)) func(ctx context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) {
			var total int64
			for _, b := range bills {
				n, err := del(ctx, b.ID)
				if err != nil {
					return total, fmt.Errorf("bill %d: %w", b.ID, err)
				}
				total += n
			}
			return total, nil
		}
	}

	steps := []cascadeStep{
		{name: "group members", run: func(ctx context.Context) (int64, error) { return s.memberRepo.DeleteByGroup(ctx, id) }},
		{name: "payments", run: eachBill(s.paymentRepo.DeleteByBill)},
		{name: "bill shares", run: eachBill(s.shareRepo.DeleteByBill)},
		{name: "bills", run: eachBill(func(ctx context.Context, billID int32) (int64, error) {
			return deleteOne(s.billRepo.Delete, billID)(ctx)
		})},
		{name: "group", run: deleteOne(s.groupRepo.Delete, id)},
	}
	if err := runCascade(ctx, "group", id, steps); err != nil {
		logger.ExitMethodWithError("groupService.DeleteGroup", err, "groupID", id)
		return err
	}

	s.activity.Record(ctx, "Group Deleted", actorName(ctx, s.userRepo, actorID),
		fmt.Sprintf("Group '%s' deleted with %d bills.", group.Name, len(bills)))

	logger.ExitMethod("groupService.DeleteGroup", "groupID", id)
	return nil
}

func (s *groupService) AddMember(ctx context.Context, groupID, userID int32) (*domain.GroupMember, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, notFound(err, "group %d", groupID)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, notFound(err, "user %d", userID)
	}
	if _, err := s.memberRepo.Get(ctx, groupID, userID); err == nil {
		return nil, fmt.Errorf("%w: user is already a member of this group", domain.ErrConflict)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// A concurrent add can still lose the race on the unique index.
	member := &domain.GroupMember{GroupID: groupID, UserID: userID, Role: domain.GroupMemberRoleContributor}
	if err := s.memberRepo.Add(ctx, member); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: user is already a member of this group", domain.ErrConflict)
		}
		return nil, err
	}
	return member, nil
}

// RemoveMember is only allowed for the group's creator.
func (s *groupService) RemoveMember(ctx context.Context, groupID, userID, requestedBy int32) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return notFound(err, "group %d", groupID)
	}
	if group.CreatedByID != requestedBy {
		return fmt.Errorf("%w: only the group creator can remove members", domain.ErrForbidden)
	}
	if err := s.memberRepo.Remove(ctx, groupID, userID); err != nil {
		return notFound(err, "member %d in group %d", userID, groupID)
	}
	return nil
}
