package service

import (
	"context"
	"fmt"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

type adminService struct {
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	memberRepo  repository.GroupMemberRepository
	billRepo    repository.BillRepository
	shareRepo   repository.BillShareRepository
	paymentRepo repository.PaymentRepository
	noteRepo    repository.NotificationRepository
	activity    ActivityService
}

func NewAdminService(
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	memberRepo repository.GroupMemberRepository,
	billRepo repository.BillRepository,
	shareRepo repository.BillShareRepository,
	paymentRepo repository.PaymentRepository,
	noteRepo repository.NotificationRepository,
	activity ActivityService,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		memberRepo:  memberRepo,
		billRepo:    billRepo,
		shareRepo:   shareRepo,
		paymentRepo: paymentRepo,
		noteRepo:    noteRepo,
		activity:    activity,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *adminService) UpdateRole(ctx context.Context, adminID, userID int32, role domain.UserRole) (*domain.User, error) {
	logger.EnterMethod("adminService.UpdateRole", "adminID", adminID, "userID", userID, "role", role)

	if !role.Valid() {
		err := fmt.Errorf("%w: role must be %s or %s", domain.ErrInvalidInput, domain.UserRoleAdmin, domain.UserRoleMember)
		logger.ExitMethodWithError("adminService.UpdateRole", err)
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		err = notFound(err, "user %d", userID)
		logger.ExitMethodWithError("adminService.UpdateRole", err, "userID", userID)
		return nil, err
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		err = notFound(err, "user %d", userID)
		logger.ExitMethodWithError("adminService.UpdateRole", err, "userID", userID)
		return nil, err
	}
	previous := user.Role
	user.Role = role

	s.activity.Record(ctx, "Role Changed", actorName(ctx, s.userRepo, adminID),
		fmt.Sprintf("User %s role changed from %s to %s.", user.Username, previous, role))

	logger.ExitMethod("adminService.UpdateRole", "userID", userID)
	return user, nil
}

// DeleteUser refuses while the user owns a group or pays a bill. Otherwise it
// removes, in order, the user's payments, payments against the user's
// shares, the shares, memberships, notifications and the user.
func (s *adminService) DeleteUser(ctx context.Context, adminID, userID int32) error {
	logger.EnterMethod("adminService.DeleteUser", "adminID", adminID, "userID", userID)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		err = notFound(err, "user %d", userID)
		logger.ExitMethodWithError("adminService.DeleteUser", err, "userID", userID)
		return err
	}

	groups, err := s.groupRepo.CountByCreator(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("adminService.DeleteUser", err, "userID", userID)
		return err
	}
	bills, err := s.billRepo.CountByPayer(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("adminService.DeleteUser", err, "userID", userID)
		return err
	}
	if groups > 0 || bills > 0 {
		err := fmt.Errorf("%w: Cannot delete user because they own groups/bills. Reassign or remove those first.", domain.ErrConflict)
		logger.ExitMethodWithError("adminService.DeleteUser", err, "userID", userID, "groups", groups, "bills", bills)
		return err
	}

	byUser := func(del func(ctx context.Context, userID int32) (int64, error)) func(ctx context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) { return del(ctx, userID) }
	}
	steps := []cascadeStep{
		{name: "payments by user", run: byUser(s.paymentRepo.DeleteByUser)},
		{name: "payments on user's shares", run: byUser(s.paymentRepo.DeleteByShareOwner)},
		{name: "bill shares", run: byUser(s.shareRepo.DeleteByUser)},
		{name: "group memberships", run: byUser(s.memberRepo.DeleteByUser)},
		{name: "notifications", run: byUser(s.noteRepo.DeleteByUser)},
		{name: "user", run: deleteOne(s.userRepo.Delete, userID)},
	}
	if err := runCascade(ctx, "user", userID, steps); err != nil {
		logger.ExitMethodWithError("adminService.DeleteUser", err, "userID", userID)
		return err
	}

	s.activity.Record(ctx, "User Deleted", actorName(ctx, s.userRepo, adminID),
		fmt.Sprintf("User %s (%s) deleted.", user.Username, user.Email))

	logger.ExitMethod("adminService.DeleteUser", "userID", userID)
	return nil
}
