package service

import (
	"context"
	"fmt"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	activity ActivityService
}

func NewUserService(userRepo repository.UserRepository, activity ActivityService) UserService {
	return &userService{userRepo: userRepo, activity: activity}
}

// GetProfile loads a user and records the view against the viewer.
func (s *userService) GetProfile(ctx context.Context, viewerID, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %d", userID)
	}

	actor := user.Username
	if viewerID != userID {
		if viewer, err := s.userRepo.GetByID(ctx, viewerID); err == nil {
			actor = viewer.Username
		}
	}
	s.activity.Record(ctx, "ViewProfile", actor, fmt.Sprintf("User %s viewed the profile of %s.", actor, user.Username))
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}
