package service

import (
	"context"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository"
)

type activityService struct {
	logRepo repository.ActivityLogRepository
}

func NewActivityService(logRepo repository.ActivityLogRepository) ActivityService {
	return &activityService{logRepo: logRepo}
}

func (s *activityService) Record(ctx context.Context, action, actor, description string) {
	entry := &domain.ActivityLog{Action: action, Actor: actor, Description: description}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		logger.Warn("Failed to record activity", "action", action, "actor", actor, "error", err)
	}
}

func (s *activityService) List(ctx context.Context, page, pageSize int32) ([]domain.ActivityLog, int32, error) {
	limit, offset := pageBounds(page, pageSize)
	return s.logRepo.List(ctx, limit, offset)
}
