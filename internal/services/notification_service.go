package services

import (
	"context"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/repositories"
)

// NotificationService exposes the reminder audit trail per task.
type NotificationService interface {
	GetByTask(ctx context.Context, taskID int64) ([]models.Notification, error)
}

type notificationService struct {
	repo repositories.NotificationRepository
}

func NewNotificationService(repo repositories.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) GetByTask(ctx context.Context, taskID int64) ([]models.Notification, error) {
	return s.repo.FindByTaskID(ctx, taskID)
}
