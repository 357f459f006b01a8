package services

import (
	"context"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/repositories"
)

type ReportService interface {
	TaskReport(ctx context.Context) (*models.TaskReport, error)
}

type reportService struct {
	tasks repositories.TaskRepository
}

func NewReportService(tasks repositories.TaskRepository) ReportService {
	return &reportService{tasks: tasks}
}

func (s *reportService) TaskReport(ctx context.Context) (*models.TaskReport, error) {
	byStatus, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.tasks.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	byClient, err := s.tasks.CountByClient(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	return &models.TaskReport{
		Total:      total,
		ByStatus:   byStatus,
		ByPriority: byPriority,
		ByClient:   byClient,
	}, nil
}
