package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vzdrzevanje/internal/models"
)

func TestTaskReportAggregatesCounts(t *testing.T) {
	repo := &fakeTaskRepo{}
	svc := NewTaskService(repo)

	seed := []*models.Task{
		{ClientID: 1, Title: "A", Status: models.StatusPlanned, Priority: models.PriorityHigh},
		{ClientID: 1, Title: "B", Status: models.StatusPlanned, Priority: models.PriorityMedium},
		{ClientID: 2, Title: "C", Status: models.StatusDone, Priority: models.PriorityMedium},
	}
	for _, task := range seed {
		_, err := svc.Create(context.Background(), task)
		require.NoError(t, err)
	}

	report, err := NewReportService(repo).TaskReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.ByStatus[models.StatusPlanned])
	assert.Equal(t, 1, report.ByStatus[models.StatusDone])
	assert.Equal(t, 1, report.ByPriority[models.PriorityHigh])
	assert.Equal(t, 2, report.ByPriority[models.PriorityMedium])
}

func TestTaskReportOnEmptyDatabase(t *testing.T) {
	report, err := NewReportService(&fakeTaskRepo{}).TaskReport(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Total)
}
