package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vzdrzevanje/internal/models"
)

type fakeEmailService struct {
	sentTo  []string
	failFor map[int64]error
}

func (f *fakeEmailService) SendMaintenanceReminder(task *models.TaskWithDetails) error {
	if err := f.failFor[task.ID]; err != nil {
		return err
	}
	f.sentTo = append(f.sentTo, task.ClientEmail)
	return nil
}

type fakeNotificationRepo struct {
	stored []models.Notification
}

func (f *fakeNotificationRepo) Store(_ context.Context, n *models.Notification) error {
	f.stored = append(f.stored, *n)
	return nil
}

func (f *fakeNotificationRepo) FindByTaskID(_ context.Context, taskID int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.stored {
		if n.TaskID == taskID {
			out = append(out, n)
		}
	}
	return out, nil
}

func dueTask(id int64, title, email string) models.TaskWithDetails {
	planned := time.Now().AddDate(0, 0, 1)
	return models.TaskWithDetails{
		Task: models.Task{
			ID:          id,
			Title:       title,
			Status:      models.StatusPlanned,
			PlannedDate: &planned,
		},
		ClientFirstName: "Janez",
		ClientLastName:  "Novak",
		ClientEmail:     email,
	}
}

func TestCheckAndSendMailsEachDueTask(t *testing.T) {
	repo := &fakeTaskRepo{due: []models.TaskWithDetails{
		dueTask(1, "Servis klime", "janez@example.com"),
		dueTask(2, "Pregled kotla", "ana@example.com"),
	}}
	email := &fakeEmailService{}
	notifications := &fakeNotificationRepo{}
	svc := NewReminderService(repo, notifications, email, nil)

	sent, failed := svc.CheckAndSend(context.Background())

	assert.Equal(t, 2, sent)
	assert.Zero(t, failed)
	assert.Equal(t, []string{"janez@example.com", "ana@example.com"}, email.sentTo)

	require.Len(t, notifications.stored, 2)
	assert.Equal(t, models.NotificationSent, notifications.stored[0].Status)
	assert.Equal(t, "Opomnik za vzdrzevanje - Servis klime", notifications.stored[0].Title)
}

func TestCheckAndSendContinuesPastFailures(t *testing.T) {
	repo := &fakeTaskRepo{due: []models.TaskWithDetails{
		dueTask(1, "Prvi", "a@example.com"),
		dueTask(2, "Drugi", "b@example.com"),
		dueTask(3, "Tretji", "c@example.com"),
	}}
	email := &fakeEmailService{failFor: map[int64]error{2: errors.New("smtp timeout")}}
	notifications := &fakeNotificationRepo{}
	svc := NewReminderService(repo, notifications, email, nil)

	sent, failed := svc.CheckAndSend(context.Background())

	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"a@example.com", "c@example.com"}, email.sentTo)

	// every attempt leaves an obvestila row, failures included
	require.Len(t, notifications.stored, 3)
	assert.Equal(t, models.NotificationNotSent, notifications.stored[1].Status)
}

func TestCheckAndSendSkipsClientsWithoutEmail(t *testing.T) {
	repo := &fakeTaskRepo{due: []models.TaskWithDetails{
		dueTask(1, "Brez maila", ""),
	}}
	email := &fakeEmailService{}
	notifications := &fakeNotificationRepo{}
	svc := NewReminderService(repo, notifications, email, nil)

	sent, failed := svc.CheckAndSend(context.Background())

	assert.Zero(t, sent)
	assert.Zero(t, failed)
	assert.Empty(t, email.sentTo)
	assert.Empty(t, notifications.stored)
}

func TestReminderStartRejectsBadCronSpec(t *testing.T) {
	svc := NewReminderService(&fakeTaskRepo{}, &fakeNotificationRepo{}, &fakeEmailService{}, nil)
	assert.Error(t, svc.Start("ni veljaven spec"))
}

func TestReminderStartAcceptsDefaultSpec(t *testing.T) {
	svc := NewReminderService(&fakeTaskRepo{}, &fakeNotificationRepo{}, &fakeEmailService{}, nil)
	require.NoError(t, svc.Start(""))
	svc.Stop()
}
