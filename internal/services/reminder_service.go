package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"vzdrzevanje/internal/models"
	"vzdrzevanje/internal/repositories"
)

// ReminderService sends maintenance reminders one day ahead of the
// planned date. It runs on a daily cron schedule and sends one email
// per due task; per-task failures are logged and the batch continues.
type ReminderService struct {
	tasks         repositories.TaskRepository
	notifications repositories.NotificationRepository
	email         EmailService
	tg            *TelegramService
	cron          *cron.Cron
}

func NewReminderService(
	tasks repositories.TaskRepository,
	notifications repositories.NotificationRepository,
	email EmailService,
	tg *TelegramService,
) *ReminderService {
	return &ReminderService{
		tasks:         tasks,
		notifications: notifications,
		email:         email,
		tg:            tg,
	}
}

// Start schedules CheckAndSend with the given cron spec (default "0 9 * * *").
func (s *ReminderService) Start(spec string) error {
	if spec == "" {
		spec = "0 9 * * *"
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.CheckAndSend(ctx)
	}); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	c.Start()
	s.cron = c
	log.Printf("[reminder] scheduled with spec %q", spec)
	return nil
}

func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// CheckAndSend mails clients whose tasks are planned for tomorrow and
// records an obvestila row per attempt. Returns sent/failed counts.
func (s *ReminderService) CheckAndSend(ctx context.Context) (sent, failed int) {
	log.Printf("[reminder] checking for maintenance reminders")

	tomorrow := time.Now().AddDate(0, 0, 1)
	tomorrow = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)

	due, err := s.tasks.FindDueOn(ctx, tomorrow)
	if err != nil {
		log.Printf("[reminder][err] list due tasks: %v", err)
		return 0, 0
	}

	for i := range due {
		task := &due[i]
		if task.ClientEmail == "" {
			log.Printf("[reminder][skip] task=%d client has no email", task.ID)
			continue
		}

		status := models.NotificationSent
		if err := s.email.SendMaintenanceReminder(task); err != nil {
			log.Printf("[reminder][err] task=%d: %v", task.ID, err)
			status = models.NotificationNotSent
			failed++
		} else {
			log.Printf("[reminder][ok] task=%d to=%s", task.ID, task.ClientEmail)
			sent++
		}

		s.record(ctx, task, status)

		if status == models.NotificationSent && s.tg != nil {
			if err := s.tg.SendMessage(s.formatTelegram(task)); err != nil {
				log.Printf("[reminder][tg][err] task=%d: %v", task.ID, err)
			}
		}
	}
	return sent, failed
}

func (s *ReminderService) record(ctx context.Context, task *models.TaskWithDetails, status models.NotificationStatus) {
	now := time.Now()
	n := &models.Notification{
		TaskID:  task.ID,
		Type:    "email",
		Title:   "Opomnik za vzdrzevanje - " + task.Title,
		Message: fmt.Sprintf("Opomnik poslan na %s", task.ClientEmail),
		SentAt:  &now,
		Status:  status,
	}
	if err := s.notifications.Store(ctx, n); err != nil {
		log.Printf("[reminder][err] record notification task=%d: %v", task.ID, err)
	}
}

func (s *ReminderService) formatTelegram(task *models.TaskWithDetails) string {
	date := ""
	if task.PlannedDate != nil {
		date = task.PlannedDate.Format("2006-01-02")
	}
	return "🔧 Opomnik za vzdrzevanje\n" +
		"• <b>" + html.EscapeString(task.Title) + "</b>\n" +
		"• Stranka: " + html.EscapeString(task.ClientFirstName+" "+task.ClientLastName) + "\n" +
		"• Datum: <code>" + date + "</code>"
}
