package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"vzdrzevanje/internal/models"
)

type EmailService interface {
	SendMaintenanceReminder(task *models.TaskWithDetails) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

// SendMaintenanceReminder mails the client one day before the planned
// maintenance date.
func (s *emailService) SendMaintenanceReminder(task *models.TaskWithDetails) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", task.ClientEmail)
	m.SetHeader("Subject", "Opomnik za vzdrzevanje - "+task.Title)

	date := ""
	if task.PlannedDate != nil {
		date = task.PlannedDate.Format("2006-01-02")
	}
	desc := task.Description
	if desc == "" {
		desc = "Ni opisa"
	}

	body := fmt.Sprintf(`
		<h2>Opomnik za vzdrzevanje</h2>
		<p>Pozdravljeni %s %s,</p>
		<p>To je opomnik, da je nacrtovano vzdrzevanje za jutri:</p>
		<ul>
			<li><strong>Nalog:</strong> %s</li>
			<li><strong>Oprema:</strong> %s - %s %s</li>
			<li><strong>Datum:</strong> %s</li>
			<li><strong>Opis:</strong> %s</li>
		</ul>
		<p>Lep pozdrav,<br>Ekipa za vzdrzevanje</p>
	`, task.ClientFirstName, task.ClientLastName,
		task.Title,
		task.EquipmentType, task.EquipmentBrand, task.EquipmentModel,
		date, desc)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}

	return nil
}
