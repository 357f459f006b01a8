package models

import "time"

// NotificationStatus marks whether a reminder was actually delivered.
type NotificationStatus string

const (
	NotificationSent    NotificationStatus = "poslano"
	NotificationNotSent NotificationStatus = "ne_poslano"
)

// Notification records one reminder sent (or attempted) for a task (obvestilo).
type Notification struct {
	ID      int64              `json:"id"`
	TaskID  int64              `json:"nalog_id"`
	Type    string             `json:"tip"`
	Title   string             `json:"naslov"`
	Message string             `json:"sporocilo"`
	SentAt  *time.Time         `json:"datum_posiljanja,omitempty"`
	Status  NotificationStatus `json:"status"`
}
