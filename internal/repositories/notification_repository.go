package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"vzdrzevanje/internal/models"
)

type NotificationRepository interface {
	Store(ctx context.Context, n *models.Notification) error
	FindByTaskID(ctx context.Context, taskID int64) ([]models.Notification, error)
}

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Store(ctx context.Context, n *models.Notification) error {
	const q = `
		INSERT INTO obvestila (nalog_id, tip, naslov, sporocilo, datum_posiljanja, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		n.TaskID, n.Type, n.Title, n.Message, n.SentAt, n.Status,
	).Scan(&n.ID)
}

func (r *notificationRepository) FindByTaskID(ctx context.Context, taskID int64) ([]models.Notification, error) {
	const q = `SELECT id, nalog_id, tip, naslov, sporocilo, datum_posiljanja, status
		FROM obvestila WHERE nalog_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, taskID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.TaskID, &n.Type, &n.Title, &n.Message, &n.SentAt, &n.Status); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
