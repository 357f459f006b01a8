package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"vzdrzevanje/internal/models"
)

type ImageRepository interface {
	Store(ctx context.Context, img *models.Image) error
	FindByTaskID(ctx context.Context, taskID int64) ([]models.Image, error)
	Delete(ctx context.Context, id int64) error
}

type imageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Store(ctx context.Context, img *models.Image) error {
	const q = `
		INSERT INTO slike (nalog_id, ime_datoteke, pot)
		VALUES ($1, $2, $3)
		RETURNING id, datum_dodajanja`
	return r.db.QueryRowContext(ctx, q, img.TaskID, img.FileName, img.Path).
		Scan(&img.ID, &img.CreatedAt)
}

func (r *imageRepository) FindByTaskID(ctx context.Context, taskID int64) ([]models.Image, error) {
	const q = `SELECT id, nalog_id, ime_datoteke, pot, datum_dodajanja
		FROM slike WHERE nalog_id = $1 ORDER BY datum_dodajanja`
	rows, err := r.db.QueryContext(ctx, q, taskID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var images []models.Image
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.TaskID, &img.FileName, &img.Path, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *imageRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM slike WHERE id = $1`, id)
	return err
}
