package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"vzdrzevanje/internal/models"
)

type ClientRepository interface {
	Store(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id int64) (*models.Client, error)
	FindAll(ctx context.Context) ([]models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id int64) error
}

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Store(ctx context.Context, client *models.Client) error {
	const q = `
		INSERT INTO stranke (ime, priimek, naslov, telefon, email, opombe)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, datum_dodajanja`
	return r.db.QueryRowContext(ctx, q,
		client.FirstName, client.LastName, client.Address,
		client.Phone, client.Email, client.Notes,
	).Scan(&client.ID, &client.CreatedAt)
}

func (r *clientRepository) FindByID(ctx context.Context, id int64) (*models.Client, error) {
	const q = `SELECT id, ime, priimek, naslov, telefon, email, opombe, datum_dodajanja
		FROM stranke WHERE id = $1`
	client := &models.Client{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&client.ID, &client.FirstName, &client.LastName, &client.Address,
		&client.Phone, &client.Email, &client.Notes, &client.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return client, nil
}

func (r *clientRepository) FindAll(ctx context.Context) ([]models.Client, error) {
	const q = `SELECT id, ime, priimek, naslov, telefon, email, opombe, datum_dodajanja
		FROM stranke ORDER BY ime, priimek`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.Address,
			&c.Phone, &c.Email, &c.Notes, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	const q = `
		UPDATE stranke
		SET ime=$1, priimek=$2, naslov=$3, telefon=$4, email=$5, opombe=$6
		WHERE id=$7`
	if _, err := r.db.ExecContext(ctx, q,
		client.FirstName, client.LastName, client.Address,
		client.Phone, client.Email, client.Notes, client.ID,
	); err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stranke WHERE id = $1`, id)
	return err
}
