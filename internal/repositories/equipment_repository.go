package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"vzdrzevanje/internal/models"
)

type EquipmentRepository interface {
	Store(ctx context.Context, eq *models.Equipment) error
	FindByID(ctx context.Context, id int64) (*models.Equipment, error)
	FindAll(ctx context.Context, clientID *int64) ([]models.EquipmentWithOwner, error)
	Update(ctx context.Context, eq *models.Equipment) error
	Delete(ctx context.Context, id int64) error
}

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Store(ctx context.Context, eq *models.Equipment) error {
	const q = `
		INSERT INTO oprema (stranka_id, tip_opreme, znamka, model, serijska_stevilka, datum_nakupa, garancija_do, opombe)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		eq.ClientID, eq.Type, eq.Brand, eq.Model, eq.SerialNumber,
		eq.PurchaseDate, eq.WarrantyTo, eq.Notes,
	).Scan(&eq.ID)
}

func (r *equipmentRepository) FindByID(ctx context.Context, id int64) (*models.Equipment, error) {
	const q = `SELECT id, stranka_id, tip_opreme, znamka, model, serijska_stevilka, datum_nakupa, garancija_do, opombe
		FROM oprema WHERE id = $1`
	eq := &models.Equipment{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&eq.ID, &eq.ClientID, &eq.Type, &eq.Brand, &eq.Model,
		&eq.SerialNumber, &eq.PurchaseDate, &eq.WarrantyTo, &eq.Notes,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	return eq, nil
}

// FindAll lists equipment joined with the owner's name, optionally
// restricted to one client.
func (r *equipmentRepository) FindAll(ctx context.Context, clientID *int64) ([]models.EquipmentWithOwner, error) {
	q := `
		SELECT o.id, o.stranka_id, o.tip_opreme, o.znamka, o.model, o.serijska_stevilka,
		       o.datum_nakupa, o.garancija_do, o.opombe,
		       COALESCE(s.ime, ''), COALESCE(s.priimek, '')
		FROM oprema o
		LEFT JOIN stranke s ON o.stranka_id = s.id`
	args := []interface{}{}
	if clientID != nil {
		q += ` WHERE o.stranka_id = $1`
		args = append(args, *clientID)
	}
	q += ` ORDER BY o.tip_opreme, o.znamka`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var out []models.EquipmentWithOwner
	for rows.Next() {
		var e models.EquipmentWithOwner
		if err := rows.Scan(
			&e.ID, &e.ClientID, &e.Type, &e.Brand, &e.Model, &e.SerialNumber,
			&e.PurchaseDate, &e.WarrantyTo, &e.Notes,
			&e.OwnerFirstName, &e.OwnerLastName,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *equipmentRepository) Update(ctx context.Context, eq *models.Equipment) error {
	const q = `
		UPDATE oprema
		SET stranka_id=$1, tip_opreme=$2, znamka=$3, model=$4, serijska_stevilka=$5,
		    datum_nakupa=$6, garancija_do=$7, opombe=$8
		WHERE id=$9`
	if _, err := r.db.ExecContext(ctx, q,
		eq.ClientID, eq.Type, eq.Brand, eq.Model, eq.SerialNumber,
		eq.PurchaseDate, eq.WarrantyTo, eq.Notes, eq.ID,
	); err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM oprema WHERE id = $1`, id)
	return err
}
