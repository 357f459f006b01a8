package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"vzdrzevanje/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.TaskWithDetails, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error

	// FindDueOn returns planned tasks whose maintenance date falls on the
	// given day, joined with client contact fields for the reminder mail.
	FindDueOn(ctx context.Context, day time.Time) ([]models.TaskWithDetails, error)

	CountByStatus(ctx context.Context) (map[models.TaskStatus]int, error)
	CountByPriority(ctx context.Context) (map[models.TaskPriority]int, error)
	CountByClient(ctx context.Context) ([]models.ClientTaskCount, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	const q = `
		INSERT INTO vzdrzevalni_nalogi (
			stranka_id, oprema_id, naslov, opis,
			datum_nacrtovanega_vzdrzevanja, datum_izvedbe, status, prioriteta, rezervni_deli, opombe
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, datum_ustvarjanja`
	return r.db.QueryRowContext(ctx, q,
		task.ClientID, task.EquipmentID, task.Title, task.Description,
		task.PlannedDate, task.ExecutedDate, task.Status, task.Priority,
		task.SpareParts, task.Notes,
	).Scan(&task.ID, &task.CreatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	const q = `SELECT id, stranka_id, oprema_id, naslov, opis, datum_ustvarjanja,
		datum_nacrtovanega_vzdrzevanja, datum_izvedbe, status, prioriteta, rezervni_deli, opombe
		FROM vzdrzevalni_nalogi WHERE id = $1`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&task.ID, &task.ClientID, &task.EquipmentID, &task.Title, &task.Description,
		&task.CreatedAt, &task.PlannedDate, &task.ExecutedDate,
		&task.Status, &task.Priority, &task.SpareParts, &task.Notes,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

const taskDetailsSelect = `
SELECT vn.id, vn.stranka_id, vn.oprema_id, vn.naslov, vn.opis, vn.datum_ustvarjanja,
       vn.datum_nacrtovanega_vzdrzevanja, vn.datum_izvedbe, vn.status, vn.prioriteta,
       vn.rezervni_deli, vn.opombe,
       COALESCE(s.ime, ''), COALESCE(s.priimek, ''), COALESCE(s.telefon, ''), COALESCE(s.email, ''),
       COALESCE(o.tip_opreme, ''), COALESCE(o.znamka, ''), COALESCE(o.model, '')
FROM vzdrzevalni_nalogi vn
LEFT JOIN stranke s ON vn.stranka_id = s.id
LEFT JOIN oprema o ON vn.oprema_id = o.id`

func scanTaskDetails(rows *sql.Rows) ([]models.TaskWithDetails, error) {
	var tasks []models.TaskWithDetails
	for rows.Next() {
		var t models.TaskWithDetails
		if err := rows.Scan(
			&t.ID, &t.ClientID, &t.EquipmentID, &t.Title, &t.Description, &t.CreatedAt,
			&t.PlannedDate, &t.ExecutedDate, &t.Status, &t.Priority,
			&t.SpareParts, &t.Notes,
			&t.ClientFirstName, &t.ClientLastName, &t.ClientPhone, &t.ClientEmail,
			&t.EquipmentType, &t.EquipmentBrand, &t.EquipmentModel,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.TaskWithDetails, error) {
	q := taskDetailsSelect

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("vn.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("vn.stranka_id = $%d", argID))
		args = append(args, *filter.ClientID)
		argID++
	}
	if filter.EquipmentID != nil {
		conditions = append(conditions, fmt.Sprintf("vn.oprema_id = $%d", argID))
		args = append(args, *filter.EquipmentID)
		argID++
	}
	if filter.PlannedDate != nil {
		conditions = append(conditions, fmt.Sprintf("vn.datum_nacrtovanega_vzdrzevanja = $%d", argID))
		args = append(args, *filter.PlannedDate)
		argID++
	}

	if len(conditions) > 0 {
		q += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch filter.SortBy {
	case models.SortByMaintenance:
		q += " ORDER BY vn.datum_nacrtovanega_vzdrzevanja ASC"
	case models.SortByClient:
		q += " ORDER BY s.ime, s.priimek"
	case models.SortByEquipment:
		q += " ORDER BY o.tip_opreme, o.znamka"
	default:
		q += " ORDER BY vn.datum_ustvarjanja DESC"
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return scanTaskDetails(rows)
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	const q = `
		UPDATE vzdrzevalni_nalogi SET
			naslov=$1, opis=$2, datum_nacrtovanega_vzdrzevanja=$3, datum_izvedbe=$4,
			status=$5, prioriteta=$6, rezervni_deli=$7, opombe=$8
		WHERE id=$9`
	if _, err := r.db.ExecContext(ctx, q,
		task.Title, task.Description, task.PlannedDate, task.ExecutedDate,
		task.Status, task.Priority, task.SpareParts, task.Notes, task.ID,
	); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vzdrzevalni_nalogi WHERE id = $1`, id)
	return err
}

func (r *taskRepository) FindDueOn(ctx context.Context, day time.Time) ([]models.TaskWithDetails, error) {
	q := taskDetailsSelect + `
WHERE vn.datum_nacrtovanega_vzdrzevanja = $1 AND vn.status = $2`
	rows, err := r.db.QueryContext(ctx, q, day, models.StatusPlanned)
	if err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	defer rows.Close()
	return scanTaskDetails(rows)
}

func (r *taskRepository) CountByStatus(ctx context.Context) (map[models.TaskStatus]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM vzdrzevalni_nalogi GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	out := map[models.TaskStatus]int{}
	for rows.Next() {
		var s models.TaskStatus
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}

func (r *taskRepository) CountByPriority(ctx context.Context) (map[models.TaskPriority]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT prioriteta, COUNT(*) FROM vzdrzevalni_nalogi GROUP BY prioriteta`)
	if err != nil {
		return nil, fmt.Errorf("count by priority: %w", err)
	}
	defer rows.Close()

	out := map[models.TaskPriority]int{}
	for rows.Next() {
		var p models.TaskPriority
		var n int
		if err := rows.Scan(&p, &n); err != nil {
			return nil, err
		}
		out[p] = n
	}
	return out, rows.Err()
}

func (r *taskRepository) CountByClient(ctx context.Context) ([]models.ClientTaskCount, error) {
	const q = `
		SELECT s.id, s.ime, s.priimek, COUNT(vn.id)
		FROM stranke s
		LEFT JOIN vzdrzevalni_nalogi vn ON vn.stranka_id = s.id
		GROUP BY s.id, s.ime, s.priimek
		ORDER BY COUNT(vn.id) DESC, s.ime, s.priimek`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count by client: %w", err)
	}
	defer rows.Close()

	var out []models.ClientTaskCount
	for rows.Next() {
		var c models.ClientTaskCount
		if err := rows.Scan(&c.ClientID, &c.FirstName, &c.LastName, &c.TaskCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
