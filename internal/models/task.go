package models

import "time"

// TaskStatus defines the possible statuses for a maintenance task.
type TaskStatus string

const (
	StatusPlanned    TaskStatus = "nacrtovan"
	StatusInProgress TaskStatus = "v_teku"
	StatusDone       TaskStatus = "izveden"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "nizka"
	PriorityMedium TaskPriority = "srednja"
	PriorityHigh   TaskPriority = "visoka"
)

// Task represents one maintenance job (vzdrzevalni nalog).
type Task struct {
	ID           int64        `json:"id"`
	ClientID     int64        `json:"stranka_id"`
	EquipmentID  *int64       `json:"oprema_id,omitempty"`
	Title        string       `json:"naslov"`
	Description  string       `json:"opis"`
	CreatedAt    time.Time    `json:"datum_ustvarjanja"`
	PlannedDate  *time.Time   `json:"datum_nacrtovanega_vzdrzevanja,omitempty"`
	ExecutedDate *time.Time   `json:"datum_izvedbe,omitempty"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"prioriteta"`
	SpareParts   string       `json:"rezervni_deli"`
	Notes        string       `json:"opombe"`
}

// TaskWithDetails is a task row enriched with the joined client and
// equipment display fields returned by the list endpoint.
type TaskWithDetails struct {
	Task
	ClientFirstName string `json:"ime"`
	ClientLastName  string `json:"priimek"`
	ClientPhone     string `json:"telefon"`
	ClientEmail     string `json:"email"`
	EquipmentType   string `json:"tip_opreme"`
	EquipmentBrand  string `json:"znamka"`
	EquipmentModel  string `json:"model"`
}

// Task list sort keys accepted by the API.
const (
	SortByCreated     = "datum_ustvarjanja"
	SortByMaintenance = "datum_vzdrzevanja"
	SortByClient      = "stranka"
	SortByEquipment   = "oprema"
)

// TaskFilter defines the available parameters for filtering the task list.
// Filtering and sorting are applied server-side.
type TaskFilter struct {
	Status      *TaskStatus
	ClientID    *int64
	EquipmentID *int64
	PlannedDate *time.Time
	SortBy      string
}
