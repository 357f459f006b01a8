package models

// ClientTaskCount is one row of the per-client totals in the task report.
type ClientTaskCount struct {
	ClientID  int64  `json:"stranka_id"`
	FirstName string `json:"ime"`
	LastName  string `json:"priimek"`
	TaskCount int    `json:"stevilo_nalogov"`
}

// TaskReport aggregates the task table for the reports view.
type TaskReport struct {
	Total      int                  `json:"skupaj"`
	ByStatus   map[TaskStatus]int   `json:"po_statusu"`
	ByPriority map[TaskPriority]int `json:"po_prioriteti"`
	ByClient   []ClientTaskCount    `json:"po_strankah"`
}
