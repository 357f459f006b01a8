package models

import "time"

// Image is a photo attached to a maintenance task (slika).
// Path is relative to the uploads root and served statically.
type Image struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"nalog_id"`
	FileName  string    `json:"ime_datoteke"`
	Path      string    `json:"pot"`
	CreatedAt time.Time `json:"datum_dodajanja"`
}
