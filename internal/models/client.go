package models

import "time"

// Client represents a customer of the service company.
// Wire field names follow the historical Slovenian API (stranke).
type Client struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"ime"`
	LastName  string    `json:"priimek"`
	Address   string    `json:"naslov"`
	Phone     string    `json:"telefon"`
	Email     string    `json:"email"`
	Notes     string    `json:"opombe"`
	CreatedAt time.Time `json:"datum_dodajanja"`
}
