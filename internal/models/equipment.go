package models

import "time"

// Equipment is a device owned by a client (oprema).
type Equipment struct {
	ID           int64      `json:"id"`
	ClientID     int64      `json:"stranka_id"`
	Type         string     `json:"tip_opreme"`
	Brand        string     `json:"znamka"`
	Model        string     `json:"model"`
	SerialNumber string     `json:"serijska_stevilka"`
	PurchaseDate *time.Time `json:"datum_nakupa,omitempty"`
	WarrantyTo   *time.Time `json:"garancija_do,omitempty"`
	Notes        string     `json:"opombe"`
}

// EquipmentWithOwner carries the joined client display fields used by list views.
type EquipmentWithOwner struct {
	Equipment
	OwnerFirstName string `json:"ime"`
	OwnerLastName  string `json:"priimek"`
}
