package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/carehome/emar/pkg/caldate"
)

// Medication maps to the medication table (the facility's drug catalog).
// Stock is a plain count in dispensing units; it is adjusted manually by the
// receiving process and never decremented by administration events.
type Medication struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Category     string       `db:"category" json:"category"`
	DoseAmount   string       `db:"dose_amount" json:"dose_amount"`
	Unit         string       `db:"unit" json:"unit"`
	Stock        int          `db:"stock" json:"stock"`
	MinStock     int          `db:"min_stock" json:"min_stock"`
	ExpiryDate   caldate.Date `db:"expiry_date" json:"expiry_date"`
	Manufacturer *string      `db:"manufacturer" json:"manufacturer,omitempty"`
	Note         *string      `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}
