package resident

import (
	"time"

	"github.com/google/uuid"
)

// Resident maps to the resident table. The facility's resident directory is
// deliberately thin: the medication subsystem only needs an identity, a
// display name and a bed number for pickers and denormalization.
type Resident struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	BedNumber string    `db:"bed_number" json:"bed_number"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
