package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/carehome/emar/pkg/caldate"
)

// Schedule maps to the medication_schedule table: a recurring order to give
// one medication to one resident at named times of day within a date range.
//
// ResidentName and MedicationName are denormalized snapshots taken when the
// schedule is written; later renames in the directories do not propagate
// here. Callers that need live names use the resolved read path.
type Schedule struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	ResidentID     uuid.UUID    `db:"resident_id" json:"resident_id"`
	ResidentName   string       `db:"resident_name" json:"resident_name"`
	MedicationID   uuid.UUID    `db:"medication_id" json:"medication_id"`
	MedicationName string       `db:"medication_name" json:"medication_name"`
	Dose           string       `db:"dose" json:"dose"`
	Timings        []string     `db:"timings" json:"timings"`
	StartDate      caldate.Date `db:"start_date" json:"start_date"`
	EndDate        caldate.Date `db:"end_date" json:"end_date"`
	Prescriber     *string      `db:"prescriber" json:"prescriber,omitempty"`
	Note           *string      `db:"note" json:"note,omitempty"`
	Version        int          `db:"version" json:"version"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

// ActiveOn reports whether d falls inside the schedule's inclusive date range.
func (s *Schedule) ActiveOn(d caldate.Date) bool {
	return d.Within(s.StartDate, s.EndDate)
}

// HasTiming reports whether the given timing-slot label is configured.
func (s *Schedule) HasTiming(timing string) bool {
	for _, t := range s.Timings {
		if t == timing {
			return true
		}
	}
	return false
}

// Resolved pairs the stored schedule with live display names resolved from
// the resident directory and the catalog at read time. When a reference no
// longer resolves, the live name falls back to the stored snapshot.
type Resolved struct {
	Schedule
	LiveResidentName   string `json:"live_resident_name"`
	LiveMedicationName string `json:"live_medication_name"`
}
