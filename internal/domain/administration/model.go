package administration

import (
	"time"

	"github.com/google/uuid"

	"github.com/carehome/emar/pkg/caldate"
)

// Record maps to the administration_record table: one immutable event marking
// that a dose (schedule, date, timing slot) was actually given. Records are
// only ever appended; there is no update or delete surface.
//
// ResidentName and MedicationName are snapshots from the schedule at the
// moment of administration, so the ledger stays accurate as history even if
// the directories change afterwards.
type Record struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	ScheduleID     uuid.UUID    `db:"schedule_id" json:"schedule_id"`
	ResidentName   string       `db:"resident_name" json:"resident_name"`
	MedicationName string       `db:"medication_name" json:"medication_name"`
	Date           caldate.Date `db:"date" json:"date"`
	Timing         string       `db:"timing" json:"timing"`
	Administered   bool         `db:"administered" json:"administered"`
	AdministeredBy string       `db:"administered_by" json:"administered_by"`
	AdministeredAt time.Time    `db:"administered_at" json:"administered_at"`
	Note           *string      `db:"note" json:"note,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}
