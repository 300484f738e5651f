package schedule

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carehome/emar/pkg/caldate"
)

var (
	// ErrNotFound is returned when a schedule id does not resolve.
	ErrNotFound = errors.New("schedule not found")
	// ErrValidation marks an invariant-violating schedule on create/update.
	ErrValidation = errors.New("invalid schedule")
	// ErrUnknownResident marks a dangling resident reference.
	ErrUnknownResident = errors.New("unknown resident")
	// ErrUnknownMedication marks a dangling medication reference.
	ErrUnknownMedication = errors.New("unknown medication")
	// ErrVersionConflict is returned when an update carries a stale version
	// stamp, i.e. another writer edited the schedule in between.
	ErrVersionConflict = errors.New("schedule version conflict")
)

type Repository interface {
	Create(ctx context.Context, s *Schedule) error
	// Update applies the edit only when s.Version matches the stored row,
	// bumping the version on success. A stale stamp yields ErrVersionConflict.
	Update(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*Schedule, error)
	List(ctx context.Context, limit, offset int) ([]*Schedule, int, error)
	// ListActiveOn returns schedules whose date range contains d.
	ListActiveOn(ctx context.Context, d caldate.Date) ([]*Schedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
