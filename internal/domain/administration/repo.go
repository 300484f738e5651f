package administration

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carehome/emar/pkg/caldate"
)

var (
	// ErrUnknownSchedule marks an administer call against a schedule id that
	// does not resolve.
	ErrUnknownSchedule = errors.New("unknown schedule")
	// ErrInvalidTiming marks a timing label that is not among the schedule's
	// configured slots.
	ErrInvalidTiming = errors.New("invalid timing slot")
	// ErrDuplicateAdministration is returned when the (schedule, date, timing)
	// triple is already marked administered. The service checks first for a
	// clean error message; the partial unique index on administered rows is
	// the backstop that makes the rule hold under concurrent writers.
	ErrDuplicateAdministration = errors.New("dose already administered")
	// ErrValidation marks a malformed administer request.
	ErrValidation = errors.New("invalid administration request")
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	List(ctx context.Context, limit, offset int) ([]*Record, int, error)
	ListForDate(ctx context.Context, d caldate.Date) ([]*Record, error)
	// Exists reports whether an administered record matches the triple.
	Exists(ctx context.Context, scheduleID uuid.UUID, d caldate.Date, timing string) (bool, error)
}
