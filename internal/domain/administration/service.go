package administration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carehome/emar/internal/domain/schedule"
	"github.com/carehome/emar/pkg/caldate"
)

// TxRunner executes fn inside a single transactional boundary. The production
// wiring uses db.RunInTx against the pool; tests pass through.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	records   Repository
	schedules schedule.Repository
	runTx     TxRunner
}

func NewService(records Repository, schedules schedule.Repository, runTx TxRunner) *Service {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &Service{records: records, schedules: schedules, runTx: runTx}
}

// Record appends one administration event for the (schedule, date, timing)
// triple. The existence check and the insert share one transaction; the
// check alone cannot exclude a concurrent writer at read committed, so the
// insert relies on the partial unique index over administered rows and a
// losing racer gets ErrDuplicateAdministration from Create. On any error
// the ledger is left unchanged.
func (s *Service) Record(ctx context.Context, scheduleID uuid.UUID, d caldate.Date, timing, actor string, note *string) (*Record, error) {
	if actor == "" {
		return nil, fmt.Errorf("%w: administering actor is required", ErrValidation)
	}
	if d.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	var rec *Record
	err := s.runTx(ctx, func(ctx context.Context) error {
		sch, err := s.schedules.GetByID(ctx, scheduleID)
		if err != nil {
			if errors.Is(err, schedule.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrUnknownSchedule, scheduleID)
			}
			return err
		}
		if !sch.HasTiming(timing) {
			return fmt.Errorf("%w: %q is not a configured slot of schedule %s",
				ErrInvalidTiming, timing, scheduleID)
		}

		exists, err := s.records.Exists(ctx, scheduleID, d, timing)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: schedule %s, %s, %s",
				ErrDuplicateAdministration, scheduleID, d, timing)
		}

		rec = &Record{
			ScheduleID:     scheduleID,
			ResidentName:   sch.ResidentName,
			MedicationName: sch.MedicationName,
			Date:           d,
			Timing:         timing,
			Administered:   true,
			AdministeredBy: actor,
			AdministeredAt: time.Now(),
			Note:           note,
		}
		return s.records.Create(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// IsAdministered reports whether the triple already has an administered record.
func (s *Service) IsAdministered(ctx context.Context, scheduleID uuid.UUID, d caldate.Date, timing string) (bool, error) {
	return s.records.Exists(ctx, scheduleID, d, timing)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Record, int, error) {
	return s.records.List(ctx, limit, offset)
}

func (s *Service) ListForDate(ctx context.Context, d caldate.Date) ([]*Record, error) {
	return s.records.ListForDate(ctx, d)
}
