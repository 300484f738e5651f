package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carehome/emar/internal/domain/catalog"
	"github.com/carehome/emar/internal/domain/resident"
	"github.com/carehome/emar/pkg/caldate"
)

type Service struct {
	schedules   Repository
	residents   resident.Repository
	medications catalog.Repository
}

func NewService(schedules Repository, residents resident.Repository, medications catalog.Repository) *Service {
	return &Service{
		schedules:   schedules,
		residents:   residents,
		medications: medications,
	}
}

func validate(s *Schedule) error {
	if len(s.Timings) == 0 {
		return fmt.Errorf("%w: at least one timing slot is required", ErrValidation)
	}
	seen := make(map[string]bool, len(s.Timings))
	for _, t := range s.Timings {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: empty timing slot label", ErrValidation)
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate timing slot %q", ErrValidation, t)
		}
		seen[t] = true
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if s.StartDate.After(s.EndDate) {
		return fmt.Errorf("%w: start_date %s is after end_date %s",
			ErrValidation, s.StartDate, s.EndDate)
	}
	return nil
}

// denormalize resolves the resident and medication references and snapshots
// their display names onto the schedule. Runs on every write, so an edit
// re-snapshots; rows written earlier are never touched.
func (s *Service) denormalize(ctx context.Context, sch *Schedule) error {
	res, err := s.residents.GetByID(ctx, sch.ResidentID)
	if err != nil {
		if errors.Is(err, resident.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownResident, sch.ResidentID)
		}
		return err
	}
	med, err := s.medications.GetByID(ctx, sch.MedicationID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownMedication, sch.MedicationID)
		}
		return err
	}

	sch.ResidentName = res.Name
	sch.MedicationName = med.Name
	if sch.Dose == "" {
		sch.Dose = strings.TrimSpace(med.DoseAmount + " " + med.Unit)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, sch *Schedule) error {
	if err := validate(sch); err != nil {
		return err
	}
	if err := s.denormalize(ctx, sch); err != nil {
		return err
	}
	return s.schedules.Create(ctx, sch)
}

func (s *Service) Update(ctx context.Context, sch *Schedule) error {
	if err := validate(sch); err != nil {
		return err
	}
	if err := s.denormalize(ctx, sch); err != nil {
		return err
	}
	return s.schedules.Update(ctx, sch)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	return s.schedules.GetByID(ctx, id)
}

// GetResolved returns the schedule together with display names resolved live
// from the directories. A dangling reference keeps the stored snapshot, so
// historical rows stay readable after a data correction.
func (s *Service) GetResolved(ctx context.Context, id uuid.UUID) (*Resolved, error) {
	sch, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved := &Resolved{
		Schedule:           *sch,
		LiveResidentName:   sch.ResidentName,
		LiveMedicationName: sch.MedicationName,
	}
	res, err := s.residents.GetByID(ctx, sch.ResidentID)
	switch {
	case err == nil:
		resolved.LiveResidentName = res.Name
	case !errors.Is(err, resident.ErrNotFound):
		return nil, err
	}

	med, err := s.medications.GetByID(ctx, sch.MedicationID)
	switch {
	case err == nil:
		resolved.LiveMedicationName = med.Name
	case !errors.Is(err, catalog.ErrNotFound):
		return nil, err
	}
	return resolved, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Schedule, int, error) {
	return s.schedules.List(ctx, limit, offset)
}

func (s *Service) ListActiveOn(ctx context.Context, d caldate.Date) ([]*Schedule, error) {
	return s.schedules.ListActiveOn(ctx, d)
}

// Delete removes a schedule. Supported for data correction only; schedules
// normally just age out of their date range.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.schedules.Delete(ctx, id)
}
