package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	medications Repository
}

func NewService(medications Repository) *Service {
	return &Service{medications: medications}
}

func (s *Service) validate(m *Medication) error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if m.Stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative, got %d", ErrValidation, m.Stock)
	}
	if m.MinStock < 0 {
		return fmt.Errorf("%w: min_stock must be non-negative, got %d", ErrValidation, m.MinStock)
	}
	return nil
}

// Upsert creates the medication when it carries no id, otherwise updates the
// existing entry. Invariant violations are reported, never silently clamped.
func (s *Service) Upsert(ctx context.Context, m *Medication) error {
	if err := s.validate(m); err != nil {
		return err
	}
	if m.ID == uuid.Nil {
		return s.medications.Create(ctx, m)
	}
	return s.medications.Update(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.medications.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Medication, int, error) {
	return s.medications.List(ctx, limit, offset)
}
