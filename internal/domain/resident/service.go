package resident

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	residents Repository
}

func NewService(residents Repository) *Service {
	return &Service{residents: residents}
}

func (s *Service) Create(ctx context.Context, r *Resident) error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return s.residents.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Resident, error) {
	return s.residents.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Resident, int, error) {
	return s.residents.List(ctx, limit, offset)
}
