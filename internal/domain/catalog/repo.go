package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a medication id does not resolve.
	ErrNotFound = errors.New("medication not found")
	// ErrValidation marks an invariant-violating medication on upsert.
	ErrValidation = errors.New("invalid medication")
)

type Repository interface {
	Create(ctx context.Context, m *Medication) error
	Update(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	List(ctx context.Context, limit, offset int) ([]*Medication, int, error)
	// ListAll returns the complete catalog without paging; the inventory
	// monitor scans every entry.
	ListAll(ctx context.Context) ([]*Medication, error)
}
