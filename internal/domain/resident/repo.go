package resident

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a resident id does not resolve.
	ErrNotFound = errors.New("resident not found")
	// ErrValidation marks a resident that fails the directory's invariants.
	ErrValidation = errors.New("invalid resident")
)

type Repository interface {
	Create(ctx context.Context, r *Resident) error
	GetByID(ctx context.Context, id uuid.UUID) (*Resident, error)
	List(ctx context.Context, limit, offset int) ([]*Resident, int, error)
}
