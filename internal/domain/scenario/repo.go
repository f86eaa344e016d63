package scenario

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no scenario matches the lookup.
var ErrNotFound = errors.New("scenario not found")

type ScenarioRepository interface {
	Create(ctx context.Context, s *Scenario) error
	GetByID(ctx context.Context, id uuid.UUID) (*Scenario, error)
	Update(ctx context.Context, s *Scenario) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, name string, limit, offset int) ([]*Scenario, int, error)
}
