package scenario

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/opisim/opisim/internal/domain/drug"
	"github.com/opisim/opisim/internal/domain/simulation"
)

// Runner executes a simulation request. Satisfied by simulation.Service.
type Runner interface {
	Run(ctx context.Context, req simulation.Request) (*simulation.Result, error)
}

type Service struct {
	scenarios ScenarioRepository
	runner    Runner
}

func NewService(repo ScenarioRepository, runner Runner) *Service {
	return &Service{scenarios: repo, runner: runner}
}

func (s *Service) validate(sc *Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	d, err := drug.Parse(sc.Drug)
	if err != nil {
		return err
	}
	if sc.Model != "" && !drug.ValidModel(d, drug.Model(sc.Model)) {
		return fmt.Errorf("unknown model %q for drug %s", sc.Model, d)
	}
	if sc.DurationMinutes < 1 {
		return fmt.Errorf("duration_minutes must be at least 1")
	}
	doses, err := sc.resolvedEvents()
	if err != nil {
		return err
	}
	for i, dose := range doses {
		if err := dose.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

func (s *Service) CreateScenario(ctx context.Context, sc *Scenario) error {
	if err := s.validate(sc); err != nil {
		return err
	}
	return s.scenarios.Create(ctx, sc)
}

func (s *Service) GetScenario(ctx context.Context, id uuid.UUID) (*Scenario, error) {
	return s.scenarios.GetByID(ctx, id)
}

func (s *Service) UpdateScenario(ctx context.Context, sc *Scenario) error {
	if err := s.validate(sc); err != nil {
		return err
	}
	return s.scenarios.Update(ctx, sc)
}

func (s *Service) DeleteScenario(ctx context.Context, id uuid.UUID) error {
	return s.scenarios.Delete(ctx, id)
}

func (s *Service) ListScenarios(ctx context.Context, name string, limit, offset int) ([]*Scenario, int, error) {
	return s.scenarios.List(ctx, name, limit, offset)
}

// RunScenario loads a stored scenario and simulates it. Clock-mode dose
// entries resolve against the scenario start time first; the horizon cap and
// model defaulting are the runner's business.
func (s *Service) RunScenario(ctx context.Context, id uuid.UUID) (*simulation.Result, error) {
	sc, err := s.scenarios.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req := sc.SimulationRequest()
	req.Events, err = sc.resolvedEvents()
	if err != nil {
		return nil, err
	}
	return s.runner.Run(ctx, req)
}
