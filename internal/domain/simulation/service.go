package simulation

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/opisim/opisim/internal/domain/dosing"
	"github.com/opisim/opisim/internal/domain/drug"
	"github.com/opisim/opisim/internal/domain/patient"
	"github.com/opisim/opisim/internal/domain/pkmodel"
)

// DefaultMaxMinutes caps the simulation horizon when config does not.
const DefaultMaxMinutes = 2880

// Request describes one simulation run.
type Request struct {
	Patient         patient.Profile `json:"patient"`
	Drug            string          `json:"drug"`
	Model           string          `json:"model,omitempty"`
	Events          []dosing.Dose   `json:"events"`
	DurationMinutes float64         `json:"duration_minutes"`
}

// Result carries the resolved parameters alongside the sampled curves.
type Result struct {
	Drug       drug.ID            `json:"drug"`
	Model      drug.Model         `json:"model"`
	Parameters pkmodel.Parameters `json:"parameters"`
	Samples    []Sample           `json:"samples"`
}

// RunRecorder observes completed engine runs, labeled by drug and model.
type RunRecorder interface {
	RecordRun(drug, model string)
}

// Service validates requests and drives the engine.
type Service struct {
	maxMinutes float64
	recorder   RunRecorder
}

func NewService(maxMinutes float64) *Service {
	if maxMinutes <= 0 {
		maxMinutes = DefaultMaxMinutes
	}
	return &Service{maxMinutes: maxMinutes}
}

func (s *Service) SetRunRecorder(r RunRecorder) { s.recorder = r }

func (s *Service) recordRun(d drug.ID, m drug.Model) {
	if s.recorder != nil {
		s.recorder.RecordRun(string(d), string(m))
	}
}

func (s *Service) validate(req Request) (drug.ID, error) {
	d, err := drug.Parse(req.Drug)
	if err != nil {
		return "", err
	}
	if req.DurationMinutes < 1 || req.DurationMinutes > s.maxMinutes {
		return "", fmt.Errorf("duration must be between 1 and %g minutes", s.maxMinutes)
	}
	if math.IsNaN(req.Patient.Weight) || math.IsInf(req.Patient.Weight, 0) {
		return "", fmt.Errorf("patient weight must be finite")
	}
	for i, dose := range req.Events {
		if err := dose.Validate(); err != nil {
			return "", fmt.Errorf("event %d: %w", i, err)
		}
	}
	return d, nil
}

// Run resolves parameters for the requested model, defaulting to the drug's
// best model for the patient's age, then canonicalizes the timeline and
// simulates over it.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	d, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	m := drug.Model(req.Model)
	if req.Model == "" {
		m = drug.BestModel(d, req.Patient.Age)
	} else if !drug.ValidModel(d, m) {
		return nil, fmt.Errorf("unknown model %q for drug %s", req.Model, d)
	}
	events := dosing.BuildTimeline(req.Events, req.DurationMinutes, req.Patient.Weight, d)
	params := pkmodel.Resolve(d, m, req.Patient)
	result := &Result{
		Drug:       d,
		Model:      m,
		Parameters: params,
		Samples:    Simulate(events, params, req.DurationMinutes, d),
	}
	s.recordRun(d, m)
	return result, nil
}

// Compare runs every model of the drug over the same patient and timeline,
// one goroutine per model. The engine is pure, so the runs share the event
// slice safely; results keep the catalog order. Any Model set on the request
// is ignored. The fan-out is small: no drug carries more than four models.
func (s *Service) Compare(ctx context.Context, req Request) ([]*Result, error) {
	d, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	models := drug.Models(d)
	events := dosing.BuildTimeline(req.Events, req.DurationMinutes, req.Patient.Weight, d)

	results := make([]*Result, len(models))
	var wg sync.WaitGroup
	for i, m := range models {
		wg.Add(1)
		go func(i int, m drug.Model) {
			defer wg.Done()
			params := pkmodel.Resolve(d, m, req.Patient)
			results[i] = &Result{
				Drug:       d,
				Model:      m,
				Parameters: params,
				Samples:    Simulate(events, params, req.DurationMinutes, d),
			}
		}(i, m)
	}
	wg.Wait()
	for _, m := range models {
		s.recordRun(d, m)
	}
	return results, nil
}
