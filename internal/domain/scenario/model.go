// Package scenario persists named simulation setups so a dosing plan can be
// saved, listed and re-run later. The simulation core itself never touches
// this store.
package scenario

import (
	"time"

	"github.com/google/uuid"

	"github.com/opisim/opisim/internal/domain/dosing"
	"github.com/opisim/opisim/internal/domain/patient"
	"github.com/opisim/opisim/internal/domain/simulation"
)

// Scenario maps to the scenario table. Patient and Events are stored as
// JSONB snapshots of what the clinician entered. StartTime, when set, is the
// "HH:MM" wall-clock origin that clock-mode dose entries resolve against.
type Scenario struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Description     *string         `db:"description" json:"description,omitempty"`
	Drug            string          `db:"drug" json:"drug"`
	Model           string          `db:"model" json:"model,omitempty"`
	Patient         patient.Profile `db:"patient" json:"patient"`
	Events          []dosing.Dose   `db:"events" json:"events"`
	DurationMinutes float64         `db:"duration_minutes" json:"duration_minutes"`
	StartTime       *string         `db:"start_time" json:"start_time,omitempty"`
	CreatedBy       *string         `db:"created_by" json:"created_by,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// SimulationRequest rebuilds the run request captured by the scenario.
func (s *Scenario) SimulationRequest() simulation.Request {
	return simulation.Request{
		Patient:         s.Patient,
		Drug:            s.Drug,
		Model:           s.Model,
		Events:          s.Events,
		DurationMinutes: s.DurationMinutes,
	}
}

// resolvedEvents returns the dose list with clock-mode entries resolved
// against the scenario start time, when one is set.
func (s *Scenario) resolvedEvents() ([]dosing.Dose, error) {
	if s.StartTime == nil {
		return s.Events, nil
	}
	return dosing.ResolveClockTimes(s.Events, *s.StartTime)
}
