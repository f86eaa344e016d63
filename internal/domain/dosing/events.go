package dosing

import (
	"fmt"

	"github.com/opisim/opisim/pkg/cliniclock"
)

// DoseType distinguishes the two source event families a clinician enters.
type DoseType string

const (
	DoseBolus    DoseType = "bolus"
	DoseInfusion DoseType = "infusion"
)

// Dose is a source dosing event before canonicalization. Boluses carry
// Amount; infusions carry Rate (optionally in RateUnit) plus either a
// DurationMinutes or the Indefinite flag. Clock, when set, is a wall-clock
// "HH:MM" entry that overrides Time once resolved against a start time.
type Dose struct {
	Type            DoseType `json:"type"`
	Time            float64  `json:"time"`
	Clock           string   `json:"clock,omitempty"`
	Amount          float64  `json:"amount,omitempty"`
	Rate            float64  `json:"rate,omitempty"`
	RateUnit        RateUnit `json:"rate_unit,omitempty"`
	DurationMinutes float64  `json:"duration_minutes,omitempty"`
	Indefinite      bool     `json:"indefinite,omitempty"`
}

// Validate rejects doses the timeline cannot place.
func (d Dose) Validate() error {
	switch d.Type {
	case DoseBolus:
		if d.Amount < 0 {
			return fmt.Errorf("bolus amount must not be negative")
		}
	case DoseInfusion:
		if d.Rate < 0 {
			return fmt.Errorf("infusion rate must not be negative")
		}
		if !d.Indefinite && d.DurationMinutes < 0 {
			return fmt.Errorf("infusion duration must not be negative")
		}
	default:
		return fmt.Errorf("unknown dose type: %s", d.Type)
	}
	if d.Time < 0 {
		return fmt.Errorf("dose time must not be negative")
	}
	return nil
}

// Kind tags one canonical timeline event.
type Kind string

const (
	KindBolus         Kind = "bolus"
	KindInfusionStart Kind = "infusion_start"
	KindInfusionStop  Kind = "infusion_stop"
)

// Event is a canonical dosing event on the integration timeline. Amount is
// set for boluses, Rate for infusion starts; stops carry neither.
type Event struct {
	Kind   Kind    `json:"kind"`
	Time   float64 `json:"time"`
	Amount float64 `json:"amount,omitempty"`
	Rate   float64 `json:"rate,omitempty"`
}

// ResolveClockTimes returns a copy of doses with wall-clock entries turned
// into minute offsets from start. Doses without a Clock keep their Time.
func ResolveClockTimes(doses []Dose, start string) ([]Dose, error) {
	out := make([]Dose, len(doses))
	copy(out, doses)
	for i := range out {
		if out[i].Clock == "" {
			continue
		}
		m, err := cliniclock.ToMinutes(out[i].Clock, start)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out[i].Time = float64(m)
	}
	return out, nil
}

// ExpandInfusion rewrites an infusion dose as a start/stop pair. An
// indefinite infusion materializes with a duration reaching 60 minutes past
// horizonMinutes; the stop time is fixed here and does not move if the
// horizon later grows.
func ExpandInfusion(d Dose, horizonMinutes float64) (Event, Event) {
	duration := d.DurationMinutes
	if d.Indefinite {
		duration = horizonMinutes - d.Time + 60
	}
	start := Event{Kind: KindInfusionStart, Time: d.Time, Rate: d.Rate}
	stop := Event{Kind: KindInfusionStop, Time: d.Time + duration}
	return start, stop
}
