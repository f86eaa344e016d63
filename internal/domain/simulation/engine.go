// Package simulation integrates predicted plasma and effect-site
// concentration curves from resolved pharmacokinetic parameters and a
// canonical dosing timeline. The core is a pure function: no I/O, no shared
// state, safe to run in parallel.
package simulation

import (
	"math"

	"github.com/opisim/opisim/internal/domain/dosing"
	"github.com/opisim/opisim/internal/domain/drug"
	"github.com/opisim/opisim/internal/domain/pkmodel"
)

// dt is the fixed Euler step, one sixth of a minute.
const dt = 1.0 / 6.0

// stepsPerSample spaces emitted samples one simulated minute apart.
const stepsPerSample = 6

// Sample is one per-minute point of the predicted curves. Cp is the plasma
// concentration and Ce the effect-site concentration, both in mcg/L
// (numerically equal to ng/mL) for every drug.
type Sample struct {
	Time int     `json:"time"`
	Cp   float64 `json:"cp"`
	Ce   float64 `json:"ce"`
}

// Simulate runs a three-compartment mammillary model with a first-order
// effect site over the event timeline using explicit Euler integration.
// Events must be sorted by time; each is applied once its time falls within
// the current step. Compartment amounts are tracked in mcg regardless of the
// drug's display unit. Samples are read before the state update, so a bolus
// at t=0 shows in the first sample while the effect site still reads zero.
//
// A non-positive V1 or a negative duration yields no series. Non-finite
// state self-corrects to zero each step instead of propagating.
func Simulate(events []dosing.Event, params pkmodel.Parameters, durationMinutes float64, d drug.ID) []Sample {
	if !(params.V1 > 0) || durationMinutes < 0 {
		return nil
	}

	k10 := params.Cl / params.V1
	k12 := params.Q2 / params.V1
	k21 := params.Q2 / params.V2
	var k13, k31 float64
	if params.V3 > 0 {
		k13 = params.Q3 / params.V1
		k31 = params.Q3 / params.V3
	}

	scale := d.ScaleFactor()
	steps := int(math.Floor(durationMinutes/dt)) + 1
	samples := make([]Sample, 0, steps/stepsPerSample+1)

	var x1, x2, x3, xe, rate float64
	next := 0
	for i := 0; i < steps; i++ {
		t := float64(i) * dt

		for next < len(events) && events[next].Time <= t {
			ev := events[next]
			switch ev.Kind {
			case dosing.KindBolus:
				x1 += ev.Amount * scale
			case dosing.KindInfusionStart:
				rate = ev.Rate * scale / 60
			case dosing.KindInfusionStop:
				rate = 0
			}
			next++
		}

		cp := x1 / params.V1

		if i%stepsPerSample == 0 {
			samples = append(samples, Sample{
				Time: int(math.Round(t)),
				Cp:   round2(finiteOrZero(cp)),
				Ce:   round2(finiteOrZero(xe)),
			})
		}

		dx1 := (rate - (k10+k12+k13)*x1 + k21*x2 + k31*x3) * dt
		dx2 := (k12*x1 - k21*x2) * dt
		dx3 := (k13*x1 - k31*x3) * dt
		dxe := params.Ke0 * (cp - xe) * dt

		x1 = finiteOrZero(x1 + dx1)
		x2 = finiteOrZero(x2 + dx2)
		x3 = finiteOrZero(x3 + dx3)
		xe = finiteOrZero(xe + dxe)
	}
	return samples
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
