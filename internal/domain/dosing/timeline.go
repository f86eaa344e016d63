package dosing

import (
	"sort"

	"github.com/opisim/opisim/internal/domain/drug"
)

// BuildTimeline canonicalizes source doses for the integrator. Infusion
// rates carrying a RateUnit are normalized through ConvertRate first, every
// infusion becomes a start/stop pair, and the result is sorted by time with
// ties keeping insertion order. Doses of an unknown type are skipped.
//
// The engine holds a single active infusion rate: a later start overwrites
// an earlier one, and a stop zeroes it regardless of which infusion it came
// from. Overlapping infusions are therefore not summed.
func BuildTimeline(doses []Dose, horizonMinutes, weightKg float64, d drug.ID) []Event {
	events := make([]Event, 0, len(doses)*2)
	for _, dose := range doses {
		switch dose.Type {
		case DoseBolus:
			events = append(events, Event{Kind: KindBolus, Time: dose.Time, Amount: dose.Amount})
		case DoseInfusion:
			norm := dose
			if norm.RateUnit != "" {
				norm.Rate = ConvertRate(norm.Rate, norm.RateUnit, weightKg, d)
			}
			start, stop := ExpandInfusion(norm, horizonMinutes)
			events = append(events, start, stop)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events
}
