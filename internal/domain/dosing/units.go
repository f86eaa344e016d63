// Package dosing normalizes clinician-entered dosing events into the
// canonical timeline the simulation engine integrates over. Rates are
// converted to the drug's display unit and infusions are rewritten as
// explicit start/stop pairs.
package dosing

import "github.com/opisim/opisim/internal/domain/drug"

// RateUnit names one of the supported infusion rate units.
type RateUnit string

const (
	UnitMcgPerHr    RateUnit = "mcg/hr"
	UnitMgPerHr     RateUnit = "mg/hr"
	UnitMcgPerKgMin RateUnit = "mcg/kg/min"
	UnitMcgPerMin   RateUnit = "mcg/min"
	UnitMcgPerKgHr  RateUnit = "mcg/kg/hr"
	UnitMgPerKgHr   RateUnit = "mg/kg/hr"
)

// CanonicalUnit is the display unit rates are normalized to: mg/hr for
// mg-dosed drugs, mcg/hr for the rest.
func CanonicalUnit(d drug.ID) RateUnit {
	if d.IsMgDosed() {
		return UnitMgPerHr
	}
	return UnitMcgPerHr
}

// ConvertRate converts rate from unit to the drug's canonical display unit.
// Weight-relative units use weightKg as entered. An unrecognized unit passes
// the raw rate through unchanged rather than failing the whole timeline.
func ConvertRate(rate float64, unit RateUnit, weightKg float64, d drug.ID) float64 {
	var mcgPerHr float64
	switch unit {
	case UnitMcgPerHr:
		mcgPerHr = rate
	case UnitMgPerHr:
		mcgPerHr = rate * 1000
	case UnitMcgPerKgMin:
		mcgPerHr = rate * weightKg * 60
	case UnitMcgPerMin:
		mcgPerHr = rate * 60
	case UnitMcgPerKgHr:
		mcgPerHr = rate * weightKg
	case UnitMgPerKgHr:
		mcgPerHr = rate * weightKg * 1000
	default:
		return rate
	}
	if d.IsMgDosed() {
		return mcgPerHr / 1000
	}
	return mcgPerHr
}
