package drug

import (
	"fmt"
	"math"
)

// TherapeuticRange is the display-only concentration reference band for a
// drug (ng/mL): the analgesic window and the level above which respiratory
// depression risk rises. Chart annotation data, never dosing logic.
type TherapeuticRange struct {
	AnalgesiaMin    float64 `json:"analgesia_min"`
	AnalgesiaMax    float64 `json:"analgesia_max"`
	RespiratoryRisk float64 `json:"respiratory_risk"`
}

// Label renders the range the way clients annotate charts, e.g.
// "Analgesia (50-100) / Resp Risk > 200".
func (r TherapeuticRange) Label() string {
	return fmt.Sprintf("Analgesia (%g-%g) / Resp Risk > %g",
		r.AnalgesiaMin, r.AnalgesiaMax, r.RespiratoryRisk)
}

var rangesByDrug = map[ID]TherapeuticRange{
	Fentanyl:      {AnalgesiaMin: 1, AnalgesiaMax: 3, RespiratoryRisk: 5},
	Remifentanil:  {AnalgesiaMin: 1, AnalgesiaMax: 4, RespiratoryRisk: 8},
	Morphine:      {AnalgesiaMin: 10, AnalgesiaMax: 30, RespiratoryRisk: 60},
	Hydromorphone: {AnalgesiaMin: 4, AnalgesiaMax: 15, RespiratoryRisk: 30},
	Methadone:     {AnalgesiaMin: 50, AnalgesiaMax: 100, RespiratoryRisk: 200},
	Sufentanil:    {AnalgesiaMin: 0.1, AnalgesiaMax: 0.5, RespiratoryRisk: 1},
}

// ReferenceRange returns the therapeutic range for a drug.
func ReferenceRange(d ID) TherapeuticRange {
	return rangesByDrug[d]
}

// ClinicalDefaults are the starting doses a fresh scenario form is seeded
// with: a bolus, an infusion rate (per hour) and an infusion duration, in
// the drug's clinical unit.
type ClinicalDefaults struct {
	Bolus           float64  `json:"bolus"`
	Rate            float64  `json:"rate"`
	DurationMinutes float64  `json:"duration_minutes"`
	Unit            MassUnit `json:"unit"`
}

var defaultsByDrug = map[ID]ClinicalDefaults{
	Fentanyl:      {Bolus: 100, Rate: 50, DurationMinutes: 120, Unit: UnitMcg},
	Remifentanil:  {Bolus: 0, Rate: 500, DurationMinutes: 60, Unit: UnitMcg},
	Morphine:      {Bolus: 5, Rate: 2, DurationMinutes: 120, Unit: UnitMg},
	Hydromorphone: {Bolus: 1, Rate: 0.5, DurationMinutes: 120, Unit: UnitMg},
	Methadone:     {Bolus: 5, Rate: 2, DurationMinutes: 60, Unit: UnitMg},
	Sufentanil:    {Bolus: 10, Rate: 10, DurationMinutes: 120, Unit: UnitMcg},
}

// Defaults returns the seed dosing values for a drug.
func Defaults(d ID) ClinicalDefaults {
	return defaultsByDrug[d]
}

// Weight-based bolus multipliers, clinical unit per kg. Remifentanil has no
// default bolus and is deliberately absent.
var bolusPerKg = map[ID]float64{
	Fentanyl:      1.5,
	Morphine:      0.1,
	Hydromorphone: 0.015,
	Methadone:     0.07,
	Sufentanil:    0.15,
}

// EstimateBolus suggests a starting bolus in the drug's clinical unit for a
// body weight, rounded to one significant figure. Returns 0 for drugs with
// no default bolus. A form-fill heuristic, not validated dosing guidance.
func EstimateBolus(d ID, weightKg float64) float64 {
	perKg, ok := bolusPerKg[d]
	if !ok || weightKg <= 0 {
		return 0
	}
	return roundToOneSignificant(perKg * weightKg)
}

func roundToOneSignificant(x float64) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(math.Abs(x))))
	return math.Round(x/mag) * mag
}
