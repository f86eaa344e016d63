package patient

import "math"

// GrowthEstimate is a population-average height/weight guess for an age.
// These are form-fill defaults, not validated anthropometry.
type GrowthEstimate struct {
	HeightCm int `json:"height"`
	WeightKg int `json:"weight"`
}

// Reference points for the growth curve: values at birth, the 12-year
// mark shared by both sexes, and the fixed adult reference per sex.
const (
	growthTeenBaseHeight = 150.0
	growthTeenBaseWeight = 42.0
)

// EstimateGrowth returns an estimated height (cm) and weight (kg) for the
// given age in years. Children up to 12 follow a single linear curve; teens
// interpolate per sex toward capped ceilings; past 18 the fixed adult
// reference applies. Note the male adult reference weight (68) kicks in only
// past 18; at exactly 18 the teen cap (65) still holds.
func EstimateGrowth(age float64, gender Gender) GrowthEstimate {
	switch {
	case age < 0:
		return GrowthEstimate{HeightCm: 50, WeightKg: 3}
	case age == 0:
		return GrowthEstimate{HeightCm: 60, WeightKg: 6}
	case age <= 12:
		return GrowthEstimate{
			HeightCm: roundInt(75 + (age-1)*6.8),
			WeightKg: roundInt(9 + (age-1)*3.0),
		}
	case age <= 18:
		years := age - 12
		if gender == GenderFemale {
			return GrowthEstimate{
				HeightCm: roundInt(math.Min(158, growthTeenBaseHeight+years*1.4)),
				WeightKg: roundInt(math.Min(53, growthTeenBaseWeight+years*1.9)),
			}
		}
		return GrowthEstimate{
			HeightCm: roundInt(math.Min(171, growthTeenBaseHeight+years*3.5)),
			WeightKg: roundInt(math.Min(65, growthTeenBaseWeight+years*4.0)),
		}
	default:
		if gender == GenderFemale {
			return GrowthEstimate{HeightCm: 158, WeightKg: 53}
		}
		return GrowthEstimate{HeightCm: 171, WeightKg: 68}
	}
}

func roundInt(x float64) int {
	return int(math.Round(x))
}
