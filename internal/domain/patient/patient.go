package patient

import (
	"math"
	"strings"
)

// Gender enumerates the sexes recognized by the PK covariate models.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender maps a case-insensitive gender string to its enum value.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, true
	case "female", "f":
		return GenderFemale, true
	}
	return "", false
}

// Profile holds the patient covariates consumed by parameter resolution and
// the growth heuristics. Age is in years (0 means infant), weight in kg,
// height in cm. The resolver reads it; it never mutates it.
type Profile struct {
	Age    float64 `json:"age"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Gender Gender  `json:"gender"`
}

// LeanBodyMass computes lean body mass (kg) with the James equation,
// height in cm. The equation degenerates for extreme inputs (very low
// height, zero weight); in that case the raw body weight is returned so
// downstream regressions stay finite.
func (p Profile) LeanBodyMass() float64 {
	if p.Weight <= 0 || p.Height <= 0 {
		return p.Weight
	}
	ratio := p.Weight / p.Height
	var lbm float64
	if p.Gender == GenderFemale {
		lbm = 1.07*p.Weight - 148*ratio*ratio
	} else {
		lbm = 1.1*p.Weight - 128*ratio*ratio
	}
	if math.IsNaN(lbm) || math.IsInf(lbm, 0) || lbm <= 0 {
		return p.Weight
	}
	return lbm
}
