package pkmodel

import (
	"math"

	"github.com/opisim/opisim/internal/domain/drug"
	"github.com/opisim/opisim/internal/domain/patient"
)

// Resolve computes the parameter set for a (drug, model, patient) triple.
// Total over all inputs: an unusable weight or an unknown model falls back
// to the neutral set instead of failing, so downstream simulation always
// has finite parameters to work with.
func Resolve(d drug.ID, m drug.Model, p patient.Profile) Parameters {
	if !(p.Weight > 0) {
		return Neutral()
	}
	if d == drug.Remifentanil && m == drug.ModelMintoAdult {
		return clampV1(resolveMinto(p))
	}

	c, ok := coefficientsFor(d, m)
	if !ok {
		return Neutral()
	}
	r := p.Weight / 70
	flow := math.Pow(r, 0.75)
	out := Parameters{
		V1:  c.v1 * r,
		V2:  c.v2 * r,
		V3:  c.v3 * r,
		Cl:  c.cl * flow,
		Q2:  c.q2 * flow,
		Q3:  c.q3 * flow,
		Ke0: c.ke0,
	}
	if d == drug.Hydromorphone && m == drug.ModelJeleazcovAdult {
		out.Cl *= jeleazcovAgeFactor(p.Age)
	}
	return clampV1(out)
}

// jeleazcovAgeFactor scales hydromorphone clearance down past 67 years,
// floored at half the reference value.
func jeleazcovAgeFactor(age float64) float64 {
	return math.Max(0.5, 1-0.01*(age-67))
}

// resolveMinto is the remifentanil adult regression over age and lean body
// mass, centered on a 40-year-old with LBM 55.
func resolveMinto(p patient.Profile) Parameters {
	dAge := p.Age - 40
	dLBM := p.LeanBodyMass() - 55
	return Parameters{
		V1:  5.1 - 0.0201*dAge + 0.072*dLBM,
		V2:  9.82 - 0.0811*dAge + 0.108*dLBM,
		V3:  5.42,
		Cl:  2.6 - 0.0162*dAge + 0.0191*dLBM,
		Q2:  2.05 - 0.0301*dAge,
		Q3:  0.076 - 0.00113*dAge,
		Ke0: 0.595 - 0.007*dAge,
	}
}

// clampV1 enforces the central-volume floor: anything non-finite or at or
// below 0.1 L becomes 1.0 so concentrations stay computable.
func clampV1(p Parameters) Parameters {
	if math.IsNaN(p.V1) || math.IsInf(p.V1, 0) || p.V1 <= 0.1 {
		p.V1 = 1.0
	}
	return p
}
