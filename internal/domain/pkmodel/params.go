package pkmodel

// Parameters is a resolved three-compartment parameter set: central,
// rapid and slow peripheral volumes (L), metabolic and inter-compartment
// clearances (L/min), and the effect-site equilibration constant (1/min).
// V3 and Q3 are jointly zero for two-compartment models.
type Parameters struct {
	V1  float64 `json:"v1"`
	V2  float64 `json:"v2"`
	V3  float64 `json:"v3"`
	Cl  float64 `json:"cl"`
	Q2  float64 `json:"q2"`
	Q3  float64 `json:"q3"`
	Ke0 float64 `json:"ke0"`
}

// Neutral returns the fallback parameter set used when covariates are
// unusable (weight missing or non-positive) or the model is unknown.
// Every derived rate constant stays finite with these values.
func Neutral() Parameters {
	return Parameters{V1: 1, V2: 1, V3: 0, Cl: 1, Q2: 0, Q3: 0, Ke0: 0.1}
}
