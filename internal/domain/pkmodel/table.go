package pkmodel

import "github.com/opisim/opisim/internal/domain/drug"

// coefficients is one row of the reference table: volumes in liters and
// clearances in L/min, normalized to a 70 kg adult. Rows scale to the
// patient with r = weight/70 on volumes and r^0.75 on clearances.
type coefficients struct {
	v1, v2, v3 float64
	cl, q2, q3 float64
	ke0        float64
}

type tableKey struct {
	drug  drug.ID
	model drug.Model
}

// Reference coefficients per published model. Remifentanil "Minto (Adult)"
// is absent: it resolves through an age/LBM regression instead of a fixed
// row. Methadone clearances are published in L/h and converted here.
var coefficientTable = map[tableKey]coefficients{
	{drug.Fentanyl, drug.ModelShaferAdult}:       {v1: 6.09, v2: 28.1, v3: 228.0, cl: 0.504, q2: 2.87, q3: 1.37, ke0: 0.147},
	{drug.Fentanyl, drug.ModelScottAdult}:        {v1: 12.7, v2: 46.0, v3: 157.0, cl: 0.711, q2: 4.74, q3: 2.29, ke0: 0.147},
	{drug.Fentanyl, drug.ModelGinsbergPediatric}: {v1: 18.9, v2: 36.4, v3: 120.0, cl: 1.64, q2: 2.80, q3: 1.40, ke0: 0.10},

	{drug.Remifentanil, drug.ModelEleveldAdult}:  {v1: 5.81, v2: 8.82, v3: 5.03, cl: 2.58, q2: 1.72, q3: 0.124, ke0: 1.09},
	{drug.Remifentanil, drug.ModelRigbyJonesPed}: {v1: 7.9, v2: 13.1, v3: 0, cl: 3.6, q2: 2.26, q3: 0, ke0: 0.71},

	{drug.Morphine, drug.ModelMaitreAdult}:       {v1: 12.2, v2: 32.7, v3: 143.0, cl: 1.12, q2: 1.86, q3: 0.84, ke0: 0.005},
	{drug.Morphine, drug.ModelMcFarlanPediatric}: {v1: 19.6, v2: 49.0, v3: 127.0, cl: 1.65, q2: 2.10, q3: 0.90, ke0: 0.008},

	{drug.Hydromorphone, drug.ModelJeleazcovAdult}:  {v1: 6.99, v2: 24.7, v3: 136.0, cl: 1.53, q2: 1.98, q3: 1.35, ke0: 0.02},
	{drug.Hydromorphone, drug.ModelBalyanPediatric}: {v1: 11.2, v2: 55.5, v3: 0, cl: 1.02, q2: 1.66, q3: 0, ke0: 0.02},
	{drug.Hydromorphone, drug.ModelStandardAdult}:   {v1: 14.1, v2: 58.2, v3: 229.0, cl: 1.66, q2: 1.90, q3: 1.20, ke0: 0.017},
	{drug.Hydromorphone, drug.ModelPediatricScaled}: {v1: 3.35, v2: 13.9, v3: 145.0, cl: 1.01, q2: 1.47, q3: 1.41, ke0: 0.02},

	{drug.Methadone, drug.ModelStandardAdult}: {v1: 21.5, v2: 75.1, v3: 484.0, cl: 9.45 / 60, q2: 325.0 / 60, q3: 136.0 / 60, ke0: 0.05},

	{drug.Sufentanil, drug.ModelGeptsAdult}:       {v1: 14.3, v2: 63.4, v3: 252.0, cl: 0.92, q2: 1.55, q3: 0.33, ke0: 0.112},
	{drug.Sufentanil, drug.ModelBaeAdult}:         {v1: 9.9, v2: 39.4, v3: 172.0, cl: 0.79, q2: 2.10, q3: 1.00, ke0: 0.12},
	{drug.Sufentanil, drug.ModelGreeleyPediatric}: {v1: 20.2, v2: 60.1, v3: 112.0, cl: 2.14, q2: 2.60, q3: 1.20, ke0: 0.16},
}

func coefficientsFor(d drug.ID, m drug.Model) (coefficients, bool) {
	c, ok := coefficientTable[tableKey{d, m}]
	return c, ok
}
