package drug

// Model names a published PK parameter set. Model names are scoped to a
// drug; "Standard (Adult)" under hydromorphone and under methadone are
// different parameter sets.
type Model string

const (
	ModelShaferAdult       Model = "Shafer (Adult)"
	ModelScottAdult        Model = "Scott (Adult)"
	ModelGinsbergPediatric Model = "Ginsberg (Pediatric)"
	ModelMintoAdult        Model = "Minto (Adult)"
	ModelEleveldAdult      Model = "Eleveld (2017) Adult"
	ModelRigbyJonesPed     Model = "Rigby-Jones (Pediatric)"
	ModelMaitreAdult       Model = "Maitre (Adult)"
	ModelMcFarlanPediatric Model = "McFarlan (Pediatric)"
	ModelJeleazcovAdult    Model = "Jeleazcov (2014) Adult"
	ModelBalyanPediatric   Model = "Balyan (2020) Pediatric"
	ModelStandardAdult     Model = "Standard (Adult)"
	ModelPediatricScaled   Model = "Pediatric (Scaled)"
	ModelGeptsAdult        Model = "Gepts (Adult)"
	ModelBaeAdult          Model = "Bae (2020) Adult"
	ModelGreeleyPediatric  Model = "Greeley (Pediatric)"
)

var modelsByDrug = map[ID][]Model{
	Fentanyl:      {ModelShaferAdult, ModelScottAdult, ModelGinsbergPediatric},
	Remifentanil:  {ModelMintoAdult, ModelEleveldAdult, ModelRigbyJonesPed},
	Morphine:      {ModelMaitreAdult, ModelMcFarlanPediatric},
	Hydromorphone: {ModelJeleazcovAdult, ModelBalyanPediatric, ModelStandardAdult, ModelPediatricScaled},
	Methadone:     {ModelStandardAdult},
	Sufentanil:    {ModelGeptsAdult, ModelBaeAdult, ModelGreeleyPediatric},
}

// Models returns the fixed model list for a drug, adult models first.
func Models(d ID) []Model {
	models := modelsByDrug[d]
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// ValidModel reports whether m is a known model for drug d.
func ValidModel(d ID, m Model) bool {
	for _, known := range modelsByDrug[d] {
		if known == m {
			return true
		}
	}
	return false
}

type modelPair struct {
	adult     Model
	pediatric Model
}

var bestByDrug = map[ID]modelPair{
	Fentanyl:      {adult: ModelShaferAdult, pediatric: ModelGinsbergPediatric},
	Remifentanil:  {adult: ModelMintoAdult, pediatric: ModelRigbyJonesPed},
	Morphine:      {adult: ModelMaitreAdult, pediatric: ModelMcFarlanPediatric},
	Hydromorphone: {adult: ModelJeleazcovAdult, pediatric: ModelBalyanPediatric},
	Methadone:     {adult: ModelStandardAdult},
	Sufentanil:    {adult: ModelBaeAdult, pediatric: ModelGreeleyPediatric},
}

// BestModel picks the recommended model for a drug given the patient age:
// the pediatric model below age 12 where one exists, else the adult one.
func BestModel(d ID, age float64) Model {
	pair, ok := bestByDrug[d]
	if !ok {
		return ModelBaeAdult
	}
	if age < 12 && pair.pediatric != "" {
		return pair.pediatric
	}
	return pair.adult
}

// Covariate names a patient field a model consumes.
type Covariate string

const (
	CovariateAge    Covariate = "age"
	CovariateWeight Covariate = "weight"
	CovariateHeight Covariate = "height"
	CovariateGender Covariate = "gender"
)

type modelKey struct {
	drug  ID
	model Model
}

// Per-model covariate requirements. Informational only: they drive which
// patient form fields are active, not how resolution behaves. Unlisted
// pairs need weight alone.
var requirementsByModel = map[modelKey][]Covariate{
	{Fentanyl, ModelShaferAdult}:         {},
	{Remifentanil, ModelMintoAdult}:      {CovariateAge, CovariateWeight, CovariateHeight, CovariateGender},
	{Hydromorphone, ModelJeleazcovAdult}: {CovariateAge, CovariateWeight},
	{Methadone, ModelStandardAdult}:      {CovariateWeight},
}

// Requirements returns the covariates a model needs from the patient.
func Requirements(d ID, m Model) []Covariate {
	if req, ok := requirementsByModel[modelKey{d, m}]; ok {
		out := make([]Covariate, len(req))
		copy(out, req)
		return out
	}
	return []Covariate{CovariateWeight}
}
