package drug

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Info is the formulary entry served to clients: unit class, reference
// range, seed doses and the model catalog for one drug.
type Info struct {
	ID               ID               `json:"id"`
	Unit             MassUnit         `json:"unit"`
	TherapeuticRange TherapeuticRange `json:"therapeutic_range"`
	RangeLabel       string           `json:"range_label"`
	ClinicalDefaults ClinicalDefaults `json:"clinical_defaults"`
	Models           []ModelInfo      `json:"models"`
}

// ModelInfo pairs a model name with the covariates it needs.
type ModelInfo struct {
	Name         Model       `json:"name"`
	Requirements []Covariate `json:"requirements"`
}

// Describe assembles the formulary entry for a drug.
func Describe(d ID) Info {
	models := Models(d)
	infos := make([]ModelInfo, len(models))
	for i, m := range models {
		infos[i] = ModelInfo{Name: m, Requirements: Requirements(d, m)}
	}
	r := ReferenceRange(d)
	return Info{
		ID:               d,
		Unit:             d.Unit(),
		TherapeuticRange: r,
		RangeLabel:       r.Label(),
		ClinicalDefaults: Defaults(d),
		Models:           infos,
	}
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/drugs", h.ListDrugs)
	api.GET("/drugs/:drug", h.GetDrug)
	api.GET("/drugs/:drug/models", h.ListModels)
	api.GET("/drugs/:drug/models/best", h.GetBestModel)
	api.GET("/drugs/:drug/bolus-estimate", h.GetBolusEstimate)
}

func (h *Handler) ListDrugs(c echo.Context) error {
	drugs := All()
	out := make([]Info, len(drugs))
	for i, d := range drugs {
		out[i] = Describe(d)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetDrug(c echo.Context) error {
	d, err := Parse(c.Param("drug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, Describe(d))
}

func (h *Handler) ListModels(c echo.Context) error {
	d, err := Parse(c.Param("drug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	models := Models(d)
	out := make([]ModelInfo, len(models))
	for i, m := range models {
		out[i] = ModelInfo{Name: m, Requirements: Requirements(d, m)}
	}
	return c.JSON(http.StatusOK, out)
}

// GetBestModel recommends a model for the drug given the patient age.
func (h *Handler) GetBestModel(c echo.Context) error {
	d, err := Parse(c.Param("drug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	age, err := strconv.ParseFloat(c.QueryParam("age"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid age")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"drug":  d,
		"age":   age,
		"model": BestModel(d, age),
	})
}

// GetBolusEstimate suggests a weight-based starting bolus.
func (h *Handler) GetBolusEstimate(c echo.Context) error {
	d, err := Parse(c.Param("drug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	weight, err := strconv.ParseFloat(c.QueryParam("weight"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid weight")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"drug":   d,
		"amount": EstimateBolus(d, weight),
		"unit":   d.Unit(),
	})
}
