package pkmodel

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opisim/opisim/internal/domain/drug"
	"github.com/opisim/opisim/internal/domain/patient"
)

// ResolveRequest is the body for POST /pk/parameters. Model may be empty,
// in which case the age-recommended model is used.
type ResolveRequest struct {
	Drug    string          `json:"drug"`
	Model   string          `json:"model,omitempty"`
	Patient patient.Profile `json:"patient"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/pk/parameters", h.ResolveParameters)
}

func (h *Handler) ResolveParameters(c echo.Context) error {
	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := drug.Parse(req.Drug)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m := drug.Model(req.Model)
	if req.Model == "" {
		m = drug.BestModel(d, req.Patient.Age)
	} else if !drug.ValidModel(d, m) {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("unknown model %q for drug %s", req.Model, d))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"drug":       d,
		"model":      m,
		"parameters": Resolve(d, m, req.Patient),
	})
}
