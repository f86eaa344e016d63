package patient

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/growth-estimate", h.GetGrowthEstimate)
}

// GetGrowthEstimate returns population-average height/weight defaults for an
// age and gender. Clients use it to prefill patient forms.
func (h *Handler) GetGrowthEstimate(c echo.Context) error {
	ageParam := c.QueryParam("age")
	if ageParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "age is required")
	}
	age, err := strconv.ParseFloat(ageParam, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid age")
	}

	gender := GenderMale
	if g := c.QueryParam("gender"); g != "" {
		parsed, ok := ParseGender(g)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid gender")
		}
		gender = parsed
	}

	return c.JSON(http.StatusOK, EstimateGrowth(age, gender))
}
