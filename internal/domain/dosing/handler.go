package dosing

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opisim/opisim/internal/domain/drug"
)

// Handler exposes rate conversion and timeline expansion over HTTP.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/rates/convert", h.ConvertRate)
	api.POST("/timelines/expand", h.ExpandTimeline)
}

// ConvertRateRequest carries one rate conversion.
type ConvertRateRequest struct {
	Rate     float64  `json:"rate"`
	Unit     RateUnit `json:"unit"`
	WeightKg float64  `json:"weight_kg"`
	Drug     string   `json:"drug"`
}

func (h *Handler) ConvertRate(c echo.Context) error {
	var req ConvertRateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	d, err := drug.Parse(req.Drug)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"rate": ConvertRate(req.Rate, req.Unit, req.WeightKg, d),
		"unit": CanonicalUnit(d),
	})
}

// ExpandTimelineRequest carries the source doses to canonicalize. StartTime,
// when set, resolves wall-clock dose entries against that "HH:MM" origin.
type ExpandTimelineRequest struct {
	Events         []Dose  `json:"events"`
	HorizonMinutes float64 `json:"horizon_minutes"`
	WeightKg       float64 `json:"weight_kg"`
	Drug           string  `json:"drug"`
	StartTime      string  `json:"start_time,omitempty"`
}

func (h *Handler) ExpandTimeline(c echo.Context) error {
	var req ExpandTimelineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	d, err := drug.Parse(req.Drug)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.HorizonMinutes < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "horizon_minutes must not be negative")
	}
	doses := req.Events
	if req.StartTime != "" {
		doses, err = ResolveClockTimes(doses, req.StartTime)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	for i, dose := range doses {
		if err := dose.Validate(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("event %d: %v", i, err))
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": BuildTimeline(doses, req.HorizonMinutes, req.WeightKg, d),
	})
}
