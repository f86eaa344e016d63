package dosing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestConvertRateHandler(t *testing.T) {
	h := NewHandler()
	body := `{"rate":2,"unit":"mcg/kg/min","weight_kg":10,"drug":"Fentanyl"}`
	c, rec := postJSON(t, "/rates/convert", body)
	if err := h.ConvertRate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out struct {
		Rate float64 `json:"rate"`
		Unit string  `json:"unit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Rate != 1200 {
		t.Errorf("expected rate 1200, got %g", out.Rate)
	}
	if out.Unit != "mcg/hr" {
		t.Errorf("expected unit mcg/hr, got %q", out.Unit)
	}
}

func TestConvertRateHandlerUnknownDrug(t *testing.T) {
	h := NewHandler()
	c, _ := postJSON(t, "/rates/convert", `{"rate":1,"unit":"mg/hr","drug":"Oxycodone"}`)
	err := h.ConvertRate(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestExpandTimelineHandler(t *testing.T) {
	h := NewHandler()
	body := `{
		"events": [
			{"type":"bolus","time":0,"amount":100},
			{"type":"infusion","time":10,"rate":50,"indefinite":true}
		],
		"horizon_minutes": 120,
		"weight_kg": 70,
		"drug": "Fentanyl"
	}`
	c, rec := postJSON(t, "/timelines/expand", body)
	if err := h.ExpandTimeline(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out struct {
		Events []Event `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(out.Events))
	}
	last := out.Events[2]
	if last.Kind != KindInfusionStop || last.Time != 180 {
		t.Errorf("expected indefinite stop 60 past the horizon, got %+v", last)
	}
}

func TestExpandTimelineHandlerClockMode(t *testing.T) {
	h := NewHandler()
	body := `{
		"events": [{"type":"bolus","clock":"09:00","amount":100}],
		"horizon_minutes": 240,
		"drug": "Fentanyl",
		"start_time": "08:00"
	}`
	c, rec := postJSON(t, "/timelines/expand", body)
	if err := h.ExpandTimeline(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out struct {
		Events []Event `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Events) != 1 || out.Events[0].Time != 60 {
		t.Errorf("expected bolus resolved to minute 60, got %+v", out.Events)
	}
}

func TestExpandTimelineHandlerRejectsBadDose(t *testing.T) {
	h := NewHandler()
	body := `{"events":[{"type":"bolus","time":-5,"amount":100}],"horizon_minutes":120,"drug":"Fentanyl"}`
	c, _ := postJSON(t, "/timelines/expand", body)
	err := h.ExpandTimeline(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}
