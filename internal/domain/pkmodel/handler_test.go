package pkmodel

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/pk/parameters", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestResolveParameters_Success(t *testing.T) {
	h := NewHandler()
	body := `{"drug":"Methadone","model":"Standard (Adult)","patient":{"age":40,"weight":70,"height":170,"gender":"male"}}`
	c, rec := postJSON(t, body)
	if err := h.ResolveParameters(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var out struct {
		Model      string     `json:"model"`
		Parameters Parameters `json:"parameters"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Parameters.V1 != 21.5 {
		t.Errorf("expected V1 21.5, got %g", out.Parameters.V1)
	}
}

func TestResolveParameters_DefaultsModelByAge(t *testing.T) {
	h := NewHandler()
	body := `{"drug":"Fentanyl","patient":{"age":5,"weight":20}}`
	c, rec := postJSON(t, body)
	if err := h.ResolveParameters(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out struct {
		Model string `json:"model"`
	}
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Model != "Ginsberg (Pediatric)" {
		t.Errorf("expected pediatric model for age 5, got %q", out.Model)
	}
}

func TestResolveParameters_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown drug", `{"drug":"Oxycodone","patient":{"weight":70}}`},
		{"unknown model", `{"drug":"Fentanyl","model":"Minto (Adult)","patient":{"weight":70}}`},
		{"malformed json", `{"drug":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler()
			c, _ := postJSON(t, tt.body)
			err := h.ResolveParameters(c)
			if err == nil {
				t.Fatal("expected error")
			}
			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected echo.HTTPError, got %T", err)
			}
			if httpErr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", httpErr.Code)
			}
		})
	}
}
