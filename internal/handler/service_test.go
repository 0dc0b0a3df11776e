package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/myflycloudly/my-fly-cloudly/internal/repository"
)

func catalogRequest(t *testing.T, target string, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := fn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

// With no database the public catalog serves the built-in placeholder
// set instead of an error page.
func TestCatalogListFallsBackToPlaceholders(t *testing.T) {
	h := NewServiceHandler(repository.NewServiceRepo(nil))
	rec := catalogRequest(t, "/v1/services", h.List)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out []serviceResp
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("placeholder catalog has %d items, want 3", len(out))
	}
	wantNames := []string{"Two Days Pilot", "Flight Simulator", "Skydive Malaysia"}
	for i, name := range wantNames {
		if out[i].Name != name {
			t.Errorf("item %d name = %q, want %q", i, out[i].Name, name)
		}
		if !out[i].Active {
			t.Errorf("item %d should be active", i)
		}
	}
	if out[2].Price != 800 {
		t.Errorf("Skydive price = %v, want 800", out[2].Price)
	}
}

func TestCatalogFeaturedLimitsPlaceholders(t *testing.T) {
	h := NewServiceHandler(repository.NewServiceRepo(nil))
	rec := catalogRequest(t, "/v1/services/featured?limit=2", h.Featured)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out []serviceResp
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("featured returned %d items, want 2", len(out))
	}
}

// A single-item detail read has no placeholder to fall back to.
func TestCatalogGetUnavailable(t *testing.T) {
	h := NewServiceHandler(repository.NewServiceRepo(nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/services/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "An error occurred") {
		t.Errorf("body lacks canned message: %s", rec.Body.String())
	}
}
