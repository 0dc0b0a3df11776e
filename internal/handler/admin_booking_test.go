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

func adminContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminListRejectsUnknownStatus(t *testing.T) {
	h := NewAdminBookingHandler(repository.NewBookingRepo(nil))
	c, rec := adminContext(t, http.MethodGet, "/v1/admin/bookings?status=cancelled", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAdminListUnavailable(t *testing.T) {
	h := NewAdminBookingHandler(repository.NewBookingRepo(nil))
	c, rec := adminContext(t, http.MethodGet, "/v1/admin/bookings?status=pending", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want empty array", got)
	}
}

func TestDecideValidation(t *testing.T) {
	h := NewAdminBookingHandler(repository.NewBookingRepo(nil))
	for name, body := range map[string]string{
		"pending not a decision": `{"status":"pending"}`,
		"unknown status":         `{"status":"maybe"}`,
		"uppercase":              `{"status":"APPROVED"}`,
	} {
		c, rec := adminContext(t, http.MethodPatch, "/", body)
		c.SetPath("/v1/admin/bookings/:id/status")
		c.SetParamNames("id")
		c.SetParamValues("1")
		if err := h.Decide(c); err != nil {
			t.Fatalf("%s: handler error: %v", name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestDecideUnavailable(t *testing.T) {
	h := NewAdminBookingHandler(repository.NewBookingRepo(nil))
	c, rec := adminContext(t, http.MethodPatch, "/", `{"status":"approved"}`)
	c.SetPath("/v1/admin/bookings/:id/status")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Decide(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

// Dashboard stats never hard-fail: an unavailable backend yields the
// all-zero object with a 200.
func TestDashboardStatsDegradeToZero(t *testing.T) {
	h := NewDashboardHandler(repository.NewBookingRepo(nil))
	c, rec := adminContext(t, http.MethodGet, "/v1/admin/stats", "")
	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out dashboardStats
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out.TotalBookings != 0 || out.PendingBookings != 0 || out.ApprovedBookings != 0 || out.TotalRevenue != 0 {
		t.Errorf("stats = %+v, want all zeros", out)
	}
	if out.TotalRevenueDisplay != "RM 0" {
		t.Errorf("revenue display = %q, want RM 0", out.TotalRevenueDisplay)
	}
}
