package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/myflycloudly/my-fly-cloudly/internal/middleware"
	"github.com/myflycloudly/my-fly-cloudly/internal/repository"
)

func bookingContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, uint64(7))
	c.Set(middleware.CtxRole, "user")
	return c, rec
}

func TestCreateBookingValidation(t *testing.T) {
	h := NewBookingHandler(repository.NewBookingRepo(nil))
	cases := []struct {
		name string
		body string
	}{
		{"missing service", `{"booking_date":"2026-09-01","booking_time":"10:00","participants":1,"total_price":500}`},
		{"zero participants", `{"service_id":1,"booking_date":"2026-09-01","booking_time":"10:00","participants":0,"total_price":500}`},
		{"negative price", `{"service_id":1,"booking_date":"2026-09-01","booking_time":"10:00","participants":1,"total_price":-5}`},
		{"bad date", `{"service_id":1,"booking_date":"01/09/2026","booking_time":"10:00","participants":1,"total_price":500}`},
		{"bad time", `{"service_id":1,"booking_date":"2026-09-01","booking_time":"10:00:00","participants":1,"total_price":500}`},
	}
	for _, tc := range cases {
		c, rec := bookingContext(t, http.MethodPost, tc.body)
		if err := h.Create(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

// Valid input against an unavailable backend is a 503 with the canned
// booking message, never a success.
func TestCreateBookingUnavailable(t *testing.T) {
	h := NewBookingHandler(repository.NewBookingRepo(nil))
	body := `{"service_id":1,"booking_date":"2026-09-01","booking_time":"10:00","participants":2,"total_price":1000,"status":"approved"}`
	c, rec := bookingContext(t, http.MethodPost, body)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to save booking") {
		t.Errorf("body lacks canned booking message: %s", rec.Body.String())
	}
}

// The customer booking list degrades to an empty array when the
// backend is unavailable so the dashboard page still renders.
func TestListMineUnavailable(t *testing.T) {
	h := NewBookingHandler(repository.NewBookingRepo(nil))
	c, rec := bookingContext(t, http.MethodGet, "")

	if err := h.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want empty array", got)
	}
}
