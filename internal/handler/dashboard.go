package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myflycloudly/my-fly-cloudly/internal/model"
	"github.com/myflycloudly/my-fly-cloudly/internal/repository"
	"github.com/myflycloudly/my-fly-cloudly/internal/utils"
)

// DashboardHandler serves the admin dashboard aggregates.
type DashboardHandler struct {
	Bookings *repository.BookingRepo
}

func NewDashboardHandler(b *repository.BookingRepo) *DashboardHandler {
	return &DashboardHandler{Bookings: b}
}

type dashboardStats struct {
	TotalBookings       int     `json:"total_bookings"`
	PendingBookings     int     `json:"pending_bookings"`
	ApprovedBookings    int     `json:"approved_bookings"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalRevenueDisplay string  `json:"total_revenue_display"`
}

// Stats derives the four dashboard numbers via independent queries:
// total, pending and approved counts plus revenue summed over the
// approved rows. Any failure anywhere yields the all-zero object
// with a 200; the dashboard must never hard-fail.
func (h *DashboardHandler) Stats(c echo.Context) error {
	zero := dashboardStats{TotalRevenueDisplay: utils.FormatCurrency(0)}

	ctx, cancel := reqCtx(c)
	defer cancel()

	total, err := h.Bookings.CountByStatus(ctx, "")
	if err != nil {
		logStatsErr(err)
		return c.JSON(http.StatusOK, zero)
	}
	pending, err := h.Bookings.CountByStatus(ctx, model.BookingPending)
	if err != nil {
		logStatsErr(err)
		return c.JSON(http.StatusOK, zero)
	}
	approved, err := h.Bookings.CountByStatus(ctx, model.BookingApproved)
	if err != nil {
		logStatsErr(err)
		return c.JSON(http.StatusOK, zero)
	}
	revenue, err := h.Bookings.ApprovedRevenue(ctx)
	if err != nil {
		logStatsErr(err)
		return c.JSON(http.StatusOK, zero)
	}

	return c.JSON(http.StatusOK, dashboardStats{
		TotalBookings:       total,
		PendingBookings:     pending,
		ApprovedBookings:    approved,
		TotalRevenue:        revenue,
		TotalRevenueDisplay: utils.FormatCurrency(revenue),
	})
}

func logStatsErr(err error) {
	if !errors.Is(err, repository.ErrUnavailable) {
		log.Printf("admin: dashboard stats failed: %v", err)
	}
}
