package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myflycloudly/my-fly-cloudly/internal/model"
	"github.com/myflycloudly/my-fly-cloudly/internal/queue"
	"github.com/myflycloudly/my-fly-cloudly/internal/repository"
	queue_publisher "github.com/myflycloudly/my-fly-cloudly/internal/service"
	"github.com/myflycloudly/my-fly-cloudly/internal/utils"
)

// AdminBookingHandler serves the admin-side booking endpoints. The
// routes carrying it are mounted behind RequireRole("admin").
type AdminBookingHandler struct {
	Bookings *repository.BookingRepo
}

func NewAdminBookingHandler(b *repository.BookingRepo) *AdminBookingHandler {
	return &AdminBookingHandler{Bookings: b}
}

// List returns all bookings, optionally filtered by ?status=, each
// with its service and owner profile batch-merged. Listings degrade
// to empty when the backend is unavailable so the admin grid renders
// either way.
func (h *AdminBookingHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", model.BookingPending, model.BookingApproved, model.BookingRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status filter"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	details, err := h.Bookings.ListAll(ctx, status, 0)
	if err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			return c.JSON(http.StatusOK, []repository.BookingDetail{})
		}
		log.Printf("admin: booking list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}
	return c.JSON(http.StatusOK, details)
}

// Recent returns the newest bookings capped by ?limit= (default 10).
func (h *AdminBookingHandler) Recent(c echo.Context) error {
	limit := limitQuery(c, 10, 100)

	ctx, cancel := reqCtx(c)
	defer cancel()

	details, err := h.Bookings.ListAll(ctx, "", limit)
	if err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			return c.JSON(http.StatusOK, []repository.BookingDetail{})
		}
		log.Printf("admin: recent bookings failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}
	return c.JSON(http.StatusOK, details)
}

type decideReq struct {
	Status       string `json:"status"`
	AdminMessage string `json:"admin_message"`
}

// Decide moves a pending booking to approved or rejected. A blank
// admin message never overwrites an existing one. The decision event
// is published fire-and-forget; a broker outage does not fail the
// request.
func (h *AdminBookingHandler) Decide(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidDecision(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be approved or rejected"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	det, err := h.Bookings.UpdateStatus(ctx, id, req.Status, req.AdminMessage)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking has already been decided"})
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrUnavailable):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgBooking)})
		}
		log.Printf("admin: decide booking %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgBooking)})
	}

	go publishDecision(*det)

	return c.JSON(http.StatusOK, det)
}

func publishDecision(det repository.BookingDetail) {
	ev := queue.BookingStatusEvent{
		BookingID:  det.ID,
		UserID:     det.UserID,
		ServiceID:  det.ServiceID,
		Status:     det.Status,
		TotalPrice: det.TotalPrice,
		DecidedAt:  det.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if det.Service != nil {
		ev.ServiceName = det.Service.Name
	}
	if det.AdminMessage != nil {
		ev.AdminMessage = *det.AdminMessage
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue_publisher.PublishBookingStatus(ctx, ev) // publisher logs its own failures
}
