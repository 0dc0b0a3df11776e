package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myflycloudly/my-fly-cloudly/internal/middleware"
	"github.com/myflycloudly/my-fly-cloudly/internal/model"
	"github.com/myflycloudly/my-fly-cloudly/internal/repository"
	"github.com/myflycloudly/my-fly-cloudly/internal/utils"
)

// BookingHandler serves the customer-facing booking endpoints.
type BookingHandler struct {
	Bookings *repository.BookingRepo
}

func NewBookingHandler(b *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{Bookings: b}
}

type createBookingReq struct {
	ServiceID    uint64  `json:"service_id"`
	BookingDate  string  `json:"booking_date"`
	BookingTime  string  `json:"booking_time"`
	Participants int     `json:"participants"`
	TotalPrice   float64 `json:"total_price"`
	Notes        *string `json:"notes"`
	// A client-supplied status is accepted in the body and discarded:
	// creation is always pending.
	Status string `json:"status"`
}

// Create records a new booking for the authenticated caller. The
// owner comes from the access token, never from the body, and the
// status is pending no matter what was submitted. All input is
// validated before the store is touched.
func (h *BookingHandler) Create(c echo.Context) error {
	uid := middleware.UserID(c)

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ServiceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service_id required"})
	}
	if req.Participants <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "participants must be a positive number"})
	}
	if req.TotalPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_price cannot be negative"})
	}
	if _, err := time.Parse("2006-01-02", req.BookingDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_date must be YYYY-MM-DD"})
	}
	if _, err := time.Parse("15:04", req.BookingTime); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_time must be HH:MM"})
	}
	if req.Notes != nil {
		trimmed := strings.TrimSpace(*req.Notes)
		if trimmed == "" {
			req.Notes = nil
		} else {
			req.Notes = &trimmed
		}
	}

	booking := model.Booking{
		UserID:       uid,
		ServiceID:    req.ServiceID,
		BookingDate:  req.BookingDate,
		BookingTime:  req.BookingTime,
		Participants: req.Participants,
		TotalPrice:   req.TotalPrice,
		Notes:        req.Notes,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Bookings.Create(ctx, &booking); err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgBooking)})
		}
		log.Printf("booking: create failed for user %d: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgBooking)})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":            booking.ID,
		"user_id":       booking.UserID,
		"service_id":    booking.ServiceID,
		"booking_date":  booking.BookingDate,
		"booking_time":  booking.BookingTime,
		"participants":  booking.Participants,
		"total_price":   booking.TotalPrice,
		"notes":         booking.Notes,
		"status":        booking.Status,
		"admin_message": booking.AdminMessage,
		"created_at":    booking.CreatedAt,
		"updated_at":    booking.UpdatedAt,
	})
}

// ListMine returns the caller's bookings, newest first. An
// unavailable backend degrades to an empty list so the dashboard
// page renders regardless.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid := middleware.UserID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	details, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			return c.JSON(http.StatusOK, []repository.BookingDetail{})
		}
		log.Printf("booking: list failed for user %d: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}
	return c.JSON(http.StatusOK, details)
}

// Get returns one booking with its service and owner profile merged.
// Only the owner or an admin may read it.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	det, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrUnavailable):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
		}
		log.Printf("booking: get %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}

	if det.UserID != middleware.UserID(c) && middleware.Role(c) != "admin" {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, det)
}
