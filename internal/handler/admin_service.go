package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/myflycloudly/my-fly-cloudly/internal/model"
	"github.com/myflycloudly/my-fly-cloudly/internal/repository"
	"github.com/myflycloudly/my-fly-cloudly/internal/utils"
)

// AdminServiceHandler serves catalog management. Mounted behind
// RequireRole("admin").
type AdminServiceHandler struct {
	Services *repository.ServiceRepo
}

func NewAdminServiceHandler(s *repository.ServiceRepo) *AdminServiceHandler {
	return &AdminServiceHandler{Services: s}
}

type createServiceReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	ImageURL    *string `json:"image_url"`
	Active      *bool   `json:"active"`
}

// Create adds a catalog item. Active defaults to true when omitted.
func (h *AdminServiceHandler) Create(c echo.Context) error {
	var req createServiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price cannot be negative"})
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	svc := model.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		ImageURL:    req.ImageURL,
		Active:      active,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Services.Create(ctx, &svc); err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
		}
		log.Printf("catalog: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}
	return c.JSON(http.StatusCreated, toServiceResp(svc))
}

type updateServiceReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *string  `json:"duration"`
	ImageURL    *string  `json:"image_url"`
	Active      *bool    `json:"active"`
}

// Update applies a partial update; omitted fields stay untouched.
func (h *AdminServiceHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}
	var req updateServiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be blank"})
	}
	if req.Price != nil && *req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price cannot be negative"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	svc, err := h.Services.Update(ctx, id, repository.ServiceUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if err != nil {
		return h.serviceErr(c, id, "update", err)
	}
	return c.JSON(http.StatusOK, toServiceResp(svc))
}

// Delete removes a service permanently.
func (h *AdminServiceHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Services.Delete(ctx, id); err != nil {
		return h.serviceErr(c, id, "delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type toggleReq struct {
	Active bool `json:"active"`
}

// Toggle flips a service's public visibility.
func (h *AdminServiceHandler) Toggle(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}
	var req toggleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	svc, err := h.Services.SetActive(ctx, id, req.Active)
	if err != nil {
		return h.serviceErr(c, id, "toggle", err)
	}
	return c.JSON(http.StatusOK, toServiceResp(svc))
}

func (h *AdminServiceHandler) serviceErr(c echo.Context, id uint64, op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
	case errors.Is(err, repository.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}
	log.Printf("catalog: %s %d failed: %v", op, id, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
}
