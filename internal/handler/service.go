package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myflycloudly/my-fly-cloudly/internal/model"
	"github.com/myflycloudly/my-fly-cloudly/internal/repository"
	"github.com/myflycloudly/my-fly-cloudly/internal/utils"
)

// ServiceHandler serves the public service catalog. When the backend
// is unavailable the public listing falls back to a fixed built-in
// catalog so the marketing site stays navigable without a database.
type ServiceHandler struct {
	Services *repository.ServiceRepo
}

func NewServiceHandler(s *repository.ServiceRepo) *ServiceHandler {
	return &ServiceHandler{Services: s}
}

type serviceResp struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	ImageURL    *string   `json:"image_url"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toServiceResp(s model.Service) serviceResp {
	return serviceResp{
		ID: s.ID, Name: s.Name, Description: s.Description,
		Price: s.Price, Duration: s.Duration, ImageURL: s.ImageURL,
		Active: s.Active, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func toServiceResps(ss []model.Service) []serviceResp {
	out := make([]serviceResp, 0, len(ss))
	for _, s := range ss {
		out = append(out, toServiceResp(s))
	}
	return out
}

// placeholderCatalog is the fallback shown when no database is
// configured. Three items, all active, stable ids.
func placeholderCatalog() []model.Service {
	return []model.Service{
		{
			ID:          1,
			Name:        "Two Days Pilot",
			Description: "Experience flying an airplane in a real aircraft",
			Price:       500,
			Duration:    "2 hours",
			Active:      true,
		},
		{
			ID:          2,
			Name:        "Flight Simulator",
			Description: "Learn to fly in our state-of-the-art flight simulator",
			Price:       300,
			Duration:    "1.5 hours",
			Active:      true,
		},
		{
			ID:          3,
			Name:        "Skydive Malaysia",
			Description: "Fulfill your bucket list with an amazing skydiving experience",
			Price:       800,
			Duration:    "Half day",
			Active:      true,
		},
	}
}

// listActive fetches the public catalog, substituting the
// placeholder set when the backend is unavailable.
func (h *ServiceHandler) listActive(c echo.Context) ([]model.Service, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	services, err := h.Services.ListActive(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			return placeholderCatalog(), nil
		}
		return nil, err
	}
	return services, nil
}

// List returns all active services, newest first.
func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.listActive(c)
	if err != nil {
		log.Printf("catalog: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}
	return c.JSON(http.StatusOK, toServiceResps(services))
}

// Featured returns the first ?limit= active services (default 3).
// It is a pure slice of the public listing, not a separate query.
func (h *ServiceHandler) Featured(c echo.Context) error {
	limit := limitQuery(c, 3, 20)

	services, err := h.listActive(c)
	if err != nil {
		log.Printf("catalog: featured failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}
	if len(services) > limit {
		services = services[:limit]
	}
	return c.JSON(http.StatusOK, toServiceResps(services))
}

// Get returns one service by id, active or not.
func (h *ServiceHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Services.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		case errors.Is(err, repository.ErrUnavailable):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
		}
		log.Printf("catalog: get %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}
	return c.JSON(http.StatusOK, toServiceResp(s))
}
