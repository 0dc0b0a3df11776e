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

type profileResp struct {
	ID          uint64    `json:"id"`
	FullName    string    `json:"full_name"`
	Phone       *string   `json:"phone"`
	Nationality *string   `json:"nationality"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProfileResp(p model.Profile) profileResp {
	return profileResp{
		ID: p.ID, FullName: p.FullName, Phone: p.Phone,
		Nationality: p.Nationality, Email: p.Email,
		Role: p.Role, UpdatedAt: p.UpdatedAt,
	}
}

// Me re-derives the caller's identity and profile from the store,
// never from the cached session, self-healing a missing profile row
// and rewriting the cache. An identity that no longer exists clears
// the session and answers 401.
func (h *AuthHandler) Me(c echo.Context) error {
	uid := middleware.UserID(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Accounts.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if derr := h.Sessions.Delete(ctx, uid); derr != nil {
				log.Printf("auth: session delete failed for user %d: %v", uid, derr)
			}
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account no longer exists"})
		}
		if errors.Is(err, repository.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
		}
		log.Printf("auth: identity lookup failed for user %d: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}

	profile := h.loadOrHealProfile(c, u, false)

	sess := model.Session{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: profile.FullName,
		Phone:    profile.Phone,
		Role:     strings.ToLower(profile.Role),
	}
	if err := h.Sessions.Put(ctx, sess); err != nil {
		log.Printf("auth: session cache write failed for user %d: %v", uid, err)
	}
	return c.JSON(http.StatusOK, sess)
}

type updateProfileReq struct {
	FullName    *string `json:"full_name"`
	Phone       *string `json:"phone"`
	Nationality *string `json:"nationality"`
}

// UpdateMe applies a partial profile update with a server-set
// updated_at, then folds the same fields into the caller's cached
// session.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	uid := middleware.UserID(c)

	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		if trimmed == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "full name cannot be blank"})
		}
		req.FullName = &trimmed
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Accounts.UpdateProfile(ctx, uid, repository.ProfileUpdate{
		FullName:    req.FullName,
		Phone:       req.Phone,
		Nationality: req.Nationality,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		if errors.Is(err, repository.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgProfile)})
		}
		log.Printf("auth: profile update failed for user %d: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgProfile)})
	}

	if err := h.Sessions.Merge(ctx, uid, req.FullName, req.Phone); err != nil {
		log.Printf("auth: session merge failed for user %d: %v", uid, err)
	}
	return c.JSON(http.StatusOK, toProfileResp(*p))
}
