package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/myflycloudly/my-fly-cloudly/internal/config"
	"github.com/myflycloudly/my-fly-cloudly/internal/model"
	"github.com/myflycloudly/my-fly-cloudly/internal/repository"
	"github.com/myflycloudly/my-fly-cloudly/internal/session"
	"github.com/myflycloudly/my-fly-cloudly/internal/utils"
)

// AuthHandler bundles dependencies for the authentication and
// profile endpoints. Internal failures are logged here and surfaced
// to clients only as canned messages.
type AuthHandler struct {
	Cfg      config.Config
	Accounts *repository.AccountRepo
	Resets   *repository.ResetTokenRepo
	Sessions *session.Store
}

func NewAuthHandler(cfg config.Config, a *repository.AccountRepo, r *repository.ResetTokenRepo, s *session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: a, Resets: r, Sessions: s}
}

// ----- DTOs -----

type registerReq struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    string  `json:"full_name"`
	Phone       *string `json:"phone"`
	Nationality *string `json:"nationality"`
	Redirect    string  `json:"redirect"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Redirect string `json:"redirect"`
}
type forgotReq struct {
	Email string `json:"email"`
}
type resetReq struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User       model.Session `json:"user"`
	Access     tokenPart     `json:"access"`
	RedirectTo *string       `json:"redirect_to"`
}

// Register creates an identity, provisions its profile, and signs
// the user in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if !utils.ValidEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}
	if req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full name is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Accounts.CreateUser(ctx, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "This email is already registered. Please login instead."})
		case errors.Is(err, repository.ErrUnavailable):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
		}
		log.Printf("auth: create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}

	// The profile write is best-effort: a failure here must not undo
	// the signup, the next sign-in self-heals the missing row.
	profile := model.Profile{
		ID:          uid,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Nationality: req.Nationality,
		Email:       req.Email,
		Role:        "user",
	}
	if err := h.Accounts.UpsertProfile(ctx, profile); err != nil {
		log.Printf("auth: profile creation failed for user %d: %v", uid, err)
	}

	return h.respondSignedIn(c, http.StatusCreated, uid, req.Email, profile, req.Redirect)
}

// Login authenticates and reconciles the identity with its profile:
// a missing profile row is synthesized and persisted best-effort, a
// stale profile email is repaired, and the role always comes fresh
// from the store, lowercased.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Accounts.GetUserByEmail(ctx, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": utils.SafeErrorMessage(utils.MsgAuth)})
		case errors.Is(err, repository.ErrUnavailable):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
		}
		log.Printf("auth: user lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgAuth)})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": utils.SafeErrorMessage(utils.MsgAuth)})
	}

	profile := h.loadOrHealProfile(c, u, true)

	if profile.Email != u.Email {
		if err := h.Accounts.RepairProfileEmail(ctx, u.ID, u.Email); err != nil {
			log.Printf("auth: email repair failed for user %d: %v", u.ID, err)
		}
	}

	return h.respondSignedIn(c, http.StatusOK, u.ID, u.Email, profile, req.Redirect)
}

// loadOrHealProfile fetches the profile for u with a may-not-exist
// read. When the row is missing (or the read fails) it falls back to
// a profile synthesized from the identity. The flow never hard-fails
// on a broken profile.
func (h *AuthHandler) loadOrHealProfile(c echo.Context, u model.User, persist bool) model.Profile {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Accounts.GetProfile(ctx, u.ID)
	if err == nil && p != nil {
		return *p
	}
	if err != nil && !errors.Is(err, repository.ErrUnavailable) {
		log.Printf("auth: profile lookup failed for user %d: %v", u.ID, err)
	}
	fallback := model.FallbackProfile(u.ID, u.Email)
	if persist && healPersistable(p, err) {
		if err := h.Accounts.UpsertProfile(ctx, fallback); err != nil {
			log.Printf("auth: profile heal failed for user %d: %v", u.ID, err)
		}
	}
	return fallback
}

// healPersistable reports whether the read outcome warrants writing
// the synthesized fallback: only a clean miss does. A failed read
// keeps the fallback in memory so a surviving row is never clobbered
// with defaults.
func healPersistable(p *model.Profile, err error) bool {
	return err == nil && p == nil
}

// respondSignedIn writes the session cache, issues an access token
// and replies with the session projection.
func (h *AuthHandler) respondSignedIn(c echo.Context, status int, uid uint64, email string, profile model.Profile, redirect string) error {
	role := strings.ToLower(profile.Role)
	if role == "" {
		role = "user"
	}
	sess := model.Session{
		UserID:   uid,
		Email:    email,
		FullName: profile.FullName,
		Phone:    profile.Phone,
		Role:     role,
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Sessions.Put(ctx, sess); err != nil {
		log.Printf("auth: session cache write failed for user %d: %v", uid, err)
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgGeneric)})
	}

	var redirectTo *string
	if p := utils.SafeRedirectPath(redirect); p != "" {
		redirectTo = &p
	}
	return c.JSON(status, authResp{
		User:       sess,
		Access:     tokenPart{Token: access.Token, Expires: access.Exp},
		RedirectTo: redirectTo,
	})
}

// Logout clears the cached session. It parses the bearer token by
// hand instead of requiring the JWT middleware so that sign-out is
// idempotent: an absent or expired token still yields 204.
func (h *AuthHandler) Logout(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		raw := strings.TrimPrefix(auth, "Bearer ")
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, echo.ErrUnauthorized
			}
			return []byte(h.Cfg.JWTSecret), nil
		})
		if err == nil && tok.Valid {
			if claims, ok := tok.Claims.(jwt.MapClaims); ok {
				if sub, ok := claims["sub"].(float64); ok && sub > 0 {
					ctx, cancel := reqCtx(c)
					defer cancel()
					if err := h.Sessions.Delete(ctx, uint64(sub)); err != nil {
						log.Printf("auth: session delete failed: %v", err)
					}
				}
			}
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword issues a single-use reset token. The response never
// reveals whether the email maps to an account.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	const sent = "If an account exists for that email, a reset link has been sent."

	var req forgotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.ValidEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Accounts.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusOK, echo.Map{"message": sent})
		}
		if errors.Is(err, repository.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgReset)})
		}
		log.Printf("auth: reset lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgReset)})
	}

	tok, err := utils.NewResetToken(h.Cfg.ResetTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgReset)})
	}
	if err := h.Resets.Store(ctx, u.ID, utils.HashResetRaw(tok.Raw), tok.Exp); err != nil {
		log.Printf("auth: reset token store failed for user %d: %v", u.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgReset)})
	}

	// Mail delivery is outside this service; in dev the token is
	// logged so the flow can be exercised end to end.
	if h.Cfg.Env == "dev" {
		log.Printf("auth: reset token for user %d: %s (expires %s)", u.ID, tok.Raw, tok.Exp.Format(time.RFC3339))
	} else {
		log.Printf("auth: reset token issued for user %d", u.ID)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": sent})
}

// ResetPassword consumes a reset token and sets a new password. The
// cached session is dropped so old bearers must sign in again.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Resets.Consume(ctx, utils.HashResetRaw(req.Token))
	if err != nil {
		if errors.Is(err, repository.ErrResetInvalid) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired reset token"})
		}
		if errors.Is(err, repository.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": utils.SafeErrorMessage(utils.MsgReset)})
		}
		log.Printf("auth: reset consume failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgReset)})
	}
	if err := h.Accounts.UpdatePassword(ctx, uid, req.Password, h.Cfg.BcryptCost); err != nil {
		log.Printf("auth: password update failed for user %d: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": utils.SafeErrorMessage(utils.MsgReset)})
	}
	if err := h.Sessions.Delete(ctx, uid); err != nil {
		log.Printf("auth: session delete failed for user %d: %v", uid, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated. Please sign in with your new password."})
}
