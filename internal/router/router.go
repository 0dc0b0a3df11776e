package router

import (
	"github.com/labstack/echo/v4"

	"github.com/myflycloudly/my-fly-cloudly/internal/config"
	"github.com/myflycloudly/my-fly-cloudly/internal/handler"
	"github.com/myflycloudly/my-fly-cloudly/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes registers routes that need no authentication. Currently
// only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic exposes the service catalog to guests. No JWT or role
// middleware applies here so the landing pages can render before login.
func RegisterPublic(e *echo.Echo, s *handler.ServiceHandler) {
	e.GET("/v1/services", s.List)
	e.GET("/v1/services/featured", s.Featured)
	e.GET("/v1/services/:id", s.Get)
}

// RegisterAuth registers authentication routes and the authenticated
// profile endpoints. Unauthenticated operations live under /v1/auth and
// carry the rate limiter; protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1/auth")
	g.Use(middleware.RateLimit(rlCfg, rdb))
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/password/forgot", a.ForgotPassword)
	g.POST("/password/reset", a.ResetPassword)
	// Logout parses its own bearer token and is idempotent, so it does
	// not sit behind JWTAuth.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(a.Cfg.JWTSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateMe)
}

// RegisterBookings registers the customer-facing booking endpoints.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", b.Create)
	g.GET("", b.ListMine)
	g.GET("/:id", b.Get)
}

// RegisterAdmin registers the admin surface. Every route requires a
// valid token with the admin role; the role check happens server side,
// never from client-held state.
func RegisterAdmin(e *echo.Echo, ab *handler.AdminBookingHandler, as *handler.AdminServiceHandler, d *handler.DashboardHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("admin"))

	g.GET("/bookings", ab.List)
	g.GET("/bookings/recent", ab.Recent)
	g.PATCH("/bookings/:id/status", ab.Decide)

	g.POST("/services", as.Create)
	g.PUT("/services/:id", as.Update)
	g.DELETE("/services/:id", as.Delete)
	g.PATCH("/services/:id/active", as.Toggle)

	g.GET("/stats", d.Stats)
}
