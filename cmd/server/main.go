package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/myflycloudly/my-fly-cloudly/internal/config"
	"github.com/myflycloudly/my-fly-cloudly/internal/database"
	"github.com/myflycloudly/my-fly-cloudly/internal/handler"
	"github.com/myflycloudly/my-fly-cloudly/internal/queue"
	"github.com/myflycloudly/my-fly-cloudly/internal/repository"
	"github.com/myflycloudly/my-fly-cloudly/internal/router"
	"github.com/myflycloudly/my-fly-cloudly/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	cfg := config.Load()

	// The API stays up without a database; repositories report
	// ErrUnavailable and handlers degrade per endpoint.
	var db *sql.DB
	if cfg.HasDatabase() {
		var err error
		db, err = database.Open(cfg)
		if err != nil {
			log.Printf("database unavailable, running degraded: %v", err)
			db = nil
		}
	} else {
		log.Println("no database configured, running degraded")
	}

	rdb := config.NewRedisClient()
	sessions := session.New(rdb, time.Duration(cfg.AccessTTLMin)*time.Minute)

	accounts := repository.NewAccountRepo(db)
	bookings := repository.NewBookingRepo(db)
	services := repository.NewServiceRepo(db)
	resets := repository.NewResetTokenRepo(db)

	authH := handler.NewAuthHandler(cfg, accounts, resets, sessions)
	bookingH := handler.NewBookingHandler(bookings)
	serviceH := handler.NewServiceHandler(services)
	adminBookingH := handler.NewAdminBookingHandler(bookings)
	adminServiceH := handler.NewAdminServiceHandler(services)
	dashboardH := handler.NewDashboardHandler(bookings)

	go func() {
		if err := queue.StartStatusConsumer(); err != nil {
			log.Printf("status consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterPublic(e, serviceH)
	router.RegisterAuth(e, authH, config.LoadRateLimitConfig(), rdb)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminBookingH, adminServiceH, dashboardH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
