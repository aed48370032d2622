package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/router"
	"github.com/iliyamo/hotel-booking/internal/scheduler"
	"github.com/iliyamo/hotel-booking/internal/service"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runServe(cfg, log)
		},
	}
}

func runServe(cfg config.Config, log *zap.Logger) error {
	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else if cfg.Redis.Enabled {
		log.Warn("redis unreachable; cache disabled and rate limit kept in memory", zap.String("addr", cfg.Redis.Addr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		events = queue.NewPublisher(cfg.RabbitURL, log)
		consumer := queue.NewConsumer(cfg.RabbitURL, "logs", log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	if cfg.ReconcileEnabled {
		sched, err := scheduler.New(service.NewAvailabilityChecker(db, log), cfg.ReconcileInterval, cfg.ReconcileRepair, log)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Warn("scheduler shutdown", zap.Error(err))
			}
		}()
	}

	e := newServer(cfg, db, rdb, events, log)
	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}

// newServer builds the echo instance with every route group mounted.
func newServer(cfg config.Config, db *sql.DB, rdb *redis.Client, events service.EventPublisher, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = utils.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(middleware.NewRateLimiter(cfg.RateLimit, rdb, log))

	users := repository.NewUserRepo(db)
	catalog := service.NewCatalogService(repository.NewHotelRepo(db), repository.NewRoomRepo(db), repository.NewRoomTypeRepo(db))
	auth := service.NewAuthService(users, cfg.JWTSecret, cfg.AccessTTL(), cfg.BcryptCost, log)
	bookings := service.NewBookingService(db, events, log)
	payments := service.NewPaymentService(db, events, log)

	sess := router.Session{Secret: cfg.JWTSecret, CookieName: cfg.CookieName, Roles: auth}
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, auth), sess)
	router.RegisterCatalog(e, handler.NewCatalogHandler(catalog), middleware.NewResponseCache(cfg.Cache, rdb, log))
	router.RegisterBookings(e, handler.NewBookingHandler(bookings), handler.NewPaymentHandler(payments), sess)
	return e
}
