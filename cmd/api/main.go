package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/config"
	appHTTP "github.com/fieldops-id/fieldops-backend-go/internal/handler/http"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/cache"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/cron"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/email"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/jwt"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/oauth"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/sse"
	"github.com/fieldops-id/fieldops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/fieldops-id/fieldops-backend-go/internal/service/attendance"
	serviceAuth "github.com/fieldops-id/fieldops-backend-go/internal/service/auth"
	masterService "github.com/fieldops-id/fieldops-backend-go/internal/service/master"
	orderService "github.com/fieldops-id/fieldops-backend-go/internal/service/order"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	locker := postgresql.NewUserLocker(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	visitRepo := postgresql.NewOutletVisitRepository(db)
	divisionRepo := postgresql.NewDivisionRepository(db)
	verticalRepo := postgresql.NewVerticalRepository(db)
	brandRepo := postgresql.NewBrandRepository(db)
	unitRepo := postgresql.NewUnitRepository(db)
	productRepo := postgresql.NewProductRepository(db)
	outletRepo := postgresql.NewOutletRepository(db)
	orderRepo := postgresql.NewOrderRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.Env == "production")
	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	} else {
		slog.Info("Google sign-in is not configured, routes disabled")
	}
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("init email service: %w", err)
	}
	hub := sse.NewHub()

	authService := serviceAuth.NewAuthService(userRepo, jwtService, jwtRepo)
	attendanceSvc := attendanceService.NewAttendanceService(locker, attendanceRepo, visitRepo, outletRepo, hub)
	masterSvc := masterService.NewMasterService(divisionRepo, verticalRepo, brandRepo, unitRepo, productRepo, outletRepo, cache.NewLookupCache(cfg.HTTP.Cache.ReferenceTTL))
	orderSvc := orderService.NewOrderService(orderRepo, locker, attendanceRepo, visitRepo, productRepo, outletRepo, emailService)

	scheduler := cron.NewScheduler()
	cron.NewShiftJobs(attendanceSvc, jwtRepo, cfg.Shift.MaxDuration, cfg.Shift.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(jwtService, logger, cfg.SlogLevel(), cfg.HTTP, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(jwtService, authService, googleService, cfg.App.FrontendURL, cfg.App.Env == "production"),
		Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
		OutletVisit: appHTTP.NewOutletVisitHandler(attendanceSvc),
		Master:      appHTTP.NewMasterHandler(masterSvc),
		Order:       appHTTP.NewOrderHandler(orderSvc),
		Event:       appHTTP.NewEventHandler(jwtService, hub),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		scheduler.Stop()
		hub.Shutdown()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	scheduler.Stop()

	// open event streams only end when their subscription closes
	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	orderSvc.Wait()
	slog.Info("Server stopped")
	return nil
}
