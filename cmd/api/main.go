package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/7lsnyc/notaryfindernow2/internal/auth"
	"github.com/7lsnyc/notaryfindernow2/internal/config"
	"github.com/7lsnyc/notaryfindernow2/internal/database"
	"github.com/7lsnyc/notaryfindernow2/internal/handler"
	"github.com/7lsnyc/notaryfindernow2/internal/mailer"
	middlewarepkg "github.com/7lsnyc/notaryfindernow2/internal/middleware"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
	"github.com/7lsnyc/notaryfindernow2/internal/router"
	"github.com/7lsnyc/notaryfindernow2/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL, database.Options{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("failed to apply schema: %v", err)
		}
		log.Printf("database schema applied")
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	sender, err := mailer.NewSender(&http.Client{Timeout: 15 * time.Second}, cfg.Email)
	if err != nil {
		log.Fatalf("failed to configure email sender: %v", err)
	}
	if cfg.Email.APIKey == "" {
		log.Printf("RESEND_API_KEY not set, emails will be logged instead of sent")
	}
	composer := mailer.NewComposer(cfg.Email.From, cfg.Email.SupportEmail)

	usersRepo := repository.NewPGXUsersRepository(pool)
	notariesRepo := repository.NewPGXNotariesRepository(pool)
	bookingsRepo := repository.NewPGXBookingsRepository(pool)
	featuredRepo := repository.NewPGXFeaturedRequestsRepository(pool)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(usersRepo, jwtManager)),
		Users:    handler.NewUserAdminHandler(service.NewUserService(usersRepo)),
		Notaries: handler.NewNotaryHandler(service.NewSearchService(notariesRepo)),
		Bookings: handler.NewBookingHandler(service.NewBookingService(bookingsRepo, notariesRepo, sender, composer)),
		Featured: handler.NewFeaturedHandler(service.NewFeaturedService(notariesRepo, featuredRepo)),
		Claims:   handler.NewClaimHandler(service.NewClaimService(notariesRepo, sender, composer)),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("api listening on :%s", cfg.Port)
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
