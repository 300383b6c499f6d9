package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/7lsnyc/notaryfindernow2/internal/auth"
	"github.com/7lsnyc/notaryfindernow2/internal/config"
	"github.com/7lsnyc/notaryfindernow2/internal/handler"
	middlewarepkg "github.com/7lsnyc/notaryfindernow2/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserAdminHandler
	Notaries *handler.NotaryHandler
	Bookings *handler.BookingHandler
	Featured *handler.FeaturedHandler
	Claims   *handler.ClaimHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.Use(middlewarepkg.SubmissionRateLimiter(cfg.RateLimitBookings, "/bookings", "/featured-requests", "/claims"))

	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.GET("/notaries/search", handlers.Notaries.Search)
	e.POST("/notaries/search", handlers.Notaries.SearchBody)
	e.GET("/notaries", handlers.Notaries.Locate)
	e.GET("/notaries/:id", handlers.Notaries.Get)

	e.GET("/bookings", handlers.Bookings.List)
	e.POST("/bookings", handlers.Bookings.Create)

	e.GET("/featured-notaries", handlers.Featured.Featured)
	e.POST("/featured-requests", handlers.Featured.SubmitRequest)
	e.POST("/claims", handlers.Claims.Submit)

	e.POST("/auth/login", handlers.Auth.Login)

	admin := e.Group("/admin", middlewarepkg.JWT(jwtManager), middlewarepkg.RequireRole(auth.RoleAdmin))
	admin.GET("/featured-requests", handlers.Featured.ListRequests)
	admin.PATCH("/featured-requests/:id", handlers.Featured.Review)
	admin.PATCH("/bookings/:id", handlers.Bookings.UpdateStatus)
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
}
