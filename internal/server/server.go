// Package server builds the echo instance with middleware and routes.
package server

import (
	"github.com/Hariom1711/travelbuddy/internal/handler"
	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/Hariom1711/travelbuddy/internal/metrics"
	"github.com/Hariom1711/travelbuddy/internal/middleware"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Options wires the server. ServiceName labels the HTTP metrics; Registerer
// and Gatherer default to the prometheus globals.
type Options struct {
	ServiceName    string
	AllowedOrigins []string
	Handler        *handler.Handler
	Sessions       middleware.SessionReader
	Renderer       echo.Renderer
	Registerer     prometheus.Registerer
	Gatherer       prometheus.Gatherer
}

// New returns an echo instance with every route registered
func New(opts Options) *echo.Echo {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = opts.Renderer

	httpMetrics := metrics.NewHTTPMetrics(opts.ServiceName, opts.Registerer)

	// order matters: request id before the logger reads it
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())

	registerRoutes(e, opts.Handler, opts.Sessions)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(opts.Gatherer)))

	return e
}

func registerRoutes(e *echo.Echo, h *handler.Handler, sessions middleware.SessionReader) {
	e.GET("/health", h.HealthCheck)

	// pages
	e.GET("/", h.Home)

	authPages := e.Group("/auth")
	authPages.GET("/signin", h.SignInPage)
	authPages.POST("/signin", h.SignInSubmit)
	authPages.GET("/signup", h.SignUpPage)
	authPages.POST("/signup", h.SignUpSubmit)
	authPages.GET("/signout", h.SignOutPage)
	authPages.GET("/error", h.AuthError)
	authPages.GET("/oauth/:provider", h.OAuthBegin)
	authPages.GET("/oauth/:provider/callback", h.OAuthCallback)

	requirePage := middleware.RequirePageSession(sessions)
	e.GET("/profile/setup", h.ProfileSetupPage, requirePage)
	e.POST("/profile/setup", h.ProfileSetupSubmit, requirePage)
	e.GET("/dashboard", h.DashboardPage, requirePage)

	// JSON API
	api := e.Group("/api")
	api.GET("/catalog", h.Catalog)
	api.GET("/nav", h.Nav)

	authAPI := api.Group("/auth")
	authAPI.POST("/signup", h.SignUp)
	authAPI.POST("/signin", h.SignIn)
	authAPI.POST("/signout", h.SignOut)
	authAPI.GET("/session", h.Session)

	protected := api.Group("", middleware.RequireSession(sessions))
	protected.GET("/profile", h.GetProfile)
	protected.POST("/profile", h.UpdateProfile)
	protected.GET("/dashboard", h.Dashboard)
	protected.GET("/trips", h.ListTrips)
	protected.POST("/trips", h.CreateTrip)
	protected.GET("/trips/:id", h.GetTrip)
}
