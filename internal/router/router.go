package router

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"gamecatalog/internal/config"
	"gamecatalog/internal/handler"
	"gamecatalog/internal/metrics"
	"gamecatalog/internal/middleware"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Listings *handler.ListingHandler
	Rankings *handler.RankingHandler
}

// Deps carries the cross-cutting collaborators of the router.
type Deps struct {
	Log         *slog.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	Guards      *middleware.Guards
	AuthLimiter echomw.RateLimiterStore
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg config.HTTPConfig, deps Deps, h Handlers) {
	e.HideBanner = true
	e.IPExtractor = ipExtractor(cfg.TrustedProxies)
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(deps.Log, deps.Metrics))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if deps.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	g := deps.Guards
	api := e.Group("/api")

	// Session
	authLimit := middleware.RateLimit(deps.AuthLimiter, deps.Metrics)
	api.POST("/register", g.GuestOnly(h.Auth.Register), authLimit)
	api.POST("/login", g.GuestOnly(h.Auth.Login), authLimit)
	api.GET("/logout", g.Authenticated(h.Auth.Logout))

	// Profiles
	api.GET("/me", g.Authenticated(h.Users.Me))
	api.PATCH("/me", g.Authenticated(h.Users.UpdateMe))
	api.POST("/me/picture", g.Authenticated(h.Users.Picture))
	api.POST("/me/picture/confirm", g.Authenticated(h.Users.ConfirmPicture))
	api.GET("/me/dashboard", g.Authenticated(h.Users.Dashboard))
	api.GET("/users/:id", h.Users.GetUser)

	// Catalog
	api.GET("/catalog", h.Listings.List)
	api.POST("/catalog", g.Authenticated(h.Listings.Create))
	api.GET("/catalog/latest", h.Listings.Latest)
	api.GET("/catalog/:id", g.Optional(h.Listings.Details))
	api.PATCH("/catalog/:id", g.Owner(h.Listings.Update))
	api.POST("/catalog/:id", g.Owner(h.Listings.Update))
	api.DELETE("/catalog/:id", g.Owner(h.Listings.Delete))
	api.GET("/catalog/:id/interact", g.NotYetInteracted(h.Listings.Interact))
	api.POST("/catalog/:id/play", g.Authenticated(h.Listings.Play))

	rankings := api.Group("/rankings")
	rankings.GET("/top-played", h.Rankings.TopPlayed)
	rankings.GET("/most-viewed", h.Rankings.MostViewed)
	rankings.GET("/most-liked", h.Rankings.MostLiked)
}

// ipExtractor uses the peer address unless the request came through one of
// the trusted proxy ranges. Invalid CIDRs are rejected by config.Load.
func ipExtractor(trustedProxies []string) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		if _, ipNet, err := net.ParseCIDR(cidr); err == nil {
			opts = append(opts, echo.TrustIPRange(ipNet))
		}
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
