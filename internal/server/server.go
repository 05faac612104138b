// Package server wires the HTTP layer: echo routes, auth middleware, metrics
// and the dependency graph behind them.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/artyatra/artyatra/config"
	"github.com/artyatra/artyatra/internal/catalogindex"
	"github.com/artyatra/artyatra/internal/classifier"
	"github.com/artyatra/artyatra/internal/session"
	"github.com/artyatra/artyatra/internal/store"
	"github.com/artyatra/artyatra/internal/swecha"
)

// Deps is the assembled dependency set for the HTTP layer. Run builds it from
// config; tests build it by hand with stubs.
type Deps struct {
	Config   *config.Config
	Store    store.Storage
	Classify classifier.Classifier
	Swecha   *swecha.Client
	Sessions session.Store
	Index    *catalogindex.Index
	Metrics  *Metrics
	Registry *prometheus.Registry
}

// Run assembles everything from config and serves until the listener fails.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := log.New(log.Writer(), "[SERVER] ", log.LstdFlags)

	if cfg.Server.JWTSecret == "" {
		return fmt.Errorf("server.jwt_secret is required")
	}

	var st store.Storage
	switch cfg.Storage.Driver {
	case "postgres":
		dsn, err := cfg.Storage.Postgres.DSN()
		if err != nil {
			return err
		}
		pg, err := store.NewPostgres(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		st = pg
		logger.Printf("using postgres storage")
	case "memory", "":
		st = store.NewMemoryStorage()
		logger.Printf("using in-memory storage")
	default:
		return fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
	defer st.Close()

	cls, err := classifier.New(cfg.LLM)
	if err != nil {
		return fmt.Errorf("init classifier: %w", err)
	}

	var sessions session.Store
	if cfg.Storage.Redis.Enabled {
		r := cfg.Storage.Redis
		sessions, err = session.NewRedisStore(ctx, r.Host, r.Port, r.Password, r.DB, r.Timeout, cfg.Server.MaxSessionTTL)
		if err != nil {
			return err
		}
		logger.Printf("using redis session store")
	} else {
		sessions = session.NewMemoryStore()
	}

	styles, err := st.GetAllArtStyles(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	idx, err := catalogindex.New(styles, store.SeedCategories())
	if err != nil {
		return err
	}
	defer idx.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := Deps{
		Config:   cfg,
		Store:    st,
		Classify: cls,
		Swecha:   swecha.NewClient(cfg.Swecha.BaseURL, cfg.Swecha.Timeout),
		Sessions: sessions,
		Index:    idx,
		Metrics:  NewMetrics(registry),
		Registry: registry,
	}
	e := New(deps)

	logger.Printf("listening on %s", cfg.Server.Address)
	return e.Start(cfg.Server.Address)
}

// New builds the echo instance with all routes registered.
func New(deps Deps) *echo.Echo {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "time": time.Now().UTC()})
	})
	if deps.Registry != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api")

	auth := NewAuthHandler(deps.Store, deps.Sessions, deps.Swecha, cfg.Server.JWTSecret, cfg.Server.MaxSessionTTL)
	auth.Register(api.Group("/auth"))

	NewArtStylesHandler(deps.Store).Register(api)
	NewClassifyHandler(deps.Store, deps.Classify, cfg.Server.ClassifyMaxBytes, deps.Metrics).Register(api)
	NewSwechaHandler(deps.Swecha, cfg.Server.RelayMaxBytes, cfg.Swecha.DefaultCategoryID, deps.Metrics).Register(api.Group("/swecha"))

	resolver := PlaceholderResolver{BaseURL: cfg.Search.ImageBaseURL}
	NewSearchHandler(store.SeedCategories(), deps.Index, resolver, cfg.Search.MinRadiusKm, cfg.Search.MaxRadiusKm).Register(api)
	NewMapHandler(deps.Store).Register(api)

	guard := newSessionGuard(cfg.Server.JWTSecret, deps.Sessions, cfg.Server.IdleTimeout)
	api.GET("/me", auth.Me, guard.Middleware)

	return e
}

// errorHandler renders every HTTP error as the {"error": message} shape the
// frontend expects.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprintf("%v", he.Message)
	}
	if err := c.JSON(code, echo.Map{"error": message}); err != nil {
		c.Logger().Error(err)
	}
}
