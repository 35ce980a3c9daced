// Package web serves the hub pages and the JSON API over the session gate, the workflow
// simulators and the result presenter.
package web

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/dukex/projecthub/pkg/activity"
	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/eventbus"
	"github.com/dukex/projecthub/pkg/log"
	"github.com/dukex/projecthub/pkg/schemas"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/dukex/projecthub/pkg/session"
	"github.com/dukex/projecthub/pkg/simulator"
	"github.com/dukex/projecthub/pkg/uploads"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// Dependencies are the collaborators the server is assembled from. Publisher and
// Activity are optional.
type Dependencies struct {
	Logger      *slog.Logger
	Catalog     *catalog.Catalog
	Store       session.Store
	Gate        *services.Gate
	Transcripts *simulator.TranscriptGenerator
	Prompts     *simulator.PromptTester
	Bulk        *simulator.BulkAnalyzer
	Uploads     *uploads.Policy
	Schemas     *schemas.Registry
	Publisher   eventbus.EventPublisher
	Activity    *activity.Recorder

	Version      string
	SecureCookie bool
	Now          func() time.Time
}

type Server struct {
	Dependencies

	views *views
}

func NewServer(deps Dependencies) (*Server, error) {
	switch {
	case deps.Catalog == nil:
		return nil, errors.New("web: catalog is required")
	case deps.Store == nil:
		return nil, errors.New("web: session store is required")
	case deps.Gate == nil:
		return nil, errors.New("web: session gate is required")
	case deps.Transcripts == nil || deps.Prompts == nil || deps.Bulk == nil:
		return nil, errors.New("web: all three simulators are required")
	case deps.Uploads == nil || deps.Schemas == nil:
		return nil, errors.New("web: upload policy and schemas are required")
	}

	deps.Logger = log.Named(deps.Logger, "web")

	if deps.Now == nil {
		deps.Now = time.Now
	}

	v, err := newViews()
	if err != nil {
		return nil, err
	}

	return &Server{Dependencies: deps, views: v}, nil
}

func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   s.Catalog.HubName,
		BodyLimit: 32 * 1024 * 1024,
	})

	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			return s.Store.HealthCheck(c.Context()) == nil
		},
	}))
	app.Get("/health", s.HealthCheck)

	// Route middleware runs in order before the handler given first.
	app.Get("/", s.Home, s.loadSession)
	app.Get("/login", s.LoginPage, s.loadSession)
	app.Post("/login", s.Login, s.loadSession)
	app.Post("/demo", s.Demo, s.loadSession)
	app.Post("/logout", s.Logout, s.loadSession)

	app.Get("/dashboard", s.Dashboard, s.loadSession, s.requirePage)
	app.Get("/system", s.SystemInfo, s.loadSession, s.requirePage)
	app.Get("/projects", s.Projects, s.loadSession, s.requirePage)
	app.Post("/projects/:kind", s.RunProject, s.loadSession, s.requirePage)
	app.Post("/projects/:kind/clear", s.ClearProject, s.loadSession, s.requirePage)
	app.Get("/projects/:kind/report", s.ReportPage, s.loadSession, s.requirePage)
	app.Get("/projects/:kind/export/:format", s.ExportPage, s.loadSession, s.requirePage)

	api := app.Group("/api", s.loadSession)
	api.Get("/session", s.APISession)
	api.Post("/login", s.APILogin)
	api.Post("/demo", s.APIDemo)
	api.Post("/logout", s.APILogout)
	api.Get("/fields/:kind", s.APIFields)
	api.Get("/schemas/:kind", s.APISchema)

	authAPI := api.Group("", s.requireAPI)
	authAPI.Post("/generator", s.APIGenerate)
	authAPI.Post("/prompt", s.APIPromptTest)
	authAPI.Post("/bulk", s.APIBulkAnalysis)
	authAPI.Get("/reports/:kind", s.APIReport)
	authAPI.Get("/reports/:kind/export/:format", s.APIExport)
	authAPI.Get("/reports/:kind/:tab", s.APIReport)
	authAPI.Delete("/reports/:kind", s.APIClearReport)
	authAPI.Get("/activity", s.APIActivity)

	return app
}

func (s *Server) Start(port int) error {
	return s.App().Listen(":" + strconv.Itoa(port))
}

func (s *Server) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := s.Catalog.HubName + " is healthy"
	httpStatus := fiber.StatusOK
	store := "ok"

	if err := s.Store.HealthCheck(c.Context()); err != nil {
		status = "unhealthy"
		message = s.Catalog.HubName + " is unhealthy"
		httpStatus = fiber.StatusServiceUnavailable
		store = err.Error()
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"version": s.Version,
		"checkers": fiber.Map{
			"session_store": store,
		},
		"timestamp": s.Now().UTC(),
	})
}
