package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/projecthub/pkg/activity"
	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/cmd"
	"github.com/dukex/projecthub/pkg/config"
	"github.com/dukex/projecthub/pkg/eventbus"
	"github.com/dukex/projecthub/pkg/otelhelper"
	"github.com/dukex/projecthub/pkg/schemas"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/dukex/projecthub/pkg/session"
	"github.com/dukex/projecthub/pkg/simulator"
	"github.com/dukex/projecthub/pkg/uploads"
	"github.com/dukex/projecthub/pkg/web"
)

// Hub is the assembled server with the resources it owns.
type Hub struct {
	Server   *web.Server
	Store    session.Store
	EventBus eventbus.EventBus
	Janitor  *session.Janitor
	Activity *activity.Recorder

	logger   *slog.Logger
	shutdown otelhelper.ShutdownFunc
}

// NewHub wires the catalog, session store, event bus, simulators and web server from
// cfg. Resources opened before a failure are released.
func NewHub(ctx context.Context, cfg config.Config, logger *slog.Logger) (hub *Hub, err error) {
	hub = &Hub{logger: logger}

	defer func() {
		if err != nil {
			hub.Close()
			hub = nil
		}
	}()

	cat, err := cmd.NewCatalog(cfg.CatalogPath)
	if err != nil {
		return hub, err
	}

	validate, err := catalog.NewValidator(cat)
	if err != nil {
		return hub, fmt.Errorf("failed to build validator: %w", err)
	}

	policy, err := uploads.NewPolicy(cat.UploadExtensions)
	if err != nil {
		return hub, fmt.Errorf("failed to build upload policy: %w", err)
	}

	registry, err := schemas.NewRegistry()
	if err != nil {
		return hub, fmt.Errorf("failed to load request schemas: %w", err)
	}

	tracer, shutdown, err := cmd.NewTracer(ctx, cfg)
	if err != nil {
		return hub, err
	}

	hub.shutdown = shutdown

	hub.Store, err = cmd.NewSessionStore(ctx, cfg.Session, logger)
	if err != nil {
		return hub, fmt.Errorf("failed to open session store: %w", err)
	}

	hub.EventBus, err = cmd.NewEventBus(cfg.Events, cfg.ServiceName, logger)
	if err != nil {
		return hub, err
	}

	hub.Activity = activity.NewRecorder(cat, logger)
	if err := hub.Activity.Register(hub.EventBus); err != nil {
		return hub, fmt.Errorf("failed to register activity handlers: %w", err)
	}

	if err := hub.EventBus.Subscribe(ctx); err != nil {
		return hub, fmt.Errorf("failed to subscribe to hub events: %w", err)
	}

	hub.Janitor = session.NewJanitor(hub.Store, cfg.Session.SweepSchedule, logger)
	if err := hub.Janitor.Start(ctx); err != nil {
		return hub, err
	}

	opts := []simulator.Option{
		simulator.WithLatencyScale(cfg.LatencyScale),
		simulator.WithTracer(tracer),
		simulator.WithLogger(logger),
	}

	hub.Server, err = web.NewServer(web.Dependencies{
		Logger:       logger,
		Catalog:      cat,
		Store:        hub.Store,
		Gate:         services.NewGate(logger, services.WithPublisher(hub.EventBus), services.WithDemoIdentity(cfg.DemoIdentity)),
		Transcripts:  simulator.NewTranscriptGenerator(validate, opts...),
		Prompts:      simulator.NewPromptTester(cat, validate, policy, opts...),
		Bulk:         simulator.NewBulkAnalyzer(cat, validate, opts...),
		Uploads:      policy,
		Schemas:      registry,
		Publisher:    hub.EventBus,
		Activity:     hub.Activity,
		Version:      version,
		SecureCookie: cfg.SecureCookie,
	})
	if err != nil {
		return hub, err
	}

	return hub, nil
}

// Close stops the janitor and releases the event bus, the session store and the tracer.
func (h *Hub) Close() {
	ctx := context.Background()

	if h.Janitor != nil {
		h.Janitor.Stop()
	}

	if h.EventBus != nil {
		if err := h.EventBus.Close(); err != nil {
			h.logger.Error("Failed to close event bus", "error", err)
		}
	}

	if h.Store != nil {
		if err := h.Store.Close(); err != nil {
			h.logger.Error("Failed to close session store", "error", err)
		}
	}

	if h.shutdown != nil {
		if err := h.shutdown(ctx); err != nil {
			h.logger.Error("Failed to shut down tracer", "error", err)
		}
	}
}
