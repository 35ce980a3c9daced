// Package simulator implements the templated workflow simulators. A run validates its
// configuration, waits a fixed artificial delay and renders a canned report; nothing is
// actually generated or analyzed.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukex/projecthub/pkg/log"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/otelhelper"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Content is what a render function produces; Run wraps it into a GeneratedReport.
type Content struct {
	Title      string
	Body       string
	Filename   string
	Metrics    []models.Metric
	Highlights []string
	Alerts     []models.Alert
	Facts      map[string]string
}

type (
	ValidateFunc[C any] func(cfg C) error
	RenderFunc[C any]   func(cfg C, now time.Time) (Content, error)
	SleepFunc           func(ctx context.Context, d time.Duration) error
)

type settings struct {
	latencyScale float64
	clock        func() time.Time
	sleep        SleepFunc
	tracer       trace.Tracer
	logger       *slog.Logger
}

type Option func(*settings)

// WithLatencyScale multiplies the fixed delay; 0 disables it.
func WithLatencyScale(scale float64) Option {
	return func(s *settings) {
		s.latencyScale = max(scale, 0)
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		s.clock = clock
	}
}

func WithSleep(sleep SleepFunc) Option {
	return func(s *settings) {
		s.sleep = sleep
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *settings) {
		s.tracer = tracer
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		latencyScale: 1,
		clock:        time.Now,
		sleep:        Sleep,
		tracer:       otelhelper.NoopTracer(),
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// Simulator is the session-independent core shared by every workflow: validate, wait,
// render.
type Simulator[C any] struct {
	kind     models.ReportKind
	validate ValidateFunc[C]
	render   RenderFunc[C]
	delay    time.Duration
	clock    func() time.Time
	sleep    SleepFunc
	tracer   trace.Tracer
	logger   *slog.Logger
}

func New[C any](kind models.ReportKind, delay time.Duration, validate ValidateFunc[C], render RenderFunc[C], opts ...Option) *Simulator[C] {
	s := newSettings(opts)

	return &Simulator[C]{
		kind:     kind,
		validate: validate,
		render:   render,
		delay:    time.Duration(float64(delay) * s.latencyScale),
		clock:    s.clock,
		sleep:    s.sleep,
		tracer:   s.tracer,
		logger:   log.Named(s.logger, "simulator").With("kind", kind),
	}
}

func (s *Simulator[C]) Kind() models.ReportKind {
	return s.kind
}

// Delay is the effective artificial processing time of a run.
func (s *Simulator[C]) Delay() time.Duration {
	return s.delay
}

// Run validates cfg, waits the processing delay and renders the report.
func (s *Simulator[C]) Run(ctx context.Context, cfg C) (*models.GeneratedReport, error) {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "simulator.run",
		attribute.String(otelhelper.ReportKindKey, string(s.kind)))
	defer span.End()

	if s.validate != nil {
		if err := s.validate(cfg); err != nil {
			otelhelper.SetError(span, err)
			s.logger.DebugContext(ctx, "configuration rejected", "error", err)

			return nil, err
		}
	}

	if s.delay > 0 {
		if err := s.sleep(ctx, s.delay); err != nil {
			otelhelper.SetError(span, err)

			return nil, err
		}
	}

	now := s.clock()

	content, err := s.render(cfg, now)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to render %s report: %w", s.kind, err)
	}

	report := &models.GeneratedReport{
		ID:         uuid.NewString(),
		Kind:       s.kind,
		Title:      content.Title,
		Body:       content.Body,
		Filename:   content.Filename,
		ProducedAt: now,
		Metrics:    content.Metrics,
		Highlights: content.Highlights,
		Alerts:     content.Alerts,
		Facts:      content.Facts,
	}

	span.SetAttributes(attribute.String(otelhelper.ReportIDKey, report.ID))
	s.logger.InfoContext(ctx, "report generated", "report_id", report.ID, "filename", report.Filename)

	return report, nil
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// configError turns validator failures into an ErrInvalidConfig service error naming
// the offending fields.
func configError(op string, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return services.NewValidationError(op, "invalid_config", err.Error(), services.ErrInvalidConfig)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, describe(fieldErr))
	}

	return services.NewValidationError(op, "invalid_config", strings.Join(messages, "; "), services.ErrInvalidConfig)
}

func describe(fieldErr validator.FieldError) string {
	field := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
	case "datetime":
		return field + " must be a YYYY-MM-DD date"
	case "catalog":
		return fmt.Sprintf("%s has unknown value %q", field, fmt.Sprint(fieldErr.Value()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fieldErr.Tag())
	}
}
