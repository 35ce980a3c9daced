package web

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dukex/projecthub/pkg/eventbus"
	"github.com/dukex/projecthub/pkg/events"
	"github.com/dukex/projecthub/pkg/forms"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/presenter"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/gofiber/fiber/v3"
)

// workflowForm is one simulator's decoded form: the visible fields and the run bound to
// the decoded configuration.
type workflowForm struct {
	Kind   models.ReportKind
	Fields []models.FieldSpec
	Files  int
	run    func(ctx context.Context) (*models.GeneratedReport, error)
}

func parseKind(value string) (models.ReportKind, error) {
	kind, ok := models.ParseReportKind(value)
	if !ok {
		return "", fmt.Errorf("%w: %s", services.ErrUnknownKind, value)
	}

	return kind, nil
}

// decodeForm rebuilds the configuration of kind from form values over the defaults.
// The returned form is usable even when err is a decoding error, so the page can be
// shown again with the warning.
func (s *Server) decodeForm(kind models.ReportKind, values url.Values, files []models.UploadedFile) (workflowForm, error) {
	switch kind {
	case models.ReportKindTranscript:
		cfg, err := forms.DecodeTranscript(s.Catalog, values)

		return workflowForm{
			Kind:   kind,
			Fields: forms.TranscriptFields(s.Catalog, cfg),
			run: func(ctx context.Context) (*models.GeneratedReport, error) {
				return s.Transcripts.Generate(ctx, cfg)
			},
		}, err

	case models.ReportKindPromptTest:
		cfg, err := forms.DecodePrompt(s.Catalog, values)
		if len(files) > 0 {
			cfg.Uploads = files
		}

		return workflowForm{
			Kind:   kind,
			Fields: forms.PromptFields(s.Catalog, s.Uploads.Accept(), cfg),
			Files:  cfg.SourceFileCount(),
			run: func(ctx context.Context) (*models.GeneratedReport, error) {
				return s.Prompts.Execute(ctx, cfg)
			},
		}, err

	case models.ReportKindBulkAnalysis:
		req, err := forms.DecodeBulk(s.Catalog, values, s.Now())

		return workflowForm{
			Kind:   kind,
			Fields: forms.BulkFields(s.Catalog, req),
			Files:  len(req.SelectedFiles()),
			run: func(ctx context.Context) (*models.GeneratedReport, error) {
				return s.Bulk.Execute(ctx, req)
			},
		}, err

	default:
		return workflowForm{}, fmt.Errorf("%w: %s", services.ErrUnknownKind, kind)
	}
}

// runWorkflow executes a simulated run and stores the report as the session's latest of
// its kind. A session that logged out while the run was in flight keeps nothing.
func (s *Server) runWorkflow(c fiber.Ctx, run func(ctx context.Context) (*models.GeneratedReport, error)) (*models.GeneratedReport, error) {
	report, err := run(c.Context())
	if err != nil {
		return nil, err
	}

	sess, err := s.update(c, func(sess *models.Session) error {
		if err := services.RequireAuthenticated(sess); err != nil {
			return err
		}

		sess.SetReport(report)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(c.Context(), sess.ID, events.ReportGenerated{
		BaseEvent:  events.NewBaseEvent(events.ReportGeneratedEvent, sess.ID),
		ReportID:   report.ID,
		Kind:       string(report.Kind),
		Title:      report.Title,
		ProducedAt: report.ProducedAt,
		Facts:      report.Facts,
	})

	return report, nil
}

func (s *Server) clearReport(c fiber.Ctx, kind models.ReportKind) (bool, error) {
	var cleared bool

	sess, err := s.update(c, func(sess *models.Session) error {
		cleared = presenter.Clear(sess, kind)

		return nil
	})
	if err != nil {
		return false, err
	}

	if cleared {
		s.publish(c.Context(), sess.ID, events.ReportCleared{
			BaseEvent: events.NewBaseEvent(events.ReportClearedEvent, sess.ID),
			Kind:      string(kind),
		})
	}

	return cleared, nil
}

func (s *Server) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.Publisher == nil {
		return
	}

	if err := s.Publisher.Publish(ctx, key, event); err != nil {
		s.Logger.WarnContext(ctx, "failed to publish event", "event_type", event.GetType(), "error", err)
	}
}

func successMessage(kind models.ReportKind, files int) string {
	switch kind {
	case models.ReportKindTranscript:
		return "Medical transcript generated successfully!"
	case models.ReportKindPromptTest:
		return "Prompt testing completed successfully!"
	case models.ReportKindBulkAnalysis:
		return fmt.Sprintf("Bulk analysis completed! Processed %d files successfully.", files)
	default:
		return ""
	}
}
