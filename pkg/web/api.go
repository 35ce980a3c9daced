package web

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/dukex/projecthub/pkg/activity"
	"github.com/dukex/projecthub/pkg/forms"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/presenter"
	"github.com/dukex/projecthub/pkg/schemas"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/gofiber/fiber/v3"
)

const defaultActivityLimit = 20

func (s *Server) APISession(c fiber.Ctx) error {
	return c.JSON(newSessionResponse(currentSession(c)))
}

func (s *Server) APILogin(c fiber.Ctx) error {
	if err := s.Schemas.Validate(schemas.Login, c.Body()); err != nil {
		return handleServiceError(c, err)
	}

	var req LoginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	sess, err := s.update(c, func(sess *models.Session) error {
		return s.Gate.Login(c.Context(), sess, req.Identity, req.Credential)
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(newSessionResponse(sess))
}

func (s *Server) APIDemo(c fiber.Ctx) error {
	sess, err := s.update(c, func(sess *models.Session) error {
		s.Gate.EnterDemoMode(c.Context(), sess)

		return nil
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(newSessionResponse(sess))
}

func (s *Server) APILogout(c fiber.Ctx) error {
	if err := s.endSession(c); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// APIFields lists the fields visible for the form state given as query values.
func (s *Server) APIFields(c fiber.Ctx) error {
	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return handleServiceError(c, err)
	}

	form, err := s.decodeForm(kind, queryValues(c), nil)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(FieldsResponse{Kind: kind, Fields: form.Fields})
}

func (s *Server) APISchema(c fiber.Ctx) error {
	name := c.Params("kind")
	if name != schemas.Login {
		kind, err := parseKind(name)
		if err != nil {
			return handleServiceError(c, err)
		}

		name = string(kind)
	}

	data, ok := s.Schemas.Raw(name)
	if !ok {
		return handleServiceError(c, services.ErrUnknownKind)
	}

	c.Set(fiber.HeaderContentType, "application/schema+json")

	return c.Send(data)
}

func (s *Server) APIGenerate(c fiber.Ctx) error {
	if err := s.Schemas.Validate(schemas.Transcript, c.Body()); err != nil {
		return handleServiceError(c, err)
	}

	cfg := forms.DefaultTranscript(s.Catalog)
	if err := json.Unmarshal(c.Body(), &cfg); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	return s.respondRun(c, 1, func(ctx context.Context) (*models.GeneratedReport, error) {
		return s.Transcripts.Generate(ctx, cfg)
	})
}

// APIPromptTest runs the Prompt Tester. A body without a prompt uses the text of the
// chosen template.
func (s *Server) APIPromptTest(c fiber.Ctx) error {
	if err := s.Schemas.Validate(schemas.PromptTest, c.Body()); err != nil {
		return handleServiceError(c, err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &keys); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	cfg := forms.DefaultPrompt(s.Catalog)
	if err := json.Unmarshal(c.Body(), &cfg); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if _, ok := keys["prompt"]; !ok {
		cfg.Prompt = ""
		forms.ApplyPromptTemplate(s.Catalog, &cfg)
	}

	return s.respondRun(c, cfg.SourceFileCount(), func(ctx context.Context) (*models.GeneratedReport, error) {
		return s.Prompts.Execute(ctx, cfg)
	})
}

// APIBulkAnalysis runs the Bulk Analyzer. Omitted files select every catalog file; an
// empty list selects none.
func (s *Server) APIBulkAnalysis(c fiber.Ctx) error {
	if err := s.Schemas.Validate(schemas.BulkAnalysis, c.Body()); err != nil {
		return handleServiceError(c, err)
	}

	req := forms.DefaultBulkRequest(s.Catalog, s.Now())
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	return s.respondRun(c, len(req.SelectedFiles()), func(ctx context.Context) (*models.GeneratedReport, error) {
		return s.Bulk.Execute(ctx, req)
	})
}

func (s *Server) respondRun(c fiber.Ctx, files int, run func(ctx context.Context) (*models.GeneratedReport, error)) error {
	report, err := s.runWorkflow(c, run)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(RunResponse{
		Message: successMessage(report.Kind, files),
		Report:  report,
		Tabs:    presenter.Tabs(report.Kind),
	})
}

func (s *Server) APIReport(c fiber.Ctx) error {
	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return handleServiceError(c, err)
	}

	panel, err := presenter.Present(currentSession(c), kind, presenter.Tab(c.Params("tab")))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(panel)
}

func (s *Server) APIClearReport(c fiber.Ctx) error {
	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return handleServiceError(c, err)
	}

	cleared, err := s.clearReport(c, kind)
	if err != nil {
		return handleServiceError(c, err)
	}

	if !cleared {
		return handleServiceError(c, services.ErrNoReport)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) APIExport(c fiber.Ctx) error {
	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return handleServiceError(c, err)
	}

	download, err := s.export(c, kind, presenter.ExportFormat(c.Params("format")))
	if err != nil {
		return handleServiceError(c, err)
	}

	return sendDownload(c, download)
}

func (s *Server) APIActivity(c fiber.Ctx) error {
	limit := defaultActivityLimit
	if value := c.Query("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return badRequest(c, "limit must be a non-negative integer")
		}

		limit = parsed
	}

	if s.Activity == nil {
		return c.JSON(ActivityResponse{
			Recent:          []activity.Entry{},
			PromptHistory:   s.Catalog.PromptHistory,
			AnalysisHistory: s.Catalog.AnalysisHistory,
		})
	}

	return c.JSON(ActivityResponse{
		Recent:          s.Activity.Recent(limit),
		PromptHistory:   s.Activity.PromptHistory(),
		AnalysisHistory: s.Activity.AnalysisHistory(),
	})
}
