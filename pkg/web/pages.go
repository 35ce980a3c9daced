package web

import (
	"bytes"
	"errors"

	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/events"
	"github.com/dukex/projecthub/pkg/forms"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/presenter"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/gofiber/fiber/v3"
)

const (
	loginInfo     = "DEMO MODE - Enter any email and password to explore the system!"
	dashboardInfo = "Welcome to the A360 Internal Project Hub! This is a fully functional demo."
	systemInfo    = "You are using the A360 Internal Project Hub demo!"
)

func (s *Server) newPage(c fiber.Ctx, title string) page {
	return page{
		Title:   title,
		HubName: s.Catalog.HubName,
		Version: s.Version,
		Session: currentSession(c),
		Views:   models.Views,
	}
}

func (s *Server) render(c fiber.Ctx, status int, name string, p page) error {
	var buf bytes.Buffer
	if err := s.views.Render(&buf, name, p); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return c.Status(status).Send(buf.Bytes())
}

func (s *Server) renderError(c fiber.Ctx, err error) error {
	status := statusOf(err)
	if status == fiber.StatusInternalServerError {
		s.Logger.ErrorContext(c.Context(), "request failed", "path", c.Path(), "error", err)
	}

	p := s.newPage(c, services.Message(err))
	p.Warning = services.Message(err)

	return s.render(c, status, "error", p)
}

func (s *Server) Home(c fiber.Ctx) error {
	if currentSession(c).Authenticated {
		return redirect(c, "/"+string(currentSession(c).CurrentView))
	}

	return redirect(c, "/login")
}

func (s *Server) LoginPage(c fiber.Ctx) error {
	if currentSession(c).Authenticated {
		return redirect(c, "/dashboard")
	}

	p := s.newPage(c, "Login")
	p.Info = loginInfo

	return s.render(c, fiber.StatusOK, "login", p)
}

func (s *Server) Login(c fiber.Ctx) error {
	values, _, err := formValues(c)
	if err != nil {
		return s.renderError(c, services.NewValidationError("login", "invalid_form", "Invalid form submission", services.ErrInvalidConfig))
	}

	_, err = s.update(c, func(sess *models.Session) error {
		return s.Gate.Login(c.Context(), sess, values.Get("email"), values.Get("password"))
	})
	if err != nil {
		if !services.IsValidationError(err) {
			return s.renderError(c, err)
		}

		p := s.newPage(c, "Login")
		p.Info = loginInfo
		p.Warning = services.Message(err)

		return s.render(c, fiber.StatusBadRequest, "login", p)
	}

	return redirect(c, "/dashboard")
}

func (s *Server) Demo(c fiber.Ctx) error {
	_, err := s.update(c, func(sess *models.Session) error {
		s.Gate.EnterDemoMode(c.Context(), sess)

		return nil
	})
	if err != nil {
		return s.renderError(c, err)
	}

	return redirect(c, "/dashboard")
}

func (s *Server) Logout(c fiber.Ctx) error {
	if err := s.endSession(c); err != nil {
		return s.renderError(c, err)
	}

	return redirect(c, "/login")
}

func (s *Server) navigate(c fiber.Ctx, view models.View) error {
	_, err := s.update(c, func(sess *models.Session) error {
		return s.Gate.Navigate(sess, view)
	})

	return err
}

func (s *Server) Dashboard(c fiber.Ctx) error {
	if err := s.navigate(c, models.ViewDashboard); err != nil {
		return s.renderError(c, err)
	}

	p := s.newPage(c, "Dashboard")
	p.Info = dashboardInfo
	p.Metrics = s.Catalog.DashboardMetrics

	if s.Activity != nil {
		p.Recent = s.Activity.Recent(10)
	}

	return s.render(c, fiber.StatusOK, "dashboard", p)
}

func (s *Server) SystemInfo(c fiber.Ctx) error {
	if err := s.navigate(c, models.ViewSystemInfo); err != nil {
		return s.renderError(c, err)
	}

	p := s.newPage(c, "System Info")
	p.Notice = systemInfo
	p.Components = s.Catalog.SystemStatus

	return s.render(c, fiber.StatusOK, "system", p)
}

// Projects shows a workflow form. The query carries the current form values so that
// fields depending on other fields are derived again.
func (s *Server) Projects(c fiber.Ctx) error {
	if err := s.navigate(c, models.ViewProjects); err != nil {
		return s.renderError(c, err)
	}

	kind := models.ReportKindTranscript
	if tab := c.Query("tab"); tab != "" {
		parsed, err := parseKind(tab)
		if err != nil {
			return s.renderError(c, err)
		}

		kind = parsed
	}

	values := queryValues(c)
	form, err := s.decodeForm(kind, values, nil)

	p := s.projectPage(c, form)
	if err != nil {
		p.Warning = services.Message(err)
	}

	if values.Has("done") && p.Project.Panel != nil {
		p.Notice = successMessage(kind, form.Files)
	}

	return s.render(c, fiber.StatusOK, "projects", p)
}

// RunProject executes the workflow of :kind with the submitted form. Validation failures
// show the form again with the warning; a successful run redirects to the form with
// the result.
func (s *Server) RunProject(c fiber.Ctx) error {
	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return s.renderError(c, err)
	}

	values, headers, err := formValues(c)
	if err != nil {
		return s.renderError(c, services.NewValidationError("run", "invalid_form", "Invalid form submission", services.ErrInvalidConfig))
	}

	form, err := s.decodeForm(kind, values, uploadedFiles(headers))
	if err == nil {
		_, err = s.runWorkflow(c, form.run)
	}

	if err != nil {
		if !services.IsValidationError(err) {
			return s.renderError(c, err)
		}

		p := s.projectPage(c, form)
		p.Warning = services.Message(err)

		return s.render(c, fiber.StatusBadRequest, "projects", p)
	}

	query := forms.Values(form.Fields)
	query.Set("tab", kind.Slug())
	query.Set("done", "1")

	return redirect(c, "/projects?"+query.Encode())
}

func (s *Server) ClearProject(c fiber.Ctx) error {
	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return s.renderError(c, err)
	}

	if _, err := s.clearReport(c, kind); err != nil {
		return s.renderError(c, err)
	}

	return redirect(c, "/projects?tab="+kind.Slug())
}

func (s *Server) ReportPage(c fiber.Ctx) error {
	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return s.renderError(c, err)
	}

	panel, err := presenter.Present(currentSession(c), kind, presenter.Tab(c.Query("tab")))
	if err != nil {
		return s.renderError(c, err)
	}

	p := s.newPage(c, kind.Title()+" - "+panel.Tab.Title())
	p.Panel = &panel

	return s.render(c, fiber.StatusOK, "report", p)
}

// ExportPage downloads the report text, or explains that the format is inert.
func (s *Server) ExportPage(c fiber.Ctx) error {
	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return s.renderError(c, err)
	}

	download, err := s.export(c, kind, presenter.ExportFormat(c.Params("format")))
	if err != nil {
		if !errors.Is(err, services.ErrNotImplementedInDemo) {
			return s.renderError(c, err)
		}

		panel, presentErr := presenter.Present(currentSession(c), kind, presenter.TabExport)
		if presentErr != nil {
			return s.renderError(c, presentErr)
		}

		p := s.newPage(c, kind.Title()+" - Export")
		p.Panel = &panel
		p.Warning = services.Message(err)

		return s.render(c, fiber.StatusNotImplemented, "report", p)
	}

	return sendDownload(c, download)
}

func (s *Server) export(c fiber.Ctx, kind models.ReportKind, format presenter.ExportFormat) (presenter.Download, error) {
	sess := currentSession(c)

	download, err := presenter.Export(sess, kind, format)
	if err != nil && !errors.Is(err, services.ErrNotImplementedInDemo) {
		return download, err
	}

	var reportID string
	if report, ok := sess.Report(kind); ok {
		reportID = report.ID
	}

	s.publish(c.Context(), sess.ID, events.ExportRequested{
		BaseEvent: events.NewBaseEvent(events.ExportRequestedEvent, sess.ID),
		ReportID:  reportID,
		Kind:      string(kind),
		Format:    string(format),
		Served:    err == nil,
	})

	return download, err
}

func sendDownload(c fiber.Ctx, download presenter.Download) error {
	c.Attachment(download.Filename)
	c.Set(fiber.HeaderContentType, download.ContentType)

	return c.Send(download.Body)
}

func (s *Server) projectPage(c fiber.Ctx, form workflowForm) page {
	p := s.newPage(c, "Projects - "+form.Kind.Title())

	view := &projectView{
		Kind:   form.Kind,
		Slug:   form.Kind.Slug(),
		Fields: form.Fields,
	}

	for _, kind := range models.ReportKinds {
		view.Tabs = append(view.Tabs, projectTab{Slug: kind.Slug(), Title: kind.Title(), Active: kind == form.Kind})
	}

	switch form.Kind {
	case models.ReportKindTranscript:
		view.Stats = s.Catalog.GenerationStats
	case models.ReportKindPromptTest:
		view.Multipart = true
		view.History = s.history(form.Kind)
	case models.ReportKindBulkAnalysis:
		view.Files = s.Catalog.TranscriptFiles
		view.History = s.history(form.Kind)
	}

	if panel, err := presenter.Present(currentSession(c), form.Kind, presenter.TabFull); err == nil {
		view.Panel = &panel
	}

	p.Project = view

	return p
}

func (s *Server) history(kind models.ReportKind) *catalog.Table {
	var table catalog.Table

	switch {
	case s.Activity != nil && kind == models.ReportKindPromptTest:
		table = s.Activity.PromptHistory()
	case s.Activity != nil && kind == models.ReportKindBulkAnalysis:
		table = s.Activity.AnalysisHistory()
	case kind == models.ReportKindPromptTest:
		table = s.Catalog.PromptHistory
	case kind == models.ReportKindBulkAnalysis:
		table = s.Catalog.AnalysisHistory
	default:
		return nil
	}

	return &table
}
