package web

import (
	"time"

	"github.com/dukex/projecthub/pkg/activity"
	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/presenter"
)

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Identity   string `json:"identity"`
	Credential string `json:"credential"`
}

// ReportSummary describes a stored report without its body.
type ReportSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Filename   string    `json:"filename"`
	ProducedAt time.Time `json:"produced_at"`
}

// SessionResponse is the caller's session as seen by the API.
type SessionResponse struct {
	Authenticated bool                                `json:"authenticated"`
	Identity      string                              `json:"identity,omitempty"`
	DemoMode      bool                                `json:"demo_mode"`
	CurrentView   models.View                         `json:"current_view"`
	LoginAt       *time.Time                          `json:"login_at,omitempty"`
	Reports       map[models.ReportKind]ReportSummary `json:"reports"`
}

// RunResponse is returned by the simulator endpoints.
type RunResponse struct {
	Message string                  `json:"message"`
	Report  *models.GeneratedReport `json:"report"`
	Tabs    []presenter.Tab         `json:"tabs"`
}

// FieldsResponse lists the fields visible for the queried form state.
type FieldsResponse struct {
	Kind   models.ReportKind  `json:"kind"`
	Fields []models.FieldSpec `json:"fields"`
}

// ActivityResponse is the activity feed with the two history tables.
type ActivityResponse struct {
	Recent          []activity.Entry `json:"recent"`
	PromptHistory   catalog.Table    `json:"prompt_history"`
	AnalysisHistory catalog.Table    `json:"analysis_history"`
}

func newSessionResponse(sess *models.Session) SessionResponse {
	resp := SessionResponse{
		Authenticated: sess.Authenticated,
		Identity:      sess.Identity,
		DemoMode:      sess.DemoMode,
		CurrentView:   sess.CurrentView,
		LoginAt:       sess.LoginAt,
		Reports:       make(map[models.ReportKind]ReportSummary, len(sess.Reports)),
	}

	for kind, report := range sess.Reports {
		if report == nil {
			continue
		}

		resp.Reports[kind] = ReportSummary{
			ID:         report.ID,
			Title:      report.Title,
			Filename:   report.Filename,
			ProducedAt: report.ProducedAt,
		}
	}

	return resp
}
