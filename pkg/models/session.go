// Package models defines the core domain models for the project hub demo workflows.
package models

import "time"

// View is one of the top-level pages reachable from the navigation selector.
type View string

const (
	ViewDashboard  View = "dashboard"
	ViewProjects   View = "projects"
	ViewSystemInfo View = "system"
)

// Views lists the navigation entries in display order.
var Views = []View{ViewDashboard, ViewProjects, ViewSystemInfo}

func (v View) Valid() bool {
	switch v {
	case ViewDashboard, ViewProjects, ViewSystemInfo:
		return true
	default:
		return false
	}
}

func (v View) Title() string {
	switch v {
	case ViewProjects:
		return "Projects"
	case ViewSystemInfo:
		return "System Info"
	default:
		return "Dashboard"
	}
}

// Session is the per-browser ephemeral state: authentication and the latest report of
// each workflow kind. It is never written to durable storage.
type Session struct {
	ID            string                          `json:"id"`
	Authenticated bool                            `json:"authenticated"`
	Identity      string                          `json:"identity"`
	DemoMode      bool                            `json:"demo_mode"`
	CurrentView   View                            `json:"current_view"`
	LoginAt       *time.Time                      `json:"login_at,omitempty"`
	Reports       map[ReportKind]*GeneratedReport `json:"reports,omitempty"`
}

// NewSession creates an unauthenticated session positioned on the dashboard.
func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		CurrentView: ViewDashboard,
		Reports:     map[ReportKind]*GeneratedReport{},
	}
}

// Reset restores every field but the ID to its default, dropping all reports.
func (s *Session) Reset() {
	*s = *NewSession(s.ID)
}

// Report returns the latest report of kind, if any.
func (s *Session) Report(kind ReportKind) (*GeneratedReport, bool) {
	report, ok := s.Reports[kind]

	return report, ok && report != nil
}

// SetReport replaces the report of the same kind.
func (s *Session) SetReport(report *GeneratedReport) {
	if s.Reports == nil {
		s.Reports = map[ReportKind]*GeneratedReport{}
	}

	s.Reports[report.Kind] = report
}

func (s *Session) ClearReport(kind ReportKind) {
	delete(s.Reports, kind)
}

// Clone returns a deep copy so stores can hand out and accept whole sessions.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	clone := *s
	if s.LoginAt != nil {
		loginAt := *s.LoginAt
		clone.LoginAt = &loginAt
	}

	clone.Reports = make(map[ReportKind]*GeneratedReport, len(s.Reports))
	for kind, report := range s.Reports {
		clone.Reports[kind] = report.Clone()
	}

	return &clone
}
