// Package presenter shows the latest report of each workflow through tabbed panels and
// serves its downloads.
package presenter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/services"
)

type Tab string

const (
	TabFull      Tab = "full"
	TabMetrics   Tab = "metrics"
	TabSamples   Tab = "samples"
	TabAnalytics Tab = "analytics"
	TabFindings  Tab = "findings"
	TabAlerts    Tab = "alerts"
	TabExport    Tab = "export"
)

func (t Tab) Title() string {
	switch t {
	case TabFull:
		return "Full Report"
	case TabMetrics:
		return "Metrics"
	case TabSamples:
		return "Sample Outputs"
	case TabAnalytics:
		return "Analytics"
	case TabFindings:
		return "Key Findings"
	case TabAlerts:
		return "Alerts"
	case TabExport:
		return "Export"
	default:
		return string(t)
	}
}

// Tabs lists the result tabs offered for kind, in display order.
func Tabs(kind models.ReportKind) []Tab {
	switch kind {
	case models.ReportKindTranscript:
		return []Tab{TabFull, TabMetrics, TabExport}
	case models.ReportKindPromptTest:
		return []Tab{TabFull, TabMetrics, TabSamples, TabExport}
	case models.ReportKindBulkAnalysis:
		return []Tab{TabFull, TabAnalytics, TabFindings, TabAlerts, TabExport}
	default:
		return nil
	}
}

// Panel is the content of one result tab.
type Panel struct {
	Kind       models.ReportKind `json:"kind"`
	Tab        Tab               `json:"tab"`
	Tabs       []Tab             `json:"tabs"`
	Title      string            `json:"title"`
	ReportID   string            `json:"report_id"`
	ProducedAt time.Time         `json:"produced_at"`
	Filename   string            `json:"filename"`
	Body       string            `json:"body,omitempty"`
	WordCount  int               `json:"word_count,omitempty"`
	Metrics    []models.Metric   `json:"metrics,omitempty"`
	Highlights []string          `json:"highlights,omitempty"`
	Alerts     []models.Alert    `json:"alerts,omitempty"`
	Exports    []ExportOption    `json:"exports,omitempty"`
}

// Present renders one tab of the session's latest report of kind.
func Present(sess *models.Session, kind models.ReportKind, tab Tab) (Panel, error) {
	tabs := Tabs(kind)
	if tabs == nil {
		return Panel{}, fmt.Errorf("%w: %s", services.ErrUnknownKind, kind)
	}

	if tab == "" {
		tab = TabFull
	}

	if !slices.Contains(tabs, tab) {
		return Panel{}, fmt.Errorf("%w: %s has no %q tab", services.ErrUnknownTab, kind.Title(), tab)
	}

	report, ok := sess.Report(kind)
	if !ok {
		return Panel{}, fmt.Errorf("%w: %s", services.ErrNoReport, kind.Title())
	}

	panel := Panel{
		Kind:       kind,
		Tab:        tab,
		Tabs:       tabs,
		Title:      report.Title,
		ReportID:   report.ID,
		ProducedAt: report.ProducedAt,
		Filename:   report.Filename,
	}

	switch tab {
	case TabFull:
		panel.Body = report.Body
		panel.WordCount = len(strings.Fields(report.Body))
	case TabMetrics, TabAnalytics:
		panel.Metrics = slices.Clone(report.Metrics)
	case TabSamples, TabFindings:
		panel.Highlights = slices.Clone(report.Highlights)
	case TabAlerts:
		panel.Alerts = slices.Clone(report.Alerts)
	case TabExport:
		panel.Exports = ExportOptions(kind)
	}

	return panel, nil
}

// Clear drops the report of kind and reports whether there was one.
func Clear(sess *models.Session, kind models.ReportKind) bool {
	_, ok := sess.Report(kind)
	sess.ClearReport(kind)

	return ok
}
