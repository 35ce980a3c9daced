package models

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// ReportKind identifies which workflow simulator produced a report.
type ReportKind string

const (
	ReportKindTranscript   ReportKind = "transcript"
	ReportKindPromptTest   ReportKind = "prompt_test"
	ReportKindBulkAnalysis ReportKind = "bulk_analysis"
)

// ReportKinds lists the kinds in the order the project tabs show them.
var ReportKinds = []ReportKind{ReportKindTranscript, ReportKindPromptTest, ReportKindBulkAnalysis}

var reportKindAliases = map[string]ReportKind{
	"transcript":    ReportKindTranscript,
	"generator":     ReportKindTranscript,
	"prompt_test":   ReportKindPromptTest,
	"prompt":        ReportKindPromptTest,
	"bulk_analysis": ReportKindBulkAnalysis,
	"bulk":          ReportKindBulkAnalysis,
}

// ParseReportKind accepts both the canonical kind and the project tab slug.
func ParseReportKind(value string) (ReportKind, bool) {
	kind, ok := reportKindAliases[strings.ToLower(strings.TrimSpace(value))]

	return kind, ok
}

// Slug is the short name used in URLs.
func (k ReportKind) Slug() string {
	switch k {
	case ReportKindTranscript:
		return "generator"
	case ReportKindPromptTest:
		return "prompt"
	case ReportKindBulkAnalysis:
		return "bulk"
	default:
		return string(k)
	}
}

func (k ReportKind) Title() string {
	switch k {
	case ReportKindTranscript:
		return "Transcript Generator"
	case ReportKindPromptTest:
		return "Prompt Tester"
	case ReportKindBulkAnalysis:
		return "Bulk Analyzer"
	default:
		return string(k)
	}
}

type Metric struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	Delta string `json:"delta" yaml:"delta"`
}

type AlertSeverity string

const (
	AlertSeverityHigh   AlertSeverity = "high"
	AlertSeverityMedium AlertSeverity = "medium"
	AlertSeverityInfo   AlertSeverity = "info"
)

type Alert struct {
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}

// GeneratedReport is the text artifact produced by a simulator run.
type GeneratedReport struct {
	ID         string     `json:"id"`
	Kind       ReportKind `json:"kind"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Filename   string     `json:"filename"`
	ProducedAt time.Time  `json:"produced_at"`
	Metrics    []Metric   `json:"metrics,omitempty"`
	Highlights []string   `json:"highlights,omitempty"`
	Alerts     []Alert    `json:"alerts,omitempty"`
	// Facts are the echoed headline figures (model, file count, findings) used for
	// history rows and event payloads.
	Facts map[string]string `json:"facts,omitempty"`
}

func (r *GeneratedReport) Clone() *GeneratedReport {
	if r == nil {
		return nil
	}

	clone := *r
	clone.Metrics = slices.Clone(r.Metrics)
	clone.Highlights = slices.Clone(r.Highlights)
	clone.Alerts = slices.Clone(r.Alerts)
	clone.Facts = maps.Clone(r.Facts)

	return &clone
}
