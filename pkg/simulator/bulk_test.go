package simulator_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/dukex/projecthub/pkg/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultBulk() models.BulkConfig {
	return models.BulkConfig{
		AnalysisType:        "Side Effects Detection",
		DataSource:          "Production Database (1,247 files)",
		DateFrom:            "2024-01-01",
		DateTo:              "2024-10-03",
		Parallel:            true,
		ConfidenceThreshold: 0.75,
		MaxResults:          10,
		IncludeContext:      true,
		ExportFormat:        "Excel with Charts",
	}
}

func allFiles() []string {
	return catalog.Default().Options(catalog.TranscriptFiles)
}

func TestBulkAnalyzer_Execute(t *testing.T) {
	t.Parallel()

	var slept atomic.Int64

	analyzer := simulator.NewBulkAnalyzer(catalog.Default(), newValidator(t), testOptions(&slept)...)

	report, err := analyzer.Execute(t.Context(), models.BulkRequest{Config: defaultBulk(), Files: allFiles()})
	require.NoError(t, err)

	assert.Equal(t, models.ReportKindBulkAnalysis, report.Kind)
	assert.Equal(t, "analysis_report_20241003_1530.txt", report.Filename)
	assert.Contains(t, report.Body, "Files Processed: 6\n")
	assert.Contains(t, report.Body, "• Total Findings: 42 relevant matches identified\n")
	assert.Contains(t, report.Body, "• High Confidence Results: 30 (71.4%)\n")
	assert.Contains(t, report.Body, "• Average Processing Time: 1.9s per file\n")
	assert.Contains(t, report.Body, "📄 Venous_002.txt (Sclerotherapy Treatment)\n")
	assert.Equal(t, "42", report.Facts["total_findings"])
	assert.Equal(t, int64(4*time.Second), slept.Load())
}

func TestBulkAnalyzer_ArithmeticScalesWithSelection(t *testing.T) {
	t.Parallel()

	analyzer := simulator.NewBulkAnalyzer(catalog.Default(), newValidator(t), testOptions(nil)...)

	report, err := analyzer.Execute(t.Context(), models.BulkRequest{
		Config: defaultBulk(),
		Files:  []string{"Medspa_001.txt", "Explant_002.txt"},
	})
	require.NoError(t, err)

	assert.Contains(t, report.Body, "Files Processed: 2\n")
	assert.Contains(t, report.Body, "• Total Findings: 14 relevant")
	assert.Contains(t, report.Body, "• High Confidence Results: 10 (71.4%)")
	assert.Contains(t, report.Body, "• Average Processing Time: 5.8s per file")
	assert.Contains(t, report.Body, "📄 Medspa_001.txt (Botox Initial Consultation)")
	assert.NotContains(t, report.Body, "Venous_001.txt")
}

func TestBulkAnalyzer_NoFilesSelected(t *testing.T) {
	t.Parallel()

	var slept atomic.Int64

	analyzer := simulator.NewBulkAnalyzer(catalog.Default(), newValidator(t), testOptions(&slept)...)

	for _, files := range [][]string{nil, {}} {
		_, err := analyzer.Execute(t.Context(), models.BulkRequest{Config: defaultBulk(), Files: files})
		require.ErrorIs(t, err, services.ErrNoFilesSelected)
	}

	assert.Zero(t, slept.Load())
}

func TestBulkAnalyzer_AnalysisFocus(t *testing.T) {
	t.Parallel()

	analyzer := simulator.NewBulkAnalyzer(catalog.Default(), newValidator(t), testOptions(nil)...)

	cfg := defaultBulk()
	cfg.AnalysisType = models.AnalysisKeywordSearch
	cfg.Keywords = "pain, swelling,"

	report, err := analyzer.Execute(t.Context(), models.BulkRequest{Config: cfg, Files: allFiles()})
	require.NoError(t, err)
	assert.Contains(t, report.Body, "Analysis Type: Keyword Search\nKeywords: pain, swelling (case-insensitive)\nData Source:")

	cfg = defaultBulk()
	report, err = analyzer.Execute(t.Context(), models.BulkRequest{Config: cfg, Files: allFiles()})
	require.NoError(t, err)
	assert.Contains(t, report.Body, "Analysis Type: Side Effects Detection\nData Source:")
}

func TestBulkAnalyzer_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*models.BulkRequest)
	}{
		{"threshold above one", func(r *models.BulkRequest) { r.Config.ConfidenceThreshold = 1.2 }},
		{"max results zero", func(r *models.BulkRequest) { r.Config.MaxResults = 0 }},
		{"bad date", func(r *models.BulkRequest) { r.Config.DateFrom = "01/01/2024" }},
		{"reversed range", func(r *models.BulkRequest) { r.Config.DateFrom = "2024-12-01" }},
		{"unknown file", func(r *models.BulkRequest) { r.Files = []string{"Cardio_001.txt"} }},
		{"unknown analysis", func(r *models.BulkRequest) { r.Config.AnalysisType = "Astrology" }},
	}

	analyzer := simulator.NewBulkAnalyzer(catalog.Default(), newValidator(t), testOptions(nil)...)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := models.BulkRequest{Config: defaultBulk(), Files: allFiles()}
			tt.mutate(&req)

			_, err := analyzer.Execute(t.Context(), req)
			require.ErrorIs(t, err, services.ErrInvalidConfig)
		})
	}
}

func TestBulkAnalyzer_ConfidenceAlerts(t *testing.T) {
	t.Parallel()

	analyzer := simulator.NewBulkAnalyzer(catalog.Default(), newValidator(t), testOptions(nil)...)

	cfg := defaultBulk()
	cfg.ConfidenceThreshold = 0.9

	report, err := analyzer.Execute(t.Context(), models.BulkRequest{Config: cfg, Files: allFiles()})
	require.NoError(t, err)

	assert.Contains(t, report.Alerts, models.Alert{
		Severity: models.AlertSeverityHigh,
		Message:  "2 files below 90% confidence threshold",
	})
}
