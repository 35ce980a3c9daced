package presenter_test

import (
	"testing"
	"time"

	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/presenter"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWith(reports ...*models.GeneratedReport) *models.Session {
	sess := models.NewSession("s-1")
	for _, report := range reports {
		sess.SetReport(report)
	}

	return sess
}

func bulkReport() *models.GeneratedReport {
	return &models.GeneratedReport{
		ID:         "r-bulk",
		Kind:       models.ReportKindBulkAnalysis,
		Title:      "Bulk Transcript Analysis Report",
		Body:       "BULK TRANSCRIPT ANALYSIS REPORT\nFiles Processed: 6",
		Filename:   "analysis_report_20241003_1530.txt",
		ProducedAt: time.Date(2024, 10, 3, 15, 30, 0, 0, time.UTC),
		Metrics:    []models.Metric{{Label: "Files Processed", Value: "6", Delta: "100% success"}},
		Highlights: []string{"Patient concerns and questions (18 mentions)"},
		Alerts:     []models.Alert{{Severity: models.AlertSeverityHigh, Message: "7 instances"}},
	}
}

func TestTabs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []presenter.Tab{"full", "metrics", "export"}, presenter.Tabs(models.ReportKindTranscript))
	assert.Equal(t, []presenter.Tab{"full", "metrics", "samples", "export"}, presenter.Tabs(models.ReportKindPromptTest))
	assert.Equal(t, []presenter.Tab{"full", "analytics", "findings", "alerts", "export"}, presenter.Tabs(models.ReportKindBulkAnalysis))
	assert.Nil(t, presenter.Tabs("unknown"))
}

func TestPresent(t *testing.T) {
	t.Parallel()

	sess := sessionWith(bulkReport())

	tests := []struct {
		tab   presenter.Tab
		check func(t *testing.T, panel presenter.Panel)
	}{
		{"", func(t *testing.T, panel presenter.Panel) {
			assert.Equal(t, presenter.TabFull, panel.Tab)
			assert.Equal(t, bulkReport().Body, panel.Body)
			assert.Equal(t, 7, panel.WordCount)
		}},
		{presenter.TabAnalytics, func(t *testing.T, panel presenter.Panel) {
			assert.Equal(t, bulkReport().Metrics, panel.Metrics)
			assert.Empty(t, panel.Body)
		}},
		{presenter.TabFindings, func(t *testing.T, panel presenter.Panel) {
			assert.Equal(t, bulkReport().Highlights, panel.Highlights)
		}},
		{presenter.TabAlerts, func(t *testing.T, panel presenter.Panel) {
			assert.Equal(t, bulkReport().Alerts, panel.Alerts)
		}},
		{presenter.TabExport, func(t *testing.T, panel presenter.Panel) {
			assert.Equal(t, presenter.ExportOptions(models.ReportKindBulkAnalysis), panel.Exports)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			t.Parallel()

			panel, err := presenter.Present(sess, models.ReportKindBulkAnalysis, tt.tab)
			require.NoError(t, err)
			assert.Equal(t, "r-bulk", panel.ReportID)
			assert.Len(t, panel.Tabs, 5)
			tt.check(t, panel)
		})
	}
}

func TestPresent_Errors(t *testing.T) {
	t.Parallel()

	sess := sessionWith(bulkReport())

	_, err := presenter.Present(sess, models.ReportKindTranscript, presenter.TabFull)
	require.ErrorIs(t, err, services.ErrNoReport)

	_, err = presenter.Present(sess, models.ReportKindBulkAnalysis, presenter.TabSamples)
	require.ErrorIs(t, err, services.ErrUnknownTab)

	_, err = presenter.Present(sess, "weather", presenter.TabFull)
	require.ErrorIs(t, err, services.ErrUnknownKind)
}

func TestExport(t *testing.T) {
	t.Parallel()

	sess := sessionWith(bulkReport(), &models.GeneratedReport{
		ID:       "r-prompt",
		Kind:     models.ReportKindPromptTest,
		Body:     "PROMPT TESTING RESULTS REPORT",
		Filename: "test_results.json",
	})

	txt, err := presenter.Export(sess, models.ReportKindBulkAnalysis, presenter.ExportTXT)
	require.NoError(t, err)
	assert.Equal(t, "analysis_report_20241003_1530.txt", txt.Filename)
	assert.Equal(t, bulkReport().Body, string(txt.Body))

	jsonExport, err := presenter.Export(sess, models.ReportKindBulkAnalysis, presenter.ExportJSON)
	require.NoError(t, err)
	assert.Equal(t, "analysis_report_20241003_1530.json", jsonExport.Filename)
	assert.Equal(t, bulkReport().Body, string(jsonExport.Body), "json export is the literal report text")

	prompt, err := presenter.Export(sess, models.ReportKindPromptTest, presenter.ExportJSON)
	require.NoError(t, err)
	assert.Equal(t, "test_results.json", prompt.Filename)

	for _, format := range []presenter.ExportFormat{presenter.ExportPDF, presenter.ExportExcel, presenter.ExportEmail, presenter.ExportSave} {
		_, err := presenter.Export(sess, models.ReportKindBulkAnalysis, format)
		require.ErrorIs(t, err, services.ErrNotImplementedInDemo, format)
	}

	_, err = presenter.Export(sess, models.ReportKindBulkAnalysis, "docx")
	require.ErrorIs(t, err, services.ErrInvalidConfig)

	_, err = presenter.Export(sess, models.ReportKindTranscript, presenter.ExportTXT)
	require.ErrorIs(t, err, services.ErrNoReport)
}

func TestClear(t *testing.T) {
	t.Parallel()

	sess := sessionWith(bulkReport())

	assert.True(t, presenter.Clear(sess, models.ReportKindBulkAnalysis))
	assert.False(t, presenter.Clear(sess, models.ReportKindBulkAnalysis))

	_, err := presenter.Present(sess, models.ReportKindBulkAnalysis, presenter.TabFull)
	require.ErrorIs(t, err, services.ErrNoReport)
}

func TestLogoutLeavesNothingToPresent(t *testing.T) {
	t.Parallel()

	sess := sessionWith(bulkReport())
	services.NewGate(nil).Logout(t.Context(), sess)

	for _, kind := range models.ReportKinds {
		_, err := presenter.Present(sess, kind, presenter.TabFull)
		require.ErrorIs(t, err, services.ErrNoReport)
	}
}
