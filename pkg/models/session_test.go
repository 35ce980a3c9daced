package models_test

import (
	"testing"
	"time"

	"github.com/dukex/projecthub/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_Defaults(t *testing.T) {
	t.Parallel()

	session := models.NewSession("s-1")

	assert.Equal(t, "s-1", session.ID)
	assert.False(t, session.Authenticated)
	assert.Empty(t, session.Identity)
	assert.Equal(t, models.ViewDashboard, session.CurrentView)
	assert.Empty(t, session.Reports)
}

func TestSession_Reset(t *testing.T) {
	t.Parallel()

	now := time.Now()
	session := models.NewSession("s-1")
	session.Authenticated = true
	session.Identity = "alice@example.com"
	session.DemoMode = true
	session.CurrentView = models.ViewSystemInfo
	session.LoginAt = &now
	session.SetReport(&models.GeneratedReport{ID: "r-1", Kind: models.ReportKindTranscript})

	session.Reset()

	assert.Equal(t, "s-1", session.ID)
	assert.False(t, session.Authenticated)
	assert.False(t, session.DemoMode)
	assert.Empty(t, session.Identity)
	assert.Nil(t, session.LoginAt)
	assert.Equal(t, models.ViewDashboard, session.CurrentView)

	_, ok := session.Report(models.ReportKindTranscript)
	assert.False(t, ok)
}

func TestSession_SetReportReplacesSameKind(t *testing.T) {
	t.Parallel()

	session := &models.Session{ID: "s-1"}
	session.SetReport(&models.GeneratedReport{ID: "first", Kind: models.ReportKindPromptTest})
	session.SetReport(&models.GeneratedReport{ID: "second", Kind: models.ReportKindPromptTest})
	session.SetReport(&models.GeneratedReport{ID: "bulk", Kind: models.ReportKindBulkAnalysis})

	report, ok := session.Report(models.ReportKindPromptTest)
	require.True(t, ok)
	assert.Equal(t, "second", report.ID)
	assert.Len(t, session.Reports, 2)

	session.ClearReport(models.ReportKindPromptTest)

	_, ok = session.Report(models.ReportKindPromptTest)
	assert.False(t, ok)
}

func TestSession_CloneIsDeep(t *testing.T) {
	t.Parallel()

	session := models.NewSession("s-1")
	session.SetReport(&models.GeneratedReport{
		ID:         "r-1",
		Kind:       models.ReportKindBulkAnalysis,
		Highlights: []string{"one"},
	})

	clone := session.Clone()
	clone.Authenticated = true
	clone.Reports[models.ReportKindBulkAnalysis].Highlights[0] = "changed"
	clone.ClearReport(models.ReportKindBulkAnalysis)

	assert.False(t, session.Authenticated)

	report, ok := session.Report(models.ReportKindBulkAnalysis)
	require.True(t, ok)
	assert.Equal(t, "one", report.Highlights[0])
}

func TestView_Valid(t *testing.T) {
	t.Parallel()

	for _, view := range models.Views {
		assert.True(t, view.Valid(), view)
	}

	assert.False(t, models.View("admin").Valid())
	assert.Equal(t, "System Info", models.ViewSystemInfo.Title())
}
