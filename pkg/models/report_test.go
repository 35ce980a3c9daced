package models_test

import (
	"testing"

	"github.com/dukex/projecthub/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestParseReportKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected models.ReportKind
		ok       bool
	}{
		{"transcript", models.ReportKindTranscript, true},
		{"generator", models.ReportKindTranscript, true},
		{"Prompt", models.ReportKindPromptTest, true},
		{"prompt_test", models.ReportKindPromptTest, true},
		{" bulk ", models.ReportKindBulkAnalysis, true},
		{"bulk_analysis", models.ReportKindBulkAnalysis, true},
		{"charts", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			kind, ok := models.ParseReportKind(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestReportKind_SlugRoundTrip(t *testing.T) {
	t.Parallel()

	for _, kind := range models.ReportKinds {
		parsed, ok := models.ParseReportKind(kind.Slug())
		assert.True(t, ok)
		assert.Equal(t, kind, parsed)
	}
}

func TestTranscriptConfig_Patient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.DefaultPatientName, models.TranscriptConfig{}.Patient())
	assert.Equal(t, models.DefaultPatientName, models.TranscriptConfig{PatientName: "   "}.Patient())
	assert.Equal(t, "Jane Roe", models.TranscriptConfig{PatientName: " Jane Roe "}.Patient())
}

func TestPromptConfig_SourceFileCount(t *testing.T) {
	t.Parallel()

	samples := models.PromptConfig{DataSource: models.DataSourceSampleDatabase, Samples: []string{"a", "b", "c"}}
	assert.Equal(t, 3, samples.SourceFileCount())

	noUploads := models.PromptConfig{DataSource: models.DataSourceUploadFiles}
	assert.Equal(t, 1, noUploads.SourceFileCount())

	uploads := models.PromptConfig{
		DataSource: models.DataSourceUploadFiles,
		Uploads:    []models.UploadedFile{{Name: "a.txt", Size: 10}, {Name: "b.pdf", Size: 20}},
	}
	assert.Equal(t, 2, uploads.SourceFileCount())

	live := models.PromptConfig{DataSource: "Live Database", Samples: []string{"ignored"}}
	assert.Equal(t, 1, live.SourceFileCount())
}

func TestBulkConfig_Focus(t *testing.T) {
	t.Parallel()

	keyword := models.BulkConfig{AnalysisType: models.AnalysisKeywordSearch, Keywords: "botox, , cost ,insurance"}
	assert.Equal(t, []string{"botox", "cost", "insurance"}, keyword.KeywordList())
	assert.Equal(t, "Keywords: botox, cost, insurance (case-insensitive)", keyword.Focus())

	sentiment := models.BulkConfig{AnalysisType: models.AnalysisSentimentAnalysis, SentimentAspects: []string{"Overall Consultation"}}
	assert.Equal(t, "Aspects: Overall Consultation", sentiment.Focus())

	custom := models.BulkConfig{AnalysisType: models.AnalysisCustomQuery, CustomQuery: "find anxiety"}
	assert.Equal(t, "Query: find anxiety", custom.Focus())

	assert.Empty(t, models.BulkConfig{AnalysisType: "Cost Analysis"}.Focus())
}

func TestFieldSpec_Selected(t *testing.T) {
	t.Parallel()

	single := models.FieldSpec{Value: "Medspa"}
	assert.True(t, single.Selected("Medspa"))
	assert.False(t, single.Selected("Venous Treatment"))

	multi := models.FieldSpec{Values: []string{"Patient Concerns", "Treatment Options"}}
	assert.True(t, multi.Selected("Treatment Options"))
	assert.False(t, multi.Selected("Cost/Insurance"))
}

func TestBulkRequest_SelectedFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{"none", nil, []string{}},
		{"distinct", []string{"a.txt", "b.txt"}, []string{"a.txt", "b.txt"}},
		{"repeats keep first-seen order", []string{"b.txt", "a.txt", "b.txt", "a.txt"}, []string{"b.txt", "a.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, models.BulkRequest{Files: tt.files}.SelectedFiles())
		})
	}
}
