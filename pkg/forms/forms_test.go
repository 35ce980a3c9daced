package forms_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/forms"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 10, 3, 12, 0, 0, 0, time.UTC)

func fieldByName(t *testing.T, fields []models.FieldSpec, name string) models.FieldSpec {
	t.Helper()

	for _, field := range fields {
		if field.Name == name {
			return field
		}
	}

	t.Fatalf("field %q is not visible", name)

	return models.FieldSpec{}
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()

	transcript := forms.DefaultTranscript(cat)
	assert.Equal(t, "Medspa", transcript.Specialty)
	assert.Equal(t, 35, transcript.Age)
	assert.Equal(t, 3, transcript.Complexity)
	assert.True(t, transcript.IncludeVitals)
	assert.False(t, transcript.IncludeComplications)
	assert.Equal(t, []string{"Patient Concerns", "Treatment Options"}, transcript.FocusAreas)

	prompt := forms.DefaultPrompt(cat)
	assert.Equal(t, "Custom", prompt.Template)
	assert.Equal(t, 1000, prompt.MaxTokens)
	assert.InDelta(t, 0.7, prompt.Temperature, 1e-9)
	assert.InDelta(t, 0.9, prompt.TopP, 1e-9)
	assert.Equal(t, "GPT-4-Turbo", prompt.Model)
	assert.Len(t, prompt.Samples, 3)

	bulk := forms.DefaultBulkRequest(cat, today)
	assert.Equal(t, "2024-01-01", bulk.Config.DateFrom)
	assert.Equal(t, "2024-10-03", bulk.Config.DateTo)
	assert.InDelta(t, 0.75, bulk.Config.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 10, bulk.Config.MaxResults)
	assert.Len(t, bulk.Files, 6)
}

func TestTranscriptFields(t *testing.T) {
	t.Parallel()

	fields := forms.TranscriptFields(catalog.Default(), forms.DefaultTranscript(catalog.Default()))

	want := []string{
		"specialty", "visit_type", "patient_name", "age", "gender", "complexity", "length",
		"include_vitals", "focus_areas", "tone", "include_complications", "language", "template_style",
	}
	if diff := cmp.Diff(want, forms.Names(fields)); diff != "" {
		t.Errorf("transcript fields mismatch (-want +got):\n%s", diff)
	}

	age := fieldByName(t, fields, "age")
	assert.Equal(t, "35", age.Value)
	assert.InDelta(t, 18, age.Min, 0)
	assert.InDelta(t, 80, age.Max, 0)
}

func TestPromptFields_DependOnDataSourceAndFamily(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()

	upload := forms.DefaultPrompt(cat)
	upload.DataSource = models.DataSourceUploadFiles

	sample := forms.DefaultPrompt(cat)
	sample.DataSource = models.DataSourceSampleDatabase
	sample.ModelFamily = "Claude Models"
	sample.Model = "Claude-3-Haiku"

	live := forms.DefaultPrompt(cat)
	live.DataSource = "Live Database"

	common := []string{
		"template", "previous_template", "prompt", "max_tokens", "temperature", "top_p",
		"model_family", "model", "batch_testing", "detailed_metrics", "save_history", "data_source",
	}

	tests := []struct {
		name  string
		cfg   models.PromptConfig
		extra []string
	}{
		{"upload files", upload, []string{"uploads", "extract_metadata", "chunk_large_files", "validate_format"}},
		{"sample database", sample, []string{"samples"}},
		{"live database", live, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields := forms.PromptFields(cat, ".txt,.docx,.pdf", tt.cfg)
			if diff := cmp.Diff(append(append([]string{}, common...), tt.extra...), forms.Names(fields)); diff != "" {
				t.Errorf("prompt fields mismatch (-want +got):\n%s", diff)
			}
		})
	}

	model := fieldByName(t, forms.PromptFields(cat, "", sample), "model")
	assert.Equal(t, []string{"Claude-3-Opus", "Claude-3-Sonnet", "Claude-3-Haiku"}, model.Options)
	assert.Equal(t, "Claude-3-Haiku", model.Value)

	assert.Equal(t, ".txt,.docx,.pdf", fieldByName(t, forms.PromptFields(cat, ".txt,.docx,.pdf", upload), "uploads").Accept)
}

func TestPromptFields_TemplatePrefillsPrompt(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()

	cfg := forms.DefaultPrompt(cat)
	cfg.Template = "Medical Summary"

	prompt := fieldByName(t, forms.PromptFields(cat, "", cfg), "prompt")
	text, _ := cat.PromptTemplate("Medical Summary")
	assert.Equal(t, text, prompt.Value)

	custom := fieldByName(t, forms.PromptFields(cat, "", forms.DefaultPrompt(cat)), "prompt")
	assert.Empty(t, custom.Value)
	assert.Equal(t, "Enter your custom prompt here...", custom.Placeholder)
}

func TestBulkFields_DependOnAnalysisType(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()
	tail := []string{
		"data_source", "specialty_filter", "date_from", "date_to", "visit_type_filter", "parallel",
		"confidence_threshold", "max_results", "include_context", "export_format", "files",
	}

	tests := []struct {
		analysis string
		sub      []string
	}{
		{models.AnalysisKeywordSearch, []string{"keywords", "case_sensitive"}},
		{models.AnalysisSentimentAnalysis, []string{"sentiment_aspects"}},
		{models.AnalysisCustomQuery, []string{"custom_query"}},
		{"Cost Analysis", nil},
	}

	for _, tt := range tests {
		t.Run(tt.analysis, func(t *testing.T) {
			t.Parallel()

			req := forms.DefaultBulkRequest(cat, today)
			req.Config.AnalysisType = tt.analysis

			want := append(append([]string{"analysis_type"}, tt.sub...), tail...)
			if diff := cmp.Diff(want, forms.Names(forms.BulkFields(cat, req))); diff != "" {
				t.Errorf("bulk fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeTranscript(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()

	cfg, err := forms.DecodeTranscript(cat, url.Values{})
	require.NoError(t, err)
	assert.Equal(t, forms.DefaultTranscript(cat), cfg)

	cfg, err = forms.DecodeTranscript(cat, url.Values{
		"specialty":             {"Venous Treatment"},
		"age":                   {"52"},
		"include_vitals":        {"false"},
		"include_complications": {"false", "on"},
		"focus_areas":           {""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Venous Treatment", cfg.Specialty)
	assert.Equal(t, 52, cfg.Age)
	assert.False(t, cfg.IncludeVitals)
	assert.True(t, cfg.IncludeComplications)
	assert.Empty(t, cfg.FocusAreas)
	assert.Equal(t, "Initial Consultation", cfg.VisitType, "absent keys keep defaults")

	_, err = forms.DecodeTranscript(cat, url.Values{"age": {"old"}})
	require.ErrorIs(t, err, services.ErrInvalidConfig)
}

func TestDecodePrompt_TemplateAndFamilySwitch(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()
	summary, _ := cat.PromptTemplate("Medical Summary")

	cfg, err := forms.DecodePrompt(cat, url.Values{
		"template":          {"Medical Summary"},
		"previous_template": {"Custom"},
		"prompt":            {"my own words"},
		"model_family":      {"Gemini Models"},
		"model":             {"GPT-4"},
	})
	require.NoError(t, err)
	assert.Equal(t, summary, cfg.Prompt)
	assert.Equal(t, "Gemini-Pro", cfg.Model)

	cfg, err = forms.DecodePrompt(cat, url.Values{
		"template":          {"Medical Summary"},
		"previous_template": {"Medical Summary"},
		"prompt":            {"edited summary prompt"},
	})
	require.NoError(t, err)
	assert.Equal(t, "edited summary prompt", cfg.Prompt)

	cfg, err = forms.DecodePrompt(cat, url.Values{
		"template":          {"Custom"},
		"previous_template": {"Medical Summary"},
		"prompt":            {summary},
	})
	require.NoError(t, err)
	assert.Empty(t, cfg.Prompt)
}

func TestDecodePrompt_BlankPromptStaysBlank(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()
	summary, _ := cat.PromptTemplate("Medical Summary")

	tests := []struct {
		name   string
		values url.Values
		want   string
	}{
		{
			name:   "cleared under the same template",
			values: url.Values{"template": {"Medical Summary"}, "previous_template": {"Medical Summary"}, "prompt": {""}},
			want:   "",
		},
		{
			name:   "cleared without a previous template",
			values: url.Values{"template": {"Medical Summary"}, "prompt": {"  "}},
			want:   "  ",
		},
		{
			name:   "prompt not submitted",
			values: url.Values{"template": {"Medical Summary"}},
			want:   summary,
		},
		{
			name:   "template switched",
			values: url.Values{"template": {"Medical Summary"}, "previous_template": {"Custom"}, "prompt": {""}},
			want:   summary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := forms.DecodePrompt(cat, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Prompt)
		})
	}
}

func TestDecodeBulk(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()

	req, err := forms.DecodeBulk(cat, url.Values{}, today)
	require.NoError(t, err)
	assert.Len(t, req.Files, 6)

	req, err = forms.DecodeBulk(cat, url.Values{
		"analysis_type":        {"Keyword Search"},
		"keywords":             {"botox, cost"},
		"files":                {"", "Medspa_001.txt", "Venous_002.txt"},
		"confidence_threshold": {"0.8"},
	}, today)
	require.NoError(t, err)
	assert.Equal(t, []string{"Medspa_001.txt", "Venous_002.txt"}, req.Files)
	assert.Equal(t, []string{"botox", "cost"}, req.Config.KeywordList())
	assert.InDelta(t, 0.8, req.Config.ConfidenceThreshold, 1e-9)

	req, err = forms.DecodeBulk(cat, url.Values{"files": {""}}, today)
	require.NoError(t, err)
	assert.Empty(t, req.Files, "a submitted form with every toggle off selects nothing")
}

func TestValues_RoundTrip(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()

	req := forms.DefaultBulkRequest(cat, today)
	req.Config.AnalysisType = models.AnalysisSentimentAnalysis
	req.Config.Parallel = false
	req.Files = []string{"Explant_001.txt"}

	decoded, err := forms.DecodeBulk(cat, forms.Values(forms.BulkFields(cat, req)), today)
	require.NoError(t, err)

	if diff := cmp.Diff(req, decoded); diff != "" {
		t.Errorf("bulk round trip mismatch (-want +got):\n%s", diff)
	}
}
