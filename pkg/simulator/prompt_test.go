package simulator_test

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/dukex/projecthub/pkg/simulator"
	"github.com/dukex/projecthub/pkg/uploads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPrompt() models.PromptConfig {
	return models.PromptConfig{
		Template:    "Custom",
		Prompt:      "Summarize this consult",
		MaxTokens:   1000,
		Temperature: 0.7,
		TopP:        0.9,
		ModelFamily: "GPT Models",
		Model:       "GPT-4",
		DataSource:  "Sample Database",
		Samples:     catalog.Default().DefaultSamples(),
	}
}

func newPromptTester(t *testing.T, slept *atomic.Int64) *simulator.PromptTester {
	t.Helper()

	policy, err := uploads.NewPolicy(catalog.Default().UploadExtensions)
	require.NoError(t, err)

	return simulator.NewPromptTester(catalog.Default(), newValidator(t), policy, testOptions(slept)...)
}

func TestPromptTester_Execute(t *testing.T) {
	t.Parallel()

	var slept atomic.Int64

	report, err := newPromptTester(t, &slept).Execute(t.Context(), defaultPrompt())
	require.NoError(t, err)

	assert.Equal(t, models.ReportKindPromptTest, report.Kind)
	assert.Equal(t, "test_results.json", report.Filename)
	assert.Contains(t, report.Body, "Summarize this consult")
	assert.Contains(t, report.Body, "Test Execution: 2024-10-03 15:30:45\n")
	assert.Contains(t, report.Body, "Model Used: GPT-4\n")
	assert.Contains(t, report.Body, "Prompt Template: Custom\n")
	assert.Contains(t, report.Body, "Data Sources: 3 files\n")
	assert.Contains(t, report.Body, "• Temperature: 0.7\n")
	assert.Contains(t, report.Body, "• Batch Mode: Disabled\n")
	assert.Contains(t, report.Body, "File 2: Explant_Surgery_001.txt\n")
	assert.Equal(t, int64(3*time.Second), slept.Load())
	assert.Equal(t, "GPT-4", report.Facts["model"])
}

func TestPromptTester_EmptyPrompt(t *testing.T) {
	t.Parallel()

	tester := newPromptTester(t, nil)

	for _, prompt := range []string{"", "   ", "\n\t"} {
		cfg := defaultPrompt()
		cfg.Prompt = prompt
		cfg.MaxTokens = 0 // also invalid, but the empty prompt is reported first

		_, err := tester.Execute(t.Context(), cfg)
		require.ErrorIs(t, err, services.ErrEmptyPrompt)
		assert.Equal(t, "Please enter a prompt to test", services.Message(err))
	}
}

func TestPromptTester_TruncatesLongPrompts(t *testing.T) {
	t.Parallel()

	cfg := defaultPrompt()
	cfg.Prompt = strings.Repeat("a", 199) + "bXYZ"

	report, err := newPromptTester(t, nil).Execute(t.Context(), cfg)
	require.NoError(t, err)

	assert.Contains(t, report.Body, `"`+strings.Repeat("a", 199)+`b..."`)
	assert.NotContains(t, report.Body, "XYZ")

	cfg.Prompt = strings.Repeat("c", 200)
	report, err = newPromptTester(t, nil).Execute(t.Context(), cfg)
	require.NoError(t, err)
	assert.Contains(t, report.Body, `"`+strings.Repeat("c", 200)+`"`)
}

func TestPromptTester_DataSourceFileCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*models.PromptConfig)
		want   string
	}{
		{"selected samples", func(c *models.PromptConfig) { c.Samples = c.Samples[:2] }, "Data Sources: 2 files"},
		{"uploads", func(c *models.PromptConfig) {
			c.DataSource = "Upload Files"
			c.Uploads = []models.UploadedFile{{Name: "a.txt", Size: 1}, {Name: "b.pdf", Size: 2}}
		}, "Data Sources: 2 files"},
		{"no uploads yet", func(c *models.PromptConfig) { c.DataSource = "Upload Files" }, "Data Sources: 1 files"},
		{"live database", func(c *models.PromptConfig) { c.DataSource = "Live Database" }, "Data Sources: 1 files"},
	}

	tester := newPromptTester(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultPrompt()
			tt.mutate(&cfg)

			report, err := tester.Execute(t.Context(), cfg)
			require.NoError(t, err)
			assert.Contains(t, report.Body, tt.want)
		})
	}
}

func TestPromptTester_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*models.PromptConfig)
		wantErr error
	}{
		{"max tokens too high", func(c *models.PromptConfig) { c.MaxTokens = 5000 }, services.ErrInvalidConfig},
		{"temperature above one", func(c *models.PromptConfig) { c.Temperature = 1.5 }, services.ErrInvalidConfig},
		{"top-p below minimum", func(c *models.PromptConfig) { c.TopP = 0.05 }, services.ErrInvalidConfig},
		{"model outside family", func(c *models.PromptConfig) { c.Model = "Claude-3-Opus" }, services.ErrInvalidConfig},
		{"unknown template", func(c *models.PromptConfig) { c.Template = "Poetry" }, services.ErrInvalidConfig},
		{"unsupported upload", func(c *models.PromptConfig) {
			c.DataSource = "Upload Files"
			c.Uploads = []models.UploadedFile{{Name: "scan.png", Size: 10}}
		}, services.ErrUnsupportedFile},
	}

	tester := newPromptTester(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultPrompt()
			tt.mutate(&cfg)

			_, err := tester.Execute(t.Context(), cfg)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
