package simulator

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/services"
	"github.com/dukex/projecthub/pkg/template"
	"github.com/dukex/projecthub/pkg/uploads"
	"github.com/go-playground/validator/v10"
)

const (
	// PromptDelay is the simulated model round trip.
	PromptDelay = 3 * time.Second

	// PromptResultsFilename is the download name of a prompt test report.
	PromptResultsFilename = "test_results.json"

	promptPreviewLimit = 200
)

type sampleOutput struct {
	File       string
	Response   string
	Confidence int
	Terms      int
}

var sampleOutputs = []sampleOutput{
	{
		File:       "Medspa_Consultation_001.txt",
		Response:   "This consultation reveals a patient seeking Botox treatment for forehead wrinkles. The provider conducted a thorough assessment, discussed realistic expectations, and addressed safety concerns. Key findings include patient understanding of the procedure, appropriate candidacy, and clear aftercare instructions provided.",
		Confidence: 94,
		Terms:      12,
	},
	{
		File:       "Explant_Surgery_001.txt",
		Response:   "Pre-operative consultation for breast implant removal shows comprehensive patient counseling. Discussion covered surgical approach, recovery timeline, and emotional considerations. Patient demonstrates clear understanding of procedure and realistic expectations for outcomes.",
		Confidence: 91,
		Terms:      18,
	},
}

// PromptTester runs a prompt against the simulated model catalog.
type PromptTester struct {
	sim *Simulator[models.PromptConfig]
}

type promptData struct {
	Config       models.PromptConfig
	FileCount    int
	PreviewLimit int
	Samples      []sampleOutput
	Now          time.Time
}

func NewPromptTester(cat *catalog.Catalog, validate *validator.Validate, policy *uploads.Policy, opts ...Option) *PromptTester {
	return &PromptTester{
		sim: New[models.PromptConfig](models.ReportKindPromptTest, PromptDelay,
			func(cfg models.PromptConfig) error {
				return validatePrompt(cat, validate, policy, cfg)
			},
			renderPrompt,
			opts...,
		),
	}
}

// Execute tests cfg.Prompt. An empty prompt is rejected before anything else is checked.
func (p *PromptTester) Execute(ctx context.Context, cfg models.PromptConfig) (*models.GeneratedReport, error) {
	return p.sim.Run(ctx, cfg)
}

func (p *PromptTester) Delay() time.Duration {
	return p.sim.Delay()
}

func validatePrompt(cat *catalog.Catalog, validate *validator.Validate, policy *uploads.Policy, cfg models.PromptConfig) error {
	if strings.TrimSpace(cfg.Prompt) == "" {
		return services.NewValidationError("execute_prompt", "empty_prompt", "", services.ErrEmptyPrompt)
	}

	if err := validate.Struct(cfg); err != nil {
		return configError("execute_prompt", err)
	}

	if !slices.Contains(cat.Models(cfg.ModelFamily), cfg.Model) {
		return services.NewValidationError("execute_prompt", "invalid_config",
			fmt.Sprintf("model %q is not part of %s", cfg.Model, cfg.ModelFamily), services.ErrInvalidConfig)
	}

	if policy != nil {
		for _, upload := range cfg.Uploads {
			if err := policy.Check(upload.Name); err != nil {
				return services.NewValidationError("execute_prompt", "unsupported_file", "", err)
			}
		}
	}

	return nil
}

func renderPrompt(cfg models.PromptConfig, now time.Time) (Content, error) {
	fileCount := cfg.SourceFileCount()

	body, err := template.Execute(promptTemplate, promptData{
		Config:       cfg,
		FileCount:    fileCount,
		PreviewLimit: promptPreviewLimit,
		Samples:      sampleOutputs,
		Now:          now,
	})
	if err != nil {
		return Content{}, err
	}

	return Content{
		Title:    "Prompt Testing Results Report",
		Body:     body,
		Filename: PromptResultsFilename,
		Metrics: []models.Metric{
			{Label: "Quality Score", Value: "92.5/100", Delta: "+4.2"},
			{Label: "Avg Response Time", Value: "0.78s", Delta: "-0.12s"},
			{Label: "Token Efficiency", Value: "2,139", Delta: "+12%"},
			{Label: "Success Rate", Value: "100%", Delta: "Perfect"},
		},
		Highlights: []string{
			"Response 1: Medspa consultation analysis...",
			"Response 2: Explant surgery consultation analysis...",
			"Response 3: Venous treatment consultation analysis...",
		},
		Facts: map[string]string{
			"template":      cfg.Template,
			"model":         cfg.Model,
			"model_family":  cfg.ModelFamily,
			"files":         strconv.Itoa(fileCount),
			"quality_score": "92.5/100",
		},
	}, nil
}
