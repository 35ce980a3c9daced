// Package forms derives the visible form fields of each workflow from its current
// configuration and decodes submitted form values back into configurations.
package forms

import (
	"slices"
	"time"

	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/models"
)

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}

// intersect keeps the wanted values that the option set offers, in wanted order.
func intersect(options, wanted []string) []string {
	kept := make([]string, 0, len(wanted))
	for _, value := range wanted {
		if slices.Contains(options, value) {
			kept = append(kept, value)
		}
	}

	return kept
}

func DefaultTranscript(cat *catalog.Catalog) models.TranscriptConfig {
	return models.TranscriptConfig{
		Specialty:     first(cat.Specialties),
		VisitType:     first(cat.VisitTypes),
		PatientName:   models.DefaultPatientName,
		Age:           35,
		Gender:        first(cat.Genders),
		Complexity:    3,
		Length:        first(cat.Lengths),
		IncludeVitals: true,
		FocusAreas:    intersect(cat.FocusAreas, []string{"Patient Concerns", "Treatment Options"}),
		Tone:          first(cat.Tones),
		Language:      first(cat.Languages),
		TemplateStyle: first(cat.TemplateStyles),
	}
}

func DefaultPrompt(cat *catalog.Catalog) models.PromptConfig {
	family := first(cat.Options(catalog.ModelFamilies))

	return models.PromptConfig{
		Template:        first(cat.Options(catalog.PromptTemplates)),
		MaxTokens:       1000,
		Temperature:     0.7,
		TopP:            0.9,
		ModelFamily:     family,
		Model:           first(cat.Models(family)),
		DetailedMetrics: true,
		SaveHistory:     true,
		DataSource:      first(cat.PromptDataSources),
		Samples:         cat.DefaultSamples(),
		ExtractMetadata: true,
		ChunkLargeFiles: true,
		ValidateFormat:  true,
	}
}

// DefaultBulk returns the control panel defaults; the date range ends on today.
func DefaultBulk(cat *catalog.Catalog, today time.Time) models.BulkConfig {
	return models.BulkConfig{
		AnalysisType:        first(cat.AnalysisTypes),
		SentimentAspects:    intersect(cat.SentimentAspects, []string{"Overall Consultation"}),
		DataSource:          first(cat.BulkDataSources),
		SpecialtyFilter:     intersect(cat.SpecialtyFilters, []string{"Medspa", "Explant Surgery", "Venous Treatment"}),
		DateFrom:            cat.DefaultDateFrom,
		DateTo:              today.Format(models.DateLayout),
		VisitTypeFilter:     intersect(cat.VisitTypeFilters, []string{"Initial Consultation", "Follow-up"}),
		Parallel:            true,
		ConfidenceThreshold: 0.75,
		MaxResults:          10,
		IncludeContext:      true,
		ExportFormat:        first(cat.ExportFormats),
	}
}

// DefaultBulkRequest toggles every catalog transcript file on.
func DefaultBulkRequest(cat *catalog.Catalog, today time.Time) models.BulkRequest {
	return models.BulkRequest{
		Config: DefaultBulk(cat, today),
		Files:  cat.Options(catalog.TranscriptFiles),
	}
}

// ApplyPromptTemplate pre-fills a blank prompt with the text of a non-custom template.
func ApplyPromptTemplate(cat *catalog.Catalog, cfg *models.PromptConfig) {
	if cfg.Template == models.PromptTemplateCustom || cfg.Prompt != "" {
		return
	}

	if text, ok := cat.PromptTemplate(cfg.Template); ok {
		cfg.Prompt = text
	}
}
