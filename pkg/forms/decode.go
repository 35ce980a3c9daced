package forms

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/services"
)

// decoder reads form values over a default configuration. An absent key keeps the
// default. The rendered forms send a hidden blank value for every checkbox and
// multi-select so that "nothing selected" is distinguishable from "not submitted";
// for repeated keys the last value wins.
type decoder struct {
	values url.Values
	errs   []string
}

func (d *decoder) last(name string) (string, bool) {
	values, ok := d.values[name]
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[len(values)-1], true
}

func (d *decoder) text(name string, target *string) {
	if value, ok := d.last(name); ok {
		*target = value
	}
}

func (d *decoder) choice(name string, target *string) {
	if value, ok := d.last(name); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func (d *decoder) list(name string, target *[]string) {
	values, ok := d.values[name]
	if !ok {
		return
	}

	kept := []string{}
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			kept = append(kept, value)
		}
	}

	*target = kept
}

func (d *decoder) flag(name string, target *bool) {
	value, ok := d.last(name)
	if !ok {
		return
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		*target = true
	default:
		*target = false
	}
}

func (d *decoder) integer(name string, target *int) {
	value, ok := d.last(name)
	if !ok || strings.TrimSpace(value) == "" {
		return
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		d.errs = append(d.errs, name+" must be a whole number")

		return
	}

	*target = parsed
}

func (d *decoder) float(name string, target *float64) {
	value, ok := d.last(name)
	if !ok || strings.TrimSpace(value) == "" {
		return
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		d.errs = append(d.errs, name+" must be a number")

		return
	}

	*target = parsed
}

func (d *decoder) err(op string) error {
	if len(d.errs) == 0 {
		return nil
	}

	return services.NewValidationError(op, "invalid_config", strings.Join(d.errs, "; "), services.ErrInvalidConfig)
}

func DecodeTranscript(cat *catalog.Catalog, values url.Values) (models.TranscriptConfig, error) {
	cfg := DefaultTranscript(cat)
	d := &decoder{values: values}

	d.choice("specialty", &cfg.Specialty)
	d.choice("visit_type", &cfg.VisitType)
	d.text("patient_name", &cfg.PatientName)
	d.integer("age", &cfg.Age)
	d.choice("gender", &cfg.Gender)
	d.integer("complexity", &cfg.Complexity)
	d.choice("length", &cfg.Length)
	d.flag("include_vitals", &cfg.IncludeVitals)
	d.list("focus_areas", &cfg.FocusAreas)
	d.choice("tone", &cfg.Tone)
	d.choice("language", &cfg.Language)
	d.choice("template_style", &cfg.TemplateStyle)
	d.flag("include_complications", &cfg.IncludeComplications)

	return cfg, d.err("decode_transcript")
}

// DecodePrompt reads the Prompt Tester form. Switching the template (template differs
// from previous_template) replaces the prompt with the new template's text, and
// a model outside the selected family falls back to the family's first model.
func DecodePrompt(cat *catalog.Catalog, values url.Values) (models.PromptConfig, error) {
	cfg := DefaultPrompt(cat)
	d := &decoder{values: values}

	d.choice("template", &cfg.Template)
	d.text("prompt", &cfg.Prompt)
	d.integer("max_tokens", &cfg.MaxTokens)
	d.float("temperature", &cfg.Temperature)
	d.float("top_p", &cfg.TopP)
	d.choice("model_family", &cfg.ModelFamily)
	d.choice("model", &cfg.Model)
	d.flag("batch_testing", &cfg.BatchTesting)
	d.flag("detailed_metrics", &cfg.DetailedMetrics)
	d.flag("save_history", &cfg.SaveHistory)
	d.choice("data_source", &cfg.DataSource)
	d.list("samples", &cfg.Samples)
	d.flag("extract_metadata", &cfg.ExtractMetadata)
	d.flag("chunk_large_files", &cfg.ChunkLargeFiles)
	d.flag("validate_format", &cfg.ValidateFormat)

	// A submitted blank prompt stays blank unless the template just changed.
	_, submitted := d.last("prompt")
	if previous, ok := d.last("previous_template"); ok && previous != cfg.Template {
		cfg.Prompt, _ = cat.PromptTemplate(cfg.Template)
	} else if !submitted {
		ApplyPromptTemplate(cat, &cfg)
	}

	if choices := cat.Models(cfg.ModelFamily); len(choices) > 0 && !slices.Contains(choices, cfg.Model) {
		cfg.Model = choices[0]
	}

	return cfg, d.err("decode_prompt")
}

// DecodeBulk reads the Bulk Analyzer control panel and file toggles.
func DecodeBulk(cat *catalog.Catalog, values url.Values, today time.Time) (models.BulkRequest, error) {
	req := DefaultBulkRequest(cat, today)
	cfg := &req.Config
	d := &decoder{values: values}

	d.choice("analysis_type", &cfg.AnalysisType)
	d.text("keywords", &cfg.Keywords)
	d.flag("case_sensitive", &cfg.CaseSensitive)
	d.list("sentiment_aspects", &cfg.SentimentAspects)
	d.text("custom_query", &cfg.CustomQuery)
	d.choice("data_source", &cfg.DataSource)
	d.list("specialty_filter", &cfg.SpecialtyFilter)
	d.text("date_from", &cfg.DateFrom)
	d.text("date_to", &cfg.DateTo)
	d.list("visit_type_filter", &cfg.VisitTypeFilter)
	d.flag("parallel", &cfg.Parallel)
	d.float("confidence_threshold", &cfg.ConfidenceThreshold)
	d.integer("max_results", &cfg.MaxResults)
	d.flag("include_context", &cfg.IncludeContext)
	d.choice("export_format", &cfg.ExportFormat)
	d.list("files", &req.Files)

	cfg.DateFrom = strings.TrimSpace(cfg.DateFrom)
	cfg.DateTo = strings.TrimSpace(cfg.DateTo)

	return req, d.err("decode_bulk")
}

// Values renders fields back into form values, the inverse of the Decode
// functions. It is used to build links that keep the current form state.
func Values(fields []models.FieldSpec) url.Values {
	values := url.Values{}

	for _, field := range fields {
		switch field.Kind {
		case models.FieldMultiSelect:
			values[field.Name] = append([]string{""}, field.Values...)
		case models.FieldCheckbox:
			values.Set(field.Name, strconv.FormatBool(field.Checked))
		case models.FieldFile:
			continue
		default:
			values.Set(field.Name, field.Value)
		}
	}

	return values
}

