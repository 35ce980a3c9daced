package forms

import (
	"strconv"

	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/models"
)

const (
	groupSpecialty  = "Medical Specialty"
	groupPatient    = "Patient Details"
	groupGeneration = "Generation Settings"
	groupAdvanced   = "Advanced Options"

	groupPrompt     = "Prompt Configuration"
	groupModel      = "AI Model Selection"
	groupTest       = "Test Configuration"
	groupDataSource = "Transcript Data Source"

	groupQuery     = "Query Configuration"
	groupSelection = "Data Selection"
	groupSettings  = "Analysis Settings"
	groupFiles     = "Transcript Selection"
)

func selectField(group, name, label string, options []string, value string) models.FieldSpec {
	return models.FieldSpec{Name: name, Label: label, Kind: models.FieldSelect, Group: group, Options: options, Value: value}
}

func multiField(group, name, label string, options, values []string) models.FieldSpec {
	return models.FieldSpec{Name: name, Label: label, Kind: models.FieldMultiSelect, Group: group, Options: options, Values: values}
}

func checkField(group, name, label string, checked bool) models.FieldSpec {
	return models.FieldSpec{Name: name, Label: label, Kind: models.FieldCheckbox, Group: group, Checked: checked}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// TranscriptFields lists the Transcript Generator fields. Every field is always visible.
func TranscriptFields(cat *catalog.Catalog, cfg models.TranscriptConfig) []models.FieldSpec {
	return []models.FieldSpec{
		selectField(groupSpecialty, "specialty", "Select Specialty", cat.Specialties, cfg.Specialty),
		selectField(groupSpecialty, "visit_type", "Visit Type", cat.VisitTypes, cfg.VisitType),
		{Name: "patient_name", Label: "Patient Name (optional)", Kind: models.FieldText, Group: groupPatient, Value: cfg.PatientName, Placeholder: models.DefaultPatientName},
		{Name: "age", Label: "Age Range", Kind: models.FieldNumber, Group: groupPatient, Value: strconv.Itoa(cfg.Age), Min: 18, Max: 80, Step: 1},
		selectField(groupPatient, "gender", "Gender", cat.Genders, cfg.Gender),
		{Name: "complexity", Label: "Medical Complexity", Kind: models.FieldSlider, Group: groupGeneration, Value: strconv.Itoa(cfg.Complexity), Min: 1, Max: 5, Step: 1, Help: "1=Simple, 5=Complex medical discussion"},
		selectField(groupGeneration, "length", "Transcript Length", cat.Lengths, cfg.Length),
		checkField(groupGeneration, "include_vitals", "Include Vital Signs", cfg.IncludeVitals),
		multiField(groupAdvanced, "focus_areas", "Focus Areas", cat.FocusAreas, cfg.FocusAreas),
		selectField(groupAdvanced, "tone", "Conversation Tone", cat.Tones, cfg.Tone),
		checkField(groupAdvanced, "include_complications", "Include Potential Complications", cfg.IncludeComplications),
		selectField(groupAdvanced, "language", "Language", cat.Languages, cfg.Language),
		selectField(groupAdvanced, "template_style", "Template Style", cat.TemplateStyles, cfg.TemplateStyle),
	}
}

// PromptFields lists the Prompt Tester fields visible for cfg. The model choices follow
// the model family and the data source decides between uploads and sample selection.
func PromptFields(cat *catalog.Catalog, accept string, cfg models.PromptConfig) []models.FieldSpec {
	prompt := models.FieldSpec{Name: "prompt", Label: "AI Prompt", Kind: models.FieldTextArea, Group: groupPrompt, Value: cfg.Prompt}
	if cfg.Template == models.PromptTemplateCustom {
		prompt.Placeholder = "Enter your custom prompt here..."
	} else {
		prompt.Help = "Modify the template or create your own prompt"
		if prompt.Value == "" {
			prompt.Value, _ = cat.PromptTemplate(cfg.Template)
		}
	}

	fields := []models.FieldSpec{
		selectField(groupPrompt, "template", "Prompt Template", cat.Options(catalog.PromptTemplates), cfg.Template),
		{Name: "previous_template", Kind: models.FieldHidden, Group: groupPrompt, Value: cfg.Template},
		prompt,
		{Name: "max_tokens", Label: "Max Response Tokens", Kind: models.FieldNumber, Group: groupPrompt, Value: strconv.Itoa(cfg.MaxTokens), Min: 100, Max: 4000, Step: 100},
		{Name: "temperature", Label: "Creativity (Temperature)", Kind: models.FieldSlider, Group: groupPrompt, Value: formatFloat(cfg.Temperature), Min: 0, Max: 1, Step: 0.1},
		{Name: "top_p", Label: "Focus (Top-p)", Kind: models.FieldSlider, Group: groupPrompt, Value: formatFloat(cfg.TopP), Min: 0.1, Max: 1, Step: 0.1},
		selectField(groupModel, "model_family", "Model Family", cat.Options(catalog.ModelFamilies), cfg.ModelFamily),
		selectField(groupModel, "model", "Specific Model", cat.Models(cfg.ModelFamily), cfg.Model),
		checkField(groupTest, "batch_testing", "Batch Testing Mode", cfg.BatchTesting),
		checkField(groupTest, "detailed_metrics", "Detailed Metrics", cfg.DetailedMetrics),
		checkField(groupTest, "save_history", "Save to Test History", cfg.SaveHistory),
		selectField(groupDataSource, "data_source", "Data Source", cat.PromptDataSources, cfg.DataSource),
	}

	switch cfg.DataSource {
	case models.DataSourceUploadFiles:
		fields = append(fields,
			models.FieldSpec{Name: "uploads", Label: "Upload Transcript Files", Kind: models.FieldFile, Group: groupDataSource, Accept: accept, Help: "Supports TXT, DOCX, and PDF files"},
			checkField(groupDataSource, "extract_metadata", "Extract Metadata", cfg.ExtractMetadata),
			checkField(groupDataSource, "chunk_large_files", "Chunk Large Files", cfg.ChunkLargeFiles),
			checkField(groupDataSource, "validate_format", "Validate Medical Format", cfg.ValidateFormat),
		)
	case models.DataSourceSampleDatabase:
		field := multiField(groupDataSource, "samples", "Select Sample Transcripts", cat.SampleFiles, cfg.Samples)
		field.Help = "Choose from our curated sample database"
		fields = append(fields, field)
	}

	return fields
}

// BulkFields lists the Bulk Analyzer fields visible for req. Sub-inputs follow the
// analysis type; the per-file toggles are always shown.
func BulkFields(cat *catalog.Catalog, req models.BulkRequest) []models.FieldSpec {
	cfg := req.Config

	fields := []models.FieldSpec{
		selectField(groupQuery, "analysis_type", "Analysis Type", cat.AnalysisTypes, cfg.AnalysisType),
	}

	switch cfg.AnalysisType {
	case models.AnalysisKeywordSearch:
		fields = append(fields,
			models.FieldSpec{Name: "keywords", Label: "Keywords (comma-separated)", Kind: models.FieldText, Group: groupQuery, Value: cfg.Keywords, Placeholder: "botox, side effects, cost, insurance"},
			checkField(groupQuery, "case_sensitive", "Case Sensitive Search", cfg.CaseSensitive),
		)
	case models.AnalysisSentimentAnalysis:
		fields = append(fields, multiField(groupQuery, "sentiment_aspects", "Sentiment Aspects", cat.SentimentAspects, cfg.SentimentAspects))
	case models.AnalysisCustomQuery:
		fields = append(fields, models.FieldSpec{
			Name: "custom_query", Label: "Custom Analysis Query", Kind: models.FieldTextArea, Group: groupQuery,
			Value: cfg.CustomQuery, Placeholder: "Describe what you want to analyze across the transcripts...",
		})
	}

	fields = append(fields,
		selectField(groupSelection, "data_source", "Data Source", cat.BulkDataSources, cfg.DataSource),
		multiField(groupSelection, "specialty_filter", "Medical Specialty", cat.SpecialtyFilters, cfg.SpecialtyFilter),
		models.FieldSpec{Name: "date_from", Label: "Date From", Kind: models.FieldDate, Group: groupSelection, Value: cfg.DateFrom, Help: "Filter transcripts by consultation date"},
		models.FieldSpec{Name: "date_to", Label: "Date To", Kind: models.FieldDate, Group: groupSelection, Value: cfg.DateTo},
		multiField(groupSelection, "visit_type_filter", "Visit Type", cat.VisitTypeFilters, cfg.VisitTypeFilter),
		checkField(groupSettings, "parallel", "Parallel Processing", cfg.Parallel),
		models.FieldSpec{Name: "confidence_threshold", Label: "Confidence Threshold", Kind: models.FieldSlider, Group: groupSettings, Value: formatFloat(cfg.ConfidenceThreshold), Min: 0, Max: 1, Step: 0.05, Help: "Minimum confidence level for including results"},
		models.FieldSpec{Name: "max_results", Label: "Max Results per File", Kind: models.FieldNumber, Group: groupSettings, Value: strconv.Itoa(cfg.MaxResults), Min: 1, Max: 100, Step: 1, Help: "Maximum number of findings per transcript"},
		checkField(groupSettings, "include_context", "Include Context", cfg.IncludeContext),
		selectField(groupSettings, "export_format", "Export Format", cat.ExportFormats, cfg.ExportFormat),
		multiField(groupFiles, "files", "Available Transcript Files", cat.Options(catalog.TranscriptFiles), req.Files),
	)

	return fields
}

// Names returns the field names in order.
func Names(fields []models.FieldSpec) []string {
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}

	return names
}
