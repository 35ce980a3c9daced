package models

// PromptTemplateCustom is the template choice that leaves the prompt text to the user.
const PromptTemplateCustom = "Custom"

const (
	DataSourceUploadFiles    = "Upload Files"
	DataSourceSampleDatabase = "Sample Database"
)

// UploadedFile is what the hub keeps of an upload: the name and the byte size.
// Content is never read.
type UploadedFile struct {
	Name string `json:"name" validate:"required"`
	Size int64  `json:"size" validate:"min=0"`
}

// PromptConfig collects the Prompt Tester form.
type PromptConfig struct {
	Template        string         `json:"template"          validate:"required,catalog=prompt_templates"`
	Prompt          string         `json:"prompt"`
	MaxTokens       int            `json:"max_tokens"        validate:"min=100,max=4000"`
	Temperature     float64        `json:"temperature"       validate:"min=0,max=1"`
	TopP            float64        `json:"top_p"             validate:"min=0.1,max=1"`
	ModelFamily     string         `json:"model_family"      validate:"required,catalog=model_families"`
	Model           string         `json:"model"             validate:"required"`
	BatchTesting    bool           `json:"batch_testing"`
	DetailedMetrics bool           `json:"detailed_metrics"`
	SaveHistory     bool           `json:"save_history"`
	DataSource      string         `json:"data_source"       validate:"required,catalog=prompt_data_sources"`
	Samples         []string       `json:"samples"           validate:"dive,catalog=sample_files"`
	Uploads         []UploadedFile `json:"uploads"           validate:"dive"`
	ExtractMetadata bool           `json:"extract_metadata"`
	ChunkLargeFiles bool           `json:"chunk_large_files"`
	ValidateFormat  bool           `json:"validate_format"`
}

// SourceFileCount is the number of files the selected data source contributes to a test.
func (c PromptConfig) SourceFileCount() int {
	switch c.DataSource {
	case DataSourceSampleDatabase:
		return len(c.Samples)
	case DataSourceUploadFiles:
		if len(c.Uploads) > 0 {
			return len(c.Uploads)
		}

		return 1
	default:
		return 1
	}
}
