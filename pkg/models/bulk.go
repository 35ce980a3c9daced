package models

import (
	"slices"
	"strings"
)

const (
	AnalysisKeywordSearch     = "Keyword Search"
	AnalysisSentimentAnalysis = "Sentiment Analysis"
	AnalysisCustomQuery       = "Custom Query"
)

// DateLayout is the layout of the bulk analyzer date range fields.
const DateLayout = "2006-01-02"

// TranscriptFile is one entry of the simulated transcript database, together with the
// canned findings the bulk analyzer reports for it.
type TranscriptFile struct {
	Filename       string `json:"filename"        yaml:"filename"        validate:"required"`
	Specialty      string `json:"specialty"       yaml:"specialty"`
	Date           string `json:"date"            yaml:"date"`
	Type           string `json:"type"            yaml:"type"`
	Size           string `json:"size"            yaml:"size"`
	Title          string `json:"title,omitempty" yaml:"title"`
	Findings       int    `json:"-"               yaml:"findings"`
	Themes         string `json:"-"               yaml:"themes"`
	Sentiment      string `json:"-"               yaml:"sentiment"`
	Confidence     int    `json:"-"               yaml:"confidence"`
	ProcessingTime string `json:"-"               yaml:"processing_time"`
}

// BulkConfig collects the Bulk Analyzer control panel.
type BulkConfig struct {
	AnalysisType        string   `json:"analysis_type"        validate:"required,catalog=analysis_types"`
	Keywords            string   `json:"keywords"`
	CaseSensitive       bool     `json:"case_sensitive"`
	SentimentAspects    []string `json:"sentiment_aspects"    validate:"dive,catalog=sentiment_aspects"`
	CustomQuery         string   `json:"custom_query"`
	DataSource          string   `json:"data_source"          validate:"required,catalog=bulk_data_sources"`
	SpecialtyFilter     []string `json:"specialty_filter"     validate:"dive,catalog=specialty_filters"`
	DateFrom            string   `json:"date_from"            validate:"omitempty,datetime=2006-01-02"`
	DateTo              string   `json:"date_to"              validate:"omitempty,datetime=2006-01-02"`
	VisitTypeFilter     []string `json:"visit_type_filter"    validate:"dive,catalog=visit_type_filters"`
	Parallel            bool     `json:"parallel"`
	ConfidenceThreshold float64  `json:"confidence_threshold" validate:"min=0,max=1"`
	MaxResults          int      `json:"max_results"          validate:"min=1,max=100"`
	IncludeContext      bool     `json:"include_context"`
	ExportFormat        string   `json:"export_format"        validate:"required,catalog=export_formats"`
}

// KeywordList splits the comma-separated keyword input.
func (c BulkConfig) KeywordList() []string {
	var keywords []string

	for _, keyword := range strings.Split(c.Keywords, ",") {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			keywords = append(keywords, keyword)
		}
	}

	return keywords
}

// Focus describes the analysis-type specific sub-input, or "" when the type has none.
func (c BulkConfig) Focus() string {
	switch c.AnalysisType {
	case AnalysisKeywordSearch:
		keywords := c.KeywordList()
		if len(keywords) == 0 {
			return "Keywords: (none)"
		}

		mode := "case-insensitive"
		if c.CaseSensitive {
			mode = "case-sensitive"
		}

		return "Keywords: " + strings.Join(keywords, ", ") + " (" + mode + ")"
	case AnalysisSentimentAnalysis:
		if len(c.SentimentAspects) == 0 {
			return "Aspects: (none)"
		}

		return "Aspects: " + strings.Join(c.SentimentAspects, ", ")
	case AnalysisCustomQuery:
		if query := strings.TrimSpace(c.CustomQuery); query != "" {
			return "Query: " + query
		}

		return "Query: (empty)"
	default:
		return ""
	}
}

// BulkRequest pairs the control panel with the filenames toggled on for analysis.
type BulkRequest struct {
	Config BulkConfig `json:"config"`
	Files  []string   `json:"files"  validate:"dive,catalog=transcript_files"`
}

// SelectedFiles returns the toggled filenames without repeats, in first-seen order.
func (r BulkRequest) SelectedFiles() []string {
	files := make([]string, 0, len(r.Files))
	for _, name := range r.Files {
		if !slices.Contains(files, name) {
			files = append(files, name)
		}
	}

	return files
}
