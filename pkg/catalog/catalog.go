// Package catalog provides the option sets, sample files and canned figures that drive
// the demo workflows.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/dukex/projecthub/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Option set names, used by the "catalog" validation tag and the form builders.
const (
	Specialties       = "specialties"
	VisitTypes        = "visit_types"
	Genders           = "genders"
	Lengths           = "lengths"
	FocusAreas        = "focus_areas"
	Tones             = "tones"
	Languages         = "languages"
	TemplateStyles    = "template_styles"
	PromptTemplates   = "prompt_templates"
	ModelFamilies     = "model_families"
	PromptDataSources = "prompt_data_sources"
	SampleFiles       = "sample_files"
	AnalysisTypes     = "analysis_types"
	SentimentAspects  = "sentiment_aspects"
	BulkDataSources   = "bulk_data_sources"
	SpecialtyFilters  = "specialty_filters"
	VisitTypeFilters  = "visit_type_filters"
	ExportFormats     = "export_formats"
	TranscriptFiles   = "transcript_files"
)

type PromptTemplate struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

type ModelFamily struct {
	Name   string   `yaml:"name"`
	Models []string `yaml:"models"`
}

type Component struct {
	Name   string `yaml:"name"`
	Status string `yaml:"status"`
	OK     bool   `yaml:"ok"`
}

// Table is a small history table shown under a workflow.
type Table struct {
	Columns []string   `yaml:"columns" json:"columns"`
	Rows    [][]string `yaml:"rows"    json:"rows"`
}

// Catalog holds every enumerated choice and canned figure of the hub.
type Catalog struct {
	HubName      string `yaml:"hub_name"`
	DemoIdentity string `yaml:"demo_identity"`

	Specialties    []string `yaml:"specialties"`
	VisitTypes     []string `yaml:"visit_types"`
	Genders        []string `yaml:"genders"`
	Lengths        []string `yaml:"lengths"`
	FocusAreas     []string `yaml:"focus_areas"`
	Tones          []string `yaml:"tones"`
	Languages      []string `yaml:"languages"`
	TemplateStyles []string `yaml:"template_styles"`

	PromptTemplates    []PromptTemplate `yaml:"prompt_templates"`
	ModelFamilies      []ModelFamily    `yaml:"model_families"`
	PromptDataSources  []string         `yaml:"prompt_data_sources"`
	UploadExtensions   []string         `yaml:"upload_extensions"`
	SampleFiles        []string         `yaml:"sample_files"`
	DefaultSampleCount int              `yaml:"default_sample_count"`

	AnalysisTypes    []string                `yaml:"analysis_types"`
	SentimentAspects []string                `yaml:"sentiment_aspects"`
	BulkDataSources  []string                `yaml:"bulk_data_sources"`
	SpecialtyFilters []string                `yaml:"specialty_filters"`
	VisitTypeFilters []string                `yaml:"visit_type_filters"`
	ExportFormats    []string                `yaml:"export_formats"`
	DefaultDateFrom  string                  `yaml:"default_date_from"`
	TranscriptFiles  []models.TranscriptFile `yaml:"transcript_files"`

	DashboardMetrics []models.Metric `yaml:"dashboard_metrics"`
	GenerationStats  []models.Metric `yaml:"generation_stats"`
	SystemStatus     []Component     `yaml:"system_status"`
	PromptHistory    Table           `yaml:"prompt_history"`
	AnalysisHistory  Table           `yaml:"analysis_history"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := Parse(defaultCatalog)
		if err != nil {
			panic(fmt.Errorf("embedded catalog is invalid: %w", err))
		}

		defaultCat = cat
	})

	return defaultCat
}

// Load reads a catalog override from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	if err := cat.validate(); err != nil {
		return nil, err
	}

	return &cat, nil
}

func (c *Catalog) validate() error {
	required := []string{
		Specialties, VisitTypes, Genders, Lengths, Tones, Languages, TemplateStyles,
		PromptTemplates, ModelFamilies, PromptDataSources, AnalysisTypes,
		BulkDataSources, ExportFormats,
	}

	var errs []error

	for _, set := range required {
		if len(c.Options(set)) == 0 {
			errs = append(errs, fmt.Errorf("catalog option set %q is empty", set))
		}
	}

	for _, family := range c.ModelFamilies {
		if len(family.Models) == 0 {
			errs = append(errs, fmt.Errorf("model family %q has no models", family.Name))
		}
	}

	if c.DemoIdentity == "" {
		errs = append(errs, errors.New("catalog demo_identity is empty"))
	}

	return errors.Join(errs...)
}

// Options returns the option values of the named set, or nil for an unknown set.
func (c *Catalog) Options(set string) []string {
	switch set {
	case Specialties:
		return c.Specialties
	case VisitTypes:
		return c.VisitTypes
	case Genders:
		return c.Genders
	case Lengths:
		return c.Lengths
	case FocusAreas:
		return c.FocusAreas
	case Tones:
		return c.Tones
	case Languages:
		return c.Languages
	case TemplateStyles:
		return c.TemplateStyles
	case PromptTemplates:
		names := make([]string, 0, len(c.PromptTemplates))
		for _, template := range c.PromptTemplates {
			names = append(names, template.Name)
		}

		return names
	case ModelFamilies:
		names := make([]string, 0, len(c.ModelFamilies))
		for _, family := range c.ModelFamilies {
			names = append(names, family.Name)
		}

		return names
	case PromptDataSources:
		return c.PromptDataSources
	case SampleFiles:
		return c.SampleFiles
	case AnalysisTypes:
		return c.AnalysisTypes
	case SentimentAspects:
		return c.SentimentAspects
	case BulkDataSources:
		return c.BulkDataSources
	case SpecialtyFilters:
		return c.SpecialtyFilters
	case VisitTypeFilters:
		return c.VisitTypeFilters
	case ExportFormats:
		return c.ExportFormats
	case TranscriptFiles:
		names := make([]string, 0, len(c.TranscriptFiles))
		for _, file := range c.TranscriptFiles {
			names = append(names, file.Filename)
		}

		return names
	default:
		return nil
	}
}

func (c *Catalog) Contains(set, value string) bool {
	return slices.Contains(c.Options(set), value)
}

// PromptTemplate returns the prompt text of a named template.
func (c *Catalog) PromptTemplate(name string) (string, bool) {
	for _, template := range c.PromptTemplates {
		if template.Name == name {
			return template.Text, true
		}
	}

	return "", false
}

// Models returns the specific models offered by a model family.
func (c *Catalog) Models(family string) []string {
	for _, f := range c.ModelFamilies {
		if f.Name == family {
			return f.Models
		}
	}

	return nil
}

func (c *Catalog) TranscriptFile(filename string) (models.TranscriptFile, bool) {
	for _, file := range c.TranscriptFiles {
		if file.Filename == filename {
			return file, true
		}
	}

	return models.TranscriptFile{}, false
}

// DefaultSamples is the preselected subset of the sample database.
func (c *Catalog) DefaultSamples() []string {
	count := min(c.DefaultSampleCount, len(c.SampleFiles))

	return slices.Clone(c.SampleFiles[:max(count, 0)])
}
