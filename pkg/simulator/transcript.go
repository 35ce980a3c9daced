package simulator

import (
	"context"
	"strconv"
	"time"

	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/template"
	"github.com/go-playground/validator/v10"
)

// TranscriptDelay is the simulated generation time.
const TranscriptDelay = 2 * time.Second

// TranscriptGenerator produces synthetic consultation transcripts.
type TranscriptGenerator struct {
	sim *Simulator[models.TranscriptConfig]
}

type transcriptData struct {
	Config  models.TranscriptConfig
	Patient string
	Now     time.Time
}

func NewTranscriptGenerator(validate *validator.Validate, opts ...Option) *TranscriptGenerator {
	return &TranscriptGenerator{
		sim: New[models.TranscriptConfig](models.ReportKindTranscript, TranscriptDelay,
			func(cfg models.TranscriptConfig) error {
				if err := validate.Struct(cfg); err != nil {
					return configError("generate_transcript", err)
				}

				return nil
			},
			renderTranscript,
			opts...,
		),
	}
}

// Generate renders a transcript for cfg. The body depends only on cfg and the clock.
func (g *TranscriptGenerator) Generate(ctx context.Context, cfg models.TranscriptConfig) (*models.GeneratedReport, error) {
	return g.sim.Run(ctx, cfg)
}

func (g *TranscriptGenerator) Delay() time.Duration {
	return g.sim.Delay()
}

func renderTranscript(cfg models.TranscriptConfig, now time.Time) (Content, error) {
	body, err := template.Execute(transcriptTemplate, transcriptData{
		Config:  cfg,
		Patient: cfg.Patient(),
		Now:     now,
	})
	if err != nil {
		return Content{}, err
	}

	highlights := []string{"Standard consultation"}
	if len(cfg.FocusAreas) > 0 {
		highlights = append([]string(nil), cfg.FocusAreas...)
	}

	if cfg.IncludeVitals {
		highlights = append(highlights, "Vital signs recorded")
	}

	if cfg.IncludeComplications {
		highlights = append(highlights, "Complications discussed")
	}

	return Content{
		Title:    "Medical Consultation Transcript",
		Body:     body,
		Filename: "transcript_" + cfg.Specialty + "_" + now.Format("20060102_1504") + ".txt",
		Metrics: []models.Metric{
			{Label: "Quality Score", Value: "94/100", Delta: "Synthetic-GPT-Medical v2.1"},
			{Label: "Complexity", Value: strconv.Itoa(cfg.Complexity) + "/5", Delta: cfg.TemplateStyle},
			{Label: "Key Topics", Value: strconv.Itoa(len(cfg.FocusAreas)), Delta: "main areas"},
			{Label: "Duration", Value: cfg.Length, Delta: cfg.Language},
		},
		Highlights: highlights,
		Facts: map[string]string{
			"specialty":  cfg.Specialty,
			"visit_type": cfg.VisitType,
			"patient":    cfg.Patient(),
			"language":   cfg.Language,
		},
	}, nil
}
