package models

import "strings"

// DefaultPatientName is used when the transcript form leaves the patient name blank.
const DefaultPatientName = "Demo Patient"

// TranscriptConfig collects the Transcript Generator form.
type TranscriptConfig struct {
	Specialty            string   `json:"specialty"             validate:"required,catalog=specialties"`
	VisitType            string   `json:"visit_type"            validate:"required,catalog=visit_types"`
	PatientName          string   `json:"patient_name"`
	Age                  int      `json:"age"                   validate:"min=18,max=80"`
	Gender               string   `json:"gender"                validate:"required,catalog=genders"`
	Complexity           int      `json:"complexity"            validate:"min=1,max=5"`
	Length               string   `json:"length"                validate:"required,catalog=lengths"`
	IncludeVitals        bool     `json:"include_vitals"`
	FocusAreas           []string `json:"focus_areas"           validate:"dive,catalog=focus_areas"`
	Tone                 string   `json:"tone"                  validate:"required,catalog=tones"`
	Language             string   `json:"language"              validate:"required,catalog=languages"`
	TemplateStyle        string   `json:"template_style"        validate:"required,catalog=template_styles"`
	IncludeComplications bool     `json:"include_complications"`
}

// Patient returns the patient name, falling back to the placeholder.
func (c TranscriptConfig) Patient() string {
	if name := strings.TrimSpace(c.PatientName); name != "" {
		return name
	}

	return DefaultPatientName
}
