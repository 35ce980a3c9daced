package presenter

import (
	"fmt"
	"path"
	"strings"

	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/services"
)

type ExportFormat string

const (
	ExportTXT   ExportFormat = "txt"
	ExportJSON  ExportFormat = "json"
	ExportPDF   ExportFormat = "pdf"
	ExportExcel ExportFormat = "excel"
	ExportEmail ExportFormat = "email"
	ExportSave  ExportFormat = "save"
)

// ExportOption is one button of the export tab. Only available options produce a download.
type ExportOption struct {
	Format    ExportFormat `json:"format"`
	Label     string       `json:"label"`
	Available bool         `json:"available"`
}

// ExportOptions lists the export buttons of kind.
func ExportOptions(kind models.ReportKind) []ExportOption {
	switch kind {
	case models.ReportKindTranscript:
		return []ExportOption{
			{Format: ExportTXT, Label: "Download TXT", Available: true},
			{Format: ExportPDF, Label: "Export to PDF"},
			{Format: ExportEmail, Label: "Email Transcript"},
			{Format: ExportSave, Label: "Save to Database"},
		}
	case models.ReportKindPromptTest:
		return []ExportOption{
			{Format: ExportJSON, Label: "Download JSON", Available: true},
			{Format: ExportExcel, Label: "Export Excel Report"},
			{Format: ExportEmail, Label: "Email Results"},
			{Format: ExportSave, Label: "Save to History"},
		}
	case models.ReportKindBulkAnalysis:
		return []ExportOption{
			{Format: ExportTXT, Label: "Download Report", Available: true},
			{Format: ExportJSON, Label: "JSON Detailed", Available: true},
			{Format: ExportExcel, Label: "Excel with Charts"},
			{Format: ExportPDF, Label: "PDF Executive Report"},
			{Format: ExportEmail, Label: "Email Alert Summary"},
		}
	default:
		return nil
	}
}

// Download is a file handed to the browser.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export serves the literal report text. TXT and JSON are the only formats that
// produce a file; the other buttons are inert in the demo and fail with
// ErrNotImplementedInDemo.
func Export(sess *models.Session, kind models.ReportKind, format ExportFormat) (Download, error) {
	if Tabs(kind) == nil {
		return Download{}, fmt.Errorf("%w: %s", services.ErrUnknownKind, kind)
	}

	report, ok := sess.Report(kind)
	if !ok {
		return Download{}, fmt.Errorf("%w: %s", services.ErrNoReport, kind.Title())
	}

	switch format {
	case ExportTXT:
		return Download{
			Filename:    withExtension(report.Filename, ".txt"),
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(report.Body),
		}, nil
	case ExportJSON:
		return Download{
			Filename:    withExtension(report.Filename, ".json"),
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(report.Body),
		}, nil
	case ExportPDF, ExportExcel, ExportEmail, ExportSave:
		return Download{}, &services.ServiceError{
			Op:      "export",
			Code:    "not_implemented_in_demo",
			Message: fmt.Sprintf("%s export is not implemented in demo", strings.ToUpper(string(format))),
			Err:     services.ErrNotImplementedInDemo,
		}
	default:
		return Download{}, services.NewValidationError("export", "invalid_config",
			fmt.Sprintf("unknown export format %q", format), services.ErrInvalidConfig)
	}
}

func withExtension(filename, ext string) string {
	if filename == "" {
		return "report" + ext
	}

	return strings.TrimSuffix(filename, path.Ext(filename)) + ext
}
