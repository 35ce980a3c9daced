package simulator

import (
	"embed"
	texttemplate "text/template"

	"github.com/dukex/projecthub/pkg/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	transcriptTemplate = mustTemplate("transcript.tmpl")
	promptTemplate     = mustTemplate("prompt.tmpl")
	bulkTemplate       = mustTemplate("bulk.tmpl")
)

func mustTemplate(name string) *texttemplate.Template {
	text, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		panic(err)
	}

	return template.Must(name, string(text))
}
