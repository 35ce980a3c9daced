package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dukex/projecthub/pkg/activity"
	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/presenter"
)

//go:embed templates/*.html
var templateFS embed.FS

var viewNames = []string{"login", "dashboard", "system", "projects", "report", "error"}

var viewFuncs = template.FuncMap{
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05")
	},
}

// views renders the embedded pages. Every page is parsed together with the
// shared layout and partials.
type views struct {
	pages map[string]*template.Template
}

func newViews() (*views, error) {
	v := &views{pages: make(map[string]*template.Template, len(viewNames))}

	for _, name := range viewNames {
		tmpl, err := template.New(name).Funcs(viewFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse view %s: %w", name, err)
		}

		v.pages[name] = tmpl
	}

	return v, nil
}

func (v *views) Render(out io.Writer, name string, binding page) error {
	tmpl, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("view %s not found", name)
	}

	return tmpl.ExecuteTemplate(out, "layout", binding)
}

// page is the data every view renders.
type page struct {
	Title   string
	HubName string
	Version string
	Session *models.Session
	Views   []models.View
	Warning string
	Notice  string
	Info    string

	Metrics    []models.Metric
	Recent     []activity.Entry
	Components []catalog.Component

	Project *projectView
	Panel   *presenter.Panel
}

type projectTab struct {
	Slug   string
	Title  string
	Active bool
}

type projectView struct {
	Kind      models.ReportKind
	Slug      string
	Tabs      []projectTab
	Fields    []models.FieldSpec
	Multipart bool
	Stats     []models.Metric
	History   *catalog.Table
	Files     []models.TranscriptFile
	Panel     *presenter.Panel
}
