package httpapi

import (
	"embed"
	"html/template"
	"io"

	"github.com/i474232898/clima-ecuador/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html").
		Funcs(template.FuncMap{
			"allSeries":   func() []view.Series { return view.AllSeries },
			"chartWidth":  func() int { return view.ChartWidth },
			"chartHeight": func() int { return view.ChartHeight },
		}).
		ParseFS(templateFS, "templates/page.html"),
)

func renderPage(w io.Writer, page view.Page) error {
	return pageTemplate.Execute(w, page)
}
