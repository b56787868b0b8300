package compare

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter renders the Markdown report to a standalone HTML page
type HTMLFormatter struct{}

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Format generates the HTML report
func (hf *HTMLFormatter) Format(r *Report) (string, error) {
	md, err := (&MarkdownFormatter{}).Format(r)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	lang := r.Locale
	if lang == "" {
		lang = "de-DE"
	}

	var buf bytes.Buffer
	data := struct {
		Lang  string
		Title string
		Body  template.HTML
	}{
		Lang:  lang,
		Title: r.Result.VibeAbo.VehicleName + " vs " + r.Result.IceLeasing.VehicleName,
		Body:  template.HTML(body.String()),
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute html template: %w", err)
	}
	return buf.String(), nil
}
