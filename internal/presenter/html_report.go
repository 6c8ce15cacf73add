package presenter

import (
	"html/template"
	"io"

	"github.com/aleister1102/redline/internal/common/errorwrapper"
)

// reviewTemplate renders a View as a standalone HTML page for offline
// review, the same way scan diff reports are produced elsewhere.
const reviewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; }
.stats { color: #666; font-size: 0.85rem; margin-bottom: 1rem; }
.diff { white-space: pre-wrap; line-height: 1.6; }
.added { background: #d4f7dc; color: #116329; }
.removed { background: #ffd7d5; color: #82071e; text-decoration: line-through; }
table.side-by-side { width: 100%; border-collapse: collapse; }
table.side-by-side td { width: 50%; vertical-align: top; padding: 2px 8px; white-space: pre-wrap; }
td.empty { background: #f6f8fa; }
</style>
</head>
<body>
<h2>{{.Title}}</h2>
<div class="stats">+{{.View.Stats.AddedChars}} / -{{.View.Stats.RemovedChars}} characters, {{.View.Stats.PercentChanged}}% changed</div>
{{if eq .View.Mode "side-by-side"}}
<table class="side-by-side">
{{range .View.Rows}}<tr><td class="{{.Left.Kind}}">{{.Left.Text}}</td><td class="{{.Right.Kind}}">{{.Right.Text}}</td></tr>
{{end}}</table>
{{else}}
<div class="diff">{{range .View.Segments}}{{if .Added}}<span class="added">{{.Value}}</span>{{else if .Removed}}<span class="removed">{{.Value}}</span>{{else}}{{.Value}}{{end}}{{end}}</div>
{{end}}
</body>
</html>
`

var reviewTmpl = template.Must(template.New("review").Parse(reviewTemplate))

// WriteHTML writes a standalone HTML review page for the given view.
func WriteHTML(w io.Writer, title string, view View) error {
	data := struct {
		Title string
		View  View
	}{Title: title, View: view}

	if err := reviewTmpl.Execute(w, data); err != nil {
		return errorwrapper.WrapError(err, "failed to render HTML review report")
	}
	return nil
}
