package dashboard

import (
	"html/template"
	"io"
	"time"

	"optionflow/internal/flow"
)

const pageTitle = "Bitcoin Weekly Options Dashboard (Deribit)"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; font-size: 0.9em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: right; }
th { background: #f3f3f3; }
td.text { text-align: left; }
.error { background: #fde2e1; color: #8a1c12; padding: 0.6em; margin: 0.4em 0; }
.warning { background: #fff4ce; color: #6b4f00; padding: 0.6em; margin: 0.4em 0; }
iframe { border: 0; width: 100%; height: 1100px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Loading}}<p>Loading market data&hellip;</p>{{else}}
<p>Generated {{.GeneratedAt}}</p>
{{range .View.Errors}}<div class="error">{{.}}</div>
{{end}}{{range .View.Warnings}}<div class="warning">{{.}}</div>
{{end}}{{if .Ready}}
<h2>Weekly Expiring Bitcoin Options (Calls &amp; Puts)</h2>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .View.Rows}}<tr>{{range $i, $c := .Cells}}<td{{if or (eq $i 0) (eq $i 1) (eq $i 3) (eq $i 7)}} class="text"{{end}}>{{$c}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
<h2>Charts</h2>
<iframe src="/charts" title="charts"></iframe>
{{end}}{{end}}
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  var first = true;
  ws.onmessage = function () {
    if (first) { first = false; {{if not .Loading}}return;{{end}} }
    location.reload();
  };
})();
</script>
</body>
</html>
`))

type pageData struct {
	Title       string
	Loading     bool
	Ready       bool
	GeneratedAt string
	Columns     []string
	View        ModelView
}

// RenderPage writes the dashboard HTML. A nil model renders the loading state.
func RenderPage(w io.Writer, m *flow.Model) error {
	data := pageData{
		Title:   pageTitle,
		Loading: m == nil,
		Columns: Columns,
	}
	if m != nil {
		data.View = NewModelView(*m)
		data.Ready = m.State == flow.StateReady
		data.GeneratedAt = m.GeneratedAt.UTC().Format(time.RFC1123)
	}
	return pageTemplate.Execute(w, data)
}
