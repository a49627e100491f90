package export

import (
	"html/template"
	"os"
	"path/filepath"

	"kp-dashboard/internal/models"
)

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>KP Astrology Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { font-size: 1.4em; }
h2 { font-size: 1.1em; margin-top: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
{{if .ColorCoding}}th { background: #e6f7ff; }
tr:nth-child(even) td { background: #f7f7f7; }{{end}}
</style>
</head>
<body>
<h1>KP Astrology Report — {{.Location}}</h1>
<p>Generated {{.GeneratedAt}}</p>
{{range .Sheets}}
<h2>{{.Name}}</h2>
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}
</body>
</html>
`))

type htmlContext struct {
	Location    string
	GeneratedAt string
	ColorCoding bool
	Sheets      []models.Sheet
}

func (w *Writer) writeHTML(base string, opts models.ExportOptions, data models.ReportData, sheets []models.Sheet) (string, error) {
	path := base + ".html"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	ctx := htmlContext{
		Location:    data.Location.Name,
		GeneratedAt: data.GeneratedAt.Format("2006-01-02 15:04"),
		ColorCoding: opts.Formatting.ColorCoding,
		Sheets:      sheets,
	}

	if err := htmlReport.Execute(f, ctx); err != nil {
		return "", err
	}
	return path, nil
}
