package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/shacl"
)

// Render serializes a validation report in the requested format.
func Render(r *shacl.Report, format Format) (string, error) {
	switch format {
	case FormatText:
		return renderText(r), nil
	case FormatJSON:
		return renderJSON(r)
	case FormatMarkdown:
		return renderMarkdown(r), nil
	case FormatHTML:
		return renderHTML(r)
	default:
		return "", fmt.Errorf("unsupported report format: %s", format)
	}
}

func renderText(r *shacl.Report) string {
	var sb strings.Builder
	if r.Conforms {
		sb.WriteString("VALIDATION PASSED\n")
	} else {
		sb.WriteString("VALIDATION FAILED\n")
	}
	sb.WriteString(fmt.Sprintf("Run: %s\n", r.ID))
	sb.WriteString(fmt.Sprintf("Violations: %d\n", len(r.Violations)))
	for _, v := range r.Violations {
		sb.WriteString(fmt.Sprintf("  [%s] %s / %s: %s\n",
			v.Severity, v.Shape, v.Constraint, v.Message))
	}
	return sb.String()
}

func renderJSON(r *shacl.Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(data) + "\n", nil
}

func renderMarkdown(r *shacl.Report) string {
	var sb strings.Builder
	sb.WriteString("# Topology Validation Report\n\n")
	sb.WriteString(fmt.Sprintf("Run `%s`\n\n", r.ID))
	if r.Conforms {
		sb.WriteString("**Result: PASSED**, all constraints satisfied.\n")
	} else {
		sb.WriteString("**Result: FAILED**\n")
	}
	if len(r.Violations) == 0 {
		return sb.String()
	}
	sb.WriteString("\n| Severity | Entity | Shape | Constraint | Message |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, v := range r.Violations {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			v.Severity, rdf.LocalName(v.Entity), v.Shape, v.Constraint, v.Message))
	}
	return sb.String()
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Topology Validation Report</title>
<style>
body { font-family: 'Segoe UI', Tahoma, sans-serif; margin: 2em; }
.passed { color: #2e7d32; }
.failed { color: #c62828; }
table { border-collapse: collapse; margin-top: 1em; }
th, td { border: 1px solid #ccc; padding: 6px 12px; text-align: left; }
th { background: #f5f5f5; }
.sev-Violation { color: #c62828; font-weight: bold; }
.sev-Warning { color: #ef6c00; }
.sev-Info { color: #1565c0; }
</style>
</head>
<body>
<h1>Topology Validation Report</h1>
<p>Run <code>{{.ID}}</code></p>
{{if .Conforms}}<h2 class="passed">PASSED</h2>{{else}}<h2 class="failed">FAILED</h2>{{end}}
{{if .Violations}}
<table>
<tr><th>Severity</th><th>Entity</th><th>Shape</th><th>Constraint</th><th>Message</th></tr>
{{range .Violations}}
<tr>
<td class="sev-{{.Severity}}">{{.Severity}}</td>
<td>{{.Entity}}</td>
<td>{{.Shape}}</td>
<td>{{.Constraint}}</td>
<td>{{.Message}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

func renderHTML(r *shacl.Report) (string, error) {
	var sb strings.Builder
	if err := htmlTemplate.Execute(&sb, r); err != nil {
		return "", fmt.Errorf("render HTML report: %w", err)
	}
	return sb.String(), nil
}
