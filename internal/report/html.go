package report

import (
	"html/template"
	"io"

	"github.com/yeager/tp-lint/internal/model"
)

// HTMLWriter outputs a standalone styled HTML page.
// This format is meant for publishing a team's status on a web server;
// everything (CSS included) is inlined so the file needs no assets.
//
// Design decision: html/template rather than string concatenation because
// language names, package names, and translator-supplied strings end up in
// the page and must be escaped.
type HTMLWriter struct {
	baseWriter
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(output),
	}
}

// htmlPage is the template input. The breakdown fields are nil for global
// reports, which the template uses to pick its sections.
type htmlPage struct {
	Title       string
	GeneratedAt string
	Version     string
	Stats       *model.Stats
	Language    *model.LanguageStats
	Domain      *model.DomainStats
	TopLangs    []model.LanguagePercent
	TopDomains  []model.DomainCoverage
}

// Write renders the report as a complete HTML document.
func (w *HTMLWriter) Write(report *model.Report) (int, error) {
	page := htmlPage{
		Title:       "Translation Project Report",
		GeneratedAt: report.GeneratedAt.Format("2006-01-02 15:04"),
		Version:     report.Version,
		Stats:       report.Stats,
		Language:    report.Language,
		Domain:      report.Domain,
	}
	if report.Language != nil {
		page.Title += " – " + report.Language.Code
	}

	topN := report.TopN
	if topN <= 0 || topN > len(report.Stats.LanguageRanking) {
		topN = len(report.Stats.LanguageRanking)
	}
	page.TopLangs = report.Stats.LanguageRanking[:topN]

	domainN := report.TopN
	if domainN <= 0 || domainN > len(report.Stats.DomainRanking) {
		domainN = len(report.Stats.DomainRanking)
	}
	page.TopDomains = report.Stats.DomainRanking[:domainN]

	counter := &countingWriter{w: w.output}
	err := htmlTemplate.Execute(counter, page)
	return counter.n, err
}

// countingWriter tracks bytes written so Write can honor the Writer
// interface contract.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"add1": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator" content="tp-lint {{.Version}}">
<title>{{.Title}}</title>
<style>
:root {
    --primary: #2563eb;
    --success: #16a34a;
    --warning: #ca8a04;
    --danger: #dc2626;
    --bg: #f8fafc;
    --card-bg: #ffffff;
    --text: #1e293b;
    --text-muted: #64748b;
    --border: #e2e8f0;
}
* { box-sizing: border-box; }
body {
    font-family: system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif;
    max-width: 1000px;
    margin: 0 auto;
    padding: 2rem 1rem;
    background: var(--bg);
    color: var(--text);
    line-height: 1.6;
}
header { text-align: center; margin-bottom: 2rem; padding-bottom: 1rem; border-bottom: 2px solid var(--border); }
h1 { color: var(--primary); margin: 0 0 0.5rem; }
.meta { color: var(--text-muted); font-size: 0.9rem; }
.card { background: var(--card-bg); border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); padding: 1.5rem; margin-bottom: 1.5rem; }
h2 { color: var(--text); margin: 0 0 1rem; font-size: 1.25rem; }
h3 { margin: 1rem 0 0.5rem; font-size: 1rem; }
h3.complete { color: var(--success); }
h3.partial { color: var(--warning); }
h3.missing { color: var(--danger); }
table { width: 100%; border-collapse: collapse; font-size: 0.95rem; }
th, td { padding: 0.75rem; text-align: left; border-bottom: 1px solid var(--border); }
th { background: var(--bg); font-weight: 600; }
tr:hover { background: var(--bg); }
.overview-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 1rem; }
.stat { text-align: center; padding: 1rem; background: var(--bg); border-radius: 6px; }
.stat-value { font-size: 1.75rem; font-weight: bold; color: var(--primary); }
.stat-label { font-size: 0.85rem; color: var(--text-muted); }
ul { padding-left: 1.5rem; }
li { margin: 0.25rem 0; }
.progress { height: 8px; background: var(--border); border-radius: 4px; overflow: hidden; width: 150px; }
.progress-bar { height: 100%; background: var(--success); }
footer { margin-top: 3rem; padding-top: 1.5rem; border-top: 1px solid var(--border); text-align: center; font-size: 0.85rem; color: var(--text-muted); }
footer a { color: var(--primary); text-decoration: none; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<p class="meta">Generated: {{.GeneratedAt}} · Data source: <a href="https://translationproject.org/extra/matrix.html">Translation Project</a></p>
</header>

<div class="card">
<h2>Overview</h2>
<div class="overview-grid">
    <div class="stat"><div class="stat-value">{{.Stats.TotalLanguages}}</div><div class="stat-label">Languages</div></div>
    <div class="stat"><div class="stat-value">{{.Stats.TotalDomains}}</div><div class="stat-label">Packages</div></div>
    <div class="stat"><div class="stat-value">{{.Stats.TotalTranslations}}</div><div class="stat-label">Translations</div></div>
    <div class="stat"><div class="stat-value">{{printf "%.1f" .Stats.OverallCoverage}}%</div><div class="stat-label">Coverage</div></div>
</div>
</div>

{{if .Language}}
<div class="card">
<h2>Language: {{.Language.Code}}</h2>
<p>Coverage: {{.Language.Coverage}}%</p>
<h3 class="complete">Complete (100%) – {{len .Language.Complete}} packages</h3>
<ul>
{{range .Language.Complete}}<li><a href="https://translationproject.org/domain/{{.}}.html">{{.}}</a></li>
{{end}}</ul>
<h3 class="partial">Partial – {{len .Language.Partial}} packages</h3>
<table>
<tr><th>Package</th><th>Coverage</th><th></th></tr>
{{range .Language.Partial}}<tr><td><a href="https://translationproject.org/domain/{{.Domain}}.html">{{.Domain}}</a></td><td>{{.Percent}}%</td><td><div class="progress"><div class="progress-bar" style="width:{{.Percent}}%;background:var(--warning)"></div></div></td></tr>
{{end}}</table>
<h3 class="missing">Missing – {{len .Language.Missing}} packages</h3>
<ul>
{{range .Language.Missing}}<li><a href="https://translationproject.org/domain/{{.}}.html">{{.}}</a></li>
{{end}}</ul>
</div>
{{else if .Domain}}
<div class="card">
<h2>Package: {{.Domain.Domain}}</h2>
<h3 class="complete">Complete (100%) – {{len .Domain.Complete}} languages</h3>
<ul>
{{range .Domain.Complete}}<li><a href="https://translationproject.org/team/{{.}}.html">{{.}}</a></li>
{{end}}</ul>
<h3 class="partial">Partial – {{len .Domain.Partial}} languages</h3>
<table>
<tr><th>Language</th><th>Coverage</th><th></th></tr>
{{range .Domain.Partial}}<tr><td><a href="https://translationproject.org/team/{{.Code}}.html">{{.Code}}</a></td><td>{{.Percent}}%</td><td><div class="progress"><div class="progress-bar" style="width:{{.Percent}}%;background:var(--warning)"></div></div></td></tr>
{{end}}</table>
<h3 class="missing">Missing – {{len .Domain.Missing}} languages</h3>
<ul>
{{range .Domain.Missing}}<li><a href="https://translationproject.org/team/{{.}}.html">{{.}}</a></li>
{{end}}</ul>
</div>
{{else}}
<div class="card">
<h2>Top Languages</h2>
<table>
<tr><th>Rank</th><th>Language</th><th>Coverage</th><th></th></tr>
{{range $i, $lp := .TopLangs}}<tr><td>{{add1 $i}}</td><td><a href="https://translationproject.org/team/{{$lp.Code}}.html">{{$lp.Code}}</a></td><td>{{$lp.Percent}}%</td><td><div class="progress"><div class="progress-bar" style="width:{{$lp.Percent}}%"></div></div></td></tr>
{{end}}</table>
</div>

<div class="card">
<h2>Best Covered Packages</h2>
<table>
<tr><th>Package</th><th>Languages</th><th>Avg Coverage</th></tr>
{{range .TopDomains}}<tr><td><a href="https://translationproject.org/domain/{{.Domain}}.html">{{.Domain}}</a></td><td>{{.Count}}</td><td>{{printf "%.0f" .AvgPercent}}%</td></tr>
{{end}}</table>
</div>
{{end}}

<footer>
<p>Report generated by tp-lint {{.Version}}</p>
</footer>
</body>
</html>
`))
