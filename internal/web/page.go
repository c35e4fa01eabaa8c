package web

import (
	"io"
	"strings"
	"text/template"

	"github.com/raphi011/ghv/internal/format"
	"github.com/raphi011/ghv/internal/pipeline"
)

// pageData feeds the page template.
type pageData struct {
	Query string
	pipeline.Snapshot
}

var funcs = template.FuncMap{
	"esc":   format.EscapeForDisplay,
	"count": format.Count,
	"color": format.LanguageColor,
	"url":   safeURL,
	"deref": func(n *int) int { return *n },
}

// Every remote string passes through esc. text/template is used so that
// escaping happens exactly once.
var pageTemplate = template.Must(template.New("page").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Profile}}{{esc .Profile.Login}} · {{end}}ghv</title>
<style>
body{font-family:system-ui,sans-serif;max-width:56rem;margin:2rem auto;padding:0 1rem;color:#24292f}
.card{border:1px solid #d0d7de;border-radius:6px;padding:1rem;margin:1rem 0}
.error{color:#cf222e}.muted{color:#57606a}.lang{display:inline-block;width:.75rem;height:.75rem;border-radius:50%}
pre{white-space:pre-wrap;background:#f6f8fa;padding:.5rem;border-radius:6px}
</style>
</head>
<body>
<form action="/" method="get">
<input name="u" value="{{esc .Query}}" placeholder="GitHub username" maxlength="50" autofocus>
<button type="submit">Search</button>
</form>
{{- if .Error}}
<p class="error">{{esc .Error}}</p>
{{- end}}
{{- with .Profile}}
<section class="profile">
<img src="{{url .AvatarURL}}" alt="" width="96" height="96">
<h1><a href="{{url .HTMLURL}}">{{esc .DisplayName}}</a></h1>
<p class="muted">@{{esc .Login}}</p>
{{- if .Bio}}
<p>{{esc .Bio}}</p>
{{- end}}
{{- if .Location}}
<p class="muted">{{esc .Location}}</p>
{{- end}}
<p>{{count .Followers}} followers · {{count .Following}} following · {{count .PublicRepos}} repositories</p>
</section>
{{- end}}
{{- if .TotalRepos}}
<h2>Repositories ({{deref .TotalRepos}})</h2>
{{- if not .Cards}}
<p class="muted">No public repositories found</p>
{{- end}}
{{- range .Cards}}
<article class="card">
<h3><a href="{{url .Repository.HTMLURL}}">{{esc .Repository.Name}}</a></h3>
{{- if .Repository.Description}}
<p>{{esc .Repository.Description}}</p>
{{- end}}
<p class="muted">
{{- if .Repository.Language}}<span class="lang" style="background:{{color .Repository.Language}}"></span> {{esc .Repository.Language}} · {{end -}}
★ {{count .Repository.Stars}} · ⑂ {{count .Repository.Forks}}</p>
{{- with .Readme}}
{{- if .Available}}
<pre>{{esc .Preview}}</pre>
{{- if .Truncated}}
<details><summary>Show full README</summary><pre>{{esc .Full}}</pre></details>
{{- end}}
{{- else}}
<p class="muted">README not available</p>
{{- end}}
{{- end}}
</article>
{{- end}}
{{- end}}
</body>
</html>
`))

// WritePage renders snap as a standalone HTML document. query prefills the
// search box.
func WritePage(w io.Writer, query string, snap pipeline.Snapshot) error {
	return pageTemplate.Execute(w, pageData{Query: query, Snapshot: snap})
}

// safeURL escapes u for an attribute, refusing anything format.SafeLink rejects.
func safeURL(u string) string {
	u = format.SafeLink(strings.TrimSpace(u))
	if u == "" {
		return "#"
	}
	return format.EscapeForDisplay(u)
}
