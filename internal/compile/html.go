package compile

import (
	"fmt"
	"html/template"
	"strings"

	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
)

// section is one compiled document in the final artifact.
type section struct {
	Anchor   string
	Title    string
	Depth    int
	Author   string
	Updated  string
	Fragment string // pre-rendered HTML from the pipeline
}

// DepthClass returns the CSS indentation class; depth 0 gets none.
func (s section) DepthClass() string {
	if s.Depth > 0 {
		return fmt.Sprintf("depth-%d", s.Depth)
	}
	return ""
}

// HTML exposes the pre-rendered fragment to the template without re-escaping.
func (s section) HTML() template.HTML {
	return template.HTML(s.Fragment)
}

// page is the full artifact model.
type page struct {
	Title       string
	Timestamp   string
	Provenance  string
	Description string // pre-rendered HTML, empty when the collection has none
	Sections    []section
}

func (p page) DescriptionHTML() template.HTML {
	return template.HTML(p.Description)
}

// HasMermaid reports whether the description or any section carries a diagram
// container, in which case the page pulls in the client-side mermaid runtime.
func (p page) HasMermaid() bool {
	if strings.Contains(p.Description, `class="mermaid"`) {
		return true
	}
	for _, s := range p.Sections {
		if strings.Contains(s.Fragment, `class="mermaid"`) {
			return true
		}
	}
	return false
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
    line-height: 1.6;
    max-width: 900px;
    margin: 0 auto;
    padding: 20px;
    color: #333;
}
.header { border-bottom: 3px solid #2684FF; padding-bottom: 20px; margin-bottom: 40px; }
.header h1 { margin: 0 0 10px 0; color: #2684FF; }
.header .meta { color: #666; font-size: 0.9em; }
.collection-description { background: #f5f5f5; padding: 15px; border-radius: 5px; margin-bottom: 30px; }
.document { margin-bottom: 60px; page-break-inside: avoid; }
.document-header { border-left: 4px solid #2684FF; padding-left: 15px; margin-bottom: 20px; }
.document-title { margin: 0 0 5px 0; color: #2684FF; }
.document-meta { color: #666; font-size: 0.85em; }
.document-content { padding-left: 20px; }
.depth-1 { padding-left: 20px; }
.depth-2 { padding-left: 40px; }
.depth-3 { padding-left: 60px; }
.depth-4 { padding-left: 80px; }
.depth-5 { padding-left: 100px; }
pre { background: #f5f5f5; padding: 15px; border-radius: 5px; overflow-x: auto; }
code { background: #f5f5f5; padding: 2px 6px; border-radius: 3px; font-family: "Courier New", Courier, monospace; }
pre code { background: none; padding: 0; }
table { border-collapse: collapse; width: 100%; margin: 20px 0; }
th, td { border: 1px solid #ddd; padding: 12px; text-align: left; }
th { background: #f5f5f5; font-weight: bold; }
blockquote { border-left: 4px solid #ddd; padding-left: 15px; margin-left: 0; color: #666; }
img { max-width: 100%; height: auto; }
a { color: #2684FF; text-decoration: none; }
a:hover { text-decoration: underline; }
.mermaid { background: #fafafa; padding: 15px; border-radius: 5px; margin: 20px 0; }
.mention-unresolved { color: #999; border-bottom: 1px dotted #999; cursor: help; }
.toc { background: #f9f9f9; border: 1px solid #ddd; padding: 20px; margin-bottom: 40px; border-radius: 5px; }
.toc h2 { margin-top: 0; }
.toc ul { list-style-type: none; padding-left: 0; }
.toc li { margin: 5px 0; }
.toc .depth-1 { padding-left: 20px; }
.toc .depth-2 { padding-left: 40px; }
.toc .depth-3 { padding-left: 60px; }
@media print {
    body { max-width: 100%; }
    .document { page-break-after: always; }
}
</style>
</head>
<body>
<div class="header">
    <h1>{{.Title}}</h1>
    <div class="meta">Compiled on {{.Timestamp}} from {{.Provenance}}</div>
</div>
{{- if .Description}}
<div class="collection-description">
    <h3>Collection Description</h3>
    {{.DescriptionHTML}}
</div>
{{- end}}
<div class="toc">
    <h2>Table of Contents</h2>
    <ul>
{{- range .Sections}}
        <li class="{{.DepthClass}}"><a href="#{{.Anchor}}">{{.Title}}</a></li>
{{- end}}
    </ul>
</div>
{{- range .Sections}}
<div class="document {{.DepthClass}}" id="{{.Anchor}}">
    <div class="document-header">
        <h2 class="document-title">{{.Title}}</h2>
        <div class="document-meta">Author: {{.Author}} | Updated: {{.Updated}}</div>
    </div>
    <div class="document-content">
        {{.HTML}}
    </div>
</div>
{{- end}}
{{- if .HasMermaid}}
<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: true });
</script>
{{- end}}
</body>
</html>
`))

// assemblePage renders the artifact model to the final HTML document.
func assemblePage(p page) (string, error) {
	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, p); err != nil {
		return "", errors.WrapError(err, errors.CategoryCompile, "render page template").Build()
	}
	return sb.String(), nil
}
