package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("network").Parse(htmlTemplate))
}

// HTMLOptions configures HTML page generation.
type HTMLOptions struct {
	Title string // Page title; defaults to "Agent Network"
}

// DefaultHTMLOptions returns default HTML generation options.
func DefaultHTMLOptions() HTMLOptions {
	return HTMLOptions{Title: "Agent Network"}
}

type htmlData struct {
	Title string
	SVG   template.HTML
}

// GenerateHTML wraps a rendered SVG document in a self-contained HTML page.
// The SVG markup must come from an SVGSurface render of the same snapshot;
// hover tooltips and pulse animation carry through unchanged.
func GenerateHTML(svgMarkup string, opts HTMLOptions) (string, error) {
	if svgMarkup == "" {
		return "", fmt.Errorf("svg markup cannot be empty")
	}
	if opts.Title == "" {
		opts.Title = "Agent Network"
	}

	var buf bytes.Buffer
	err := compiledTemplate.Execute(&buf, htmlData{
		Title: opts.Title,
		SVG:   template.HTML(svgMarkup),
	})
	if err != nil {
		return "", fmt.Errorf("executing html template: %w", err)
	}
	return buf.String(), nil
}

// GenerateEmptyHTML returns the placeholder page shown when a snapshot has
// no agents.
func GenerateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Agent Network - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No agents connected</h2>
    <p>The network has no agents to display yet.</p>
    <p>Agents appear here as soon as they register with the platform.</p>
  </div>
</body>
</html>`
}

// GenerateLoadingHTML returns the page shown while a snapshot is being
// fetched.
func GenerateLoadingHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Agent Network - Loading</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
      color: #666;
    }
  </style>
</head>
<body>
  <p>Loading agent network…</p>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    .network {
      display: flex;
      justify-content: center;
      padding: 16px;
    }
    .network svg {
      background: white;
      border: 1px solid #e0e0e0;
      border-radius: 6px;
      box-shadow: 0 1px 4px rgba(0,0,0,0.08);
    }
  </style>
</head>
<body>
  <div class="network">
{{.SVG}}
  </div>
</body>
</html>`
