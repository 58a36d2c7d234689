package publish

import (
	"bytes"
	"fmt"
	"html/template"

	"wavefeeds/config"
)

// FeedLink is one row of the homepage listing.
type FeedLink struct {
	Slug  string
	Title string
	RSS   string
	Atom  string
	JSON  string
}

var homepageTmpl = template.Must(template.New("homepage").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 42rem; margin: 2rem auto; padding: 0 1rem; }
    li { margin: .5rem 0; }
    .formats a { margin-right: .5rem; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>Aggregated news feeds, rebuilt on a schedule.</p>
  <ul>
{{- range .Feeds}}
    <li><strong>{{.Title}}</strong>
      <span class="formats">
        <a href="{{.RSS}}">RSS</a>
        <a href="{{.Atom}}">Atom</a>
        <a href="{{.JSON}}">JSON</a>
      </span>
    </li>
{{- end}}
  </ul>
</body>
</html>
`))

// WriteHomepage regenerates the feed listing page. Unlike feed files it
// is overwritten unconditionally every run.
func (w *Writer) WriteHomepage(title string, feeds []FeedLink) error {
	var buf bytes.Buffer
	data := struct {
		Title string
		Feeds []FeedLink
	}{Title: title, Feeds: feeds}
	if err := homepageTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render homepage: %w", err)
	}
	return w.Write(config.HomepageFile, buf.Bytes())
}
