package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index", "proposals"}

// Views renders the embedded html/template pages for fiber.
// Every page is executed through the "base" layout.
type Views struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
	markdown  goldmark.Markdown
	policy    *bluemonday.Policy
}

func NewViews() *Views {
	return &Views{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   bluemonday.UGCPolicy(),
	}
}

// Load parses the templates. fiber calls it once when the app starts.
func (v *Views) Load() error {
	funcs := template.FuncMap{
		"datetime": formatDate,
		"markdown": v.renderMarkdown,
		"percent":  percent,
		"scoreAt":  scoreAt,
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = t
	}

	v.mu.Lock()
	v.templates = templates
	v.mu.Unlock()
	return nil
}

// Render executes the named page into out. Layouts are ignored.
func (v *Views) Render(out io.Writer, name string, binding interface{}, _ ...string) error {
	v.mu.RLock()
	loaded := v.templates != nil
	v.mu.RUnlock()
	if !loaded {
		if err := v.Load(); err != nil {
			return err
		}
	}

	v.mu.RLock()
	t, ok := v.templates[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return t.ExecuteTemplate(out, "base", binding)
}

func (v *Views) renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := v.markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(v.policy.SanitizeBytes(buf.Bytes()))
}

func formatDate(ts int64) string {
	if ts <= 0 {
		return "Unknown date"
	}
	return time.Unix(ts, 0).UTC().Format("Jan 02, 2006")
}

func percent(score, total float64) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", score/total*100)
}

func scoreAt(scores []float64, i int) float64 {
	if i < 0 || i >= len(scores) {
		return 0
	}
	return scores[i]
}
