// Package view renders the HTML pages from the embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path"
	"sync"
	"time"

	"github.com/diewo77/go-immobiliare/i18n"
	"github.com/shopspring/decimal"
)

//go:embed templates
var embedded embed.FS

// devDir is read instead of the embedded copy in dev mode, when it exists.
const devDir = "view/templates"

// Renderer parses each page together with layout.html and the partials, and
// caches the result unless it runs in dev mode.
type Renderer struct {
	fsys fs.FS
	dev  bool

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// New returns a renderer over the embedded templates. In dev mode templates are
// re-read on every request, from disk when the source tree is available.
func New(dev bool) *Renderer {
	var fsys fs.FS
	if fi, err := os.Stat(devDir); dev && err == nil && fi.IsDir() {
		fsys = os.DirFS(devDir)
	} else {
		fsys, _ = fs.Sub(embedded, "templates")
	}
	return NewFS(fsys, dev)
}

// NewFS returns a renderer over fsys, which must hold layout.html.
func NewFS(fsys fs.FS, dev bool) *Renderer {
	return &Renderer{fsys: fsys, dev: dev, cache: map[string]*template.Template{}}
}

// Funcs returns the template helpers bound to lang.
func Funcs(lang string) template.FuncMap {
	p := i18n.Printer(lang)
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"tf":   func(code string, args ...any) string { return i18n.Tf(lang, code, args...) },
		"lang": func() string { return lang },
		"year": func() int { return time.Now().Year() },
		// num prints an integer with the language's digit grouping.
		"num": func(n int64) string { return p.Sprintf("%d", n) },
		// size prints an optional decimal, or "" when absent.
		"size": func(d decimal.NullDecimal) string {
			if !d.Valid {
				return ""
			}
			f := d.Decimal.InexactFloat64()
			if d.Decimal.Equal(d.Decimal.Truncate(0)) {
				return p.Sprintf("%.0f", f)
			}
			return p.Sprintf("%.2f", f)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

func (v *Renderer) parse(name string) (*template.Template, error) {
	if !v.dev {
		v.mu.RLock()
		t, ok := v.cache[name]
		v.mu.RUnlock()
		if ok {
			return t, nil
		}
	}
	partials, err := fs.Glob(v.fsys, "partials/*.html")
	if err != nil {
		return nil, err
	}
	files := append([]string{"layout.html", name}, partials...)
	t, err := template.New(path.Base(name)).Funcs(Funcs(i18n.DefaultLang)).ParseFS(v.fsys, files...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if !v.dev {
		v.mu.Lock()
		v.cache[name] = t
		v.mu.Unlock()
	}
	return t, nil
}

// Render executes page name (e.g. "properties/index.html") inside the layout.
// The page is rendered into a buffer first so a template error never leaves a
// half-written response.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	t, err := v.parse(name)
	if err != nil {
		return err
	}
	if data == nil {
		data = map[string]any{}
	}
	lang := i18n.LangFrom(r.Context())
	if _, ok := data["Lang"]; !ok {
		data["Lang"] = lang
	}
	if _, ok := data["Path"]; !ok {
		data["Path"] = r.URL.Path
	}

	page, err := t.Clone()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := page.Funcs(Funcs(lang)).ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
