package view

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var tplCache = struct {
	sync.RWMutex
	m map[string]*template.Template
}{m: map[string]*template.Template{}}

// Funcs returns the shared helper map. Money values render with a comma
// decimal separator, matching the forms that accept "10,50".
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return strings.Replace(d.StringFixed(2), ".", ",", 1)
		},
		"year": func() int { return time.Now().Year() },
		"dt": func(t time.Time) string {
			return t.UTC().Format("02/01/2006 15:04")
		},
		"day": func(t time.Time) string {
			return t.UTC().Format("02/01")
		},
		"barHeight": func(count, max int) int {
			if max <= 0 || count <= 0 {
				return 2
			}
			return 2 + count*110/max
		},
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
	}
}

// Render executes the named page wrapped in layout.html. Parsed templates are
// cached per page name.
func Render(w io.Writer, name string, data map[string]any) error {
	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if !ok {
		parsed, err := template.New("layout.html").Funcs(Funcs()).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return err
		}
		tplCache.Lock()
		tplCache.m[name] = parsed
		tplCache.Unlock()
		t = parsed
	}
	if data == nil {
		data = map[string]any{}
	}
	return t.Execute(w, data)
}
