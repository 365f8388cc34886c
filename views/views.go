package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ray-remotestate/enfes/middlewares"
	"github.com/ray-remotestate/enfes/models"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page is what every template receives: the loader payload plus request-scoped values.
type Page struct {
	Title   string
	Session *middlewares.Session
	Now     time.Time
	Data    any
}

var funcs = template.FuncMap{
	"formatPrice": FormatPrice,
	"orderTotal":  OrderTotal,
	"countdown":   Countdown,
	"capitalize":  Capitalize,
	"days":        func() []string { return models.DaysOfWeek },
	"sameID": func(a uuid.UUID, b *uuid.UUID) bool {
		return b != nil && a == *b
	},
}

var pages = mustParse()

func mustParse() map[string]*template.Template {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}

	parsed := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		parsed[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, file))
	}
	return parsed
}

// Render executes the named page inside the layout. The page is buffered so a template
// failure never leaves a partial response.
func Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logrus.WithError(err).WithField("template", name).Warn("failed to write page")
	}
	return nil
}
