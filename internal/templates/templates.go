// Package templates renders the portal's server-side HTML pages from
// embedded html/template files. Each page file defines a "content" block
// that the base layout wraps; pages are parsed once at init into separate
// template sets so their content blocks don't collide.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/hywep/alerts/internal/apperror"
)

//go:embed html/*.html
var files embed.FS

// layoutFile is the shared page frame (head, nav, footer).
const layoutFile = "html/base.layout.html"

// Data is the view model shared by all pages. Handlers fill in what their
// page needs; unused fields render as zero values.
type Data struct {
	// Title is the page <title>.
	Title string

	// CSRFToken is injected into every form as a hidden field. Set by
	// middleware.Render, not by handlers.
	CSRFToken string

	// UserName is the signed-in user's display name, empty when signed out.
	UserName string

	// Form holds submitted or prefilled field values so a rejected form
	// re-renders with the user's input intact.
	Form map[string]string

	// Errors carries field-keyed validation messages.
	Errors apperror.FieldErrors

	// Message is a page-level banner (business rejection or success note).
	Message string

	// Success styles the banner green instead of red.
	Success bool

	// IsActive is the notification toggle state on the settings page.
	IsActive bool

	// Code is the HTTP status shown on the error page.
	Code int
}

// Field returns the form value for a field, or "".
func (d *Data) Field(name string) string {
	return d.Form[name]
}

// pages maps a page file name to its parsed template set.
var pages = make(map[string]*template.Template)

func init() {
	entries, err := fs.Glob(files, "html/*.page.html")
	if err != nil {
		panic(fmt.Sprintf("globbing templates: %v", err))
	}
	for _, page := range entries {
		name := strings.TrimPrefix(page, "html/")
		pages[name] = template.Must(template.ParseFS(files, layoutFile, page))
	}
}

// Execute renders the named page into w. The page is rendered into a
// buffer first so a template error never produces a half-written response.
func Execute(w io.Writer, page string, data *Data) error {
	ts, ok := pages[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}

	if data == nil {
		data = &Data{}
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
