package http

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer plugs html/template into echo's Renderer interface.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses every template matching the glob.
func NewTemplateRenderer(glob string) (*TemplateRenderer, error) {
	templates, err := template.ParseGlob(glob)
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: templates}, nil
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
