package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"eventhub/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// TemplateRenderer executes the embedded templates. HTML bodies go through
// html/template so recipient-controlled values are escaped.
type TemplateRenderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewTemplateRenderer parses every embedded template once.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &TemplateRenderer{html: html, text: text}, nil
}

func (r *TemplateRenderer) Render(name domain.EmailTemplate, data any) (subject, html, text string, err error) {
	base := string(name)
	if subject, err = executeText(r.text, base+"_subject.txt", data); err != nil {
		return "", "", "", err
	}
	if text, err = executeText(r.text, base+".txt", data); err != nil {
		return "", "", "", err
	}
	t := r.html.Lookup(base + ".html")
	if t == nil {
		return "", "", "", fmt.Errorf("email template %q not found", base+".html")
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("execute %s.html: %w", base, err)
	}
	return strings.TrimSpace(subject), buf.String(), text, nil
}

func executeText(set *texttemplate.Template, name string, data any) (string, error) {
	t := set.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("email template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.String(), nil
}
