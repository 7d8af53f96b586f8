// Package render turns report bundles into the HTML email bodies.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/budgetbot/ynab-reporter/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders report bundles with the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("reports").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"milli": func(m models.Milliunits) string { return fmt.Sprintf("%.2f", m.Abs().Major()) },
		"payee": func(s *string) string {
			if s == nil || *s == "" {
				return "(no payee)"
			}
			return *s
		},
		"category": func(s *string) string {
			if s == nil || *s == "" {
				return "Uncategorized"
			}
			return *s
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderDaily renders the daily alert email body.
func (r *Renderer) RenderDaily(report models.DailyReport) (string, error) {
	return r.render("daily_alert.html", report)
}

// RenderWeekly renders the weekly recap email body.
func (r *Renderer) RenderWeekly(report models.WeeklyReport) (string, error) {
	return r.render("weekly_recap.html", report)
}

// RenderMonthly renders the monthly recap email body.
func (r *Renderer) RenderMonthly(report models.MonthlyReport) (string, error) {
	return r.render("monthly_recap.html", report)
}
