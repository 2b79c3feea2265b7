// Package report renders a Report as plain text: one page per day followed by a
// stats page. Pages are separated by a form feed.
package report

import (
	"fmt"
	"io"
	"math"
	"text/template"
	"time"

	"github.com/limbo/fittrack/pkg/entity"
)

const PageBreak = "\f\n"

const reportTemplate = `{{define "day"}}Date: {{longDate .Day}}
Meals:
{{range .Meals}}• {{.Text}}
{{end}}Body:
{{with .Sleep}}Sleep: {{.Text}}
{{end}}Steps: {{.Steps}}
Weight: {{oneDecimal .WeightKg}} kg
Hydration: {{oneDecimal .HydrationLiters}} L
{{end}}{{define "stats"}}Stats
{{weightLine .WeightDelta}}
{{sleepLine .AverageSleepHours}}
{{stepsLine .AverageSteps}}
{{end}}{{define "report"}}{{range .Days}}{{template "day" .}}{{pageBreak}}{{end}}{{template "stats" .Stats}}{{end}}`

var tmpl = template.Must(template.New("fittrack").Funcs(template.FuncMap{
	"longDate": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"oneDecimal": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
	"pageBreak": func() string {
		return PageBreak
	},
	"weightLine": WeightLine,
	"sleepLine":  SleepLine,
	"stepsLine":  StepsLine,
}).Parse(reportTemplate))

// Render writes the whole report to w.
func Render(w io.Writer, r *entity.Report) error {
	if err := tmpl.ExecuteTemplate(w, "report", r); err != nil {
		return fmt.Errorf("rendering report error: %w", err)
	}
	return nil
}

func WeightLine(delta *float64) string {
	if delta == nil {
		return "You have lost N/A kg"
	}
	verb := "lost"
	if *delta > 0 {
		verb = "gained"
	}
	return fmt.Sprintf("You have %s %.1f kg", verb, math.Abs(*delta))
}

func SleepLine(avg *float64) string {
	if avg == nil {
		return "You averaged a sleep duration of N/A hours"
	}
	return fmt.Sprintf("You averaged a sleep duration of %.1f hours", *avg)
}

// StepsLine truncates the average to whole steps.
func StepsLine(avg *float64) string {
	if avg == nil {
		return "You averaged a number of N/A steps/day"
	}
	return fmt.Sprintf("You averaged a number of %d steps/day", int(*avg))
}
