// Package prompt renders the user's budgeting data into natural-language prompt text.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/Veraticus/spendwise/internal/model"
)

// RecentLimit caps how many transactions are rendered into a prompt.
const RecentLimit = 5

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("prompt").Funcs(template.FuncMap{
		"amount":     formatAmount,
		"formatDate": formatDate,
	}).ParseFS(templateFS, "templates/*.tmpl"),
)

// promptData is the view of a snapshot the templates render.
type promptData struct {
	Budgets      []model.Budget
	Recent       []model.Transaction
	Salary       float64
	TotalPlanned float64
	TotalSpent   float64
}

func newPromptData(s model.Snapshot) promptData {
	return promptData{
		Salary:       s.Salary,
		TotalPlanned: s.TotalPlanned(),
		TotalSpent:   s.TotalSpent(),
		Budgets:      s.Budgets,
		Recent:       s.Recent(RecentLimit),
	}
}

// BuildSummary renders a deterministic financial summary of s for use as chat context.
// Amounts are rendered at face value; callers must keep transactions newest first.
func BuildSummary(s model.Snapshot) string {
	return render("summary.tmpl", s)
}

// BuildInsight renders the coaching prompt that asks for three short tips.
func BuildInsight(s model.Snapshot) string {
	return render("insight.tmpl", s)
}

func render(name string, s model.Snapshot) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, newPromptData(s)); err != nil {
		// Templates are compiled in and only read plain fields.
		panic(fmt.Sprintf("prompt: failed to execute %s: %v", name, err))
	}
	return strings.TrimSpace(buf.String())
}

// formatAmount renders a number the shortest way that round-trips, so 5000 stays "5000".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
