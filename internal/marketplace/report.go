package marketplace

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Severity indicates a validation finding level. Errors block a PASS,
// warnings never do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Entry is a single validation finding.
type Entry struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
	Fix      string   `json:"fix,omitempty"`
}

// Stats counts what the run covered.
type Stats struct {
	PluginsChecked int `json:"plugins_checked"`
	SkillsChecked  int `json:"skills_checked"`
	SkillsMissing  int `json:"skills_missing"`
	OrphansFound   int `json:"orphans_found"`
}

// Report accumulates findings for one validation run. It is created empty,
// populated by the validators, rendered once and discarded.
type Report struct {
	Errors   []Entry
	Warnings []Entry
	Stats    Stats
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Error appends an error entry. path and fix may be empty and are then
// omitted from output.
func (r *Report) Error(rule, message, path, fix string) {
	r.Errors = append(r.Errors, Entry{Severity: SeverityError, Rule: rule, Message: message, Path: path, Fix: fix})
}

// Warning appends a warning entry.
func (r *Report) Warning(rule, message, path, fix string) {
	r.Warnings = append(r.Warnings, Entry{Severity: SeverityWarning, Rule: rule, Message: message, Path: path, Fix: fix})
}

// Passed reports whether the run recorded zero errors.
func (r *Report) Passed() bool {
	return len(r.Errors) == 0
}

func (r *Report) status() string {
	if r.Passed() {
		return "PASS"
	}
	return "FAIL"
}

type reportPayload struct {
	Status   string  `json:"status"`
	Errors   []Entry `json:"errors"`
	Warnings []Entry `json:"warnings"`
	Stats    Stats   `json:"stats"`
}

// ToJSON renders the structured form of the report.
func (r *Report) ToJSON() ([]byte, error) {
	p := reportPayload{
		Status:   r.status(),
		Errors:   r.Errors,
		Warnings: r.Warnings,
		Stats:    r.Stats,
	}
	if p.Errors == nil {
		p.Errors = []Entry{}
	}
	if p.Warnings == nil {
		p.Warnings = []Entry{}
	}
	return json.MarshalIndent(p, "", "  ")
}

// RenderText writes the human-readable tabular form.
func (r *Report) RenderText(w io.Writer) {
	status := color.GreenString("PASS")
	if !r.Passed() {
		status = color.RedString("FAIL")
	}

	fmt.Fprintln(w, "## Marketplace Validation Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Status: %s\n", status)
	fmt.Fprintln(w)

	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "### Errors (%d)\n", len(r.Errors))
		for _, e := range r.Errors {
			renderEntry(w, e, color.RedString)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "### Warnings (%d)\n", len(r.Warnings))
		for _, e := range r.Warnings {
			renderEntry(w, e, color.YellowString)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "### Summary")
	fmt.Fprintf(w, "- Plugins checked: %d\n", r.Stats.PluginsChecked)
	fmt.Fprintf(w, "- Skills checked: %d\n", r.Stats.SkillsChecked)
	fmt.Fprintf(w, "- Skills missing: %d\n", r.Stats.SkillsMissing)
	fmt.Fprintf(w, "- Orphans found: %d\n", r.Stats.OrphansFound)
	fmt.Fprintf(w, "- Errors: %d\n", len(r.Errors))
	fmt.Fprintf(w, "- Warnings: %d\n", len(r.Warnings))
}

func renderEntry(w io.Writer, e Entry, paint func(format string, a ...interface{}) string) {
	pathStr := ""
	if e.Path != "" {
		pathStr = " " + e.Path
	}
	fmt.Fprintf(w, "- [%s]%s - %s\n", paint(e.Rule), pathStr, e.Message)
	if e.Fix != "" {
		fmt.Fprintf(w, "  Fix: %s\n", e.Fix)
	}
}
