package command

import (
	"strings"

	"github.com/keshon/bazaar-bot/pkg/cmd"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Status of one load candidate.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Row is one line of a load report.
type Row struct {
	Source string
	Name   string
	Status Status
	Reason string
	// Aliases holds the extra keys a registered command answers to.
	Aliases []string
}

// Report enumerates every load candidate with its outcome.
type Report struct {
	Title    string
	Rows     []Row
	commands []cmd.Command
}

// NewReport returns an empty report.
func NewReport(title string) *Report {
	return &Report{Title: title}
}

// OK records a successful registration together with its aliases.
func (r *Report) OK(source, name string, c cmd.Command, aliases ...string) {
	r.Rows = append(r.Rows, Row{Source: source, Name: name, Status: StatusOK, Aliases: aliases})
	if c != nil {
		r.commands = append(r.commands, c)
	}
}

// Skip records a candidate that was left out on purpose.
func (r *Report) Skip(source, name, reason string) {
	r.Rows = append(r.Rows, Row{Source: source, Name: name, Status: StatusSkipped, Reason: reason})
}

// Fail records a candidate that did not pass.
func (r *Report) Fail(source, name, reason string) {
	r.Rows = append(r.Rows, Row{Source: source, Name: name, Status: StatusFailed, Reason: reason})
}

// Commands returns the registered top-level commands in load order. Aliases are not included.
func (r *Report) Commands() []cmd.Command {
	return r.commands
}

// Failed returns the failed rows.
func (r *Report) Failed() []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.Status == StatusFailed {
			out = append(out, row)
		}
	}
	return out
}

// String renders the report as a bordered table.
func (r *Report) String() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Aliases", "Status")

	for _, row := range r.Rows {
		name := row.Name
		if name == "" {
			name = row.Source
		}
		var status string
		switch row.Status {
		case StatusOK:
			status = "✔ SUCCESS"
		case StatusSkipped:
			status = "– " + row.Reason
		default:
			status = "❌ " + row.Reason
		}
		t.Row(name, strings.Join(row.Aliases, ", "), status)
	}

	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteString("\n")
	b.WriteString(t.Render())
	return b.String()
}
