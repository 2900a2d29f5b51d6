package printer

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"remindo/internal/tracker"
)

const maxTitle = 48

// Pretty prints a derived view as a plain table for non-interactive use.
type Pretty struct {
	Out io.Writer
	// NoColor disables ANSI escapes regardless of the terminal.
	NoColor bool
}

func (p *Pretty) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.NoColor {
		c.DisableColor()
	}
	return c
}

func (p *Pretty) View(v tracker.View) error {
	title := p.paint(color.Bold, color.Underline)
	faint := p.paint(color.Faint)

	if _, err := title.Fprintf(p.Out, "%s tasks\n", v.Filter); err != nil {
		return err
	}
	if banner := v.Reminder(); banner != "" {
		if _, err := p.paint(color.FgHiYellow).Fprintln(p.Out, banner); err != nil {
			return err
		}
	}

	if v.Empty() {
		if _, err := faint.Fprintln(p.Out, tracker.EmptyMessage); err != nil {
			return err
		}
	} else {
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, t := range v.Rows {
			tbl.AddRow(p.row(t, v)...)
		}
		if _, err := fmt.Fprintln(p.Out, tbl); err != nil {
			return err
		}
	}
	// Progress covers the whole store, not the filtered rows.
	_, err := faint.Fprintln(p.Out, v.Progress.Label())
	return err
}

func (p *Pretty) row(t tracker.Task, v tracker.View) []interface{} {
	check := "[ ]"
	titleColor := p.paint()
	if t.Completed {
		check = "[x]"
		titleColor = p.paint(color.Faint, color.CrossedOut)
	}
	due := tracker.FormatDue(t.Due)
	rel := tracker.RelativeDue(t.Due, v.Now)
	return []interface{}{
		check,
		titleColor.Sprint(truncate.StringWithTail(t.Title, maxTitle, "…")),
		due,
		p.paint(color.Faint).Sprint(rel),
		p.priority(t.Priority),
	}
}

func (p *Pretty) priority(pr tracker.Priority) string {
	var c *color.Color
	switch pr {
	case tracker.PriorityHigh:
		c = p.paint(color.FgRed, color.Bold)
	case tracker.PriorityMedium:
		c = p.paint(color.FgYellow)
	default:
		c = p.paint(color.FgGreen)
	}
	return c.Sprint(string(pr))
}
