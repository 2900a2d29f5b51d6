package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"remindo/internal/tracker"
)

func (m Model) View() string {
	if len(m.alerts) > 0 {
		return m.renderAlert(m.alerts[0])
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if banner := m.view.Reminder(); banner != "" {
		b.WriteString(m.styles.Banner.Render("🔔 " + banner))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")
	b.WriteString(m.renderTaskList())
	b.WriteString("\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n")

	if m.mode == modeAdd && m.form != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render("Add Task"))
		b.WriteString("\n")
		b.WriteString(m.renderForm(m.form))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	left := m.styles.Title.Render("remindo")
	right := m.styles.Muted.Render(fmt.Sprintf("%s: %s", m.keys.Theme.Help().Key, ToggleLabel(m.styles.Theme)))
	return left + "  " + right
}

func (m Model) renderFilters() string {
	parts := make([]string, 0, len(tracker.Filters))
	for _, f := range tracker.Filters {
		label := strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == m.view.Filter {
			parts = append(parts, m.styles.FilterOn.Render("["+label+"]"))
		} else {
			parts = append(parts, m.styles.FilterOff.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderTaskList() string {
	if m.view.Empty() {
		return m.styles.Muted.Render(tracker.EmptyMessage) + "\n"
	}
	var b strings.Builder
	for i, t := range m.view.Rows {
		if m.mode == modeEdit && m.form != nil && m.form.taskID == t.ID {
			b.WriteString(m.renderForm(m.form))
			continue
		}
		b.WriteString(m.renderRow(t, i == m.cursor && m.mode == modeList))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(t tracker.Task, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}

	title := truncate.StringWithTail(t.Title, uint(m.titleWidth()), "…")
	titleStyle := m.styles.Row
	switch {
	case t.Completed:
		titleStyle = m.styles.Completed
	case selected:
		titleStyle = m.styles.Selected
	}

	due := fmt.Sprintf("Due: %s (%s)", tracker.FormatDue(t.Due), tracker.RelativeDue(t.Due, m.view.Now))
	prio := m.styles.Priority[t.Priority].Render(string(t.Priority))

	row := fmt.Sprintf("%s %s %s  %s  %s", cursor, checkbox, titleStyle.Render(title), m.styles.Muted.Render(due), prio)
	if selected {
		action := "Complete"
		if t.Completed {
			action = "Undo"
		}
		row += m.styles.Muted.Render(fmt.Sprintf("  %s %s · %s Edit · %s Delete",
			m.keys.Toggle.Help().Key, action, m.keys.Edit.Help().Key, m.keys.Delete.Help().Key))
	}
	return row
}

func (m Model) renderForm(f *form) string {
	var b strings.Builder
	label := func(i int, name string) string {
		marker := "  "
		if f.focus == i {
			marker = "> "
		}
		return marker + m.styles.Label.Render(name)
	}
	b.WriteString(label(fieldTitle, "Title"))
	b.WriteString(f.title.View())
	b.WriteString("\n")
	b.WriteString(label(fieldDue, "Due"))
	b.WriteString(f.due.View())
	b.WriteString("\n")
	b.WriteString(label(fieldPriority, "Priority"))
	b.WriteString("◀ " + m.styles.Priority[f.priority].Render(string(f.priority)) + " ▶")
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderProgress() string {
	p := m.view.Progress
	return m.progress.ViewAs(p.Fraction()) + " " + p.Label()
}

func (m Model) renderAlert(t tracker.Task) string {
	body := tracker.AlertMessage(t)
	if n := len(m.alerts); n > 1 {
		body += fmt.Sprintf("\n\n(%d more)", n-1)
	}
	box := m.styles.Modal.Render("⏰ " + body)
	hint := m.help.ShortHelpView(m.keys.alertHelp())
	return lipgloss.JoinVertical(lipgloss.Center, box, hint)
}

func (m Model) renderHelp() string {
	if m.mode == modeList {
		return m.help.ShortHelpView(m.keys.listHelp())
	}
	return m.help.ShortHelpView(m.keys.formHelp())
}

func (m Model) titleWidth() int {
	w := m.width - 60
	if w < 16 {
		return 16
	}
	return w
}
