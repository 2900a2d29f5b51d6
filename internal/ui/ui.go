package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"remindo/internal/config"
	"remindo/internal/tracker"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

const (
	fieldTitle = iota
	fieldDue
	fieldPriority
	fieldCount
)

// form backs both the add form and the inline row editor.
type form struct {
	taskID   int64
	title    textinput.Model
	due      textinput.Model
	priority tracker.Priority
	focus    int
}

func newForm() *form {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 256
	title.Width = 40

	due := textinput.New()
	due.Placeholder = tracker.DueLayout
	due.CharLimit = len(tracker.DueLayout) + 3
	due.Width = 20

	f := &form{title: title, due: due, priority: tracker.PriorityMedium}
	f.setFocus(fieldTitle)
	return f
}

func (f *form) draft() tracker.Draft {
	return tracker.Draft{Title: f.title.Value(), Due: f.due.Value(), Priority: f.priority}
}

func (f *form) setFocus(i int) {
	f.focus = (i%fieldCount + fieldCount) % fieldCount
	f.title.Blur()
	f.due.Blur()
	switch f.focus {
	case fieldTitle:
		f.title.Focus()
	case fieldDue:
		f.due.Focus()
	}
}

// tickMsg drives the periodic due-time scan.
type tickMsg struct{}

// scanMsg asks for an immediate scan without scheduling another tick.
type scanMsg struct{}

type Model struct {
	tracker  *tracker.Tracker
	cfg      config.Config
	keys     keyMap
	styles   Styles
	log      *log.Logger
	interval time.Duration

	view   tracker.View
	cursor int
	mode   mode
	form   *form
	alerts []tracker.Task
	status string
	width  int

	progress progress.Model
	help     help.Model
}

func New(tr *tracker.Tracker, cfg config.Config, logger *log.Logger) Model {
	interval := cfg.AlertInterval.Duration
	if interval <= 0 {
		interval = tracker.AlertInterval
	}
	m := Model{
		tracker:  tr,
		cfg:      cfg,
		keys:     newKeyMap(cfg.Keys),
		log:      logger,
		interval: interval,
		mode:     modeList,
		status:   fmt.Sprintf("Press '%s' to add, '%s' to toggle, '%s' to delete.", cfg.Keys.Add, keyLabel(cfg.Keys.Toggle), cfg.Keys.Delete),
		width:    80,
		help:     help.New(),
	}
	m.applyTheme(tr.Theme())
	m.refresh()
	return m
}

func Run(tr *tracker.Tracker, cfg config.Config, logger *log.Logger) error {
	program := tea.NewProgram(New(tr, cfg, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return scanMsg{} },
		m.tick(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.scan()
		return m, m.tick()
	case scanMsg:
		m.scan()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = progressWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if len(m.alerts) > 0 {
			return m.updateAlert(msg)
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *Model) scan() {
	fired, err := m.tracker.Scan(m.tracker.Now())
	if err != nil {
		m.log.Error("persist alerted flags", "err", err)
	}
	m.alerts = append(m.alerts, fired...)
	// Relative due text and the due-today count depend on the clock.
	m.refresh()
}

func (m Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm, m.keys.Cancel) {
		m.alerts = m.alerts[1:]
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(m.view.Rows))
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(m.view.Rows))
	case key.Matches(msg, m.keys.Add):
		m.form = newForm()
		m.mode = modeAdd
		m.status = "New task: tab between fields, ←/→ priority, enter to add"
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startEdit(task)
	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		toggled, err := m.tracker.ToggleComplete(task.ID)
		if err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		if toggled.Completed {
			m.status = "Completed: " + toggled.Title
		} else {
			m.status = "Reopened: " + toggled.Title
		}
		m.refreshKeeping(task.ID)
	case key.Matches(msg, m.keys.Delete):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.tracker.Delete(task.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
			return m, nil
		}
		m.status = "Deleted: " + task.Title
		m.refresh()
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(tracker.FilterAll)
	case key.Matches(msg, m.keys.FilterPending):
		m.setFilter(tracker.FilterPending)
	case key.Matches(msg, m.keys.FilterCompleted):
		m.setFilter(tracker.FilterCompleted)
	case key.Matches(msg, m.keys.CycleFilter):
		m.setFilter(m.tracker.Filter().Next())
	case key.Matches(msg, m.keys.Theme):
		th, err := m.tracker.ToggleTheme()
		if err != nil {
			m.status = fmt.Sprintf("theme failed: %v", err)
			return m, nil
		}
		m.applyTheme(th)
		m.status = "Theme: " + string(th)
	}
	return m, nil
}

func (m Model) startEdit(t tracker.Task) (tea.Model, tea.Cmd) {
	f := newForm()
	f.taskID = t.ID
	f.title.SetValue(t.Title)
	f.due.SetValue(tracker.FormatDueInput(t.Due))
	f.priority = t.Priority
	m.form = f
	m.mode = modeEdit
	m.status = "Editing: enter to save, esc to cancel"
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form = nil
		m.mode = modeList
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.submit()
	case key.Matches(msg, m.keys.NextField):
		f.setFocus(f.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		f.setFocus(f.focus - 1)
		return m, nil
	}

	if f.focus == fieldPriority {
		switch {
		case key.Matches(msg, m.keys.PrioUp, m.keys.Down):
			f.priority = f.priority.Next()
		case key.Matches(msg, m.keys.PrioDown, m.keys.Up):
			f.priority = f.priority.Prev()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDue:
		f.due, cmd = f.due.Update(msg)
	}
	return m, cmd
}

// submit commits the form. Invalid input keeps the form open and untouched.
func (m Model) submit() (tea.Model, tea.Cmd) {
	f := m.form
	var (
		task tracker.Task
		err  error
	)
	if m.mode == modeEdit {
		task, err = m.tracker.Edit(f.taskID, f.draft())
	} else {
		task, err = m.tracker.Create(f.draft())
	}

	var verr *tracker.ValidationError
	switch {
	case errors.As(err, &verr):
		m.status = fmt.Sprintf("%s %s", verr.Field, verr.Reason)
		return m, nil
	case err != nil:
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}

	if m.mode == modeEdit {
		m.status = "Saved: " + task.Title
	} else {
		m.status = "Added: " + task.Title
	}
	m.form = nil
	m.mode = modeList
	m.refreshKeeping(task.ID)
	return m, nil
}

func (m *Model) setFilter(f tracker.Filter) {
	if err := m.tracker.SetFilter(f); err != nil {
		m.status = fmt.Sprintf("filter failed: %v", err)
		return
	}
	m.status = "Showing " + string(f) + " tasks"
	m.refresh()
}

func (m *Model) applyTheme(th tracker.Theme) {
	m.styles = NewStyles(th)
	m.progress = progress.New(
		progress.WithSolidFill(m.styles.BarColor),
		progress.WithWidth(progressWidth(m.width)),
		progress.WithoutPercentage(),
	)
}

func (m *Model) refresh() {
	m.view = m.tracker.View()
	m.cursor = clampCursor(m.cursor, len(m.view.Rows))
}

// refreshKeeping re-derives the view and moves the cursor to id if visible.
func (m *Model) refreshKeeping(id int64) {
	m.refresh()
	for i, t := range m.view.Rows {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) selected() (tracker.Task, bool) {
	if len(m.view.Rows) == 0 {
		return tracker.Task{}, false
	}
	return m.view.Rows[clampCursor(m.cursor, len(m.view.Rows))], true
}

func progressWidth(total int) int {
	w := total - 20
	if w < 10 {
		return 10
	}
	if w > 60 {
		return 60
	}
	return w
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
