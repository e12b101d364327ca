// Package tui provides a Bubble Tea terminal user interface for the music catalog.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/music-catalog/internal/crud"
	"github.com/handiism/music-catalog/internal/library"
	"github.com/handiism/music-catalog/internal/model"
)

// Mode is what the active section is showing.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeCreate
	ModeEdit
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   library.Level
}

// Events carries library events into the program. Send never blocks; events
// are dropped while the buffer is full.
type Events chan library.Event

// NewEvents creates an event buffer of the given size.
func NewEvents(size int) Events {
	return make(Events, size)
}

// Send queues e for the UI.
func (e Events) Send(ev library.Event) {
	select {
	case e <- ev:
	default:
	}
}

func (e Events) wait() tea.Cmd {
	if e == nil {
		return nil
	}
	return func() tea.Msg {
		return EventMsg{Event: <-e}
	}
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	ctx    context.Context
	lib    *library.Library
	events Events

	spinner spinner.Model
	section model.Kind
	cursor  map[model.Kind]int
	mode    Mode
	fields  []formField
	focus   int

	loading bool
	pending int
	status  LogEntry
	logs    []LogEntry
	verbose bool

	width  int
	height int
}

// formField is one row of the create or edit form. Relation fields are
// selectors cycled with left/right; every other field is a text input.
type formField struct {
	name     string
	label    string
	selector bool
	input    textinput.Model
}

// NewModel creates a new TUI model over lib. events may be nil.
func NewModel(ctx context.Context, lib *library.Library, events Events, verbose bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	return Model{
		ctx:     ctx,
		lib:     lib,
		events:  events,
		spinner: sp,
		section: model.KindArtist,
		cursor:  make(map[model.Kind]int, len(model.Kinds)),
		loading: true,
		verbose: verbose,
	}
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(), m.events.wait())
}

// Message types
type (
	// EventMsg carries one library event.
	EventMsg struct {
		Event library.Event
	}

	// LoadDoneMsg is sent when the initial load completes.
	LoadDoneMsg struct {
		Err error
	}

	// SubmitDoneMsg is sent when an add, save or remove completes,
	// including its refetch.
	SubmitDoneMsg struct {
		Kind model.Kind
		Op   crud.Op
		Err  error
	}

	// RefreshDoneMsg is sent when a manual refresh completes.
	RefreshDoneMsg struct {
		Kind model.Kind
		Err  error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode == ModeBrowse {
			return m.updateBrowse(msg)
		}
		return m.updateForm(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		if msg.Event.Level != library.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry(msg.Event))
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		return m, m.events.wait()

	case LoadDoneMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = LogEntry{Message: "Some sections failed to load", Level: library.LevelError}
		}
		m.clampCursors()
		return m, nil

	case SubmitDoneMsg:
		m.pending--
		return m.submitted(msg), nil

	case RefreshDoneMsg:
		m.pending--
		if msg.Err != nil {
			m.status = LogEntry{Message: crud.UserMessage(msg.Err), Level: library.LevelError}
		}
		m.clampCursors()
		return m, nil
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "tab", "right", "l":
		m.section = model.Kinds[(int(m.section)+1)%len(model.Kinds)]
		m.status = LogEntry{}

	case "shift+tab", "left", "h":
		m.section = model.Kinds[(int(m.section)+len(model.Kinds)-1)%len(model.Kinds)]
		m.status = LogEntry{}

	case "up", "k":
		if m.cursor[m.section] > 0 {
			m.cursor[m.section]--
		}

	case "down", "j":
		if m.cursor[m.section] < m.rowCount(m.section)-1 {
			m.cursor[m.section]++
		}

	case "v":
		m.verbose = !m.verbose

	case "n":
		m.openForm(ModeCreate)
		return m, textinput.Blink

	case "e":
		id := m.selectedID()
		if id == "" {
			return m, nil
		}
		if err := m.lib.BeginEdit(m.section, id); err != nil {
			m.status = LogEntry{Message: err.Error(), Level: library.LevelError}
			return m, nil
		}
		m.openForm(ModeEdit)
		return m, textinput.Blink

	case "d":
		id := m.selectedID()
		if id == "" {
			return m, nil
		}
		m.pending++
		return m, m.remove(m.section, id)

	case "r":
		m.pending++
		return m, m.refresh(m.section)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.mode == ModeEdit {
			m.lib.CancelEdit(m.section)
		}
		m.closeForm()
		return m, nil

	case "enter":
		m.pending++
		if m.mode == ModeEdit {
			return m, m.save(m.section)
		}
		return m, m.add(m.section)

	case "tab", "down":
		m.setFocus(m.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return m, nil
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	f := &m.fields[m.focus]
	if f.selector {
		switch msg.String() {
		case "right", "l", " ":
			m.cycle(f.name, 1)
		case "left", "h":
			m.cycle(f.name, -1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := f.input.Value()
	f.input, cmd = f.input.Update(msg)
	if v := f.input.Value(); v != before {
		m.setValue(f.name, v)
	}
	return m, cmd
}

// submitted applies the outcome of an add, save or remove.
func (m Model) submitted(msg SubmitDoneMsg) Model {
	var (
		verr *crud.ValidationError
		rerr *crud.RemoteError
		ferr *crud.RefetchError
	)

	switch {
	case msg.Err == nil:
		m.status = LogEntry{Message: successMessage(msg.Kind, msg.Op), Level: library.LevelSuccess}
		if m.showsForm(msg) {
			m.closeForm()
		}
	case errors.As(msg.Err, &verr):
		m.status = LogEntry{Message: crud.ValidationMessage, Level: library.LevelWarning}
	case errors.Is(msg.Err, crud.ErrSubmissionInFlight):
		m.status = LogEntry{Message: "Still working on the previous request", Level: library.LevelWarning}
	case errors.As(msg.Err, &rerr):
		// Form stays open with the user's input.
		m.status = LogEntry{Message: crud.UserMessage(rerr), Level: library.LevelError}
	case errors.As(msg.Err, &ferr):
		m.status = LogEntry{Message: crud.UserMessage(ferr), Level: library.LevelWarning}
		if m.showsForm(msg) {
			m.closeForm()
		}
	default:
		m.status = LogEntry{Message: msg.Err.Error(), Level: library.LevelError}
	}

	m.clampCursors()
	return m
}

// showsForm reports whether the open form is the one msg submitted. A
// submission may finish after the user moved on to another form.
func (m Model) showsForm(msg SubmitDoneMsg) bool {
	if msg.Kind != m.section {
		return false
	}
	switch msg.Op {
	case crud.OpAdd:
		return m.mode == ModeCreate
	case crud.OpSave:
		return m.mode == ModeEdit
	}
	return false
}

func successMessage(kind model.Kind, op crud.Op) string {
	switch op {
	case crud.OpAdd:
		return fmt.Sprintf("Added %s", kind)
	case crud.OpSave:
		return fmt.Sprintf("Saved %s", kind)
	}
	return fmt.Sprintf("Removed %s", kind)
}

// Run starts the TUI application.
func Run(ctx context.Context, lib *library.Library, events Events, verbose bool) error {
	p := tea.NewProgram(NewModel(ctx, lib, events, verbose), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
