package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/matters/internal/model"
	"github.com/idilsaglam/matters/internal/ui"
)

type focus int

const (
	focusList focus = iota
	focusAdd
	focusSearch
	focusPanel
)

// dialogs holds the at-most-one pending prompt. The views reach it through
// the ui.Confirmer and ui.Alerter interfaces.
type dialogs struct {
	confirmTitle string
	onConfirm    func()
	alert        string
}

func (d *dialogs) Confirm(title string, onConfirm func()) {
	d.confirmTitle, d.onConfirm = title, onConfirm
}

func (d *dialogs) Alert(msg string) { d.alert = msg }

func (d *dialogs) confirming() bool { return d.onConfirm != nil }
func (d *dialogs) alerting() bool   { return d.alert != "" }

func (d *dialogs) clearConfirm() { d.confirmTitle, d.onConfirm = "", nil }

// Model hosts the app view inside a Bubble Tea program.
type Model struct {
	ctx    context.Context
	logger *slog.Logger

	app     *ui.AppView
	panel   *ui.ModalView
	dialogs *dialogs

	keys keyMap
	help help.Model

	focus  focus
	cursor int
	width  int
	height int

	quitting bool
	flushErr error
}

// New wires the views to list and fetches. A failed fetch is shown as an
// alert; the model is still usable.
func New(ctx context.Context, list *model.List) *Model {
	d := &dialogs{}
	panel := ui.NewModalView(d)
	app, err := ui.NewAppView(ctx, list, panel, d)
	if err != nil {
		d.Alert(fmt.Sprintf("could not load matters: %v", err))
	}
	return &Model{
		ctx:     ctx,
		logger:  list.Logger(),
		app:     app,
		panel:   panel,
		dialogs: d,
		keys:    newKeyMap(),
		help:    help.New(),
		width:   80,
		height:  24,
	}
}

// Run starts the program and flushes pending writes when it quits.
func Run(ctx context.Context, list *model.List) error {
	m := New(ctx, list)
	defer m.app.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if flushErr := list.Flush(context.WithoutCancel(ctx)); flushErr != nil {
			m.logger.Warn("flush failed", slog.String("error", flushErr.Error()))
		}
		return err
	}
	return m.flushErr
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.clampCursor()
		return m, cmd
	}
	return m, m.forward(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}
	// Dialogs block everything underneath them.
	if m.dialogs.alerting() {
		if key.Matches(msg, m.keys.Confirm, m.keys.Cancel) {
			m.dialogs.alert = ""
		}
		return nil
	}
	if m.dialogs.confirming() {
		switch {
		case key.Matches(msg, m.keys.Yes):
			run := m.dialogs.onConfirm
			m.dialogs.clearConfirm()
			run()
		case key.Matches(msg, m.keys.No):
			m.dialogs.clearConfirm()
		}
		return nil
	}

	switch m.focus {
	case focusAdd:
		return m.handleAdd(msg)
	case focusSearch:
		return m.handleSearch(msg)
	case focusPanel:
		return m.handlePanel(msg)
	}
	return m.handleList(msg)
}

func (m *Model) handleList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Add):
		m.focus = focusAdd
		m.app.AddInput.SetValue("")
		return m.app.AddInput.Focus()
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m.app.SearchInput.Focus()
	case key.Matches(msg, m.keys.Detail):
		return m.open((*ui.MatterView).ShowDetail)
	case key.Matches(msg, m.keys.Rename):
		return m.open((*ui.MatterView).Edit)
	case key.Matches(msg, m.keys.Reply):
		return m.open((*ui.MatterView).Reply)
	case key.Matches(msg, m.keys.Toggle):
		if v := m.selected(); v != nil {
			v.Toggle(m.ctx)
		}
	case key.Matches(msg, m.keys.Delete):
		if v := m.selected(); v != nil {
			v.DelMatter(m.ctx)
		}
	}
	return nil
}

// quit flushes queued writes; what still fails is returned by Run.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.flushErr = m.app.List().Flush(m.ctx)
	if m.flushErr != nil {
		m.logger.Warn("flush failed", slog.String("error", m.flushErr.Error()))
	}
	return tea.Quit
}

func (m *Model) open(fn func(*ui.MatterView) tea.Cmd) tea.Cmd {
	v := m.selected()
	if v == nil {
		return nil
	}
	m.focus = focusPanel
	return fn(v)
}

func (m *Model) handleAdd(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.app.AddInput.SetValue("")
		m.app.AddInput.Blur()
		m.focus = focusList
		return nil
	case key.Matches(msg, m.keys.Confirm):
		m.app.AddMatter(m.ctx, msg)
		m.app.AddInput.Blur()
		m.focus = focusList
		m.cursor = len(m.app.Views()) - 1
		return nil
	}
	var cmd tea.Cmd
	m.app.AddInput, cmd = m.app.AddInput.Update(msg)
	return cmd
}

func (m *Model) handleSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.app.SearchInput.Blur()
		m.focus = focusList
		return nil
	case key.Matches(msg, m.keys.Confirm):
		m.app.SearchMatter(m.ctx, msg)
		m.cursor = 0
		// A miss keeps the query so it can be corrected.
		if m.app.SearchInput.Value() == "" {
			m.app.SearchInput.Blur()
			m.focus = focusList
		}
		return nil
	}
	var cmd tea.Cmd
	m.app.SearchInput, cmd = m.app.SearchInput.Update(msg)
	return cmd
}

func (m *Model) handlePanel(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.panel.Close()
		m.focus = focusList
		return nil
	case key.Matches(msg, m.keys.Confirm):
		if err := m.panel.Confirm(m.ctx); err != nil {
			return nil
		}
		if !m.panel.IsOpen() {
			m.focus = focusList
		}
		return nil
	}
	return m.panel.Update(msg)
}

// forward passes non-key messages (cursor blink) to the focused input.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusAdd:
		m.app.AddInput, cmd = m.app.AddInput.Update(msg)
	case focusSearch:
		m.app.SearchInput, cmd = m.app.SearchInput.Update(msg)
	case focusPanel:
		cmd = m.panel.Update(msg)
	}
	return cmd
}

func (m *Model) selected() *ui.MatterView {
	views := m.app.Views()
	if m.cursor < 0 || m.cursor >= len(views) {
		return nil
	}
	return views[m.cursor]
}

func (m *Model) clampCursor() {
	n := len(m.app.Views())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	inner := m.width - 2
	sections := []string{ui.Box([]string{m.app.View(m.cursor, inner-4)}, inner)}

	switch m.focus {
	case focusAdd:
		sections = append(sections, ui.Box([]string{"Add matter", m.app.AddInput.View()}, inner))
	case focusSearch:
		sections = append(sections, ui.Box([]string{"Search", m.app.SearchInput.View()}, inner))
	}
	if m.panel.IsOpen() {
		sections = append(sections, m.panel.View(inner))
	}

	t := ui.Current()
	switch {
	case m.dialogs.alerting():
		sections = append(sections, ui.Box([]string{
			t.Error.Render(m.dialogs.alert),
			t.Help.Render("enter: ok"),
		}, inner))
	case m.dialogs.confirming():
		sections = append(sections, ui.Box([]string{
			t.Accent.Render(m.dialogs.confirmTitle),
			t.Help.Render("y: yes   n: no"),
		}, inner))
	default:
		sections = append(sections, m.help.View(m.keys))
	}
	return strings.Join(sections, "\n")
}
