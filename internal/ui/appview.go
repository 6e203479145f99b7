package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/matters/internal/events"
	"github.com/idilsaglam/matters/internal/model"
)

// AppView is the top-level controller: it owns the row container, turns list
// events into rows and routes the add and search inputs.
type AppView struct {
	list    *model.List
	panel   *ModalView
	confirm Confirmer
	logger  *slog.Logger

	AddInput    textinput.Model
	SearchInput textinput.Model

	matterList ItemList
	offs       []func()
}

// NewAppView subscribes to list additions and resets, then fetches. A failed
// fetch still returns a usable (empty) view along with the error.
func NewAppView(ctx context.Context, list *model.List, panel *ModalView, confirm Confirmer) (*AppView, error) {
	a := &AppView{
		list:    list,
		panel:   panel,
		confirm: confirm,
		logger:  list.Logger(),
	}
	a.AddInput = textinput.New()
	a.AddInput.Prompt = "+ "
	a.AddInput.Placeholder = "New matter..."
	a.AddInput.CharLimit = 200
	a.SearchInput = textinput.New()
	a.SearchInput.Prompt = "/ "
	a.SearchInput.Placeholder = "Exact title (empty shows all)"
	a.SearchInput.CharLimit = 200

	a.offs = append(a.offs,
		list.On(events.Added, func(e events.Event) { a.addOne(e.Subject.(*model.Matter)) }),
		list.On(events.Reset, func(events.Event) { a.addAll() }),
	)
	if err := list.Fetch(ctx); err != nil {
		return a, err
	}
	return a, nil
}

func (a *AppView) List() *model.List    { return a.list }
func (a *AppView) Panel() *ModalView    { return a.panel }
func (a *AppView) Views() []*MatterView { return a.matterList.Views() }

// Close drops the list subscriptions and every row.
func (a *AppView) Close() {
	for _, off := range a.offs {
		off()
	}
	a.offs = nil
	a.matterList.Empty()
}

func (a *AppView) addOne(m *model.Matter) {
	v := NewMatterView(m, a.panel, a.confirm)
	a.matterList.Append(v.Render())
}

// addAll rebuilds every row from the current membership.
func (a *AppView) addAll() {
	a.matterList.Empty()
	a.list.Each(a.addOne)
}

func isConfirmKey(msg tea.KeyMsg) bool { return msg.Type == tea.KeyEnter }

// AddMatter creates a matter from the add input on enter. Other keys and an
// empty input are ignored.
func (a *AppView) AddMatter(ctx context.Context, msg tea.KeyMsg) {
	if !isConfirmKey(msg) {
		return
	}
	title, err := model.ValidateTitle(a.AddInput.Value())
	if err != nil {
		return
	}
	a.list.Create(ctx, model.Attrs{}.WithTitle(title))
	a.AddInput.SetValue("")
}

// SearchMatter narrows the displayed list to matters whose title equals the
// search input exactly. An empty input reloads everything.
//
// With no match the rows stay cleared and the input keeps its text; the
// membership itself is not narrowed in that case.
func (a *AppView) SearchMatter(ctx context.Context, msg tea.KeyMsg) {
	if !isConfirmKey(msg) {
		return
	}
	a.matterList.Empty()

	q := a.SearchInput.Value()
	if q == "" {
		a.list.Reset(nil)
		if err := a.list.Fetch(ctx); err != nil {
			a.logger.Warn("reload failed", slog.String("error", err.Error()))
		}
		return
	}
	selected := a.list.Where(model.Attrs{}.WithTitle(q))
	if len(selected) == 0 {
		return
	}
	a.list.Reset(selected)
	a.SearchInput.SetValue("")
}

// Stats counts the displayed rows.
func (a *AppView) Stats() (done, total int) {
	for _, v := range a.matterList.views {
		total++
		if v.matter.Done() {
			done++
		}
	}
	return done, total
}

// View renders the rows, marking the one at cursor.
func (a *AppView) View(cursor, width int) string {
	t := Current()
	done, total := a.Stats()
	header := fmt.Sprintf("%s   %s", t.Title.Render("Matters"), t.Muted.Render(ProgressBar(done, total, 20)))

	lines := []string{header, ""}
	views := a.Views()
	if len(views) == 0 {
		lines = append(lines, t.Muted.Render("nothing here"))
	}
	for i, v := range views {
		prefix := "  "
		if i == cursor {
			prefix = t.Selected.Render(">") + " "
		}
		lines = append(lines, prefix+v.Markup())
	}
	return strings.Join(lines, "\n")
}
