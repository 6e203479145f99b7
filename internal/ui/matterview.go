package ui

import (
	"cmp"
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/matters/internal/model"
)

// MatterView is the row for one matter. It lives exactly as long as the
// matter is displayed and follows its change/destroy notifications.
type MatterView struct {
	matter  *model.Matter
	panel   *ModalView
	confirm Confirmer

	parent *ItemList
	markup string
	offs   []func()
}

func NewMatterView(m *model.Matter, panel *ModalView, confirm Confirmer) *MatterView {
	v := &MatterView{matter: m, panel: panel, confirm: confirm}
	v.offs = append(v.offs,
		m.OnChange(func(*model.Matter) { v.Render() }),
		m.OnDestroy(func(*model.Matter) { v.Remove() }),
	)
	return v
}

func (v *MatterView) Matter() *model.Matter { return v.matter }
func (v *MatterView) Markup() string        { return v.markup }

// Render redraws the row from the matter's current fields.
func (v *MatterView) Render() *MatterView {
	v.markup = itemTemplate(v.matter.Attributes())
	return v
}

func (v *MatterView) ShowDetail() tea.Cmd { return v.panel.Open(v.matter, ModeView) }
func (v *MatterView) Edit() tea.Cmd       { return v.panel.Open(v.matter, ModeRename) }
func (v *MatterView) Reply() tea.Cmd      { return v.panel.Open(v.matter, ModeReply) }

// Toggle flips the matter's done flag.
func (v *MatterView) Toggle(ctx context.Context) {
	v.matter.ToggleDone(ctx)
}

// DelMatter asks first; the matter is destroyed only on confirmation.
func (v *MatterView) DelMatter(ctx context.Context) {
	v.confirm.Confirm(DeleteConfirmTitle, func() {
		v.matter.Destroy(ctx)
	})
}

// Remove detaches the row and drops its subscriptions.
func (v *MatterView) Remove() {
	for _, off := range v.offs {
		off()
	}
	v.offs = nil
	if v.parent != nil {
		v.parent.detach(v)
	}
}

// Attached reports whether the row is still in a list.
func (v *MatterView) Attached() bool { return v.parent != nil }

// ItemList is the container rows are appended to. It always lists its rows
// by matter order.
type ItemList struct {
	views []*MatterView
}

func (l *ItemList) Append(v *MatterView) {
	if v.parent != nil {
		v.parent.detach(v)
	}
	v.parent = l
	l.views = append(l.views, v)
}

// Empty removes every row.
func (l *ItemList) Empty() {
	for _, v := range slices.Clone(l.views) {
		v.Remove()
	}
	l.views = nil
}

func (l *ItemList) Len() int { return len(l.views) }

// Views returns the rows sorted by order.
func (l *ItemList) Views() []*MatterView {
	out := slices.Clone(l.views)
	slices.SortStableFunc(out, func(a, b *MatterView) int {
		return cmp.Compare(a.matter.Order(), b.matter.Order())
	})
	return out
}

func (l *ItemList) detach(v *MatterView) {
	if i := slices.Index(l.views, v); i >= 0 {
		l.views = slices.Delete(l.views, i, i+1)
	}
	v.parent = nil
}
