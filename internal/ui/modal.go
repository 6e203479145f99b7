package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/matters/internal/model"
)

// Mode is what the detail panel is currently doing. Exactly one holds at a time,
// so the title input and the reply input are never visible together.
type Mode int

const (
	ModeClosed Mode = iota
	ModeView
	ModeRename
	ModeReply
)

func (m Mode) String() string {
	switch m {
	case ModeView:
		return "view"
	case ModeRename:
		return "rename"
	case ModeReply:
		return "reply"
	}
	return "closed"
}

// ModalView is the single detail/edit panel shared by every row. It is bound
// to at most one matter; opening it again rebinds, it never stacks.
type ModalView struct {
	alert Alerter

	mode   Mode
	matter *model.Matter
	data   model.Record

	TitleInput textinput.Model
	ReplyInput textinput.Model

	replyList bool
}

func NewModalView(alert Alerter) *ModalView {
	p := &ModalView{alert: alert}
	p.TitleInput = textinput.New()
	p.TitleInput.Prompt = "title> "
	p.TitleInput.CharLimit = 200
	p.ReplyInput = textinput.New()
	p.ReplyInput.Prompt = "reply> "
	p.ReplyInput.Placeholder = "Write a reply..."
	p.ReplyInput.CharLimit = 500
	return p
}

func (p *ModalView) Mode() Mode            { return p.mode }
func (p *ModalView) Matter() *model.Matter { return p.matter }
func (p *ModalView) IsOpen() bool          { return p.mode != ModeClosed }

// Region visibility, derived from the mode.
func (p *ModalView) ShowsTitleText() bool  { return p.mode == ModeView || p.mode == ModeReply }
func (p *ModalView) ShowsTitleInput() bool { return p.mode == ModeRename }
func (p *ModalView) ShowsReplyInput() bool { return p.mode == ModeReply }
func (p *ModalView) ShowsFooter() bool     { return p.mode == ModeRename || p.mode == ModeReply }
func (p *ModalView) HasReplyList() bool    { return p.replyList }

// Open binds m and enters mode. Whatever was open before is dismissed first.
func (p *ModalView) Open(m *model.Matter, mode Mode) tea.Cmd {
	p.Close()
	if m == nil || mode == ModeClosed {
		return nil
	}
	p.matter = m
	p.data = m.Attributes()
	p.mode = mode
	p.replyList = true

	switch mode {
	case ModeRename:
		p.TitleInput.SetValue(p.data.Title)
		p.TitleInput.CursorEnd()
		return p.TitleInput.Focus()
	case ModeReply:
		if len(p.data.Reply) == 0 {
			p.replyList = false
		}
		return p.ReplyInput.Focus()
	}
	return nil
}

// Close dismisses the panel: inputs are cleared, the reply list and the
// footer go away and the matter is unbound.
func (p *ModalView) Close() {
	p.TitleInput.SetValue("")
	p.TitleInput.Blur()
	p.ReplyInput.SetValue("")
	p.ReplyInput.Blur()
	p.replyList = false
	p.mode = ModeClosed
	p.matter = nil
	p.data = model.Record{}
}

// Confirm runs the footer action of the current mode. A validation failure
// alerts, returns the error and leaves the panel open.
func (p *ModalView) Confirm(ctx context.Context) error {
	switch p.mode {
	case ModeRename:
		title, err := model.ValidateTitle(p.TitleInput.Value())
		if err != nil {
			p.alert.Alert(err.Error())
			return err
		}
		p.matter.Save(ctx, model.Attrs{}.WithTitle(title))
		p.Close()
	case ModeReply:
		text, err := model.ValidateReply(p.ReplyInput.Value())
		if err != nil {
			p.alert.Alert(err.Error())
			return err
		}
		p.data.Reply = append(p.data.Reply, model.Reply{Content: text})
		p.matter.Save(ctx, model.Attrs{}.WithReply(p.data.Reply))
		p.Close()
	}
	return nil
}

// Update forwards input events to whichever field the mode shows.
func (p *ModalView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch p.mode {
	case ModeRename:
		p.TitleInput, cmd = p.TitleInput.Update(msg)
	case ModeReply:
		p.ReplyInput, cmd = p.ReplyInput.Update(msg)
	}
	return cmd
}

// View renders the open panel, or "" when closed.
func (p *ModalView) View(width int) string {
	if !p.IsOpen() {
		return ""
	}
	t := Current()
	var lines []string
	if p.ShowsTitleText() {
		lines = append(lines, t.Title.Render(p.data.Title))
	}
	if p.ShowsTitleInput() {
		lines = append(lines, p.TitleInput.View())
	}
	lines = append(lines, t.Muted.Render(p.data.Date))
	if p.replyList {
		lines = append(lines, "", replyTemplate(p.data.Reply, width-6))
	}
	if p.ShowsReplyInput() {
		lines = append(lines, "", p.ReplyInput.View())
	}
	if p.ShowsFooter() {
		lines = append(lines, "", t.Help.Render("enter: save   esc: close"))
	} else {
		lines = append(lines, "", t.Help.Render("esc: close"))
	}
	return Box(lines, width)
}
