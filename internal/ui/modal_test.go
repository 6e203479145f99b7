package ui

import (
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/matters/internal/model"
)

func TestModal_ReplyModeWithoutRepliesOmitsList(t *testing.T) {
	f := newFixture(t, "Buy milk")
	m := f.list.At(0)

	f.panel.Open(m, ModeReply)

	assert.Equal(t, ModeReply, f.panel.Mode())
	assert.False(t, f.panel.HasReplyList())
	assert.True(t, f.panel.ShowsReplyInput())
	assert.True(t, f.panel.ShowsFooter())
	assert.True(t, f.panel.ShowsTitleText())
	assert.False(t, f.panel.ShowsTitleInput())
	assert.NotContains(t, xansi.Strip(f.panel.View(60)), "no replies yet")

	f.panel.ReplyInput.SetValue("ok")
	require.NoError(t, f.panel.Confirm(f.ctx))

	assert.Equal(t, []model.Reply{{Content: "ok"}}, m.Replies())
	assert.Equal(t, ModeClosed, f.panel.Mode())
	assert.Nil(t, f.panel.Matter())
	assert.Equal(t, []model.Reply{{Content: "ok"}}, f.stored(t)[0].Reply)
}

func TestModal_ReplyAppendsToExisting(t *testing.T) {
	f := newFixture(t, "Buy milk")
	m := f.list.At(0)
	m.Save(f.ctx, model.Attrs{}.WithReply([]model.Reply{{Content: "first"}}))

	f.panel.Open(m, ModeReply)
	assert.True(t, f.panel.HasReplyList())
	assert.Contains(t, xansi.Strip(f.panel.View(60)), "first")

	f.panel.ReplyInput.SetValue("  second  ")
	require.NoError(t, f.panel.Confirm(f.ctx))

	assert.Equal(t, []model.Reply{{Content: "first"}, {Content: "second"}}, m.Replies())
}

func TestModal_EmptyReplyAlertsAndStaysOpen(t *testing.T) {
	f := newFixture(t, "Buy milk")
	m := f.list.At(0)

	f.panel.Open(m, ModeReply)
	f.panel.ReplyInput.SetValue("   ")
	err := f.panel.Confirm(f.ctx)

	assert.ErrorIs(t, err, model.ErrEmptyReply)
	assert.Equal(t, []string{"reply not null"}, f.rec.alerts)
	assert.Equal(t, ModeReply, f.panel.Mode())
	assert.Empty(t, m.Replies())
}

func TestModal_EmptyRenameAlertsAndKeepsTitle(t *testing.T) {
	f := newFixture(t, "Buy milk")
	m := f.list.At(0)

	f.panel.Open(m, ModeRename)
	assert.Equal(t, "Buy milk", f.panel.TitleInput.Value())
	assert.True(t, f.panel.ShowsTitleInput())
	assert.False(t, f.panel.ShowsTitleText())
	assert.False(t, f.panel.ShowsReplyInput())

	f.panel.TitleInput.SetValue("")
	err := f.panel.Confirm(f.ctx)

	assert.ErrorIs(t, err, model.ErrEmptyTitle)
	assert.Equal(t, []string{"title not null"}, f.rec.alerts)
	assert.Equal(t, "Buy milk", m.Title())
	assert.Equal(t, ModeRename, f.panel.Mode())
	assert.Same(t, m, f.panel.Matter())
}

func TestModal_RenameSavesTrimmedTitle(t *testing.T) {
	f := newFixture(t, "Buy milk")
	m := f.list.At(0)

	f.panel.Open(m, ModeRename)
	f.panel.TitleInput.SetValue("  Buy oat milk ")
	require.NoError(t, f.panel.Confirm(f.ctx))

	assert.Equal(t, "Buy oat milk", m.Title())
	assert.Equal(t, ModeClosed, f.panel.Mode())
	assert.Equal(t, "Buy oat milk", f.stored(t)[0].Title)
	assert.Contains(t, xansi.Strip(f.app.Views()[0].Markup()), "Buy oat milk")
}

func TestModal_ViewModeHasNoInputsOrFooter(t *testing.T) {
	f := newFixture(t, "Buy milk")
	m := f.list.At(0)

	f.panel.Open(m, ModeView)

	assert.True(t, f.panel.ShowsTitleText())
	assert.True(t, f.panel.HasReplyList())
	assert.False(t, f.panel.ShowsTitleInput())
	assert.False(t, f.panel.ShowsReplyInput())
	assert.False(t, f.panel.ShowsFooter())
	out := xansi.Strip(f.panel.View(60))
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "no replies yet")

	require.NoError(t, f.panel.Confirm(f.ctx))
	assert.Equal(t, ModeView, f.panel.Mode())
}

func TestModal_OpenRebindsAndResetsInputs(t *testing.T) {
	f := newFixture(t, "a", "b")
	a, b := f.list.At(0), f.list.At(1)

	f.panel.Open(a, ModeReply)
	f.panel.ReplyInput.SetValue("half typed")
	f.panel.Open(b, ModeView)

	assert.Same(t, b, f.panel.Matter())
	assert.Equal(t, ModeView, f.panel.Mode())
	assert.Empty(t, f.panel.ReplyInput.Value())
}

func TestModal_CloseResetsEverything(t *testing.T) {
	f := newFixture(t, "a")

	f.panel.Open(f.list.At(0), ModeRename)
	f.panel.Close()

	assert.False(t, f.panel.IsOpen())
	assert.Empty(t, f.panel.TitleInput.Value())
	assert.False(t, f.panel.HasReplyList())
	assert.False(t, f.panel.ShowsFooter())
	assert.Empty(t, f.panel.View(60))
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "closed", ModeClosed.String())
	assert.Equal(t, "view", ModeView.String())
	assert.Equal(t, "rename", ModeRename.String())
	assert.Equal(t, "reply", ModeReply.String())
}
