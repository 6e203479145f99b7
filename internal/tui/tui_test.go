package tui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/matters/internal/model"
	"github.com/idilsaglam/matters/internal/store/jsonstore"
	"github.com/idilsaglam/matters/internal/ui"
)

func TestMain(m *testing.M) {
	ui.SetTheme("mono")
	ui.SetMarkdownStyle("notty")
	os.Exit(m.Run())
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func newModel(t *testing.T, titles ...string) (*Model, *jsonstore.Store) {
	t.Helper()
	ctx := context.Background()
	st, err := jsonstore.New(t.TempDir(), "matters")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	seed := model.NewList(st, model.WithLogger(logger))
	for _, title := range titles {
		seed.Create(ctx, model.Attrs{}.WithTitle(title))
	}

	m := New(ctx, model.NewList(st, model.WithLogger(logger)))
	t.Cleanup(m.app.Close)
	return m, st
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		send(m, runes(string(r)))
	}
}

func titles(m *Model) []string {
	var out []string
	for _, v := range m.app.Views() {
		out = append(out, v.Matter().Title())
	}
	return out
}

func TestAddFlow(t *testing.T) {
	m, st := newModel(t, "first")

	send(m, runes("a"))
	assert.Equal(t, focusAdd, m.focus)
	typeText(m, "Buy milk")
	send(m, enter)

	assert.Equal(t, focusList, m.focus)
	assert.Equal(t, []string{"first", "Buy milk"}, titles(m))
	assert.Equal(t, 1, m.cursor)

	recs, err := st.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestAddTypingDoesNotTriggerListKeys(t *testing.T) {
	m, _ := newModel(t, "first")

	send(m, runes("a"))
	typeText(m, "dq")
	send(m, esc)

	assert.Equal(t, focusList, m.focus)
	assert.False(t, m.quitting)
	assert.False(t, m.dialogs.confirming())
	assert.Equal(t, []string{"first"}, titles(m))
}

func TestToggleAndNavigate(t *testing.T) {
	m, _ := newModel(t, "a", "b")

	send(m, down, space)

	views := m.app.Views()
	assert.False(t, views[0].Matter().Done())
	assert.True(t, views[1].Matter().Done())

	send(m, down, down)
	assert.Equal(t, 1, m.cursor)
	send(m, runes("k"), runes("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestDeleteAsksFirst(t *testing.T) {
	m, _ := newModel(t, "a", "b")

	send(m, runes("d"))
	require.True(t, m.dialogs.confirming())
	assert.Contains(t, xansi.Strip(m.View()), ui.DeleteConfirmTitle)

	send(m, runes("n"))
	assert.False(t, m.dialogs.confirming())
	assert.Equal(t, []string{"a", "b"}, titles(m))

	send(m, down, runes("d"), runes("y"))
	assert.Equal(t, []string{"a"}, titles(m))
	assert.Equal(t, 0, m.cursor)
}

func TestRenameThroughPanel(t *testing.T) {
	m, _ := newModel(t, "a")

	send(m, runes("e"))
	require.Equal(t, ui.ModeRename, m.panel.Mode())
	assert.Equal(t, focusPanel, m.focus)
	typeText(m, "bc")
	send(m, enter)

	assert.Equal(t, []string{"abc"}, titles(m))
	assert.Equal(t, focusList, m.focus)
	assert.False(t, m.panel.IsOpen())
}

func TestEmptyRenameAlertBlocks(t *testing.T) {
	m, _ := newModel(t, "a")

	send(m, runes("e"), tea.KeyMsg{Type: tea.KeyBackspace}, enter)

	require.True(t, m.dialogs.alerting())
	assert.Contains(t, xansi.Strip(m.View()), "title not null")

	// Keys other than enter/esc don't get past the alert.
	send(m, runes("x"))
	assert.True(t, m.dialogs.alerting())
	assert.Empty(t, m.panel.TitleInput.Value())

	send(m, enter)
	assert.False(t, m.dialogs.alerting())
	assert.Equal(t, ui.ModeRename, m.panel.Mode())
	assert.Equal(t, []string{"a"}, titles(m))
}

func TestReplyThroughPanel(t *testing.T) {
	m, _ := newModel(t, "a")

	send(m, runes("r"))
	require.Equal(t, ui.ModeReply, m.panel.Mode())
	typeText(m, "ok")
	send(m, enter)

	assert.Equal(t, []model.Reply{{Content: "ok"}}, m.app.Views()[0].Matter().Replies())
	assert.False(t, m.panel.IsOpen())
}

func TestDetailClosesOnEsc(t *testing.T) {
	m, _ := newModel(t, "a")

	send(m, enter)
	require.Equal(t, ui.ModeView, m.panel.Mode())
	send(m, enter)
	assert.Equal(t, ui.ModeView, m.panel.Mode())

	send(m, esc)
	assert.False(t, m.panel.IsOpen())
	assert.Equal(t, focusList, m.focus)
}

func TestSearchFlow(t *testing.T) {
	m, _ := newModel(t, "milk", "bread")

	send(m, runes("/"))
	typeText(m, "cheese")
	send(m, enter)
	assert.Equal(t, focusSearch, m.focus)
	assert.Empty(t, titles(m))

	for range "cheese" {
		send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	typeText(m, "bread")
	send(m, enter)
	assert.Equal(t, focusList, m.focus)
	assert.Equal(t, []string{"bread"}, titles(m))

	send(m, runes("/"), enter)
	assert.Equal(t, []string{"milk", "bread"}, titles(m))
}

func TestQuitFlushes(t *testing.T) {
	m, _ := newModel(t, "a")

	cmd := send(m, runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
	assert.NoError(t, m.flushErr)
	assert.Empty(t, m.View())
}

func TestWindowSize(t *testing.T) {
	m, _ := newModel(t, "a")

	send(m, tea.WindowSizeMsg{Width: 40, Height: 10})

	assert.Equal(t, 40, m.width)
	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, xansi.StringWidth(line), 40)
	}
}

func TestCtrlCQuitsFromAnyFocus(t *testing.T) {
	tests := []struct {
		name  string
		enter tea.KeyMsg
		focus focus
	}{
		{"list", runes("j"), focusList},
		{"add", runes("a"), focusAdd},
		{"search", runes("/"), focusSearch},
		{"panel", runes("e"), focusPanel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newModel(t, "a")
			send(m, tt.enter)
			require.Equal(t, tt.focus, m.focus)

			cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, m.quitting)
			assert.NoError(t, m.flushErr)
		})
	}
}
