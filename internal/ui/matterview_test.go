package ui

import (
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/matters/internal/model"
)

func TestMatterView_RerendersOnChange(t *testing.T) {
	f := newFixture(t, "Buy milk")
	v := f.app.Views()[0]
	assert.Equal(t, "[ ] Buy milk", firstCols(v.Markup()))

	v.Matter().Save(f.ctx, model.Attrs{}.WithTitle("Buy bread"))
	assert.Equal(t, "[ ] Buy bread", firstCols(v.Markup()))

	v.Toggle(f.ctx)
	assert.Equal(t, "[x] Buy bread", firstCols(v.Markup()))
	assert.Equal(t, v.Markup(), v.Render().Markup())
}

func TestMatterView_MarkupShowsReplyCount(t *testing.T) {
	f := newFixture(t, "Buy milk")
	v := f.app.Views()[0]

	v.Matter().Save(f.ctx, model.Attrs{}.WithReply([]model.Reply{{Content: "a"}, {Content: "b"}}))

	assert.Contains(t, xansi.Strip(v.Markup()), "2 replies")
}

func TestMatterView_DeleteDeclinedLeavesState(t *testing.T) {
	f := newFixture(t, "a")
	v := f.app.Views()[0]

	v.DelMatter(f.ctx)

	assert.Equal(t, []string{DeleteConfirmTitle}, f.rec.prompts)
	assert.True(t, v.Attached())
	assert.False(t, v.Matter().Destroyed())
	assert.Len(t, f.stored(t), 1)
}

func TestMatterView_DeleteConfirmedDetaches(t *testing.T) {
	f := newFixture(t, "a")
	f.rec.answerOK = true
	v := f.app.Views()[0]

	v.DelMatter(f.ctx)

	assert.False(t, v.Attached())
	assert.True(t, v.Matter().Destroyed())
	assert.Empty(t, f.app.Views())
	assert.Empty(t, f.stored(t))
}

func TestMatterView_RemoveStopsListening(t *testing.T) {
	f := newFixture(t, "a")
	v := f.app.Views()[0]
	before := v.Markup()

	v.Remove()
	v.Matter().Save(f.ctx, model.Attrs{}.WithTitle("changed"))

	assert.Equal(t, before, v.Markup())
	assert.Empty(t, f.app.Views())
}

func TestMatterView_OpensPanelInEachMode(t *testing.T) {
	f := newFixture(t, "a")
	v := f.app.Views()[0]

	v.ShowDetail()
	assert.Equal(t, ModeView, f.panel.Mode())
	v.Edit()
	assert.Equal(t, ModeRename, f.panel.Mode())
	v.Reply()
	assert.Equal(t, ModeReply, f.panel.Mode())
	assert.Same(t, v.Matter(), f.panel.Matter())
}

// firstCols strips styling and drops the date column.
func firstCols(markup string) string {
	s := xansi.Strip(markup)
	for i := 0; i+1 < len(s); i++ {
		if s[i] == ' ' && s[i+1] == ' ' {
			return s[:i]
		}
	}
	return s
}
