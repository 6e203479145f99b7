package ui

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/matters/internal/model"
)

// itemTemplate renders one row from a field snapshot. It has no inputs other
// than its arguments and the active theme.
func itemTemplate(r model.Record) string {
	t := Current()
	box, title := t.Muted.Render(t.BoxUnchecked), r.Title
	if r.Done {
		box, title = t.Success.Render(t.BoxChecked), t.DoneText.Render(r.Title)
	}
	meta := r.Date
	if n := len(r.Reply); n > 0 {
		meta += fmt.Sprintf(" · %d %s", n, plural(n, "reply", "replies"))
	}
	return fmt.Sprintf("%s %s  %s", box, title, t.Muted.Render(meta))
}

// replyTemplate renders the reply list region. Replies are markdown.
func replyTemplate(replies []model.Reply, width int) string {
	if len(replies) == 0 {
		return Current().Muted.Render("no replies yet")
	}
	var b strings.Builder
	for _, r := range replies {
		// One list item per reply; continuation lines stay inside the item.
		fmt.Fprintf(&b, "- %s\n", strings.ReplaceAll(strings.TrimSpace(r.Content), "\n", "\n  "))
	}
	return renderMarkdown(b.String(), width)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
