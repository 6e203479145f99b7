package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdMu    sync.Mutex
	mdStyle = "dark"
	// Renderers are cached per style and wrap width.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// SetMarkdownStyle picks the glamour standard style used for replies.
func SetMarkdownStyle(style string) {
	if style == "" {
		return
	}
	mdMu.Lock()
	mdStyle = style
	mdMu.Unlock()
}

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	mdMu.Lock()
	defer mdMu.Unlock()
	key := fmt.Sprintf("%s:%d", mdStyle, width)
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			// WithAutoStyle can block on terminal background queries.
			glamour.WithStandardStyle(mdStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
