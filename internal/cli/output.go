package cli

import (
	"fmt"

	"github.com/idilsaglam/matters/internal/ui"
)

// renderListing draws the header, progress and rows. Row numbers are the
// display positions the other commands take, also when grouped.
func renderListing(app *ui.AppView, group bool) string {
	t := ui.Current()
	views := app.Views()
	d, total := app.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Matters"),
		t.Success.Render("✔"), d,
		t.Pending.Render("•"), total-d,
		t.Accent.Render("Total"), total,
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(d, total, 28)), ""}
	if group {
		lines = append(lines, groupLines(views)...)
	} else {
		lines = append(lines, flatLines(views, func(*ui.MatterView) bool { return true })...)
	}
	return ui.Box(lines, 0)
}

func flatLines(views []*ui.MatterView, keep func(*ui.MatterView) bool) []string {
	t := ui.Current()
	var out []string
	for i, v := range views {
		if !keep(v) {
			continue
		}
		out = append(out, fmt.Sprintf("%s %s", t.Muted.Render(fmt.Sprintf("%2d.", i+1)), v.Markup()))
	}
	if len(out) == 0 {
		return []string{t.Muted.Render("nothing here")}
	}
	return out
}

func groupLines(views []*ui.MatterView) []string {
	t := ui.Current()
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	lines = append(lines, flatLines(views, func(v *ui.MatterView) bool { return !v.Matter().Done() })...)
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	lines = append(lines, flatLines(views, func(v *ui.MatterView) bool { return v.Matter().Done() })...)
	return lines
}
