package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/matters/internal/model"
	"github.com/idilsaglam/matters/internal/ui"
)

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

// session is one command's worth of list and views. Commands go through the
// same views the TUI uses; dialogs are answered from flags or stdin.
type session struct {
	ctx   context.Context
	list  *model.List
	app   *ui.AppView
	panel *ui.ModalView

	in      io.Reader
	out     io.Writer
	assume  bool // answer yes to confirmations
	prompts int
}

func newSession(ctx context.Context, cmd *cobra.Command, list *model.List) (*session, error) {
	s := &session{
		ctx:  ctx,
		list: list,
		in:   cmd.InOrStdin(),
		out:  cmd.OutOrStdout(),
	}
	// Validation failures come back as errors from Confirm; the alert
	// itself only needs a trace.
	s.panel = ui.NewModalView(ui.AlertFunc(func(msg string) {
		list.Logger().Debug("alert", slog.String("msg", msg))
	}))
	app, err := ui.NewAppView(ctx, list, s.panel, s)
	if err != nil {
		app.Close()
		return nil, err
	}
	s.app = app
	return s, nil
}

// Confirm asks on stdin unless confirmations are assumed.
func (s *session) Confirm(title string, onConfirm func()) {
	s.prompts++
	if s.assume {
		onConfirm()
		return
	}
	fmt.Fprintf(s.out, "%s [y/N] ", title)
	line, _ := bufio.NewReader(s.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		onConfirm()
	}
}

// at resolves a 1-based display position.
func (s *session) at(arg string) (*ui.MatterView, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("not a number: %s", arg)
	}
	views := s.app.Views()
	if n < 1 || n > len(views) {
		return nil, fmt.Errorf("position out of range: have %d, got %d (run `matters ls` to see positions)", len(views), n)
	}
	return views[n-1], nil
}

func (s *session) ok(msg string) { ui.OK(s.out, msg) }
