package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/matters/internal/model"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a matter (title can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: app.run(func(cmd *cobra.Command, s *session, args []string) error {
			title, err := model.ValidateTitle(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			s.app.AddInput.SetValue(title)
			s.app.AddMatter(s.ctx, enterKey)
			s.ok(fmt.Sprintf("added #%d %s", len(s.app.Views()), title))
			return nil
		}),
	}
}

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List matters",
		Args:    cobra.NoArgs,
		RunE: app.run(func(cmd *cobra.Command, s *session, args []string) error {
			fmt.Fprintln(s.out, renderListing(s.app, group))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <n>",
		Short: "Toggle done for the matter at position n",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, s *session, args []string) error {
			v, err := s.at(args[0])
			if err != nil {
				return fmt.Errorf("done: %w", err)
			}
			v.Toggle(s.ctx)
			if v.Matter().Done() {
				s.ok("done: " + v.Matter().Title())
			} else {
				s.ok("pending: " + v.Matter().Title())
			}
			return nil
		}),
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <n>",
		Short: "Remove the matter at position n",
		Args:  cobra.ExactArgs(1),
		RunE: app.run(func(cmd *cobra.Command, s *session, args []string) error {
			v, err := s.at(args[0])
			if err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			s.assume = yes
			v.DelMatter(s.ctx)
			if !v.Matter().Destroyed() {
				s.ok("kept: " + v.Matter().Title())
				return nil
			}
			s.ok("removed: " + v.Matter().Title())
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <n> <title...>",
		Short: "Rename the matter at position n",
		Args:  cobra.MinimumNArgs(2),
		RunE: app.run(func(cmd *cobra.Command, s *session, args []string) error {
			v, err := s.at(args[0])
			if err != nil {
				return fmt.Errorf("rename: %w", err)
			}
			v.Edit()
			s.panel.TitleInput.SetValue(strings.Join(args[1:], " "))
			if err := s.panel.Confirm(s.ctx); err != nil {
				return fmt.Errorf("rename: %w", err)
			}
			s.ok("renamed: " + v.Matter().Title())
			return nil
		}),
	}
}

func newReplyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reply <n> <text...>",
		Short: "Append a reply to the matter at position n",
		Args:  cobra.MinimumNArgs(2),
		RunE: app.run(func(cmd *cobra.Command, s *session, args []string) error {
			v, err := s.at(args[0])
			if err != nil {
				return fmt.Errorf("reply: %w", err)
			}
			v.Reply()
			s.panel.ReplyInput.SetValue(strings.Join(args[1:], " "))
			if err := s.panel.Confirm(s.ctx); err != nil {
				return fmt.Errorf("reply: %w", err)
			}
			s.ok(fmt.Sprintf("replied: %s (%d)", v.Matter().Title(), v.Matter().ReplyCount()))
			return nil
		}),
	}
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search [title...]",
		Short: "Show matters whose title is exactly the query",
		RunE: app.run(func(cmd *cobra.Command, s *session, args []string) error {
			s.app.SearchInput.SetValue(strings.Join(args, " "))
			s.app.SearchMatter(s.ctx, enterKey)
			fmt.Fprintln(s.out, renderListing(s.app, false))
			return nil
		}),
	}
}
