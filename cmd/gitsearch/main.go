package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/git-search/internal/config"
	"github.com/Kamar-Folarin/git-search/internal/github"
	"github.com/Kamar-Folarin/git-search/internal/logging"
	"github.com/Kamar-Folarin/git-search/internal/lookup"
	"github.com/Kamar-Folarin/git-search/internal/models"
	"github.com/Kamar-Folarin/git-search/internal/render"
	"github.com/Kamar-Folarin/git-search/internal/storage"
)

// errReported marks a failure that has already been rendered.
var errReported = errors.New("reported")

// opener builds a session whose notifications go to notifier.
type opener func(ctx context.Context, notifier lookup.Notifier, verbose bool) (*lookup.Session, func(), error)

func main() {
	root := newRootCmd(openSession)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func openSession(ctx context.Context, notifier lookup.Notifier, verbose bool) (*lookup.Session, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := logging.New(logging.Options{
		Level:  level,
		Format: "text",
		File:   cfg.LogFile,
		Output: os.Stderr,
	})

	store, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, nil, err
	}

	client := github.NewClient(cfg.GitHub, logger)
	session := lookup.NewSession(client, store, notifier, logger)
	return session, func() { _ = store.Close() }, nil
}

// printer writes notification banners to the command output.
type printer struct {
	out      io.Writer
	renderer *render.Renderer
}

func (p *printer) Notify(n models.Notification) {
	fmt.Fprintln(p.out, p.renderer.Notification(n))
}

type app struct {
	open    opener
	verbose bool
}

// session opens and rehydrates a session. A restore failure is printed and
// the command carries on with whatever was recovered.
func (a *app) session(cmd *cobra.Command) (*lookup.Session, *render.Renderer, func(), error) {
	p := &printer{out: cmd.OutOrStdout(), renderer: render.New(models.ThemeLight)}
	s, closeFn, err := a.open(cmd.Context(), p, a.verbose)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := s.Rehydrate(cmd.Context()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", err)
	}
	p.renderer = render.New(s.View().Theme)
	return s, p.renderer, closeFn, nil
}

func newRootCmd(open opener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:           "gitsearch",
		Short:         "Look up GitHub users and their top repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(searchCmd(a), showCmd(a), sortCmd(a), historyCmd(a), themeCmd(a))
	return root
}

func searchCmd(a *app) *cobra.Command {
	var sortKey string

	cmd := &cobra.Command{
		Use:   "search <username>",
		Short: "Fetch a user's profile and repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sortKey != "" {
				if _, err := lookup.ParseSortKey(sortKey); err != nil {
					return err
				}
			}

			s, r, closeFn, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			if err := s.Search(cmd.Context(), args[0]); err != nil {
				if s.State().Status == models.StatusError {
					fmt.Fprintln(out, r.View(s.View()))
					return errReported
				}
				return err
			}
			if sortKey != "" {
				if err := s.Sort(cmd.Context(), sortKey); err != nil {
					return err
				}
			}

			fmt.Fprintln(out, r.View(s.View()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&sortKey, "sort", "s", "", "Sort repositories by name, stars, forks, created or updated")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the last result, or the history when there is none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, r, closeFn, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			fmt.Fprintln(cmd.OutOrStdout(), r.View(s.View()))
			return nil
		},
	}
}

func sortCmd(a *app) *cobra.Command {
	validArgs := make([]string, 0, len(lookup.SortKeys))
	for _, k := range lookup.SortKeys {
		validArgs = append(validArgs, string(k))
	}

	return &cobra.Command{
		Use:       "sort <key>",
		Short:     "Reorder the last result's repositories",
		Args:      cobra.ExactArgs(1),
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, r, closeFn, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := s.Sort(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Repositories(s.State().Repositories()))
			return nil
		},
	}
}

func historyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent searches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, r, closeFn, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			fmt.Fprintln(cmd.OutOrStdout(), r.History(s.RecentHistory()))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the search history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, closeFn, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			return s.ClearHistory(cmd.Context())
		},
	})
	return cmd
}

func themeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle between the light and dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, closeFn, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			theme := s.ToggleTheme(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
			return nil
		},
	}
}
