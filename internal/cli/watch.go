package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/source"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	scenario string        // watch a built-in scenario instead of a file
	interval time.Duration // dashboard refresh interval
}

// watchCommand creates the watch command: a full-screen dashboard that
// re-runs detection whenever the snapshot file changes on disk.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{interval: time.Second}

	cmd := &cobra.Command{
		Use:   "watch [snapshot.json]",
		Short: "Live deadlock dashboard for a snapshot file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runWatch(cmd.Context(), path, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "watch a built-in scenario (static data)")
	cmd.Flags().DurationVar(&opts.interval, "interval", opts.interval, "dashboard refresh interval")

	return cmd
}

func runWatch(ctx context.Context, path string, opts *watchOpts) error {
	logger := loggerFromContext(ctx)

	snap, origin, err := loadSnapshot(path, opts.scenario)
	if err != nil {
		return err
	}

	m := NewWatchModel(origin, snap, opts.interval)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Scenario and stdin input have no file to follow; the dashboard shows
	// a static state then.
	if path != "" && path != "-" {
		w, err := source.NewWatcher(path)
		if err != nil {
			return err
		}
		w.OnChange(func(s *snapshot.Snapshot) { p.Send(snapshotMsg{snap: s}) })
		w.OnError(func(err error) { p.Send(watchErrMsg{err: err}) })
		if err := w.Start(ctx); err != nil {
			return err
		}
		logger.Debugf("Watching %s", path)
	}

	_, err = p.Run()
	return err
}
