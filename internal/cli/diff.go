package cli

import (
	"github.com/spf13/cobra"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/compare"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/source"
)

// diffCommand creates the diff command. It compares two snapshot files and
// prints the ordered difference list: process additions and removals first,
// then cycle, allocation, and request count changes.
func (c *CLI) diffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a.json> <b.json>",
		Short: "Compare two snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1])
		},
	}
}

func runDiff(cmd *cobra.Command, pathA, pathB string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	a, err := captureFile(cmd, pathA)
	if err != nil {
		return err
	}
	b, err := captureFile(cmd, pathB)
	if err != nil {
		return err
	}

	diffs := compare.Diff(a, b)
	logger.Debugf("Compared %s against %s: %d differences", pathA, pathB, len(diffs))

	if len(diffs) == 0 {
		printSuccess("No differences")
		return nil
	}

	printInfo("%d difference(s)", len(diffs))
	for _, d := range diffs {
		switch d.Kind {
		case compare.KindAdded:
			printDetail("+ %s", d.Message)
		case compare.KindRemoved:
			printDetail("- %s", d.Message)
		default:
			printDetail("~ %s", d.Message)
		}
	}
	return nil
}

// captureFile loads a snapshot file and runs detection on it, producing the
// capture form the comparator works on.
func captureFile(cmd *cobra.Command, path string) (*compare.SavedSnapshot, error) {
	snap, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	res := detect.Analyze(cmd.Context(), snap)
	return compare.Capture(path, snap, res.Cycles, res.WFG), nil
}
