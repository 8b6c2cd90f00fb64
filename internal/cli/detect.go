package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
)

// detectOpts holds the command-line flags for the detect command.
type detectOpts struct {
	scenario string // analyze a built-in scenario instead of a file
	asJSON   bool   // emit the raw detection result as JSON
	recover  bool   // also compute the recovery plan
}

// detectCommand creates the detect command. It analyzes one snapshot:
// wait-for cycles, Banker's safety, and optionally the recovery plan.
func (c *CLI) detectCommand() *cobra.Command {
	var opts detectOpts

	cmd := &cobra.Command{
		Use:   "detect [snapshot.json]",
		Short: "Detect deadlocks in a snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runDetect(cmd, path, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "analyze a built-in scenario (see 'deadlock scenarios')")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the raw detection result as JSON")
	cmd.Flags().BoolVar(&opts.recover, "recover", false, "also print the recovery plan and resulting state")

	return cmd
}

func runDetect(cmd *cobra.Command, path string, opts *detectOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	snap, origin, err := loadSnapshot(path, opts.scenario)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d processes, %d resources", origin, len(snap.Processes), len(snap.Resources))

	prog := newProgress(logger)
	res := detect.Analyze(ctx, snap)
	pred := detect.Predict(ctx, snap)
	prog.done(fmt.Sprintf("Analyzed %d processes", len(snap.Processes)))

	if opts.asJSON {
		return printDetectJSON(res, pred)
	}

	if res.HasDeadlock {
		printError("Deadlock: %s", res.Message)
		for i, cycle := range res.Cycles {
			printDetail("cycle %d: %s", i+1, fmtCycle(cycle))
		}
	} else {
		printSuccess("%s", res.Message)
	}

	if pred.Safe {
		printInfo("Banker's check: %s", pred.Details)
	} else {
		printWarning("Banker's check: %s", pred.Details)
	}

	if opts.recover && res.HasDeadlock {
		rec := detect.Recover(ctx, snap)
		printNewline()
		printInfo("%s", rec.Message)
		for _, pid := range rec.Victims {
			printDetail("preempt P%d, releasing its held units", pid)
		}
	}

	if res.HasDeadlock && !opts.recover {
		rerun := fmt.Sprintf("%s detect %s --recover", appName, path)
		if opts.scenario != "" {
			rerun = fmt.Sprintf("%s detect --scenario %s --recover", appName, opts.scenario)
		}
		printNextStep("Plan a recovery", rerun)
	}
	return nil
}

// printDetectJSON emits the detection result and prediction as one JSON
// document on stdout.
func printDetectJSON(res detect.Result, pred detect.Prediction) error {
	out := struct {
		detect.Result
		Prediction detect.Prediction `json:"prediction"`
	}{Result: res, Prediction: pred}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// fmtCycle formats a cycle as "P1 → P2 → P1".
func fmtCycle(cycle []int) string {
	if len(cycle) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cycle)+1)
	for _, pid := range cycle {
		parts = append(parts, fmt.Sprintf("P%d", pid))
	}
	parts = append(parts, fmt.Sprintf("P%d", cycle[0]))
	return strings.Join(parts, " "+iconArrow+" ")
}
