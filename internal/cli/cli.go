// Package cli implements the deadlock command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/buildinfo"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/cache"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/scenario"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "deadlock"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Deadlock analyzes and visualizes resource deadlocks",
		Long:         `Deadlock is a CLI tool for detecting, predicting, and recovering from resource deadlocks. It builds resource-allocation and wait-for graphs from system snapshots and renders them for inspection.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.detectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.scenariosCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the artifact cache used by CLI commands. A missing cache
// directory degrades to the null cache rather than failing the command.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Snapshot Input
// =============================================================================

// loadSnapshot resolves a command's snapshot input: an explicit file path,
// "-" for stdin, or a --scenario name. The returned label describes the
// origin for log lines.
func loadSnapshot(path, scenarioName string) (*snapshot.Snapshot, string, error) {
	switch {
	case scenarioName != "" && path != "":
		return nil, "", fmt.Errorf("pass a snapshot file or --scenario, not both")
	case scenarioName != "":
		s, err := scenario.ByName(scenarioName)
		if err != nil {
			return nil, "", err
		}
		return s, "scenario " + scenarioName, nil
	case path == "-":
		s, err := source.Decode(os.Stdin)
		if err != nil {
			return nil, "", err
		}
		return s, "stdin", nil
	case path != "":
		s, err := source.Load(path)
		if err != nil {
			return nil, "", err
		}
		return s, path, nil
	default:
		return nil, "", fmt.Errorf("a snapshot file or --scenario is required")
	}
}
