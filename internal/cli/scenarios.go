package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/scenario"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/source"
)

// scenariosCommand creates the scenarios command. Without arguments it lists
// the built-in catalog; with a name it emits that scenario's snapshot JSON
// on stdout, ready to pipe into detect or render.
func (c *CLI) scenariosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios [name]",
		Short: "List built-in scenarios or print one as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printScenarioTable()
				return nil
			}
			snap, err := scenario.ByName(args[0])
			if err != nil {
				return err
			}
			return source.Encode(os.Stdout, snap)
		},
	}
}

// printScenarioTable renders the catalog as a bordered table.
func printScenarioTable() {
	names := scenario.Catalog()
	catalog := scenario.Describe()

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		info := catalog[name]
		rows = append(rows, []string{
			info.Icon + " " + name,
			info.Type,
			info.Difficulty,
			info.Description,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Scenario", "Type", "Difficulty", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Println(StyleTitle.Render("Built-in Scenarios"))
	fmt.Println(t.Render())
	printNextStep("Inspect one", fmt.Sprintf("%s scenarios dining_philosophers | %s detect -", appName, appName))
}
