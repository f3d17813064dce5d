package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// PromoteCmd advances the workflow status of a version.
var PromoteCmd = &cobra.Command{
	Use:   "promote <ontology-id> <status>",
	Short: "Advance the workflow status of a version",
	Long: `promote — Move a version forward through draft, review, published

The status never moves backward; store a new version to roll back.

Examples:
  ontovault promote eth:core review
  ontovault promote eth:core published --version 3`,
	Args: cobra.ExactArgs(2),
	RunE: runPromote,
}

var promoteVersionFlag int

func init() {
	PromoteCmd.Flags().IntVar(&promoteVersionFlag, "version", 0, "Version number (0 = current)")
}

func runPromote(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := newStore(database, cfg).AdvanceWorkflowStatus(cmd.Context(), args[0], promoteVersionFlag, args[1]); err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", args[0], args[1])
	return nil
}
