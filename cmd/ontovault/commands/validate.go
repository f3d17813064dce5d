package commands

import (
	"github.com/spf13/cobra"
)

// ValidateCmd dry-runs a merge and reports problems.
var ValidateCmd = &cobra.Command{
	Use:   "validate <base-ontology-id>",
	Short: "Check merge compatibility of a base ontology",
	Long: `validate — Report the errors and warnings a merge would produce

Examples:
  ontovault validate eth:core`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	store := newStore(database, cfg)
	report, err := newComposer(store, cfg).ValidateMergeCompatibility(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(report)
}
