package commands

import (
	"github.com/spf13/cobra"
)

// HierarchyCmd shows the relationship graph around an ontology.
var HierarchyCmd = &cobra.Command{
	Use:   "hierarchy <ontology-id>",
	Short: "Show the hierarchy around an ontology",
	Args:  cobra.ExactArgs(1),
	RunE:  runHierarchy,
}

func runHierarchy(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	store := newStore(database, cfg)
	h, err := newComposer(store, cfg).Hierarchy(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(h)
}
