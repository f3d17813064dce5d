package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DeleteCmd removes an ontology or a single version.
var DeleteCmd = &cobra.Command{
	Use:   "delete <ontology-id>",
	Short: "Delete an ontology or a single version",
	Long: `delete — Remove a version, or the whole ontology when --version is omitted

Deleting the ontology removes its entire version history.

Examples:
  ontovault delete scratch:tmp
  ontovault delete eth:core --version 2`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteVersionFlag int

func init() {
	DeleteCmd.Flags().IntVar(&deleteVersionFlag, "version", 0, "Version number (0 = whole ontology)")
}

func runDelete(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	deleted, err := newStore(database, cfg).Delete(cmd.Context(), args[0], deleteVersionFlag)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("Nothing matched %s\n", args[0])
		return nil
	}
	if deleteVersionFlag > 0 {
		fmt.Printf("Deleted %s version %d\n", args[0], deleteVersionFlag)
	} else {
		fmt.Printf("Deleted %s\n", args[0])
	}
	return nil
}
