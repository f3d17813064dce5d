package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RetrieveCmd prints ontology content or metadata.
var RetrieveCmd = &cobra.Command{
	Use:   "retrieve <ontology-id>",
	Short: "Retrieve ontology content or metadata",
	Long: `retrieve — Print the content of an ontology version

Without --version the current version is returned.

Examples:
  ontovault retrieve eth:core                 # Current content
  ontovault retrieve eth:core --version 3     # Specific version
  ontovault retrieve eth:core --meta          # Version metadata as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

var (
	retrieveVersionFlag int
	retrieveMetaFlag    bool
)

func init() {
	RetrieveCmd.Flags().IntVar(&retrieveVersionFlag, "version", 0, "Version number (0 = current)")
	RetrieveCmd.Flags().BoolVar(&retrieveMetaFlag, "meta", false, "Print metadata instead of content")
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	store := newStore(database, cfg)
	if retrieveMetaFlag {
		metadata, err := store.GetMetadata(cmd.Context(), args[0], retrieveVersionFlag)
		if err != nil {
			return err
		}
		return printJSON(metadata)
	}

	payload, err := store.Retrieve(cmd.Context(), args[0], retrieveVersionFlag)
	if err != nil {
		return err
	}
	fmt.Print(payload.Content)
	return nil
}
