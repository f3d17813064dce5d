package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ontovault/ontovault/errors"
)

// StoreCmd stores a new ontology version from a file.
var StoreCmd = &cobra.Command{
	Use:   "store <ontology-id> <file>",
	Short: "Store a new ontology version",
	Long: `store — Store a new version of an ontology from an RDF file

The ontology id is "domain:name" or a bare name in the default domain.
Domains and ontologies are created on first use.

Examples:
  ontovault store eth:core core.ttl --status published --tag v2.1
  ontovault store scratch draft.ttl --summary "first draft"
  ontovault store eth:derived child.ttl --parent 3`,
	Args: cobra.ExactArgs(2),
	RunE: runStore,
}

var (
	storeStatusFlag  string
	storeTagFlag     string
	storeSummaryFlag string
	storeByFlag      string
	storeBaseURIFlag string
	storeParentFlag  int64
	storeIsBaseFlag  bool
)

func init() {
	StoreCmd.Flags().StringVar(&storeStatusFlag, "status", "draft", "Workflow status (draft|review|published)")
	StoreCmd.Flags().StringVar(&storeTagFlag, "tag", "", "Version tag")
	StoreCmd.Flags().StringVar(&storeSummaryFlag, "summary", "", "Change summary")
	StoreCmd.Flags().StringVar(&storeByFlag, "by", "", "Author recorded on the version")
	StoreCmd.Flags().StringVar(&storeBaseURIFlag, "base-uri", "", "Base URI when creating the ontology")
	StoreCmd.Flags().Int64Var(&storeParentFlag, "parent", 0, "Parent ontology row id (creates a derived ontology)")
	StoreCmd.Flags().BoolVar(&storeIsBaseFlag, "is-base", false, "Mark the ontology as a base ontology on creation")
}

func runStore(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[1])
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", args[1])
	}

	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	metadata := map[string]interface{}{
		"workflow_status": storeStatusFlag,
	}
	if storeTagFlag != "" {
		metadata["version_tag"] = storeTagFlag
	}
	if storeSummaryFlag != "" {
		metadata["change_summary"] = storeSummaryFlag
	}
	if storeByFlag != "" {
		metadata["created_by"] = storeByFlag
	}
	if storeBaseURIFlag != "" {
		metadata["base_uri"] = storeBaseURIFlag
	}
	if storeParentFlag > 0 {
		metadata["parent_ontology_id"] = storeParentFlag
	}
	if storeIsBaseFlag {
		metadata["is_base"] = true
	}

	result, err := newStore(database, cfg).Store(cmd.Context(), args[0], string(content), metadata)
	if err != nil {
		return err
	}
	return printJSON(result)
}
