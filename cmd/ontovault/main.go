package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ontovault/ontovault/cmd/ontovault/commands"
	"github.com/ontovault/ontovault/logger"
)

var jsonLogs bool

var rootCmd = &cobra.Command{
	Use:   "ontovault",
	Short: "OntoVault - Versioned ontology storage and review workflow",
	Long: `OntoVault - Versioned ontology storage, composition, and concept review.

OntoVault stores RDF ontologies as immutable version lineages, composes
base ontologies with their derived children, and runs the approval
workflow for extracted candidate concepts.

Available commands:
  db         - Manage the OntoVault database
  store      - Store a new ontology version
  retrieve   - Retrieve ontology content or metadata
  versions   - List the version history of an ontology
  ontologies - List stored ontologies
  promote    - Advance the workflow status of a version
  delete     - Delete an ontology or a single version
  merge      - Merge a base ontology with its children
  hierarchy  - Show the hierarchy around an ontology
  validate   - Check merge compatibility of a base ontology
  concept    - Submit, decide, and list candidate concepts
  domain     - Inspect domains

Examples:
  ontovault store eth:core core.ttl --status published
  ontovault merge eth:core --out merged.ttl
  ontovault concept submit --label "Public Safety (Principle)" \
      --category Principle --uri http://example.org/onto#PublicSafety
  ontovault concept decide 3f1c... approved --by reviewer`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		useJSON := jsonLogs
		if !useJSON {
			if cfg, err := commands.LoadConfig(); err == nil {
				useJSON = cfg.Log.JSON
			}
		}
		if err := logger.Initialize(useJSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&commands.ConfigFile, "config", "", "Path to config file (default: search for ontovault.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.StoreCmd)
	rootCmd.AddCommand(commands.RetrieveCmd)
	rootCmd.AddCommand(commands.VersionsCmd)
	rootCmd.AddCommand(commands.OntologiesCmd)
	rootCmd.AddCommand(commands.PromoteCmd)
	rootCmd.AddCommand(commands.DeleteCmd)
	rootCmd.AddCommand(commands.MergeCmd)
	rootCmd.AddCommand(commands.HierarchyCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.ConceptCmd)
	rootCmd.AddCommand(commands.DomainCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
