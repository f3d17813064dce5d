package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DbCmd groups database maintenance operations.
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the OntoVault database",
	Long: `db — Manage OntoVault database operations

Examples:
  ontovault db migrate   # Apply pending schema migrations
  ontovault db stats     # Show table counts`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE:  runDbMigrate,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE:  runDbStats,
}

func init() {
	DbCmd.AddCommand(dbMigrateCmd)
	DbCmd.AddCommand(dbStatsCmd)
}

func runDbMigrate(cmd *cobra.Command, args []string) error {
	// openDatabase migrates as a side effect.
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	fmt.Printf("Database at %s is up to date\n", cfg.Database.Path)
	return nil
}

func runDbStats(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	stats := map[string]int{}
	for _, table := range []string{
		"domains", "ontologies", "ontology_versions",
		"ontology_entities", "concepts", "concept_versions", "approval_workflows",
	} {
		var n int
		if err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats[table] = n
	}

	fmt.Printf("Database Statistics\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Printf("Database Path:      %s\n", cfg.Database.Path)
	fmt.Printf("Domains:            %d\n", stats["domains"])
	fmt.Printf("Ontologies:         %d\n", stats["ontologies"])
	fmt.Printf("Ontology Versions:  %d\n", stats["ontology_versions"])
	fmt.Printf("Indexed Entities:   %d\n", stats["ontology_entities"])
	fmt.Printf("Concepts:           %d\n", stats["concepts"])
	fmt.Printf("Concept Versions:   %d\n", stats["concept_versions"])
	fmt.Printf("Approval Workflows: %d\n", stats["approval_workflows"])
	return nil
}
