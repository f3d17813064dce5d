package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionsCmd lists the version history of an ontology.
var VersionsCmd = &cobra.Command{
	Use:   "versions <ontology-id>",
	Short: "List the version history of an ontology",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersions,
}

var versionsJSONFlag bool

func init() {
	VersionsCmd.Flags().BoolVar(&versionsJSONFlag, "json", false, "Print full summaries as JSON")
}

func runVersions(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	summaries, err := newStore(database, cfg).ListVersions(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if versionsJSONFlag {
		return printJSON(summaries)
	}

	fmt.Printf("Versions of %s\n", args[0])
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	for _, s := range summaries {
		marker := " "
		if s.IsCurrent {
			marker = "*"
		}
		tag := s.VersionTag
		if tag == "" {
			tag = "-"
		}
		fmt.Printf("%s v%-4d %-12s %-10s %-16s %s\n",
			marker, s.VersionNumber, tag, s.WorkflowStatus,
			s.CreatedBy, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
