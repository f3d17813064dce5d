package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ontovault/ontovault/ontology"
)

// OntologiesCmd lists stored ontologies.
var OntologiesCmd = &cobra.Command{
	Use:   "ontologies",
	Short: "List stored ontologies",
	Long: `ontologies — List ontologies across active domains

Examples:
  ontovault ontologies                      # Everything
  ontovault ontologies --domain eth         # One domain
  ontovault ontologies --base               # Base ontologies only`,
	RunE: runOntologies,
}

var (
	ontologiesDomainFlag string
	ontologiesBaseFlag   bool
	ontologiesJSONFlag   bool
)

func init() {
	OntologiesCmd.Flags().StringVar(&ontologiesDomainFlag, "domain", "", "Restrict to one domain")
	OntologiesCmd.Flags().BoolVar(&ontologiesBaseFlag, "base", false, "Base ontologies only")
	OntologiesCmd.Flags().BoolVar(&ontologiesJSONFlag, "json", false, "Print full summaries as JSON")
}

func runOntologies(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	filter := ontology.ListFilter{Domain: ontologiesDomainFlag}
	if ontologiesBaseFlag {
		isBase := true
		filter.IsBase = &isBase
	}

	summaries, err := newStore(database, cfg).ListOntologies(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if ontologiesJSONFlag {
		return printJSON(summaries)
	}

	for _, s := range summaries {
		fmt.Printf("%s:%-24s %-8s versions=%-3d latest=v%d\n",
			s.DomainName, s.Name, s.OntologyType, s.VersionCount, s.LatestVersion)
	}
	return nil
}
