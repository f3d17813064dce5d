package commands

import (
	"github.com/spf13/cobra"
)

// DomainCmd groups domain inspection operations.
var DomainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Inspect domains",
}

var domainInfoCmd = &cobra.Command{
	Use:   "info <domain>",
	Short: "Show concept statistics for a domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runDomainInfo,
}

func init() {
	DomainCmd.AddCommand(domainInfoCmd)
}

func runDomainInfo(cmd *cobra.Command, args []string) error {
	database, _, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	info, err := newManager(database).GetDomainInfo(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(info)
}
