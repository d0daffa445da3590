package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudcare/helpdesk/internal/interfaces/cli/migrate"
	"github.com/cloudcare/helpdesk/internal/interfaces/cli/seed"
	"github.com/cloudcare/helpdesk/internal/interfaces/cli/server"
	"github.com/cloudcare/helpdesk/internal/interfaces/cli/version"
)

//	@title						CloudCare Ticketing API
//	@version					1.0
//	@description				Customer support ticketing: accounts, tickets, comments and statistics.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.
func main() {
	rootCmd := &cobra.Command{
		Use:          "helpdesk",
		Short:        "CloudCare helpdesk",
		Long:         `CloudCare helpdesk API server with migration and seeding tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
