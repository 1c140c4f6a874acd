package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adforge/adforge-cli/internal/cli"
	"github.com/adforge/adforge-cli/internal/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var (
		addr     string
		fixtures string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local stub backend",
		Long: `Run a local backend serving data sources, rules, and the generation
endpoint. Without --fixtures it serves a built-in demo product feed, so
the wizard works end to end offline.

Examples:
  # Serve the demo fixtures on the default address
  adforge serve

  # Serve custom fixtures
  adforge serve --addr :9000 --fixtures feed.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext(apiURL, verbose)

			var fx *server.Fixtures
			if fixtures != "" {
				loaded, err := server.LoadFixtures(fixtures)
				if err != nil {
					return fmt.Errorf("failed to load fixtures: %w", err)
				}
				fx = loaded
			}

			srv := server.New(fx, ctx.Log)
			cli.PrintInfo("Serving on %s", addr)
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8095", "Listen address")
	cmd.Flags().StringVarP(&fixtures, "fixtures", "f", "", "Fixtures YAML file (default: built-in demo feed)")
	return cmd
}
