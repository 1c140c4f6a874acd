package commands

import (
	"github.com/spf13/cobra"

	"github.com/adforge/adforge-cli/internal/cli"
)

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the saved wizard session",
		Long: `Delete the saved wizard session so the next run starts from a blank
setup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext(apiURL, verbose)

			if !yes {
				ok, err := cli.Confirm("Discard the saved wizard session?", false)
				if err != nil {
					return err
				}
				if !ok {
					cli.PrintInfo("Aborted.")
					return nil
				}
			}

			if err := ctx.Store.Clear(); err != nil {
				return err
			}
			cli.PrintSuccess("Session discarded")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
