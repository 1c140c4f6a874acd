package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adforge/adforge-cli/internal/cli"
)

// NewSourcesCommand creates the sources command
func NewSourcesCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List connected data sources",
		Long: `List the data sources available on the backend.

Examples:
  # List sources as a table
  adforge sources

  # List sources as JSON
  adforge sources --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			ctx := cli.NewCommandContext(apiURL, verbose)
			sources, err := ctx.Client.ListDataSources(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list data sources: %w", err)
			}

			if cli.OutputFormat(output) != cli.FormatText {
				return cli.OutputResults(os.Stdout, output, sources)
			}

			if len(sources) == 0 {
				cli.PrintInfo("No data sources connected.")
				return nil
			}

			table := cli.NewTableFormatter(os.Stdout)
			table.Header("ID", "NAME", "KIND", "ROWS")
			for _, s := range sources {
				table.Row(s.ID, s.Name, s.Kind, strconv.Itoa(s.RowCount))
			}
			table.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}
