package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adforge/adforge-cli/internal/cli"
)

// NewRulesCommand creates the rules command
func NewRulesCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the available filtering rules",
		Long: `List the exclusion and inclusion rules defined on the backend. Rule IDs
can be referenced from a saved wizard setup.

Examples:
  adforge rules
  adforge rules --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			ctx := cli.NewCommandContext(apiURL, verbose)
			ruleList, err := ctx.Client.ListRules(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}

			if cli.OutputFormat(output) != cli.FormatText {
				return cli.OutputResults(os.Stdout, output, ruleList)
			}

			if len(ruleList) == 0 {
				cli.PrintInfo("No rules defined.")
				return nil
			}

			table := cli.NewTableFormatter(os.Stdout)
			table.Header("ID", "NAME", "ACTION", "CONDITIONS")
			for _, r := range ruleList {
				var conds []string
				for _, c := range r.Conditions {
					conds = append(conds, fmt.Sprintf("%s %s %s", c.Column, c.Operator, c.Value))
				}
				table.Row(r.ID, r.Name, string(r.Action), strings.Join(conds, " and "))
			}
			table.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}
