package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/adforge/adforge-cli/cmd/commands"
	"github.com/adforge/adforge-cli/internal/cli"
	"github.com/adforge/adforge-cli/pkg/session"
	"github.com/adforge/adforge-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "adforge",
	Short: "Terminal wizard for bulk ad campaign generation",
	Long: `AdForge builds ad campaigns in bulk from tabular data sources. Campaign,
ad group, and ad text are written as patterns with {column} variables,
interpolated against every row and grouped into a campaign hierarchy.

Run without arguments to start the interactive wizard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		apiURL, _ := cmd.Flags().GetString("api")
		verbose, _ := cmd.Flags().GetBool("verbose")
		ctx := cli.NewCommandContext(apiURL, verbose)

		// bubbletea owns the terminal, so the wizard logs to a file.
		if logFile, err := openLogFile(ctx.Store.Dir()); err == nil {
			defer logFile.Close()
			ctx.Log.SetOutput(logFile)
		} else {
			ctx.Log.SetOutput(io.Discard)
		}

		opts := tui.Options{
			Client: ctx.Client,
			Store:  ctx.Store,
			Log:    ctx.Log,
		}

		// Resume the previous session if one was saved.
		if state, err := ctx.Store.Load(); err == nil {
			opts.Resumed = &state
		} else if !errors.Is(err, session.ErrNoSnapshot) {
			cli.PrintWarning("Ignoring unreadable session: %v", err)
		}

		app := tui.NewWizard(opts)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to start the terminal interface: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of AdForge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("AdForge version %s\n", version)
	},
}

func init() {
	commands.RegisterGlobalFlags(rootCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewSourcesCommand())
	rootCmd.AddCommand(commands.NewColumnsCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewPreviewCommand())
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewResetCommand())
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "adforge.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
