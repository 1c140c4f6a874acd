package commands

import (
	"github.com/spf13/cobra"

	"github.com/adforge/adforge-cli/internal/cli"
)

// Flags shared by every command
var (
	apiURL  string
	verbose bool
	quiet   bool
)

// RegisterGlobalFlags attaches the shared persistent flags to the root
// command and wires them into the cli output helpers.
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&apiURL, "api", "", "Backend API base URL (default: $ADFORGE_API_URL or http://localhost:8095)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")

	cobra.OnInitialize(func() {
		cli.SetGlobalFlags(quiet, false)
	})
}
