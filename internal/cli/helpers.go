package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Confirm asks the user for a yes/no confirmation
func Confirm(prompt string, defaultYes bool) (bool, error) {
	suffix := " [y/N] "
	if defaultYes {
		suffix = " [Y/n] "
	}
	fmt.Print(prompt + suffix)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return defaultYes, nil
	}
	return answer == "y" || answer == "yes", nil
}

var (
	quiet   bool
	noColor bool
)

// PrintSuccess prints a success message unless quiet mode is on
func PrintSuccess(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Printf("✓ "+format+"\n", args...)
}

// PrintInfo prints an informational message unless quiet mode is on
func PrintInfo(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Printf(format+"\n", args...)
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// SetGlobalFlags configures the package level output flags
func SetGlobalFlags(q, nc bool) {
	quiet = q
	noColor = nc
}
