package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

var rootCmd = &cobra.Command{
	Use:   "tabwatch",
	Short: "Load the newest tabular data file from a watched directory",
	Long: `tabwatch finds the most recently modified data file in a directory,
checks it, detects its text encoding and delimiter, and loads it as a table
you can print, watch, or edit and save back.

Supported files: .csv and .txt (delimited text), .xlsx and .xls (first sheet).

Configuration (highest priority first):
  1. Command-line flags
  2. TABWATCH_* environment variables (a .env file in the working directory is read too)
  3. tabwatch.yaml in the working directory, or --config <path>
  4. Built-in defaults

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  20 - Data directory missing or not a directory
  21 - No file with an allowed extension
  22 - File extension not allowed
  23 - File exceeds the size limit
  24 - File has no data
  25 - File could not be decoded or parsed
  26 - Operation not supported for this file type
  27 - Saving the edited file failed`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}

	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

// reportError prints the user-facing message for err to stderr.
func reportError(err error) {
	if tabwatch.ExitCodeForError(err) == tabwatch.ExitUsageError {
		fmt.Fprintf(os.Stderr, "Error: %v\nRun 'tabwatch --help' for usage.\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, tabwatch.UserMessage(err))
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for tabwatch")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	addScopeFlags(rootCmd)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
