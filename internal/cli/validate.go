package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check that a file can be loaded",
	Long: `Validate runs the checks applied to every discovered file, in order:

  1. The extension is allowed (--ext)
  2. The size does not exceed the limit (--max-size-mb)
  3. At least one line has content

The first failing check decides the exit code.`,
	Args:              RequireFilePath,
	ValidArgsFunction: completeDataFiles,
	RunE:              runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	return runWithApp(cmd, func(a *app) error {
		if err := a.validator.Validate(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", args[0])
		return nil
	})
}
