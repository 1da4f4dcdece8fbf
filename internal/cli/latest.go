package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the path of the newest valid data file",
	Long: `Latest scans the data directory (without recursing), picks the file with
the newest modification time and checks it. On success the path is printed
to stdout, so it can be used in scripts:

  tabwatch latest --dir ./incoming
  cp "$(tabwatch latest)" /backup/`,
	Args: cobra.NoArgs,
	RunE: runLatest,
}

func init() {
	rootCmd.AddCommand(latestCmd)
}

func runLatest(cmd *cobra.Command, _ []string) error {
	return runWithApp(cmd, func(a *app) error {
		file, err := a.service.DiscoverLatestValidFile()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), file.Path)
		return nil
	})
}
