package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tabwatch/internal/detect"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

const (
	outputTable = "table"
	outputCSV   = "csv"
)

var outputFormats = []string{outputTable, outputCSV}

var showFlags struct {
	output string
	limit  int
}

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Load a data file and print it",
	Long: `Show loads the newest valid file in the data directory (or the given
path) and prints it. A summary line with the detected encoding and
delimiter goes to stderr; the table itself goes to stdout.

Examples:
  tabwatch show
  tabwatch show --limit 20
  tabwatch show ./export.txt --output csv > export.csv`,
	Args:              OptionalFilePath,
	ValidArgsFunction: completeDataFiles,
	RunE:              runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showFlags.output, "output", "o", outputTable, "Output format: table or csv")
	showCmd.Flags().IntVarP(&showFlags.limit, "limit", "n", 0, "Print at most this many rows (0 for all)")
	_ = showCmd.RegisterFlagCompletionFunc("output", completeOutputFormats)
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if showFlags.output != outputTable && showFlags.output != outputCSV {
		return fmt.Errorf("invalid argument %q for --output: must be one of %v", showFlags.output, outputFormats)
	}
	if showFlags.limit < 0 {
		return fmt.Errorf("invalid argument %d for --limit: must not be negative", showFlags.limit)
	}

	return runWithApp(cmd, func(a *app) error {
		snap, err := a.snapshotFor(args)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), describeSnapshot(snap))

		view := limitRows(snap.Table, showFlags.limit)
		if showFlags.output == outputCSV {
			return writeCSV(cmd.OutOrStdout(), view)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(view))
		if view.NumRows() < snap.Table.NumRows() {
			fmt.Fprintf(cmd.ErrOrStderr(), "(showing %d of %d rows)\n", view.NumRows(), snap.Table.NumRows())
		}
		return nil
	})
}

// describeSnapshot summarizes a loaded file on one line.
func describeSnapshot(snap *tabwatch.Snapshot) string {
	t := snap.Table
	s := fmt.Sprintf("%s: %d rows × %d columns, %s", snap.File.Path, t.NumRows(), t.NumColumns(), t.Format)
	if t.Encoding != "" {
		s += ", encoding " + t.Encoding
	}
	if t.Delimiter != 0 {
		s += ", delimiter " + detect.DelimiterName(t.Delimiter)
	}
	return s + ", modified " + snap.File.ModifiedAt.Format("2006-01-02 15:04:05")
}

// limitRows returns t or a shallow copy holding its first n rows.
func limitRows(t *tabwatch.Table, n int) *tabwatch.Table {
	if n <= 0 || n >= t.NumRows() {
		return t
	}
	out := *t
	out.Rows = t.Rows[:n]
	return &out
}
