package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// completeDataFiles completes paths of allowed files in the data directory.
func completeDataFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}

	entries, err := os.ReadDir(settings.Scope.DataDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() || !settings.Scope.Allows(e.Name()) {
			continue
		}
		p := filepath.Join(settings.Scope.DataDir, e.Name())
		if strings.HasPrefix(p, toComplete) || strings.HasPrefix(e.Name(), toComplete) {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)

	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeExtensions provides shell completion for the --ext flag.
func completeExtensions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(tabwatch.DefaultAllowedExtensions(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeOutputFormats provides shell completion for the --output flag.
func completeOutputFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(outputFormats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}
