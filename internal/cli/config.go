package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tabwatch/internal/config"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

var configFlags struct {
	write bool
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config [dir]",
	Short: "Print or save the effective configuration",
	Long: `Config resolves the configuration the other commands would use (flags,
environment, tabwatch.yaml, defaults) and prints it as YAML.

With --write it saves the result as tabwatch.yaml in the given directory
(default: current directory). An existing file is kept unless --force is set.

Examples:
  # See what tabwatch would use
  tabwatch config

  # Pin the current flags into a config file
  tabwatch config --dir /srv/incoming --max-size-mb 200 --write`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configFlags.write, "write", false, "Save to tabwatch.yaml instead of printing")
	configCmd.Flags().BoolVar(&configFlags.force, "force", false, "Overwrite an existing tabwatch.yaml")
	rootCmd.AddCommand(configCmd)
}

// fileConfigFor converts resolved settings back into file form.
func fileConfigFor(s config.Settings) *config.FileConfig {
	maxMB := s.Scope.MaxFileSizeMB
	detectBytes := s.Scope.EncodingDetectBytes
	return &config.FileConfig{
		DataDir:             s.Scope.DataDir,
		MaxFileSizeMB:       &maxMB,
		AllowedExtensions:   append([]string(nil), s.Scope.AllowedExtensions...),
		EncodingDetectBytes: &detectBytes,
		LogFile:             s.LogFile,
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	cfg := fileConfigFor(settings)

	if !configFlags.write {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}
	path := filepath.Join(targetDir, config.ConfigFileName)

	if _, err := config.LoadFile(path); !errors.Is(err, config.ErrConfigNotFound) && !configFlags.force {
		return fmt.Errorf("%w: %s already exists, use --force to overwrite", tabwatch.ErrInvalidConfig, path)
	}

	if err := config.Save(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: directory %s does not exist", tabwatch.ErrInvalidConfig, targetDir)
		}
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
	return nil
}
