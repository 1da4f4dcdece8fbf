package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tabwatch/internal/config"
	"github.com/vvka-141/tabwatch/internal/files/filesystem"
	"github.com/vvka-141/tabwatch/internal/files/locator"
	"github.com/vvka-141/tabwatch/internal/files/validator"
	"github.com/vvka-141/tabwatch/internal/loader"
	"github.com/vvka-141/tabwatch/internal/logging"
	"github.com/vvka-141/tabwatch/internal/persist"
	"github.com/vvka-141/tabwatch/internal/services"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// scopeFlags holds the persistent flags that shape the scope.
type scopeFlags struct {
	configPath  string
	dataDir     string
	maxSizeMB   float64
	extensions  []string
	detectBytes int
	logFile     string
}

var globalFlags scopeFlags

func addScopeFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&globalFlags.configPath, "config", "", "Path to a config file (default: ./"+config.ConfigFileName+" if present)")
	f.StringVar(&globalFlags.dataDir, "dir", tabwatch.DefaultDataDir, "Directory to watch for data files")
	f.Float64Var(&globalFlags.maxSizeMB, "max-size-mb", tabwatch.DefaultMaxFileSizeMB, "Largest file size accepted, in MB")
	f.StringSliceVar(&globalFlags.extensions, "ext", tabwatch.DefaultAllowedExtensions(), "Allowed file extensions (comma-separated or repeated)")
	f.IntVar(&globalFlags.detectBytes, "detect-bytes", tabwatch.DefaultEncodingDetectBytes, "Bytes sampled for encoding detection")
	f.StringVar(&globalFlags.logFile, "log-file", "", "Also append log lines to this file")

	_ = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	_ = cmd.MarkPersistentFlagDirname("dir")
	_ = cmd.RegisterFlagCompletionFunc("ext", completeExtensions)
}

// overridesFromFlags returns only the flags the user actually set.
func overridesFromFlags(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("dir") {
		o.DataDir = &globalFlags.dataDir
	}
	if flags.Changed("max-size-mb") {
		o.MaxFileSizeMB = &globalFlags.maxSizeMB
	}
	if flags.Changed("ext") {
		o.AllowedExtensions = globalFlags.extensions
	}
	if flags.Changed("detect-bytes") {
		o.EncodingDetectBytes = &globalFlags.detectBytes
	}
	if flags.Changed("log-file") {
		o.LogFile = &globalFlags.logFile
	}
	return o
}

// resolveSettings loads .env, the config file, the environment and flags.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to get working directory: %w", err)
	}

	if err := config.LoadDotEnv(wd); err != nil {
		return config.Settings{}, fmt.Errorf("%w: failed to read .env: %v", tabwatch.ErrInvalidConfig, err)
	}

	return config.Resolve(config.ResolveOptions{
		ConfigPath: globalFlags.configPath,
		WorkDir:    wd,
		Overrides:  overridesFromFlags(cmd),
	})
}

// app wires the pipeline for one command invocation.
type app struct {
	settings  config.Settings
	logger    tabwatch.Logger
	validator *validator.Validator
	service   *services.DiscoveryService
	saver     *persist.Saver
	closers   []io.Closer
}

func newApp(cmd *cobra.Command) (*app, error) {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}

	console := logging.NewConsoleLogger(getVerboseFlag(cmd))
	a := &app{settings: settings, logger: console}

	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot open log file %s: %v", tabwatch.ErrInvalidConfig, settings.LogFile, err)
		}
		a.closers = append(a.closers, f)
		a.logger = console.WithFile(f)
	}

	scope := settings.Scope
	fsProvider := filesystem.NewOSFileSystem()
	a.validator = validator.New(scope, fsProvider, a.logger)
	a.service = services.NewDiscoveryService(
		scope,
		locator.New(fsProvider, a.logger),
		a.validator,
		loader.New(scope, fsProvider, a.logger),
		a.logger,
	)
	a.saver = persist.New(fsProvider, a.logger)

	a.logger.Verbose("data directory: %s, max size: %g MB, extensions: %v", scope.DataDir, scope.MaxFileSizeMB, scope.AllowedExtensions)
	return a, nil
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}

// runWithApp builds the app, runs fn and logs any failure before returning it.
func runWithApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if err := fn(a); err != nil {
		a.logger.Error("%s failed: %v", cmd.Name(), err)
		return err
	}
	return nil
}

// snapshotFor opens path when given, otherwise discovers the newest file.
func (a *app) snapshotFor(args []string) (*tabwatch.Snapshot, error) {
	if len(args) == 1 {
		return a.service.Open(args[0])
	}
	return a.service.Refresh()
}
