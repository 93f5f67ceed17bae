// Package main is the CLI entry point for evalup.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/evaleds/evalup/internal/domain"
	"github.com/evaleds/evalup/internal/infra"
	"github.com/evaleds/evalup/internal/layout"
	"github.com/evaleds/evalup/internal/ui"
	"github.com/evaleds/evalup/internal/usecase"
)

var (
	// Version info (set via ldflags)
	Version   = "0.1.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "evalup",
	Short: "Install and uninstall the evaleds CLI",
	Long: `evalup manages the evaleds footprint on this machine.

It installs the evaleds binary (prebuilt release or local source
build), writes default settings, and checks PATH discoverability.
Uninstall discovers everything evaleds left behind - binary, config
directories, evaluation databases - and removes it behind
per-category confirmations.`,
	Version: Version,
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install evaleds on this machine",
	Long: `Downloads the latest evaleds release for this platform (or builds
it from source with --build-from-source), verifies the binary, writes
default settings if none exist, and tells you how to fix your PATH if
the install directory is not on it.`,
	RunE: runInstall,
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove evaleds from this machine",
	Long: `Scans the known install locations for evaleds artifacts and removes
them. The binary, configuration directories, and data (evaluation
databases) are confirmed separately; declining a category preserves
it. Use --dry-run to see what would happen without changing anything.`,
	RunE: runUninstall,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   runVersion,
}

var (
	flagForce           bool
	flagDryRun          bool
	flagRemoveConfig    bool
	flagRemoveData      bool
	flagRemoveAll       bool
	flagBuildFromSource bool
	flagInstallDir      string
	jsonOutput          bool
)

func init() {
	installCmd.Flags().BoolVar(&flagBuildFromSource, "build-from-source", false, "Skip the release download and build locally")
	installCmd.Flags().StringVar(&flagInstallDir, "install-dir", "", "Directory to install the binary into")
	installCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report actions without performing them")
	installCmd.Flags().BoolVar(&flagForce, "force", false, "Answer yes to every prompt")

	uninstallCmd.Flags().BoolVar(&flagRemoveConfig, "remove-config", false, "Remove configuration without asking")
	uninstallCmd.Flags().BoolVar(&flagRemoveData, "remove-data", false, "Remove data (evaluation databases) without asking")
	uninstallCmd.Flags().BoolVar(&flagRemoveAll, "remove-all", false, "Shorthand for --remove-config --remove-data")
	uninstallCmd.Flags().BoolVar(&flagForce, "force", false, "Answer yes to every prompt")
	uninstallCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report actions without performing them")

	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildOptions constructs the immutable run configuration from parsed
// flags and environment overrides. Nothing downstream reads globals.
func buildOptions() domain.Options {
	opts := domain.Options{
		Force:           flagForce,
		DryRun:          flagDryRun,
		RemoveConfig:    flagRemoveConfig || flagRemoveAll,
		RemoveData:      flagRemoveData || flagRemoveAll,
		BuildFromSource: flagBuildFromSource,
		InstallDir:      flagInstallDir,
		ConfigDir:       os.Getenv("CONFIG_DIR"),
	}
	if opts.InstallDir == "" {
		opts.InstallDir = os.Getenv("INSTALL_DIR")
	}
	return opts
}

func runInstall(cmd *cobra.Command, args []string) error {
	opts := buildOptions()
	logger := createLogger()
	defer func() { _ = logger.Sync() }()

	printer := ui.NewPrinter()
	fs := infra.NewFileSystem()
	candidates := layout.NewCandidateSet(opts)
	gate := usecase.NewGate(ui.NewPrompter(), opts.Force)
	executor := usecase.NewExecutor(fs, printer, logger)

	installer := usecase.NewInstaller(
		opts,
		candidates.InstallDir(),
		candidates.ConfigDir(),
		fs,
		gate,
		executor,
		infra.NewGitHubDownloader(),
		infra.NewSourceBuilder(),
		infra.NewVerifier(),
		infra.NewPathEnv(),
		printer,
		logger,
	)

	// Fatal errors propagate to cobra, which reports them on the
	// diagnostic stream and yields exit code 1.
	return installer.Run(cmd.Context())
}

func runUninstall(cmd *cobra.Command, args []string) error {
	opts := buildOptions()
	logger := createLogger()
	defer func() { _ = logger.Sync() }()

	printer := ui.NewPrinter()
	fs := infra.NewFileSystem()
	candidates := layout.NewCandidateSet(opts)
	gate := usecase.NewGate(ui.NewPrompter(), opts.Force)
	executor := usecase.NewExecutor(fs, printer, logger)
	locator := usecase.NewLocator(fs,
		candidates.Binaries(), candidates.ConfigDirs(), candidates.DataDirs(), logger)

	uninstaller := usecase.NewUninstaller(
		opts,
		locator,
		gate,
		executor,
		infra.NewProcessManager(),
		infra.NewPathEnv(),
		printer,
		logger,
	)

	// Cancellation and a clean system are normal outcomes; the flow
	// never fails once argument parsing has succeeded.
	uninstaller.Run()
	return nil
}

func createLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{filepath.Join(os.TempDir(), "evalup.log")}
	config.ErrorOutputPaths = []string{filepath.Join(os.TempDir(), "evalup.error.log")}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		// Fallback to a no-op logger; user-facing output is styled
		// separately and must not be polluted with log lines.
		logger = zap.NewNop()
	}
	return logger
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("evalup %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
	}
}
