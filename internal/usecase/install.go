package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/evaleds/evalup/internal/domain"
	"github.com/evaleds/evalup/internal/ui"
)

// Installer sequences the install flow: acquire the binary (release
// download with a source-build fallback), verify it, write the default
// settings when absent, then check search-path discoverability.
type Installer struct {
	opts       domain.Options
	installDir string
	configDir  string
	fs         domain.FileSystem
	gate       *Gate
	executor   *Executor
	downloader domain.Downloader
	builder    domain.Builder
	verifier   domain.Verifier
	pathEnv    domain.PathEnv
	printer    *ui.Printer
	logger     *zap.Logger
}

// NewInstaller wires the install flow from its collaborators.
func NewInstaller(
	opts domain.Options,
	installDir, configDir string,
	fs domain.FileSystem,
	gate *Gate,
	executor *Executor,
	downloader domain.Downloader,
	builder domain.Builder,
	verifier domain.Verifier,
	pathEnv domain.PathEnv,
	printer *ui.Printer,
	logger *zap.Logger,
) *Installer {
	return &Installer{
		opts:       opts,
		installDir: installDir,
		configDir:  configDir,
		fs:         fs,
		gate:       gate,
		executor:   executor,
		downloader: downloader,
		builder:    builder,
		verifier:   verifier,
		pathEnv:    pathEnv,
		printer:    printer,
		logger:     logger,
	}
}

// Run executes the install. A non-nil error is fatal (exit 1); user
// cancellation returns nil.
func (i *Installer) Run(ctx context.Context) error {
	binPath := i.binaryPath()

	if i.fs.Exists(binPath) && !i.opts.DryRun {
		i.printer.Info("%s is already installed at %s", domain.AppName, binPath)
		if !i.gate.Confirm("Reinstall over the existing binary?", true) {
			i.printer.Info("install cancelled")
			return nil
		}
	}

	if i.opts.DryRun {
		i.describe(binPath)
		return nil
	}

	if err := i.acquireBinary(ctx, binPath); err != nil {
		return err
	}

	if err := i.verifier.Verify(binPath); err != nil {
		return fmt.Errorf("installed binary failed verification: %w", err)
	}
	i.printer.Success("installed %s to %s", domain.AppName, binPath)
	i.logger.Info("binary installed", zap.String("path", binPath))

	i.writeDefaultConfig()
	i.checkPath()

	i.printer.Success("install complete")
	return nil
}

func (i *Installer) binaryPath() string {
	exe := domain.AppName
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}
	return filepath.Join(i.installDir, exe)
}

// acquireBinary downloads the latest release, falling back to a local
// source build. Only a failed fallback is fatal.
func (i *Installer) acquireBinary(ctx context.Context, binPath string) error {
	if err := i.fs.MkdirAll(i.installDir); err != nil {
		return fmt.Errorf("cannot create install dir %s: %w", i.installDir, err)
	}

	if !i.opts.BuildFromSource {
		i.printer.Info("downloading latest %s release...", domain.AppName)
		err := i.downloader.Download(ctx, binPath)
		if err == nil {
			return nil
		}
		i.printer.Warning("download failed (%v); falling back to source build", err)
		i.logger.Warn("release download failed", zap.Error(err))
	} else {
		i.printer.Info("building %s from source...", domain.AppName)
	}

	if err := i.builder.Build(ctx, binPath); err != nil {
		return fmt.Errorf("source build failed: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the settings file only when absent.
// Config failures are warnings: the binary is installed either way.
func (i *Installer) writeDefaultConfig() {
	plan := domain.Plan{
		Category: domain.CategoryConfig,
		Action:   domain.ActionCreate,
		Artifacts: []domain.Artifact{{
			Kind: domain.ArtifactConfigDir,
			Path: i.configDir,
		}},
	}
	i.executor.Apply(plan)
}

// checkPath reports search-path discoverability. The user is always
// told one way or the other; startup files are never edited.
func (i *Installer) checkPath() {
	if i.pathEnv.OnPath(i.installDir) {
		i.printer.Success("%s is on your PATH", i.installDir)
		return
	}

	cmd, rcFile := i.pathEnv.ExportHint(i.installDir)
	i.printer.Warning("%s is not on your PATH", i.installDir)
	i.printer.Plain("Add it by appending this line to %s:", rcFile)
	i.printer.Plain("  %s", cmd)
}

func (i *Installer) describe(binPath string) {
	if i.opts.BuildFromSource {
		i.printer.Info("[dry-run] would build %s from source into %s", domain.AppName, binPath)
	} else {
		i.printer.Info("[dry-run] would download the latest %s release to %s", domain.AppName, binPath)
		i.printer.Muted("falling back to a source build if the download fails")
	}
	i.printer.Info("[dry-run] would verify the installed binary")
	i.writeDefaultConfigDry()
	if i.pathEnv.OnPath(i.installDir) {
		i.printer.Info("[dry-run] %s is already on your PATH", i.installDir)
	} else {
		cmd, rcFile := i.pathEnv.ExportHint(i.installDir)
		i.printer.Info("[dry-run] would suggest adding %s to PATH via %s:", i.installDir, rcFile)
		i.printer.Muted("%s", cmd)
	}
	i.printer.Success("dry run complete - nothing was changed")
}

func (i *Installer) writeDefaultConfigDry() {
	plan := domain.Plan{
		Category: domain.CategoryConfig,
		Action:   domain.ActionCreate,
		DryRun:   true,
		Artifacts: []domain.Artifact{{
			Kind: domain.ArtifactConfigDir,
			Path: i.configDir,
		}},
	}
	i.executor.Apply(plan)
}
