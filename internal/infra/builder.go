package infra

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/evaleds/evalup/internal/domain"
)

const sourceRepoURL = "https://github.com/evaleds/evaleds.git"

// SourceBuilder builds the evaleds binary from a fresh clone of its
// source repository. Used when no prebuilt release is available or the
// user asked for a local build.
type SourceBuilder struct {
	repoURL string
}

// NewSourceBuilder creates a builder against the upstream repository.
func NewSourceBuilder() *SourceBuilder {
	return &SourceBuilder{repoURL: sourceRepoURL}
}

// NewSourceBuilderWithRepo creates a builder against a custom
// repository URL or local path (for testing).
func NewSourceBuilderWithRepo(repoURL string) *SourceBuilder {
	return &SourceBuilder{repoURL: repoURL}
}

// Build clones the source, runs a release build, and installs the
// resulting binary at destPath.
func (b *SourceBuilder) Build(ctx context.Context, destPath string) error {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return fmt.Errorf("git is required for a source build: %w", err)
	}
	cargoPath, err := exec.LookPath("cargo")
	if err != nil {
		return fmt.Errorf("cargo is required for a source build: %w", err)
	}

	workDir, err := os.MkdirTemp("", "evalup-build-*")
	if err != nil {
		return fmt.Errorf("failed to create build dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	srcDir := filepath.Join(workDir, "src")
	if err := runCommand(ctx, workDir, gitPath, "clone", "--depth", "1", b.repoURL, srcDir); err != nil {
		return fmt.Errorf("clone failed: %w", err)
	}

	if err := runCommand(ctx, srcDir, cargoPath, "build", "--release"); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	builtName := domain.AppName
	if runtime.GOOS == "windows" {
		builtName += ".exe"
	}
	built := filepath.Join(srcDir, "target", "release", builtName)
	if _, err := os.Stat(built); err != nil {
		return fmt.Errorf("build produced no binary at %s: %w", built, err)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed to create install dir: %w", err)
	}
	if err := installBinary(built, destPath); err != nil {
		return fmt.Errorf("failed to install binary: %w", err)
	}
	return nil
}

func runCommand(ctx context.Context, dir, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdin = nil
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := bytes.TrimSpace(stderr.Bytes())
		if len(msg) > 0 {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// installBinary copies the binary to destination using the atomic
// write pattern: temp file in the same directory, sync, chmod, rename.
func installBinary(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	dstDir := filepath.Dir(dst)
	tmpFile, err := os.CreateTemp(dstDir, ".evalup-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err = io.Copy(tmpFile, sourceFile); err != nil {
		tmpFile.Close()
		return err
	}
	if err = tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return err
	}
	tmpFile.Close()

	if err = os.Chmod(tmpPath, 0755); err != nil {
		return err
	}
	if err = os.Rename(tmpPath, dst); err != nil {
		return err
	}

	success = true
	return nil
}

// Ensure SourceBuilder implements domain.Builder.
var _ domain.Builder = (*SourceBuilder)(nil)
