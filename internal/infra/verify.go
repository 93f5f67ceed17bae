package infra

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/evaleds/evalup/internal/domain"
)

// BinaryVerifier implements domain.Verifier by checking the installed
// binary exists, is executable, and answers --version.
type BinaryVerifier struct{}

// NewVerifier creates a binary verifier.
func NewVerifier() domain.Verifier {
	return &BinaryVerifier{}
}

// Verify returns an error when the binary at path is unusable.
func (v *BinaryVerifier) Verify(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("binary missing: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a binary", path)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%s is not executable", path)
	}

	cmd := exec.Command(path, "--version")
	cmd.Stdin = nil
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("binary failed to report version: %w", err)
	}
	return nil
}

// Ensure BinaryVerifier implements domain.Verifier.
var _ domain.Verifier = (*BinaryVerifier)(nil)
