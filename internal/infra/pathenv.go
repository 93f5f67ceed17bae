package infra

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/evaleds/evalup/internal/domain"
)

// PathEnvImpl implements domain.PathEnv. It only ever reads startup
// files; fixing the search path is left to the user via ExportHint.
type PathEnvImpl struct {
	homeDir string
	goos    string
	shell   string
	pathVar string
}

// NewPathEnv creates a path environment inspector for this host.
func NewPathEnv() domain.PathEnv {
	home, _ := os.UserHomeDir()
	return &PathEnvImpl{
		homeDir: home,
		goos:    runtime.GOOS,
		shell:   os.Getenv("SHELL"),
		pathVar: os.Getenv("PATH"),
	}
}

// NewPathEnvWithState creates an inspector with explicit state (for testing).
func NewPathEnvWithState(home, goos, shell, pathVar string) domain.PathEnv {
	return &PathEnvImpl{homeDir: home, goos: goos, shell: shell, pathVar: pathVar}
}

// OnPath reports whether dir is on the effective search path.
// Entries are compared canonically so symlinked duplicates match.
func (pe *PathEnvImpl) OnPath(dir string) bool {
	want := canonicalize(dir)
	for _, entry := range filepath.SplitList(pe.pathVar) {
		if entry == "" {
			continue
		}
		if canonicalize(entry) == want {
			return true
		}
	}
	return false
}

// ExportHint returns the exact command to add dir to the search path
// and the startup file it belongs in.
func (pe *PathEnvImpl) ExportHint(dir string) (string, string) {
	if pe.goos == "windows" {
		cmd := fmt.Sprintf(`[Environment]::SetEnvironmentVariable("Path", $env:Path + ";%s", "User")`, dir)
		return cmd, "PowerShell profile"
	}
	switch shellName(pe.shell) {
	case "fish":
		return fmt.Sprintf("fish_add_path %s", dir),
			filepath.Join(pe.homeDir, ".config", "fish", "config.fish")
	case "zsh":
		return fmt.Sprintf(`export PATH="$PATH:%s"`, dir),
			filepath.Join(pe.homeDir, ".zshrc")
	default:
		return fmt.Sprintf(`export PATH="$PATH:%s"`, dir),
			filepath.Join(pe.homeDir, ".bashrc")
	}
}

// StartupFileMentions scans known startup files for lines mentioning
// dir or the application name. Unreadable files are skipped.
func (pe *PathEnvImpl) StartupFileMentions(dir string) ([]string, error) {
	var mentions []string
	for _, rc := range pe.startupFiles() {
		found, err := fileMentions(rc, dir, domain.AppName)
		if err != nil {
			continue
		}
		if found {
			mentions = append(mentions, rc)
		}
	}
	return mentions, nil
}

func (pe *PathEnvImpl) startupFiles() []string {
	if pe.goos == "windows" {
		return []string{
			filepath.Join(pe.homeDir, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1"),
			filepath.Join(pe.homeDir, "Documents", "WindowsPowerShell", "Microsoft.PowerShell_profile.ps1"),
		}
	}
	return []string{
		filepath.Join(pe.homeDir, ".bashrc"),
		filepath.Join(pe.homeDir, ".bash_profile"),
		filepath.Join(pe.homeDir, ".zshrc"),
		filepath.Join(pe.homeDir, ".profile"),
		filepath.Join(pe.homeDir, ".config", "fish", "config.fish"),
	}
}

func fileMentions(path string, needles ...string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		for _, needle := range needles {
			if needle != "" && strings.Contains(line, needle) {
				return true, nil
			}
		}
	}
	return false, scanner.Err()
}

func canonicalize(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return filepath.Clean(resolved)
	}
	return abs
}

func shellName(shell string) string {
	return strings.TrimPrefix(filepath.Base(shell), "-")
}

// Ensure PathEnvImpl implements domain.PathEnv.
var _ domain.PathEnv = (*PathEnvImpl)(nil)
