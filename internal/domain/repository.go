package domain

import "context"

// ProcessManager handles OS process operations.
// Implementation: uses gopsutil for cross-platform support.
type ProcessManager interface {
	// FindByName returns PIDs of processes whose name matches pattern,
	// excluding the current process.
	FindByName(pattern string) ([]int, error)

	// Terminate asks a process to exit (SIGTERM), escalating to kill
	// if it is still alive shortly after.
	Terminate(pid int) error

	// IsRunning checks if a PID exists and is running.
	IsRunning(pid int) bool
}

// FileSystem handles filesystem operations behind the executor and
// locator. Implementations must not follow symlinked directories
// outside the paths they are given.
type FileSystem interface {
	// Exists checks if a path exists.
	Exists(path string) bool

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool

	// Remove deletes a single file.
	Remove(path string) error

	// RemoveAll deletes a file or directory recursively.
	RemoveAll(path string) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// Glob returns paths matching a shell pattern, one level deep.
	Glob(pattern string) ([]string, error)

	// Canonical resolves symlinks and returns the absolute path.
	// Falls back to the cleaned absolute path when resolution fails.
	Canonical(path string) string

	// LookPath resolves an executable name via the shell search path.
	LookPath(name string) (string, error)

	// WriteFileIfAbsent writes data to path only when path does not
	// already exist. Returns true when the file was written.
	WriteFileIfAbsent(path string, data []byte, perm uint32) (bool, error)
}

// Prompter is the synchronous ask capability injected into gates so
// tests can substitute scripted answers for interactive input.
type Prompter interface {
	// Ask presents a yes/no question with the default shown in the
	// prompt and blocks until the user supplies a valid answer.
	Ask(question string, defaultYes bool) bool
}

// PathEnv inspects the shell search path and startup files.
// It never rewrites startup files; fixes are printed as instructions.
type PathEnv interface {
	// OnPath reports whether dir is on the effective search path,
	// comparing canonicalized entries.
	OnPath(dir string) bool

	// ExportHint returns the exact command the user should run to put
	// dir on their search path, and the startup file to add it to.
	ExportHint(dir string) (command string, rcFile string)

	// StartupFileMentions scans known shell startup files for lines
	// mentioning dir or the application name and returns the files
	// that contain such lines.
	StartupFileMentions(dir string) ([]string, error)
}

// Downloader fetches a prebuilt release binary for this platform.
type Downloader interface {
	// Download fetches the latest release binary into destPath.
	Download(ctx context.Context, destPath string) error
}

// Builder produces the application binary from source, used when no
// prebuilt release is available or the user asked for a local build.
type Builder interface {
	// Build compiles the application and installs the binary at destPath.
	Build(ctx context.Context, destPath string) error
}

// Verifier checks that an installed binary is usable.
type Verifier interface {
	// Verify returns an error when the binary at path is missing,
	// not executable, or fails to report its version.
	Verify(path string) error
}
