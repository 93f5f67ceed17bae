package usecase

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evaleds/evalup/internal/domain"
)

// mockFileSystem implements domain.FileSystem over an in-memory tree.
type mockFileSystem struct {
	files      map[string]bool   // path -> isDir
	canonicals map[string]string // symlink overrides
	lookPath   string            // result of LookPath, "" means not found
	removeErr  map[string]error  // per-path injected failures

	removed  []string
	mkdirs   []string
	written  map[string][]byte
	mutation int
}

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{
		files:      make(map[string]bool),
		canonicals: make(map[string]string),
		removeErr:  make(map[string]error),
		written:    make(map[string][]byte),
	}
}

func (m *mockFileSystem) addFile(path string) { m.files[path] = false }
func (m *mockFileSystem) addDir(path string)  { m.files[path] = true }

func (m *mockFileSystem) Exists(path string) bool {
	_, ok := m.files[path]
	return ok
}

func (m *mockFileSystem) IsDir(path string) bool {
	isDir, ok := m.files[path]
	return ok && isDir
}

func (m *mockFileSystem) Remove(path string) error {
	if err := m.removeErr[path]; err != nil {
		return err
	}
	m.mutation++
	m.removed = append(m.removed, path)
	delete(m.files, path)
	return nil
}

func (m *mockFileSystem) RemoveAll(path string) error {
	if err := m.removeErr[path]; err != nil {
		return err
	}
	m.mutation++
	m.removed = append(m.removed, path)
	for p := range m.files {
		if p == path || strings.HasPrefix(p, path+string(filepath.Separator)) {
			delete(m.files, p)
		}
	}
	return nil
}

func (m *mockFileSystem) MkdirAll(path string) error {
	m.mutation++
	m.mkdirs = append(m.mkdirs, path)
	m.files[path] = true
	return nil
}

func (m *mockFileSystem) Glob(pattern string) ([]string, error) {
	dir := filepath.Dir(pattern)
	base := filepath.Base(pattern)
	var matches []string
	for p, isDir := range m.files {
		if isDir || filepath.Dir(p) != dir {
			continue
		}
		ok, err := filepath.Match(base, filepath.Base(p))
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func (m *mockFileSystem) Canonical(path string) string {
	if c, ok := m.canonicals[path]; ok {
		return c
	}
	return filepath.Clean(path)
}

func (m *mockFileSystem) LookPath(name string) (string, error) {
	if m.lookPath == "" {
		return "", &notFoundError{name: name}
	}
	return m.lookPath, nil
}

func (m *mockFileSystem) WriteFileIfAbsent(path string, data []byte, perm uint32) (bool, error) {
	if err := m.removeErr[path]; err != nil {
		return false, err
	}
	if m.Exists(path) {
		return false, nil
	}
	m.mutation++
	m.written[path] = data
	m.files[path] = false
	return true, nil
}

type notFoundError struct{ name string }

func (e *notFoundError) Error() string { return e.name + ": executable file not found" }

var _ domain.FileSystem = (*mockFileSystem)(nil)

// scriptedPrompter implements domain.Prompter with canned answers.
// Answers are consumed in order; running out falls back to the default.
type scriptedPrompter struct {
	answers   []bool
	questions []string
}

func (s *scriptedPrompter) Ask(question string, defaultYes bool) bool {
	s.questions = append(s.questions, question)
	if len(s.answers) == 0 {
		return defaultYes
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer
}

var _ domain.Prompter = (*scriptedPrompter)(nil)

// mockProcessManager implements domain.ProcessManager for testing.
type mockProcessManager struct {
	pids         []int
	findErr      error
	terminateErr error
	terminated   []int
}

func (m *mockProcessManager) FindByName(pattern string) ([]int, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.pids, nil
}

func (m *mockProcessManager) Terminate(pid int) error {
	if m.terminateErr != nil {
		return m.terminateErr
	}
	m.terminated = append(m.terminated, pid)
	return nil
}

func (m *mockProcessManager) IsRunning(pid int) bool { return false }

var _ domain.ProcessManager = (*mockProcessManager)(nil)

// mockPathEnv implements domain.PathEnv for testing.
type mockPathEnv struct {
	onPath   map[string]bool
	mentions map[string][]string
	scanned  []string
}

func (m *mockPathEnv) OnPath(dir string) bool { return m.onPath[dir] }

func (m *mockPathEnv) ExportHint(dir string) (string, string) {
	return `export PATH="$PATH:` + dir + `"`, "/home/user/.bashrc"
}

func (m *mockPathEnv) StartupFileMentions(dir string) ([]string, error) {
	m.scanned = append(m.scanned, dir)
	return m.mentions[dir], nil
}

var _ domain.PathEnv = (*mockPathEnv)(nil)

// mockDownloader implements domain.Downloader for testing.
type mockDownloader struct {
	err   error
	calls int
	dest  string
	fs    *mockFileSystem
}

func (m *mockDownloader) Download(ctx context.Context, destPath string) error {
	m.calls++
	m.dest = destPath
	if m.err != nil {
		return m.err
	}
	if m.fs != nil {
		m.fs.addFile(destPath)
	}
	return nil
}

var _ domain.Downloader = (*mockDownloader)(nil)

// mockBuilder implements domain.Builder for testing.
type mockBuilder struct {
	err   error
	calls int
	fs    *mockFileSystem
}

func (m *mockBuilder) Build(ctx context.Context, destPath string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	if m.fs != nil {
		m.fs.addFile(destPath)
	}
	return nil
}

var _ domain.Builder = (*mockBuilder)(nil)

// mockVerifier implements domain.Verifier for testing.
type mockVerifier struct {
	err error
}

func (m *mockVerifier) Verify(path string) error { return m.err }

var _ domain.Verifier = (*mockVerifier)(nil)
