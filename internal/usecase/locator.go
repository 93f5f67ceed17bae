// Package usecase contains application business logic: discovery,
// confirmation gates, plan execution, and the install/uninstall flows.
package usecase

import (
	"path/filepath"
	"runtime"
	"sort"

	"go.uber.org/zap"

	"github.com/evaleds/evalup/internal/domain"
)

// Locator scans the static candidate locations and returns everything
// currently installed. Discovery is read-only and idempotent: two
// passes without intervening mutation yield identical inventories.
type Locator struct {
	fs         domain.FileSystem
	binDirs    []domain.CandidatePath
	configDirs []domain.CandidatePath
	dataDirs   []domain.CandidatePath
	exeName    string
	logger     *zap.Logger
}

// NewLocator creates a locator over the given candidate lists.
func NewLocator(
	fs domain.FileSystem,
	binDirs, configDirs, dataDirs []domain.CandidatePath,
	logger *zap.Logger,
) *Locator {
	exe := domain.AppName
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}
	return &Locator{
		fs:         fs,
		binDirs:    binDirs,
		configDirs: configDirs,
		dataDirs:   dataDirs,
		exeName:    exe,
		logger:     logger,
	}
}

// BinaryDirs lists the candidate binary directories this locator scans.
func (l *Locator) BinaryDirs() []string {
	dirs := make([]string, 0, len(l.binDirs))
	for _, cand := range l.binDirs {
		dirs = append(dirs, cand.Path)
	}
	return dirs
}

// Discover produces the deduplicated inventory of installed artifacts.
func (l *Locator) Discover() domain.Inventory {
	return domain.Inventory{
		Binaries:   l.findBinaries(),
		ConfigDirs: l.findConfigDirs(),
		DataDirs:   l.findDataArtifacts(),
	}
}

// findBinaries checks every binary-dir candidate for the exact
// executable name, plus the shell search path, deduplicating by
// canonical absolute path.
func (l *Locator) findBinaries() []domain.Artifact {
	var found []domain.Artifact
	seen := make(map[string]bool)

	add := func(path string, origin domain.CandidatePath) {
		canonical := l.fs.Canonical(path)
		if seen[canonical] {
			return
		}
		seen[canonical] = true
		found = append(found, domain.Artifact{
			Kind:   domain.ArtifactBinary,
			Path:   canonical,
			Origin: origin,
		})
	}

	for _, cand := range l.binDirs {
		path := filepath.Join(cand.Path, l.exeName)
		if l.fs.Exists(path) && !l.fs.IsDir(path) {
			add(path, cand)
		}
	}

	if resolved, err := l.fs.LookPath(domain.AppName); err == nil {
		add(resolved, domain.CandidatePath{
			Kind:   domain.KindBinaryDir,
			Path:   filepath.Dir(resolved),
			Source: "search path",
		})
	}

	return found
}

// findConfigDirs checks each config-dir candidate for existence.
// Directory presence is sufficient; contents are not inspected here.
func (l *Locator) findConfigDirs() []domain.Artifact {
	var found []domain.Artifact
	seen := make(map[string]bool)

	for _, cand := range l.configDirs {
		if !l.fs.IsDir(cand.Path) {
			continue
		}
		canonical := l.fs.Canonical(cand.Path)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		found = append(found, domain.Artifact{
			Kind:   domain.ArtifactConfigDir,
			Path:   canonical,
			Origin: cand,
		})
	}

	return found
}

// findDataArtifacts checks each data-dir candidate for existence and
// additionally probes every config-dir candidate for database files
// (.db plus .db-* journal/WAL side-files). Database files are user
// data, not configuration, regardless of where they are colocated.
func (l *Locator) findDataArtifacts() []domain.Artifact {
	var found []domain.Artifact
	seen := make(map[string]bool)

	for _, cand := range l.dataDirs {
		if !l.fs.IsDir(cand.Path) {
			continue
		}
		canonical := l.fs.Canonical(cand.Path)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		found = append(found, domain.Artifact{
			Kind:   domain.ArtifactDataDir,
			Path:   canonical,
			Origin: cand,
		})
	}

	for _, cand := range l.configDirs {
		if !l.fs.IsDir(cand.Path) {
			continue
		}
		files := l.databaseFiles(cand.Path)
		if len(files) == 0 {
			continue
		}
		canonical := l.fs.Canonical(cand.Path)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		found = append(found, domain.Artifact{
			Kind:   domain.ArtifactDatabaseFiles,
			Path:   canonical,
			Files:  files,
			Origin: cand,
		})
	}

	return found
}

// databaseFiles returns database files one level inside dir, sorted
// for deterministic output. Glob errors read as no matches.
func (l *Locator) databaseFiles(dir string) []string {
	var files []string
	for _, pattern := range []string{"*.db", "*.db-*"} {
		matches, err := l.fs.Glob(filepath.Join(dir, pattern))
		if err != nil {
			l.logger.Warn("database probe failed",
				zap.String("dir", dir),
				zap.String("pattern", pattern),
				zap.Error(err))
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files
}
