// Package layout enumerates the static candidate locations where an
// evaleds installation may leave artifacts. The lists are ordered for
// display; every candidate is always probed, none short-circuits.
package layout

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/evaleds/evalup/internal/domain"
)

// CandidateSet produces the candidate paths for the current platform.
type CandidateSet struct {
	homeDir string
	goos    string
	opts    domain.Options
}

// NewCandidateSet builds a candidate set for the running platform,
// honoring install/config dir overrides from opts.
func NewCandidateSet(opts domain.Options) *CandidateSet {
	home, _ := os.UserHomeDir()
	return &CandidateSet{homeDir: home, goos: runtime.GOOS, opts: opts}
}

// NewCandidateSetWithHome builds a candidate set rooted at a custom
// home directory and platform (for testing).
func NewCandidateSetWithHome(home, goos string, opts domain.Options) *CandidateSet {
	return &CandidateSet{homeDir: home, goos: goos, opts: opts}
}

// InstallDir returns the directory the binary should be installed to:
// the override when set, otherwise the first binary-dir candidate.
func (c *CandidateSet) InstallDir() string {
	return c.Binaries()[0].Path
}

// ConfigDir returns the directory the default config should be written
// to: the override when set, otherwise the first config-dir candidate.
func (c *CandidateSet) ConfigDir() string {
	return c.ConfigDirs()[0].Path
}

// Binaries returns the ordered binary-dir candidates.
func (c *CandidateSet) Binaries() []domain.CandidatePath {
	var out []domain.CandidatePath
	if c.opts.InstallDir != "" {
		out = append(out, domain.CandidatePath{
			Kind: domain.KindBinaryDir, Path: c.opts.InstallDir, Source: "install dir override",
		})
	}
	if c.goos == "windows" {
		out = append(out,
			domain.CandidatePath{Kind: domain.KindBinaryDir, Path: filepath.Join(c.localAppData(), "Programs", domain.AppName), Source: "user programs"},
			domain.CandidatePath{Kind: domain.KindBinaryDir, Path: filepath.Join(c.homeDir, "bin"), Source: "home bin"},
		)
		return out
	}
	out = append(out,
		domain.CandidatePath{Kind: domain.KindBinaryDir, Path: filepath.Join(c.homeDir, ".local", "bin"), Source: "user bin"},
		domain.CandidatePath{Kind: domain.KindBinaryDir, Path: "/usr/local/bin", Source: "system bin"},
		domain.CandidatePath{Kind: domain.KindBinaryDir, Path: filepath.Join(c.homeDir, "bin"), Source: "home bin"},
	)
	return out
}

// ConfigDirs returns the ordered config-dir candidates. The hidden
// home-dir layout (~/.evaleds) is a legacy location that also hosts
// the evaluation database, so it stays on the list.
func (c *CandidateSet) ConfigDirs() []domain.CandidatePath {
	var out []domain.CandidatePath
	if c.opts.ConfigDir != "" {
		out = append(out, domain.CandidatePath{
			Kind: domain.KindConfigDir, Path: c.opts.ConfigDir, Source: "config dir override",
		})
	}
	if c.goos == "windows" {
		out = append(out,
			domain.CandidatePath{Kind: domain.KindConfigDir, Path: filepath.Join(c.roamingAppData(), domain.AppName), Source: "appdata"},
			domain.CandidatePath{Kind: domain.KindConfigDir, Path: filepath.Join(c.homeDir, "."+domain.AppName), Source: "legacy home"},
		)
		return out
	}
	out = append(out,
		domain.CandidatePath{Kind: domain.KindConfigDir, Path: filepath.Join(c.xdgConfigHome(), domain.AppName), Source: "XDG config"},
		domain.CandidatePath{Kind: domain.KindConfigDir, Path: filepath.Join(c.homeDir, "."+domain.AppName), Source: "legacy home"},
	)
	return out
}

// DataDirs returns the ordered data-dir candidates. Database files
// colocated inside config dirs are discovered separately by the
// locator's database probe.
func (c *CandidateSet) DataDirs() []domain.CandidatePath {
	if c.goos == "windows" {
		return []domain.CandidatePath{
			{Kind: domain.KindDataDir, Path: filepath.Join(c.localAppData(), domain.AppName), Source: "local appdata"},
		}
	}
	return []domain.CandidatePath{
		{Kind: domain.KindDataDir, Path: filepath.Join(c.xdgDataHome(), domain.AppName), Source: "XDG data"},
	}
}

func (c *CandidateSet) xdgConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(c.homeDir, ".config")
}

func (c *CandidateSet) xdgDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	return filepath.Join(c.homeDir, ".local", "share")
}

func (c *CandidateSet) localAppData() string {
	if v := os.Getenv("LOCALAPPDATA"); v != "" {
		return v
	}
	return filepath.Join(c.homeDir, "AppData", "Local")
}

func (c *CandidateSet) roamingAppData() string {
	if v := os.Getenv("APPDATA"); v != "" {
		return v
	}
	return filepath.Join(c.homeDir, "AppData", "Roaming")
}
