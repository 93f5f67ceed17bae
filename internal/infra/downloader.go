package infra

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/evaleds/evalup/internal/domain"
)

const (
	githubOwner   = "evaleds"
	githubRepo    = "evaleds"
	githubAPIURL  = "https://api.github.com/repos/%s/%s/releases/latest"
	githubTimeout = 30 * time.Second
)

// GitHubRelease represents a GitHub release response.
type GitHubRelease struct {
	TagName string        `json:"tag_name"`
	Assets  []GitHubAsset `json:"assets"`
}

// GitHubAsset represents a release asset.
type GitHubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// GitHubDownloader fetches evaleds release binaries from GitHub.
type GitHubDownloader struct {
	client  *http.Client
	owner   string
	repo    string
	baseURL string
}

// NewGitHubDownloader creates a new GitHub downloader.
func NewGitHubDownloader() *GitHubDownloader {
	return &GitHubDownloader{
		client: &http.Client{Timeout: githubTimeout},
		owner:  githubOwner,
		repo:   githubRepo,
	}
}

// NewGitHubDownloaderWithBaseURL creates a downloader pointed at a
// custom API endpoint (for testing against httptest servers).
func NewGitHubDownloaderWithBaseURL(baseURL string) *GitHubDownloader {
	return &GitHubDownloader{
		client:  &http.Client{Timeout: githubTimeout},
		owner:   githubOwner,
		repo:    githubRepo,
		baseURL: baseURL,
	}
}

// Download fetches the latest release binary for this platform into destPath.
func (d *GitHubDownloader) Download(ctx context.Context, destPath string) error {
	release, err := d.getLatestRelease(ctx)
	if err != nil {
		return err
	}

	asset, err := d.findAsset(release)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.BrowserDownloadURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp("", "evalup-download-*.tar.gz")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write download: %w", err)
	}
	tmpFile.Close()

	if err := d.extractBinary(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to extract binary: %w", err)
	}

	if err := os.Chmod(destPath, 0755); err != nil {
		return fmt.Errorf("failed to chmod: %w", err)
	}

	return nil
}

// getLatestRelease fetches the latest release info from GitHub.
func (d *GitHubDownloader) getLatestRelease(ctx context.Context) (*GitHubRelease, error) {
	url := fmt.Sprintf(githubAPIURL, d.owner, d.repo)
	if d.baseURL != "" {
		url = d.baseURL + "/releases/latest"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "evalup")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to parse release: %w", err)
	}

	return &release, nil
}

// findAsset finds the matching asset for the current platform.
// Asset names follow evaleds_<version>_<goos>_<goarch>.tar.gz.
func (d *GitHubDownloader) findAsset(release *GitHubRelease) (*GitHubAsset, error) {
	arch := runtime.GOARCH
	goos := runtime.GOOS

	for i := range release.Assets {
		asset := &release.Assets[i]
		if strings.Contains(asset.Name, goos) && strings.Contains(asset.Name, arch) {
			return asset, nil
		}
	}

	return nil, fmt.Errorf("no asset found for %s/%s", goos, arch)
}

// extractBinary extracts the evaleds binary from a tar.gz archive.
func (d *GitHubDownloader) extractBinary(archivePath, destPath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if header.Typeflag == tar.TypeReg &&
			(header.Name == domain.AppName || strings.HasSuffix(header.Name, "/"+domain.AppName)) {

			if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
				return err
			}

			outFile, err := os.Create(destPath)
			if err != nil {
				return err
			}
			defer outFile.Close()

			if _, err := io.Copy(outFile, tr); err != nil {
				return err
			}

			return nil
		}
	}

	return fmt.Errorf("%s binary not found in archive", domain.AppName)
}

// Ensure GitHubDownloader implements domain.Downloader.
var _ domain.Downloader = (*GitHubDownloader)(nil)
