// Package artifact_manager stores scrape artifacts on disk, keyed by URL,
// and answers freshness questions for the scrape cache.
package artifact_manager

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	DefaultBaseDir = "seoaudit-cache"
	RawHTMLDir     = "raw"
	ScrapesDir     = "scrapes"
)

// Manager handles storage and retrieval of web artifacts.
//
// maxAge > 0 expires artifacts older than maxAge, maxAge < 0 never expires,
// and maxAge == 0 treats everything as stale (writes still happen).
type Manager struct {
	baseDir string
	maxAge  time.Duration
}

// NewManager creates a Manager and ensures its directories exist.
func NewManager(baseDir string, maxAge time.Duration) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	for _, dir := range []string{RawHTMLDir, ScrapesDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0750); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}
	return &Manager{baseDir: baseDir, maxAge: maxAge}, nil
}

// normalizeURL creates a canonical representation of a URL for consistent hashing.
func normalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	u.Host = strings.ToLower(u.Host)

	if u.RawQuery != "" {
		params := u.Query()
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sortedQuery := url.Values{}
		for _, k := range keys {
			for _, v := range params[k] {
				sortedQuery.Add(k, v)
			}
		}
		u.RawQuery = sortedQuery.Encode()
	}
	u.Fragment = ""

	return u.String(), nil
}

// getShortHash returns a 12-char hex hash of a normalized URL.
func getShortHash(normalizedURL string) string {
	hash := sha256.Sum256([]byte(normalizedURL))
	return fmt.Sprintf("%x", hash[:6])
}

var invalidFilenameChar = regexp.MustCompile(`[^a-zA-Z0-9\-_]+`)

// sanitizeSlug creates a filesystem-safe slug from a URL host and path.
func sanitizeSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		safe := invalidFilenameChar.ReplaceAllString(rawURL, "_")
		return strings.Trim(safe, "_")
	}

	hostPart := invalidFilenameChar.ReplaceAllString(u.Host, "_")
	pathPart := strings.Trim(invalidFilenameChar.ReplaceAllString(strings.TrimPrefix(u.Path, "/"), "_"), "_")
	if pathPart == "" {
		return hostPart
	}
	return fmt.Sprintf("%s_%s", hostPart, pathPart)
}

// GetArtifactPath constructs the path of an artifact: <base>/<dir>/<slug>-<hash><ext>.
func (m *Manager) GetArtifactPath(artifactDir, rawURL, ext string) (string, error) {
	normalizedURL, err := normalizeURL(rawURL)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s-%s%s", sanitizeSlug(rawURL), getShortHash(normalizedURL), ext)
	return filepath.Join(m.baseDir, artifactDir, filename), nil
}

// Get returns a stored artifact if it exists and is fresh.
func (m *Manager) Get(artifactDir, rawURL, ext string) ([]byte, bool, error) {
	if m.maxAge == 0 {
		return nil, false, nil
	}
	filePath, err := m.GetArtifactPath(artifactDir, rawURL, ext)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error statting artifact: %w", err)
	}
	if m.maxAge > 0 && time.Since(info.ModTime()) > m.maxAge {
		return nil, false, nil // stale
	}

	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, false, fmt.Errorf("error reading artifact: %w", err)
	}
	return data, true, nil
}

// Set stores an artifact, replacing any previous version.
func (m *Manager) Set(artifactDir, rawURL, ext string, data []byte) error {
	filePath, err := m.GetArtifactPath(artifactDir, rawURL, ext)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// MaxAge returns the configured max age for artifacts.
func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// BaseDir returns the cache root.
func (m *Manager) BaseDir() string {
	return m.baseDir
}
