package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTimeout     = 5 * time.Second
	DefaultDownloadURL = "https://github.com/kittmaster/KodiTextureTool/releases/latest"
	userAgent          = "KodiTextureTool-Update-Checker"
	maxBodySize        = 1 << 20
)

var ErrMissingVersion = errors.New("version.json is missing 'latest_version' key")

// Manifest is the version.json document published with each release.
type Manifest struct {
	LatestVersion    string   `json:"latest_version"`
	UpdatePackageURL string   `json:"update_package_url"`
	Changelog        []string `json:"changelog"`
}

type Result struct {
	Current   string
	Manifest  Manifest
	Available bool
}

// DownloadURL returns the package URL with its path percent-encoded.
func (r Result) DownloadURL() (string, error) {
	raw := r.Manifest.UpdatePackageURL
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid update url %q: %w", raw, err)
	}
	return u.String(), nil
}

type Checker struct {
	Client *http.Client
}

func NewChecker() *Checker {
	return &Checker{Client: &http.Client{Timeout: DefaultTimeout}}
}

// Check fetches the manifest at manifestURL and compares it with current.
func (c *Checker) Check(ctx context.Context, manifestURL, current string) (Result, error) {
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch %s: %w", manifestURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("fetch %s: %s", manifestURL, resp.Status)
	}

	var m Manifest
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&m); err != nil {
		return Result{}, fmt.Errorf("decode version.json: %w", err)
	}
	if m.LatestVersion == "" {
		return Result{}, ErrMissingVersion
	}
	if m.UpdatePackageURL == "" {
		m.UpdatePackageURL = DefaultDownloadURL
	}
	if len(m.Changelog) == 0 {
		m.Changelog = []string{"No changelog available."}
	}

	return Result{Current: current, Manifest: m, Available: Newer(current, m.LatestVersion)}, nil
}

// Newer reports whether latest is a higher version than current.
func Newer(current, latest string) bool {
	return slices.Compare(normalize(latest), normalize(current)) > 0
}

// normalize turns "v3.1.7" into [3 1 7]; anything unparseable becomes [0].
func normalize(v string) []int {
	parts := strings.Split(strings.TrimLeft(v, "v"), ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return []int{0}
		}
		out = append(out, n)
	}
	return out
}

// ChangelogLines groups entries under their "- vX" headings.
func ChangelogLines(items []string) []string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		clean := strings.TrimSpace(item)
		if strings.HasPrefix(clean, "- v") {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, clean)
			continue
		}
		lines = append(lines, "  "+clean)
	}
	return lines
}
