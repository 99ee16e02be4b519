package pyversions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pkt.systems/pslog"
)

// DefaultIndexURL lists the python.org release directories.
const DefaultIndexURL = "https://www.python.org/ftp/python/"

// DefaultInstallerURLTemplate names the Windows amd64 installer for a full
// version; every {version} placeholder is replaced.
const DefaultInstallerURLTemplate = "https://www.python.org/ftp/python/{version}/python-{version}-amd64.exe"

var releasePattern = regexp.MustCompile(`href="(\d+\.\d+\.\d+)/"`)

// Config adjusts the resolver endpoints.
type Config struct {
	IndexURL             string
	InstallerURLTemplate string
	Timeout              time.Duration
}

// Resolver maps a display version like "3.11" to the newest matching patch
// release published in the remote index.
type Resolver struct {
	client            *http.Client
	download          *http.Client
	indexURL          string
	installerTemplate string
}

// New constructs a resolver.
func New(cfg Config) *Resolver {
	if cfg.IndexURL == "" {
		cfg.IndexURL = DefaultIndexURL
	}
	if cfg.InstallerURLTemplate == "" {
		cfg.InstallerURLTemplate = DefaultInstallerURLTemplate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Resolver{
		client:            &http.Client{Timeout: cfg.Timeout},
		download:          &http.Client{},
		indexURL:          cfg.IndexURL,
		installerTemplate: cfg.InstallerURLTemplate,
	}
}

// FullVersion resolves display ("3.11") to the highest major.minor.patch in
// the index ("3.11.9"). Resolution degrades to the display version on any
// failure: network error, non-2xx status, or the version being absent. The
// caller never has to handle an error here.
func (r *Resolver) FullVersion(ctx context.Context, display string) string {
	log := pslog.Ctx(ctx)
	log.Info("fetching python version index", "url", r.indexURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.indexURL, nil)
	if err != nil {
		log.Warn("version index request failed", "err", err)
		return display
	}
	resp, err := r.client.Do(req)
	if err != nil {
		log.Warn("version index fetch failed", "err", err)
		return display
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("version index fetch failed", "status", resp.StatusCode)
		return display
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("version index read failed", "err", err)
		return display
	}

	full := latestPatch(string(body), display)
	log.Info("python version resolved", "display", display, "full", full)
	return full
}

// latestPatch picks the numerically-highest patch release for display's
// major.minor, or display itself when no release matches.
func latestPatch(index, display string) string {
	best := ""
	for _, match := range releasePattern.FindAllStringSubmatch(index, -1) {
		version := match[1]
		parts := strings.SplitN(version, ".", 3)
		if parts[0]+"."+parts[1] != display {
			continue
		}
		if best == "" || compareVersions(version, best) > 0 {
			best = version
		}
	}
	if best == "" {
		return display
	}
	return best
}

// compareVersions compares dotted version strings component by component,
// numerically, so 3.10.1 ranks above 3.9.9.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, _ := strconv.Atoi(as[i])
		bn, _ := strconv.Atoi(bs[i])
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
	}
	return len(as) - len(bs)
}

// InstallerURL names the Windows installer artifact for a full version.
func (r *Resolver) InstallerURL(full string) string {
	return strings.ReplaceAll(r.installerTemplate, "{version}", full)
}

// InstallerFileName is the local file name the installer is downloaded to.
func InstallerFileName(full string) string {
	return fmt.Sprintf("python-%s-installer.exe", full)
}
