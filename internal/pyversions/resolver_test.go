package pyversions

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func indexBody(versions ...string) string {
	var b strings.Builder
	for _, v := range versions {
		fmt.Fprintf(&b, `<a href="%s/">%s/</a>`+"\n", v, v)
	}
	return b.String()
}

func TestFullVersionPicksHighestPatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, indexBody("3.11.0", "3.11.9", "3.11.2", "3.10.8"))
	}))
	defer server.Close()

	r := New(Config{IndexURL: server.URL})
	if got := r.FullVersion(context.Background(), "3.11"); got != "3.11.9" {
		t.Fatalf("expected 3.11.9, got %q", got)
	}
}

func TestFullVersionNumericOrdering(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, indexBody("3.11.2", "3.11.10"))
	}))
	defer server.Close()

	r := New(Config{IndexURL: server.URL})
	if got := r.FullVersion(context.Background(), "3.11"); got != "3.11.10" {
		t.Fatalf("expected 3.11.10 to outrank 3.11.2, got %q", got)
	}
}

func TestFullVersionAbsentDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, indexBody("3.11.9"))
	}))
	defer server.Close()

	r := New(Config{IndexURL: server.URL})
	if got := r.FullVersion(context.Background(), "9.9"); got != "9.9" {
		t.Fatalf("expected display version unchanged, got %q", got)
	}
}

func TestFullVersionNetworkFailureDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	r := New(Config{IndexURL: server.URL})
	if got := r.FullVersion(context.Background(), "3.11"); got != "3.11" {
		t.Fatalf("expected display version unchanged, got %q", got)
	}
}

func TestFullVersionBadStatusDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	r := New(Config{IndexURL: server.URL})
	if got := r.FullVersion(context.Background(), "3.11"); got != "3.11" {
		t.Fatalf("expected display version unchanged, got %q", got)
	}
}

func TestCompareVersions(t *testing.T) {
	if compareVersions("3.10.1", "3.9.9") <= 0 {
		t.Fatalf("expected 3.10.1 > 3.9.9")
	}
	if compareVersions("3.11.2", "3.11.2") != 0 {
		t.Fatalf("expected equal versions to compare 0")
	}
	if compareVersions("3.8.0", "3.12.0") >= 0 {
		t.Fatalf("expected 3.8.0 < 3.12.0")
	}
}

func TestInstallerURL(t *testing.T) {
	r := New(Config{})
	want := "https://www.python.org/ftp/python/3.11.9/python-3.11.9-amd64.exe"
	if got := r.InstallerURL("3.11.9"); got != want {
		t.Fatalf("installer url mismatch:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestDownloadReportsProgress(t *testing.T) {
	payload := strings.Repeat("x", 100_000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
		_, _ = fmt.Fprint(w, payload)
	}))
	defer server.Close()

	r := New(Config{})
	dest := filepath.Join(t.TempDir(), "installer.exe")
	var lastWritten, lastTotal int64
	err := r.Download(context.Background(), server.URL, dest, func(written, total int64) {
		lastWritten, lastTotal = written, total
	})
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if lastWritten != int64(len(payload)) || lastTotal != int64(len(payload)) {
		t.Fatalf("progress mismatch: written=%d total=%d", lastWritten, lastTotal)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(data) != payload {
		t.Fatalf("payload mismatch: %d bytes", len(data))
	}
}

func TestDownloadBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	r := New(Config{})
	dest := filepath.Join(t.TempDir(), "installer.exe")
	if err := r.Download(context.Background(), server.URL, dest, nil); err == nil {
		t.Fatalf("expected error for 404")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("expected no file left behind")
	}
}
