package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ppiankov/secdigest/internal/source"
)

func feedServer(t *testing.T, items int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>Test Feed</title>`)
		for i := range items {
			fmt.Fprintf(&b, "<item><title>Story %d</title><link>https://news.test/%d</link><pubDate>Fri, 1%d May 2024 09:00:00 +0000</pubDate></item>", i, i, i)
		}
		b.WriteString(`</channel></rss>`)
		_, _ = io.WriteString(w, b.String())
	}))
	t.Cleanup(ts.Close)
	return ts
}

func kevServer(t *testing.T, records int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		parts := make([]string, 0, records)
		for i := range records {
			parts = append(parts, fmt.Sprintf(`{"cveID":"CVE-2024-%04d","vulnerabilityName":"Vuln %d","dateAdded":"2024-05-01"}`, i, i))
		}
		_, _ = io.WriteString(w, `{"vulnerabilities":[`+strings.Join(parts, ",")+`]}`)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func notFoundServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(ts.Close)
	return ts
}

func useSources(sources ...source.Source) {
	loadSources = func() []source.Source { return sources }
}

func TestDigestCommand_Terminal(t *testing.T) {
	fsys := setupCLI(t)
	writeConfig(t, fsys, "digest:\n  banner: false\n  greeting: Tester\n")

	useSources(
		source.Source{Name: "News One", URL: feedServer(t, 5).URL, Kind: source.KindRSS},
		source.Source{Name: "Broken", URL: notFoundServer(t).URL, Kind: source.KindRSS},
		source.Source{Name: "KEV", URL: kevServer(t, 12).URL, Kind: source.KindCISA},
	)

	out, _, err := executeCommand(t, "", "digest", "--no-color")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}

	requireContains(t, out, "Welcome back, Tester. Here is your daily digest!")
	requireContains(t, out, "--- Latest from News One ---")
	requireContains(t, out, "--- Latest from Broken ---\nFailed to fetch content from the source: Failed with status code 404")
	requireContains(t, out, "--- Latest from KEV ---")
	requireContains(t, out, "Published: 2024-05-10\nTitle: Story 0\nLink: https://news.test/0")

	if got := strings.Count(out, "Title: Story"); got != 3 {
		t.Errorf("rss blocks = %d, want 3", got)
	}
	if strings.Contains(out, "Story 3") {
		t.Error("rss limit not applied")
	}
	if got := strings.Count(out, "CVE ID: CVE-2024-"); got != 10 {
		t.Errorf("cisa blocks = %d, want 10", got)
	}
	if strings.Contains(out, "\033[") {
		t.Error("--no-color output contains ANSI codes")
	}

	one := strings.Index(out, "News One")
	broken := strings.Index(out, "Broken")
	kev := strings.Index(out, "Latest from KEV")
	if one > broken || broken > kev {
		t.Error("sections not in source order")
	}
}

func TestDigestCommand_RootRunsDigest(t *testing.T) {
	setupCLI(t)
	useSources(source.Source{Name: "Only Feed", URL: feedServer(t, 1).URL, Kind: source.KindRSS})

	out, _, err := executeCommand(t, "", "--no-color")
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	requireContains(t, out, "--- Latest from Only Feed ---")
	requireContains(t, out, "Title: Story 0")
}

func TestDigestCommand_Markdown(t *testing.T) {
	setupCLI(t)
	useSources(source.Source{Name: "KEV", URL: kevServer(t, 2).URL, Kind: source.KindCISA})

	out, _, err := executeCommand(t, "", "digest", "--format", "markdown")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	requireContains(t, out, "# Security digest")
	requireContains(t, out, "## KEV")
	requireContains(t, out, "- **CVE ID:** CVE-2024-0001")
	if strings.Contains(out, "Welcome back") {
		t.Errorf("markdown output has terminal intro:\n%s", out)
	}
}

func TestDigestCommand_ConfigLimitsAndWorkers(t *testing.T) {
	fsys := setupCLI(t)
	writeConfig(t, fsys, "fetch:\n  workers: 3\ndigest:\n  rss_limit: 1\n  cisa_limit: 2\n  banner: false\n")

	useSources(
		source.Source{Name: "A", URL: feedServer(t, 4).URL, Kind: source.KindRSS},
		source.Source{Name: "B", URL: feedServer(t, 4).URL, Kind: source.KindRSS},
		source.Source{Name: "C", URL: kevServer(t, 5).URL, Kind: source.KindCISA},
	)

	out, _, err := executeCommand(t, "", "digest", "--no-color")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if got := strings.Count(out, "Title: Story"); got != 2 {
		t.Errorf("rss blocks = %d, want 2 (one per feed)", got)
	}
	if got := strings.Count(out, "CVE ID:"); got != 2 {
		t.Errorf("cisa blocks = %d, want 2", got)
	}
	if !(strings.Index(out, "Latest from A") < strings.Index(out, "Latest from B") &&
		strings.Index(out, "Latest from B") < strings.Index(out, "Latest from C")) {
		t.Error("parallel fetch changed section order")
	}
}

func TestDigestCommand_Progress(t *testing.T) {
	setupCLI(t)
	useSources(source.Source{Name: "Feed", URL: feedServer(t, 2).URL, Kind: source.KindRSS})

	out, _, err := executeCommand(t, "", "digest", "--no-color", "--progress")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	requireContains(t, out, "Title: Story 1")
}

func TestDigestCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		args    []string
		wantErr string
	}{
		{"unknown format flag", "", []string{"digest", "--format", "json"}, "unknown format"},
		{"workers out of range", "", []string{"digest", "--workers", "99"}, "--workers"},
		{"invalid config", "digest:\n  color: rainbow\n", []string{"digest"}, "load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := setupCLI(t)
			if tt.config != "" {
				writeConfig(t, fsys, tt.config)
			}
			useSources()

			_, _, err := executeCommand(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestUseColor(t *testing.T) {
	setupCLI(t)
	var buf strings.Builder

	if !useColor("always", &buf) {
		t.Error("always should enable color")
	}
	if useColor("never", &buf) {
		t.Error("never should disable color")
	}
	if useColor("auto", &buf) {
		t.Error("auto should disable color for non-terminal writers")
	}

	noColor = true
	if useColor("always", &buf) {
		t.Error("--no-color should win over always")
	}
}

func TestDigestCommand_IntroBeforeFetch(t *testing.T) {
	fsys := setupCLI(t)
	writeConfig(t, fsys, "digest:\n  banner: false\n  greeting: Tester\n")

	var out bytes.Buffer
	var beforeFetch string
	kev := kevServer(t, 1)
	loadSources = func() []source.Source {
		beforeFetch = out.String()
		return []source.Source{{Name: "KEV", URL: kev.URL, Kind: source.KindCISA}}
	}

	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs([]string{"digest", "--no-color"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("digest: %v", err)
	}

	requireContains(t, beforeFetch, "Welcome back, Tester. Here is your daily digest!")
	requireContains(t, beforeFetch, "Login time: ")
	if strings.Contains(beforeFetch, "--- Latest from") {
		t.Errorf("sections written before fetch:\n%s", beforeFetch)
	}
	if strings.Count(out.String(), "Welcome back") != 1 {
		t.Errorf("intro written more than once:\n%s", out.String())
	}
	requireContains(t, out.String(), "--- Latest from KEV ---")
}
