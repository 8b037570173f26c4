package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relictool/relic/internal/annotations"
	"github.com/relictool/relic/internal/config"
	"github.com/relictool/relic/internal/report"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()

	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return root
}

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.RootDir = root
	cfg.Concurrent = false
	cfg.LogLevel = "error"
	return cfg
}

func findRecord(records []report.Record, path string) (report.Record, bool) {
	for _, rec := range records {
		if rec.Path == path {
			return rec, true
		}
	}
	return report.Record{}, false
}

func TestScan(t *testing.T) {
	root := writeTree(t, map[string]string{
		"REUSE.toml": `version = 1

[[annotations]]
path = "docs/**"
SPDX-FileCopyrightText = "2020 Example Corp"
SPDX-License-Identifier = "CC0-1.0"
`,
		"docs/readme.md":   "# docs\n",
		"src/main.go":      "// SPDX-FileCopyrightText: 2021 Jane Doe\n// SPDX-License-Identifier: MIT\npackage main\n",
		"plain.txt":        "nothing here\n",
		"LICENSES/MIT.txt": "MIT License text\n",
	})

	a := New(testConfig(root))

	result, err := a.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if rec, ok := findRecord(result.Records, "docs/readme.md"); !ok || !rec.Complete() {
		t.Errorf("docs/readme.md should be complete via configuration: %+v", rec)
	}
	if rec, ok := findRecord(result.Records, "src/main.go"); !ok || !rec.Complete() {
		t.Errorf("src/main.go should be complete via its header: %+v", rec)
	}
	if rec, ok := findRecord(result.Records, "plain.txt"); !ok || rec.Complete() {
		t.Errorf("plain.txt should be incomplete: %+v", rec)
	}

	// Configuration files and license texts get no records of their own.
	if _, ok := findRecord(result.Records, "REUSE.toml"); ok {
		t.Error("REUSE.toml got its own record")
	}
	if _, ok := findRecord(result.Records, "LICENSES/MIT.txt"); ok {
		t.Error("license text got its own record")
	}

	if result.Summary.Incomplete != 1 {
		t.Errorf("summary = %+v, want 1 incomplete", result.Summary)
	}
}

func TestScanRejectsMixedFormats(t *testing.T) {
	root := writeTree(t, map[string]string{
		"REUSE.toml": "version = 1\n[[annotations]]\npath = \"**\"\nSPDX-License-Identifier = \"MIT\"\n",
		".reuse/dep5": `Files: *
Copyright: 2017 Jane Doe
License: MIT
`,
		"a.txt": "x\n",
	})

	a := New(testConfig(root))

	_, err := a.Scan(context.Background())
	if !errors.Is(err, ErrMixedFormats) {
		t.Fatalf("error = %v, want ErrMixedFormats", err)
	}
}

func TestScanFlatProject(t *testing.T) {
	root := writeTree(t, map[string]string{
		".reuse/dep5": `Files: *
Copyright: 2017 Jane Doe
License: MIT
`,
		"a.txt": "x\n",
	})

	a := New(testConfig(root))

	result, err := a.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	rec, ok := findRecord(result.Records, "a.txt")
	if !ok || !rec.Complete() {
		t.Errorf("a.txt should be complete via the flat file: %+v", rec)
	}
}

func TestScanReportsConfigErrors(t *testing.T) {
	root := writeTree(t, map[string]string{
		"REUSE.toml": "[[annotations]]\npath = \"**\"\n",
		"a.txt":      "x\n",
	})

	a := New(testConfig(root))

	_, err := a.Scan(context.Background())
	if !errors.Is(err, annotations.ErrConfigValue) {
		t.Fatalf("error = %v, want a configuration value error", err)
	}
}

func TestResolvePaths(t *testing.T) {
	root := writeTree(t, map[string]string{
		"REUSE.toml": `version = 1

[[annotations]]
path = "assets/**"
SPDX-FileCopyrightText = "2020 Example Corp"
SPDX-License-Identifier = "CC0-1.0"
`,
		"assets/logo.png": "binarydata",
	})

	a := New(testConfig(root))

	records, err := a.ResolvePaths(context.Background(), []string{"assets/logo.png", "assets/missing.png"})
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	for _, rec := range records {
		if !rec.Complete() {
			t.Errorf("%s should resolve via configuration: %+v", rec.Path, rec)
		}
	}
}

func TestResolvePathsReportsConfigErrors(t *testing.T) {
	root := writeTree(t, map[string]string{
		"sub/REUSE.toml": "[[annotations]]\npath = \"**\"\n",
		"sub/a.txt":      "x\n",
	})

	a := New(testConfig(root))

	_, err := a.ResolvePaths(context.Background(), []string{"sub/a.txt"})
	if !errors.Is(err, annotations.ErrConfigValue) {
		t.Fatalf("error = %v, want a configuration value error", err)
	}
	if err == nil || !strings.Contains(err.Error(), "sub/REUSE.toml") {
		t.Errorf("error lacks the offending file: %v", err)
	}
}
