package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	papercraft "github.com/humaxai2025/Papercraft"
)

func TestOutputPath(t *testing.T) {
	cases := []struct {
		input, outputDir, want string
	}{
		{"doc.md", "", "doc.pdf"},
		{"notes/doc.md", "", filepath.Join("notes", "doc.pdf")},
		{"doc.markdown", "", "doc.pdf"},
		{"noext", "", "noext.pdf"},
		{"notes/doc.md", "out", filepath.Join("out", "doc.pdf")},
	}
	for _, tc := range cases {
		if got := outputPath(tc.input, tc.outputDir); got != tc.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tc.input, tc.outputDir, got, tc.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	f, inputs, err := parseFlags([]string{"papercraft", "-t", "My Title", "--page-size", "letter", "-w", "4", "a.md", "b.md"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if f.title != "My Title" || f.pageSize != "letter" || f.workers != 4 {
		t.Errorf("flags = %+v", f)
	}
	if len(inputs) != 2 || inputs[0] != "a.md" {
		t.Errorf("inputs = %v", inputs)
	}
	if !f.compress {
		t.Errorf("compress should default to true")
	}
}

func TestResolveConfigFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("title: From File\npageSize: legal\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := resolveConfig(&flags{configPath: path, title: "From Flag", compress: true})
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Title != "From Flag" {
		t.Errorf("Title = %q, flag should win over file", cfg.Title)
	}
	if cfg.PageSize != "legal" {
		t.Errorf("PageSize = %q, file should win over default", cfg.PageSize)
	}
}

func TestResolveConfigInvalid(t *testing.T) {
	_, err := resolveConfig(&flags{pageSize: "tabloid", compress: true})
	if !errors.Is(err, papercraft.ErrInvalidPageSize) {
		t.Fatalf("err = %v, want ErrInvalidPageSize", err)
	}
}
