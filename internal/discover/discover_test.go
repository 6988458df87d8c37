package discover

import (
	"os"
	"path/filepath"
	"testing"
)

const template = "//go:build namedgen\n\npackage p\n"

func TestTemplatesTopLevel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "or.go", template)
	writeFile(t, dir, "and.go", template)
	// Plain source is not a template
	writeFile(t, dir, "plain.go", "package p\n")
	// Nested templates need recursive
	writeFile(t, dir, "sub/xor.go", template)
	writeFile(t, dir, "notes.txt", template)

	entries, err := Templates(dir, false, "")
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}

	// Should be sorted
	if entries[0].Path != "and.go" || entries[0].Output != "and_named.go" {
		t.Errorf("entry 0: got %+v", entries[0])
	}
	if entries[1].Path != "or.go" || entries[1].Output != "or_named.go" {
		t.Errorf("entry 1: got %+v", entries[1])
	}
}

func TestTemplatesRecursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "or.go", template)
	writeFile(t, dir, "sub/xor.go", template)
	writeFile(t, dir, "vendor/dep/dep.go", template)
	writeFile(t, dir, "testdata/fixture.go", template)
	writeFile(t, dir, ".hidden/secret.go", template)
	writeFile(t, dir, "_scratch/old.go", template)

	entries, err := Templates(dir, true, "")
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].Path != "or.go" {
		t.Errorf("entry 0: got %q", entries[0].Path)
	}
	if entries[1].Path != filepath.Join("sub", "xor.go") {
		t.Errorf("entry 1: got %q", entries[1].Path)
	}
	if entries[1].Output != filepath.Join("sub", "xor_named.go") {
		t.Errorf("entry 1 output: got %q", entries[1].Output)
	}
}

func TestTemplatesSkipsOutputsAndTests(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, "or.go", template)
	writeFile(t, dir, "or_named.go", template)
	writeFile(t, dir, "or_test.go", template)

	entries, err := Templates(dir, false, "")
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "or.go" {
		t.Fatalf("expected only or.go, got %+v", entries)
	}

	// With a custom suffix the old output is just another file
	entries, err = Templates(dir, false, "_gen.go")
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries with _gen.go suffix, got %+v", entries)
	}
	for _, e := range entries {
		if e.Path == "or.go" && e.Output != "or_gen.go" {
			t.Errorf("output = %q, want or_gen.go", e.Output)
		}
	}
}

func TestTemplatesGitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, dir, ".gitignore", "ignored/\n")
	writeFile(t, dir, "or.go", template)
	writeFile(t, dir, "ignored/or.go", template)

	entries, err := Templates(dir, true, "")
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "or.go" {
		t.Fatalf("expected only or.go, got %+v", entries)
	}
}

func TestTemplatesSymlinksSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "real.go", template)

	// Create symlink
	err := os.Symlink(filepath.Join(dir, "real.go"), filepath.Join(dir, "link.go"))
	if err != nil {
		t.Skip("symlinks not supported")
	}

	entries, err := Templates(dir, false, "")
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry (no symlink), got %d", len(entries))
	}
	if entries[0].Path != "real.go" {
		t.Errorf("expected real.go, got %q", entries[0].Path)
	}
}

func TestIsTemplate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		source string
		want   bool
	}{
		{"tag", "//go:build namedgen\n\npackage p\n", true},
		{"after comments", "// Copyright notice.\n\n//go:build namedgen\n\npackage p\n", true},
		{"padded", "\n\n//go:build   namedgen\npackage p\n", true},
		{"no constraint", "package p\n", false},
		{"other tag", "//go:build linux\n\npackage p\n", false},
		{"compound", "//go:build namedgen && linux\n\npackage p\n", false},
		{"negated", "//go:build !namedgen\n\npackage p\n", false},
		{"after package", "package p\n\n//go:build namedgen\n", false},
		{"plain comment", "// go:build namedgen\npackage p\n", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := IsTemplate([]byte(tc.source))
			if got != tc.want {
				t.Errorf("IsTemplate(%q) = %v, want %v", tc.source, got, tc.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()
	cases := []struct {
		path, suffix, want string
	}{
		{"or.go", "", "or_named.go"},
		{"or.go", DefaultSuffix, "or_named.go"},
		{filepath.Join("sub", "or.go"), "_gen.go", filepath.Join("sub", "or_gen.go")},
		{"flags.tmpl.go", "", "flags.tmpl_named.go"},
	}
	for _, tc := range cases {
		tc := tc
		if got := OutputPath(tc.path, tc.suffix); got != tc.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tc.path, tc.suffix, got, tc.want)
		}
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
