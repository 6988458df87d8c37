package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const orTemplate = `//go:build namedgen

package flags

//named:defaults(a = false, b = false)
func or(a, b bool) bool {
	return a || b
}
`

func writeTestFile(t *testing.T, root, rel, content string) {
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

func createSamplePackage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, "or.go", orTemplate)
	writeTestFile(t, dir, "doc.go", "// Package flags is a sample.\npackage flags\n")
	return dir
}

func readTestFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func TestRunBasic(t *testing.T) {
	t.Parallel()
	dir := createSamplePackage(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{dir}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	out := readTestFile(t, dir, "or_named.go")
	for _, want := range []string{
		"// Code generated by namedgen from or.go. DO NOT EDIT.",
		"func orPositional(a, b bool) bool {",
		"var or orCalls",
		"func (orCalls) With() bool {\n\treturn orPositional(false, false)\n}",
		"func (orCalls) WithA(a bool) bool {\n\treturn orPositional(a, false)\n}",
		"func (orCalls) WithB(b bool) bool {\n\treturn orPositional(false, b)\n}",
		"func (orCalls) WithAB(a bool, b bool) bool {\n\treturn orPositional(a, b)\n}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated file missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "go:build") {
		t.Errorf("generated file kept the build constraint:\n%s", out)
	}
	if strings.Contains(out, "//named:") {
		t.Errorf("generated file kept the directive:\n%s", out)
	}
}

func TestRunIdempotent(t *testing.T) {
	t.Parallel()
	dir := createSamplePackage(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{dir}, &stdout, &stderr); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := readTestFile(t, dir, "or_named.go")

	if err := run([]string{dir}, &stdout, &stderr); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second := readTestFile(t, dir, "or_named.go"); second != first {
		t.Errorf("output changed between runs:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestRunList(t *testing.T) {
	t.Parallel()
	dir := createSamplePackage(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-list", dir}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"bindings[1]{file,function,line,optional,shapes}:",
		"  or.go,or,5,a b,4",
		"shapes[4]{function,method,supplied}:",
		"  or,WithAB,a b",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "or_named.go")); err == nil {
		t.Error("-list should not write files")
	}
}

func TestRunCheck(t *testing.T) {
	t.Parallel()
	dir := createSamplePackage(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-check", dir}, &stdout, &stderr); err == nil {
		t.Fatal("expected -check to fail before generation")
	}
	if !strings.Contains(stderr.String(), "or_named.go is out of date") {
		t.Errorf("stderr = %q", stderr.String())
	}

	if err := run([]string{dir}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	stderr.Reset()
	if err := run([]string{"-check", dir}, &stdout, &stderr); err != nil {
		t.Fatalf("-check after generation: %v\nstderr: %s", err, stderr.String())
	}
}

func TestRunSuffix(t *testing.T) {
	t.Parallel()
	dir := createSamplePackage(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{dir, "-suffix", "_gen.go"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "or_gen.go")); err != nil {
		t.Errorf("expected or_gen.go: %v", err)
	}

	if err := run([]string{"-suffix", "_gen.txt", dir}, &stdout, &stderr); err == nil {
		t.Error("expected error for suffix without .go")
	}
}

func TestRunRecursive(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeTestFile(t, dir, "sub/or.go", orTemplate)

	var stdout, stderr bytes.Buffer
	if err := run([]string{dir}, &stdout, &stderr); err == nil {
		t.Fatal("expected no templates without -r")
	}
	if err := run([]string{"-r", dir}, &stdout, &stderr); err != nil {
		t.Fatalf("run -r: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sub", "or_named.go")); err != nil {
		t.Errorf("expected sub/or_named.go: %v", err)
	}
}

func TestRunUnknownParameter(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeTestFile(t, dir, "bad.go", `//go:build namedgen

package flags

//named:defaults(c = false)
func or(a, b bool) bool {
	return a || b
}
`)
	writeTestFile(t, dir, "good.go", orTemplate)

	var stdout, stderr bytes.Buffer
	err := run([]string{dir}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error for unknown default")
	}
	if !strings.Contains(err.Error(), "1 of 2 templates failed") {
		t.Errorf("err = %v", err)
	}
	msg := stderr.String()
	if !strings.Contains(msg, "error:") || !strings.Contains(msg, "bad.go:5: or: unrecognized argument `c`") {
		t.Errorf("stderr = %q", msg)
	}
	if _, err := os.Stat(filepath.Join(dir, "good_named.go")); err == nil {
		t.Error("no file should be written when a template fails")
	}
}

func TestRunMethodRejected(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeTestFile(t, dir, "m.go", `//go:build namedgen

package flags

type T struct{}

//named:defaults(a = false)
func (T) or(a bool) bool {
	return a
}
`)

	var stdout, stderr bytes.Buffer
	if err := run([]string{dir}, &stdout, &stderr); err == nil {
		t.Fatal("expected error for method")
	}
	if !strings.Contains(stderr.String(), "not supported on methods") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run([]string{"-V"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "namedgen") {
		t.Errorf("version output: %q", stdout.String())
	}
}

func TestRunNoTemplates(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeTestFile(t, dir, "plain.go", "package flags\n\nfunc or(a, b bool) bool { return a || b }\n")

	var stdout, stderr bytes.Buffer
	err := run([]string{dir}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error for no templates")
	}
	if !strings.Contains(err.Error(), "no template files found") {
		t.Errorf("err = %v", err)
	}
}

func TestRunNotADirectory(t *testing.T) {
	t.Parallel()
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	err := run([]string{f}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error for non-directory")
	}
}

func TestRunInvalidLogLevel(t *testing.T) {
	t.Parallel()
	dir := createSamplePackage(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-log-level", "loud", dir}, &stdout, &stderr); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestRunInitDispatch(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	if err := run([]string{"init", "--dry-run"}, &stdout, &stderr); err != nil {
		t.Fatalf("run init: %v", err)
	}
	if !strings.Contains(stdout.String(), "//go:generate") {
		t.Errorf("init output = %q", stdout.String())
	}
}

func TestReorderArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"flags first", []string{"-suffix", "_gen.go", "."}, []string{"-suffix", "_gen.go", "."}},
		{"positional first", []string{".", "-suffix", "_gen.go"}, []string{"-suffix", "_gen.go", "."}},
		{"mixed", []string{"-log-level", "debug", ".", "-r"}, []string{"-log-level", "debug", "-r", "."}},
		{"no flags", []string{"."}, []string{"."}},
		{"no args", nil, nil},
		{"bool flag", []string{"-V"}, []string{"-V"}},
		{"double dash", []string{"-r", "--", "-odd"}, []string{"-r", "-odd"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := reorderArgs(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("len: got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %q, want %q (full: %v)", i, got[i], tt.want[i], got)
					break
				}
			}
		})
	}
}
