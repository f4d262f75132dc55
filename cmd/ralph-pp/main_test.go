package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	for _, name := range []string{"define", "disable", "ignore-unmatched-conditionals", "inclusion-limit", "output-dir"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist", name)
		}
	}
}

func TestRunPreprocess_WritesToStdout(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "main.c"), "#define GREETING hi\n__GREETING__\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{filepath.Join(dir, "main.c")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}
	if out.String() != "hi\n" {
		t.Errorf("expected %q, got %q", "hi\n", out.String())
	}
}

func TestRunPreprocess_ResolvesIncludeFromDisk(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "main.c"), "#include \"lib.h\"\n")
	mustWrite(t, filepath.Join(dir, "lib.h"), "from lib\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{filepath.Join(dir, "main.c")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}
	if out.String() != "from lib\n" {
		t.Errorf("expected %q, got %q", "from lib\n", out.String())
	}
}

func TestRunPreprocess_WritesToOutputDir(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	mustWrite(t, filepath.Join(srcDir, "main.c"), "body\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--output-dir", outDir, filepath.Join(srcDir, "main.c")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}

	got, err := os.ReadFile(filepath.Join(outDir, "main.c"))
	if err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
	if string(got) != "body\n" {
		t.Errorf("expected %q, got %q", "body\n", string(got))
	}
}

func TestRunPreprocess_DisableFlagTurnsOffADirective(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "main.c"), "#define X 1\nX\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--disable", "define", filepath.Join(dir, "main.c")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}
	if out.String() != "#define X 1\nX\n" {
		t.Errorf("expected the source unchanged, got %q", out.String())
	}
}

func TestRunPreprocess_MultipleEntriesGetBannerSeparatedOutput(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.c"), "alpha\n")
	mustWrite(t, filepath.Join(dir, "b.c"), "beta\n")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{filepath.Join(dir, "a.c"), filepath.Join(dir, "b.c")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}
	want := "//// a.c ////\nalpha\n\n//// b.c ////\nbeta\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
