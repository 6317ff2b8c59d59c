package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	docmerge "github.com/alnah/go-docmerge"
	"github.com/alnah/go-docmerge/internal/config"
)

func writePDF(t *testing.T, dir, name string, pages int) string {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Cell(0, 10, fmt.Sprintf("%s %d", name, i))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("generating fixture: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func pageCountOf(t *testing.T, path string) int {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		t.Fatalf("counting pages of %s: %v", path, err)
	}
	return n
}

func testEnv() *Environment {
	return &Environment{
		Stdin:  strings.NewReader(""),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
		Config: config.DefaultConfig(),
	}
}

func TestRunMergesPDFs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 2)
	b := writePDF(t, dir, "b.pdf", 3)
	out := filepath.Join(dir, "merged.pdf")

	flags, paths, err := parseFlags([]string{"docmerge", "-o", out, a, b})
	if err != nil {
		t.Fatalf("parseFlags() unexpected error: %v", err)
	}

	env := testEnv()
	if err := run(flags, paths, env); err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}

	if got := pageCountOf(t, out); got != 5 {
		t.Errorf("merged page count = %d, want 5", got)
	}
	if !strings.Contains(env.Stdout.(*bytes.Buffer).String(), "Merged 2 documents") {
		t.Errorf("stdout = %q, want merge summary", env.Stdout.(*bytes.Buffer).String())
	}
}

func TestRunNoInputs(t *testing.T) {
	t.Parallel()

	flags, paths, err := parseFlags([]string{"docmerge"})
	if err != nil {
		t.Fatalf("parseFlags() unexpected error: %v", err)
	}

	if err := run(flags, paths, testEnv()); !errors.Is(err, ErrNoInputFiles) {
		t.Fatalf("run() error = %v, want ErrNoInputFiles", err)
	}
}

func TestRunTitleCountMismatch(t *testing.T) {
	t.Parallel()

	flags, paths, err := parseFlags([]string{"docmerge", "--title", "Only One", "a.pdf", "b.pdf"})
	if err != nil {
		t.Fatalf("parseFlags() unexpected error: %v", err)
	}

	if err := run(flags, paths, testEnv()); !errors.Is(err, ErrTitleCount) {
		t.Fatalf("run() error = %v, want ErrTitleCount", err)
	}
}

func TestRunMissingInputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	flags, paths, err := parseFlags([]string{"docmerge", "-o", filepath.Join(dir, "out.pdf"), filepath.Join(dir, "absent.pdf")})
	if err != nil {
		t.Fatalf("parseFlags() unexpected error: %v", err)
	}

	if err := run(flags, paths, testEnv()); !errors.Is(err, ErrReadInput) {
		t.Fatalf("run() error = %v, want ErrReadInput", err)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	t.Parallel()

	flags, _, err := parseFlags([]string{"docmerge", "--toc", "--start-page", "7", "a.pdf"})
	if err != nil {
		t.Fatalf("parseFlags() unexpected error: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Merge.AddPageNumbers = true // from config file, no flag passed
	applyFlagOverrides(flags, cfg)

	if !cfg.Merge.GenerateTOC {
		t.Error("explicit --toc did not override config")
	}
	if cfg.Merge.StartPage != 7 {
		t.Errorf("startPage = %d, want 7", cfg.Merge.StartPage)
	}
	if !cfg.Merge.AddPageNumbers {
		t.Error("unset flag clobbered the config value")
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if got := resolveOutputPath("merged.pdf", cfg); got != "merged.pdf" {
		t.Errorf("resolveOutputPath() = %q, want bare name without default dir", got)
	}

	cfg.Output.DefaultDir = "/tmp/out"
	if got := resolveOutputPath("merged.pdf", cfg); got != filepath.Join("/tmp/out", "merged.pdf") {
		t.Errorf("resolveOutputPath() = %q, want joined with default dir", got)
	}
	if got := resolveOutputPath("./merged.pdf", cfg); got != "./merged.pdf" {
		t.Errorf("resolveOutputPath() = %q, want explicit path untouched", got)
	}
}

func TestTerminalPromptScripted(t *testing.T) {
	t.Parallel()

	env := testEnv()
	env.Stdin = strings.NewReader("hunter2\n")

	prompt := terminalPrompt(env)
	password, ok := prompt(context.Background(), docmerge.PasswordRequest{Title: "locked", Remaining: 3})
	if !ok || password != "hunter2" {
		t.Errorf("prompt = (%q, %v), want (hunter2, true)", password, ok)
	}
}

func TestTerminalPromptEmptyLineCancels(t *testing.T) {
	t.Parallel()

	env := testEnv()
	env.Stdin = strings.NewReader("\n")

	prompt := terminalPrompt(env)
	if _, ok := prompt(context.Background(), docmerge.PasswordRequest{Title: "locked", Attempts: 1, Remaining: 2}); ok {
		t.Error("empty line did not cancel the prompt")
	}
}
