package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	docmerge "github.com/alnah/go-docmerge"
	"github.com/alnah/go-docmerge/internal/config"
	"github.com/alnah/go-docmerge/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInputFiles = errors.New("no input files given")
	ErrReadInput    = errors.New("failed to read input file")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrTitleCount   = errors.New("--title count must match input count")
)

// run executes one merge from parsed flags and positional input paths.
func run(flags *mergeFlags, paths []string, env *Environment) error {
	if len(paths) == 0 {
		return fmt.Errorf("%w: pass documents to merge as arguments", ErrNoInputFiles)
	}
	if len(flags.titles) > 0 && len(flags.titles) != len(paths) {
		return fmt.Errorf("%w: %d titles for %d inputs", ErrTitleCount, len(flags.titles), len(paths))
	}

	cfg := env.Config
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	applyFlagOverrides(flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inputs, err := prepareInputs(ctx, flags, cfg, paths, env)
	if err != nil {
		return err
	}

	m := docmerge.New(
		docmerge.WithRetryCap(cfg.Merge.RetryCap),
		docmerge.WithFailurePolicy(cfg.Merge.OnError),
	)
	opts := docmerge.MergeOptions{
		GenerateTOC:     cfg.Merge.GenerateTOC,
		AddPageNumbers:  cfg.Merge.AddPageNumbers,
		NumberFormat:    cfg.Merge.NumberFormat,
		StartPageNumber: cfg.Merge.StartPage,
	}

	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Merging %d documents...\n", len(inputs))
	}

	result, err := m.Merge(ctx, inputs, opts, terminalPrompt(env))
	if err != nil {
		return err
	}

	for _, s := range result.Report.Skipped {
		fmt.Fprintf(env.Stderr, "warning: skipped input %d (%q): %v\n", s.Index, s.Title, s.Reason)
	}

	outPath := resolveOutputPath(flags.output, cfg)
	if err := os.WriteFile(outPath, result.PDF, 0o644); err != nil { // #nosec G306 -- merged PDFs are meant to be readable
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	fmt.Fprintf(env.Stdout, "Merged %d documents into %s\n", result.Report.Merged, outPath)
	return nil
}

// applyFlagOverrides copies explicitly-set flags over config defaults.
// Unset flags leave config-file values alone.
func applyFlagOverrides(flags *mergeFlags, cfg *config.Config) {
	if flags.changed("toc") {
		cfg.Merge.GenerateTOC = flags.toc
	}
	if flags.changed("page-numbers") {
		cfg.Merge.AddPageNumbers = flags.pageNumbers
	}
	if flags.changed("number-format") {
		cfg.Merge.NumberFormat = flags.numberFormat
	}
	if flags.changed("start-page") {
		cfg.Merge.StartPage = flags.startPage
	}
	if flags.changed("on-error") {
		cfg.Merge.OnError = flags.onError
	}
	if flags.changed("retry-cap") {
		cfg.Merge.RetryCap = flags.retryCap
	}
	if flags.changed("workers") {
		cfg.Render.Workers = flags.workers
	}
	if flags.changed("render-bin") {
		cfg.Render.Binary = flags.renderBin
	}
}

// prepareInputs reads every input file and reduces Word documents to PDF
// bytes through a renderer pool. Result order always matches path order,
// regardless of render concurrency.
func prepareInputs(ctx context.Context, flags *mergeFlags, cfg *config.Config, paths []string, env *Environment) ([]docmerge.DocumentInput, error) {
	inputs := make([]docmerge.DocumentInput, len(paths))
	var wordIndexes []int

	for i, path := range paths {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, path, err)
		}

		title := fileutil.TitleFromPath(path)
		if len(flags.titles) > 0 && strings.TrimSpace(flags.titles[i]) != "" {
			title = flags.titles[i]
		}

		inputs[i] = docmerge.DocumentInput{Data: data, Title: title}
		if fileutil.HasExtension(path, ".docx", ".doc") {
			wordIndexes = append(wordIndexes, i)
		}
	}

	if len(wordIndexes) == 0 {
		return inputs, nil
	}

	pool := docmerge.NewRenderPool(docmerge.ResolvePoolSize(cfg.Render.Workers), rendererFactory(cfg))
	defer func() { _ = pool.Close() }()

	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Rendering %d Word documents (pool size %d)...\n", len(wordIndexes), pool.Size())
	}

	var wg sync.WaitGroup
	renderErrs := make([]error, len(paths))
	for _, idx := range wordIndexes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			r, err := pool.Acquire()
			if err != nil {
				renderErrs[i] = err
				return
			}
			defer pool.Release(r)

			pdfBytes, err := r.RenderPDF(ctx, inputs[i].Data)
			if err != nil {
				renderErrs[i] = fmt.Errorf("rendering %s: %w", paths[i], err)
				return
			}
			inputs[i].Data = pdfBytes
		}(idx)
	}
	wg.Wait()

	for _, err := range renderErrs {
		if err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

// rendererFactory builds pool workers from config: an explicit binary path
// when configured, PATH lookup otherwise.
func rendererFactory(cfg *config.Config) docmerge.RendererFactory {
	return func() (docmerge.DocxRenderer, error) {
		if cfg.Render.Binary != "" {
			return docmerge.NewLibreOfficeRendererAt(cfg.Render.Binary)
		}
		return docmerge.NewLibreOfficeRenderer()
	}
}

// resolveOutputPath prefixes a bare output file name with the configured
// default directory. Explicit paths are used as-is.
func resolveOutputPath(output string, cfg *config.Config) string {
	if cfg.Output.DefaultDir == "" || fileutil.IsFilePath(output) {
		return output
	}
	return filepath.Join(cfg.Output.DefaultDir, output)
}
