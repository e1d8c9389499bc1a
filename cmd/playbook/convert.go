package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	playbook "github.com/RodolfoDavidAlvarez/orchardprogram"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/fileutil"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/source"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input playbook.Input) (*playbook.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*playbook.ConverterPool)(nil)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// conversionParams groups parameters shared across a batch.
type conversionParams struct {
	title    string
	css      string
	page     *playbook.PageSettings
	htmlOnly bool
}

// runConvert implements the render (HTML) and pdf commands.
func runConvert(ctx context.Context, name string, args []string, env *Environment) error {
	flags, files, err := parseConvertFlags(name, args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())
	cfg, _, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	log := newLogger(env.Stderr, false, flags.common.verbose)

	if len(files) == 0 {
		if cfg.Server.Source == "" {
			return ErrNoInput
		}
		files = []string{cfg.Server.Source}
	}

	htmlOnly := name == "render"
	params := &conversionParams{title: flags.title, htmlOnly: htmlOnly}
	if params.css, err = readCSS(flags.css); err != nil {
		return err
	}
	if !htmlOnly {
		if params.page, err = buildPageSettings(flags.page, cfg); err != nil {
			return err
		}
	}
	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	// Surface rule and asset errors once instead of per file.
	opts := converterOptions(cfg, flags.assets, timeout)
	if _, err := playbook.NewRenderer(opts...); err != nil {
		return err
	}

	outDir := flags.output
	if outDir == "" {
		outDir = cfg.Output.DefaultDir
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	ext := ".pdf"
	if htmlOnly {
		ext = ".html"
	}
	jobs := make([]FileToConvert, len(files))
	for i, f := range files {
		jobs[i] = FileToConvert{InputPath: f, OutputPath: fileutil.OutputPath(f, outDir, ext)}
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	size := min(playbook.ResolvePoolSize(workers), len(jobs))
	log.Debug("starting conversion", "files", len(jobs), "workers", size, "format", ext)

	pool := playbook.NewConverterPool(size, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("closing converters", "error", err)
		}
	}()

	results := convertBatch(ctx, pool, size, jobs, params)
	return printResults(results, flags.common.quiet, flags.common.verbose, env)
}

// convertBatch processes files concurrently, at most limit at a time.
// A failed file does not stop the others.
func convertBatch(ctx context.Context, conv Converter, limit int, files []FileToConvert, params *conversionParams) []ConversionResult {
	results := make([]ConversionResult, len(files))

	var g errgroup.Group
	g.SetLimit(max(limit, 1))
	for i, f := range files {
		g.Go(func() error {
			results[i] = convertFile(ctx, conv, f, params)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// convertFile converts one source file and writes the output.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}

	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	text, err := source.Read(f.InputPath)
	if err != nil {
		return fail(err)
	}

	res, err := conv.Convert(ctx, playbook.Input{
		Text:      text,
		Title:     params.title,
		SourceDir: filepath.Dir(f.InputPath),
		CSS:       params.css,
		Page:      params.page,
		HTMLOnly:  params.htmlOnly,
	})
	if err != nil {
		return fail(err)
	}

	data := res.PDF
	if params.htmlOnly {
		data = res.HTML
	}
	if err := os.WriteFile(f.OutputPath, data, filePermissions); err != nil { // #nosec G306 -- output is meant to be shared
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.Duration = time.Since(start)
	return result
}

// printResults reports each conversion and returns an error when any failed.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) error {
	var failed int
	var firstErr error

	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		return firstErr
	default:
		return fmt.Errorf("%d of %d conversions failed: %w", failed, len(results), firstErr)
	}
}
