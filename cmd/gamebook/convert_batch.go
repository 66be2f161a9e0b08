package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	gamebook "github.com/alnah/go-gamebook"
	"github.com/alnah/go-gamebook/internal/fileutil"
	"github.com/alnah/go-gamebook/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	Seed        uint64
	Diagnostics []gamebook.Diagnostic
	Err         error
	Duration    time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams, env *Environment) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				// Converter creation failed, mark remaining jobs as failed
				err := initError(pool)
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       err,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params, env)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// initError wraps the pool's creation error, when it reports one.
func initError(pool Pool) error {
	if err := pool.InitErr(); err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	return ErrConverterInit
}

// convertFile processes a single manuscript and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams, env *Environment) ConversionResult {
	start := env.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = env.Now().Sub(start)
		return result
	}

	content, err := readManuscript(f.InputPath, env.Stdin)
	if err != nil {
		return done(err)
	}

	convResult, err := conv.Convert(ctx, gamebook.Input{
		Manuscript: string(content),
		Title:      titleFor(params, f.InputPath),
		Format:     params.format,
	})
	if err != nil {
		return done(err)
	}
	result.Seed = convResult.Seed
	result.Diagnostics = convResult.Diagnostics

	return done(writeOutput(f.OutputPath, convResult.Output(params.format), env.Stdout))
}

// readManuscript reads path, or stdin for fileutil.StdioPath.
func readManuscript(path string, stdin io.Reader) ([]byte, error) {
	var (
		content []byte
		err     error
	)
	if fileutil.IsStdio(path) {
		if stdin == nil {
			return nil, fmt.Errorf("%w: stdin unavailable", ErrReadManuscript)
		}
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(path) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadManuscript, err)
	}
	return content, nil
}

// writeOutput writes data to path, or to stdout for fileutil.StdioPath.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if fileutil.IsStdio(path) {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	// #nosec G306 -- gamebooks are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// firstError returns the error of the first failed result.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResultsWithWriter outputs conversion results to env.Stderr, leaving
// stdout to gamebook text piped there. Returns the number of failures.
func printResultsWithWriter(results []ConversionResult, flags commonFlags, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n",
				displayPath(r.InputPath), r.Err, hints.ForManuscript(gamebook.KindOf(r.Err)))
			continue
		}

		if flags.quiet {
			continue
		}

		for _, d := range r.Diagnostics {
			fmt.Fprintf(env.Stderr, "%s: %s\n", displayPath(r.InputPath), d)
		}

		if fileutil.IsStdio(r.OutputPath) && !flags.verbose {
			continue
		}
		switch {
		case flags.verbose:
			fmt.Fprintf(env.Stderr, "%s -> %s (seed %d, %v)\n",
				displayPath(r.InputPath), displayPath(r.OutputPath), r.Seed, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stderr, "Created %s\n", r.OutputPath)
		}
	}

	if !flags.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stderr, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// displayPath names stdin and stdout in messages.
func displayPath(path string) string {
	if fileutil.IsStdio(path) {
		return "<stdio>"
	}
	return path
}
