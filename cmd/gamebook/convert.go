package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	gamebook "github.com/alnah/go-gamebook"
	"github.com/alnah/go-gamebook/internal/config"
	"github.com/alnah/go-gamebook/internal/fileutil"
	"github.com/alnah/go-gamebook/internal/hints"
	"github.com/alnah/go-gamebook/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrReadManuscript     = errors.New("failed to read manuscript")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrConverterInit      = errors.New("failed to initialize converter")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidEnv         = errors.New("invalid environment variable")
	ErrConflictingFlags   = errors.New("conflicting flags")
	ErrOutputRequired     = errors.New("several inputs need an output directory")
	ErrStdinInBatch       = errors.New("stdin cannot be combined with other inputs")
	ErrDuplicateOutput    = errors.New("two inputs write the same output file")
	ErrOverwriteInput     = errors.New("output would overwrite its input")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input gamebook.Input) (*gamebook.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*gamebook.Converter)(nil)

// FileToConvert represents a single manuscript to process.
// fileutil.StdioPath stands for stdin as input and stdout as output.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	format gamebook.Format
	title  string // fixed title; empty = derived from the input name
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	start := env.Now()

	if flags.isSet("seed") && flags.numbering.stable {
		return fmt.Errorf("%w: --seed and --stable", ErrConflictingFlags)
	}

	envCfg, err := loadEnvConfig(env.Getenv)
	if err != nil {
		return err
	}
	if !flags.common.quiet && env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	workers := flags.workers
	if !flags.isSet("workers") {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := resolveFormat(cfg.Output.Format, flags.output)
	if err != nil {
		return err
	}

	files, err := planOutputs(positionalArgs, flags.output, cfg.Output.DefaultDir, format)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{File: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return err
	}

	poolSize := min(gamebook.ResolvePoolSize(workers), len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := env.NewPool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	params := &conversionParams{format: format, title: cfg.HTML.Title}
	results := convertBatch(ctx, pool, files, params, env)

	failedCount := printResultsWithWriter(results, flags.common, env)
	logger.Info("run finished",
		zap.Int("files", len(results)),
		zap.Int("failed", failedCount),
		zap.Duration("elapsed", env.Now().Sub(start)))

	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", failedCount, firstError(results))
	}
	return nil
}

// isSet reports whether the named flag was given on the command line.
func (f *convertFlags) isSet(name string) bool {
	return f.changed != nil && f.changed(name)
}

// loadConfig loads the config named by the flag, else by GAMEBOOK_CONFIG.
// Neither set means defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}

	if flags.isSet("seed") {
		seed := flags.numbering.seed
		cfg.Shuffle.Seed = &seed
		cfg.Shuffle.Stable = false
	}
	if flags.numbering.stable {
		cfg.Shuffle.Stable = true
		cfg.Shuffle.Seed = nil
	}
	if flags.isSet("first") {
		first := flags.numbering.first
		cfg.Numbering.First = &first
	}

	if flags.render.title != "" {
		cfg.HTML.Title = flags.render.title
	}
	if flags.render.style != "" {
		cfg.HTML.Style = flags.render.style
	}
	if flags.render.assetPath != "" {
		cfg.Assets.BasePath = flags.render.assetPath
	}
	if flags.render.pageSize != "" {
		cfg.PDF.PageSize = flags.render.pageSize
	}
	if flags.render.timeout != "" {
		cfg.PDF.Timeout = flags.render.timeout
	}

	if flags.log.file != "" {
		cfg.Log.File = flags.log.file
	}
	if flags.log.level != "" {
		cfg.Log.Level = flags.log.level
	}
}

// converterOptions translates a validated config into converter options.
func converterOptions(cfg *config.Config, logger *zap.Logger) ([]gamebook.Option, error) {
	opts := []gamebook.Option{
		gamebook.WithSyntax(gamebook.Syntax{
			MacroSigil:     cfg.Syntax.MacroSigil,
			ParagraphSigil: cfg.Syntax.ParagraphSigil,
			TerminalLabel:  cfg.Syntax.TerminalLabel,
			LinkDelimiter:  cfg.Syntax.LinkDelimiter,
			MacroOpen:      cfg.Syntax.MacroOpen,
			MacroClose:     cfg.Syntax.MacroClose,
		}),
		gamebook.WithLogger(logger),
		gamebook.WithStyle(cfg.HTML.Style),
		gamebook.WithAssetPath(cfg.Assets.BasePath),
		gamebook.WithTitle(cfg.HTML.Title),
		gamebook.WithPageSize(cfg.PDF.PageSize),
	}

	if cfg.Numbering.First != nil {
		opts = append(opts, gamebook.WithFirstPosition(*cfg.Numbering.First))
	}

	switch {
	case cfg.Shuffle.Seed != nil:
		opts = append(opts, gamebook.WithSeed(*cfg.Shuffle.Seed))
	case cfg.Shuffle.Stable:
		opts = append(opts, gamebook.WithStableSeed())
	}

	timeout, err := cfg.PDF.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, gamebook.WithTimeout(timeout))
	}

	return opts, nil
}

// resolveFormat picks the output format: the configured name when set,
// else the extension of the output file, else text.
func resolveFormat(name, output string) (gamebook.Format, error) {
	if name != "" {
		return gamebook.ParseFormat(name)
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".html", ".htm":
		return gamebook.FormatHTML, nil
	case ".pdf":
		return gamebook.FormatPDF, nil
	}
	return gamebook.FormatText, nil
}

// planOutputs pairs every input with its output path.
//
// No input reads stdin. A single input goes to output when given (a file,
// an existing directory, or "-"), else into defaultDir, else to stdout.
// Several inputs need a directory: output, else defaultDir.
func planOutputs(inputs []string, output, defaultDir string, format gamebook.Format) ([]FileToConvert, error) {
	if len(inputs) == 0 {
		inputs = []string{fileutil.StdioPath}
	}

	if len(inputs) == 1 {
		in := inputs[0]
		var out string
		switch {
		case output != "" && !fileutil.IsStdio(output) && fileutil.DirExists(output):
			out = outputIn(output, in, format)
		case output != "":
			out = output
		case defaultDir != "" && !fileutil.IsStdio(in):
			out = outputIn(defaultDir, in, format)
		default:
			out = fileutil.StdioPath
		}
		if err := checkNotInput(in, out); err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: in, OutputPath: out}}, nil
	}

	dir := output
	if dir == "" {
		dir = defaultDir
	}
	if dir == "" || fileutil.IsStdio(dir) || fileutil.FileExists(dir) {
		return nil, fmt.Errorf("%w: pass --output <dir>", ErrOutputRequired)
	}

	files := make([]FileToConvert, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		if fileutil.IsStdio(in) {
			return nil, ErrStdinInBatch
		}
		out := outputIn(dir, in, format)
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%w: %s and %s -> %s", ErrDuplicateOutput, prev, in, out)
		}
		if err := checkNotInput(in, out); err != nil {
			return nil, err
		}
		seen[out] = in
		files = append(files, FileToConvert{InputPath: in, OutputPath: out})
	}
	return files, nil
}

// outputIn returns the path in dir for the output of input.
// Stdin is named "gamebook".
func outputIn(dir, input string, format gamebook.Format) string {
	base := "gamebook"
	if !fileutil.IsStdio(input) {
		base = filepath.Base(input)
	}
	return filepath.Join(dir, fileutil.ReplaceExt(base, format.Extension()))
}

// checkNotInput rejects an output that names its own input file.
func checkNotInput(in, out string) error {
	if fileutil.IsStdio(in) || fileutil.IsStdio(out) {
		return nil
	}
	absIn, errIn := filepath.Abs(in)
	absOut, errOut := filepath.Abs(out)
	if errIn == nil && errOut == nil && absIn == absOut {
		return fmt.Errorf("%w: %s", ErrOverwriteInput, in)
	}
	return nil
}

// validateWorkers checks the worker count. Zero means auto.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > gamebook.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, gamebook.MaxPoolSize)
	}
	return nil
}

// titleFor returns the document title for one input.
func titleFor(params *conversionParams, input string) string {
	if params.title != "" || fileutil.IsStdio(input) {
		return params.title
	}
	return fileutil.ReplaceExt(filepath.Base(input), "")
}
