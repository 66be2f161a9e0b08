package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gamebook <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Number, shuffle and link the paragraphs of manuscripts")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'gamebook help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gamebook convert [flags] [manuscript...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shuffle the paragraphs of each manuscript, number them, resolve links")
	fmt.Fprintln(w, "and expand macros. Reads stdin when no manuscript or \"-\" is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, directory, or - for stdout")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: text, html, pdf")
	fmt.Fprintln(w, "                            (default: from --output extension, else text)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Numbering:")
	fmt.Fprintln(w, "      --seed <n>            Shuffle seed, for reproducible numbering")
	fmt.Fprintln(w, "      --stable              Derive the seed from the manuscript content")
	fmt.Fprintln(w, "      --first <n>           Number of the first paragraph (default 1)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --title <s>           Document title (default: file name)")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file path, or raw CSS")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory searched for styles/<name>.css first")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "  -t, --timeout <d>         conversion time limit (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "      --log-file <path>     Write a JSON run log")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show seeds and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manuscript:")
	fmt.Fprintln(w, "  *NAME:text                Define macro NAME, used as #{{NAME}}")
	fmt.Fprintln(w, "  ●label                    Start a paragraph placed by the shuffle")
	fmt.Fprintln(w, "  ●●3                       Start a paragraph pinned at number 3")
	fmt.Fprintln(w, "  ●●★LAST★                  The terminal paragraph, numbered last")
	fmt.Fprintln(w, "  ##label##                 Link, replaced by the paragraph number")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  GAMEBOOK_CONFIG, GAMEBOOK_FORMAT, GAMEBOOK_SEED, GAMEBOOK_STABLE,")
	fmt.Fprintln(w, "  GAMEBOOK_FIRST, GAMEBOOK_STYLE, GAMEBOOK_TITLE, GAMEBOOK_PAGE_SIZE,")
	fmt.Fprintln(w, "  GAMEBOOK_TIMEOUT, GAMEBOOK_OUTPUT_DIR, GAMEBOOK_WORKERS,")
	fmt.Fprintln(w, "  GAMEBOOK_LOG_FILE, GAMEBOOK_LOG_LEVEL")
	fmt.Fprintln(w, "  Flags override environment, which overrides the config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 error, 2 usage, 3 I/O, 4 browser, 5 manuscript")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: gamebook version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		printUsage(env.Stdout)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
