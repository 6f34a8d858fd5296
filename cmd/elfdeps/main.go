// Package main provides the entry point for the elfdeps tool. It reads ELF
// object paths from the command line or stdin, extracts the dependency
// tokens each file provides or requires, and prints the selected list one
// token per line. The exit status reports whether every file could be
// opened and decoded.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/isseis/go-elfdeps/internal/config"
	"github.com/isseis/go-elfdeps/internal/elfdeps"
	"github.com/isseis/go-elfdeps/internal/logging"
)

var (
	provides       = flag.Bool("provides", false, "emit the provides token list (default)")
	requires       = flag.Bool("requires", false, "emit the requires token list")
	addArch        = flag.Bool("add-arch", false, "also emit architecture-tagged token variants")
	sonameOnly     = flag.Bool("soname-only", false, "emit only identity-level tokens")
	noFakeSoname   = flag.Bool("no-fake-soname", false, "do not synthesize a soname from the file name")
	noFilterSoname = flag.Bool("no-filter-soname", false, "disable soname sanity filtering")
	noNonarch      = flag.Bool("no-nonarch", false, "do not emit marker-less and class-marker token variants")
	requireInterp  = flag.Bool("require-interp", false, "emit the interpreter path as a literal requirement")
	configPath     = flag.String("config", "", "path to TOML defaults file")
	logLevel       = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	logDir         = flag.String("log-dir", "", "directory to place the per-run JSON log (auto-named)")
)

func main() {
	os.Exit(run(logging.GenerateRunID()))
}

func run(runID string) int {
	if len(os.Args) < 2 {
		flag.Usage()
		return 2
	}
	flag.Parse()

	if err := logging.Setup(logging.Options{
		Level:  *logLevel,
		LogDir: *logDir,
		RunID:  runID,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "elfdeps: failed to set up logging: %v\n", err)
		return 1
	}

	cfg, err := buildConfig()
	if err != nil {
		slog.Error("failed to load defaults file", "path", *configPath, "error", err, "run_id", runID)
		return 1
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	status := 0
	process := func(path string) {
		result, err := elfdeps.ProcessFile(path, cfg)
		if err != nil {
			slog.Error("dependency extraction failed", "path", path, "error", err, "run_id", runID)
			status = 1
			return
		}
		list := result.Provides
		if *requires {
			list = result.Requires
		}
		for _, token := range list {
			fmt.Fprintln(out, token)
		}
	}

	if args := flag.Args(); len(args) > 0 {
		for _, path := range args {
			process(path)
		}
	} else {
		// Normally the file list comes from stdin, one path per line.
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			process(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			slog.Error("failed to read file list from stdin", "error", err, "run_id", runID)
			status = 1
		}
	}
	return status
}

// buildConfig derives the extraction configuration from the built-in
// defaults, the optional TOML defaults file, and the command-line flags, in
// that order of precedence.
func buildConfig() (elfdeps.Config, error) {
	cfg := elfdeps.DefaultConfig()

	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			return cfg, err
		}
		f.Defaults.Apply(&cfg)
	}

	if *sonameOnly {
		cfg.SonameOnly = true
	}
	if *addArch {
		cfg.AddArch = true
	}
	if *requireInterp {
		cfg.RequireInterp = true
	}
	if *noFakeSoname {
		cfg.FakeSoname = false
	}
	if *noFilterSoname {
		cfg.FilterSoname = false
	}
	if *noNonarch {
		cfg.AddNonarch = false
	}

	return cfg, nil
}
