package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	internal "github.com/murreyjs/doppel/doppel"
	"github.com/murreyjs/doppel/doppel/config"
	"github.com/murreyjs/doppel/doppel/content"
	"github.com/murreyjs/doppel/doppel/hashing"
	"github.com/murreyjs/doppel/doppel/interfaces"
	"github.com/murreyjs/doppel/doppel/options"
	"github.com/murreyjs/doppel/doppel/removal"
	"github.com/murreyjs/doppel/doppel/scanner"
	"github.com/murreyjs/doppel/doppel/terminal"
	"github.com/murreyjs/doppel/doppel/trees"

	"github.com/ZanzyTHEbar/assert-lib"
)

// hotspotLimit caps the verbose per-directory concentration listing
const hotspotLimit = 5

type cliFlags struct {
	directory  string
	content    bool
	dryRun     bool
	auto       bool
	verbose    bool
	configPath string
}

func main() {
	flags := parseFlags()

	setupLogging(flags.verbose)

	if flags.verbose {
		fmt.Printf("doppel %s - Duplicate file eliminator\n", internal.Version)
		fmt.Println(strings.Repeat("=", 50))
	}

	if _, err := config.LoadConfig(flags.configPath); err != nil {
		logger := internal.GetLogger()
		logger.Error().Err(err).Msg("failed to load configuration")
		os.Exit(3)
	}

	rootPath := validateDirectory(flags.directory)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	if err := run(ctx, flags, rootPath); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			fmt.Println("\n\nOperation interrupted by user.")
			os.Exit(1)
		case errors.Is(err, fs.ErrPermission):
			fmt.Fprintf(os.Stderr, "Permission error: %v\n", err)
			os.Exit(2)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
	}
}

func parseFlags() cliFlags {
	var flags cliFlags

	flag.BoolVar(&flags.content, "content", false, "Compare file content, not just names (slower but more accurate)")
	flag.BoolVar(&flags.dryRun, "dry-run", false, "Show duplicates without interactive removal")
	flag.BoolVar(&flags.auto, "auto", false, "Automatically keep newest file from each duplicate set (no prompts)")
	flag.BoolVar(&flags.verbose, "verbose", false, "Show detailed progress information")
	flag.BoolVar(&flags.verbose, "v", false, "Shorthand for -verbose")
	flag.StringVar(&flags.configPath, "config", "", "Path to a config file (default: search ./config.yaml)")
	version := flag.Bool("version", false, "Show version and exit")

	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("doppel %s\n", internal.Version)
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "doppel: unexpected argument '%s'\n", flag.Arg(1))
		fmt.Fprintf(os.Stderr, "Try 'doppel --help' for more information.\n")
		os.Exit(1)
	}

	flags.directory = "."
	if flag.NArg() > 0 {
		flags.directory = flag.Arg(0)
	}

	return flags
}

func usage() {
	fmt.Fprintf(os.Stderr, "doppel - find and eliminate duplicate filenames in a directory tree\n\n")
	fmt.Fprintf(os.Stderr, "Usage: doppel [OPTIONS] [directory]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  doppel                    # Search current directory\n")
	fmt.Fprintf(os.Stderr, "  doppel /path/to/folder    # Search specific directory\n")
	fmt.Fprintf(os.Stderr, "  doppel --content ~/docs   # Compare file content too\n")
	fmt.Fprintf(os.Stderr, "  doppel --dry-run .        # Preview without deletion\n")
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// validateDirectory resolves the directory argument and exits with status 1
// when it does not name an existing directory.
func validateDirectory(directory string) string {
	path, err := filepath.Abs(directory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Directory '%s' does not exist.\n", directory)
		os.Exit(1)
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Directory '%s' does not exist.\n", directory)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: '%s' is not a directory.\n", directory)
		os.Exit(1)
	}

	return path
}

func run(ctx context.Context, flags cliFlags, rootPath string) error {
	cfg := config.AppConfig.Doppel
	console := newConsole(cfg.Display)

	hasher := hashing.New(options.HashAlgorithm(cfg.Scan.HashAlgorithm), cfg.Scan.ChunkSize)

	if flags.verbose {
		mode := "Name comparison"
		if flags.content {
			mode = "Content comparison"
		}
		console.Outputf("Scanning mode: %s", mode)
	}

	scan := scanner.New(hasher, options.ScanOptions{
		CompareContent:   flags.content,
		IgnoreFile:       cfg.Scan.IgnoreFile,
		ExcludePatterns:  cfg.Scan.ExcludePatterns,
		ProgressInterval: cfg.Scan.ProgressInterval,
	})
	scan.SetProgress(func(scanned int) {
		console.Outputf("Scanned %d files...", scanned)
	})

	console.Outputf("Scanning directory: %s", rootPath)

	index, err := scan.Scan(ctx, rootPath)
	if err != nil {
		return err
	}
	console.Outputf("Scan complete. Found %d files.", scan.Scanned())

	var grouper interfaces.ContentGrouper
	if flags.content {
		grouper = content.NewGrouper(hasher)
	}

	console.ShowScanReport(index, grouper)

	if flags.verbose {
		showHotspots(console, scan.PathIndex())
	}

	if flags.dryRun {
		console.Outputf("\nDry run complete. Found %d sets of duplicates.", index.Len())
		if index.Len() > 0 {
			console.Outputf("Potential files to remove: %d", index.TotalFiles()-index.Len())
		}
		return nil
	}

	mode := options.RemovalInteractive
	if flags.auto {
		mode = options.RemovalAutomatic
	}

	assertHandler := assert.NewAssertHandler()
	engine := removal.NewEngine(index, grouper, console, assertHandler, options.RemovalOptions{
		Mode:           mode,
		CompareContent: flags.content,
	})

	_, err = engine.Run(ctx)
	return err
}

func newConsole(display config.DisplayConfig) *terminal.Console {
	return terminal.NewConsole(os.Stdin, os.Stdout, terminal.Options{
		Color:          display.ColorOutput && terminal.IsTerminal(os.Stdout),
		Width:          terminal.DetectWidth(os.Stdout, 0),
		FingerprintLen: display.FingerprintLen,
	})
}

// showHotspots lists the directories holding the most duplicates
func showHotspots(console *terminal.Console, index *trees.PathIndex) {
	top := index.TopDirectories(hotspotLimit)
	if len(top) == 0 {
		return
	}

	console.Output("\nDirectories with the most duplicates:")
	for _, dir := range top {
		console.Outputf("  %4d  %s", dir.Count, dir.Path)
	}
	if prefix := index.CommonPrefix(); prefix != "" {
		console.Outputf("Common ancestor: %s", prefix)
	}
}
