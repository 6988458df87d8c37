// namedgen generates named-argument call forms for annotated Go functions.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/phobologic/namedgen/internal/discover"
	"github.com/phobologic/namedgen/internal/generate"
	"github.com/phobologic/namedgen/internal/lang"
	"github.com/phobologic/namedgen/internal/logger"
	"github.com/phobologic/namedgen/internal/model"
	"github.com/phobologic/namedgen/internal/toon"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		newDiagnostics(os.Stderr).errorf("%v", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "init" {
		return runInit(args[1:], stdout, stderr)
	}

	fs := flag.NewFlagSet("namedgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		recursive   bool
		list        bool
		check       bool
		suffix      string
		logLevel    string
		showVersion bool
	)

	fs.BoolVar(&recursive, "r", false, "process templates in subdirectories too")
	fs.BoolVar(&recursive, "recursive", false, "process templates in subdirectories too")
	fs.BoolVar(&list, "list", false, "print the generated call shapes instead of writing files")
	fs.BoolVar(&check, "check", false, "fail if any generated file is missing or out of date")
	fs.StringVar(&suffix, "suffix", "", "output file suffix (default "+discover.DefaultSuffix+", env NAMEDGEN_SUFFIX)")
	fs.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (env NAMEDGEN_LOG_LEVEL)")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "namedgen %s\n", version)
		return nil
	}

	// Flags win over the environment.
	if suffix == "" {
		suffix = os.Getenv("NAMEDGEN_SUFFIX")
	}
	if suffix == "" {
		suffix = discover.DefaultSuffix
	}
	if filepath.Ext(suffix) != ".go" {
		return fmt.Errorf("suffix %q must end in .go", suffix)
	}
	if logLevel == "" {
		logLevel = os.Getenv("NAMEDGEN_LOG_LEVEL")
	}

	logCfg := logger.DefaultConfig()
	logCfg.Output = stderr
	if logLevel != "" {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logCfg.Level = level
	}
	log := logger.New(logCfg)

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", root)
	}

	if _, err := lang.Go().GetTagQuery(); err != nil {
		return fmt.Errorf("loading query: %w", err)
	}

	files, err := discover.Templates(root, recursive, suffix)
	if err != nil {
		return fmt.Errorf("discovering templates: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no template files found (want //go:build %s)", discover.BuildTag)
	}
	log.Debug("discovered templates", "root", root, "count", len(files))

	results := generateConcurrent(root, files, log)

	diag := newDiagnostics(stderr)
	failed := 0
	for _, r := range results {
		if r.err != nil {
			diag.errorf("%v", r.err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d templates failed", failed, len(files))
	}

	if list {
		rm := &model.Report{Root: filepath.Base(root)}
		for _, r := range results {
			rm.Entries = append(rm.Entries, r.res.Entries...)
		}
		_, _ = fmt.Fprintln(stdout, toon.Encode(rm))
		return nil
	}

	if check {
		stale := 0
		for _, r := range results {
			current, err := os.ReadFile(filepath.Join(root, r.file.Output))
			if err != nil || !bytes.Equal(current, r.res.Source) {
				diag.warnf("%s is out of date with %s", r.file.Output, r.file.Path)
				stale++
			}
		}
		if stale > 0 {
			return fmt.Errorf("%d generated files out of date; run namedgen", stale)
		}
		return nil
	}

	for _, r := range results {
		out := filepath.Join(root, r.file.Output)
		if current, err := os.ReadFile(out); err == nil && bytes.Equal(current, r.res.Source) {
			log.Debug("unchanged", "file", r.file.Output)
			continue
		}
		if err := os.WriteFile(out, r.res.Source, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", r.file.Output, err)
		}
		log.Info("wrote", "file", r.file.Output, "functions", len(r.res.Entries))
	}
	return nil
}

type fileResult struct {
	file discover.FileEntry
	res  *generate.Result
	err  error
}

// generateConcurrent processes templates on a bounded worker pool. Results
// are returned in discovery order.
func generateConcurrent(root string, files []discover.FileEntry, log *slog.Logger) []fileResult {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]fileResult, len(files))

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Each goroutine gets its own parser
			gen, genErr := generate.New(log)

			for idx := range work {
				f := files[idx]
				results[idx].file = f
				if genErr != nil {
					results[idx].err = genErr
					continue
				}

				source, err := os.ReadFile(filepath.Join(root, f.Path))
				if err != nil {
					results[idx].err = fmt.Errorf("reading %s: %w", f.Path, err)
					continue
				}

				res, err := gen.File(f.Path, source)
				if err != nil {
					results[idx].err = err
					continue
				}
				if len(res.Entries) == 0 {
					log.Warn("template has no //named: functions", "file", f.Path)
				}
				results[idx].res = res
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)
	wg.Wait()

	return results
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-suffix": true, "--suffix": true,
	"-log-level": true, "--log-level": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
