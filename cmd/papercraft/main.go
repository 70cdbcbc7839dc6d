// Command papercraft converts markdown files to paginated PDF documents.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	papercraft "github.com/humaxai2025/Papercraft"
	"github.com/humaxai2025/Papercraft/observability"
)

// Version is set at build time via ldflags.
var Version = "dev"

type flags struct {
	configPath  string
	outputDir   string
	title       string
	branding    string
	pageSize    string
	orientation string
	workers     int
	highlight   bool
	compress    bool
	verbose     bool
	version     bool
}

func parseFlags(args []string) (*flags, []string, error) {
	fs := flag.NewFlagSet("papercraft", flag.ContinueOnError)
	f := &flags{}

	fs.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	fs.StringVarP(&f.outputDir, "output", "o", "", "output directory (default: alongside input)")
	fs.StringVarP(&f.title, "title", "t", "", "document title shown in the page header")
	fs.StringVar(&f.branding, "branding", "", "footer branding string")
	fs.StringVar(&f.pageSize, "page-size", "", "page size: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "portrait or landscape")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (default: one per CPU)")
	fs.BoolVar(&f.highlight, "highlight", false, "enable syntax highlighting in code blocks")
	fs.BoolVar(&f.compress, "compress", true, "compress PDF content streams")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose logging")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func main() {
	f, inputs, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if f.version {
		fmt.Println("papercraft", Version)
		return
	}
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: papercraft [flags] input.md [input2.md ...]")
		os.Exit(1)
	}

	// maxprocs failures only mean an invalid GOMAXPROCS env value; runtime
	// defaults apply and the program continues.
	if f.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := observability.LevelInfo
	if f.verbose {
		level = observability.LevelDebug
	}
	log := observability.NewWriterLogger(os.Stderr, level)

	pool := papercraft.NewServicePool(
		papercraft.ResolvePoolSize(f.workers),
		papercraft.WithConfig(cfg),
		papercraft.WithLogger(log),
	)
	defer pool.Close()

	if code := convertAll(pool, inputs, f.outputDir); code != 0 {
		os.Exit(code)
	}
}

// resolveConfig layers CLI flags over the config file over defaults.
func resolveConfig(f *flags) (*papercraft.Config, error) {
	cfg := papercraft.DefaultConfig()
	if f.configPath != "" {
		loaded, err := papercraft.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if f.title != "" {
		cfg.Title = f.title
	}
	if f.branding != "" {
		cfg.Branding = f.branding
	}
	if f.pageSize != "" {
		cfg.PageSize = f.pageSize
	}
	if f.orientation != "" {
		cfg.Orientation = f.orientation
	}
	if f.highlight {
		cfg.CodeHighlight = true
	}
	cfg.Compress = f.compress
	return cfg, cfg.Validate()
}

// convertAll fans the inputs out across the pool and reports per-file
// failures without stopping the batch. Returns the process exit code.
func convertAll(pool *papercraft.ServicePool, inputs []string, outputDir string) int {
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for _, input := range inputs {
		wg.Add(1)
		go func(input string) {
			defer wg.Done()
			svc := pool.Acquire()
			defer pool.Release(svc)

			output := outputPath(input, outputDir)
			if err := svc.ConvertFile(input, output); err != nil {
				fmt.Fprintf(os.Stderr, "papercraft: %v\n", err)
				mu.Lock()
				failures++
				mu.Unlock()
				return
			}
			fmt.Printf("%s -> %s\n", input, output)
		}(input)
	}
	wg.Wait()

	if failures > 0 {
		return 1
	}
	return 0
}

// outputPath derives the PDF path for an input file, honoring the output
// directory override.
func outputPath(input, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".pdf"
	if outputDir != "" {
		return filepath.Join(outputDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}
