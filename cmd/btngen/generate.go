package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grindlemire/btngen/internal/compgen"
	"github.com/grindlemire/btngen/internal/log"
)

type generateOptions struct {
	*globalOptions

	verbose     bool
	watch       bool
	skipImports bool
	jobs        int

	stdout io.Writer
	stderr io.Writer
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	opts := &generateOptions{globalOptions: g}

	cmd := &cobra.Command{
		Use:   "generate [path...]",
		Short: "Generate Go files from .dcx files",
		Long: `Generate compiles .dcx files into Go source files.

Paths may be files, directories (non-recursive), "dir/..." for a recursive
walk, or glob patterns such as "ui/**/*.dcx". The default is the current
directory. Each menu.dcx is written to menu_dcx.go next to it, and files
are only rewritten when their content changes.`,
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runGenerate(cmd.Context(), opts, inputPaths(args))
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log each file as it is processed")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate when .dcx files change")
	cmd.Flags().BoolVar(&opts.skipImports, "skip-imports", false, "format output with gofmt only, without resolving imports")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "files processed in parallel (default: GOMAXPROCS)")

	return cmd
}

func runGenerate(ctx context.Context, opts *generateOptions, paths []string) error {
	if opts.verbose {
		opts.enableVerboseLog(opts.stderr)
	}

	files, err := collectDcxFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 && !opts.watch {
		return errors.New("no .dcx files found")
	}
	log.Generate("found %d .dcx file(s)", len(files))

	results, err := opts.generateFiles(ctx, files)
	if err != nil {
		return err
	}
	failed := opts.report(results)

	if opts.watch {
		return opts.watchFiles(ctx, paths)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) had errors", failed)
	}
	return nil
}

// generateFiles processes files in parallel. Results are returned in the
// order of files.
func (opts *generateOptions) generateFiles(ctx context.Context, files []string) ([]fileResult, error) {
	return forEachFile(ctx, opts.jobs, files, opts.generateFile)
}

// report prints the diagnostics of results and returns the number of files
// that failed.
func (opts *generateOptions) report(results []fileResult) int {
	r := opts.renderer(opts.stderr)
	failed := 0
	for _, res := range results {
		errCount, _ := reportResult(opts.stderr, r, res)
		if errCount > 0 {
			failed++
			continue
		}
		if res.changed {
			log.Generate("%s -> %s", res.path, opts.cfg.OutputPath(res.path))
		} else {
			log.Generate("%s unchanged", res.path)
		}
	}
	return failed
}

// generateFile compiles one .dcx file and writes its Go file when the
// output differs from what is on disk.
func (opts *generateOptions) generateFile(path string) fileResult {
	res := fileResult{path: path}

	source, err := os.ReadFile(path)
	if err != nil {
		res.err = fmt.Errorf("reading file: %w", err)
		return res
	}
	res.source = string(source)

	// The base name goes into the header comment and line directives.
	filename := filepath.Base(path)
	compileOpts := opts.cfg.Options()

	file, err := compgen.NewParser(compgen.NewLexer(filename, res.source)).ParseFile()
	if err != nil {
		res.err = err
		return res
	}

	analyzer := compgen.NewAnalyzer(compileOpts)
	err = analyzer.Analyze(file)
	res.warnings = analyzer.Warnings
	if err != nil {
		res.err = err
		return res
	}

	generator := compgen.NewGenerator(compileOpts)
	generator.SkipImports = opts.skipImports
	output, err := generator.Generate(file, filename)
	if err != nil {
		res.err = err
		return res
	}

	outputPath := opts.cfg.OutputPath(path)
	if existing, err := os.ReadFile(outputPath); err == nil && bytes.Equal(existing, output) {
		return res
	}
	if err := os.WriteFile(outputPath, output, 0644); err != nil {
		res.err = fmt.Errorf("writing file: %w", err)
		return res
	}
	res.changed = true
	return res
}
