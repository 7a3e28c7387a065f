package main

import (
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

type checkOptions struct {
	*globalOptions

	verbose bool
	compact bool
	jobs    int

	stderr io.Writer
}

func newCheckCmd(g *globalOptions) *cobra.Command {
	opts := &checkOptions{globalOptions: g}

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check .dcx files for errors without generating code",
		Long: `Check parses and analyzes .dcx files and reports every problem found,
without writing any Go files. Paths are interpreted as in generate.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stderr = cmd.ErrOrStderr()
			return runCheck(cmd.Context(), opts, inputPaths(args))
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log each file as it is checked")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "print one line per diagnostic without source excerpts")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "files checked in parallel (default: GOMAXPROCS)")

	return cmd
}

func runCheck(ctx context.Context, opts *checkOptions, paths []string) error {
	if opts.verbose {
		opts.enableVerboseLog(opts.stderr)
	}

	files, err := collectDcxFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no .dcx files found")
	}
	log.Debug("checking %d .dcx file(s)", len(files))

	results, err := forEachFile(ctx, opts.jobs, files, opts.checkFile)
	if err != nil {
		return err
	}

	r := opts.renderer(opts.stderr)
	r.Compact = opts.compact

	var failed, errorCount, warningCount int
	for _, res := range results {
		e, w := reportResult(opts.stderr, r, res)
		if e > 0 {
			failed++
		}
		errorCount += e
		warningCount += w
	}

	if summary := r.Summary(errorCount, warningCount); summary != "" {
		fmt.Fprintln(opts.stderr, summary)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) had errors", failed)
	}

	log.Debug("all %d file(s) passed checks", len(files))
	return nil
}

// checkFile parses and analyzes a single .dcx file.
func (opts *checkOptions) checkFile(path string) fileResult {
	res := fileResult{path: path}

	source, err := os.ReadFile(path)
	if err != nil {
		res.err = fmt.Errorf("reading file: %w", err)
		return res
	}
	res.source = string(source)

	file, err := compgen.NewParser(compgen.NewLexer(filepath.Base(path), res.source)).ParseFile()
	if err != nil {
		res.err = err
		return res
	}

	analyzer := compgen.NewAnalyzer(opts.cfg.Options())
	res.err = analyzer.Analyze(file)
	res.warnings = analyzer.Warnings
	return res
}
