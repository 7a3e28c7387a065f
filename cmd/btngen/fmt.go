package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/grindlemire/btngen/internal/formatter"
)

type fmtOptions struct {
	*globalOptions

	check  bool // report unformatted files and fail instead of writing
	stdout bool // print formatted source instead of writing
	diff   bool // print a unified diff instead of writing
	jobs   int

	out    io.Writer
	stderr io.Writer
}

func newFmtCmd(g *globalOptions) *cobra.Command {
	opts := &fmtOptions{globalOptions: g}

	cmd := &cobra.Command{
		Use:   "fmt [path...]",
		Short: "Format .dcx files",
		Long: `Fmt rewrites .dcx files in their canonical layout. Embedded Go
expressions and declarations are gofmt'd, the arrows of split_components
entries are aligned, and imports are added or removed as the code needs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.out = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runFmt(cmd.Context(), opts, inputPaths(args))
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "exit with an error if any file is not formatted")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print formatted source to stdout")
	cmd.Flags().BoolVarP(&opts.diff, "diff", "d", false, "print a unified diff of the changes")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "files formatted in parallel (default: GOMAXPROCS)")
	cmd.MarkFlagsMutuallyExclusive("check", "stdout", "diff")

	return cmd
}

func runFmt(ctx context.Context, opts *fmtOptions, paths []string) error {
	files, err := collectDcxFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no .dcx files found")
	}

	fmtr := formatter.New()
	fmtr.Options = opts.cfg.Options()

	results, err := forEachFile(ctx, opts.jobs, files, func(path string) fileResult {
		return opts.formatFile(fmtr, path)
	})
	if err != nil {
		return err
	}

	r := opts.renderer(opts.stderr)
	var errorCount, notFormattedCount int
	for _, res := range results {
		if e, _ := reportResult(opts.stderr, r, res); e > 0 {
			errorCount++
			continue
		}

		switch {
		case opts.stdout:
			if len(files) > 1 {
				fmt.Fprintf(opts.out, "// %s\n", res.path)
			}
			fmt.Fprint(opts.out, res.output)
		case opts.diff:
			if res.changed {
				fmt.Fprint(opts.out, unifiedDiff(res.path, res.source, res.output))
			}
		case opts.check:
			if res.changed {
				fmt.Fprintf(opts.stderr, "%s is not formatted\n", res.path)
				notFormattedCount++
			}
		default:
			if res.changed {
				fmt.Fprintf(opts.out, "Formatted: %s\n", res.path)
			}
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if notFormattedCount > 0 {
		return fmt.Errorf("%d file(s) not formatted", notFormattedCount)
	}
	return nil
}

// formatFile formats one file, writing it back unless a read-only mode is
// selected.
func (opts *fmtOptions) formatFile(fmtr *formatter.Formatter, path string) fileResult {
	res := fileResult{path: path}

	source, err := os.ReadFile(path)
	if err != nil {
		res.err = fmt.Errorf("reading file: %w", err)
		return res
	}
	res.source = string(source)

	formatted, err := fmtr.FormatWithResult(filepath.Base(path), res.source)
	if err != nil {
		res.err = err
		return res
	}
	res.output = formatted.Content
	res.changed = formatted.Changed

	if res.changed && !opts.check && !opts.stdout && !opts.diff {
		if err := os.WriteFile(path, []byte(formatted.Content), 0644); err != nil {
			res.err = fmt.Errorf("writing file: %w", err)
		}
	}
	return res
}

// unifiedDiff renders the change from before to after as a unified diff.
func unifiedDiff(path, before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path + ".orig",
		ToFile:   path,
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return diff
}
