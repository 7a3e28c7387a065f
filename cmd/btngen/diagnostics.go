package main

import (
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/btngen/internal/compgen"
	"github.com/grindlemire/btngen/internal/log"
	"github.com/grindlemire/btngen/internal/report"
)

// fileResult is the outcome of processing one .dcx file.
type fileResult struct {
	path     string
	source   string
	changed  bool
	output   string
	err      error
	warnings []*compgen.Error
}

// forEachFile runs fn over files with at most jobs calls in flight, or
// GOMAXPROCS when jobs is not positive. Results keep the order of files so
// diagnostics print deterministically.
func forEachFile(ctx context.Context, jobs int, files []string, fn func(path string) fileResult) ([]fileResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = fn(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reportResult renders the errors and warnings of res to w and returns how
// many of each were printed. Warnings are also logged.
func reportResult(w io.Writer, r report.Renderer, res fileResult) (errorCount, warningCount int) {
	var diags []*compgen.Error
	if res.err != nil {
		diags = relocate(compgen.Diagnostics(res.err), res.path)
	}
	warnings := relocate(res.warnings, res.path)
	for _, wn := range warnings {
		log.Warn("%s: %s", wn.Pos, wn.Message)
	}

	errorCount, warningCount, _ = r.Render(w, res.source, diags, warnings)
	return errorCount, warningCount
}

// relocate copies diags with positions pointing at path instead of the
// base name the compiler saw. Diagnostics without a position get path as
// a message prefix.
func relocate(diags []*compgen.Error, path string) []*compgen.Error {
	if len(diags) == 0 {
		return nil
	}
	out := make([]*compgen.Error, len(diags))
	for i, d := range diags {
		c := *d
		if c.Pos.Line > 0 {
			c.Pos.File = path
		} else {
			c.Message = path + ": " + c.Message
		}
		out[i] = &c
	}
	return out
}
