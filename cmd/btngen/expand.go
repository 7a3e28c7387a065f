package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grindlemire/btngen/internal/compgen"
	"github.com/grindlemire/btngen/internal/report"
)

func newExpandCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Print the Go expression for a component snippet",
		Long: `Expand compiles a component snippet and prints the Go expression it
expands to. The snippet is read from the arguments, or from stdin when none
are given.

  btngen expand component 'btn!("ok") => "OK"'
  echo 'btn!("a") => A, row!(), url!(u) => U' | btngen expand split`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "component [snippet...]",
		Short: "Expand a single component to a button builder chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, g, args, compgen.ExpandComponent)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "split [snippet...]",
		Aliases: []string{"split_components"},
		Short:   "Expand a component list to a slice of action rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, g, args, compgen.ExpandComponents)
		},
	})

	return cmd
}

type expandFunc func(src string, opts compgen.Options) (string, error)

func runExpand(cmd *cobra.Command, g *globalOptions, args []string, expand expandFunc) error {
	src, name, err := snippetSource(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	r := g.renderer(stderr)

	opts := g.cfg.Options()
	opts.Filename = name
	opts.OnWarning = func(w *compgen.Error) {
		fmt.Fprint(stderr, r.Diagnostic(w, report.Warning, src))
	}

	expr, err := expand(src, opts)
	if err != nil {
		errs := compgen.Diagnostics(err)
		r.Render(stderr, src, errs, nil)
		return fmt.Errorf("%s", r.Summary(len(errs), 0))
	}

	fmt.Fprintln(cmd.OutOrStdout(), expr)
	return nil
}

// snippetSource joins args into one snippet, or reads stdin when there are
// none. The returned name labels diagnostics.
func snippetSource(stdin io.Reader, args []string) (src, name string, err error) {
	if len(args) > 0 {
		return strings.Join(args, " "), "<args>", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}
