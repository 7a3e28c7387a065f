package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/grindlemire/btngen/internal/config"
	"github.com/grindlemire/btngen/internal/log"
	"github.com/grindlemire/btngen/internal/report"
)

// globalOptions holds the persistent flags and the state they produce.
type globalOptions struct {
	configPath string
	noColor    bool
	logPath    string

	cfg     *config.Config
	logFile *os.File
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "btngen",
		Short: "Generate Go button builders from .dcx files",
		Long: `btngen compiles .dcx files into Go code that builds chat-message
buttons and action rows.

Each .dcx file declares components:

  component Confirm() {
  	btn!("confirm") => emoji!('✔') "Confirm"
  }

  split_components Menu(home string) {
  	btn!("a") => A,
  	row!(),
  	url!(home) => Home,
  }

and btngen writes the matching functions to menu_dcx.go.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			g.teardown()
		},
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (default: "+config.DefaultFileName+" if present)")
	cmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable colored diagnostics")
	cmd.PersistentFlags().StringVar(&g.logPath, "log", "", "append debug logs to this file (default: $"+log.EnvVar+")")

	cmd.SetVersionTemplate("btngen version {{.Version}}\n")

	cmd.AddCommand(newGenerateCmd(g))
	cmd.AddCommand(newCheckCmd(g))
	cmd.AddCommand(newFmtCmd(g))
	cmd.AddCommand(newExpandCmd(g))
	cmd.AddCommand(newInitCmd(g))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup opens the log file and loads the configuration.
func (g *globalOptions) setup() error {
	path := g.logPath
	if path == "" {
		path = os.Getenv(log.EnvVar)
	}
	if path != "" {
		f, err := log.OpenFile(path)
		if err != nil {
			return err
		}
		g.logFile = f
	}

	cfg, used, err := config.Resolve(g.configPath)
	if err != nil {
		return err
	}
	if used != "" {
		log.Config("loaded %s", used)
	} else {
		log.Config("no config file, using defaults")
	}
	g.cfg = cfg
	return nil
}

func (g *globalOptions) teardown() {
	log.SetOutput(nil)
	if g.logFile != nil {
		g.logFile.Close()
		g.logFile = nil
	}
}

// enableVerboseLog sends logs to w unless --log already chose a file.
func (g *globalOptions) enableVerboseLog(w io.Writer) {
	if g.logFile == nil {
		log.SetOutput(w)
	}
}

// renderer returns a diagnostic renderer for w, colored only when w is a
// terminal and colors are not disabled.
func (g *globalOptions) renderer(w io.Writer) report.Renderer {
	return report.Renderer{Colorize: !g.noColor && isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
