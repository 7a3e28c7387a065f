// Package report renders compiler diagnostics for humans.
//
// A rendered diagnostic looks like:
//
//	menu.dcx:4:2: error: cannot mix url and btn components in the same row
//	 4 |     url!(u) => U,
//	   |     ^
//	   = help: insert row!() before this url
//
// The caret is placed by display width, so lines containing wide graphemes
// or tabs still point at the right column.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"github.com/grindlemire/btngen/internal/compgen"
)

// TabstopWidth is the width tabs are expanded to in source excerpts.
const TabstopWidth = 4

// Level is the severity of a diagnostic.
type Level int

const (
	Error Level = iota
	Warning
)

func (l Level) String() string {
	if l == Warning {
		return "warning"
	}
	return "error"
}

// Renderer configures diagnostic rendering.
type Renderer struct {
	// Colorize enables ANSI escapes.
	Colorize bool
	// Compact prints only the one-line header for each diagnostic.
	Compact bool
}

// Render writes every error and warning for one source file to out.
// source may be empty, in which case no excerpts are printed.
func (r Renderer) Render(out io.Writer, source string, errs, warnings []*compgen.Error) (errorCount, warningCount int, err error) {
	lines := splitLines(source)
	for _, d := range errs {
		if _, err = io.WriteString(out, r.diagnostic(d, Error, lines)); err != nil {
			return
		}
		errorCount++
	}
	for _, d := range warnings {
		if _, err = io.WriteString(out, r.diagnostic(d, Warning, lines)); err != nil {
			return
		}
		warningCount++
	}
	return
}

// Diagnostic renders a single diagnostic to a string.
func (r Renderer) Diagnostic(d *compgen.Error, level Level, source string) string {
	return r.diagnostic(d, level, splitLines(source))
}

func (r Renderer) diagnostic(d *compgen.Error, level Level, lines []string) string {
	c := r.colors(level)
	var sb strings.Builder

	if d.Pos.Line > 0 {
		c.bold.Fprint(&sb, d.Pos.String(), ": ")
	}
	c.level.Fprint(&sb, level.String(), ":")
	c.bold.Fprint(&sb, " ", d.Message)
	sb.WriteByte('\n')

	if r.Compact {
		if d.Hint != "" {
			fmt.Fprintf(&sb, "  help: %s\n", d.Hint)
		}
		return sb.String()
	}

	if d.Pos.Line >= 1 && d.Pos.Line <= len(lines) {
		line := lines[d.Pos.Line-1]
		gutter := strconv.Itoa(d.Pos.Line)
		pad := strings.Repeat(" ", len(gutter))

		c.gutter.Fprint(&sb, " ", gutter, " | ")
		sb.WriteString(expandTabs(line))
		sb.WriteByte('\n')

		c.gutter.Fprint(&sb, " ", pad, " | ")
		sb.WriteString(strings.Repeat(" ", caretOffset(line, d.Pos.Column)))
		c.level.Fprint(&sb, "^")
		sb.WriteByte('\n')

		if d.Hint != "" {
			c.gutter.Fprint(&sb, " ", pad, " = ")
			c.help.Fprint(&sb, "help:")
			sb.WriteString(" " + d.Hint + "\n")
		}
	} else if d.Hint != "" {
		c.help.Fprint(&sb, "  help:")
		sb.WriteString(" " + d.Hint + "\n")
	}

	return sb.String()
}

// Summary returns the closing line printed after a batch of diagnostics,
// or "" when there is nothing to report.
func (r Renderer) Summary(errorCount, warningCount int) string {
	pluralize := func(count int, what string) string {
		if count == 1 {
			return "1 " + what
		}
		return fmt.Sprint(count, " ", what, "s")
	}

	switch {
	case errorCount > 0 && warningCount > 0:
		return fmt.Sprintf("encountered %s and %s", pluralize(errorCount, "error"), pluralize(warningCount, "warning"))
	case errorCount > 0:
		return "encountered " + pluralize(errorCount, "error")
	case warningCount > 0:
		return "encountered " + pluralize(warningCount, "warning")
	}
	return ""
}

// caretOffset returns the display width of line up to the 1-based rune
// column col.
func caretOffset(line string, col int) int {
	if col <= 1 {
		return 0
	}
	var prefix []rune
	for _, r := range line {
		if len(prefix) == col-1 {
			break
		}
		prefix = append(prefix, r)
	}
	return stringWidth(0, string(prefix))
}

// stringWidth returns the column reached after printing text starting at
// column, expanding tabs to TabstopWidth.
func stringWidth(column int, text string) int {
	for {
		i := strings.IndexByte(text, '\t')
		if i < 0 {
			return column + uniseg.StringWidth(text)
		}
		column += uniseg.StringWidth(text[:i])
		column += TabstopWidth - column%TabstopWidth
		text = text[i+1:]
	}
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var sb strings.Builder
	column := 0
	for {
		i := strings.IndexByte(line, '\t')
		if i < 0 {
			sb.WriteString(line)
			return sb.String()
		}
		sb.WriteString(line[:i])
		column = stringWidth(column, line[:i])
		tab := TabstopWidth - column%TabstopWidth
		sb.WriteString(strings.Repeat(" ", tab))
		column += tab
		line = line[i+1:]
	}
}

func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

type styleSheet struct {
	level, bold, gutter, help *color.Color
}

func (r Renderer) colors(level Level) styleSheet {
	ss := styleSheet{
		level:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		help:   color.New(color.FgCyan, color.Bold),
	}
	if level == Warning {
		ss.level = color.New(color.FgYellow, color.Bold)
	}
	for _, c := range []*color.Color{ss.level, ss.bold, ss.gutter, ss.help} {
		if r.Colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return ss
}
