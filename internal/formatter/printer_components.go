package formatter

import (
	"bytes"
	"go/format"
	goparser "go/parser"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/grindlemire/btngen/internal/compgen"
)

// printComponentList prints a split_components body. Each entry ends in a
// comma, and the `=>` arrows of consecutive entries line up. A blank line,
// a row!() separator, or a head spanning several lines starts a new
// alignment section.
func (p *printer) printComponentList(comps []*compgen.Component) {
	widths := arrowColumns(comps)
	for i, comp := range comps {
		if comp.BlankLineBefore {
			p.newline()
		}
		pad := ""
		if w := widths[i]; w > 0 {
			pad = strings.Repeat(" ", w-uniseg.StringWidth(componentHead(comp)))
		}
		p.printComponent(comp, pad, ",")
	}
}

// printComponent prints one component on its own line. pad goes between
// the head and the arrow; suffix follows the label.
func (p *printer) printComponent(comp *compgen.Component, pad, suffix string) {
	p.printLeadingComments(comp.LeadingComments)
	p.writeIndent()
	p.write(componentHead(comp))
	if comp.Label != nil {
		p.write(pad)
		p.write(" => ")
		p.write(labelText(comp.Label))
	}
	p.write(suffix)
	p.printTrailingComment(comp.TrailingComments)
	p.newline()
}

// arrowColumns returns, per component, the head width its section pads to,
// or 0 when the component takes no part in alignment.
func arrowColumns(comps []*compgen.Component) []int {
	widths := make([]int, len(comps))
	start := 0

	flush := func(end int) {
		maxWidth := 0
		for _, c := range comps[start:end] {
			maxWidth = max(maxWidth, uniseg.StringWidth(componentHead(c)))
		}
		for i := start; i < end; i++ {
			widths[i] = maxWidth
		}
		start = end
	}

	for i, c := range comps {
		head := componentHead(c)
		switch {
		case c.Kind == compgen.KindRow || strings.Contains(head, "\n"):
			flush(i)
			start = i + 1
		case c.BlankLineBefore:
			flush(i)
		}
	}
	flush(len(comps))
	return widths
}

// componentHead renders the kind invocation: row!(), url!(EXPR),
// btn!("id") or btn!("id", EXPR).
func componentHead(comp *compgen.Component) string {
	switch comp.Kind {
	case compgen.KindURL:
		return "url!(" + formatGoExpr(comp.URL.Code) + ")"
	case compgen.KindButton:
		head := "btn!(" + strconv.Quote(comp.CustomID)
		if comp.Style != nil {
			head += ", " + formatGoExpr(comp.Style.Code)
		}
		return head + ")"
	default:
		return "row!()"
	}
}

// labelText renders a label in the spelling it was written in. Text after
// an emoji is always a string literal.
func labelText(label *compgen.Label) string {
	text := strconv.Quote(label.Text)
	if label.Bare && label.Emoji == nil {
		text = label.Text
	}
	if label.Emoji == nil {
		return text
	}

	var lit string
	switch label.Emoji.Kind {
	case compgen.EmojiCustom:
		lit = strconv.FormatUint(label.Emoji.ID, 10)
	default:
		lit = strconv.QuoteRune(label.Emoji.Char)
	}
	return "emoji!(" + lit + ") " + text
}

// formatGoExpr gofmt's a single-line host expression. Expressions that
// carry comments or would wrap onto several lines keep their source
// spelling.
func formatGoExpr(code string) string {
	if hasComment(code) {
		return formatInlineBlockComments(code)
	}
	expr, err := goparser.ParseExpr(code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, token.NewFileSet(), expr); err != nil {
		return code
	}
	out := buf.String()
	if strings.Contains(out, "\n") {
		return code
	}
	return out
}

// hasComment reports whether Go source contains a comment token.
func hasComment(code string) bool {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(code))

	var s scanner.Scanner
	s.Init(file, []byte(code), nil, scanner.ScanComments)
	for {
		_, tok, _ := s.Scan()
		switch tok {
		case token.EOF:
			return false
		case token.COMMENT:
			return true
		}
	}
}
