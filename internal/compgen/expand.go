package compgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Options configures parsing, analysis and code generation. The zero value
// targets DefaultTarget with strict row checking.
type Options struct {
	Target Target

	// LenientRows emits rows that mix url and btn components instead of
	// rejecting them. Mixed rows are reported as warnings.
	LenientRows bool

	// LineDirectives prefixes every embedded Go expression with a
	// /*line file:line:col*/ directive pointing back at the .dcx source.
	LineDirectives bool

	// Filename is used in positions of snippet diagnostics.
	Filename string

	// OnWarning receives the warnings of snippet expansions. File
	// generation exposes them through Analyzer.Warnings instead.
	OnWarning func(*Error)
}

func (o Options) target() Target {
	return o.Target.WithDefaults()
}

// Expander turns parsed components into Go expressions that call the target
// builder API.
type Expander struct {
	opts   Options
	target Target

	// Warnings collects mixed-row reports when LenientRows is set.
	Warnings []*Error

	usesEmojiID bool
}

// NewExpander creates an expander for opts.
func NewExpander(opts Options) *Expander {
	return &Expander{opts: opts, target: opts.target()}
}

// UsesEmojiID reports whether any expansion so far referenced the emoji id
// constructor.
func (e *Expander) UsesEmojiID() bool {
	return e.usesEmojiID
}

// Component returns the builder chain for a single component. A row has no
// expansion of its own and is reported at callSite.
func (e *Expander) Component(c *Component, callSite Position) (string, *Error) {
	var sb strings.Builder

	switch c.Kind {
	case KindButton:
		fmt.Fprintf(&sb, "%s.%s(%s)", e.target.Alias, e.target.NewButton, strconv.Quote(c.CustomID))
	case KindURL:
		fmt.Fprintf(&sb, "%s.%s(%s)", e.target.Alias, e.target.NewLinkButton, e.goExpr(c.URL))
	case KindRow:
		return "", NewError(callSite, MsgMisplacedRow)
	default:
		return "", NewErrorf(c.Position, "unknown component kind %d", int(c.Kind))
	}

	if c.Label == nil {
		return "", NewErrorf(c.Position, "%s component has no label", c.Kind)
	}
	fmt.Fprintf(&sb, ".Label(%s)", strconv.Quote(c.Label.Text))

	if em := c.Label.Emoji; em != nil {
		fmt.Fprintf(&sb, ".Emoji(%s)", e.emoji(em))
	}

	if c.Kind == KindButton && c.Style != nil {
		fmt.Fprintf(&sb, ".Style(%s)", e.goExpr(c.Style))
	}

	return sb.String(), nil
}

// Rows packs comps into action rows and expands every component. Each inner
// slice holds the builder chains of one row.
func (e *Expander) Rows(comps []*Component, callSite Position) ([][]string, *Error) {
	rows := PackRows(comps)

	if mixed := CheckRows(rows); len(mixed) > 0 {
		if !e.opts.LenientRows {
			return nil, mixed[0]
		}
		e.Warnings = append(e.Warnings, mixed...)
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		exprs := make([]string, 0, len(row))
		for _, c := range row {
			expr, err := e.Component(c, callSite)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
		}
		out = append(out, exprs)
	}
	return out, nil
}

// ListExpr renders expanded rows as a single-line slice literal.
func (e *Expander) ListExpr(rows [][]string) string {
	var sb strings.Builder
	sb.WriteString("[]")
	sb.WriteString(e.target.actionRowType())
	sb.WriteByte('{')
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.rowExpr(row))
	}
	sb.WriteByte('}')
	return sb.String()
}

func (e *Expander) rowExpr(row []string) string {
	return e.target.Alias + "." + e.target.ButtonsRow + "(" + strings.Join(row, ", ") + ")"
}

func (e *Expander) emoji(em *Emoji) string {
	if em.Kind == EmojiUnicode {
		return strconv.QuoteRune(em.Char)
	}
	e.usesEmojiID = true
	return fmt.Sprintf("%s.%s(%d)", e.emojiAlias(), e.target.EmojiID, em.ID)
}

func (e *Expander) emojiAlias() string {
	if e.target.EmojiImportPath == e.target.ImportPath {
		return e.target.Alias
	}
	return e.target.EmojiAlias
}

func (e *Expander) goExpr(expr *GoExpr) string {
	if !e.opts.LineDirectives || expr.Position.File == "" {
		return expr.Code
	}
	return fmt.Sprintf("/*line %s:%d:%d*/%s", expr.Position.File, expr.Position.Line, expr.Position.Column, expr.Code)
}

// ExpandComponent expands a single component description into a builder
// chain expression.
func ExpandComponent(src string, opts Options) (string, error) {
	if err := opts.target().Validate(); err != nil {
		return "", err
	}
	p, callSite := newSnippetParser(src, opts)

	comp, perr := p.parseSingleComponent(callSite, TokenEOF)
	if err := snippetErr(p, perr); err != nil {
		return "", err
	}

	expr, xerr := NewExpander(opts).Component(comp, callSite)
	if xerr != nil {
		return "", xerr
	}
	return expr, nil
}

// ExpandComponents expands a component list into a slice literal of packed
// action rows.
func ExpandComponents(src string, opts Options) (string, error) {
	if err := opts.target().Validate(); err != nil {
		return "", err
	}
	p, callSite := newSnippetParser(src, opts)

	comps, perr := p.parseComponentList(callSite, TokenEOF)
	if err := snippetErr(p, perr); err != nil {
		return "", err
	}

	x := NewExpander(opts)
	rows, xerr := x.Rows(comps, callSite)
	if xerr != nil {
		return "", xerr
	}
	if opts.OnWarning != nil {
		for _, w := range x.Warnings {
			opts.OnWarning(w)
		}
	}
	return x.ListExpr(rows), nil
}

// newSnippetParser prepares a parser positioned on the first token of src.
// Snippets have no declaration keyword, so the call site is the start of
// the input.
func newSnippetParser(src string, opts Options) (*Parser, Position) {
	p := NewParser(NewLexer(opts.Filename, src))
	p.skipNewlines()
	return p, Position{File: opts.Filename, Line: 1, Column: 1}
}

// snippetErr returns the parse error, or the first lexer error the parser
// did not run into (such as an unterminated comment).
func snippetErr(p *Parser, perr *Error) error {
	if perr != nil {
		return perr
	}
	if errs := p.lexer.Errors().Errors(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
