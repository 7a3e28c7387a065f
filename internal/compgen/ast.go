package compgen

import "strings"

// Node is the interface implemented by all AST nodes.
type Node interface {
	node()         // marker method to ensure type safety
	Pos() Position // returns the source position of the node
}

// Comment represents a single comment (line or block).
type Comment struct {
	Text            string   // Raw text including delimiters (// or /* */)
	Position        Position // Start position
	Offset          int      // Byte offset of the comment start
	EndLine         int      // End line (for multi-line block comments)
	IsBlock         bool     // true for /* */ comments, false for // comments
	BlankLineBefore bool     // true if there was a blank line before this comment
}

// CommentGroup represents a sequence of comments with no blank lines between them.
type CommentGroup struct {
	List []*Comment
}

// Text returns the text of the comment group, with comment markers removed
// and lines joined with newlines.
func (g *CommentGroup) Text() string {
	if g == nil || len(g.List) == 0 {
		return ""
	}
	var lines []string
	for _, c := range g.List {
		text := c.Text
		if c.IsBlock {
			text = strings.TrimPrefix(text, "/*")
			text = strings.TrimSuffix(text, "*/")
		} else {
			text = strings.TrimPrefix(text, "//")
		}
		lines = append(lines, strings.TrimSpace(text))
	}
	return strings.Join(lines, "\n")
}

// File represents a complete .dcx source file.
type File struct {
	Package  string
	Imports  []Import
	Decls    []*Decl   // component and split_components declarations
	GoDecls  []*GoDecl // top-level Go declarations (type, const, var)
	Funcs    []*GoFunc // top-level Go functions
	Position Position
	// Comment fields
	LeadingComments *CommentGroup   // Comments before package declaration
	OrphanComments  []*CommentGroup // Comments not attached to any node
}

func (f *File) node()         {}
func (f *File) Pos() Position { return f.Position }

// Import represents a Go import statement.
type Import struct {
	Alias    string // optional alias (empty if none)
	Path     string // import path
	Position Position
	// Comment fields
	TrailingComments *CommentGroup // Inline comment on import line
}

func (i *Import) node()         {}
func (i *Import) Pos() Position { return i.Position }

// Entry selects which expansion a declaration uses.
type Entry int

const (
	// EntryComponent expands exactly one component into a single builder.
	EntryComponent Entry = iota
	// EntrySplit expands a component list into packed action rows.
	EntrySplit
)

// String returns the declaration keyword for the entry.
func (e Entry) String() string {
	if e == EntrySplit {
		return "split_components"
	}
	return "component"
}

// Decl represents `component Name(params) { ... }` or
// `split_components Name(params) { ... }`.
type Decl struct {
	Entry    Entry
	Name     string
	Params   []*Param
	Body     []*Component
	Position Position // position of the declaration keyword (the call site)
	// Comment fields
	LeadingComments  *CommentGroup   // Doc comments before the declaration
	TrailingComments *CommentGroup   // Comments on same line after opening {
	OrphanComments   []*CommentGroup // Comments after the last component
}

func (d *Decl) node()         {}
func (d *Decl) Pos() Position { return d.Position }

// Param represents a function parameter.
type Param struct {
	Name     string
	Type     string
	Position Position
}

func (p *Param) node()         {}
func (p *Param) Pos() Position { return p.Position }

// Kind is the control a component declaration asked for.
type Kind int

const (
	KindRow Kind = iota
	KindURL
	KindButton
)

// String returns the DSL spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindRow:
		return "row"
	case KindURL:
		return "url"
	case KindButton:
		return "btn"
	default:
		return "unknown"
	}
}

// kindNames maps the identifier before `!` to its kind.
var kindNames = map[string]Kind{
	"row": KindRow,
	"url": KindURL,
	"btn": KindButton,
}

// EmojiKind distinguishes unicode from custom emoji.
type EmojiKind int

const (
	EmojiUnicode EmojiKind = iota
	EmojiCustom
)

// Emoji is the optional decoration of a label.
type Emoji struct {
	Kind     EmojiKind
	Char     rune   // set for EmojiUnicode
	ID       uint64 // set for EmojiCustom
	Position Position
}

func (e *Emoji) node()         {}
func (e *Emoji) Pos() Position { return e.Position }

// Label is the visible text of a control plus an optional leading emoji.
type Label struct {
	Text     string
	Emoji    *Emoji
	Bare     bool // Text was written as an identifier rather than a string literal
	Position Position
}

func (l *Label) node()         {}
func (l *Label) Pos() Position { return l.Position }

// GoExpr is a host expression embedded verbatim in generated code.
type GoExpr struct {
	Code     string
	Position Position
}

func (g *GoExpr) node()         {}
func (g *GoExpr) Pos() Position { return g.Position }

// Component is a parsed control. Rows carry no label and no operands;
// every other kind has exactly one Label.
type Component struct {
	Kind     Kind
	URL      *GoExpr // KindURL only
	CustomID string  // KindButton only
	Style    *GoExpr // KindButton only, optional
	Label    *Label  // nil for KindRow
	Position Position
	// Comment fields
	BlankLineBefore  bool
	LeadingComments  *CommentGroup // Comments immediately before the component
	TrailingComments *CommentGroup // Comments on same line after the component
}

func (c *Component) node()         {}
func (c *Component) Pos() Position { return c.Position }

// GoFunc represents a top-level Go function definition in a .dcx file.
type GoFunc struct {
	Code     string // the entire function definition
	Position Position
	// Comment fields
	LeadingComments *CommentGroup // Comments immediately before func
}

func (g *GoFunc) node()         {}
func (g *GoFunc) Pos() Position { return g.Position }

// GoDecl represents a top-level Go declaration (type, const, var) in a .dcx file.
type GoDecl struct {
	Kind     string // "type", "const", or "var"
	Code     string // the entire declaration
	Position Position
	// Comment fields
	LeadingComments *CommentGroup // Comments immediately before declaration
}

func (g *GoDecl) node()         {}
func (g *GoDecl) Pos() Position { return g.Position }
