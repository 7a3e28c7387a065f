package compgen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"golang.org/x/tools/imports"
)

// Generator transforms a validated AST into Go source code.
type Generator struct {
	buf        bytes.Buffer
	indent     int
	sourceFile string // original .dcx filename for header comment
	opts       Options
	expander   *Expander

	// SkipImports uses format.Source instead of imports.Process (faster for tests)
	SkipImports bool
}

// NewGenerator creates a new code generator.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate produces Go source code from a parsed and analyzed AST.
// Returns the generated code as a byte slice, or an error if generation fails.
func (g *Generator) Generate(file *File, sourceFile string) ([]byte, error) {
	g.buf.Reset()
	g.indent = 0
	g.sourceFile = sourceFile
	g.expander = NewExpander(g.opts)

	g.generateHeader()
	g.generatePackage(file.Package)
	g.generateImports(file.Imports)

	for _, decl := range file.GoDecls {
		g.generateGoDecl(decl)
	}

	for _, fn := range file.Funcs {
		g.generateGoFunc(fn)
	}

	errs := NewErrorList()
	for _, decl := range file.Decls {
		if err := g.generateDecl(decl); err != nil {
			errs.Add(err)
		}
	}
	if errs.HasErrors() {
		return nil, errs
	}

	// For tests: just format without import processing (much faster)
	if g.SkipImports {
		return format.Source(g.buf.Bytes())
	}

	out, err := imports.Process(g.sourceFile, g.buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return out, nil
}

// generateHeader writes the "DO NOT EDIT" comment.
func (g *Generator) generateHeader() {
	g.writeln("// Code generated by btngen generate. DO NOT EDIT.")
	if g.sourceFile != "" {
		g.writef("// Source: %s\n", g.sourceFile)
	}
	g.writeln("")
}

// generatePackage writes the package declaration.
func (g *Generator) generatePackage(pkg string) {
	g.writef("package %s\n\n", pkg)
}

// generateImports writes the import block.
func (g *Generator) generateImports(imps []Import) {
	if len(imps) == 0 {
		return
	}

	g.writeln("import (")
	g.indent++
	for _, imp := range imps {
		if imp.Alias != "" {
			g.writef("%s %q\n", imp.Alias, imp.Path)
		} else {
			g.writef("%q\n", imp.Path)
		}
	}
	g.indent--
	g.writeln(")")
	g.writeln("")
}

// generateGoDecl writes a passthrough type, const or var declaration.
func (g *Generator) generateGoDecl(decl *GoDecl) {
	g.writeComments(decl.LeadingComments)
	g.writeln(decl.Code)
	g.writeln("")
}

// generateGoFunc writes a passthrough function.
func (g *Generator) generateGoFunc(fn *GoFunc) {
	g.writeComments(fn.LeadingComments)
	g.writeln(fn.Code)
	g.writeln("")
}

// generateDecl writes the function for a component or split_components
// declaration.
func (g *Generator) generateDecl(decl *Decl) *Error {
	g.writeComments(decl.LeadingComments)

	switch decl.Entry {
	case EntryComponent:
		if len(decl.Body) != 1 {
			return NewErrorf(decl.Position, "component %s must contain exactly one component", decl.Name)
		}
		expr, err := g.expander.Component(decl.Body[0], decl.Position)
		if err != nil {
			return err
		}
		g.writef("func %s(%s) %s {\n", decl.Name, formatParams(decl.Params), g.expander.target.buttonType())
		g.indent++
		g.writef("return %s\n", expr)
		g.indent--

	case EntrySplit:
		rows, err := g.expander.Rows(decl.Body, decl.Position)
		if err != nil {
			return err
		}
		rowType := g.expander.target.actionRowType()
		g.writef("func %s(%s) []%s {\n", decl.Name, formatParams(decl.Params), rowType)
		g.indent++
		g.generateRows(rows, rowType)
		g.indent--
	}

	g.writeln("}")
	g.writeln("")
	return nil
}

// generateRows writes the return statement of a split_components function,
// one action row per line group.
func (g *Generator) generateRows(rows [][]string, rowType string) {
	if len(rows) == 0 {
		g.writef("return []%s{}\n", rowType)
		return
	}

	g.writef("return []%s{\n", rowType)
	g.indent++
	for _, row := range rows {
		g.writef("%s.%s(\n", g.expander.target.Alias, g.expander.target.ButtonsRow)
		g.indent++
		for _, expr := range row {
			g.writef("%s,\n", expr)
		}
		g.indent--
		g.writeln("),")
	}
	g.indent--
	g.writeln("}")
}

// writeComments writes a comment group verbatim, one comment per line.
func (g *Generator) writeComments(cg *CommentGroup) {
	if cg == nil {
		return
	}
	for _, c := range cg.List {
		g.writeln(c.Text)
	}
}

// formatParams renders parameters as a Go parameter list.
func formatParams(params []*Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " " + p.Type
	}
	return strings.Join(parts, ", ")
}

// writef writes a formatted string with indentation.
func (g *Generator) writef(format string, args ...any) {
	g.writeIndent()
	fmt.Fprintf(&g.buf, format, args...)
}

// writeln writes a line with indentation.
func (g *Generator) writeln(s string) {
	if s == "" {
		g.buf.WriteByte('\n')
		return
	}
	g.writeIndent()
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (g *Generator) writeIndent() {
	for i := 0; i < g.indent; i++ {
		g.buf.WriteByte('\t')
	}
}

// ParseAndGenerate parses, analyzes and generates Go code in one step.
func ParseAndGenerate(filename, source string, opts Options) ([]byte, error) {
	return parseAndGenerate(filename, source, opts, false)
}

// parseAndGenerateSkipImports is like ParseAndGenerate but uses format.Source
// instead of imports.Process. This is much faster for tests.
func parseAndGenerateSkipImports(filename, source string, opts Options) ([]byte, error) {
	return parseAndGenerate(filename, source, opts, true)
}

func parseAndGenerate(filename, source string, opts Options, skipImports bool) ([]byte, error) {
	file, err := AnalyzeFile(filename, source, opts)
	if err != nil {
		return nil, err
	}

	gen := NewGenerator(opts)
	gen.SkipImports = skipImports
	return gen.Generate(file, filename)
}
