package formatter

import (
	"go/format"
	"sort"
	"strings"

	"github.com/grindlemire/btngen/internal/compgen"
)

// printer generates formatted .dcx source code from an AST.
type printer struct {
	indent string
	depth  int
	buf    strings.Builder
}

// newPrinter creates a new printer with the given settings.
func newPrinter(indent string) *printer {
	return &printer{
		indent: indent,
	}
}

// PrintFile formats an entire .dcx file.
func (p *printer) PrintFile(file *compgen.File) string {
	p.buf.Reset()

	// Leading comments before package declaration
	p.printLeadingComments(file.LeadingComments)

	p.write("package ")
	p.write(file.Package)
	p.newline()

	if len(file.Imports) > 0 {
		p.newline()
		p.printImports(file.Imports)
	}

	// Merge all top-level declarations and sort by source position
	// to preserve the original interleaved ordering.
	var topLevel []compgen.Node
	for _, d := range file.GoDecls {
		topLevel = append(topLevel, d)
	}
	for _, d := range file.Decls {
		topLevel = append(topLevel, d)
	}
	for _, f := range file.Funcs {
		topLevel = append(topLevel, f)
	}
	sort.SliceStable(topLevel, func(i, j int) bool {
		return topLevel[i].Pos().Line < topLevel[j].Pos().Line
	})

	for _, node := range topLevel {
		p.newline()
		switch n := node.(type) {
		case *compgen.GoDecl:
			p.printLeadingComments(n.LeadingComments)
			p.printGoSource(n.Code)
		case *compgen.Decl:
			p.printDecl(n)
		case *compgen.GoFunc:
			p.printLeadingComments(n.LeadingComments)
			p.printGoSource(n.Code)
		}
	}

	// Orphan comments at end of file
	if len(file.OrphanComments) > 0 {
		p.newline()
		p.printOrphanComments(file.OrphanComments)
	}

	return p.buf.String()
}

// printImports outputs import declarations.
func (p *printer) printImports(imports []compgen.Import) {
	if len(imports) == 1 {
		// Single import - use inline form
		p.write("import ")
		p.printImportSpec(imports[0])
		return
	}

	p.write("import (")
	p.newline()
	p.depth++
	for _, imp := range imports {
		p.writeIndent()
		p.printImportSpec(imp)
	}
	p.depth--
	p.write(")")
	p.newline()
}

func (p *printer) printImportSpec(imp compgen.Import) {
	if imp.Alias != "" {
		p.write(imp.Alias)
		p.write(" ")
	}
	p.write(`"`)
	p.write(imp.Path)
	p.write(`"`)
	p.printTrailingComment(imp.TrailingComments)
	p.newline()
}

// printDecl outputs a component or split_components declaration.
func (p *printer) printDecl(decl *compgen.Decl) {
	p.printLeadingComments(decl.LeadingComments)

	p.write(decl.Entry.String())
	p.write(" ")
	p.write(decl.Name)
	p.write("(")
	for i, param := range decl.Params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name)
		p.write(" ")
		p.write(param.Type)
	}
	p.write(") {")
	p.printTrailingComment(decl.TrailingComments)
	p.newline()

	p.depth++
	if decl.Entry == compgen.EntrySplit {
		p.printComponentList(decl.Body)
	} else {
		for _, comp := range decl.Body {
			p.printComponent(comp, "", "")
		}
	}
	p.printOrphanComments(decl.OrphanComments)
	p.depth--

	p.write("}")
	p.newline()
}

// printGoSource outputs passthrough Go source, gofmt'd when it parses on
// its own.
func (p *printer) printGoSource(code string) {
	p.write(formatGoSource(code))
	p.newline()
}

// formatGoSource runs a top-level Go declaration through go/format. Source
// that does not parse in isolation is printed unchanged.
func formatGoSource(code string) string {
	const header = "package p\n\n"
	out, err := format.Source([]byte(header + code))
	if err != nil {
		return code
	}
	return strings.TrimSpace(strings.TrimPrefix(string(out), header))
}

// Helper methods

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) newline() {
	p.buf.WriteByte('\n')
}

func (p *printer) writeIndent() {
	for i := 0; i < p.depth; i++ {
		p.buf.WriteString(p.indent)
	}
}
