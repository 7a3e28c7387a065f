package formatter

import (
	"github.com/grindlemire/btngen/internal/compgen"
)

// Formatter formats .dcx source code.
type Formatter struct {
	// IndentString is the string used for indentation (default: tab).
	IndentString string
	// FixImports adds missing and removes unused imports, like goimports.
	FixImports bool
	// Options selects the builder target used when fixing imports.
	Options compgen.Options
}

// New creates a new Formatter with default settings.
func New() *Formatter {
	return &Formatter{
		IndentString: "\t",
		FixImports:   true,
	}
}

// Format parses and reformats the given .dcx source code.
// Returns the formatted code and any error encountered during parsing.
func (f *Formatter) Format(filename, source string) (string, error) {
	lexer := compgen.NewLexer(filename, source)
	parser := compgen.NewParser(lexer)

	file, err := parser.ParseFile()
	if err != nil {
		return "", err
	}

	if f.FixImports {
		fixImports(file, filename, source, f.Options)
	}

	indent := f.IndentString
	if indent == "" {
		indent = "\t"
	}
	return newPrinter(indent).PrintFile(file), nil
}

// FormatResult contains the result of formatting a file.
type FormatResult struct {
	// Content is the formatted content.
	Content string
	// Changed indicates if the content was different from the original.
	Changed bool
}

// FormatWithResult formats the source and indicates if it changed.
func (f *Formatter) FormatWithResult(filename, source string) (FormatResult, error) {
	formatted, err := f.Format(filename, source)
	if err != nil {
		return FormatResult{}, err
	}

	return FormatResult{
		Content: formatted,
		Changed: formatted != source,
	}, nil
}
