package formatter

import (
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/grindlemire/btngen/internal/compgen"
)

// fixImports generates Go code from the source, lets goimports resolve
// missing and unused imports, then updates the AST with the result.
// Imports the generator adds for the builder API are left out unless the
// source already had them.
func fixImports(file *compgen.File, filename, source string, opts compgen.Options) {
	goFilename := filename
	if strings.HasSuffix(goFilename, ".dcx") {
		goFilename = strings.TrimSuffix(goFilename, ".dcx") + "_dcx.go"
	}

	// ParseAndGenerate runs imports.Process, so goCode has correct imports.
	goCode, err := compgen.ParseAndGenerate(goFilename, source, opts)
	if err != nil {
		// If generation fails, skip import fixing but don't fail formatting
		return
	}

	fixed, err := extractImports(goCode)
	if err != nil {
		return
	}

	original := make(map[string]compgen.Import, len(file.Imports))
	for _, imp := range file.Imports {
		original[imp.Path] = imp
	}
	target := opts.Target.WithDefaults()
	generated := map[string]bool{
		target.ImportPath:      true,
		target.EmojiImportPath: true,
	}

	var result []compgen.Import
	for _, imp := range fixed {
		if orig, ok := original[imp.Path]; ok {
			result = append(result, orig)
			continue
		}
		if generated[imp.Path] {
			continue
		}
		result = append(result, imp)
	}
	file.Imports = result
}

// extractImports parses Go source code and extracts import declarations.
func extractImports(goCode []byte) ([]compgen.Import, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", goCode, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	var result []compgen.Import
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return nil, err
		}
		ci := compgen.Import{Path: path}
		if imp.Name != nil {
			ci.Alias = imp.Name.Name
		}
		result = append(result, ci)
	}

	return result, nil
}
