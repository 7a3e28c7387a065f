package compgen

// Analyzer performs semantic analysis on parsed .dcx ASTs.
// It checks declaration bodies against their entry point, validates row
// homogeneity, and ensures the builder imports are present.
type Analyzer struct {
	opts   Options
	target Target
	errors *ErrorList
	file   *File

	// Warnings holds mixed-row reports when rows are lenient.
	Warnings []*Error

	usesEmojiID bool
}

// NewAnalyzer creates a new semantic analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{
		opts:   opts,
		target: opts.target(),
		errors: NewErrorList(),
	}
}

// Analyze validates file and adds missing imports. All problems found are
// returned together as an *ErrorList.
func (a *Analyzer) Analyze(file *File) error {
	a.errors = NewErrorList()
	a.Warnings = nil
	a.file = file
	a.usesEmojiID = false

	a.checkDuplicates()

	for _, decl := range file.Decls {
		a.analyzeDecl(decl)
	}

	a.checkImports()
	a.addMissingImports()

	return a.errors.Err()
}

// Errors returns the errors found during analysis.
func (a *Analyzer) Errors() *ErrorList {
	return a.errors
}

// checkDuplicates reports declarations that reuse a name already declared
// in the same file, including passthrough Go functions.
func (a *Analyzer) checkDuplicates() {
	seen := make(map[string]bool)
	for _, fn := range a.file.Funcs {
		if name := goFuncName(fn.Code); name != "" {
			seen[name] = true
		}
	}
	for _, decl := range a.file.Decls {
		if seen[decl.Name] {
			a.errors.AddErrorf(decl.Position, "duplicate declaration %q", decl.Name)
			continue
		}
		seen[decl.Name] = true
	}
}

func (a *Analyzer) analyzeDecl(decl *Decl) {
	switch decl.Entry {
	case EntryComponent:
		if len(decl.Body) != 1 {
			a.errors.AddErrorf(decl.Position, "component %s must contain exactly one component", decl.Name)
			return
		}
		if decl.Body[0].Kind == KindRow {
			a.errors.AddError(decl.Position, MsgMisplacedRow)
			return
		}
	case EntrySplit:
		mixed := CheckRows(PackRows(decl.Body))
		if a.opts.LenientRows {
			a.Warnings = append(a.Warnings, mixed...)
		} else {
			for _, err := range mixed {
				a.errors.Add(err)
			}
		}
	}

	for _, c := range decl.Body {
		if c.Label != nil && c.Label.Emoji != nil && c.Label.Emoji.Kind == EmojiCustom {
			a.usesEmojiID = true
		}
	}
}

// checkImports reports user imports that clash with the aliases generated
// code refers to.
func (a *Analyzer) checkImports() {
	for _, want := range a.target.imports(true) {
		for _, imp := range a.file.Imports {
			name := importName(imp)
			switch {
			case imp.Path == want.Path && name != want.Alias:
				a.errors.Add(NewErrorWithHint(imp.Position,
					"package "+imp.Path+" must be imported as "+want.Alias,
					"generated code refers to it as "+want.Alias))
			case imp.Path != want.Path && name == want.Alias:
				a.errors.AddErrorf(imp.Position, "import name %s is reserved for %s", want.Alias, want.Path)
			}
		}
	}
}

// addMissingImports adds the builder imports that generated code needs.
func (a *Analyzer) addMissingImports() {
	for _, want := range a.target.imports(a.usesEmojiID) {
		found := false
		for _, imp := range a.file.Imports {
			if imp.Path == want.Path {
				found = true
				break
			}
		}
		if !found {
			a.file.Imports = append(a.file.Imports, want)
		}
	}
}

// importName returns the name an import is referred to by. Without an
// explicit alias this is the last path element.
func importName(imp Import) string {
	if imp.Alias != "" {
		return imp.Alias
	}
	path := imp.Path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

// goFuncName extracts the name of a plain function from its source. Methods
// return "".
func goFuncName(code string) string {
	lx := NewLexer("", code)
	if lx.Next().Type != TokenFunc {
		return ""
	}
	tok := lx.Next()
	if tok.Type != TokenIdent {
		return ""
	}
	return tok.Literal
}

// AnalyzeFile is a convenience function that parses and analyzes a .dcx file.
func AnalyzeFile(filename, source string, opts Options) (*File, error) {
	lexer := NewLexer(filename, source)
	parser := NewParser(lexer)

	file, err := parser.ParseFile()
	if err != nil {
		return nil, err
	}

	analyzer := NewAnalyzer(opts)
	if err := analyzer.Analyze(file); err != nil {
		return file, err
	}

	return file, nil
}
