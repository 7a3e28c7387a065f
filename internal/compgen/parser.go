package compgen

import (
	"strings"
)

// Parser parses .dcx source files into an AST.
type Parser struct {
	lexer           *Lexer
	current         Token
	peek            Token
	prevType        TokenType // type of the token consumed by the last advance
	prevLine        int       // line of the last non-newline token consumed
	errors          *ErrorList
	pendingComments []*Comment // Comments collected since last attachment
}

// NewParser creates a new Parser for the given lexer.
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{
		lexer:    lexer,
		errors:   NewErrorList(),
		prevType: TokenNewline,
	}
	// Read two tokens to initialize current and peek
	p.advance()
	p.advance()
	return p
}

// Errors returns any errors encountered during parsing.
func (p *Parser) Errors() *ErrorList {
	return p.errors
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.prevType = p.current.Type
	if p.current.Type != TokenNewline {
		p.prevLine = p.current.Line
	}
	p.current = p.peek
	p.peek = p.lexer.Next()
}

// advanceSkipNewlines advances while skipping newline tokens.
func (p *Parser) advanceSkipNewlines() {
	p.advance()
	p.skipNewlines()
}

// skipNewlines consumes any newline tokens.
func (p *Parser) skipNewlines() {
	for p.current.Type == TokenNewline {
		p.advance()
	}
}

// position returns the current token's position.
func (p *Parser) position() Position {
	return p.tokenPos(p.current)
}

// tokenPos converts a token's location to a Position in this file.
func (p *Parser) tokenPos(tok Token) Position {
	return Position{
		File:   p.lexer.filename,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// expect checks if the current token matches the expected type and advances.
// Returns true if matched, false otherwise (and records an error).
func (p *Parser) expect(typ TokenType) bool {
	if p.current.Type == typ {
		p.advance()
		return true
	}
	p.errors.Add(p.unexpected(typ.String()))
	return false
}

// expectSkipNewlines is like expect but skips newlines after advancing.
func (p *Parser) expectSkipNewlines(typ TokenType) bool {
	if !p.expect(typ) {
		return false
	}
	p.skipNewlines()
	return true
}

// unexpected builds an "expected X, got Y" error at the current token.
// A lexer error token is reported as the lexer's own diagnostic.
func (p *Parser) unexpected(want string) *Error {
	if p.current.Type == TokenError {
		if lexErr := p.lexerErrorAt(p.current); lexErr != nil {
			return lexErr
		}
	}
	return NewErrorf(p.position(), "expected %s, got %s", want, p.current.describe())
}

// lexerErrorAt finds the lexer diagnostic reported for tok.
func (p *Parser) lexerErrorAt(tok Token) *Error {
	errs := p.lexer.Errors().Errors()
	for i := len(errs) - 1; i >= 0; i-- {
		if errs[i].Pos.Line == tok.Line && errs[i].Pos.Column == tok.Column {
			return errs[i]
		}
	}
	return nil
}

// synchronize skips tokens until a top-level declaration keyword at the start
// of a line. This allows the parser to recover from errors and continue parsing.
func (p *Parser) synchronize() {
	for p.current.Type != TokenEOF {
		if p.prevType == TokenNewline {
			switch p.current.Type {
			case TokenComponent, TokenSplitComponents, TokenFunc, TokenTypeKw, TokenConst, TokenVar:
				return
			}
		}
		p.advance()
	}
}

// collectPendingComments collects comments from the lexer and adds them to
// the parser's pending comments buffer.
func (p *Parser) collectPendingComments() {
	comments := p.lexer.ConsumeComments()
	p.pendingComments = append(p.pendingComments, comments...)
}

// consumePendingComments returns all pending comments and clears the buffer.
func (p *Parser) consumePendingComments() []*Comment {
	comments := p.pendingComments
	p.pendingComments = nil
	return comments
}

// clearPendingComments discards all pending comments from both the lexer and parser.
// Used after capturing raw Go code where comments are part of the captured source.
func (p *Parser) clearPendingComments() {
	p.lexer.ConsumeComments()
	p.pendingComments = nil
}

// groupComments groups comments into CommentGroups based on blank lines.
func groupComments(comments []*Comment) []*CommentGroup {
	if len(comments) == 0 {
		return nil
	}

	var groups []*CommentGroup
	var current []*Comment

	for i, c := range comments {
		if i > 0 && c.Position.Line > comments[i-1].EndLine+1 {
			groups = append(groups, &CommentGroup{List: current})
			current = nil
		}
		current = append(current, c)
	}

	return append(groups, &CommentGroup{List: current})
}

// getLeadingCommentGroup returns a single CommentGroup containing all pending
// comments that start before the current token, or nil if there are none.
func (p *Parser) getLeadingCommentGroup() *CommentGroup {
	p.collectPendingComments()
	var leading, rest []*Comment
	for _, c := range p.pendingComments {
		if c.Position.Line < p.current.Line ||
			(c.Position.Line == p.current.Line && c.Position.Column < p.current.Column) {
			leading = append(leading, c)
		} else {
			rest = append(rest, c)
		}
	}
	p.pendingComments = rest
	if len(leading) == 0 {
		return nil
	}
	return &CommentGroup{List: leading}
}

// getTrailingCommentOnLine returns the first pending comment if it starts on
// the given line, as a CommentGroup. Otherwise returns nil.
func (p *Parser) getTrailingCommentOnLine(line int) *CommentGroup {
	p.collectPendingComments()
	if len(p.pendingComments) == 0 {
		return nil
	}

	first := p.pendingComments[0]
	if first.Position.Line != line {
		return nil
	}
	p.pendingComments = p.pendingComments[1:]
	return &CommentGroup{List: []*Comment{first}}
}

// ParseFile parses a complete .dcx file into a File AST node.
func (p *Parser) ParseFile() (*File, error) {
	file := &File{
		Position: p.position(),
	}

	p.skipNewlines()

	file.LeadingComments = p.getLeadingCommentGroup()

	file.Package = p.parsePackage()
	if file.Package == "" {
		p.mergeLexerErrors()
		return nil, p.errors.Err()
	}

	p.skipNewlines()

	file.Imports = p.parseImports()

	p.skipNewlines()

	for p.current.Type != TokenEOF {
		p.skipNewlines()
		if p.current.Type == TokenEOF {
			break
		}

		leadingComments := p.getLeadingCommentGroup()

		switch p.current.Type {
		case TokenComponent, TokenSplitComponents:
			decl := p.parseDecl()
			if decl == nil {
				p.synchronize()
				continue
			}
			decl.LeadingComments = leadingComments
			file.Decls = append(file.Decls, decl)
		case TokenFunc:
			fn := p.parseGoFunc()
			if fn == nil {
				p.synchronize()
				continue
			}
			fn.LeadingComments = leadingComments
			file.Funcs = append(file.Funcs, fn)
		case TokenTypeKw, TokenConst, TokenVar:
			decl := p.parseGoDecl()
			decl.LeadingComments = leadingComments
			file.GoDecls = append(file.GoDecls, decl)
		default:
			p.errors.Add(p.unexpected("component, split_components, func, type, const, or var"))
			p.advance()
			p.synchronize()
		}
	}

	p.collectPendingComments()
	if orphans := p.consumePendingComments(); len(orphans) > 0 {
		file.OrphanComments = groupComments(orphans)
	}

	p.mergeLexerErrors()
	return file, p.errors.Err()
}

// mergeLexerErrors appends lexer errors the parser has not already reported.
func (p *Parser) mergeLexerErrors() {
	seen := make(map[*Error]bool, p.errors.Len())
	for _, err := range p.errors.Errors() {
		seen[err] = true
	}
	for _, err := range p.lexer.Errors().Errors() {
		if !seen[err] {
			p.errors.Add(err)
		}
	}
}

// parsePackage parses "package <name>".
func (p *Parser) parsePackage() string {
	if p.current.Type != TokenPackage {
		p.errors.AddError(p.position(), "expected 'package' declaration")
		return ""
	}
	p.advance()

	if p.current.Type != TokenIdent {
		p.errors.AddError(p.position(), "expected package name")
		return ""
	}
	name := p.current.Literal
	p.advanceSkipNewlines()
	return name
}

// parseImports parses import statements.
// Supports:
//   - import "path"
//   - import alias "path"
//   - import ( "path1"; "path2" )
//   - import ( alias "path" )
func (p *Parser) parseImports() []Import {
	var imports []Import

	for p.current.Type == TokenImport {
		p.advance() // consume 'import'
		p.skipNewlines()

		if p.current.Type == TokenLParen {
			p.advance()
			p.skipNewlines()

			for p.current.Type != TokenRParen && p.current.Type != TokenEOF {
				imp := p.parseSingleImport()
				if imp == nil {
					p.advance()
				} else {
					imports = append(imports, *imp)
				}
				p.skipNewlines()
			}
			p.expect(TokenRParen)
		} else if imp := p.parseSingleImport(); imp != nil {
			imports = append(imports, *imp)
		}
		p.skipNewlines()
	}

	return imports
}

// parseSingleImport parses a single import: [alias] "path"
func (p *Parser) parseSingleImport() *Import {
	pos := p.position()
	var alias string

	if p.current.Type == TokenIdent {
		alias = p.current.Literal
		p.advance()
	}

	if p.current.Type != TokenString {
		p.errors.AddError(p.position(), "expected import path string")
		return nil
	}

	line := p.current.Line
	path := p.current.Literal
	p.advance()

	return &Import{
		Alias:            alias,
		Path:             path,
		Position:         pos,
		TrailingComments: p.getTrailingCommentOnLine(line),
	}
}

// parseDecl parses a component or split_components declaration.
// Syntax: component Name(params) { <component> }
//
//	split_components Name(params) { <component>, ... }
func (p *Parser) parseDecl() *Decl {
	decl := &Decl{
		Entry:    EntryComponent,
		Position: p.position(),
	}
	if p.current.Type == TokenSplitComponents {
		decl.Entry = EntrySplit
	}
	p.advance()

	if p.current.Type != TokenIdent {
		p.errors.Add(p.unexpected("declaration name"))
		return nil
	}
	decl.Name = p.current.Literal
	p.advance()

	if !p.expect(TokenLParen) {
		return nil
	}
	decl.Params = p.parseParams()
	if !p.expect(TokenRParen) {
		return nil
	}

	p.skipNewlines()

	openBraceLine := p.current.Line
	if !p.expect(TokenLBrace) {
		return nil
	}
	decl.TrailingComments = p.getTrailingCommentOnLine(openBraceLine)
	p.skipNewlines()

	var err *Error
	if decl.Entry == EntrySplit {
		decl.Body, err = p.parseComponentList(decl.Position, TokenRBrace)
	} else {
		var comp *Component
		comp, err = p.parseSingleComponent(decl.Position, TokenRBrace)
		if comp != nil {
			decl.Body = []*Component{comp}
		}
	}
	if err != nil {
		p.errors.Add(err)
		return nil
	}

	p.collectPendingComments()
	if orphans := p.consumePendingComments(); len(orphans) > 0 {
		decl.OrphanComments = groupComments(orphans)
	}

	if !p.expectSkipNewlines(TokenRBrace) {
		return nil
	}

	return decl
}

// parseParams parses function parameters.
func (p *Parser) parseParams() []*Param {
	var params []*Param

	for p.current.Type != TokenRParen && p.current.Type != TokenEOF {
		param := p.parseParam()
		if param != nil {
			params = append(params, param)
		}

		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}

	return params
}

// parseParam parses a single parameter: name Type
func (p *Parser) parseParam() *Param {
	pos := p.position()

	if p.current.Type != TokenIdent {
		p.errors.AddError(p.position(), "expected parameter name")
		return nil
	}

	name := p.current.Literal
	p.advance()

	typeStr := p.parseType()
	if typeStr == "" {
		p.errors.AddErrorf(pos, "expected type for parameter %s", name)
		return nil
	}

	return &Param{
		Name:     name,
		Type:     typeStr,
		Position: pos,
	}
}

// parseType captures a Go type expression as raw source, ending at a comma or
// closing paren at depth 0.
func (p *Parser) parseType() string {
	startPos := p.current.StartPos
	depth := 0

	for p.current.Type != TokenEOF {
		switch p.current.Type {
		case TokenComma:
			if depth == 0 {
				return strings.TrimSpace(p.lexer.SourceRange(startPos, p.current.StartPos))
			}
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth == 0 {
				return strings.TrimSpace(p.lexer.SourceRange(startPos, p.current.StartPos))
			}
			depth--
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		}
		p.advance()
	}

	return ""
}

// parseGoFunc captures a top-level function definition as raw Go code.
func (p *Parser) parseGoFunc() *GoFunc {
	pos := p.position()
	startPos := p.current.StartPos
	braceDepth := 0
	started := false

	for p.current.Type != TokenEOF {
		if p.current.Type == TokenLBrace {
			braceDepth++
			started = true
		} else if p.current.Type == TokenRBrace {
			braceDepth--
			if started && braceDepth == 0 {
				endPos := p.current.EndPos
				code := p.lexer.SourceRange(startPos, endPos)
				p.clearPendingComments()
				p.advance()
				p.skipNewlines()
				return &GoFunc{Code: code, Position: pos}
			}
		}
		p.advance()
	}

	p.errors.AddError(pos, "unterminated function definition")
	return nil
}

// parseGoDecl parses a top-level Go declaration (type, const, or var).
// These are captured as raw Go code and passed through unchanged.
func (p *Parser) parseGoDecl() *GoDecl {
	pos := p.position()
	startPos := p.current.StartPos
	kind := p.current.Literal

	braceDepth := 0
	parenDepth := 0

	for p.current.Type != TokenEOF {
		switch p.current.Type {
		case TokenLBrace:
			braceDepth++
		case TokenRBrace:
			braceDepth--
			if braceDepth == 0 && parenDepth == 0 && p.peek.Type != TokenOperator && p.peek.Type != TokenDot {
				// End of braced declaration (type struct{}, composite literal)
				code := p.lexer.SourceRange(startPos, p.current.EndPos)
				p.clearPendingComments()
				p.advance()
				p.skipNewlines()
				return &GoDecl{Kind: kind, Code: code, Position: pos}
			}
		case TokenLParen:
			parenDepth++
		case TokenRParen:
			parenDepth--
		case TokenNewline:
			if braceDepth == 0 && parenDepth == 0 {
				code := p.lexer.SourceRange(startPos, p.current.StartPos)
				p.clearPendingComments()
				p.skipNewlines()
				return &GoDecl{Kind: kind, Code: strings.TrimRight(code, " \t\r"), Position: pos}
			}
		}
		p.advance()
	}

	code := p.lexer.SourceRange(startPos, p.lexer.SourcePos())
	return &GoDecl{Kind: kind, Code: strings.TrimSpace(code), Position: pos}
}
