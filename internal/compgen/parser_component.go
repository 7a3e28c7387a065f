package compgen

import (
	goparser "go/parser"
	"go/scanner"
	"strconv"
	"strings"
)

// next advances past the current token and any newlines. Newlines carry no
// meaning inside component bodies.
func (p *Parser) next() Token {
	tok := p.current
	p.advanceSkipNewlines()
	return tok
}

// eat consumes a token of the given type or returns an "expected" error.
func (p *Parser) eat(typ TokenType) (Token, *Error) {
	if p.current.Type != typ {
		return Token{}, p.unexpected(typ.String())
	}
	return p.next(), nil
}

// parseSingleComponent parses exactly one component followed by end.
// Any trailing token is an error.
func (p *Parser) parseSingleComponent(callSite Position, end TokenType) (*Component, *Error) {
	comp, err := p.parseCommentedComponent(callSite)
	if err != nil {
		return nil, err
	}
	if p.current.Type != end {
		if p.current.Type == TokenError {
			return nil, p.unexpected(end.String())
		}
		return nil, NewErrorf(p.position(), "unexpected %s after component", p.current.describe())
	}
	comp.TrailingComments = p.getTrailingCommentOnLine(p.prevLine)
	return comp, nil
}

// parseComponentList parses a comma-separated component list, allowing a
// trailing comma, up to (not including) end.
func (p *Parser) parseComponentList(callSite Position, end TokenType) ([]*Component, *Error) {
	var comps []*Component

	for p.current.Type != end {
		comp, err := p.parseCommentedComponent(callSite)
		if err != nil {
			return nil, err
		}
		comps = append(comps, comp)

		if p.current.Type == TokenComma {
			p.next()
			comp.TrailingComments = p.getTrailingCommentOnLine(p.prevLine)
			continue
		}
		if p.current.Type != end {
			return nil, p.unexpected("',' or " + end.String())
		}
		comp.TrailingComments = p.getTrailingCommentOnLine(p.prevLine)
	}

	return comps, nil
}

// parseCommentedComponent parses a component and attaches the comments and
// blank-line layout that precede it.
func (p *Parser) parseCommentedComponent(callSite Position) (*Component, *Error) {
	leading := p.getLeadingCommentGroup()
	firstLine := p.current.Line
	if leading != nil {
		firstLine = leading.List[0].Position.Line
	}
	blankBefore := p.prevLine > 0 && firstLine > p.prevLine+1

	comp, err := p.parseComponent(callSite)
	if err != nil {
		return nil, err
	}
	comp.LeadingComments = leading
	comp.BlankLineBefore = blankBefore
	return comp, nil
}

// parseComponent parses `kind!(args) => label`, or `row!()` which never
// takes a label.
func (p *Parser) parseComponent(callSite Position) (*Component, *Error) {
	comp, err := p.parseKind(callSite)
	if err != nil {
		return nil, err
	}
	if comp.Kind == KindRow {
		return comp, nil
	}

	if _, err := p.eat(TokenArrow); err != nil {
		return nil, err
	}

	comp.Label, err = p.parseLabel()
	if err != nil {
		return nil, err
	}
	return comp, nil
}

// parseKind parses `row!()`, `url!(EXPR)`, `btn!(STRING)` or
// `btn!(STRING, EXPR)`. The kind name is checked only after `!(` so that
// malformed invocations report the token that broke them.
func (p *Parser) parseKind(callSite Position) (*Component, *Error) {
	pos := p.position()
	if p.current.Type != TokenIdent {
		return nil, p.unexpected("identifier")
	}
	name := p.next().Literal

	if _, err := p.eat(TokenBang); err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenLParen); err != nil {
		return nil, err
	}

	kind, ok := kindNames[name]
	if !ok {
		return nil, NewError(callSite, MsgUnknownKind)
	}

	comp := &Component{Kind: kind, Position: pos}

	switch kind {
	case KindURL:
		url, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		comp.URL = url

	case KindButton:
		if !p.current.Type.IsString() {
			return nil, p.unexpected("string literal")
		}
		comp.CustomID = p.next().Literal

		if p.current.Type == TokenComma {
			p.next()
			style, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			comp.Style = style
		}
	}

	if _, err := p.eat(TokenRParen); err != nil {
		return nil, err
	}
	return comp, nil
}

// parseLabel parses a label head (identifier or string literal). Only the
// identifier spelled `emoji` introduces `emoji!(LIT) "text"`; a string
// literal "emoji" is plain text.
func (p *Parser) parseLabel() (*Label, *Error) {
	label := &Label{Position: p.position()}

	switch {
	case p.current.Type == TokenIdent || labelKeywords[p.current.Type]:
		label.Text = p.next().Literal
		if label.Text != "emoji" {
			label.Bare = true
			return label, nil
		}
	case p.current.Type.IsString():
		label.Text = p.next().Literal
		return label, nil
	default:
		return nil, p.unexpected("identifier or string literal")
	}

	emoji, err := p.parseEmoji()
	if err != nil {
		return nil, err
	}
	label.Emoji = emoji

	if !p.current.Type.IsString() {
		return nil, p.unexpected("string literal")
	}
	label.Text = p.next().Literal
	return label, nil
}

// labelKeywords are file-layer keywords that are still plain identifiers in
// label position. type and const stay reserved.
var labelKeywords = map[TokenType]bool{
	TokenPackage:         true,
	TokenImport:          true,
	TokenFunc:            true,
	TokenVar:             true,
	TokenComponent:       true,
	TokenSplitComponents: true,
}

// parseEmoji parses `!(LIT)` after the `emoji` identifier. An integer literal
// is a custom emoji id, a rune literal a unicode emoji.
func (p *Parser) parseEmoji() (*Emoji, *Error) {
	if _, err := p.eat(TokenBang); err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenLParen); err != nil {
		return nil, err
	}

	pos := p.position()
	lit := p.current
	var emoji *Emoji

	switch {
	case lit.Type == TokenInt:
		id, err := parseEmojiID(lit.Literal)
		if err != nil {
			return nil, NewErrorWithHint(pos, "invalid emoji id "+lit.Literal, "custom emoji ids are unsigned 64-bit integers")
		}
		emoji = &Emoji{Kind: EmojiCustom, ID: id, Position: pos}
	case lit.Type == TokenRune:
		r := []rune(lit.Literal)
		emoji = &Emoji{Kind: EmojiUnicode, Char: r[0], Position: pos}
	case isLiteral(lit):
		return nil, NewError(pos, MsgBadEmoji)
	default:
		return nil, p.unexpected("literal")
	}
	p.next()

	if _, err := p.eat(TokenRParen); err != nil {
		return nil, err
	}
	return emoji, nil
}

// parseEmojiID parses an integer literal as a custom emoji id. Without a
// 0x, 0o or 0b prefix the literal is decimal, leading zeros included.
func parseEmojiID(lit string) (uint64, error) {
	s := strings.ReplaceAll(lit, "_", "")
	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			s = s[2:]
		}
	}
	return strconv.ParseUint(s, base, 64)
}

// isLiteral reports whether tok is any Go literal, including the predeclared
// booleans.
func isLiteral(tok Token) bool {
	switch tok.Type {
	case TokenInt, TokenFloat, TokenString, TokenRawString, TokenRune:
		return true
	case TokenIdent:
		return tok.Literal == "true" || tok.Literal == "false"
	}
	return false
}

// parseExpr captures a Go expression as raw source, ending before a ',' or
// ')' at bracket depth 0. The expression is syntax-checked but otherwise
// left untouched.
func (p *Parser) parseExpr() (*GoExpr, *Error) {
	pos := p.position()
	startPos := p.current.StartPos
	endPos := -1
	depth := 0

scan:
	for {
		switch p.current.Type {
		case TokenEOF, TokenError:
			return nil, p.unexpected(")")
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth == 0 {
				break scan
			}
			depth--
		case TokenComma:
			if depth == 0 {
				break scan
			}
		}
		endPos = p.current.EndPos
		p.next()
	}

	if endPos < 0 {
		return nil, p.unexpected("expression")
	}

	code := strings.TrimSpace(p.lexer.SourceRange(startPos, endPos))
	if _, err := goparser.ParseExpr(code); err != nil {
		msg := err.Error()
		if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
			msg = list[0].Msg
		}
		return nil, NewErrorf(pos, "invalid Go expression %q: %s", code, msg)
	}

	p.dropCommentsWithin(startPos, endPos)

	return &GoExpr{Code: code, Position: pos}, nil
}

// dropCommentsWithin discards pending comments that belong to captured raw
// source between start and end.
func (p *Parser) dropCommentsWithin(start, end int) {
	p.collectPendingComments()
	kept := p.pendingComments[:0]
	for _, c := range p.pendingComments {
		if c.Offset < start || c.Offset >= end {
			kept = append(kept, c)
		}
	}
	p.pendingComments = kept
}
