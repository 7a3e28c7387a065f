package compgen

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TokenEOF     TokenType = iota // end of file
	TokenError                    // lexer error
	TokenNewline                  // newline

	// Keywords
	TokenPackage         // package
	TokenImport          // import
	TokenFunc            // func
	TokenTypeKw          // type
	TokenConst           // const
	TokenVar             // var
	TokenComponent       // component
	TokenSplitComponents // split_components

	// Literals
	TokenIdent     // identifier
	TokenInt       // integer literal: 123
	TokenFloat     // float literal: 1.23
	TokenString    // string literal: "..."
	TokenRawString // raw string literal: `...`
	TokenRune      // rune literal: 'x'

	// Punctuation
	TokenLParen   // (
	TokenRParen   // )
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
	TokenComma    // ,
	TokenBang     // !
	TokenArrow    // =>
	TokenDot      // .
	TokenOperator // any other Go operator, only meaningful inside expressions
)

var tokenNames = map[TokenType]string{
	TokenEOF:             "EOF",
	TokenError:           "Error",
	TokenNewline:         "Newline",
	TokenPackage:         "package",
	TokenImport:          "import",
	TokenFunc:            "func",
	TokenTypeKw:          "type",
	TokenConst:           "const",
	TokenVar:             "var",
	TokenComponent:       "component",
	TokenSplitComponents: "split_components",
	TokenIdent:           "Ident",
	TokenInt:             "Int",
	TokenFloat:           "Float",
	TokenString:          "String",
	TokenRawString:       "RawString",
	TokenRune:            "Rune",
	TokenLParen:          "(",
	TokenRParen:          ")",
	TokenLBrace:          "{",
	TokenRBrace:          "}",
	TokenLBracket:        "[",
	TokenRBracket:        "]",
	TokenComma:           ",",
	TokenBang:            "!",
	TokenArrow:           "=>",
	TokenDot:             ".",
	TokenOperator:        "Operator",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// IsString reports whether the token is a double-quoted or raw string literal.
func (t TokenType) IsString() bool {
	return t == TokenString || t == TokenRawString
}

// Token represents a lexical token with its type, literal value, and source position.
type Token struct {
	Type     TokenType
	Literal  string
	Line     int
	Column   int
	StartPos int // byte offset in source where token starts
	EndPos   int // byte offset just past the token
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s at %d:%d", t.Type, t.Line, t.Column)
	}
	lit := t.Literal
	if len(lit) > 20 {
		lit = lit[:17] + "..."
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, lit, t.Line, t.Column)
}

// describe renders a token for "expected X, got Y" messages.
func (t Token) describe() string {
	switch t.Type {
	case TokenIdent, TokenInt, TokenFloat, TokenOperator:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	case TokenString, TokenRawString:
		return "string literal"
	case TokenRune:
		return "rune literal"
	default:
		return t.Type.String()
	}
}

// Position represents a source code location for error reporting.
type Position struct {
	File   string
	Line   int
	Column int
}

// String returns a formatted position string.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

var keywords = map[string]TokenType{
	"package":          TokenPackage,
	"import":           TokenImport,
	"func":             TokenFunc,
	"type":             TokenTypeKw,
	"const":            TokenConst,
	"var":              TokenVar,
	"component":        TokenComponent,
	"split_components": TokenSplitComponents,
}

// LookupIdent returns the token type for an identifier,
// checking if it's a keyword first.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
