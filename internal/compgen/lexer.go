package compgen

import (
	"unicode/utf8"
)

// Lexer tokenizes .dcx source files.
type Lexer struct {
	filename string
	source   string
	pos      int  // current position in source
	readPos  int  // next position to read
	ch       rune // current character
	line     int  // current line (1-based)
	column   int  // current column (1-based)

	// Track the start position of current token
	tokenLine     int
	tokenColumn   int
	tokenStartPos int // byte offset where current token starts

	// Comments collected since last ConsumeComments() call
	pendingComments []*Comment

	// End line of the last collected comment, persisted across
	// ConsumeComments calls to detect blank lines between comment batches.
	lastCommentEndLine int

	errors *ErrorList
}

// NewLexer creates a new Lexer for the given source.
func NewLexer(filename, source string) *Lexer {
	l := &Lexer{
		filename: filename,
		source:   source,
		line:     1,
		column:   0,
		errors:   NewErrorList(),
	}
	l.readChar()
	return l
}

// Errors returns any errors encountered during lexing.
func (l *Lexer) Errors() *ErrorList {
	return l.errors
}

// Filename returns the name used in positions produced by this lexer.
func (l *Lexer) Filename() string {
	return l.filename
}

// readChar advances to the next character in the source.
func (l *Lexer) readChar() {
	prevWasNewline := l.ch == '\n'

	if l.readPos >= len(l.source) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		if prevWasNewline {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		return
	}

	r, size := utf8.DecodeRuneInString(l.source[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size

	if prevWasNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.readPos:])
	return r
}

// startToken marks the beginning of a new token.
func (l *Lexer) startToken() {
	l.tokenLine = l.line
	l.tokenColumn = l.column
	l.tokenStartPos = l.pos
}

// makeToken creates a token spanning from the token start to the current position.
func (l *Lexer) makeToken(typ TokenType, literal string) Token {
	// Code between comments means they can't form one blank-line-separated batch.
	if typ != TokenNewline && typ != TokenEOF {
		l.lastCommentEndLine = 0
	}
	return Token{
		Type:     typ,
		Literal:  literal,
		Line:     l.tokenLine,
		Column:   l.tokenColumn,
		StartPos: l.tokenStartPos,
		EndPos:   l.pos,
	}
}

// position returns the current token's Position for error reporting.
func (l *Lexer) position() Position {
	return Position{
		File:   l.filename,
		Line:   l.tokenLine,
		Column: l.tokenColumn,
	}
}

// single consumes one character and returns it as a token of the given type.
func (l *Lexer) single(typ TokenType) Token {
	lit := string(l.ch)
	l.readChar()
	return l.makeToken(typ, lit)
}

// Next returns the next token from the source.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndCollectComments()

	l.startToken()

	switch l.ch {
	case 0:
		return l.makeToken(TokenEOF, "")

	case '\n':
		l.readChar()
		return l.makeToken(TokenNewline, "\n")

	case '(':
		return l.single(TokenLParen)
	case ')':
		return l.single(TokenRParen)
	case '{':
		return l.single(TokenLBrace)
	case '}':
		return l.single(TokenRBrace)
	case '[':
		return l.single(TokenLBracket)
	case ']':
		return l.single(TokenRBracket)
	case ',':
		return l.single(TokenComma)

	case '=':
		if l.peekChar() == '>' {
			l.readChar() // consume =
			l.readChar() // consume >
			return l.makeToken(TokenArrow, "=>")
		}
		return l.single(TokenOperator)

	case '!':
		if l.peekChar() == '=' {
			l.readChar() // consume !
			l.readChar() // consume =
			return l.makeToken(TokenOperator, "!=")
		}
		return l.single(TokenBang)

	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		return l.single(TokenDot)

	case '+', '-', '*', '/', '%', '&', '|', '^', '<', '>', '~', ':', ';':
		return l.single(TokenOperator)

	case '"':
		return l.readString()

	case '\'':
		return l.readRune()

	case '`':
		return l.readRawString()

	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}

		ch := l.ch
		l.readChar()
		l.errors.AddErrorf(l.position(), "unexpected character %q", ch)
		return l.makeToken(TokenError, string(ch))
	}
}
