package compgen

import (
	"strconv"
)

// readString reads a double-quoted string. The token literal holds the
// unquoted value; the quoted source text stays reachable through the
// token's StartPos/EndPos.
func (l *Lexer) readString() Token {
	startPos := l.pos
	l.readChar() // consume opening "

	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\n' {
			l.errors.AddError(l.position(), "unterminated string literal")
			return l.makeToken(TokenError, l.source[startPos:l.pos])
		}
		if l.ch == '\\' {
			l.readChar() // escaped character is never a terminator
		}
		l.readChar()
	}

	if l.ch == 0 {
		l.errors.AddError(l.position(), "unterminated string literal")
		return l.makeToken(TokenError, l.source[startPos:l.pos])
	}

	l.readChar() // consume closing "

	raw := l.source[startPos:l.pos]
	value, err := strconv.Unquote(raw)
	if err != nil {
		l.errors.AddErrorf(l.position(), "invalid string literal %s", raw)
		return l.makeToken(TokenError, raw)
	}
	return l.makeToken(TokenString, value)
}

// readRune reads a single-quoted rune literal with Go escape sequences.
func (l *Lexer) readRune() Token {
	startPos := l.pos
	l.readChar() // consume opening '

	for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}

	if l.ch != '\'' {
		l.errors.AddError(l.position(), "unterminated rune literal")
		return l.makeToken(TokenError, l.source[startPos:l.pos])
	}
	l.readChar() // consume closing '

	raw := l.source[startPos:l.pos]
	if raw == "''" {
		l.errors.AddError(l.position(), "empty rune literal")
		return l.makeToken(TokenError, raw)
	}

	value, err := strconv.Unquote(raw)
	if err != nil {
		l.errors.AddErrorf(l.position(), "invalid rune literal %s", raw)
		return l.makeToken(TokenError, raw)
	}
	return l.makeToken(TokenRune, value)
}

// readRawString reads a backtick-quoted raw string.
func (l *Lexer) readRawString() Token {
	l.readChar() // consume opening `

	startPos := l.pos
	for l.ch != '`' && l.ch != 0 {
		l.readChar()
	}

	if l.ch == 0 {
		l.errors.AddError(l.position(), "unterminated raw string literal")
		return l.makeToken(TokenError, l.source[startPos:l.pos])
	}

	literal := l.source[startPos:l.pos]
	l.readChar() // consume closing `
	return l.makeToken(TokenRawString, literal)
}

// readNumber reads an integer or float literal. Prefixed integers (0x, 0o,
// 0b) and digit separators are accepted; the literal is kept as written.
func (l *Lexer) readNumber() Token {
	startPos := l.pos
	isFloat := false

	if l.ch == '0' && isBasePrefix(l.peekChar()) {
		l.readChar() // consume 0
		l.readChar() // consume base letter
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return l.makeToken(TokenInt, l.source[startPos:l.pos])
	}

	// Handle leading dot for floats like .5
	if l.ch == '.' {
		isFloat = true
		l.readChar()
	}

	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	if l.ch == '.' && !isFloat {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Imaginary suffix
	if l.ch == 'i' {
		isFloat = true
		l.readChar()
	}

	literal := l.source[startPos:l.pos]
	if isFloat {
		return l.makeToken(TokenFloat, literal)
	}
	return l.makeToken(TokenInt, literal)
}

func isBasePrefix(ch rune) bool {
	switch ch {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func isHexDigit(ch rune) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
