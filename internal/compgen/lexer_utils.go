package compgen

import (
	"unicode"
)

// skipWhitespaceAndCollectComments skips spaces, tabs, and collects comments (but not newlines).
func (l *Lexer) skipWhitespaceAndCollectComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '/':
			if l.peekChar() == '/' {
				l.collectLineComment()
			} else if l.peekChar() == '*' {
				l.collectBlockComment()
			} else {
				return
			}
		default:
			return
		}
	}
}

// collectLineComment reads a // comment and adds it to pendingComments.
func (l *Lexer) collectLineComment() {
	startPos := l.pos
	startLine := l.line
	startCol := l.column

	blankLineBefore := l.hadBlankLineBefore(startLine)

	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}

	l.pendingComments = append(l.pendingComments, &Comment{
		Text:            l.source[startPos:l.pos],
		Position:        Position{File: l.filename, Line: startLine, Column: startCol},
		Offset:          startPos,
		EndLine:         l.line,
		IsBlock:         false,
		BlankLineBefore: blankLineBefore,
	})
	l.lastCommentEndLine = l.line
}

// collectBlockComment reads a /* */ comment and adds it to pendingComments.
func (l *Lexer) collectBlockComment() {
	startPos := l.pos
	startLine := l.line
	startCol := l.column

	blankLineBefore := l.hadBlankLineBefore(startLine)

	l.readChar() // skip /
	l.readChar() // skip *

	for {
		if l.ch == 0 {
			l.errors.AddError(Position{File: l.filename, Line: startLine, Column: startCol}, "unterminated block comment")
			return
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip *
			l.readChar() // skip /
			break
		}
		l.readChar()
	}

	l.pendingComments = append(l.pendingComments, &Comment{
		Text:            l.source[startPos:l.pos],
		Position:        Position{File: l.filename, Line: startLine, Column: startCol},
		Offset:          startPos,
		EndLine:         l.line,
		IsBlock:         true,
		BlankLineBefore: blankLineBefore,
	})
	l.lastCommentEndLine = l.line
}

// hadBlankLineBefore reports whether a blank line separates currentLine from
// the previous comment, pending or already consumed.
func (l *Lexer) hadBlankLineBefore(currentLine int) bool {
	if len(l.pendingComments) > 0 {
		lastComment := l.pendingComments[len(l.pendingComments)-1]
		return currentLine > lastComment.EndLine+1
	}
	if l.lastCommentEndLine > 0 {
		return currentLine > l.lastCommentEndLine+1
	}
	return false
}

// ConsumeComments returns and clears pending comments.
// Called by parser after each node is parsed.
func (l *Lexer) ConsumeComments() []*Comment {
	comments := l.pendingComments
	l.pendingComments = nil
	return comments
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() Token {
	startPos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	literal := l.source[startPos:l.pos]
	return l.makeToken(LookupIdent(literal), literal)
}

// isLetter returns true if the rune is a letter or underscore.
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// isDigit returns true if the rune is a digit.
func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}

// SourceRange extracts a substring of the original source from start to end positions.
// Used by the parser to capture raw Go code without tokenization.
func (l *Lexer) SourceRange(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(l.source) {
		end = len(l.source)
	}
	if start >= end {
		return ""
	}
	return l.source[start:end]
}

// SourcePos returns the current position in the source string.
func (l *Lexer) SourcePos() int {
	return l.pos
}
