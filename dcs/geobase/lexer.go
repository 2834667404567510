package geobase

import (
	"fmt"
	"strings"
	"unicode"
)

// Lexer tokenizes gazetteer facts: functor('quoted', 12, 3.5e+3, [a, b]).
type Lexer struct {
	input   string
	pos     int
	line    int
	col     int
	tokens  []Token
	current int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
}

// Lex tokenizes the entire input
func (l *Lexer) Lex() error {
	for l.pos < len(l.input) {
		if err := l.skipWhitespaceAndComments(); err != nil {
			return err
		}
		if l.pos >= len(l.input) {
			break
		}

		startLine := l.line
		startCol := l.col

		ch := l.peek()
		switch {
		case ch == '\'' || ch == '"':
			str, err := l.readQuoted(ch)
			if err != nil {
				return err
			}
			l.emit(TokenString, str, startLine, startCol)
		case ch == '(':
			l.advance()
			l.emit(TokenLeftParen, "", startLine, startCol)
		case ch == ')':
			l.advance()
			l.emit(TokenRightParen, "", startLine, startCol)
		case ch == '[':
			l.advance()
			l.emit(TokenLeftBracket, "", startLine, startCol)
		case ch == ']':
			l.advance()
			l.emit(TokenRightBracket, "", startLine, startCol)
		case ch == ',':
			l.advance()
			l.emit(TokenComma, "", startLine, startCol)
		case ch == '.':
			l.advance()
			l.emit(TokenPeriod, "", startLine, startCol)
		case isDigit(ch) || ((ch == '-' || ch == '+') && isDigit(l.peekAt(1))):
			l.emit(TokenNumber, l.readNumber(), startLine, startCol)
		case isAtomStart(ch):
			l.emit(TokenAtom, l.readAtom(), startLine, startCol)
		default:
			return fmt.Errorf("unexpected character '%c' at %d:%d", ch, l.line, l.col)
		}
	}

	l.emit(TokenEOF, "", l.line, l.col)
	return nil
}

func (l *Lexer) emit(tt TokenType, value string, line, col int) {
	l.tokens = append(l.tokens, Token{Type: tt, Value: value, Line: line, Col: col})
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	if l.current >= len(l.tokens) {
		return Token{Type: TokenEOF, Line: l.line, Col: l.col}
	}
	token := l.tokens[l.current]
	l.current++
	return token
}

// PeekToken returns the next token without advancing
func (l *Lexer) PeekToken() Token {
	if l.current >= len(l.tokens) {
		return Token{Type: TokenEOF, Line: l.line, Col: l.col}
	}
	return l.tokens[l.current]
}

// Tokens returns all lexed tokens
func (l *Lexer) Tokens() []Token {
	return l.tokens
}

// peek returns the current character without advancing
func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// advance moves to the next character
func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

// skipWhitespaceAndComments skips whitespace, % line comments and /* */ blocks
func (l *Lexer) skipWhitespaceAndComments() error {
	for l.pos < len(l.input) {
		ch := l.peek()
		switch {
		case unicode.IsSpace(rune(ch)):
			l.advance()
		case ch == '%':
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekAt(1) == '*':
			line, col := l.line, l.col
			l.advance()
			l.advance()
			for {
				if l.pos >= len(l.input) {
					return fmt.Errorf("unterminated comment at %d:%d", line, col)
				}
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

// readQuoted reads a quoted atom; a doubled quote stands for itself
func (l *Lexer) readQuoted(quote byte) (string, error) {
	var result strings.Builder
	line, col := l.line, l.col
	l.advance() // skip opening quote

	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == quote {
			if l.peekAt(1) == quote {
				result.WriteByte(quote)
				l.advance()
				l.advance()
				continue
			}
			l.advance() // skip closing quote
			return result.String(), nil
		}
		if ch == '\n' {
			break
		}
		result.WriteByte(ch)
		l.advance()
	}

	return "", fmt.Errorf("unterminated string at %d:%d", line, col)
}

// readNumber reads 42, -7, 3894.0e+3
func (l *Lexer) readNumber() string {
	start := l.pos
	if ch := l.peek(); ch == '-' || ch == '+' {
		l.advance()
	}
	for isDigit(l.peek()) {
		l.advance()
	}
	// A period only belongs to the number when a digit follows it;
	// otherwise it terminates the fact.
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if ch := l.peek(); ch == 'e' || ch == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			l.advance()
			if next == '+' || next == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	return l.input[start:l.pos]
}

// readAtom reads an unquoted atom
func (l *Lexer) readAtom() string {
	start := l.pos
	for l.pos < len(l.input) && isAtomChar(l.peek()) {
		l.advance()
	}
	return l.input[start:l.pos]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAtomStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAtomChar(ch byte) bool {
	return isAtomStart(ch) || isDigit(ch)
}
