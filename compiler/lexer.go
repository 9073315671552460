package compiler

import (
	"unicode"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: Tokenizer for Bling syntax
// ---------------------------------------------------------------------------

// Lexer tokenizes Bling source code.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current character
	line    int  // current line (1-based)
	col     int  // current column (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		l.col++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// position returns the current position.
func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.position()

	switch {
	case l.ch == 0:
		return Token{Kind: TokenEOF, Pos: pos}

	case l.ch == '(':
		l.readChar()
		return Token{Kind: TokenLParen, Lexeme: "(", Pos: pos}

	case l.ch == ')':
		l.readChar()
		return Token{Kind: TokenRParen, Lexeme: ")", Pos: pos}

	case l.ch == '{':
		l.readChar()
		return Token{Kind: TokenLBrace, Lexeme: "{", Pos: pos}

	case l.ch == '}':
		l.readChar()
		return Token{Kind: TokenRBrace, Lexeme: "}", Pos: pos}

	case l.ch == '=':
		l.readChar()
		if l.ch == '>' {
			l.readChar()
			return Token{Kind: TokenArrow, Lexeme: "=>", Pos: pos}
		}
		return Token{Kind: TokenAssign, Lexeme: "=", Pos: pos}

	case l.ch == ':':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return Token{Kind: TokenDeclare, Lexeme: ":=", Pos: pos}
		}
		return Token{Kind: TokenError, Lexeme: ":", Pos: pos}

	case l.ch == '-' && isDigit(l.peekChar()):
		return l.lexNumber(pos)

	case isDigit(l.ch):
		return l.lexNumber(pos)

	case isIdentStart(l.ch):
		return l.lexIdent(pos)

	default:
		lexeme := string(l.ch)
		l.readChar()
		return Token{Kind: TokenError, Lexeme: lexeme, Pos: pos}
	}
}

// Tokens lexes the entire input.
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

// lexNumber scans -?[0-9][0-9_]*. Underscore separators may follow any
// digit, including the last.
func (l *Lexer) lexNumber(pos Position) Token {
	start := l.pos
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return Token{Kind: TokenNumber, Lexeme: l.input[start:l.pos], Pos: pos}
}

// lexIdent scans [a-zA-Z_][a-zA-Z0-9_]*.
func (l *Lexer) lexIdent(pos Position) Token {
	start := l.pos
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return Token{Kind: TokenIdent, Lexeme: l.input[start:l.pos], Pos: pos}
}

func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
