package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Tokens
// ---------------------------------------------------------------------------

// TokenKind identifies a lexical token type.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	TokenNumber // integer literal, optionally negative, with _ separators
	TokenIdent  // [a-zA-Z_][a-zA-Z0-9_]*

	TokenAssign  // =
	TokenDeclare // :=
	TokenArrow   // =>
	TokenLParen  // (
	TokenRParen  // )
	TokenLBrace  // {
	TokenRBrace  // }
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "ERROR"
	case TokenNumber:
		return "NUMBER"
	case TokenIdent:
		return "IDENT"
	case TokenAssign:
		return "="
	case TokenDeclare:
		return ":="
	case TokenArrow:
		return "=>"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Position is a location in the source text.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Pos    Position
}
