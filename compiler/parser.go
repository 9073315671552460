package compiler

import (
	"fmt"

	"github.com/OliveIsAWord/Bling/vm"
)

// ---------------------------------------------------------------------------
// Parser: Recursive descent over the token stream
// ---------------------------------------------------------------------------

// ParseError reports a syntax error with its source position.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Msg)
}

// Parser parses a token stream into a sequence of expressions.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse lexes and parses a whole source text.
func Parse(source string) ([]Expr, error) {
	return NewParser(NewLexer(source).Tokens()).ParseProgram()
}

// NewParser creates a parser over a token slice ending in TokenEOF.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.cur()
	if tok.Kind != kind {
		return tok, p.errorf(tok, "expected %s, found %s", kind, describe(tok))
	}
	return p.advance(), nil
}

func (p *Parser) errorf(tok Token, format string, args ...interface{}) error {
	return &ParseError{Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenNumber, TokenIdent, TokenError:
		return fmt.Sprintf("%q", tok.Lexeme)
	default:
		return fmt.Sprintf("%q", tok.Kind.String())
	}
}

// ParseProgram parses expressions until end of input.
func (p *Parser) ParseProgram() ([]Expr, error) {
	var exprs []Expr
	for p.cur().Kind != TokenEOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// parseExpr parses one expression: a number, a lambda, an assignment or
// declaration, or an identifier/block with any trailing applications.
func (p *Parser) parseExpr() (Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case TokenNumber:
		p.advance()
		n, ok := vm.ParseNumber(tok.Lexeme)
		if !ok {
			return nil, p.errorf(tok, "malformed number %q", tok.Lexeme)
		}
		return &NumberExpr{Value: n, Position: tok.Pos}, nil

	case TokenLParen:
		// A parenthesized group in expression position can only be lambda
		// parameters; the grammar has no parenthesized expressions.
		return p.parseLambda()

	case TokenLBrace:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return p.parseApplications(block)

	case TokenIdent:
		switch p.peek().Kind {
		case TokenAssign:
			p.advance()
			p.advance()
			rhs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &AssignExpr{Name: tok.Lexeme, Value: rhs, Position: tok.Pos}, nil
		case TokenDeclare:
			p.advance()
			p.advance()
			rhs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &DeclareExpr{Name: tok.Lexeme, Value: rhs, Position: tok.Pos}, nil
		default:
			p.advance()
			return p.parseApplications(&IdentExpr{Name: tok.Lexeme, Position: tok.Pos})
		}

	default:
		return nil, p.errorf(tok, "expected expression, found %s", describe(tok))
	}
}

// parseApplications folds trailing argument groups onto a callee, so
// f(42)(555) applies f(42) to 555. A group followed by => belongs to the
// next expression as lambda parameters and is left unconsumed.
func (p *Parser) parseApplications(callee Expr) (Expr, error) {
	for p.cur().Kind == TokenLParen {
		save := p.pos
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if p.cur().Kind == TokenArrow {
			p.pos = save
			break
		}
		callee = &ApplyExpr{Callee: callee, Args: args, Position: callee.Pos()}
	}
	return callee, nil
}

// parseArgs parses a parenthesized, whitespace-separated argument list.
func (p *Parser) parseArgs() ([]Expr, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var args []Expr
	for p.cur().Kind != TokenRParen {
		if p.cur().Kind == TokenEOF {
			return nil, p.errorf(p.cur(), "unterminated argument list")
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.advance()
	return args, nil
}

// parseBlock parses { expr* }.
func (p *Parser) parseBlock() (*BlockExpr, error) {
	open, err := p.expect(TokenLBrace)
	if err != nil {
		return nil, err
	}
	var body []Expr
	for p.cur().Kind != TokenRBrace {
		if p.cur().Kind == TokenEOF {
			return nil, p.errorf(p.cur(), "unterminated block")
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body = append(body, expr)
	}
	p.advance()
	return &BlockExpr{Body: body, Position: open.Pos}, nil
}

// parseLambda parses (params) => body.
func (p *Parser) parseLambda() (Expr, error) {
	open, err := p.expect(TokenLParen)
	if err != nil {
		return nil, err
	}
	var params []string
	for p.cur().Kind == TokenIdent {
		params = append(params, p.advance().Lexeme)
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenArrow); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &LambdaExpr{Params: params, Body: body, Position: open.Pos}, nil
}
