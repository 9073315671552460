package compiler

import (
	"github.com/OliveIsAWord/Bling/vm"
)

// ---------------------------------------------------------------------------
// AST node types
// ---------------------------------------------------------------------------

// Expr is any expression node. A parsed program is an ordered sequence of
// expressions.
type Expr interface {
	Pos() Position
	exprNode()
}

// NumberExpr is an integer literal.
type NumberExpr struct {
	Value    vm.Number
	Position Position
}

// IdentExpr is a variable reference.
type IdentExpr struct {
	Name     string
	Position Position
}

// AssignExpr assigns the value of an expression to an existing variable:
// name = expr.
type AssignExpr struct {
	Name     string
	Value    Expr
	Position Position
}

// DeclareExpr declares a variable in the current scope initialized with the
// value of an expression: name := expr.
type DeclareExpr struct {
	Name     string
	Value    Expr
	Position Position
}

// BlockExpr is a sequence of expressions within curly brackets.
type BlockExpr struct {
	Body     []Expr
	Position Position
}

// ApplyExpr is a function call. Arguments are whitespace-separated;
// f(1)(2) nests with the inner application as the callee.
type ApplyExpr struct {
	Callee   Expr
	Args     []Expr
	Position Position
}

// LambdaExpr is a function definition: (params) => body.
type LambdaExpr struct {
	Params   []string
	Body     Expr
	Position Position
}

func (e *NumberExpr) Pos() Position  { return e.Position }
func (e *IdentExpr) Pos() Position   { return e.Position }
func (e *AssignExpr) Pos() Position  { return e.Position }
func (e *DeclareExpr) Pos() Position { return e.Position }
func (e *BlockExpr) Pos() Position   { return e.Position }
func (e *ApplyExpr) Pos() Position   { return e.Position }
func (e *LambdaExpr) Pos() Position  { return e.Position }

func (*NumberExpr) exprNode()  {}
func (*IdentExpr) exprNode()   {}
func (*AssignExpr) exprNode()  {}
func (*DeclareExpr) exprNode() {}
func (*BlockExpr) exprNode()   {}
func (*ApplyExpr) exprNode()   {}
func (*LambdaExpr) exprNode()  {}
