package compiler

import (
	"fmt"
	"math"

	"github.com/OliveIsAWord/Bling/vm"
)

// ---------------------------------------------------------------------------
// Codegen: Compile AST to bytecode
// ---------------------------------------------------------------------------

// Mode controls whether an expression's value is pushed to the operand stack
// or discarded. Sequence compilation discards every expression except the
// last, which inherits the caller's mode.
type Mode int

const (
	// Discard: don't generate instructions to push a return value.
	Discard Mode = iota
	// Keep: generate instructions to push a return value.
	Keep
)

// CompileError reports a program that exceeds an encoding limit: a constant
// pool or identifier table beyond a 16-bit index, or a call with more
// arguments than an 8-bit count can carry.
type CompileError struct {
	Pos Position
	Msg string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at %s: %s", e.Pos, e.Msg)
}

// Compile lowers a parsed expression sequence into a Code object and the
// identifier table its operations index into. With Keep, the compiled
// program leaves its final value on the operand stack.
//
// The input is assumed syntactically valid; the parser is responsible for
// rejecting malformed source. A *CompileError is returned when the program
// does not fit the bytecode's operand widths.
func Compile(exprs []Expr, mode Mode) (*vm.Code, *vm.IdentTable, error) {
	c := &codegen{idents: vm.NewIdentTable()}
	code, err := c.compileSequence(exprs, mode)
	if err != nil {
		return nil, nil, err
	}
	return code, c.idents, nil
}

// codegen threads the single program-wide identifier table through every
// nested compilation, so the same name maps to the same index in all Code
// objects of one program.
type codegen struct {
	idents *vm.IdentTable
}

// constIndex adds a constant and verifies the index fits a 16-bit operand.
func (c *codegen) constIndex(code *vm.Code, v vm.Value, pos Position) (uint16, error) {
	idx := code.AddConstant(v)
	if idx > math.MaxUint16 {
		return 0, &CompileError{Pos: pos, Msg: "too many constants"}
	}
	return uint16(idx), nil
}

// identIndex interns a name and verifies the index fits a 16-bit operand.
func (c *codegen) identIndex(name string, pos Position) (uint16, error) {
	idx := c.idents.Intern(name)
	if idx > math.MaxUint16 {
		return 0, &CompileError{Pos: pos, Msg: "too many identifiers"}
	}
	return uint16(idx), nil
}

// compileSequence compiles a whole program, block body, or lambda body into
// a standalone Code object. An empty sequence in Keep mode compiles to
// "push the None constant".
func (c *codegen) compileSequence(exprs []Expr, mode Mode) (*vm.Code, error) {
	code := &vm.Code{}
	b := vm.NewBytecodeBuilder()
	if len(exprs) == 0 {
		if mode == Keep {
			idx, err := c.constIndex(code, vm.None{}, Position{})
			if err != nil {
				return nil, err
			}
			b.EmitU16(vm.OpPushConst, idx)
		}
	} else {
		for _, expr := range exprs[:len(exprs)-1] {
			if err := c.compileExpr(b, code, expr, Discard); err != nil {
				return nil, err
			}
		}
		if err := c.compileExpr(b, code, exprs[len(exprs)-1], mode); err != nil {
			return nil, err
		}
	}
	code.Bytecode = b.Bytes()
	return code, nil
}

func (c *codegen) compileExpr(b *vm.BytecodeBuilder, code *vm.Code, expr Expr, mode Mode) error {
	keep := mode == Keep
	switch e := expr.(type) {
	case *NumberExpr:
		if keep {
			idx, err := c.constIndex(code, e.Value, e.Position)
			if err != nil {
				return err
			}
			b.EmitU16(vm.OpPushConst, idx)
		}

	case *IdentExpr:
		if keep {
			idx, err := c.identIndex(e.Name, e.Position)
			if err != nil {
				return err
			}
			b.EmitU16(vm.OpPushIdent, idx)
		}

	case *AssignExpr:
		if err := c.compileExpr(b, code, e.Value, Keep); err != nil {
			return err
		}
		// When the assignment's own value is wanted, duplicate it before the
		// store consumes it.
		if keep {
			b.Emit(vm.OpDup)
		}
		idx, err := c.identIndex(e.Name, e.Position)
		if err != nil {
			return err
		}
		b.EmitU16(vm.OpAssign, idx)

	case *DeclareExpr:
		if err := c.compileExpr(b, code, e.Value, Keep); err != nil {
			return err
		}
		if keep {
			b.Emit(vm.OpDup)
		}
		idx, err := c.identIndex(e.Name, e.Position)
		if err != nil {
			return err
		}
		b.EmitU16(vm.OpDeclare, idx)

	case *BlockExpr:
		// A block is a zero-argument code constant invoked on the spot. It
		// inherits the surrounding mode, so a discarded block leaves nothing
		// on the stack and needs no trailing pop.
		nested, err := c.compileSequence(e.Body, mode)
		if err != nil {
			return err
		}
		idx, err := c.constIndex(code, &vm.Bytecode{Code: nested, NumParams: 0}, e.Position)
		if err != nil {
			return err
		}
		b.EmitU16(vm.OpPushConst, idx)
		b.EmitU8(vm.OpCall, 0)

	case *LambdaExpr:
		// An unused lambda expression compiles to nothing.
		if !keep {
			return nil
		}
		fn := &vm.Code{}
		fb := vm.NewBytecodeBuilder()
		// Arguments arrive on the stack in call order, so the last parameter
		// is declared first.
		for i := len(e.Params) - 1; i >= 0; i-- {
			idx, err := c.identIndex(e.Params[i], e.Position)
			if err != nil {
				return err
			}
			fb.EmitU16(vm.OpDeclare, idx)
		}
		if err := c.compileExpr(fb, fn, e.Body, Keep); err != nil {
			return err
		}
		fn.Bytecode = fb.Bytes()
		idx, err := c.constIndex(code, &vm.Bytecode{Code: fn, NumParams: len(e.Params)}, e.Position)
		if err != nil {
			return err
		}
		b.EmitU16(vm.OpPushConst, idx)

	case *ApplyExpr:
		if len(e.Args) > math.MaxUint8 {
			return &CompileError{Pos: e.Position, Msg: "too many arguments"}
		}
		for _, arg := range e.Args {
			if err := c.compileExpr(b, code, arg, Keep); err != nil {
				return err
			}
		}
		if err := c.compileExpr(b, code, e.Callee, Keep); err != nil {
			return err
		}
		b.EmitU8(vm.OpCall, uint8(len(e.Args)))
		// The callee's result must not leak onto the stack when unwanted.
		if !keep {
			b.Emit(vm.OpPop)
		}
	}
	return nil
}
