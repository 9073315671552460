package vm

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// wantScriptError asserts err is a *ScriptError of the given kind.
func wantScriptError(t *testing.T, err error, kind ScriptErrorKind) *ScriptError {
	t.Helper()
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("err = %v, want script error", err)
	}
	if scriptErr.Kind != kind {
		t.Fatalf("script error kind = %d (%v), want %d", scriptErr.Kind, scriptErr, kind)
	}
	return scriptErr
}

// wantInternalError asserts err is an *InternalError of the given kind.
func wantInternalError(t *testing.T, err error, kind InternalErrorKind) {
	t.Helper()
	var internalErr *InternalError
	if !errors.As(err, &internalErr) {
		t.Fatalf("err = %v, want internal error", err)
	}
	if internalErr.Kind != kind {
		t.Fatalf("internal error kind = %d (%v), want %d", internalErr.Kind, internalErr, kind)
	}
}

// wantNumber asserts v is a Number equal to n.
func wantNumber(t *testing.T, v Value, n int64) {
	t.Helper()
	num, ok := v.(Number)
	if !ok {
		t.Fatalf("value = %v (%T), want Number %d", v, v, n)
	}
	if !num.NumberEqual(NumberFromInt64(n)) {
		t.Fatalf("value = %v, want %d", num, n)
	}
}

// ---------------------------------------------------------------------------
// Basic execution
// ---------------------------------------------------------------------------

func TestRunEmptyProgram(t *testing.T) {
	exec := NewExecutor(&Code{}, NewIdentTable())
	result, err := exec.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := result.(None); !ok {
		t.Errorf("result = %v, want None", result)
	}
}

func TestRunPushConstant(t *testing.T) {
	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(NumberFromInt64(42))))
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, NewIdentTable())
	result, err := exec.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantNumber(t, result, 42)
}

func TestConstantNotFound(t *testing.T) {
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, 5)
	code := &Code{Bytecode: b.Bytes()}

	exec := NewExecutor(code, NewIdentTable())
	_, err := exec.Run()
	wantInternalError(t, err, ConstantNotFound)
}

func TestStackUnderflow(t *testing.T) {
	for _, op := range []Opcode{OpPop, OpDup} {
		b := NewBytecodeBuilder()
		b.Emit(op)
		exec := NewExecutor(&Code{Bytecode: b.Bytes()}, NewIdentTable())
		_, err := exec.Run()
		wantInternalError(t, err, StackUnderflow)
	}
}

// ---------------------------------------------------------------------------
// Variables
// ---------------------------------------------------------------------------

func TestDeclareAndRead(t *testing.T) {
	idents := NewIdentTable()
	x := idents.Intern("x")

	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(NumberFromInt64(5))))
	b.EmitU16(OpDeclare, uint16(x))
	b.EmitU16(OpPushIdent, uint16(x))
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, idents)
	result, err := exec.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantNumber(t, result, 5)
}

func TestVariableNotFound(t *testing.T) {
	idents := NewIdentTable()
	x := idents.Intern("x")

	b := NewBytecodeBuilder()
	b.EmitU16(OpPushIdent, uint16(x))
	exec := NewExecutor(&Code{Bytecode: b.Bytes()}, idents)
	_, err := exec.Run()
	scriptErr := wantScriptError(t, err, VariableNotFound)
	if scriptErr.Ident != "x" {
		t.Errorf("error ident = %q, want x", scriptErr.Ident)
	}
}

func TestVariableRedeclared(t *testing.T) {
	idents := NewIdentTable()
	x := idents.Intern("x")

	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(NumberFromInt64(1))))
	b.EmitU16(OpDeclare, uint16(x))
	b.EmitU16(OpPushConst, uint16(code.AddConstant(NumberFromInt64(2))))
	b.EmitU16(OpDeclare, uint16(x))
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, idents)
	_, err := exec.Run()
	wantScriptError(t, err, VariableRedeclared)
}

// Declaring a name in a child frame shadows the outer binding instead of
// clashing with it, and the shadow dies with the frame.
func TestShadowingInChildFrame(t *testing.T) {
	idents := NewIdentTable()
	x := idents.Intern("x")

	inner := &Code{}
	ib := NewBytecodeBuilder()
	ib.EmitU16(OpPushConst, uint16(inner.AddConstant(NumberFromInt64(2))))
	ib.EmitU16(OpDeclare, uint16(x))
	inner.Bytecode = ib.Bytes()

	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(NumberFromInt64(1))))
	b.EmitU16(OpDeclare, uint16(x))
	b.EmitU16(OpPushConst, uint16(code.AddConstant(&Bytecode{Code: inner, NumParams: 0})))
	b.EmitU8(OpCall, 0)
	b.EmitU16(OpPushIdent, uint16(x))
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, idents)
	result, err := exec.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantNumber(t, result, 1)
}

func TestAssignMutatesNearestBinding(t *testing.T) {
	idents := NewIdentTable()
	x := idents.Intern("x")

	// Child frame assigns to the outer x.
	inner := &Code{}
	ib := NewBytecodeBuilder()
	ib.EmitU16(OpPushConst, uint16(inner.AddConstant(NumberFromInt64(9))))
	ib.EmitU16(OpAssign, uint16(x))
	inner.Bytecode = ib.Bytes()

	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(NumberFromInt64(1))))
	b.EmitU16(OpDeclare, uint16(x))
	b.EmitU16(OpPushConst, uint16(code.AddConstant(&Bytecode{Code: inner, NumParams: 0})))
	b.EmitU8(OpCall, 0)
	b.EmitU16(OpPushIdent, uint16(x))
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, idents)
	result, err := exec.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantNumber(t, result, 9)
}

func TestAssignUnbound(t *testing.T) {
	idents := NewIdentTable()
	x := idents.Intern("x")

	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(NumberFromInt64(5))))
	b.EmitU16(OpAssign, uint16(x))
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, idents)
	_, err := exec.Run()
	wantScriptError(t, err, VariableNotFound)
}

// ---------------------------------------------------------------------------
// Calls
// ---------------------------------------------------------------------------

func TestCallArityMismatch(t *testing.T) {
	idents := NewIdentTable()
	n := idents.Intern("n")

	fn := &Code{}
	fb := NewBytecodeBuilder()
	fb.EmitU16(OpDeclare, uint16(n))
	fb.EmitU16(OpPushIdent, uint16(n))
	fn.Bytecode = fb.Bytes()

	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(&Bytecode{Code: fn, NumParams: 1})))
	b.EmitU8(OpCall, 0)
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, idents)
	_, err := exec.Run()
	wantScriptError(t, err, ArgumentCount)
}

func TestCallNotCallable(t *testing.T) {
	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(NumberFromInt64(42))))
	b.EmitU8(OpCall, 0)
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, NewIdentTable())
	_, err := exec.Run()
	wantScriptError(t, err, TypeNotCallable)
}

// Arguments pushed by the caller are visible to the callee's declares, and
// the callee's value travels back on the shared stack.
func TestCallWithArgument(t *testing.T) {
	idents := NewIdentTable()
	n := idents.Intern("n")

	fn := &Code{}
	fb := NewBytecodeBuilder()
	fb.EmitU16(OpDeclare, uint16(n))
	fb.EmitU16(OpPushIdent, uint16(n))
	fn.Bytecode = fb.Bytes()

	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(NumberFromInt64(7))))
	b.EmitU16(OpPushConst, uint16(code.AddConstant(&Bytecode{Code: fn, NumParams: 1})))
	b.EmitU8(OpCall, 1)
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, idents)
	result, err := exec.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantNumber(t, result, 7)
}

func TestRecursionLimit(t *testing.T) {
	idents := NewIdentTable()
	f := idents.Intern("f")

	// f calls itself forever.
	fn := &Code{}
	fb := NewBytecodeBuilder()
	fb.EmitU16(OpPushIdent, uint16(f))
	fb.EmitU8(OpCall, 0)
	fn.Bytecode = fb.Bytes()

	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(&Bytecode{Code: fn, NumParams: 0})))
	b.EmitU16(OpDeclare, uint16(f))
	b.EmitU16(OpPushIdent, uint16(f))
	b.EmitU8(OpCall, 0)
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, idents)
	exec.SetMaxDepth(32)
	_, err := exec.Run()
	wantScriptError(t, err, RecursionLimit)
}

// ---------------------------------------------------------------------------
// Builtin binding
// ---------------------------------------------------------------------------

func TestInitializeBuiltinsBindsReferencedOnly(t *testing.T) {
	idents := NewIdentTable()
	add := idents.Intern("add")
	exec := NewExecutor(&Code{}, idents)
	exec.InitializeBuiltins()

	root := exec.frames[0].scope
	if v, ok := root[add]; !ok || v != BuiltinAdd {
		t.Errorf("add binding = %v (ok=%v), want BuiltinAdd", v, ok)
	}
	if len(root) != 1 {
		t.Errorf("root scope has %d bindings, want 1 (unreferenced builtins skipped)", len(root))
	}
}

func TestBuiltinArityMismatch(t *testing.T) {
	idents := NewIdentTable()
	add := idents.Intern("add")

	code := &Code{}
	b := NewBytecodeBuilder()
	b.EmitU16(OpPushConst, uint16(code.AddConstant(NumberFromInt64(1))))
	b.EmitU16(OpPushIdent, uint16(add))
	b.EmitU8(OpCall, 1)
	code.Bytecode = b.Bytes()

	exec := NewExecutor(code, idents)
	exec.InitializeBuiltins()
	_, err := exec.Run()
	wantScriptError(t, err, ArgumentCount)
}
