package vm

import (
	"bytes"
	"testing"
)

func TestPrimPrint(t *testing.T) {
	var buf bytes.Buffer
	exec := NewExecutor(&Code{}, NewIdentTable())
	exec.SetOutput(&buf)

	exec.push(numList(1, 2, 3))
	got, err := exec.primPrint()
	if err != nil {
		t.Fatalf("primPrint: %v", err)
	}
	if _, ok := got.(None); !ok {
		t.Errorf("print result = %v, want None", got)
	}
	if buf.String() != "[1 2 3]\n" {
		t.Errorf("output = %q, want %q", buf.String(), "[1 2 3]\n")
	}
}

// A condition that is falsy on first evaluation means the body never runs,
// even a body that would fail.
func TestPrimWhileImmediateFalse(t *testing.T) {
	idents := NewIdentTable()
	undefined := idents.Intern("undefined")

	condCode := &Code{}
	cb := NewBytecodeBuilder()
	cb.EmitU16(OpPushConst, uint16(condCode.AddConstant(NumberFromInt64(0))))
	condCode.Bytecode = cb.Bytes()

	bodyCode := &Code{}
	bb := NewBytecodeBuilder()
	bb.EmitU16(OpPushIdent, uint16(undefined))
	bodyCode.Bytecode = bb.Bytes()

	exec := NewExecutor(&Code{}, idents)
	exec.push(&Bytecode{Code: condCode, NumParams: 0})
	exec.push(&Bytecode{Code: bodyCode, NumParams: 0})
	got, err := exec.primWhile()
	if err != nil {
		t.Fatalf("primWhile: %v", err)
	}
	if _, ok := got.(None); !ok {
		t.Errorf("while result = %v, want None", got)
	}
}

// Counts n down from 3; the loop's value is the last body result.
func TestPrimWhileCountdown(t *testing.T) {
	exec := builtinExec("sub")
	n := exec.idents.Intern("n")
	subIdx, _ := exec.idents.Lookup("sub")
	exec.frames[0].scope[n] = NumberFromInt64(3)

	condCode := &Code{}
	cb := NewBytecodeBuilder()
	cb.EmitU16(OpPushIdent, uint16(n))
	condCode.Bytecode = cb.Bytes()

	// n = sub(n 1), leaving the new n as the body's value.
	bodyCode := &Code{}
	bb := NewBytecodeBuilder()
	bb.EmitU16(OpPushIdent, uint16(n))
	bb.EmitU16(OpPushConst, uint16(bodyCode.AddConstant(NumberFromInt64(1))))
	bb.EmitU16(OpPushIdent, uint16(subIdx))
	bb.EmitU8(OpCall, 2)
	bb.Emit(OpDup)
	bb.EmitU16(OpAssign, uint16(n))
	bodyCode.Bytecode = bb.Bytes()

	exec.push(&Bytecode{Code: condCode, NumParams: 0})
	exec.push(&Bytecode{Code: bodyCode, NumParams: 0})
	got, err := exec.primWhile()
	if err != nil {
		t.Fatalf("primWhile: %v", err)
	}
	wantNumber(t, got, 0)

	if v, ok := exec.lookup(n); !ok {
		t.Fatal("n unbound after loop")
	} else {
		wantNumber(t, v, 0)
	}
}

func TestPrimWhileWrongType(t *testing.T) {
	exec := NewExecutor(&Code{}, NewIdentTable())
	exec.push(NumberFromInt64(1))
	exec.push(&Bytecode{Code: &Code{}, NumParams: 0})
	_, err := exec.primWhile()
	wantScriptError(t, err, ArgumentType)
}

// while requires zero-argument code values on both sides.
func TestPrimWhileParameterizedBody(t *testing.T) {
	exec := NewExecutor(&Code{}, NewIdentTable())
	exec.push(&Bytecode{Code: &Code{}, NumParams: 0})
	exec.push(&Bytecode{Code: &Code{}, NumParams: 1})
	_, err := exec.primWhile()
	wantScriptError(t, err, ArgumentType)
}
