package vm

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Value: the runtime value model
// ---------------------------------------------------------------------------

// Value is a value that can be created and manipulated by user code: None,
// Number, *List, *Bytecode, or Builtin.
type Value interface {
	// Truthy reports how the value behaves in a boolean position: None is
	// false, a Number is false iff zero, a List is false iff empty, and
	// callables are always true.
	Truthy() bool
	String() string
}

// None is the null value, returned when there is no other possible value.
// Its canonical source representation is the empty block {}.
type None struct{}

func (None) Truthy() bool   { return false }
func (None) String() string { return "{}" }

func (n Number) Truthy() bool { return !n.IsZero() }

// List is an ordered sequence of values. Lists are never mutated in place:
// Push builds a new list sharing the existing elements.
type List struct {
	Items []Value
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// Push returns a new list with v appended. The receiver is unchanged; the
// three-index slice forces append to copy when the backing array is shared.
func (l *List) Push(v Value) *List {
	items := l.Items[:len(l.Items):len(l.Items)]
	return &List{Items: append(items, v)}
}

func (l *List) Truthy() bool { return len(l.Items) > 0 }

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range l.Items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(item.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Bytecode is an executable code value: a compiled Code object paired with
// the number of arguments its call sites must supply. It captures no
// environment; free identifiers resolve against the frame chain active at the
// point of call.
type Bytecode struct {
	Code      *Code
	NumParams int
}

func (*Bytecode) Truthy() bool { return true }

func (b *Bytecode) String() string {
	return fmt.Sprintf("<code/%d>", b.NumParams)
}

func (Builtin) Truthy() bool { return true }

func (b Builtin) String() string {
	return "<builtin " + b.Name() + ">"
}
