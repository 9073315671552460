package vm

import "fmt"

// ---------------------------------------------------------------------------
// Error taxonomy: internal faults vs. script faults
// ---------------------------------------------------------------------------

// Two disjoint error families flow out of the engine. An *InternalError
// signals a defect in the interpreter itself and should never surface from a
// correct build; a *ScriptError is a normal, expected outcome of running a
// faulty user program. Both abort the current run; callers tell them apart
// with errors.As.

// InternalErrorKind enumerates interpreter defects.
type InternalErrorKind int

const (
	// StackUnderflow: an operation popped from an empty operand stack.
	StackUnderflow InternalErrorKind = iota
	// CallStackUnderflow: the engine tried to return from the outermost frame.
	CallStackUnderflow
	// ConstantNotFound: an operation referenced a constant-pool index that
	// does not exist.
	ConstantNotFound
)

// InternalError reports a bug in the interpreter. If one of these is ever
// publicly returned, that constitutes a serious defect.
type InternalError struct {
	Kind InternalErrorKind
}

func (e *InternalError) Error() string {
	switch e.Kind {
	case StackUnderflow:
		return "internal: stack underflow"
	case CallStackUnderflow:
		return "internal: call stack underflow"
	case ConstantNotFound:
		return "internal: constant not found"
	default:
		return fmt.Sprintf("internal: unknown error %d", e.Kind)
	}
}

// ScriptErrorKind enumerates user-program faults.
type ScriptErrorKind int

const (
	// VariableNotFound: a variable was read or assigned before being declared.
	VariableNotFound ScriptErrorKind = iota
	// VariableRedeclared: a variable was declared twice in the same scope.
	VariableRedeclared
	// TypeNotCallable: a non-code, non-builtin value was called.
	TypeNotCallable
	// ArgumentCount: a callable was invoked with the wrong number of arguments.
	ArgumentCount
	// ArgumentType: an argument had an invalid type for the function called.
	ArgumentType
	// ArgumentValue: an argument had the right type but an invalid value.
	ArgumentValue
	// RecursionLimit: the call-frame chain exceeded the configured depth.
	RecursionLimit
)

// ScriptError reports a fault in the user program. Ident carries the
// offending variable name where one exists.
type ScriptError struct {
	Kind  ScriptErrorKind
	Ident string
}

func (e *ScriptError) Error() string {
	switch e.Kind {
	case VariableNotFound:
		if e.Ident != "" {
			return fmt.Sprintf("variable %q not found", e.Ident)
		}
		return "variable not found"
	case VariableRedeclared:
		if e.Ident != "" {
			return fmt.Sprintf("variable %q redeclared", e.Ident)
		}
		return "variable redeclared"
	case TypeNotCallable:
		return "type not callable"
	case ArgumentCount:
		return "wrong argument count"
	case ArgumentType:
		return "wrong argument type"
	case ArgumentValue:
		return "wrong argument value"
	case RecursionLimit:
		return "recursion limit exceeded"
	default:
		return fmt.Sprintf("unknown script error %d", e.Kind)
	}
}

func internalErr(kind InternalErrorKind) error {
	return &InternalError{Kind: kind}
}

func scriptErr(kind ScriptErrorKind) error {
	return &ScriptError{Kind: kind}
}
