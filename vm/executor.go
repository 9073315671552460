package vm

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("bling.vm")

// ---------------------------------------------------------------------------
// frame: one activation record in the call chain
// ---------------------------------------------------------------------------

// frame is one activation record. Frames live in a slice arena owned by the
// Executor rather than as a linked chain of heap nodes, so lookup walks the
// chain iteratively and deep recursion never touches the host call stack.
type frame struct {
	code  *Code
	ip    int           // instruction pointer (offset into bytecode)
	scope map[int]Value // local bindings only, ident index -> value
	depth int           // nonzero if the run loop should return to a parent
}

// fetchU16 reads a 16-bit operand and advances the instruction pointer.
func (f *frame) fetchU16() int {
	v := binary.BigEndian.Uint16(f.code.Bytecode[f.ip:])
	f.ip += 2
	return int(v)
}

// fetchU8 reads an 8-bit operand and advances the instruction pointer.
func (f *frame) fetchU8() int {
	v := f.code.Bytecode[f.ip]
	f.ip++
	return int(v)
}

// ---------------------------------------------------------------------------
// Executor: bytecode execution engine
// ---------------------------------------------------------------------------

// DefaultMaxDepth is the default call-frame depth limit. The limit converts
// runaway recursion into a reportable script error instead of unbounded
// memory growth.
const DefaultMaxDepth = 10000

// Executor runs a compiled Code object against a chain of call frames.
// Execution is single-threaded and fully synchronous: the operand stack is
// shared down the frame chain, so arguments pushed by a caller are visible to
// the callee's declare operations, and a callee's result is left for the
// caller on return.
type Executor struct {
	idents   *IdentTable
	stack    []Value
	frames   []frame
	maxDepth int
	out      io.Writer
}

// NewExecutor creates an executor for a compiled program and the identifier
// table it was compiled against.
func NewExecutor(code *Code, idents *IdentTable) *Executor {
	return &Executor{
		idents:   idents,
		stack:    make([]Value, 0, 16),
		frames:   []frame{{code: code, scope: make(map[int]Value)}},
		maxDepth: DefaultMaxDepth,
		out:      os.Stdout,
	}
}

// SetMaxDepth overrides the call-frame depth limit. Values below 1 restore
// the default.
func (e *Executor) SetMaxDepth(n int) {
	if n < 1 {
		n = DefaultMaxDepth
	}
	e.maxDepth = n
}

// SetOutput redirects print output, which defaults to stdout.
func (e *Executor) SetOutput(w io.Writer) {
	e.out = w
}

// InitializeBuiltins binds every builtin whose name appears in the identifier
// table into the top-level scope. Names the program never references are
// skipped; they were never interned.
func (e *Executor) InitializeBuiltins() {
	root := e.frames[0].scope
	for _, b := range Builtins() {
		if idx, ok := e.idents.Lookup(b.Name()); ok {
			root[idx] = b
		}
	}
}

// Run drives the program to completion and returns its final value: the top
// of the operand stack for programs compiled in keep mode, or None for
// programs that discard their result. The error is a *ScriptError for user
// faults or an *InternalError for interpreter defects.
func (e *Executor) Run() (Value, error) {
	if err := e.run(); err != nil {
		return nil, err
	}
	if len(e.stack) == 0 {
		return None{}, nil
	}
	return e.pop()
}

// run is the main loop: execute the current frame's next operation, or pop
// back to the parent frame when the code is exhausted. A frame with a zero
// depth counter terminates the loop, which is how bounded sub-executions end
// without unwinding their caller.
func (e *Executor) run() error {
	for {
		f := e.current()
		if f.ip < len(f.code.Bytecode) {
			op := Opcode(f.code.Bytecode[f.ip])
			f.ip++
			if err := e.step(f, op); err != nil {
				return err
			}
		} else if f.depth > 0 {
			if err := e.exitFrame(); err != nil {
				return err
			}
		} else {
			return nil
		}
	}
}

func (e *Executor) current() *frame {
	return &e.frames[len(e.frames)-1]
}

// step executes a single operation. f must be the current frame; it is not
// used after a new frame is entered.
func (e *Executor) step(f *frame, op Opcode) error {
	switch op {
	case OpPushConst:
		idx := f.fetchU16()
		if idx >= len(f.code.Constants) {
			return internalErr(ConstantNotFound)
		}
		e.push(f.code.Constants[idx])

	case OpPushIdent:
		idx := f.fetchU16()
		v, ok := e.lookup(idx)
		if !ok {
			name := e.idents.Name(idx)
			log.Warningf("%q accessed but not defined", name)
			return &ScriptError{Kind: VariableNotFound, Ident: name}
		}
		e.push(v)

	case OpPop:
		_, err := e.pop()
		return err

	case OpDup:
		v, err := e.peek()
		if err != nil {
			return err
		}
		e.push(v)

	case OpDeclare:
		idx := f.fetchU16()
		v, err := e.pop()
		if err != nil {
			return err
		}
		// Only the local scope counts: shadowing an ancestor binding is fine,
		// re-declaring in the same frame is not.
		if _, exists := f.scope[idx]; exists {
			return &ScriptError{Kind: VariableRedeclared, Ident: e.idents.Name(idx)}
		}
		f.scope[idx] = v

	case OpAssign:
		idx := f.fetchU16()
		v, err := e.pop()
		if err != nil {
			return err
		}
		if !e.assign(idx, v) {
			name := e.idents.Name(idx)
			log.Warningf("%q assigned to but not defined", name)
			return &ScriptError{Kind: VariableNotFound, Ident: name}
		}

	case OpCall:
		argc := f.fetchU8()
		callee, err := e.pop()
		if err != nil {
			return err
		}
		switch c := callee.(type) {
		case *Bytecode:
			if c.NumParams != argc {
				return scriptErr(ArgumentCount)
			}
			return e.enterFrame(c.Code)
		case Builtin:
			if c.NumParams() != argc {
				return scriptErr(ArgumentCount)
			}
			result, err := e.runBuiltin(c)
			if err != nil {
				return err
			}
			e.push(result)
		default:
			return scriptErr(TypeNotCallable)
		}

	default:
		// Unknown opcodes mean the Code object was not produced by the
		// compiler; that is a precondition violation, not a runtime error.
		panic(fmt.Sprintf("vm: unknown opcode 0x%02x", byte(op)))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Frame lifecycle
// ---------------------------------------------------------------------------

// enterFrame starts a child frame running code. The operand stack carries
// over, so argument values already pushed by the caller are visible to the
// callee.
func (e *Executor) enterFrame(code *Code) error {
	if len(e.frames) >= e.maxDepth {
		return scriptErr(RecursionLimit)
	}
	e.frames = append(e.frames, frame{
		code:  code,
		scope: make(map[int]Value),
		depth: 1,
	})
	return nil
}

// exitFrame pops back to the parent frame. The child's operand stack becomes
// the parent's, which is how return values travel.
func (e *Executor) exitFrame() error {
	if len(e.frames) <= 1 {
		return internalErr(CallStackUnderflow)
	}
	e.frames = e.frames[:len(e.frames)-1]
	return nil
}

// runCode evaluates an arbitrary Code object as a bounded sub-execution and
// returns the single value it leaves on the stack. The child frame's depth
// counter is zeroed so the run loop treats it as top-level and stops there
// instead of unwinding into the caller. Used for block bodies and by
// intrinsics that invoke callable arguments.
func (e *Executor) runCode(code *Code) (Value, error) {
	if err := e.enterFrame(code); err != nil {
		return nil, err
	}
	e.current().depth = 0
	if err := e.run(); err != nil {
		return nil, err
	}
	if err := e.exitFrame(); err != nil {
		return nil, err
	}
	// Every Code invoked this way must leave exactly one value behind.
	return e.pop()
}

// ---------------------------------------------------------------------------
// Scope and stack access
// ---------------------------------------------------------------------------

// lookup searches the local scope, then each ancestor frame's scope in turn.
func (e *Executor) lookup(idx int) (Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i].scope[idx]; ok {
			return v, true
		}
	}
	return nil, false
}

// assign overwrites the nearest existing binding of idx, reporting whether
// one was found. The search order matches lookup.
func (e *Executor) assign(idx int, v Value) bool {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i].scope[idx]; ok {
			e.frames[i].scope[idx] = v
			return true
		}
	}
	return false
}

func (e *Executor) push(v Value) {
	e.stack = append(e.stack, v)
}

func (e *Executor) pop() (Value, error) {
	if len(e.stack) == 0 {
		return nil, internalErr(StackUnderflow)
	}
	v := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return v, nil
}

func (e *Executor) peek() (Value, error) {
	if len(e.stack) == 0 {
		return nil, internalErr(StackUnderflow)
	}
	return e.stack[len(e.stack)-1], nil
}
