package vm

import "encoding/binary"

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Opcode represents a single bytecode instruction.
type Opcode byte

// Stack operations
const (
	OpPop Opcode = 0x01 // discard top of stack
	OpDup Opcode = 0x02 // duplicate top of stack
)

// Constants
const (
	OpPushConst Opcode = 0x10 // push constant-pool value (16-bit index)
)

// Variable operations
const (
	OpPushIdent Opcode = 0x20 // push variable value (16-bit ident index)
	OpAssign    Opcode = 0x21 // pop, store into nearest existing binding (16-bit ident index)
	OpDeclare   Opcode = 0x22 // pop, declare in current scope (16-bit ident index)
)

// Calls
const (
	OpCall Opcode = 0x30 // pop callee, invoke with n stacked arguments (8-bit argc)
)

// ---------------------------------------------------------------------------
// Opcode metadata
// ---------------------------------------------------------------------------

// OpcodeInfo holds metadata about an opcode.
type OpcodeInfo struct {
	Name         string // human-readable name
	OperandBytes int    // number of operand bytes
}

// opcodeTable maps opcodes to their metadata.
var opcodeTable = map[Opcode]OpcodeInfo{
	OpPop:       {"POP", 0},
	OpDup:       {"DUP", 0},
	OpPushConst: {"PUSH_CONST", 2},
	OpPushIdent: {"PUSH_IDENT", 2},
	OpAssign:    {"ASSIGN", 2},
	OpDeclare:   {"DECLARE", 2},
	OpCall:      {"CALL", 1},
}

// Info returns the metadata for an opcode.
func (op Opcode) Info() (OpcodeInfo, bool) {
	info, ok := opcodeTable[op]
	return info, ok
}

func (op Opcode) String() string {
	if info, ok := opcodeTable[op]; ok {
		return info.Name
	}
	return "UNKNOWN"
}

// ---------------------------------------------------------------------------
// Code: a compiled unit
// ---------------------------------------------------------------------------

// Code is an executable bytecode object: a sequence of encoded operations
// plus the constant pool they reference. Constants may themselves be
// *Bytecode values for nested blocks and lambdas.
type Code struct {
	Bytecode  []byte
	Constants []Value
}

// AddConstant appends a value to the constant pool and returns its index.
func (c *Code) AddConstant(v Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// ---------------------------------------------------------------------------
// BytecodeBuilder: Fluent bytecode construction
// ---------------------------------------------------------------------------

// BytecodeBuilder accumulates encoded operations.
type BytecodeBuilder struct {
	code []byte
}

// NewBytecodeBuilder creates an empty builder.
func NewBytecodeBuilder() *BytecodeBuilder {
	return &BytecodeBuilder{code: make([]byte, 0, 32)}
}

// Emit appends an opcode with no operands.
func (b *BytecodeBuilder) Emit(op Opcode) {
	b.code = append(b.code, byte(op))
}

// EmitU16 appends an opcode with a 16-bit operand.
func (b *BytecodeBuilder) EmitU16(op Opcode, operand uint16) {
	b.code = append(b.code, byte(op))
	b.code = binary.BigEndian.AppendUint16(b.code, operand)
}

// EmitU8 appends an opcode with an 8-bit operand.
func (b *BytecodeBuilder) EmitU8(op Opcode, operand uint8) {
	b.code = append(b.code, byte(op), operand)
}

// Bytes returns the encoded bytecode.
func (b *BytecodeBuilder) Bytes() []byte {
	return b.code
}

// Len returns the current length in bytes.
func (b *BytecodeBuilder) Len() int {
	return len(b.code)
}
