package vm

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Disassembler
// ---------------------------------------------------------------------------

// Disassemble renders a Code object as a human-readable listing, resolving
// identifier indices through the given table. Nested *Bytecode constants are
// listed recursively, indented under the constant that holds them.
func Disassemble(code *Code, idents *IdentTable) string {
	var sb strings.Builder
	disasmCode(&sb, code, idents, "")
	return sb.String()
}

func disasmCode(sb *strings.Builder, code *Code, idents *IdentTable, indent string) {
	ip := 0
	for ip < len(code.Bytecode) {
		op := Opcode(code.Bytecode[ip])
		info, ok := op.Info()
		if !ok {
			fmt.Fprintf(sb, "%s%04d  .byte 0x%02x\n", indent, ip, code.Bytecode[ip])
			ip++
			continue
		}
		fmt.Fprintf(sb, "%s%04d  %-10s", indent, ip, info.Name)
		operand := -1
		switch info.OperandBytes {
		case 1:
			operand = int(code.Bytecode[ip+1])
		case 2:
			operand = int(code.Bytecode[ip+1])<<8 | int(code.Bytecode[ip+2])
		}
		switch op {
		case OpPushConst:
			if operand < len(code.Constants) {
				fmt.Fprintf(sb, " %d (%s)", operand, code.Constants[operand])
			} else {
				fmt.Fprintf(sb, " %d (??)", operand)
			}
		case OpPushIdent, OpAssign, OpDeclare:
			fmt.Fprintf(sb, " %d (%s)", operand, idents.Name(operand))
		case OpCall:
			fmt.Fprintf(sb, " %d", operand)
		}
		sb.WriteByte('\n')
		ip += 1 + info.OperandBytes
	}
	for i, c := range code.Constants {
		if bc, ok := c.(*Bytecode); ok {
			fmt.Fprintf(sb, "%sconstant %d <code/%d>:\n", indent, i, bc.NumParams)
			disasmCode(sb, bc.Code, idents, indent+"    ")
		}
	}
}
