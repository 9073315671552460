// Package vm implements the Bling virtual machine.
//
// This package contains:
//   - Hybrid inline/heap arbitrary-precision numbers
//   - The runtime value model
//   - The bytecode container, builder, and disassembler
//   - The stack-based execution engine with an explicit frame chain
//   - Built-in primitive operations
package vm
