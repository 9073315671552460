package vm

import "fmt"

// ---------------------------------------------------------------------------
// Control and I/O primitives
// ---------------------------------------------------------------------------

// primPrint displays a value on the executor's output and returns None.
func (e *Executor) primPrint() (Value, error) {
	v, err := e.pop()
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(e.out, v)
	return None{}, nil
}

// primWhile takes two zero-argument code values, a condition and a body. It
// sub-executes the condition, stops when the result is falsy, and otherwise
// sub-executes the body. The loop's value is the last body result, or None if
// the body never ran.
func (e *Executor) primWhile() (Value, error) {
	bodyVal, err := e.pop()
	if err != nil {
		return nil, err
	}
	condVal, err := e.pop()
	if err != nil {
		return nil, err
	}
	cond, ok := condVal.(*Bytecode)
	if !ok || cond.NumParams != 0 {
		return nil, scriptErr(ArgumentType)
	}
	body, ok := bodyVal.(*Bytecode)
	if !ok || body.NumParams != 0 {
		return nil, scriptErr(ArgumentType)
	}
	var output Value = None{}
	for {
		c, err := e.runCode(cond.Code)
		if err != nil {
			return nil, err
		}
		if !c.Truthy() {
			return output, nil
		}
		output, err = e.runCode(body.Code)
		if err != nil {
			return nil, err
		}
	}
}
