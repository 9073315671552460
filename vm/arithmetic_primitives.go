package vm

// ---------------------------------------------------------------------------
// Arithmetic primitives
// ---------------------------------------------------------------------------

// popNumbers pops the two operands of a binary arithmetic intrinsic. The
// right operand is on top. A missing value is an internal fault; a non-Number
// operand is an argument-type script error.
func (e *Executor) popNumbers() (Number, Number, error) {
	rhs, err := e.pop()
	if err != nil {
		return Number{}, Number{}, err
	}
	lhs, err := e.pop()
	if err != nil {
		return Number{}, Number{}, err
	}
	x, ok := lhs.(Number)
	if !ok {
		return Number{}, Number{}, scriptErr(ArgumentType)
	}
	y, ok := rhs.(Number)
	if !ok {
		return Number{}, Number{}, scriptErr(ArgumentType)
	}
	return x, y, nil
}

func (e *Executor) primAdd() (Value, error) {
	x, y, err := e.popNumbers()
	if err != nil {
		return nil, err
	}
	return x.Add(y), nil
}

func (e *Executor) primSub() (Value, error) {
	x, y, err := e.popNumbers()
	if err != nil {
		return nil, err
	}
	return x.Sub(y), nil
}

func (e *Executor) primMul() (Value, error) {
	x, y, err := e.popNumbers()
	if err != nil {
		return nil, err
	}
	return x.Mul(y), nil
}

// primDiv divides with truncating semantics. Division by zero is not an
// error; it produces None.
func (e *Executor) primDiv() (Value, error) {
	x, y, err := e.popNumbers()
	if err != nil {
		return nil, err
	}
	q, ok := x.CheckedDiv(y)
	if !ok {
		return None{}, nil
	}
	return q, nil
}

// primMod computes the Euclidean remainder. A zero divisor produces None.
func (e *Executor) primMod() (Value, error) {
	x, y, err := e.popNumbers()
	if err != nil {
		return nil, err
	}
	r, ok := x.CheckedRemEuclid(y)
	if !ok {
		return None{}, nil
	}
	return r, nil
}
