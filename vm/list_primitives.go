package vm

// ---------------------------------------------------------------------------
// List primitives
// ---------------------------------------------------------------------------

func (e *Executor) primList() (Value, error) {
	return NewList(), nil
}

func (e *Executor) primLen() (Value, error) {
	v, err := e.pop()
	if err != nil {
		return nil, err
	}
	l, ok := v.(*List)
	if !ok {
		return nil, scriptErr(ArgumentType)
	}
	return NumberFromInt64(int64(len(l.Items))), nil
}

// primLast returns the final element. An empty list is an argument-value
// error: the type is right, the value is not.
func (e *Executor) primLast() (Value, error) {
	v, err := e.pop()
	if err != nil {
		return nil, err
	}
	l, ok := v.(*List)
	if !ok {
		return nil, scriptErr(ArgumentType)
	}
	if len(l.Items) == 0 {
		return nil, scriptErr(ArgumentValue)
	}
	return l.Items[len(l.Items)-1], nil
}

func (e *Executor) primPush() (Value, error) {
	v, err := e.pop()
	if err != nil {
		return nil, err
	}
	lv, err := e.pop()
	if err != nil {
		return nil, err
	}
	l, ok := lv.(*List)
	if !ok {
		return nil, scriptErr(ArgumentType)
	}
	return l.Push(v), nil
}

// primAt indexes a list by number. Negative indices count from the end.
// Out-of-range indices on either side produce None, not an error.
func (e *Executor) primAt() (Value, error) {
	nv, err := e.pop()
	if err != nil {
		return nil, err
	}
	lv, err := e.pop()
	if err != nil {
		return nil, err
	}
	l, ok := lv.(*List)
	if !ok {
		return nil, scriptErr(ArgumentType)
	}
	n, ok := nv.(Number)
	if !ok {
		return nil, scriptErr(ArgumentType)
	}
	idx, ok := n.Int64()
	if !ok {
		// Magnitude beyond int64 cannot index any list that fits in memory.
		return None{}, nil
	}
	if idx < 0 {
		idx += int64(len(l.Items))
	}
	if idx < 0 || idx >= int64(len(l.Items)) {
		return None{}, nil
	}
	return l.Items[idx], nil
}

// primMap applies a one-argument code value to each element in order,
// collecting the results. The function is never invoked for an empty list.
func (e *Executor) primMap() (Value, error) {
	lv, err := e.pop()
	if err != nil {
		return nil, err
	}
	fv, err := e.pop()
	if err != nil {
		return nil, err
	}
	fn, ok := fv.(*Bytecode)
	if !ok || fn.NumParams != 1 {
		return nil, scriptErr(ArgumentType)
	}
	l, ok := lv.(*List)
	if !ok {
		return nil, scriptErr(ArgumentType)
	}
	results := make([]Value, 0, len(l.Items))
	for _, item := range l.Items {
		e.push(item)
		mapped, err := e.runCode(fn.Code)
		if err != nil {
			return nil, err
		}
		results = append(results, mapped)
	}
	return &List{Items: results}, nil
}

// primFilter keeps the elements for which a one-argument predicate returns a
// truthy value.
func (e *Executor) primFilter() (Value, error) {
	lv, err := e.pop()
	if err != nil {
		return nil, err
	}
	fv, err := e.pop()
	if err != nil {
		return nil, err
	}
	fn, ok := fv.(*Bytecode)
	if !ok || fn.NumParams != 1 {
		return nil, scriptErr(ArgumentType)
	}
	l, ok := lv.(*List)
	if !ok {
		return nil, scriptErr(ArgumentType)
	}
	var results []Value
	for _, item := range l.Items {
		e.push(item)
		kept, err := e.runCode(fn.Code)
		if err != nil {
			return nil, err
		}
		if kept.Truthy() {
			results = append(results, item)
		}
	}
	return &List{Items: results}, nil
}

// primFold reduces a list with a two-argument code value. The last element
// seeds the accumulator, then the fold walks right to left calling the
// function with (element, accumulator). An empty list folds to None.
func (e *Executor) primFold() (Value, error) {
	lv, err := e.pop()
	if err != nil {
		return nil, err
	}
	fv, err := e.pop()
	if err != nil {
		return nil, err
	}
	fn, ok := fv.(*Bytecode)
	if !ok || fn.NumParams != 2 {
		return nil, scriptErr(ArgumentType)
	}
	l, ok := lv.(*List)
	if !ok {
		return nil, scriptErr(ArgumentType)
	}
	if len(l.Items) == 0 {
		return None{}, nil
	}
	accum := l.Items[len(l.Items)-1]
	for i := len(l.Items) - 2; i >= 0; i-- {
		e.push(l.Items[i])
		e.push(accum)
		accum, err = e.runCode(fn.Code)
		if err != nil {
			return nil, err
		}
	}
	return accum, nil
}

// primZip pairs two lists positionally up to the shorter length. Each pair is
// itself a two-element list.
func (e *Executor) primZip() (Value, error) {
	bv, err := e.pop()
	if err != nil {
		return nil, err
	}
	av, err := e.pop()
	if err != nil {
		return nil, err
	}
	a, ok := av.(*List)
	if !ok {
		return nil, scriptErr(ArgumentType)
	}
	b, ok := bv.(*List)
	if !ok {
		return nil, scriptErr(ArgumentType)
	}
	n := len(a.Items)
	if len(b.Items) < n {
		n = len(b.Items)
	}
	pairs := make([]Value, n)
	for i := 0; i < n; i++ {
		pairs[i] = &List{Items: []Value{a.Items[i], b.Items[i]}}
	}
	return &List{Items: pairs}, nil
}
