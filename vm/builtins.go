package vm

// ---------------------------------------------------------------------------
// Builtin: intrinsic operations
// ---------------------------------------------------------------------------

// Builtin identifies one of the fixed intrinsic operations. Builtins are
// first-class values: the engine binds each builtin name that appears in the
// identifier table into the top-level scope, and OpCall dispatches on the tag.
type Builtin int

const (
	BuiltinPrint Builtin = iota
	BuiltinWhile
	BuiltinAdd
	BuiltinSub
	BuiltinMul
	BuiltinDiv
	BuiltinMod
	BuiltinList
	BuiltinLast
	BuiltinPush
	BuiltinLen
	BuiltinMap
	BuiltinFold
	BuiltinFilter
	BuiltinZip
	BuiltinAt
)

// builtinInfo holds the name and fixed arity of an intrinsic.
type builtinInfo struct {
	name      string
	numParams int
}

var builtinTable = map[Builtin]builtinInfo{
	BuiltinPrint:  {"print", 1},
	BuiltinWhile:  {"while", 2},
	BuiltinAdd:    {"add", 2},
	BuiltinSub:    {"sub", 2},
	BuiltinMul:    {"mul", 2},
	BuiltinDiv:    {"div", 2},
	BuiltinMod:    {"mod", 2},
	BuiltinList:   {"list", 0},
	BuiltinLast:   {"last", 1},
	BuiltinPush:   {"push", 2},
	BuiltinLen:    {"len", 1},
	BuiltinMap:    {"map", 2},
	BuiltinFold:   {"fold", 2},
	BuiltinFilter: {"filter", 2},
	BuiltinZip:    {"zip", 2},
	BuiltinAt:     {"at", 2},
}

// Builtins returns every intrinsic tag. The order is stable.
func Builtins() []Builtin {
	all := make([]Builtin, 0, len(builtinTable))
	for b := BuiltinPrint; b <= BuiltinAt; b++ {
		all = append(all, b)
	}
	return all
}

// Name returns the source-level identifier of the intrinsic.
func (b Builtin) Name() string {
	if info, ok := builtinTable[b]; ok {
		return info.name
	}
	return "??"
}

// NumParams returns the fixed arity of the intrinsic.
func (b Builtin) NumParams() int {
	if info, ok := builtinTable[b]; ok {
		return info.numParams
	}
	return 0
}

// runBuiltin dispatches an intrinsic. Each implementation consumes exactly
// NumParams values off the stack; the result is pushed by the caller.
func (e *Executor) runBuiltin(b Builtin) (Value, error) {
	switch b {
	case BuiltinPrint:
		return e.primPrint()
	case BuiltinWhile:
		return e.primWhile()
	case BuiltinAdd:
		return e.primAdd()
	case BuiltinSub:
		return e.primSub()
	case BuiltinMul:
		return e.primMul()
	case BuiltinDiv:
		return e.primDiv()
	case BuiltinMod:
		return e.primMod()
	case BuiltinList:
		return e.primList()
	case BuiltinLast:
		return e.primLast()
	case BuiltinPush:
		return e.primPush()
	case BuiltinLen:
		return e.primLen()
	case BuiltinMap:
		return e.primMap()
	case BuiltinFold:
		return e.primFold()
	case BuiltinFilter:
		return e.primFilter()
	case BuiltinZip:
		return e.primZip()
	case BuiltinAt:
		return e.primAt()
	default:
		return nil, scriptErr(TypeNotCallable)
	}
}
