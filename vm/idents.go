package vm

// ---------------------------------------------------------------------------
// IdentTable: Interned identifier names
// ---------------------------------------------------------------------------

// IdentTable interns identifier names to dense indices. The table is
// insertion-ordered and program-wide: the compiler threads one table through
// every nested compilation, so the same name maps to the same index for the
// lifetime of a compiled program, and the engine resolves builtins against
// the same indices.
type IdentTable struct {
	byName map[string]int // name -> index
	byIdx  []string       // index -> name
}

// NewIdentTable creates a new empty identifier table.
func NewIdentTable() *IdentTable {
	return &IdentTable{
		byName: make(map[string]int),
		byIdx:  make([]string, 0, 16),
	}
}

// Intern returns the index for a name, adding it if needed.
func (t *IdentTable) Intern(name string) int {
	if idx, ok := t.byName[name]; ok {
		return idx
	}
	idx := len(t.byIdx)
	t.byName[name] = idx
	t.byIdx = append(t.byIdx, name)
	return idx
}

// Lookup returns the index for a name, or 0 and false if it was never
// interned.
func (t *IdentTable) Lookup(name string) (int, bool) {
	idx, ok := t.byName[name]
	return idx, ok
}

// Name returns the name for an index, or "" if invalid.
func (t *IdentTable) Name(idx int) string {
	if idx < 0 || idx >= len(t.byIdx) {
		return ""
	}
	return t.byIdx[idx]
}

// Len returns the number of interned names.
func (t *IdentTable) Len() int {
	return len(t.byIdx)
}
