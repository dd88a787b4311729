package interp

// EntryKind tags a symbol-table entry's cleanup/ownership semantics
// (spec.md §4.B).
type EntryKind int

const (
	// EntryPrimitive is a built-in function; never released by per-entry
	// cleanup, only at global teardown (spec.md §3 invariants).
	EntryPrimitive EntryKind = iota
	// EntryUser is a user-defined binding (variable, function, type);
	// released when its owning scope is left.
	EntryUser
	// EntryDirect is a binding that is never freed by scope cleanup.
	// Dispatch treats it like EntryUser; nothing in this package currently
	// inserts an entry of this kind.
	EntryDirect
)

// symEntry is one chained-bucket slot. Value is either *Primitive (kind ==
// EntryPrimitive) or *ast.Expr (kind == EntryUser/EntryDirect).
type symEntry struct {
	key   string
	kind  EntryKind
	value any
	next  *symEntry
}

// SymbolTable is a fixed-size chained-bucket hash table mapping a name to
// every entry registered under it — plural, because Tap permits
// overloading the same name with multiple arities/type signatures
// (spec.md §4.B).
type SymbolTable struct {
	buckets []*symEntry
	count   int
}

// Root and scope table sizes from spec.md §4.B.
const (
	InitialRootEnvSize = 11519
	InitialEnvSize     = 89
)

// NewSymbolTable allocates a table with the given bucket count.
func NewSymbolTable(size int) *SymbolTable {
	if size < 1 {
		size = 1
	}
	return &SymbolTable{buckets: make([]*symEntry, size)}
}

// hashKey implements the original's "hash = ch + (hash<<5) - hash" rolling
// hash, modulo the table size (spec.md §4.B).
func hashKey(key string, size int) int {
	var h uint32
	for i := 0; i < len(key); i++ {
		h = uint32(key[i]) + (h << 5) - h
	}
	return int(h % uint32(size))
}

// Insert appends a new entry at the head of key's bucket chain — later
// insertions shadow earlier ones for single-value Lookup, but all remain
// visible to Lookup (plural), matching the original's insertion-order
// preservation for overload scanning (spec.md §4.E step 2).
func (t *SymbolTable) Insert(key string, kind EntryKind, value any) {
	idx := hashKey(key, len(t.buckets))
	t.buckets[idx] = &symEntry{key: key, kind: kind, value: value, next: t.buckets[idx]}
	t.count++
}

// Lookup returns every entry registered under key, most-recently-inserted
// first, as the dispatcher's candidate list (spec.md §4.B "used by the
// dispatcher").
func (t *SymbolTable) Lookup(key string) []*symEntry {
	var out []*symEntry
	idx := hashKey(key, len(t.buckets))
	for e := t.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			out = append(out, e)
		}
	}
	return out
}

// LookupFirst returns the first (most recently inserted) entry for key.
func (t *SymbolTable) LookupFirst(key string) (*symEntry, bool) {
	idx := hashKey(key, len(t.buckets))
	for e := t.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			return e, true
		}
	}
	return nil, false
}

// Has reports whether any entry is registered under key.
func (t *SymbolTable) Has(key string) bool {
	_, ok := t.LookupFirst(key)
	return ok
}

// Clear resets every bucket to empty, keeping the backing slice allocated
// (spec.md §4.C "leave(): clear its symbol table but keep its backing
// storage").
func (t *SymbolTable) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.count = 0
}

// Len reports the total number of entries across all buckets — the
// environment's "variable-insertion count" (spec.md §3 "Environment").
func (t *SymbolTable) Len() int {
	return t.count
}

// Range calls f for every entry in the table, in bucket order and then
// chain order. EnvStack.Leave does not use it: popping a scope drops its
// table whole.
func (t *SymbolTable) Range(f func(e *symEntry)) {
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			f(e)
		}
	}
}
