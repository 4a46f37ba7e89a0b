package main

// SymbolKind is the value kind a symbol currently holds.
type SymbolKind int

const (
	KindScalar SymbolKind = iota
	KindVector
)

func (k SymbolKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	default:
		return "undefined"
	}
}

// Symbol is a named storage slot shared by every reference to one
// identifier. The payload always matches Kind: Scalar carries Scalar,
// Vector carries Vector.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Scalar float64
	Vector []float64

	next *Symbol
}

// SymbolTable holds every symbol of one compilation unit. New entries go
// at the head, so traversal order is most-recent-first and stable.
//
// One table per compilation; construct with NewSymbolTable rather than
// sharing process-wide state, so independent compilations can coexist.
type SymbolTable struct {
	head  *Symbol
	count int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Lookup scans for a symbol by exact name. Absence is not an error here:
// it returns nil and the caller decides whether that is fatal.
func (st *SymbolTable) Lookup(name string) *Symbol {
	for sym := st.head; sym != nil; sym = sym.next {
		if sym.Name == name {
			return sym
		}
	}
	return nil
}

// Insert returns the existing symbol for name, or links a fresh one at
// the head of the list, default-initialized to Scalar(0.0). First
// reference wins; later inserts of the same name are no-ops.
//
// An empty name is a construction-time invariant violation and panics.
func (st *SymbolTable) Insert(name string) *Symbol {
	if name == "" {
		panic("symtab: insert of empty symbol name")
	}
	if sym := st.Lookup(name); sym != nil {
		return sym
	}
	sym := &Symbol{
		Name: name,
		Kind: KindScalar,
		next: st.head,
	}
	st.head = sym
	st.count++
	return sym
}

// SetScalar discards any vector payload and stores a scalar value.
func (st *SymbolTable) SetScalar(sym *Symbol, v float64) {
	if sym == nil {
		return
	}
	sym.Vector = nil
	sym.Kind = KindScalar
	sym.Scalar = v
}

// SetVector discards the previous payload and stores a deep copy of
// data. Copying keeps value semantics regardless of the source buffer's
// lifetime; a nil or empty slice yields an empty vector.
func (st *SymbolTable) SetVector(sym *Symbol, data []float64) {
	if sym == nil {
		return
	}
	sym.Scalar = 0
	sym.Kind = KindVector
	if len(data) == 0 {
		sym.Vector = nil
		return
	}
	sym.Vector = make([]float64, len(data))
	copy(sym.Vector, data)
}

// Head returns the most recently inserted symbol, for most-recent-first
// traversal via Symbol.next order. Mutating the chain is not supported.
func (st *SymbolTable) Head() *Symbol {
	return st.head
}

// Symbols returns the table contents most-recent-first.
func (st *SymbolTable) Symbols() []*Symbol {
	out := make([]*Symbol, 0, st.count)
	for sym := st.head; sym != nil; sym = sym.next {
		out = append(out, sym)
	}
	return out
}

func (st *SymbolTable) Len() int {
	return st.count
}

// Destroy empties the table and drops every payload. Idempotent. Go
// reclaims the storage; the explicit lifecycle step exists so a table
// can be reset and reused like the compilation unit it models.
func (st *SymbolTable) Destroy() {
	for sym := st.head; sym != nil; {
		next := sym.next
		sym.Vector = nil
		sym.next = nil
		sym = next
	}
	st.head = nil
	st.count = 0
}
