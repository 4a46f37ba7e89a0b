package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestNewSymbolTable(t *testing.T) {
	st := NewSymbolTable()
	be.True(t, st != nil)
	be.Equal(t, 0, st.Len())
	be.True(t, st.Head() == nil)
}

func TestInsertDefaultsToScalarZero(t *testing.T) {
	st := NewSymbolTable()

	sym := st.Insert("x")
	be.True(t, sym != nil)
	be.Equal(t, "x", sym.Name)
	be.Equal(t, KindScalar, sym.Kind)
	be.Equal(t, 0.0, sym.Scalar)
	be.Equal(t, 1, st.Len())
}

func TestInsertIsIdempotent(t *testing.T) {
	st := NewSymbolTable()

	first := st.Insert("x")
	st.SetScalar(first, 7)

	second := st.Insert("x")
	be.True(t, first == second)
	be.Equal(t, 7.0, second.Scalar)
	be.Equal(t, 1, st.Len())
}

func TestInsertEmptyNamePanics(t *testing.T) {
	st := NewSymbolTable()

	defer func() {
		r := recover()
		be.True(t, r != nil)
	}()
	st.Insert("")
}

func TestLookupMissingReturnsNil(t *testing.T) {
	st := NewSymbolTable()
	be.True(t, st.Lookup("missing") == nil)

	st.Insert("x")
	be.True(t, st.Lookup("x") != nil)
	be.True(t, st.Lookup("y") == nil)
}

func TestSetScalarReleasesVectorPayload(t *testing.T) {
	st := NewSymbolTable()
	sym := st.Insert("v")

	st.SetVector(sym, []float64{1, 2, 3})
	be.Equal(t, KindVector, sym.Kind)
	be.Equal(t, 3, len(sym.Vector))

	st.SetScalar(sym, 4.5)
	be.Equal(t, KindScalar, sym.Kind)
	be.Equal(t, 4.5, sym.Scalar)
	be.True(t, sym.Vector == nil)
}

func TestSetVectorDeepCopies(t *testing.T) {
	st := NewSymbolTable()
	sym := st.Insert("v")

	data := []float64{1, 2, 3}
	st.SetVector(sym, data)
	data[0] = 99 // source buffer mutation must not leak in

	be.Equal(t, KindVector, sym.Kind)
	be.Equal(t, []float64{1, 2, 3}, sym.Vector)
}

func TestSetVectorEmpty(t *testing.T) {
	st := NewSymbolTable()
	sym := st.Insert("v")

	st.SetVector(sym, nil)
	be.Equal(t, KindVector, sym.Kind)
	be.Equal(t, 0, len(sym.Vector))
}

func TestEnumerationIsMostRecentFirst(t *testing.T) {
	st := NewSymbolTable()
	st.Insert("a")
	st.Insert("b")
	st.Insert("c")

	syms := st.Symbols()
	be.Equal(t, 3, len(syms))
	be.Equal(t, "c", syms[0].Name)
	be.Equal(t, "b", syms[1].Name)
	be.Equal(t, "a", syms[2].Name)

	// Re-inserting an existing name does not reorder the table.
	st.Insert("a")
	syms = st.Symbols()
	be.Equal(t, "c", syms[0].Name)
	be.Equal(t, "a", syms[2].Name)
}

func TestDestroyEmptiesTable(t *testing.T) {
	st := NewSymbolTable()
	sym := st.Insert("v")
	st.SetVector(sym, []float64{1, 2})

	st.Destroy()
	be.Equal(t, 0, st.Len())
	be.True(t, st.Lookup("v") == nil)

	// Idempotent.
	st.Destroy()
	be.Equal(t, 0, st.Len())

	// The table is reusable after destruction.
	st.Insert("w")
	be.Equal(t, 1, st.Len())
}

func TestSymbolKindString(t *testing.T) {
	be.Equal(t, "scalar", KindScalar.String())
	be.Equal(t, "vector", KindVector.String())
}
