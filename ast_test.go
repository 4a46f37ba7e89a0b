package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestNumberNode(t *testing.T) {
	node := NewNumberNode(3.5)
	be.Equal(t, NodeNumber, node.Kind)
	be.Equal(t, 3.5, node.Number)
	be.Equal(t, "(number 3.5)", ToSExpr(node))
}

func TestIdentNodeReferencesSymbol(t *testing.T) {
	st := NewSymbolTable()
	sym := st.Insert("x")

	node := NewIdentNode(sym)
	be.Equal(t, NodeIdent, node.Kind)
	be.True(t, node.Sym == sym)
	be.Equal(t, "(ident \"x\")", ToSExpr(node))
}

func TestBinaryNode(t *testing.T) {
	node := NewBinaryNode('+', NewNumberNode(1), NewNumberNode(2))
	be.Equal(t, NodeBinary, node.Kind)
	be.Equal(t, byte('+'), node.Op)
	be.Equal(t, 2, len(node.Children))
	be.Equal(t, "(binary \"+\" (number 1) (number 2))", ToSExpr(node))
}

func TestUnaryNode(t *testing.T) {
	node := NewUnaryNode('-', NewNumberNode(4))
	be.Equal(t, "(unary \"-\" (number 4))", ToSExpr(node))
}

func TestVectorNodePreservesElementOrder(t *testing.T) {
	vec := NewVectorNode()
	be.Equal(t, 0, len(vec.Children))

	vec.AddChild(NewNumberNode(1))
	vec.AddChild(NewNumberNode(2))
	vec.AddChild(NewNumberNode(3))
	be.Equal(t, 3, len(vec.Children))
	be.Equal(t, "(vector (number 1) (number 2) (number 3))", ToSExpr(vec))
}

func TestBlockNodePreservesStatementOrder(t *testing.T) {
	st := NewSymbolTable()
	block := NewBlockNode()
	block.AddChild(NewAssignNode(st.Insert("a"), NewNumberNode(1)))
	block.AddChild(NewAssignNode(st.Insert("b"), NewNumberNode(2)))

	be.Equal(t, "(block (assign \"a\" (number 1)) (assign \"b\" (number 2)))", ToSExpr(block))
}

func TestIfNodeWithoutElse(t *testing.T) {
	node := NewIfNode(NewNumberNode(1), NewBlockNode(), nil)
	be.Equal(t, 2, len(node.Children))
	be.True(t, node.ElseBranch() == nil)
	be.Equal(t, "(if (number 1) (block))", ToSExpr(node))
}

func TestIfNodeWithElse(t *testing.T) {
	node := NewIfNode(NewNumberNode(1), NewBlockNode(), NewBlockNode())
	be.Equal(t, 3, len(node.Children))
	be.True(t, node.ElseBranch() != nil)
	be.Equal(t, "(if (number 1) (block) (block))", ToSExpr(node))
}

func TestWhileNode(t *testing.T) {
	st := NewSymbolTable()
	cond := NewIdentNode(st.Insert("n"))
	node := NewWhileNode(cond, NewBlockNode())
	be.Equal(t, "(while (ident \"n\") (block))", ToSExpr(node))
}

func TestCallNode(t *testing.T) {
	st := NewSymbolTable()
	callee := st.Insert("scatter_plot")
	node := NewCallNode(callee, []*ASTNode{
		NewIdentNode(st.Insert("xs")),
		NewIdentNode(st.Insert("ys")),
	})
	be.Equal(t, "(call \"scatter_plot\" (ident \"xs\") (ident \"ys\"))", ToSExpr(node))
}

func TestCallNodeNoArguments(t *testing.T) {
	st := NewSymbolTable()
	node := NewCallNode(st.Insert("read_vector"), nil)
	be.Equal(t, "(call \"read_vector\")", ToSExpr(node))
}

func TestAddChildIgnoresNil(t *testing.T) {
	vec := NewVectorNode()
	vec.AddChild(nil)
	be.Equal(t, 0, len(vec.Children))
}

func TestReleaseDropsChildrenButNotSymbols(t *testing.T) {
	st := NewSymbolTable()
	sym := st.Insert("x")
	st.SetScalar(sym, 9)

	tree := NewAssignNode(sym, NewBinaryNode('+', NewIdentNode(sym), NewNumberNode(1)))
	Release(tree)

	be.True(t, tree.Children == nil)
	// The symbol is owned by the table and survives the tree.
	be.True(t, st.Lookup("x") == sym)
	be.Equal(t, 9.0, sym.Scalar)
}

func TestFloatToString(t *testing.T) {
	be.Equal(t, "5", floatToString(5))
	be.Equal(t, "2.5", floatToString(2.5))
	be.Equal(t, "-0.25", floatToString(-0.25))
	be.Equal(t, "1e+10", floatToString(1e10))
}
