package main

import (
	"fmt"
	"os"
	"strconv"
)

// NodeKind represents different types of AST nodes
type NodeKind string

const (
	NodeNumber NodeKind = "NodeNumber"
	NodeVector NodeKind = "NodeVector"
	NodeIdent  NodeKind = "NodeIdent"
	NodeBinary NodeKind = "NodeBinary"
	NodeUnary  NodeKind = "NodeUnary"
	NodeAssign NodeKind = "NodeAssign"
	NodeBlock  NodeKind = "NodeBlock"
	NodeIf     NodeKind = "NodeIf"
	NodeWhile  NodeKind = "NodeWhile"
	NodeCall   NodeKind = "NodeCall"
)

// ASTNode is one node of the syntax tree. A node owns its children;
// Sym is a non-owning reference into the symbol table, whose lifetime
// is governed by the table alone.
//
// Children layout per kind:
//
//	NodeBinary: [left, right]
//	NodeUnary:  [operand]
//	NodeAssign: [expression]          (target in Sym)
//	NodeVector: elements, in order
//	NodeBlock:  statements, in order
//	NodeIf:     [condition, then] or [condition, then, else]
//	NodeWhile:  [condition, body]
//	NodeCall:   arguments, in order   (callee in Sym)
type ASTNode struct {
	Kind NodeKind
	// NodeNumber:
	Number float64
	// NodeBinary, NodeUnary:
	Op byte
	// NodeIdent, NodeAssign, NodeCall:
	Sym *Symbol

	Children []*ASTNode
}

func NewNumberNode(value float64) *ASTNode {
	return &ASTNode{Kind: NodeNumber, Number: value}
}

func NewIdentNode(sym *Symbol) *ASTNode {
	return &ASTNode{Kind: NodeIdent, Sym: sym}
}

func NewBinaryNode(op byte, left, right *ASTNode) *ASTNode {
	return &ASTNode{Kind: NodeBinary, Op: op, Children: []*ASTNode{left, right}}
}

func NewUnaryNode(op byte, operand *ASTNode) *ASTNode {
	return &ASTNode{Kind: NodeUnary, Op: op, Children: []*ASTNode{operand}}
}

func NewAssignNode(target *Symbol, expr *ASTNode) *ASTNode {
	return &ASTNode{Kind: NodeAssign, Sym: target, Children: []*ASTNode{expr}}
}

// NewVectorNode creates an empty vector literal; add elements with
// AddChild.
func NewVectorNode() *ASTNode {
	return &ASTNode{Kind: NodeVector}
}

// NewBlockNode creates an empty statement list; add statements with
// AddChild.
func NewBlockNode() *ASTNode {
	return &ASTNode{Kind: NodeBlock}
}

// NewIfNode builds an if statement. elseBranch may be nil.
func NewIfNode(cond, thenBranch, elseBranch *ASTNode) *ASTNode {
	children := []*ASTNode{cond, thenBranch}
	if elseBranch != nil {
		children = append(children, elseBranch)
	}
	return &ASTNode{Kind: NodeIf, Children: children}
}

func NewWhileNode(cond, body *ASTNode) *ASTNode {
	return &ASTNode{Kind: NodeWhile, Children: []*ASTNode{cond, body}}
}

func NewCallNode(callee *Symbol, args []*ASTNode) *ASTNode {
	return &ASTNode{Kind: NodeCall, Sym: callee, Children: args}
}

// AddChild appends to a list-bearing node (vector literal, statement
// list, call arguments). Insertion order is preserved; append cost is
// amortized by the slice growth strategy.
func (n *ASTNode) AddChild(child *ASTNode) {
	if n == nil || child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

// ElseBranch returns the else block of a NodeIf, or nil when absent.
func (n *ASTNode) ElseBranch() *ASTNode {
	if n.Kind == NodeIf && len(n.Children) == 3 {
		return n.Children[2]
	}
	return nil
}

// ToSExpr renders a node as an S-expression for inspection and tests.
func ToSExpr(node *ASTNode) string {
	if node == nil {
		return "(nil)"
	}
	switch node.Kind {
	case NodeNumber:
		return "(number " + floatToString(node.Number) + ")"
	case NodeIdent:
		return "(ident \"" + node.Sym.Name + "\")"
	case NodeBinary:
		left := ToSExpr(node.Children[0])
		right := ToSExpr(node.Children[1])
		return "(binary \"" + string(node.Op) + "\" " + left + " " + right + ")"
	case NodeUnary:
		return "(unary \"" + string(node.Op) + "\" " + ToSExpr(node.Children[0]) + ")"
	case NodeAssign:
		return "(assign \"" + node.Sym.Name + "\" " + ToSExpr(node.Children[0]) + ")"
	case NodeVector:
		result := "(vector"
		for _, child := range node.Children {
			result += " " + ToSExpr(child)
		}
		return result + ")"
	case NodeBlock:
		result := "(block"
		for _, child := range node.Children {
			result += " " + ToSExpr(child)
		}
		return result + ")"
	case NodeIf:
		result := "(if " + ToSExpr(node.Children[0]) + " " + ToSExpr(node.Children[1])
		if els := node.ElseBranch(); els != nil {
			result += " " + ToSExpr(els)
		}
		return result + ")"
	case NodeWhile:
		return "(while " + ToSExpr(node.Children[0]) + " " + ToSExpr(node.Children[1]) + ")"
	case NodeCall:
		result := "(call \"" + node.Sym.Name + "\""
		for _, child := range node.Children {
			result += " " + ToSExpr(child)
		}
		return result + ")"
	default:
		return ""
	}
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Release tears a tree down depth-first, dropping child links so a
// half-shared subtree is never walked twice. Symbols are left alone;
// the table owns them. An unrecognized kind never occurs on a
// well-formed tree and is reported as a programming error.
func Release(node *ASTNode) {
	if node == nil {
		return
	}
	switch node.Kind {
	case NodeNumber, NodeVector, NodeIdent, NodeBinary, NodeUnary,
		NodeAssign, NodeBlock, NodeIf, NodeWhile, NodeCall:
		for _, child := range node.Children {
			Release(child)
		}
	default:
		fmt.Fprintf(os.Stderr, "warning: releasing unknown AST node kind %q\n", node.Kind)
	}
	node.Children = nil
	node.Sym = nil
}
