package formula

import (
	"strconv"
	"strings"
)

// Node is a node of a parsed formula. The set of implementations is closed:
// NumberNode, IdentifierNode, CallNode and BinaryNode.
// Nodes are immutable once returned by the parser.
type Node interface {
	// String renders the node back into formula syntax.
	String() string
	node()
}

// NumberNode is a numeric literal.
type NumberNode struct {
	Value float64
}

// IdentifierNode references a named series in the evaluation context.
type IdentifierNode struct {
	Name string
}

// CallNode invokes a registered function.
type CallNode struct {
	Name string
	Args []Node
}

// BinaryNode combines two sub-expressions element-wise.
type BinaryNode struct {
	Op    byte // one of + - * /
	Left  Node
	Right Node
}

func (*NumberNode) node()     {}
func (*IdentifierNode) node() {}
func (*CallNode) node()       {}
func (*BinaryNode) node()     {}

func (n *NumberNode) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *IdentifierNode) String() string {
	return n.Name
}

func (n *CallNode) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}

	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

func (n *BinaryNode) String() string {
	return "(" + n.Left.String() + " " + string(n.Op) + " " + n.Right.String() + ")"
}
