package collections

import (
	"fmt"
	"strings"

	"github.com/Invicton-Labs/go-linkedlist/constraints"
)

// Node is a single cell of a singly-linked chain: one value and a
// link to the next cell.
type Node[T any] struct {
	Value T
	next  *Node[T]
}

// NewNode creates an unlinked node holding the given value.
func NewNode[T any](value T) *Node[T] {
	return &Node[T]{
		Value: value,
	}
}

// Next returns the following node, or nil at the end of the chain.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// Append attaches node to the end of the chain that starts at n.
// The complexity is O(n) in the length of the chain.
func (n *Node[T]) Append(node *Node[T]) {
	tail := n
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = node
}

// String renders the node alone as `Node(<value>)`.
func (n *Node[T]) String() string {
	return fmt.Sprintf("Node(%v)", n.Value)
}

// ChainString renders the chain that starts at n as
// `[Node(v1), Node(v2), ..., Node(vn)]`.
func (n *Node[T]) ChainString() string {
	var b strings.Builder
	b.WriteString("[")
	for node := n; node != nil; node = node.next {
		if node != n {
			b.WriteString(", ")
		}
		b.WriteString(node.String())
	}
	b.WriteString("]")
	return b.String()
}

// NodeEqualFunc checks whether two chains are structurally equal: each pair
// of values must satisfy eq, and both chains must end at the same
// position. Two nil nodes are equal.
func NodeEqualFunc[T any](a *Node[T], b *Node[T], eq func(val1 T, val2 T) bool) bool {
	for a != nil && b != nil {
		if a == b {
			// Same cell, so the remaining tails are identical
			return true
		}
		if !eq(a.Value, b.Value) {
			return false
		}
		a, b = a.next, b.next
	}
	return a == nil && b == nil
}

// NodeEqual is NodeEqualFunc using the == operator on the values.
// Note that the tails are included in the comparison, so two nodes with
// the same value are only equal if everything after them matches too.
func NodeEqual[T comparable](a *Node[T], b *Node[T]) bool {
	return NodeEqualFunc(a, b, func(val1 T, val2 T) bool { return val1 == val2 })
}

// NodeCompare compares two nodes by value only, returning -1, 0 or +1.
func NodeCompare[T constraints.Ordered](a *Node[T], b *Node[T]) int {
	return compareOrdered(a.Value, b.Value)
}

// NodeLess reports whether a's value is less than b's value.
func NodeLess[T constraints.Ordered](a *Node[T], b *Node[T]) bool {
	return a.Value < b.Value
}

func compareOrdered[T constraints.Ordered](a T, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
