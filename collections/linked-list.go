// Package collections implements a generic singly-linked list with
// in-place merge sorting.
//
// To iterate over a list (where l is a *LinkedList[T]):
//
//	for n := l.First(); n != nil; n = n.Next() {
//		// do something with n.Value
//	}
//
// A LinkedList is not safe for concurrent use. Lists can share a chain
// (see AppendContentsOf), so any external locking must cover every list
// that references the chain. See gensync.LinkedList for a locked version.
package collections

import (
	"github.com/Invicton-Labs/go-linkedlist/constraints"
	"github.com/Invicton-Labs/go-stackerr"
)

// LinkedList is a handle to the first node of a chain. It owns every node
// reachable from that first node. The zero value is not usable, since it
// has no ordering; use one of the constructors.
type LinkedList[T any] struct {
	first   *Node[T]
	compare func(a T, b T) int
}

// NewLinkedList creates a list of ordered values. If first is not nil, the
// list adopts the chain starting at first.
func NewLinkedList[T constraints.Ordered](first *Node[T]) *LinkedList[T] {
	return NewLinkedListFunc(compareOrdered[T], first)
}

// NewLinkedListFunc creates a list whose values are ordered by compare,
// which must return a negative number when a < b, zero when a == b and
// a positive number when a > b.
func NewLinkedListFunc[T any](compare func(a T, b T) int, first *Node[T]) *LinkedList[T] {
	if compare == nil {
		panic("no compare function provided")
	}
	return &LinkedList[T]{
		first:   first,
		compare: compare,
	}
}

// FromSlice creates a list of ordered values holding the given values in order.
func FromSlice[T constraints.Ordered](values []T) *LinkedList[T] {
	return FromSliceFunc(compareOrdered[T], values)
}

// FromSliceFunc is FromSlice with a custom ordering.
func FromSliceFunc[T any](compare func(a T, b T) int, values []T) *LinkedList[T] {
	l := NewLinkedListFunc[T](compare, nil)
	// Build back to front so each insertion is O(1)
	for i := len(values) - 1; i >= 0; i-- {
		l.InsertAtBeginning(NewNode(values[i]))
	}
	return l
}

// view creates a list over a sub-chain that shares this list's ordering.
func (l *LinkedList[T]) view(first *Node[T]) *LinkedList[T] {
	return &LinkedList[T]{
		first:   first,
		compare: l.compare,
	}
}

// Len counts the nodes reachable from the first node.
// The complexity is O(n).
func (l *LinkedList[T]) Len() int {
	count := 0
	for n := l.first; n != nil; n = n.next {
		count++
	}
	return count
}

// First returns the first node, or nil if the list is empty.
func (l *LinkedList[T]) First() *Node[T] {
	return l.first
}

// Last returns the last node, or nil if the list is empty.
func (l *LinkedList[T]) Last() *Node[T] {
	if l.first == nil {
		return nil
	}
	n := l.first
	for n.next != nil {
		n = n.next
	}
	return n
}

// NodeAtPosition returns the node at the 0-based index. If the chain is
// shorter than index+1, the last node is returned instead; use NodeAtIndex
// for strict bounds checking. It returns nil only for an empty list.
func (l *LinkedList[T]) NodeAtPosition(index int) *Node[T] {
	n := l.first
	for i := 0; n != nil && n.next != nil && i < index; i++ {
		n = n.next
	}
	return n
}

// NodeAtIndex returns the node at the 0-based index, or an error if the
// index is outside of the list.
func (l *LinkedList[T]) NodeAtIndex(index int) (*Node[T], stackerr.Error) {
	if index >= 0 {
		i := 0
		for n := l.first; n != nil; n = n.next {
			if i == index {
				return n, nil
			}
			i++
		}
	}
	return nil, stackerr.Errorf("index out of range").With(map[string]any{
		"index":  index,
		"length": l.Len(),
	})
}

// NodeAfter returns the node that is `steps` links to the right of node,
// or nil if the chain ends first. Zero steps returns node itself.
func (l *LinkedList[T]) NodeAfter(node *Node[T], steps int) *Node[T] {
	for i := 0; node != nil && i < steps; i++ {
		node = node.next
	}
	return node
}

// Iterator returns a closure that returns the next node of the list each
// time it's called. Each call follows the link that is current at the
// time of that call. After the last node has been returned, the closure
// returns nil and false for 'ok'.
func (l *LinkedList[T]) Iterator() func() (node *Node[T], ok bool) {
	var current *Node[T]
	started := false
	return func() (node *Node[T], ok bool) {
		if !started {
			started = true
			current = l.first
		} else if current != nil {
			current = current.next
		}
		return current, current != nil
	}
}

// ForEach calls f for each node in chain order until f returns false.
func (l *LinkedList[T]) ForEach(f func(node *Node[T]) bool) {
	next := l.Iterator()
	for n, ok := next(); ok; n, ok = next() {
		if !f(n) {
			return
		}
	}
}

func (l *LinkedList[T]) valuesEqual(a T, b T) bool {
	return l.compare(a, b) == 0
}

// Contains checks whether some node in the chain is structurally equal to
// the given node, meaning the value and everything after it match.
func (l *LinkedList[T]) Contains(node *Node[T]) bool {
	for n := l.first; n != nil; n = n.next {
		if NodeEqualFunc(n, node, l.valuesEqual) {
			return true
		}
	}
	return false
}

// has checks whether node itself (by identity) is in the chain.
func (l *LinkedList[T]) has(node *Node[T]) bool {
	for n := l.first; n != nil; n = n.next {
		if n == node {
			return true
		}
	}
	return false
}

// Equal checks whether both lists hold structurally equal chains.
func (l *LinkedList[T]) Equal(other *LinkedList[T]) bool {
	return NodeEqualFunc(l.first, other.first, l.valuesEqual)
}

// InsertAtBeginning makes node the new first node.
func (l *LinkedList[T]) InsertAtBeginning(node *Node[T]) {
	node.next = l.first
	l.first = node
}

// InsertBefore places newNode's value immediately before target. Since
// predecessors are not tracked, a copy of newNode is spliced after target
// and the two values are swapped: target stays where it was and now holds
// the new value, and the copy after it holds target's old value.
// newNode itself is not linked into the chain. If target is not in this
// list, the result is unspecified. The target must not be nil.
func (l *LinkedList[T]) InsertBefore(newNode *Node[T], target *Node[T]) {
	cp := &Node[T]{
		Value: target.Value,
		next:  target.next,
	}
	target.next = cp
	target.Value = newNode.Value
}

// InsertBeforeChecked is InsertBefore, but returns an error and leaves
// the list unmodified if target is not a node of this list.
func (l *LinkedList[T]) InsertBeforeChecked(newNode *Node[T], target *Node[T]) stackerr.Error {
	if target == nil || !l.has(target) {
		return stackerr.Errorf("target node is not in the list").With(map[string]any{
			"target": target,
		})
	}
	l.InsertBefore(newNode, target)
	return nil
}

// InsertAfter splices newNode directly after target.
// The target must not be nil.
func (l *LinkedList[T]) InsertAfter(newNode *Node[T], target *Node[T]) {
	newNode.next = target.next
	target.next = newNode
}

// Append attaches node at the end of the list.
// The complexity is O(n).
func (l *LinkedList[T]) Append(node *Node[T]) {
	if l.first == nil {
		l.first = node
		return
	}
	l.first.Append(node)
}

// AppendValue appends a new node holding value.
func (l *LinkedList[T]) AppendValue(value T) {
	l.Append(NewNode(value))
}

// AppendContentsOf links the last node of this list to the first node of
// other. Both lists then share the joined part of the chain, so mutating
// one may change what the other holds. An empty list has no last node, so
// nothing happens.
func (l *LinkedList[T]) AppendContentsOf(other *LinkedList[T]) {
	if l.first == nil || other.first == nil {
		return
	}
	l.Last().next = other.first
}

// RemoveFirst makes the second node the first one. It is a no-op on an
// empty list.
func (l *LinkedList[T]) RemoveFirst() {
	if l.first != nil {
		l.first = l.first.next
	}
}

// RemoveNode removes node from its position by copying its successor's
// value and link into it. The last node has no successor and cannot be
// removed this way; in that case nothing happens and removed is false.
func (l *LinkedList[T]) RemoveNode(node *Node[T]) (removed bool) {
	next := node.next
	if next == nil {
		return false
	}
	node.Value = next.Value
	node.next = next.next
	return true
}

// RemoveAfter unlinks the node that follows node, if any.
func (l *LinkedList[T]) RemoveAfter(node *Node[T]) {
	if node.next != nil {
		node.next = node.next.next
	}
}

// RemoveAllAfter truncates the chain directly after node.
func (l *LinkedList[T]) RemoveAllAfter(node *Node[T]) {
	node.next = nil
}

// SwapValues swaps the values held by a and b. Nothing is swapped (and
// swapped is false) unless both nodes are in this list.
func (l *LinkedList[T]) SwapValues(a *Node[T], b *Node[T]) (swapped bool) {
	if a == nil || b == nil || !l.has(a) || !l.has(b) {
		return false
	}
	a.Value, b.Value = b.Value, a.Value
	return true
}

// ToSlice returns all values in chain order.
func (l *LinkedList[T]) ToSlice() []T {
	s := []T{}
	for n := l.first; n != nil; n = n.next {
		s = append(s, n.Value)
	}
	return s
}

// Validate walks the chain and returns an error if it loops back on itself.
func (l *LinkedList[T]) Validate() stackerr.Error {
	slow, fast := l.first, l.first
	position := 0
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
		position++
		if slow == fast {
			return stackerr.Errorf("cycle detected in chain").With(map[string]any{
				"position": position,
			})
		}
	}
	return nil
}

// String renders the list as `[Node(v1), Node(v2), ..., Node(vn)]`,
// or `[]` if it is empty.
func (l *LinkedList[T]) String() string {
	if l.first == nil {
		return "[]"
	}
	return l.first.ChainString()
}
