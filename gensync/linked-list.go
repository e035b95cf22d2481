package gensync

import (
	"context"
	"time"

	"github.com/Invicton-Labs/go-linkedlist/collections"
	"github.com/Invicton-Labs/go-linkedlist/constraints"
	"github.com/Invicton-Labs/go-linkedlist/lock"
	"github.com/Invicton-Labs/go-linkedlist/log"
	"github.com/Invicton-Labs/go-stackerr"
	"github.com/google/uuid"
)

// A LinkedList is a singly-linked list that can be shared between routines.
// One lock guards the whole chain, including the temporary views a sort
// splits it into. Only values go in and out, never nodes, so no caller
// can hold a reference into the chain outside of the lock.
type LinkedList[T constraints.Ordered] interface {
	// ID is a unique identifier for this list, used in log fields.
	ID() string
	// Append adds a value at the end of the list.
	Append(value T)
	// InsertAtBeginning adds a value at the front of the list.
	InsertAtBeginning(value T)
	// RemoveFirst removes and returns the first value. If the list is
	// empty, `found` will be `false`.
	RemoveFirst() (value T, found bool)
	// First returns the first value without removing it.
	First() (value T, found bool)
	// Len will return the number of values in the list.
	Len() int
	// Contains checks whether any node holds the given value.
	Contains(value T) bool
	// ToSlice returns a copy of all values in order.
	ToSlice() []T
	// String renders the list as `[Node(v1), ..., Node(vn)]`.
	String() string
	// Sort sorts the list in ascending order (stable).
	Sort()
	// SortContext sorts the list, giving up if the context is done
	// before the lock is acquired or between recursion levels. A list
	// whose sort was abandoned still holds every value.
	SortContext(ctx context.Context) stackerr.Error
}

type LinkedListInput[T constraints.Ordered] struct {
	// Name is added to log entries as `list_name`.
	Name string
	// ParallelSortDepth is the number of recursion levels whose halves are
	// sorted concurrently. Zero sorts on the calling routine only.
	ParallelSortDepth int
	// Initial values, in order.
	Initial []T
}

type linkedList[T constraints.Ordered] struct {
	id    string
	input LinkedListInput[T]
	mu    lock.CtxMutex
	list  *collections.LinkedList[T]
}

func NewLinkedList[T constraints.Ordered](input LinkedListInput[T]) LinkedList[T] {
	return &linkedList[T]{
		id:    uuid.New().String(),
		input: input,
		mu:    lock.NewCtxMutex(),
		list:  collections.FromSlice(input.Initial),
	}
}

// do runs f under the lock. A background context never ends, so the
// lock always succeeds.
func (l *linkedList[T]) do(f func()) {
	l.mu.Do(context.Background(), func() stackerr.Error {
		f()
		return nil
	})
}

func (l *linkedList[T]) ID() string {
	return l.id
}

func (l *linkedList[T]) Append(value T) {
	l.do(func() { l.list.AppendValue(value) })
}

func (l *linkedList[T]) InsertAtBeginning(value T) {
	l.do(func() { l.list.InsertAtBeginning(collections.NewNode(value)) })
}

func (l *linkedList[T]) RemoveFirst() (value T, found bool) {
	l.do(func() {
		if first := l.list.First(); first != nil {
			value, found = first.Value, true
			l.list.RemoveFirst()
		}
	})
	return value, found
}

func (l *linkedList[T]) First() (value T, found bool) {
	l.do(func() {
		if first := l.list.First(); first != nil {
			value, found = first.Value, true
		}
	})
	return value, found
}

func (l *linkedList[T]) Len() (length int) {
	l.do(func() { length = l.list.Len() })
	return length
}

func (l *linkedList[T]) Contains(value T) (found bool) {
	l.do(func() {
		l.list.ForEach(func(node *collections.Node[T]) bool {
			found = node.Value == value
			return !found
		})
	})
	return found
}

func (l *linkedList[T]) ToSlice() (values []T) {
	l.do(func() { values = l.list.ToSlice() })
	return values
}

func (l *linkedList[T]) String() (s string) {
	l.do(func() { s = l.list.String() })
	return s
}

func (l *linkedList[T]) Sort() {
	// Cannot fail without a deadline or cancellation
	_ = l.SortContext(context.Background())
}

func (l *linkedList[T]) SortContext(ctx context.Context) stackerr.Error {
	logger := log.FromContext(ctx).With("list_id", l.id, "list_name", l.input.Name)
	waitStart := time.Now()
	if err := l.mu.Lock(ctx); err != nil {
		logger.WithError(err).Debugw("gave up waiting for list lock", "lock_wait", time.Since(waitStart))
		return err
	}
	defer l.mu.Unlock()

	start := time.Now()
	length := l.list.Len()
	if err := l.list.SortParallel(ctx, l.input.ParallelSortDepth); err != nil {
		logger.WithError(err).Debugw("sort abandoned", "length", length)
		return err
	}
	logger.Debugw("sorted list",
		"length", length,
		"parallel_depth", l.input.ParallelSortDepth,
		"lock_wait", start.Sub(waitStart),
		"duration", time.Since(start),
	)
	return nil
}
