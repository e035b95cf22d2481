package collections

import (
	"context"

	"github.com/Invicton-Labs/go-stackerr"
	"golang.org/x/sync/errgroup"
)

// Sort sorts the list in ascending order using a top-down merge sort.
// The sort is stable: values that compare equal keep their relative order.
func (l *LinkedList[T]) Sort() {
	left, right, ok := l.split()
	if !ok {
		return
	}
	left.Sort()
	right.Sort()
	left.mergeInItemsFromList(right)
	l.first = left.first
}

// SortParallel is Sort, but the two halves of the top `depth` levels of
// recursion are sorted in separate goroutines. If the context is done
// before a level starts, sorting stops, the list is re-joined so that it
// still holds every node (in an unspecified order), and the context's
// error is returned.
func (l *LinkedList[T]) SortParallel(ctx context.Context, depth int) stackerr.Error {
	if err := ctx.Err(); err != nil {
		return stackerr.Wrap(err)
	}
	if depth <= 0 {
		return l.sortContext(ctx)
	}
	left, right, ok := l.split()
	if !ok {
		return nil
	}
	errgrp, groupCtx := errgroup.WithContext(ctx)
	errgrp.Go(func() error {
		if err := left.SortParallel(groupCtx, depth-1); err != nil {
			return err
		}
		return nil
	})
	errgrp.Go(func() error {
		if err := right.SortParallel(groupCtx, depth-1); err != nil {
			return err
		}
		return nil
	})
	if err := errgrp.Wait(); err != nil {
		left.AppendContentsOf(right)
		l.first = left.first
		return stackerr.Wrap(err)
	}
	left.mergeInItemsFromList(right)
	l.first = left.first
	return nil
}

// sortContext is the sequential sort with a cancellation check before
// each split.
func (l *LinkedList[T]) sortContext(ctx context.Context) stackerr.Error {
	if err := ctx.Err(); err != nil {
		return stackerr.Wrap(err)
	}
	left, right, ok := l.split()
	if !ok {
		return nil
	}
	err := left.sortContext(ctx)
	if err == nil {
		err = right.sortContext(ctx)
	}
	if err != nil {
		left.AppendContentsOf(right)
		l.first = left.first
		return err
	}
	left.mergeInItemsFromList(right)
	l.first = left.first
	return nil
}

// split cuts the chain into a left view holding the first length/2 nodes
// and a right view holding the rest. It returns false, and leaves the
// chain alone, if there are fewer than two nodes.
func (l *LinkedList[T]) split() (left *LinkedList[T], right *LinkedList[T], ok bool) {
	length := l.Len()
	if length < 2 {
		return nil, nil, false
	}
	half := length / 2
	left = l.view(l.first)
	right = l.view(l.NodeAtPosition(half))
	left.RemoveAllAfter(left.NodeAtPosition(half - 1))
	return left, right, true
}

// mergeInItemsFromList merges the nodes of other (which must be sorted) into
// this list (which must also be sorted), consuming other until it is empty
// or its remainder has been appended to this list's tail.
func (l *LinkedList[T]) mergeInItemsFromList(other *LinkedList[T]) {
	if l.first == nil || other.first == nil {
		return
	}
	cursor := l.first
	for other.first != nil {
		// Strictly less, so equal values from the left run stay in front
		if l.compare(other.first.Value, cursor.Value) < 0 {
			l.InsertBefore(other.first, cursor)
			other.RemoveFirst()
		}
		if cursor.next == nil {
			break
		}
		cursor = cursor.next
	}
	if other.first != nil {
		l.AppendContentsOf(other)
	}
}
