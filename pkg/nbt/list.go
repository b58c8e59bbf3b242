package nbt

import (
	"fmt"
	"iter"
	"slices"
)

// List is an ordered sequence of unnamed tags that all share the list's
// declared element kind. The element kind is fixed at construction and is
// written to the stream even when the list is empty.
type List struct {
	elem  Kind
	items []Tag
}

// NewList creates a list of elem-kind tags holding items in order.
func NewList(elem Kind, items ...Tag) (*List, error) {
	if !elem.Valid() {
		return nil, unknownKind(elem)
	}
	l := &List{elem: elem, items: make([]Tag, 0, len(items))}
	for _, t := range items {
		if err := l.check(t); err != nil {
			return nil, err
		}
		l.items = append(l.items, t)
	}
	return l, nil
}

// MustList is like NewList but panics on error. Intended for literals in
// tests and static data.
func MustList(elem Kind, items ...Tag) *List {
	l, err := NewList(elem, items...)
	if err != nil {
		panic(err)
	}
	return l
}

// ElemKind returns the declared element kind.
func (l *List) ElemKind() Kind {
	return l.elem
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.items)
}

func (l *List) check(t Tag) error {
	if isNil(t) {
		return fmt.Errorf("%w: nil element for %s list", ErrTypeMismatch, l.elem)
	}
	if t.Kind() != l.elem {
		return fmt.Errorf("%w: %s element for %s list", ErrTypeMismatch, t.Kind(), l.elem)
	}
	return nil
}

// Get returns the element at index i.
func (l *List) Get(i int) (Tag, error) {
	if i < 0 || i >= len(l.items) {
		return nil, indexError(i, len(l.items))
	}
	return l.items[i], nil
}

// Set replaces the element at index i.
func (l *List) Set(i int, t Tag) error {
	if i < 0 || i >= len(l.items) {
		return indexError(i, len(l.items))
	}
	if err := l.check(t); err != nil {
		return err
	}
	l.items[i] = t
	return nil
}

// Append adds t at the end. A tag of another kind is rejected and the list
// is left unchanged.
func (l *List) Append(t Tag) error {
	if err := l.check(t); err != nil {
		return err
	}
	l.items = append(l.items, t)
	return nil
}

// Insert places t before index i; i == Len() appends.
func (l *List) Insert(i int, t Tag) error {
	if i < 0 || i > len(l.items) {
		return indexError(i, len(l.items))
	}
	if err := l.check(t); err != nil {
		return err
	}
	l.items = slices.Insert(l.items, i, t)
	return nil
}

// Delete removes the element at index i.
func (l *List) Delete(i int) error {
	if i < 0 || i >= len(l.items) {
		return indexError(i, len(l.items))
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// All iterates over index/element pairs in order.
func (l *List) All() iter.Seq2[int, Tag] {
	return func(yield func(int, Tag) bool) {
		for i, t := range l.items {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Items returns a copy of the elements.
func (l *List) Items() []Tag {
	return slices.Clone(l.items)
}
