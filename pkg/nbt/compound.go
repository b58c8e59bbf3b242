package nbt

import (
	"fmt"
	"iter"
	"slices"
)

type member struct {
	name string
	tag  Tag
}

// Compound is an ordered mapping from unique names to tags. Iteration,
// Keys and serialization follow insertion order; replacing a value with Set
// keeps its position. The zero value is an empty compound ready to use.
type Compound struct {
	members []member
	index   map[string]int // name -> position in members
}

// NewCompound returns an empty compound.
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

// Len returns the number of members.
func (c *Compound) Len() int {
	return len(c.members)
}

// Contains reports whether name is a member.
func (c *Compound) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Keys returns the member names in insertion order.
func (c *Compound) Keys() []string {
	keys := make([]string, len(c.members))
	for i, m := range c.members {
		keys[i] = m.name
	}
	return keys
}

// Get returns the tag stored under name.
func (c *Compound) Get(name string) (Tag, error) {
	i, ok := c.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	return c.members[i].tag, nil
}

// At returns the name and tag at position i of the insertion order.
func (c *Compound) At(i int) (string, Tag, error) {
	if i < 0 || i >= len(c.members) {
		return "", nil, indexError(i, len(c.members))
	}
	m := c.members[i]
	return m.name, m.tag, nil
}

// Set stores t under name. A new name goes to the end of the order; an
// existing one is replaced in place. Values of any kind are accepted.
func (c *Compound) Set(name string, t Tag) error {
	if isNil(t) {
		return fmt.Errorf("%w: nil value for %q", ErrTypeMismatch, name)
	}
	if i, ok := c.index[name]; ok {
		c.members[i].tag = t
		return nil
	}
	c.push(name, t)
	return nil
}

// Append adds t under a name that must not already exist.
func (c *Compound) Append(name string, t Tag) error {
	if isNil(t) {
		return fmt.Errorf("%w: nil value for %q", ErrTypeMismatch, name)
	}
	if c.Contains(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, name)
	}
	c.push(name, t)
	return nil
}

// Insert adds t under a new name before position i; i == Len() appends.
func (c *Compound) Insert(i int, name string, t Tag) error {
	if i < 0 || i > len(c.members) {
		return indexError(i, len(c.members))
	}
	if isNil(t) {
		return fmt.Errorf("%w: nil value for %q", ErrTypeMismatch, name)
	}
	if c.Contains(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, name)
	}
	c.members = slices.Insert(c.members, i, member{name: name, tag: t})
	c.reindex(i)
	return nil
}

// Delete removes name. Survivors keep their relative order.
func (c *Compound) Delete(name string) error {
	i, ok := c.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	c.members = slices.Delete(c.members, i, i+1)
	delete(c.index, name)
	c.reindex(i)
	return nil
}

// All iterates over name/tag pairs in insertion order.
func (c *Compound) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		for _, m := range c.members {
			if !yield(m.name, m.tag) {
				return
			}
		}
	}
}

func (c *Compound) push(name string, t Tag) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[name] = len(c.members)
	c.members = append(c.members, member{name: name, tag: t})
}

// reindex refreshes positions from 'from' onward after a shift.
func (c *Compound) reindex(from int) {
	if c.index == nil {
		c.index = make(map[string]int, len(c.members))
	}
	for j := from; j < len(c.members); j++ {
		c.index[c.members[j].name] = j
	}
}

// As fetches name from c and asserts it to T, failing with ErrTypeMismatch
// when the stored tag is of another kind.
//
//	pos, err := nbt.As[*nbt.List](level, "Pos")
func As[T Tag](c *Compound, name string) (T, error) {
	var zero T
	t, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	v, ok := t.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %s", ErrTypeMismatch, name, t.Kind())
	}
	return v, nil
}
