package nbt

import (
	"bytes"
	"fmt"
	"math"
)

// Equal reports whether a and b are structurally equal: same kinds, same
// values, same member names in the same order. Floats compare by bit
// pattern, so a decoded NaN equals the NaN it was encoded from.
//
// A container is always equal to itself. Distinct trees that contain
// themselves are never equal.
func Equal(a, b Tag) bool {
	return equalTags(a, b, nil)
}

// Equal reports whether l and o declare the same element kind and hold equal
// elements in the same order.
func (l *List) Equal(o *List) bool {
	if l == nil || o == nil {
		return l == o
	}
	return equalTags(l, o, nil)
}

// Equal reports whether c and o hold equal members in the same order.
func (c *Compound) Equal(o *Compound) bool {
	if c == nil || o == nil {
		return c == o
	}
	return equalTags(c, o, nil)
}

// ancestors holds the containers on the current recursion path.
type ancestors map[Tag]struct{}

// enter records t and reports false if it was already on the path.
func (s *ancestors) enter(t Tag) bool {
	if *s == nil {
		*s = make(ancestors)
	}
	if _, ok := (*s)[t]; ok {
		return false
	}
	(*s)[t] = struct{}{}
	return true
}

func (s ancestors) leave(t Tag) { delete(s, t) }

func equalTags(a, b Tag, path ancestors) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Float:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Double)))
	case ByteArray:
		return bytes.Equal(x, b.(ByteArray))
	case *List:
		y := b.(*List)
		if x == y {
			return true
		}
		if x.elem != y.elem || len(x.items) != len(y.items) {
			return false
		}
		if !path.enter(x) {
			return false
		}
		defer path.leave(x)
		for i := range x.items {
			if !equalTags(x.items[i], y.items[i], path) {
				return false
			}
		}
		return true
	case *Compound:
		y := b.(*Compound)
		if x == y {
			return true
		}
		if len(x.members) != len(y.members) {
			return false
		}
		if !path.enter(x) {
			return false
		}
		defer path.leave(x)
		for i, m := range x.members {
			if m.name != y.members[i].name || !equalTags(m.tag, y.members[i].tag, path) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Clone returns a deep copy of t. Containers and byte arrays are copied so
// the result can be attached to another tree. A container that holds itself
// cannot be copied and fails with ErrNestingTooDeep.
func Clone(t Tag) (Tag, error) {
	var path ancestors
	return cloneTag(t, &path)
}

func cloneTag(t Tag, path *ancestors) (Tag, error) {
	switch v := t.(type) {
	case ByteArray:
		return ByteArray(bytes.Clone(v)), nil
	case *List:
		if v == nil {
			return v, nil
		}
		if !path.enter(v) {
			return nil, fmt.Errorf("%w: list contains itself", ErrNestingTooDeep)
		}
		defer path.leave(v)
		items := make([]Tag, len(v.items))
		for i, item := range v.items {
			c, err := cloneTag(item, path)
			if err != nil {
				return nil, err
			}
			items[i] = c
		}
		return &List{elem: v.elem, items: items}, nil
	case *Compound:
		if v == nil {
			return v, nil
		}
		if !path.enter(v) {
			return nil, fmt.Errorf("%w: compound contains itself", ErrNestingTooDeep)
		}
		defer path.leave(v)
		c := &Compound{
			members: make([]member, len(v.members)),
			index:   make(map[string]int, len(v.members)),
		}
		for i, m := range v.members {
			tag, err := cloneTag(m.tag, path)
			if err != nil {
				return nil, err
			}
			c.members[i] = member{name: m.name, tag: tag}
			c.index[m.name] = i
		}
		return c, nil
	default:
		return t, nil
	}
}
