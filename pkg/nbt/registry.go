package nbt

import "fmt"

type (
	decodeFunc func(d *decoder) (Tag, error)
	encodeFunc func(e *encoder, t Tag) error
)

type registryEntry struct {
	decode decodeFunc
	encode encodeFunc
}

// Registry maps each value kind id to its payload decode and encode
// routines. Lists and compounds dispatch through it; it is the only place
// that reports ErrUnknownTagType. A Registry is immutable after NewRegistry.
type Registry struct {
	entries [numKinds]registryEntry
}

// NewRegistry returns the table for kinds 1 through 10.
func NewRegistry() *Registry {
	r := &Registry{}
	r.entries[KindByte] = registryEntry{decodeByte, encodeByte}
	r.entries[KindShort] = registryEntry{decodeShort, encodeShort}
	r.entries[KindInt] = registryEntry{decodeInt, encodeInt}
	r.entries[KindLong] = registryEntry{decodeLong, encodeLong}
	r.entries[KindFloat] = registryEntry{decodeFloat, encodeFloat}
	r.entries[KindDouble] = registryEntry{decodeDouble, encodeDouble}
	r.entries[KindByteArray] = registryEntry{decodeByteArray, encodeByteArray}
	r.entries[KindString] = registryEntry{decodeString, encodeString}
	r.entries[KindList] = registryEntry{decodeList, encodeList}
	r.entries[KindCompound] = registryEntry{decodeCompound, encodeCompound}
	return r
}

// Supports reports whether k has an entry.
func (r *Registry) Supports(k Kind) bool {
	_, err := r.lookup(k)
	return err == nil
}

func (r *Registry) lookup(k Kind) (registryEntry, error) {
	if int(k) >= len(r.entries) || r.entries[k].decode == nil {
		return registryEntry{}, unknownKind(k)
	}
	return r.entries[k], nil
}

// Scalars, strings and byte arrays.

func decodeByte(d *decoder) (Tag, error) {
	v, err := d.r.ReadInt8()
	return Byte(v), err
}

func decodeShort(d *decoder) (Tag, error) {
	v, err := d.r.ReadInt16()
	return Short(v), err
}

func decodeInt(d *decoder) (Tag, error) {
	v, err := d.r.ReadInt32()
	return Int(v), err
}

func decodeLong(d *decoder) (Tag, error) {
	v, err := d.r.ReadInt64()
	return Long(v), err
}

func decodeFloat(d *decoder) (Tag, error) {
	v, err := d.r.ReadFloat32()
	return Float(v), err
}

func decodeDouble(d *decoder) (Tag, error) {
	v, err := d.r.ReadFloat64()
	return Double(v), err
}

func decodeByteArray(d *decoder) (Tag, error) {
	v, err := d.r.ReadByteArray(d.opts.MaxArrayLen)
	if err != nil {
		return nil, err
	}
	return ByteArray(v), nil
}

func decodeString(d *decoder) (Tag, error) {
	v, err := d.r.ReadString()
	return String(v), err
}

func encodeByte(e *encoder, t Tag) error   { return e.w.WriteInt8(int8(t.(Byte))) }
func encodeShort(e *encoder, t Tag) error  { return e.w.WriteInt16(int16(t.(Short))) }
func encodeInt(e *encoder, t Tag) error    { return e.w.WriteInt32(int32(t.(Int))) }
func encodeLong(e *encoder, t Tag) error   { return e.w.WriteInt64(int64(t.(Long))) }
func encodeFloat(e *encoder, t Tag) error  { return e.w.WriteFloat32(float32(t.(Float))) }
func encodeDouble(e *encoder, t Tag) error { return e.w.WriteFloat64(float64(t.(Double))) }

func encodeByteArray(e *encoder, t Tag) error {
	return e.w.WriteByteArray(t.(ByteArray))
}

func encodeString(e *encoder, t Tag) error {
	return e.w.WriteString(string(t.(String)))
}

// Containers.

// listPrealloc caps the capacity reserved from an untrusted element count.
const listPrealloc = 1024

func decodeList(d *decoder) (Tag, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	id, err := d.r.ReadUint8()
	if err != nil {
		return nil, err
	}
	elem := Kind(id)
	if !elem.Valid() && elem != KindEnd {
		return nil, unknownKind(elem)
	}
	n, err := d.r.ReadLength()
	if err != nil {
		return nil, err
	}
	if elem == KindEnd {
		// Legacy writers declare empty lists with the End kind.
		if n == 0 && d.opts.AllowEndList {
			return &List{elem: KindEnd}, nil
		}
		return nil, unknownKind(elem)
	}
	entry, err := d.reg.lookup(elem)
	if err != nil {
		return nil, err
	}

	items := make([]Tag, 0, min(n, listPrealloc))
	for i := 0; i < n; i++ {
		d.push(segment{index: i})
		t, err := entry.decode(d)
		if err != nil {
			return nil, d.fail(err)
		}
		d.pop()
		items = append(items, t)
	}
	return &List{elem: elem, items: items}, nil
}

func encodeList(e *encoder, t Tag) error {
	l := t.(*List)
	if l == nil {
		return fmt.Errorf("%w: nil list", ErrTypeMismatch)
	}
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if err := e.w.WriteUint8(uint8(l.elem)); err != nil {
		return err
	}
	if err := e.w.WriteLength(len(l.items)); err != nil {
		return err
	}
	if len(l.items) == 0 {
		return nil
	}
	entry, err := e.reg.lookup(l.elem)
	if err != nil {
		return err
	}
	for i, item := range l.items {
		e.push(segment{index: i})
		if err := entry.encode(e, item); err != nil {
			return e.fail(err)
		}
		e.pop()
	}
	return nil
}

func decodeCompound(d *decoder) (Tag, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	c := NewCompound()
	for {
		id, err := d.r.ReadUint8()
		if err != nil {
			return nil, err
		}
		kind := Kind(id)
		if kind == KindEnd {
			return c, nil
		}
		name, err := d.r.ReadString()
		if err != nil {
			return nil, err
		}
		entry, err := d.reg.lookup(kind)
		if err != nil {
			return nil, err
		}

		d.push(segment{name: name, index: -1})
		t, err := entry.decode(d)
		if err == nil {
			err = c.Append(name, t)
		}
		if err != nil {
			return nil, d.fail(err)
		}
		d.pop()
	}
}

func encodeCompound(e *encoder, t Tag) error {
	c := t.(*Compound)
	if c == nil {
		return fmt.Errorf("%w: nil compound", ErrTypeMismatch)
	}
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	for _, m := range c.members {
		e.push(segment{name: m.name, index: -1})
		if err := e.member(m.name, m.tag); err != nil {
			return e.fail(err)
		}
		e.pop()
	}
	return e.w.WriteUint8(uint8(KindEnd))
}
