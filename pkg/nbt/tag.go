package nbt

// Tag is a node of the tree. The set of implementations is closed: only the
// types in this package satisfy it.
type Tag interface {
	// Kind returns the wire kind id of the value.
	Kind() Kind

	isTag()
}

type (
	// Byte is a signed 8-bit integer.
	Byte int8
	// Short is a signed 16-bit integer.
	Short int16
	// Int is a signed 32-bit integer.
	Int int32
	// Long is a signed 64-bit integer.
	Long int64
	// Float is an IEEE-754 single.
	Float float32
	// Double is an IEEE-754 double.
	Double float64
	// ByteArray is a length-prefixed run of raw bytes.
	ByteArray []byte
	// String is UTF-8 text of at most 65535 encoded bytes. The empty string
	// is an ordinary value.
	String string
)

func (Byte) Kind() Kind      { return KindByte }
func (Short) Kind() Kind     { return KindShort }
func (Int) Kind() Kind       { return KindInt }
func (Long) Kind() Kind      { return KindLong }
func (Float) Kind() Kind     { return KindFloat }
func (Double) Kind() Kind    { return KindDouble }
func (ByteArray) Kind() Kind { return KindByteArray }
func (String) Kind() Kind    { return KindString }
func (*List) Kind() Kind     { return KindList }
func (*Compound) Kind() Kind { return KindCompound }

func (Byte) isTag()      {}
func (Short) isTag()     {}
func (Int) isTag()       {}
func (Long) isTag()      {}
func (Float) isTag()     {}
func (Double) isTag()    {}
func (ByteArray) isTag() {}
func (String) isTag()    {}
func (*List) isTag()     {}
func (*Compound) isTag() {}

// isNil reports whether t is a nil interface or a nil container pointer.
func isNil(t Tag) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *List:
		return v == nil
	case *Compound:
		return v == nil
	}
	return false
}
