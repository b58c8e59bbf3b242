package nbt

import "io"

// Document is the root of a stream: a named Compound.
type Document struct {
	Name string
	Root *Compound
}

// NewDocument returns a document with an empty root compound.
func NewDocument(name string) *Document {
	return &Document{Name: name, Root: NewCompound()}
}

// ReadFrom replaces d with the document decoded from r using DefaultOptions.
// d is only modified when decoding succeeds.
func (d *Document) ReadFrom(r io.Reader) (int64, error) {
	doc, n, err := defaultCodec.decodeDocument(r)
	if err != nil {
		return n, err
	}
	*d = *doc
	return n, nil
}

// WriteTo encodes d to w using DefaultOptions.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return defaultCodec.encodeDocument(d, w)
}

// Equal reports whether d and o have the same name and structurally equal
// roots.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Name != o.Name {
		return false
	}
	a, b := d.Root, o.Root
	if a == nil {
		a = &Compound{}
	}
	if b == nil {
		b = &Compound{}
	}
	return a.Equal(b)
}
