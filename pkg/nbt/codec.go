package nbt

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/kitlaan/NBT/internal/wire"
)

const (
	// DefaultMaxDepth bounds container nesting, counting the root compound.
	DefaultMaxDepth = 512

	// DefaultMaxArrayLen bounds a single decoded byte array.
	DefaultMaxArrayLen = 16 << 20
)

// Options configures a Codec.
type Options struct {
	// MaxDepth is the deepest container nesting accepted on decode and
	// produced on encode. Values <= 0 select DefaultMaxDepth.
	MaxDepth int

	// MaxArrayLen is the largest byte array accepted on decode. Values <= 0
	// select DefaultMaxArrayLen.
	MaxArrayLen int

	// AllowEndList accepts empty lists whose declared element kind is End,
	// as written by some older producers. Such lists keep the End kind and
	// re-encode byte for byte.
	AllowEndList bool
}

// DefaultOptions returns the options used by the package-level helpers.
func DefaultOptions() Options {
	return Options{
		MaxDepth:    DefaultMaxDepth,
		MaxArrayLen: DefaultMaxArrayLen,
	}
}

func (o Options) normalize() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxArrayLen <= 0 {
		o.MaxArrayLen = DefaultMaxArrayLen
	}
	return o
}

// Codec decodes and encodes documents with a fixed Registry and Options.
type Codec struct {
	registry *Registry
	opts     Options
}

// NewCodec creates a Codec with its own Registry.
func NewCodec(opts Options) *Codec {
	return &Codec{registry: NewRegistry(), opts: opts.normalize()}
}

// Options returns the effective options.
func (c *Codec) Options() Options {
	return c.opts
}

// DecodeDocument reads one document from r. On failure it returns a nil
// document and an error wrapping one of the package's Err values.
func (c *Codec) DecodeDocument(r io.Reader) (*Document, error) {
	doc, _, err := c.decodeDocument(r)
	return doc, err
}

func (c *Codec) decodeDocument(r io.Reader) (*Document, int64, error) {
	d := c.newDecoder(r)
	id, err := d.r.ReadUint8()
	if err != nil {
		return nil, d.r.BytesRead(), d.fail(err)
	}
	if Kind(id) != KindCompound {
		err := fmt.Errorf("%w: root record is not a Compound (got %s)", ErrFormat, Kind(id))
		return nil, d.r.BytesRead(), d.fail(err)
	}
	name, err := d.r.ReadString()
	if err != nil {
		return nil, d.r.BytesRead(), d.fail(err)
	}
	root, err := decodeCompound(d)
	if err != nil {
		return nil, d.r.BytesRead(), d.fail(err)
	}
	return &Document{Name: name, Root: root.(*Compound)}, d.r.BytesRead(), nil
}

// EncodeDocument writes doc to w. A nil Root is written as an empty
// compound.
func (c *Codec) EncodeDocument(doc *Document, w io.Writer) error {
	_, err := c.encodeDocument(doc, w)
	return err
}

func (c *Codec) encodeDocument(doc *Document, w io.Writer) (int64, error) {
	e := c.newEncoder(w)
	root := doc.Root
	if root == nil {
		root = NewCompound()
	}
	e.w.WriteUint8(uint8(KindCompound))
	e.w.WriteString(doc.Name)
	if err := e.w.Error(); err != nil {
		return e.w.BytesWritten(), e.fail(err)
	}
	if err := encodeCompound(e, root); err != nil {
		return e.w.BytesWritten(), e.fail(err)
	}
	return e.w.BytesWritten(), nil
}

// DecodeTag reads a bare payload of the given kind, without kind id or
// name.
func (c *Codec) DecodeTag(kind Kind, r io.Reader) (Tag, error) {
	d := c.newDecoder(r)
	entry, err := c.registry.lookup(kind)
	if err != nil {
		return nil, d.fail(err)
	}
	t, err := entry.decode(d)
	if err != nil {
		return nil, d.fail(err)
	}
	return t, nil
}

// EncodeTag writes the bare payload of t, without kind id or name.
func (c *Codec) EncodeTag(t Tag, w io.Writer) error {
	e := c.newEncoder(w)
	if isNil(t) {
		return e.fail(fmt.Errorf("%w: nil tag", ErrTypeMismatch))
	}
	entry, err := c.registry.lookup(t.Kind())
	if err != nil {
		return e.fail(err)
	}
	if err := entry.encode(e, t); err != nil {
		return e.fail(err)
	}
	return nil
}

// decoder is the per-call state of one decode.
type decoder struct {
	r     *wire.Reader
	reg   *Registry
	opts  Options
	depth int
	path  tagPath
}

func (c *Codec) newDecoder(r io.Reader) *decoder {
	return &decoder{r: wire.NewReader(r), reg: c.registry, opts: c.opts}
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > d.opts.MaxDepth {
		return fmt.Errorf("%w: limit %d", ErrNestingTooDeep, d.opts.MaxDepth)
	}
	return nil
}

func (d *decoder) leave() { d.depth-- }

func (d *decoder) push(s segment) { d.path = append(d.path, s) }
func (d *decoder) pop()           { d.path = d.path[:len(d.path)-1] }

// fail attaches the current path and offset unless err already carries
// them from a deeper level.
func (d *decoder) fail(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Path: d.path.String(), Offset: d.r.BytesRead(), Err: err}
}

// encoder is the per-call state of one encode.
type encoder struct {
	w     *wire.Writer
	reg   *Registry
	opts  Options
	depth int
	path  tagPath
}

func (c *Codec) newEncoder(w io.Writer) *encoder {
	return &encoder{w: wire.NewWriter(w), reg: c.registry, opts: c.opts}
}

func (e *encoder) enter() error {
	e.depth++
	if e.depth > e.opts.MaxDepth {
		return fmt.Errorf("%w: limit %d", ErrNestingTooDeep, e.opts.MaxDepth)
	}
	return nil
}

func (e *encoder) leave() { e.depth-- }

func (e *encoder) push(s segment) { e.path = append(e.path, s) }
func (e *encoder) pop()           { e.path = e.path[:len(e.path)-1] }

func (e *encoder) fail(err error) error {
	var ee *EncodeError
	if errors.As(err, &ee) {
		return err
	}
	return &EncodeError{Path: e.path.String(), Err: err}
}

// member writes kind id, name and payload of one compound member.
func (e *encoder) member(name string, t Tag) error {
	if isNil(t) {
		return fmt.Errorf("%w: nil value", ErrTypeMismatch)
	}
	entry, err := e.reg.lookup(t.Kind())
	if err != nil {
		return err
	}
	if err := e.w.WriteUint8(uint8(t.Kind())); err != nil {
		return err
	}
	if err := e.w.WriteString(name); err != nil {
		return err
	}
	return entry.encode(e, t)
}

var defaultCodec = NewCodec(DefaultOptions())

// DecodeDocument reads one document from r with DefaultOptions.
func DecodeDocument(r io.Reader) (*Document, error) {
	return defaultCodec.DecodeDocument(r)
}

// EncodeDocument writes doc to w with DefaultOptions.
func EncodeDocument(doc *Document, w io.Writer) error {
	return defaultCodec.EncodeDocument(doc, w)
}

// Marshal encodes doc into a new byte slice.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := defaultCodec.EncodeDocument(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a document from data. Trailing bytes are ignored.
func Unmarshal(data []byte) (*Document, error) {
	return defaultCodec.DecodeDocument(bytes.NewReader(data))
}
