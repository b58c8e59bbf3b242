// Package pretty renders a tag tree as indented, human-readable text:
//
//	TAG_Compound("hello world"): 1 Entries
//	{
//		TAG_String("name"): Bananrama
//	}
package pretty

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kitlaan/NBT/pkg/nbt"
)

// Options controls rendering.
type Options struct {
	// Color wraps kinds, names and values in ANSI colours.
	Color bool
	// Indent is repeated once per nesting level. Empty means a tab.
	Indent string
}

// FprintDocument writes the tree of doc to w.
func FprintDocument(w io.Writer, doc *nbt.Document, opts Options) error {
	root := doc.Root
	if root == nil {
		root = nbt.NewCompound()
	}
	return Fprint(w, doc.Name, root, opts)
}

// Fprint writes t, labelled with name, and its subtree to w. An empty name
// prints no label, as for list elements.
func Fprint(w io.Writer, name string, t nbt.Tag, opts Options) error {
	p := &printer{w: w, pal: newPalette(opts.Color), indent: opts.Indent}
	if p.indent == "" {
		p.indent = "\t"
	}
	p.tag(0, name, t)
	return p.err
}

// Sprint returns the uncoloured rendering of t.
func Sprint(name string, t nbt.Tag) string {
	var b strings.Builder
	_ = Fprint(&b, name, t, Options{})
	return b.String()
}

type printer struct {
	w      io.Writer
	pal    *palette
	indent string
	err    error
}

func (p *printer) line(level int, s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(p.indent, level), s)
}

func (p *printer) tag(level int, name string, t nbt.Tag) {
	head := p.pal.kind(t.Kind().String())
	if name != "" {
		head += "(" + p.pal.name(strconv.Quote(name)) + ")"
	}
	p.line(level, head+": "+summary(t, p.pal))

	switch v := t.(type) {
	case *nbt.List:
		if v.Len() == 0 {
			return
		}
		p.line(level, p.pal.brace("{"))
		for _, item := range v.All() {
			p.tag(level+1, "", item)
		}
		p.line(level, p.pal.brace("}"))
	case *nbt.Compound:
		if v.Len() == 0 {
			return
		}
		p.line(level, p.pal.brace("{"))
		for n, item := range v.All() {
			p.tag(level+1, n, item)
		}
		p.line(level, p.pal.brace("}"))
	}
}

// summary is the text after the colon on a tag's line.
func summary(t nbt.Tag, pal *palette) string {
	switch v := t.(type) {
	case *nbt.Compound:
		return pal.summary(fmt.Sprintf("%d Entries", v.Len()))
	case *nbt.List:
		return pal.summary(fmt.Sprintf("%d entries of type %s", v.Len(), v.ElemKind()))
	case nbt.ByteArray:
		return pal.summary(fmt.Sprintf("[%d bytes]", len(v)))
	case nbt.String:
		return pal.value(string(v))
	case nbt.Float:
		return pal.value(strconv.FormatFloat(float64(v), 'g', -1, 32))
	case nbt.Double:
		return pal.value(strconv.FormatFloat(float64(v), 'g', -1, 64))
	default:
		return pal.value(fmt.Sprint(t))
	}
}
