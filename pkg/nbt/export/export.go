// Package export converts tag trees to generic data formats for inspection
// and interop. Compounds become maps that keep their insertion order; lists
// become arrays; numbers keep their width. The conversion is one-way: kind
// information that the target format cannot express (Byte vs Int, Float vs
// Double) is not recoverable.
package export

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"

	"github.com/kitlaan/NBT/pkg/nbt"
)

// Format names an output encoding.
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	CBOR     Format = "cbor"
	CBORDiag Format = "cbor-diag" // RFC 8949 diagnostic notation of the CBOR form
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{JSON, YAML, CBOR, CBORDiag}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format: %q", name)
}

// Field is one member of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is an ordered map.
type Object []Field

// Value converts t to plain Go values: int8..int64, float32, float64,
// []byte, string, []any and Object.
func Value(t nbt.Tag) any {
	switch v := t.(type) {
	case nbt.Byte:
		return int8(v)
	case nbt.Short:
		return int16(v)
	case nbt.Int:
		return int32(v)
	case nbt.Long:
		return int64(v)
	case nbt.Float:
		return float32(v)
	case nbt.Double:
		return float64(v)
	case nbt.ByteArray:
		return []byte(v)
	case nbt.String:
		return string(v)
	case *nbt.List:
		out := make([]any, 0, v.Len())
		for _, item := range v.All() {
			out = append(out, Value(item))
		}
		return out
	case *nbt.Compound:
		out := make(Object, 0, v.Len())
		for name, item := range v.All() {
			out = append(out, Field{Key: name, Value: Value(item)})
		}
		return out
	default:
		return nil
	}
}

// DocumentValue wraps the root compound in a one-field Object keyed by the
// document name.
func DocumentValue(doc *nbt.Document) Object {
	root := doc.Root
	if root == nil {
		root = nbt.NewCompound()
	}
	return Object{{Key: doc.Name, Value: Value(root)}}
}

// Write encodes doc to w in format f.
func Write(w io.Writer, doc *nbt.Document, f Format) error {
	v := DocumentValue(doc)
	var (
		out []byte
		err error
	)
	switch f {
	case JSON:
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	case YAML:
		out, err = yaml.Marshal(toYAML(v))
	case CBOR:
		out, err = cbor.Marshal(v)
	case CBORDiag:
		var raw []byte
		if raw, err = cbor.Marshal(v); err == nil {
			var diag string
			diag, err = cbor.Diagnose(raw)
			out = []byte(diag + "\n")
		}
	default:
		return fmt.Errorf("unknown export format: %q", f)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}
	_, err = w.Write(out)
	return err
}

// MarshalJSON writes the fields in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(toJSON(f.Value))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// toJSON spells non-finite floats as "NaN", "Infinity" and "-Infinity",
// which JSON numbers cannot express. Objects convert their own fields.
func toJSON(v any) any {
	switch x := v.(type) {
	case float32:
		return jsonFloat(float64(x), x)
	case float64:
		return jsonFloat(x, x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = toJSON(item)
		}
		return out
	default:
		return v
	}
}

func jsonFloat(f float64, orig any) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return orig
	}
}

// MarshalCBOR writes a definite-length map with the fields in order.
func (o Object) MarshalCBOR() ([]byte, error) {
	buf := cborHead(5, uint64(len(o)))
	for _, f := range o {
		key, err := cbor.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := cbor.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf = append(buf, key...)
		buf = append(buf, val...)
	}
	return buf, nil
}

// cborHead encodes a major type and argument (RFC 8949 §3).
func cborHead(major byte, n uint64) []byte {
	m := major << 5
	switch {
	case n < 24:
		return []byte{m | byte(n)}
	case n <= math.MaxUint8:
		return []byte{m | 24, byte(n)}
	case n <= math.MaxUint16:
		return binary.BigEndian.AppendUint16([]byte{m | 25}, uint16(n))
	case n <= math.MaxUint32:
		return binary.BigEndian.AppendUint32([]byte{m | 26}, uint32(n))
	default:
		return binary.BigEndian.AppendUint64([]byte{m | 27}, n)
	}
}

// toYAML rewrites Objects as yaml.MapSlice and byte arrays as base64 text.
func toYAML(v any) any {
	switch x := v.(type) {
	case Object:
		out := make(yaml.MapSlice, 0, len(x))
		for _, f := range x {
			out = append(out, yaml.MapItem{Key: f.Key, Value: toYAML(f.Value)})
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = toYAML(item)
		}
		return out
	case []byte:
		return base64.StdEncoding.EncodeToString(x)
	default:
		return v
	}
}
