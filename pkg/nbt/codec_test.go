package nbt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSingleByteDocument(t *testing.T) {
	doc := NewDocument("")
	require.NoError(t, doc.Root.Append("x", Byte(10)))

	data, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0A, 0x00, 0x00, 0x01, 0x00, 0x01, 'x', 0x0A, 0x00}, data)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, doc.Equal(decoded))
}

func TestEncodeShortListPayload(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(DefaultOptions())
	require.NoError(t, codec.EncodeTag(MustList(KindShort, Short(1), Short(2)), &buf))
	assert.Equal(t, []byte{0x02, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01, 0x00, 0x02}, buf.Bytes())

	tag, err := codec.DecodeTag(KindList, &buf)
	require.NoError(t, err)
	list := tag.(*List)
	assert.Equal(t, KindShort, list.ElemKind())
	assert.Equal(t, []Tag{Short(1), Short(2)}, list.Items())
}

func TestDecodeRootNotCompound(t *testing.T) {
	doc, err := Unmarshal([]byte{0x05, 0x00, 0x00, 0x3F, 0x80, 0x00, 0x00})
	assert.Nil(t, doc)
	require.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "root record is not a Compound")
}

func TestDecodeUnknownMemberType(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x0B, 0x00, 0x01, 'x', 0x00, 0x00, 0x00, 0x00, 0x00}
	doc, err := Unmarshal(data)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrUnknownTagType)
}

func TestDecodeMemberNameBeforeKindCheck(t *testing.T) {
	// The member name is read before the kind is looked up, so input cut
	// off after an unknown kind byte is reported as truncated.
	_, err := Unmarshal([]byte{0x0A, 0x00, 0x00, 0x0B})
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.NotErrorIs(t, err, ErrUnknownTagType)

	_, err = Unmarshal([]byte{0x0A, 0x00, 0x00, 0x0B, 0x00, 0x01, 'x'})
	assert.ErrorIs(t, err, ErrUnknownTagType)
}

func TestDecodeEndWhereValueExpected(t *testing.T) {
	// A list may not declare End as its element kind by default.
	data := []byte{
		0x0A, 0x00, 0x00,
		0x09, 0x00, 0x01, 'l', 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00,
	}
	_, err := Unmarshal(data)
	require.ErrorIs(t, err, ErrUnknownTagType)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "l", de.Path)
}

func TestDecodeEndListWhenAllowed(t *testing.T) {
	data := []byte{
		0x0A, 0x00, 0x00,
		0x09, 0x00, 0x01, 'l', 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00,
	}
	codec := NewCodec(Options{AllowEndList: true})
	doc, err := codec.DecodeDocument(bytes.NewReader(data))
	require.NoError(t, err)

	l, err := As[*List](doc.Root, "l")
	require.NoError(t, err)
	assert.Equal(t, KindEnd, l.ElemKind())
	assert.Zero(t, l.Len())

	var out bytes.Buffer
	require.NoError(t, codec.EncodeDocument(doc, &out))
	assert.Equal(t, data, out.Bytes())

	// A non-empty End list is never valid.
	bad := []byte{
		0x0A, 0x00, 0x00,
		0x09, 0x00, 0x01, 'l', 0x00, 0x00, 0x00, 0x00, 0x01,
		0x00,
	}
	_, err = codec.DecodeDocument(bytes.NewReader(bad))
	assert.ErrorIs(t, err, ErrUnknownTagType)
}

func TestDecodeDuplicateKey(t *testing.T) {
	data := []byte{
		0x0A, 0x00, 0x00,
		0x01, 0x00, 0x01, 'a', 0x01,
		0x01, 0x00, 0x01, 'a', 0x02,
		0x00,
	}
	_, err := Unmarshal(data)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestDecodeNegativeLengths(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"byte array", []byte{0x0A, 0x00, 0x00, 0x07, 0x00, 0x01, 'a', 0xFF, 0xFF, 0xFF, 0xFF, 0x00}},
		{"list", []byte{0x0A, 0x00, 0x00, 0x09, 0x00, 0x01, 'a', 0x01, 0x80, 0x00, 0x00, 0x00, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.data)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	full, err := Marshal(sampleDocument(t))
	require.NoError(t, err)

	// Every strict prefix of a valid document must fail as truncated and
	// never yield a partial document.
	for n := 0; n < len(full); n += 7 {
		doc, err := Unmarshal(full[:n])
		require.Nil(t, doc, "prefix %d", n)
		require.ErrorIs(t, err, ErrTruncatedInput, "prefix %d", n)
	}
}

func TestDecodeInvalidUTF8Name(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x01, 0x00, 0x01, 0xFF, 0x01, 0x00}
	_, err := Unmarshal(data)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestDecodeErrorPath(t *testing.T) {
	// Level.items[1] holds a compound with an unknown member kind.
	data := []byte{
		0x0A, 0x00, 0x00,
		0x0A, 0x00, 0x05, 'L', 'e', 'v', 'e', 'l',
		0x09, 0x00, 0x05, 'i', 't', 'e', 'm', 's', 0x0A, 0x00, 0x00, 0x00, 0x02,
		0x00,
		0x0C, 0x00, 0x01, 'z',
	}
	_, err := Unmarshal(data)
	require.ErrorIs(t, err, ErrUnknownTagType)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Level.items[1]", de.Path)
	assert.Equal(t, int64(len(data)), de.Offset)
}

func TestDecodeNestingLimit(t *testing.T) {
	codec := NewCodec(Options{MaxDepth: 8})

	var buf bytes.Buffer
	require.NoError(t, NewCodec(DefaultOptions()).EncodeDocument(nestedCompounds(8), &buf))
	_, err := codec.DecodeDocument(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, NewCodec(DefaultOptions()).EncodeDocument(nestedCompounds(9), &buf))
	_, err = codec.DecodeDocument(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrNestingTooDeep)
}

func TestDecodeDeepListsHitLimit(t *testing.T) {
	// Thousands of nested list headers must fail cleanly, not exhaust the
	// stack.
	data := []byte{0x0A, 0x00, 0x00, 0x09, 0x00, 0x00}
	for i := 0; i < 10000; i++ {
		data = append(data, 0x09, 0x00, 0x00, 0x00, 0x01)
	}
	_, err := Unmarshal(data)
	assert.ErrorIs(t, err, ErrNestingTooDeep)
}

func TestEncodeNestingLimit(t *testing.T) {
	codec := NewCodec(Options{MaxDepth: 4})
	err := codec.EncodeDocument(nestedCompounds(5), &bytes.Buffer{})
	require.ErrorIs(t, err, ErrNestingTooDeep)

	var ee *EncodeError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "c.c.c.c", ee.Path)
}

func TestEncodeSelfReferenceFails(t *testing.T) {
	doc := NewDocument("loop")
	require.NoError(t, doc.Root.Append("self", doc.Root))
	_, err := Marshal(doc)
	assert.ErrorIs(t, err, ErrNestingTooDeep)
}

func TestEncodeStringTooLong(t *testing.T) {
	doc := NewDocument("")
	require.NoError(t, doc.Root.Append("s", String(bytes.Repeat([]byte{'a'}, 70000))))
	_, err := Marshal(doc)
	require.ErrorIs(t, err, ErrStringTooLong)

	var ee *EncodeError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "s", ee.Path)
}

func TestRoundTrip(t *testing.T) {
	doc := sampleDocument(t)

	data, err := Marshal(doc)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, doc.Equal(decoded))
	assert.Equal(t, doc.Root.Keys(), decoded.Root.Keys())
}

func TestCanonicalBytesIdempotent(t *testing.T) {
	data, err := Marshal(sampleDocument(t))
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	again, err := Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestByteArrayLimit(t *testing.T) {
	doc := NewDocument("")
	require.NoError(t, doc.Root.Append("blob", make(ByteArray, 2048)))
	data, err := Marshal(doc)
	require.NoError(t, err)

	_, err = NewCodec(Options{MaxArrayLen: 1024}).DecodeDocument(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDocumentReadWrite(t *testing.T) {
	doc := sampleDocument(t)
	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	var got Document
	read, err := got.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, n, read)
	assert.True(t, doc.Equal(&got))
}

func TestDocumentReadFromFailureLeavesReceiver(t *testing.T) {
	doc := NewDocument("keep")
	require.NoError(t, doc.Root.Append("a", Int(1)))

	_, err := doc.ReadFrom(bytes.NewReader([]byte{0x0A, 0x00, 0x00, 0x03, 0x00, 0x01, 'b', 0x00}))
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.Equal(t, "keep", doc.Name)
	assert.Equal(t, []string{"a"}, doc.Root.Keys())
}

func TestEncodeNilRoot(t *testing.T) {
	data, err := Marshal(&Document{Name: "n"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0A, 0x00, 0x01, 'n', 0x00}, data)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for k := KindByte; k <= KindCompound; k++ {
		assert.True(t, r.Supports(k), k.String())
	}
	assert.False(t, r.Supports(KindEnd))
	assert.False(t, r.Supports(Kind(11)))
	assert.False(t, r.Supports(Kind(0xFF)))

	_, err := NewCodec(DefaultOptions()).DecodeTag(Kind(11), bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnknownTagType)
}
