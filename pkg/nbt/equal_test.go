package nbt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Tag
		want bool
	}{
		{"same byte", Byte(1), Byte(1), true},
		{"different kind same number", Byte(1), Short(1), false},
		{"nan float", Float(float32(math.NaN())), Float(float32(math.NaN())), true},
		{"signed zero", Double(0), Double(math.Copysign(0, -1)), false},
		{"byte arrays", ByteArray{1, 2}, ByteArray{1, 2}, true},
		{"nil vs empty byte array", ByteArray(nil), ByteArray{}, true},
		{"strings", String("a"), String("b"), false},
		{"list kinds differ when empty", MustList(KindInt), MustList(KindLong), false},
		{"lists", MustList(KindInt, Int(1)), MustList(KindInt, Int(1)), true},
		{"nil tags", nil, nil, true},
		{"nil vs value", nil, Int(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestCompoundEqualIsOrderSensitive(t *testing.T) {
	a := NewCompound()
	require.NoError(t, a.Append("x", Int(1)))
	require.NoError(t, a.Append("y", Int(2)))

	b := NewCompound()
	require.NoError(t, b.Append("y", Int(2)))
	require.NoError(t, b.Append("x", Int(1)))

	assert.False(t, Equal(a, b))
	require.NoError(t, b.Delete("y"))
	require.NoError(t, b.Append("y", Int(2)))
	assert.True(t, Equal(a, b))
}

func TestClone(t *testing.T) {
	doc := sampleDocument(t)
	cloned, err := Clone(doc.Root)
	require.NoError(t, err)
	clone := cloned.(*Compound)
	assert.True(t, Equal(doc.Root, clone))

	arr, err := As[ByteArray](clone, "byteArrayTest")
	require.NoError(t, err)
	arr[0] ^= 0xFF
	assert.False(t, Equal(doc.Root, clone))

	require.NoError(t, clone.Set("byteArrayTest", Int(0)))
	orig, err := As[ByteArray](doc.Root, "byteArrayTest")
	require.NoError(t, err)
	assert.Len(t, orig, 1000)
}

func TestSelfContainingTrees(t *testing.T) {
	loop := NewDocument("loop")
	require.NoError(t, loop.Root.Append("self", loop.Root))
	other := NewDocument("loop")
	require.NoError(t, other.Root.Append("self", other.Root))

	assert.True(t, loop.Equal(loop))
	assert.False(t, loop.Equal(other))

	_, err := Clone(loop.Root)
	assert.ErrorIs(t, err, ErrNestingTooDeep)

	l := MustList(KindList)
	require.NoError(t, l.Append(l))
	_, err = Clone(l)
	assert.ErrorIs(t, err, ErrNestingTooDeep)
	assert.False(t, Equal(l, MustList(KindList, MustList(KindList))))

	// A subtree shared by two members is not a cycle.
	shared := NewCompound()
	require.NoError(t, shared.Append("x", Int(1)))
	twice := NewCompound()
	require.NoError(t, twice.Append("a", shared))
	require.NoError(t, twice.Append("b", shared))
	cloned, err := Clone(twice)
	require.NoError(t, err)
	assert.True(t, Equal(twice, cloned))
}

func TestDocumentEqual(t *testing.T) {
	a := NewDocument("a")
	assert.True(t, a.Equal(&Document{Name: "a"}))
	assert.False(t, a.Equal(NewDocument("b")))
	assert.False(t, a.Equal(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "TAG_Byte_Array", KindByteArray.String())
	assert.Equal(t, "TAG_Compound", KindCompound.String())
	assert.Equal(t, "TAG_Unknown(0x0b)", Kind(11).String())
	assert.True(t, KindList.Valid())
	assert.False(t, KindEnd.Valid())
}
