package nbt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleDocument builds a tree touching every kind, nested lists of
// compounds, lists of lists, and an empty list.
func sampleDocument(t *testing.T) *Document {
	t.Helper()

	doc := NewDocument("Level")
	root := doc.Root

	require.NoError(t, root.Append("byteTest", Byte(127)))
	require.NoError(t, root.Append("shortTest", Short(32767)))
	require.NoError(t, root.Append("intTest", Int(2147483647)))
	require.NoError(t, root.Append("longTest", Long(9223372036854775807)))
	require.NoError(t, root.Append("floatTest", Float(0.49823147)))
	require.NoError(t, root.Append("doubleTest", Double(0.4931287132182315)))
	require.NoError(t, root.Append("nanTest", Double(math.NaN())))
	require.NoError(t, root.Append("stringTest", String("HELLO WORLD THIS IS A TEST STRING ÅÄÖ!")))
	require.NoError(t, root.Append("emptyString", String("")))

	arr := make(ByteArray, 1000)
	for n := range arr {
		arr[n] = byte((n*n*255 + n*7) % 100)
	}
	require.NoError(t, root.Append("byteArrayTest", arr))

	longs := MustList(KindLong, Long(11), Long(12), Long(13), Long(14), Long(15))
	require.NoError(t, root.Append("listTest (long)", longs))

	egg := NewCompound()
	require.NoError(t, egg.Append("name", String("Eggbert")))
	require.NoError(t, egg.Append("value", Float(0.5)))
	ham := NewCompound()
	require.NoError(t, ham.Append("name", String("Hampus")))
	require.NoError(t, ham.Append("value", Float(0.75)))
	nested := NewCompound()
	require.NoError(t, nested.Append("egg", egg))
	require.NoError(t, nested.Append("ham", ham))
	require.NoError(t, root.Append("nested compound test", nested))

	compounds := MustList(KindCompound)
	for i := 0; i < 2; i++ {
		c := NewCompound()
		require.NoError(t, c.Append("created-on", Long(1264099775885)))
		require.NoError(t, c.Append("name", String("Compound tag #"+string(rune('0'+i)))))
		require.NoError(t, compounds.Append(c))
	}
	require.NoError(t, root.Append("listTest (compound)", compounds))

	lists := MustList(KindList,
		MustList(KindShort, Short(1), Short(2)),
		MustList(KindString),
	)
	require.NoError(t, root.Append("listOfLists", lists))
	require.NoError(t, root.Append("emptyList", MustList(KindInt)))

	return doc
}

// nestedCompounds returns a document whose root holds depth-1 compounds
// chained under the name "c".
func nestedCompounds(depth int) *Document {
	doc := NewDocument("")
	cur := doc.Root
	for i := 1; i < depth; i++ {
		next := NewCompound()
		_ = cur.Append("c", next)
		cur = next
	}
	return doc
}
