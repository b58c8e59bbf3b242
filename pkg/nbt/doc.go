// Package nbt reads and writes the named binary tag format: a tree of
// typed, named nodes serialized big-endian with a one-byte kind id in front
// of every member.
//
// A stream holds one Document: the Compound kind id, the root name, and the
// root Compound's members terminated by an End byte. The package works on
// plain bytes; compression is left to the caller (see package nbtio).
//
//	doc := nbt.NewDocument("hello world")
//	_ = doc.Root.Set("name", nbt.String("Bananrama"))
//	data, err := nbt.Marshal(doc)
//
// Tag values are a closed set of types: Byte, Short, Int, Long, Float,
// Double, ByteArray, String, *List and *Compound. Compounds keep their keys
// in insertion order and re-serialize in that order; Lists hold elements of
// a single declared kind.
//
// A Codec is immutable and may be shared between goroutines. Tag trees are
// not synchronized; callers that share one must lock around it.
package nbt
