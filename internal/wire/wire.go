// Package wire implements the fixed-width primitives of the named binary tag
// format: big-endian scalars, uint16-prefixed UTF-8 strings and
// int32-prefixed byte arrays.
//
// Reader and Writer wrap a sequential stream and remember the first error
// they hit; every later call returns that error without touching the
// stream.
package wire

import "math"

const (
	// MaxStringLen is the largest encoded string body, bounded by the
	// uint16 length prefix.
	MaxStringLen = math.MaxUint16

	// MaxArrayLen is the largest byte array the int32 count can describe.
	MaxArrayLen = math.MaxInt32
)
