package nbt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kitlaan/NBT/internal/wire"
)

// Errors reported by decoding, encoding and tree accessors. Failures are
// returned wrapped, so test for them with errors.Is.
var (
	ErrFormat          = wire.ErrFormat
	ErrTruncatedInput  = wire.ErrTruncated
	ErrInvalidEncoding = wire.ErrInvalidEncoding
	ErrStringTooLong   = wire.ErrStringTooLong
	ErrTooLarge        = wire.ErrTooLarge

	ErrUnknownTagType  = errors.New("nbt: unknown tag type")
	ErrTypeMismatch    = errors.New("nbt: tag type mismatch")
	ErrDuplicateKey    = errors.New("nbt: duplicate key")
	ErrKeyNotFound     = errors.New("nbt: key not found")
	ErrIndexOutOfRange = errors.New("nbt: index out of range")
	ErrNestingTooDeep  = errors.New("nbt: nesting too deep")
)

// DecodeError locates a decoding failure in the tree and the stream.
type DecodeError struct {
	Path   string // e.g. "Level.Sections[3].Blocks"; empty for the root
	Offset int64  // bytes consumed when the failure was detected
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("nbt: decode %s at offset %d: %v", displayPath(e.Path), e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError locates an encoding failure in the tree.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("nbt: encode %s: %v", displayPath(e.Path), e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

func displayPath(p string) string {
	if p == "" {
		return "<root>"
	}
	return p
}

// segment is one step from a container to a child.
type segment struct {
	name  string
	index int // -1 for compound members
}

type tagPath []segment

func (p tagPath) String() string {
	var b strings.Builder
	for i, s := range p {
		if s.index >= 0 {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.name)
	}
	return b.String()
}

func unknownKind(k Kind) error {
	return fmt.Errorf("%w: 0x%02x", ErrUnknownTagType, uint8(k))
}

func indexError(i, n int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, n)
}
