package nbt

import "fmt"

// Kind is the one-byte discriminator written in front of every tag. The
// values are part of the wire format and must never change.
type Kind uint8

const (
	KindEnd       Kind = 0x00 // compound terminator, never a value
	KindByte      Kind = 0x01
	KindShort     Kind = 0x02
	KindInt       Kind = 0x03
	KindLong      Kind = 0x04
	KindFloat     Kind = 0x05
	KindDouble    Kind = 0x06
	KindByteArray Kind = 0x07
	KindString    Kind = 0x08
	KindList      Kind = 0x09
	KindCompound  Kind = 0x0A

	numKinds = int(KindCompound) + 1
)

// Valid reports whether k identifies a value kind (1 through 10).
func (k Kind) Valid() bool {
	return k >= KindByte && k <= KindCompound
}

// String returns the conventional TAG_* name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "TAG_End"
	case KindByte:
		return "TAG_Byte"
	case KindShort:
		return "TAG_Short"
	case KindInt:
		return "TAG_Int"
	case KindLong:
		return "TAG_Long"
	case KindFloat:
		return "TAG_Float"
	case KindDouble:
		return "TAG_Double"
	case KindByteArray:
		return "TAG_Byte_Array"
	case KindString:
		return "TAG_String"
	case KindList:
		return "TAG_List"
	case KindCompound:
		return "TAG_Compound"
	default:
		return fmt.Sprintf("TAG_Unknown(0x%02x)", uint8(k))
	}
}
