package wire

import "errors"

var (
	ErrFormat          = errors.New("nbt: malformed input")
	ErrTruncated       = errors.New("nbt: truncated input")
	ErrInvalidEncoding = errors.New("nbt: invalid utf8 string")
	ErrStringTooLong   = errors.New("nbt: string too long")
	ErrTooLarge        = errors.New("nbt: payload too large")
)
