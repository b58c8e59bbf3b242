package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Reader decodes primitives from an underlying io.Reader. It keeps track of
// bytes consumed and the first error encountered.
type Reader struct {
	r         io.Reader
	bytesRead int64
	err       error
	buf       [8]byte
}

// NewReader creates a Reader over r. The stream must already be
// decompressed.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Error returns the first error that occurred during reading, if any.
func (r *Reader) Error() error {
	return r.err
}

// BytesRead returns the number of bytes consumed from the underlying reader.
func (r *Reader) BytesRead() int64 {
	return r.bytesRead
}

// recordError keeps the first error and returns the sticky one.
func (r *Reader) recordError(err error) error {
	if r.err == nil && err != nil {
		r.err = err
	}
	return r.err
}

// truncated converts short-read errors from io.ReadFull into ErrTruncated.
func truncated(err error, want, got int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrTruncated, want, got)
	}
	return err
}

// fill reads exactly n (<= 8) bytes into the scratch buffer.
func (r *Reader) fill(n int) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	p := r.buf[:n]
	got, err := io.ReadFull(r.r, p)
	r.bytesRead += int64(got)
	if err != nil {
		return nil, r.recordError(truncated(err, n, got))
	}
	return p, nil
}

// ReadUint8 reads one unsigned byte. Used for kind ids.
func (r *Reader) ReadUint8() (uint8, error) {
	p, err := r.fill(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// ReadInt8 reads one two's-complement byte.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	p, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

// ReadInt16 reads a big-endian int16.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a big-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	p, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(p)), nil
}

// ReadInt64 reads a big-endian int64.
func (r *Reader) ReadInt64() (int64, error) {
	p, err := r.fill(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(p)), nil
}

// ReadFloat32 reads an IEEE-754 single. NaN and infinities are returned
// as-is.
func (r *Reader) ReadFloat32() (float32, error) {
	p, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(p)), nil
}

// ReadFloat64 reads an IEEE-754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	p, err := r.fill(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(p)), nil
}

// ReadLength reads an int32 element count and rejects negative values.
func (r *Reader) ReadLength() (int, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, r.recordError(fmt.Errorf("%w: negative length %d", ErrFormat, n))
	}
	return int(n), nil
}

// ReadString reads a uint16 length followed by that many bytes of UTF-8.
// A zero length yields the empty string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	data := make([]byte, n)
	got, err := io.ReadFull(r.r, data)
	r.bytesRead += int64(got)
	if err != nil {
		return "", r.recordError(truncated(err, int(n), got))
	}
	if !utf8.Valid(data) {
		return "", r.recordError(ErrInvalidEncoding)
	}
	return string(data), nil
}

// ReadByteArray reads an int32 count followed by that many raw bytes. Counts
// above limit fail with ErrTooLarge before anything is allocated; a limit
// <= 0 means MaxArrayLen. The buffer grows as data arrives so a lying count
// on a short stream does not allocate the full amount.
func (r *Reader) ReadByteArray(limit int) ([]byte, error) {
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = MaxArrayLen
	}
	if n > limit {
		return nil, r.recordError(fmt.Errorf("%w: byte array of %d bytes exceeds limit %d", ErrTooLarge, n, limit))
	}
	data, err := io.ReadAll(io.LimitReader(r.r, int64(n)))
	r.bytesRead += int64(len(data))
	if err != nil {
		return nil, r.recordError(err)
	}
	if len(data) < n {
		return nil, r.recordError(truncated(io.ErrUnexpectedEOF, n, len(data)))
	}
	return data, nil
}
