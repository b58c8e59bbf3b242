package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Writer encodes primitives onto an underlying io.Writer. Each method returns
// the sticky first error so callers can stop early or check once at the end.
type Writer struct {
	w            io.Writer
	err          error
	bytesWritten int64
	buf          [8]byte
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Error returns the first error that occurred during writing, if any.
func (w *Writer) Error() error {
	return w.err
}

// BytesWritten returns the number of bytes successfully written so far.
func (w *Writer) BytesWritten() int64 {
	return w.bytesWritten
}

func (w *Writer) recordError(err error) error {
	if w.err == nil && err != nil {
		w.err = err
	}
	return w.err
}

func (w *Writer) write(p []byte) error {
	if w.err != nil {
		return w.err
	}
	n, err := w.w.Write(p)
	w.bytesWritten += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return w.recordError(err)
}

// WriteUint8 writes one unsigned byte.
func (w *Writer) WriteUint8(v uint8) error {
	w.buf[0] = v
	return w.write(w.buf[:1])
}

// WriteInt8 writes one two's-complement byte.
func (w *Writer) WriteInt8(v int8) error {
	return w.WriteUint8(uint8(v))
}

// WriteUint16 writes a big-endian uint16.
func (w *Writer) WriteUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	return w.write(w.buf[:2])
}

// WriteInt16 writes a big-endian int16.
func (w *Writer) WriteInt16(v int16) error {
	return w.WriteUint16(uint16(v))
}

// WriteInt32 writes a big-endian int32.
func (w *Writer) WriteInt32(v int32) error {
	binary.BigEndian.PutUint32(w.buf[:4], uint32(v))
	return w.write(w.buf[:4])
}

// WriteInt64 writes a big-endian int64.
func (w *Writer) WriteInt64(v int64) error {
	binary.BigEndian.PutUint64(w.buf[:8], uint64(v))
	return w.write(w.buf[:8])
}

// WriteFloat32 writes the IEEE-754 bits of v.
func (w *Writer) WriteFloat32(v float32) error {
	binary.BigEndian.PutUint32(w.buf[:4], math.Float32bits(v))
	return w.write(w.buf[:4])
}

// WriteFloat64 writes the IEEE-754 bits of v.
func (w *Writer) WriteFloat64(v float64) error {
	binary.BigEndian.PutUint64(w.buf[:8], math.Float64bits(v))
	return w.write(w.buf[:8])
}

// WriteLength writes an int32 element count.
func (w *Writer) WriteLength(n int) error {
	if w.err != nil {
		return w.err
	}
	if n < 0 || n > MaxArrayLen {
		return w.recordError(fmt.Errorf("%w: %d elements do not fit an int32 count", ErrTooLarge, n))
	}
	return w.WriteInt32(int32(n))
}

// WriteString writes the uint16 byte length of s followed by its bytes.
func (w *Writer) WriteString(s string) error {
	if w.err != nil {
		return w.err
	}
	if len(s) > MaxStringLen {
		return w.recordError(fmt.Errorf("%w: %d bytes, max %d", ErrStringTooLong, len(s), MaxStringLen))
	}
	if !utf8.ValidString(s) {
		return w.recordError(ErrInvalidEncoding)
	}
	if err := w.WriteUint16(uint16(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	if sw, ok := w.w.(io.StringWriter); ok {
		n, err := sw.WriteString(s)
		w.bytesWritten += int64(n)
		if err == nil && n < len(s) {
			err = io.ErrShortWrite
		}
		return w.recordError(err)
	}
	return w.write([]byte(s))
}

// WriteByteArray writes the int32 count of b followed by the raw bytes.
func (w *Writer) WriteByteArray(b []byte) error {
	if err := w.WriteLength(len(b)); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return w.write(b)
}
