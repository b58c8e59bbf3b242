// Package nbtio reads and writes tag documents through the compression
// layers they are usually stored in. Files on disk are normally gzip; chunk
// payloads inside region files are zlib.
package nbtio

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/kitlaan/NBT/pkg/nbt"
)

// ErrUnknownCompression is returned by Sniff when the leading bytes match no
// known container and are not a raw document either.
var ErrUnknownCompression = errors.New("nbtio: unrecognized compression")

// Compression identifies the container wrapped around an encoded document.
type Compression uint8

const (
	// Auto detects the container on read and writes gzip.
	Auto Compression = iota
	None
	Gzip
	Zlib
	Zstd
	LZ4
	// Brotli streams carry no magic number, so they are never sniffed.
	Brotli
)

// DefaultLevel selects each algorithm's default compression level.
const DefaultLevel = 0

func (c Compression) String() string {
	switch c {
	case Auto:
		return "auto"
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Brotli:
		return "brotli"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses the String form of a Compression.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "auto":
		return Auto, nil
	case "none", "raw":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	case "brotli", "br":
		return Brotli, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Sniff peeks at the head of br and reports the container it holds. No
// bytes are consumed.
func Sniff(br *bufio.Reader) (Compression, error) {
	head, err := br.Peek(4)
	if len(head) == 0 {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("sniff: %w", nbt.ErrTruncatedInput)
		}
		return 0, fmt.Errorf("sniff: %w", err)
	}
	switch {
	case hasPrefix(head, magicGzip):
		return Gzip, nil
	case hasPrefix(head, magicZstd):
		return Zstd, nil
	case hasPrefix(head, magicLZ4):
		return LZ4, nil
	case isZlibHeader(head):
		return Zlib, nil
	case head[0] == byte(nbt.KindCompound):
		return None, nil
	}
	return 0, fmt.Errorf("%w: leading bytes % x", ErrUnknownCompression, head)
}

func hasPrefix(b, magic []byte) bool {
	if len(b) < len(magic) {
		return false
	}
	for i := range magic {
		if b[i] != magic[i] {
			return false
		}
	}
	return true
}

// isZlibHeader checks CMF/FLG per RFC 1950: deflate method, window of at
// most 32K, and a header checksum divisible by 31.
func isZlibHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	cmf, flg := b[0], b[1]
	return cmf&0x0f == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// NewReader wraps r with a decompressor for c. Auto is resolved by sniffing.
// Closing the result does not close r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, Compression, error) {
	if c == Auto {
		br, ok := r.(*bufio.Reader)
		if !ok {
			br = bufio.NewReader(r)
		}
		detected, err := Sniff(br)
		if err != nil {
			return nil, Auto, err
		}
		r, c = br, detected
	}

	switch c {
	case None:
		return io.NopCloser(r), c, nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, c, fmt.Errorf("gzip: %w", err)
		}
		return zr, c, nil
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, c, fmt.Errorf("zlib: %w", err)
		}
		return zr, c, nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, c, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), c, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), c, nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), c, nil
	default:
		return nil, c, fmt.Errorf("unsupported compression: %s", c)
	}
}

// NewWriter wraps w with a compressor for c at the given level. Auto writes
// gzip. The caller must Close the result to flush the trailer; w itself is
// not closed.
func NewWriter(w io.Writer, c Compression, level int) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Auto, Gzip:
		if level == DefaultLevel {
			level = gzip.DefaultCompression
		}
		zw, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zw, nil
	case Zlib:
		if level == DefaultLevel {
			level = zlib.DefaultCompression
		}
		zw, err := zlib.NewWriterLevel(w, level)
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		return zw, nil
	case Zstd:
		encLevel := zstd.SpeedDefault
		if level != DefaultLevel {
			encLevel = zstd.EncoderLevelFromZstd(level)
		}
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(encLevel))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zw, nil
	case LZ4:
		zw := lz4.NewWriter(w)
		if level != DefaultLevel {
			if level < 1 || level > 9 {
				return nil, fmt.Errorf("lz4: invalid level %d", level)
			}
			if err := zw.Apply(lz4.CompressionLevelOption(lz4.CompressionLevel(1 << (7 + level)))); err != nil {
				return nil, fmt.Errorf("lz4: %w", err)
			}
		}
		return zw, nil
	case Brotli:
		if level == DefaultLevel {
			level = brotli.DefaultCompression
		}
		if level < brotli.BestSpeed || level > brotli.BestCompression {
			return nil, fmt.Errorf("brotli: invalid level %d", level)
		}
		return brotli.NewWriterLevel(w, level), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
