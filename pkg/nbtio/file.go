package nbtio

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kitlaan/NBT/pkg/nbt"
)

// Options configures Read, Write and their file variants.
type Options struct {
	// Compression selects the container. On read, Auto sniffs the input.
	// On write, Auto produces gzip.
	Compression Compression
	// Level is passed to the compressor. DefaultLevel picks the
	// algorithm's own default.
	Level int
	// Codec decodes and encodes the document. Nil uses nbt.DefaultOptions.
	Codec *nbt.Codec
	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (o Options) codec() *nbt.Codec {
	if o.Codec == nil {
		return nbt.NewCodec(nbt.DefaultOptions())
	}
	return o.Codec
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

// Read decodes a document from r, unwrapping the container selected by
// opts. It returns the container actually used.
func Read(r io.Reader, opts Options) (*nbt.Document, Compression, error) {
	in := &countingReader{r: r}
	zr, c, err := NewReader(bufio.NewReader(in), opts.Compression)
	if err != nil {
		return nil, c, err
	}
	defer zr.Close()

	plain := &countingReader{r: zr}
	doc, err := opts.codec().DecodeDocument(plain)
	if err != nil {
		return nil, c, err
	}
	opts.logger().Debug("decoded document",
		"name", doc.Name,
		"compression", c.String(),
		"compressed_bytes", in.n,
		"payload_bytes", plain.n,
	)
	return doc, c, nil
}

// Write encodes doc to w inside the container selected by opts.
func Write(w io.Writer, doc *nbt.Document, opts Options) error {
	c := opts.Compression
	if c == Auto {
		c = Gzip
	}
	out := &countingWriter{w: w}
	zw, err := NewWriter(out, c, opts.Level)
	if err != nil {
		return err
	}
	plain := &countingWriter{w: zw}
	if err := opts.codec().EncodeDocument(doc, plain); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing %s stream: %w", c, err)
	}
	opts.logger().Debug("encoded document",
		"name", doc.Name,
		"compression", c.String(),
		"payload_bytes", plain.n,
		"compressed_bytes", out.n,
	)
	return nil
}

// Decompress returns the raw document bytes held in r along with the
// container they were found in. The bytes are not decoded.
func Decompress(r io.Reader, c Compression) ([]byte, Compression, error) {
	zr, c, err := NewReader(r, c)
	if err != nil {
		return nil, c, err
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, c, fmt.Errorf("decompressing %s: %w", c, err)
	}
	return data, c, nil
}

// ReadFile opens path and decodes the document it holds.
func ReadFile(path string, opts Options) (*nbt.Document, Compression, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, opts.Compression, err
	}
	defer f.Close()

	doc, c, err := Read(f, opts)
	if err != nil {
		return nil, c, fmt.Errorf("reading %s: %w", path, err)
	}
	return doc, c, nil
}

// WriteFile encodes doc to path. The data goes to a temporary file in the
// same directory first and is renamed into place, so a failed write leaves
// any previous file intact.
func WriteFile(path string, doc *nbt.Document, opts Options) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmpFile)
	if err := Write(bw, doc, opts); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		tmpFile.Close()
		return fmt.Errorf("setting mode on temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	opts.logger().Debug("wrote file", "path", path)
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
