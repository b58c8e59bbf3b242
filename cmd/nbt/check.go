package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/kitlaan/NBT/pkg/nbtio"
)

var errNotCanonical = errors.New("document does not re-encode to its input bytes")

func runCheck(env *environment, args []string) error {
	fs := env.flags("check")
	args, ok, err := env.parse(fs, "check [flags] FILE", args, 1)
	if !ok {
		return err
	}
	opts, err := env.readOptions()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	raw, c, err := nbtio.Decompress(f, opts.Compression)
	if err != nil {
		return err
	}
	doc, err := opts.Codec.DecodeDocument(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := opts.Codec.EncodeDocument(doc, &out); err != nil {
		return err
	}

	if at := firstDifference(raw, out.Bytes()); at >= 0 {
		env.logger.Debug("mismatch", "input_bytes", len(raw), "output_bytes", out.Len())
		return fmt.Errorf("%s: %w (first difference at offset %d)", args[0], errNotCanonical, at)
	}
	fmt.Fprintf(env.stdout, "%s: ok (%s, %d bytes)\n", args[0], c, len(raw))
	return nil
}

// firstDifference returns the first offset where a and b differ, or -1.
func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
