package main

import (
	"github.com/kitlaan/NBT/pkg/nbtio"
)

func runRecompress(env *environment, args []string) error {
	fs := env.flags("recompress")
	to := fs.String("to", "gzip", "output compression: none, gzip, zlib, zstd, lz4, brotli")
	level := fs.Int("level", nbtio.DefaultLevel, "compression level (0 selects the default)")

	args, ok, err := env.parse(fs, "recompress [flags] IN OUT", args, 2)
	if !ok {
		return err
	}
	target, err := nbtio.ParseCompression(*to)
	if err != nil {
		return usageError{err}
	}
	opts, err := env.readOptions()
	if err != nil {
		return err
	}

	doc, from, err := nbtio.ReadFile(args[0], opts)
	if err != nil {
		return err
	}

	opts.Compression = target
	opts.Level = *level
	if err := nbtio.WriteFile(args[1], doc, opts); err != nil {
		return err
	}
	env.logger.Info("recompressed", "from", from.String(), "to", target.String(), "path", args[1])
	return nil
}
