package main

import (
	"github.com/kitlaan/NBT/pkg/nbt/export"
	"github.com/kitlaan/NBT/pkg/nbtio"
)

func runExport(env *environment, args []string) error {
	fs := env.flags("export")
	format := fs.StringP("format", "f", "json", "output format: json, yaml, cbor, cbor-diag")

	args, ok, err := env.parse(fs, "export [flags] FILE", args, 1)
	if !ok {
		return err
	}
	f, err := export.ParseFormat(*format)
	if err != nil {
		return usageError{err}
	}
	opts, err := env.readOptions()
	if err != nil {
		return err
	}

	doc, _, err := nbtio.ReadFile(args[0], opts)
	if err != nil {
		return err
	}
	return export.Write(env.stdout, doc, f)
}
