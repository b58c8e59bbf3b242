package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/kitlaan/NBT/pkg/nbt/pretty"
	"github.com/kitlaan/NBT/pkg/nbtio"
)

func runDump(env *environment, args []string) error {
	fs := env.flags("dump")
	colorMode := fs.String("color", "auto", "colorize output: auto, always, never")
	indent := fs.String("indent", "\t", "indentation unit")

	args, ok, err := env.parse(fs, "dump [flags] FILE", args, 1)
	if !ok {
		return err
	}
	opts, err := env.readOptions()
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(*colorMode, env.stdout)
	if err != nil {
		return usageError{err}
	}

	doc, _, err := nbtio.ReadFile(args[0], opts)
	if err != nil {
		return err
	}
	return pretty.FprintDocument(env.stdout, doc, pretty.Options{Color: useColor, Indent: *indent})
}

func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid --color value %q", mode)
	}
}
