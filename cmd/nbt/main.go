// Command nbt inspects and converts named binary tag files.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/kitlaan/NBT/pkg/nbt"
	"github.com/kitlaan/NBT/pkg/nbtio"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var usage usageError
		if errors.As(err, &usage) {
			if usage.err != nil {
				fmt.Fprintf(os.Stderr, "nbt: %v\n", usage.err)
			}
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "nbt: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	name    string
	usage   string
	summary string
	run     func(env *environment, args []string) error
}

var commands = []command{
	{"dump", "dump [flags] FILE", "print the tag tree", runDump},
	{"export", "export [flags] FILE", "convert to json, yaml, cbor or cbor-diag", runExport},
	{"recompress", "recompress [flags] IN OUT", "rewrite a file with another compression", runRecompress},
	{"check", "check [flags] FILE", "verify that the file re-encodes byte for byte", runCheck},
}

// environment carries the streams and shared flag values into a subcommand.
type environment struct {
	stdout io.Writer
	stderr io.Writer

	verbose      bool
	compression  string
	maxDepth     int
	allowEndList bool

	logger *slog.Logger
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return usageError{}
	}
	switch args[0] {
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(&environment{stdout: stdout, stderr: stderr}, args[1:])
		}
	}
	printUsage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbt COMMAND [flags] ARGS")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", cmd.name, cmd.summary)
	}
}

// flags creates a flag set with the options every subcommand shares.
func (env *environment) flags(cmd string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)
	fs.SetOutput(env.stderr)
	fs.BoolVarP(&env.verbose, "verbose", "v", false, "log debug output to stderr")
	fs.StringVarP(&env.compression, "compression", "c", "auto", "input compression: auto, none, gzip, zlib, zstd, lz4, brotli")
	fs.IntVar(&env.maxDepth, "max-depth", nbt.DefaultMaxDepth, "maximum container nesting")
	fs.BoolVar(&env.allowEndList, "allow-end-list", false, "accept empty lists of element kind End")
	return fs
}

// parse parses args and checks the positional count. Help is reported as
// a nil error with ok false.
func (env *environment) parse(fs *pflag.FlagSet, usage string, args []string, want int) ([]string, bool, error) {
	fs.Usage = func() {
		fmt.Fprintf(env.stderr, "Usage: nbt %s\n\nFlags:\n%s", usage, fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, false, nil
		}
		return nil, false, usageError{err}
	}
	if fs.NArg() != want {
		fs.Usage()
		return nil, false, usageError{fmt.Errorf("expected %d argument(s), got %d", want, fs.NArg())}
	}

	level := slog.LevelWarn
	if env.verbose {
		level = slog.LevelDebug
	}
	env.logger = slog.New(slog.NewTextHandler(env.stderr, &slog.HandlerOptions{Level: level}))
	return fs.Args(), true, nil
}

// readOptions builds nbtio options from the shared flags.
func (env *environment) readOptions() (nbtio.Options, error) {
	c, err := nbtio.ParseCompression(env.compression)
	if err != nil {
		return nbtio.Options{}, usageError{err}
	}
	return nbtio.Options{
		Compression: c,
		Codec: nbt.NewCodec(nbt.Options{
			MaxDepth:     env.maxDepth,
			AllowEndList: env.allowEndList,
		}),
		Logger: env.logger,
	}, nil
}

// usageError reports bad invocation. main exits with status 2 for it.
type usageError struct{ err error }

func (e usageError) Error() string {
	if e.err == nil {
		return "usage"
	}
	return e.err.Error()
}

func (e usageError) Unwrap() error { return e.err }
