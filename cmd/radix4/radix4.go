package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mnightingale/radix4"
)

const usageString = `Usage: %s [OPTION...] [FILE...]
radix4 encode or decode FILE(s), or standard input to standard output.
With no FILE, or when FILE is -, read standard input. With FILEs, each
FILE is processed concurrently: encoding writes FILE%s, decoding strips
the %s suffix.

`

const suffix = ".r4"

func main() {
	var (
		dec   = flag.Bool("d", false, "decode data")
		block = flag.Bool("block", false, "use block format instead of stream format")
		term  = flag.Bool("term", false, "terminate encoded output")
		plain = flag.Bool("plain", false, "disable the optimistic radix-free prefix")
		line  = flag.Int("line", 0, "insert a line break every n characters")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usageString, os.Args[0], suffix, suffix)
		flag.PrintDefaults()
	}
	flag.Parse()

	codec, err := radix4.NewCodec(
		radix4.WithStreaming(!*block),
		radix4.WithTerminated(*term),
		radix4.WithOptimistic(!*plain),
		radix4.WithLineLength(*line),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		if err := pipe(codec, *dec, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if !*dec {
			os.Stdout.Write([]byte("\n"))
		}
		return
	}

	var g errgroup.Group
	for _, name := range args {
		g.Go(func() error {
			return processFile(codec, *dec, name)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// pipe runs r through the codec into w. The writer is shielded from the
// encoder's Close forwarding so callers keep control of its lifetime.
func pipe(c *radix4.Codec, dec bool, r io.Reader, w io.Writer) error {
	if dec {
		_, err := io.Copy(w, c.NewDecoder(r))
		return err
	}
	enc := c.NewEncoder(struct{ io.Writer }{w})
	if _, err := io.Copy(enc, r); err != nil {
		return err
	}
	return enc.Close()
}

func processFile(c *radix4.Codec, dec bool, name string) error {
	outName := name + suffix
	if dec {
		trimmed := strings.TrimSuffix(name, suffix)
		if trimmed == name {
			return fmt.Errorf("%s: missing %s suffix", name, suffix)
		}
		outName = trimmed
	}

	in, err := os.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outName)
	if err != nil {
		return err
	}
	if err := pipe(c, dec, in, out); err != nil {
		out.Close()
		os.Remove(outName)
		return fmt.Errorf("%s: %w", name, err)
	}
	return out.Close()
}
