// toon - TOON codec CLI tool
//
// Usage:
//
//	toon encode [--indent N] [--delimiter D] [--length-marker] [file]
//	toon decode [--indent N] [--lenient] [file]
//
// encode reads a JSON document and prints TOON; decode reads TOON
// and prints JSON. If no file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tokenwise/toon/toon"
)

const version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "toon",
		Usage:   "convert between JSON and TOON",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "read JSON, print TOON",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "indent",
						Usage: "spaces per nesting level",
						Value: 2,
					},
					&cli.StringFlag{
						Name:  "delimiter",
						Usage: "value delimiter: comma, tab or pipe",
						Value: "comma",
					},
					&cli.BoolFlag{
						Name:  "length-marker",
						Usage: "write '#' before array lengths",
					},
				},
				Action: cmdEncode,
			},
			{
				Name:      "decode",
				Usage:     "read TOON, print JSON",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "indent",
						Usage: "spaces per nesting level",
						Value: 2,
					},
					&cli.BoolFlag{
						Name:  "lenient",
						Usage: "accept array lengths that disagree with the body",
					},
				},
				Action: cmdDecode,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "toon:", err)
		os.Exit(1)
	}
}

func cmdEncode(c *cli.Context) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}
	v, err := toon.FromJSON(data)
	if err != nil {
		return err
	}

	opts := toon.DefaultEncodeOptions()
	opts.Indent = c.Int("indent")
	opts.Delimiter, err = delimiterFlag(c.String("delimiter"))
	if err != nil {
		return err
	}
	if c.Bool("length-marker") {
		opts.LengthMarker = toon.LengthMarker
	}

	fmt.Println(toon.EncodeWithOptions(v, opts))
	return nil
}

func cmdDecode(c *cli.Context) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}

	opts := toon.DefaultDecodeOptions()
	opts.Indent = c.Int("indent")
	opts.Strict = !c.Bool("lenient")

	v, err := toon.DecodeWithOptions(string(data), opts)
	if err != nil {
		return err
	}
	out, err := toon.ToJSONIndent(v, "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func readInput(c *cli.Context) ([]byte, error) {
	if name := c.Args().First(); name != "" && name != "-" {
		return os.ReadFile(name)
	}
	return io.ReadAll(os.Stdin)
}

func delimiterFlag(s string) (rune, error) {
	switch s {
	case "comma", ",":
		return ',', nil
	case "tab", "\t":
		return '\t', nil
	case "pipe", "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("invalid delimiter %q (want comma, tab or pipe)", s)
	}
}
