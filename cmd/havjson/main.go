// havjson - TEXT/BIN codec CLI tool
//
// Usage:
//
//	havjson totext [--pretty] [--bin] [file]    Parse TEXT or BIN, print TEXT
//	havjson tobinary [file]                     Parse TEXT, print BIN to stdout
//	havjson fingerprint [--bin] [file]          Print the blake3 content fingerprint
//	havjson version                             Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/renicolaus/havjson/havjson"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "totext":
		cmdTotext(os.Args[2:])
	case "tobinary":
		cmdTobinary(os.Args[2:])
	case "fingerprint":
		cmdFingerprint(os.Args[2:])
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "havjson: unknown subcommand: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: havjson <totext|tobinary|fingerprint|version> [flags] [file]")
}

func cmdTotext(args []string) {
	fs := pflag.NewFlagSet("totext", pflag.ExitOnError)
	pretty := fs.Bool("pretty", false, "pretty-print the TEXT output")
	isBin := fs.Bool("bin", false, "treat input as BIN rather than TEXT")
	fs.Parse(args)

	data := readInput(fs.Args())
	kind := havjson.KindText
	if *isBin {
		kind = havjson.KindBin
	}
	v, err := havjson.Parse(data, kind)
	if err != nil {
		fatal("parse: %v", err)
	}
	os.Stdout.Write(havjson.ToText(v, *pretty))
	fmt.Println()
}

func cmdTobinary(args []string) {
	fs := pflag.NewFlagSet("tobinary", pflag.ExitOnError)
	fs.Parse(args)

	data := readInput(fs.Args())
	v, err := havjson.Parse(data, havjson.KindText)
	if err != nil {
		fatal("parse: %v", err)
	}
	out, err := havjson.ToBinary(v)
	if err != nil {
		fatal("encode: %v", err)
	}
	os.Stdout.Write(out)
}

func cmdFingerprint(args []string) {
	fs := pflag.NewFlagSet("fingerprint", pflag.ExitOnError)
	isBin := fs.Bool("bin", false, "treat input as BIN rather than TEXT")
	fs.Parse(args)

	data := readInput(fs.Args())
	kind := havjson.KindText
	if *isBin {
		kind = havjson.KindBin
	}
	v, err := havjson.Parse(data, kind)
	if err != nil {
		fatal("parse: %v", err)
	}
	fp, err := havjson.Fingerprint(v)
	if err != nil {
		fatal("fingerprint: %v", err)
	}
	fmt.Println(fp)
}

func readInput(positional []string) []byte {
	var r io.Reader = os.Stdin
	if len(positional) > 0 && positional[0] != "-" {
		f, err := os.Open(positional[0])
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}
	return data
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "havjson: "+format+"\n", args...)
	os.Exit(1)
}
