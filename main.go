// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sma16asm is the SMA16 assembler's command-line front end. It
// validates paths, opens files, and dispatches to the asm package; the
// assembly pipeline itself lives entirely in package asm.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmalego/sma16/asm"
)

var (
	output  string
	format  string
	verbose bool
)

func init() {
	flag.StringVar(&output, "o", "a.txt", "output file")
	flag.StringVar(&output, "output", "a.txt", "output file")
	flag.StringVar(&format, "f", "auto", "output format: auto|text|t|bin|b|hex|h|x")
	flag.StringVar(&format, "format", "auto", "output format: auto|text|t|bin|b|hex|h|x")
	flag.BoolVar(&verbose, "v", false, "print assembly progress to stdout")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: sma16asm [options] INPUT\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	input := flag.Arg(0)

	outputPath, err := filepath.Abs(output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	resolvedFormat, err := resolveFormat(format, outputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err := os.Stat(filepath.Dir(outputPath)); err != nil {
		fmt.Println("Output directory does not exist.")
		os.Exit(2)
	}

	inputPath, err := filepath.Abs(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}
	if _, err := os.Stat(inputPath); err != nil {
		fmt.Println("Input file does not exist.")
		os.Exit(3)
	}

	if err := assembleFile(inputPath, outputPath, resolvedFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Assembly failed: %s.\n", err)
		os.Exit(1)
	}
}

// assembleFile runs the assembler over the file at inputPath and
// writes the serialized result to outputPath. The output file is never
// created (or is left untouched) on failure, so a partial image never
// reaches disk.
func assembleFile(inputPath, outputPath, format string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	var log io.Writer
	if verbose {
		log = os.Stdout
	}

	result, err := asm.Assemble(in, log)
	if err != nil {
		return err
	}

	var bytes []byte
	switch format {
	case "bin":
		bytes = result.SerializeBinary()
	case "hex":
		bytes = result.SerializeHex()
	default:
		bytes = result.SerializeText()
	}

	return os.WriteFile(outputPath, bytes, 0644)
}

// resolveFormat applies the -f/--format flag and the "auto" output
// extension rule from the CLI surface: .bin -> bin, .hex -> hex,
// anything else -> text.
func resolveFormat(format, outputPath string) (string, error) {
	switch format {
	case "auto":
		switch filepath.Ext(outputPath) {
		case ".bin":
			return "bin", nil
		case ".hex":
			return "hex", nil
		default:
			return "text", nil
		}
	case "text", "t":
		return "text", nil
	case "bin", "b":
		return "bin", nil
	case "hex", "h", "x":
		return "hex", nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}
