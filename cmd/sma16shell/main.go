// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sma16shell is the interactive inspector for SMA16 assembly
// output. It loads a source file or a previously assembled image and
// answers questions about the region table, reference table, and
// resolved cells it produced.
package main

import (
	"os"

	"github.com/jmalego/sma16/shell"
)

func main() {
	s := shell.New()

	// Run commands contained in command-line files first, same as a
	// script of canned inspection commands.
	args := os.Args[1:]
	for _, filename := range args {
		file, err := os.Open(filename)
		if err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
			os.Exit(1)
		}
		s.Run(file, os.Stdout, false)
		file.Close()
	}

	s.Run(os.Stdin, os.Stdout, true)
}
