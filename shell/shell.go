// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shell implements an interactive, read-only inspector for
// SMA16 assembly output: load a source file or a previously assembled
// image and browse the region table, reference table, and resolved
// cells it produced. It has no CPU to step or run; unlike the 6502
// host this package is modeled on, SMA16's assembler has no execution
// semantics to emulate, so the shell only ever answers questions about
// an already-assembled image.
package shell

import (
	"bufio"
	"fmt"
	"io"

	"github.com/beevik/cmd"
	"github.com/jmalego/sma16/asm"
)

// A Shell holds the currently loaded assembly and dispatches commands
// typed by the user against it.
type Shell struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	subject     *asm.Result
	subjectName string
}

// New creates an empty shell with nothing loaded.
func New() *Shell {
	return &Shell{}
}

// Run reads commands from r and writes responses to w until r is
// exhausted or a "quit" command is processed. When interactive is
// true, a prompt is printed before each command.
func (s *Shell) Run(r io.Reader, w io.Writer, interactive bool) {
	s.input = bufio.NewScanner(r)
	s.output = bufio.NewWriter(w)
	s.interactive = interactive
	defer s.output.Flush()

	for {
		if s.interactive {
			s.printf("sma16> ")
			s.output.Flush()
		}
		if !s.input.Scan() {
			return
		}

		line := s.input.Text()
		if line == "" {
			continue
		}

		selection, err := commands.Lookup(line)
		switch {
		case err == cmd.ErrNotFound:
			s.println("Command not found.")
			continue
		case err == cmd.ErrAmbiguous:
			s.println("Command is ambiguous.")
			continue
		case err != nil:
			s.printf("ERROR: %v\n", err)
			continue
		}

		handler := selection.Command.Data.(func(*Shell, cmd.Selection) error)
		if err := handler(s, selection); err != nil {
			if err == errQuit {
				return
			}
			s.printf("ERROR: %v\n", err)
		}
		s.output.Flush()
	}
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.output, format, args...)
}

func (s *Shell) println(args ...interface{}) {
	fmt.Fprintln(s.output, args...)
}
