// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"errors"

	"github.com/beevik/cmd"
)

var errQuit = errors.New("quit")

var commands *cmd.Tree

func init() {
	root := cmd.NewTree("sma16")
	root.AddCommand(cmd.Command{
		Name:        "help",
		Brief:       "Display help for a command",
		Description: "Display help for a command, or list all commands.",
		Usage:       "help [<command>]",
		Data:        (*Shell).cmdHelp,
	})
	root.AddCommand(cmd.Command{
		Name:  "load",
		Brief: "Load a source or image file",
		Description: "Assemble a source file, or load a previously" +
			" assembled binary or hex image, and make it the shell's" +
			" current subject. The format is inferred from the file" +
			" extension (.bin, .hex, anything else is assembled as" +
			" source) unless overridden.",
		Usage: "load <file> [auto|asm|bin|hex]",
		Data:  (*Shell).cmdLoad,
	})
	root.AddCommand(cmd.Command{
		Name:  "regions",
		Brief: "List the region table",
		Description: "List every region (reserved and user) in the" +
			" loaded subject, sorted by start address.",
		Usage: "regions",
		Data:  (*Shell).cmdRegions,
	})
	root.AddCommand(cmd.Command{
		Name:  "refs",
		Brief: "List the reference table",
		Description: "List reference-table entries, optionally" +
			" filtered to names beginning with the given prefix.",
		Usage: "refs [<prefix>]",
		Data:  (*Shell).cmdRefs,
	})
	root.AddCommand(cmd.Command{
		Name:  "dump",
		Brief: "Dump memory cells",
		Description: "Dump count cells (default 16) starting at the" +
			" given address, in MEM(addr, opcode, data) form.",
		Usage: "dump <start> [<count>]",
		Data:  (*Shell).cmdDump,
	})
	root.AddCommand(cmd.Command{
		Name:  "find",
		Brief: "Resolve a symbolic name to an address",
		Description: "Resolve name to its address in the reference" +
			" table. If name is not found, offer the same" +
			" \"did you mean\" suggestion the assembler itself gives.",
		Usage: "find <name>",
		Data:  (*Shell).cmdFind,
	})
	root.AddCommand(cmd.Command{
		Name:        "quit",
		Brief:       "Quit the shell",
		Description: "Quit the shell.",
		Usage:       "quit",
		Data:        (*Shell).cmdQuit,
	})

	root.AddShortcut("?", "help")
	root.AddShortcut("d", "dump")
	root.AddShortcut("r", "regions")
	root.AddShortcut("q", "quit")

	commands = root
}
