// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/prefixtree/v2"
	"github.com/jmalego/sma16/asm"
)

func (s *Shell) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		s.printf("%s commands:\n", commands.Title)
		for _, cm := range commands.Commands {
			if cm.Brief != "" {
				s.printf("    %-10s  %s\n", cm.Name, cm.Brief)
			}
		}
		return nil
	}

	sel, err := commands.Lookup(strings.Join(c.Args, " "))
	if err != nil {
		s.printf("%v\n", err)
		return nil
	}
	if sel.Command.Usage != "" {
		s.printf("Usage: %s\n", sel.Command.Usage)
	}
	if sel.Command.Description != "" {
		s.printf("%s\n", sel.Command.Description)
	}
	return nil
}

// cmdLoad assembles a source file, or loads a previously serialized
// binary or hex image, and installs the result as the shell's current
// subject. Binary and hex images carry no reference or region table,
// so find/refs/regions report an empty table for them; only an
// assembled-from-source subject has symbolic names to browse.
func (s *Shell) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		s.displayUsage(c.Command)
		return nil
	}

	path := c.Args[0]
	mode := "auto"
	if len(c.Args) > 1 {
		mode = c.Args[1]
	}
	if mode == "auto" {
		switch filepath.Ext(path) {
		case ".bin":
			mode = "bin"
		case ".hex":
			mode = "hex"
		default:
			mode = "asm"
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.printf("%v\n", err)
		return nil
	}

	switch mode {
	case "asm":
		result, err := asm.Assemble(strings.NewReader(string(data)), nil)
		if err != nil {
			s.printf("Assembly failed: %v\n", err)
			return nil
		}
		s.subject = result
	case "bin":
		s.subject = imageFromBinary(data)
	case "hex":
		s.subject = imageFromHex(string(data))
	default:
		s.printf("Unknown load mode %q.\n", mode)
		return nil
	}

	s.subjectName = filepath.Base(path)
	s.printf("Loaded %s (%d cells).\n", s.subjectName, len(s.subject.Cells))
	return nil
}

// imageFromBinary reconstructs a Result's Cells from a dense
// big-endian binary image. Cells whose value is zero are omitted,
// since a freshly loaded image cannot distinguish "zero" from
// "never written".
func imageFromBinary(data []byte) *asm.Result {
	var cells []asm.AddressValue
	for i := 0; i+1 < len(data); i += 2 {
		value := int(data[i])<<8 | int(data[i+1])
		if value != 0 {
			cells = append(cells, asm.AddressValue{Address: i / 2, Value: value})
		}
	}
	return &asm.Result{Cells: cells, References: asm.ReferenceTable{}, Regions: asm.RegionTable{}}
}

// imageFromHex mirrors imageFromBinary for the four-hex-digit-per-cell
// text format produced by SerializeHex.
func imageFromHex(text string) *asm.Result {
	fields := strings.Fields(text)
	var cells []asm.AddressValue
	for addr, field := range fields {
		value, err := strconv.ParseInt(field, 16, 32)
		if err != nil || value == 0 {
			continue
		}
		cells = append(cells, asm.AddressValue{Address: addr, Value: int(value)})
	}
	return &asm.Result{Cells: cells, References: asm.ReferenceTable{}, Regions: asm.RegionTable{}}
}

func (s *Shell) cmdRegions(c cmd.Selection) error {
	if s.subject == nil {
		s.println("Nothing loaded.")
		return nil
	}

	names := make([]string, 0, len(s.subject.Regions))
	for name := range s.subject.Regions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return s.subject.Regions[names[i]].Start < s.subject.Regions[names[j]].Start
	})

	for _, name := range names {
		region := s.subject.Regions[name]
		kind := "user"
		if region.IsReserved() {
			kind = "reserved"
		}
		s.printf("  %-14s 0x%03x-0x%03x  %-8s  %d cells\n", name, region.Start, region.End, kind, region.Count)
	}
	return nil
}

func (s *Shell) cmdRefs(c cmd.Selection) error {
	if s.subject == nil {
		s.println("Nothing loaded.")
		return nil
	}

	prefix := ""
	if len(c.Args) > 0 {
		prefix = c.Args[0]
	}

	names := s.subject.References.Names()
	sort.Strings(names)
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		s.printf("  %-20s 0x%03x\n", name, s.subject.References[name])
	}
	return nil
}

func (s *Shell) cmdDump(c cmd.Selection) error {
	if s.subject == nil {
		s.println("Nothing loaded.")
		return nil
	}
	if len(c.Args) < 1 {
		s.displayUsage(c.Command)
		return nil
	}

	start, err := strconv.ParseInt(strings.TrimPrefix(c.Args[0], "0x"), 16, 32)
	if err != nil {
		s.printf("%v\n", err)
		return nil
	}

	count := 16
	if len(c.Args) > 1 {
		n, err := strconv.Atoi(c.Args[1])
		if err != nil {
			s.printf("%v\n", err)
			return nil
		}
		count = n
	}

	cellsByAddr := make(map[int]asm.AddressValue, len(s.subject.Cells))
	for _, cell := range s.subject.Cells {
		cellsByAddr[cell.Address] = cell
	}

	for addr := int(start); addr < int(start)+count; addr++ {
		cell, ok := cellsByAddr[addr]
		if !ok {
			continue
		}
		s.printf("MEM(0x%03x, 0x%x, 0x%03x)\n", cell.Address, (cell.Value>>12)&0xF, cell.Value&0xFFF)
	}
	return nil
}

// cmdFind resolves a symbolic name via an unambiguous-prefix lookup,
// matching the interactive terseness of abbreviated settings lookups
// elsewhere in this codebase's ancestry. If name isn't found outright
// and isn't an unambiguous prefix of exactly one reference either, it
// falls back to the assembler's own suggestion logic.
func (s *Shell) cmdFind(c cmd.Selection) error {
	if s.subject == nil {
		s.println("Nothing loaded.")
		return nil
	}
	if len(c.Args) < 1 {
		s.displayUsage(c.Command)
		return nil
	}
	name := c.Args[0]

	if addr, ok := s.subject.References[name]; ok {
		s.printf("%s = 0x%03x\n", name, addr)
		return nil
	}

	tree := prefixtree.New[int]()
	for n, addr := range s.subject.References {
		tree.Add(n, addr)
	}

	addr, err := tree.FindValue(name)
	switch err {
	case nil:
		s.printf("%s = 0x%03x\n", name, addr)
	case prefixtree.ErrPrefixNotFound:
		suggestion := asm.DidYouMean(name, s.subject.References.Names())
		s.printf("reference to undefined location %s%s\n", name, suggestion)
	case prefixtree.ErrPrefixAmbiguous:
		s.printf("%q is an ambiguous prefix of more than one reference.\n", name)
	default:
		s.printf("%v\n", err)
	}
	return nil
}

func (s *Shell) cmdQuit(c cmd.Selection) error {
	return errQuit
}

func (s *Shell) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		s.printf("Usage: %s\n", c.Usage)
	}
}
