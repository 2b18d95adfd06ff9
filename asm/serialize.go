// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"sort"
	"strings"
)

// SerializeText renders the result as the human-readable annotated
// listing format: a region-table header comment followed by one
// MEM(addr, opcode, data) line per resolved cell.
func (r *Result) SerializeText() []byte {
	var b strings.Builder

	b.WriteString("/* GENERATED from sma16asm.py\n")
	b.WriteString(" *\n")
	b.WriteString(" * Regions:\n")
	for _, name := range regionNamesByStart(r.Regions) {
		region := r.Regions[name]
		fmt.Fprintf(&b, " *   - %s from 0x%03x to 0x%03x\n", name, region.Start, region.End)
	}
	b.WriteString(" */\n")

	b.WriteString("START_PROGRAM\n")
	for _, cell := range r.Cells {
		fmt.Fprintf(&b, "MEM(0x%03x, 0x%x, 0x%03x)\n", cell.Address, (cell.Value>>12)&0xF, cell.Value&0xFFF)
	}
	b.WriteString("END_PROGRAM")

	return []byte(b.String())
}

// SerializeBinary renders the result as a dense, zero-initialized
// cell array (indexed 0..maxAddress exclusive) with each cell emitted
// as two big-endian bytes and no header.
func (r *Result) SerializeBinary() []byte {
	memory := r.denseMemory()
	out := make([]byte, 0, len(memory)*2)
	for _, value := range memory {
		out = append(out, byte(value>>8), byte(value))
	}
	return out
}

// SerializeHex renders the result as the dense cell array with each
// cell emitted as four lowercase hex digits, breaking to a new line
// after every eighth cell. No header.
func (r *Result) SerializeHex() []byte {
	memory := r.denseMemory()
	var b strings.Builder
	for address, value := range memory {
		fmt.Fprintf(&b, "%04x", value)
		if address%8 == 7 {
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}

// denseMemory builds a zero-initialized array covering every address
// from 0 up to and including the highest address any cell was written
// to, then scatters the resolved cells into it. An empty
// result (no cells at all) yields an empty array.
func (r *Result) denseMemory() []int {
	if len(r.Cells) == 0 {
		return nil
	}
	highest := 0
	for _, cell := range r.Cells {
		if cell.Address > highest {
			highest = cell.Address
		}
	}
	memory := make([]int, highest+1)
	for _, cell := range r.Cells {
		memory[cell.Address] = cell.Value
	}
	return memory
}

// regionNamesByStart returns region names ordered by ascending start
// address, matching the text listing's region header ordering.
func regionNamesByStart(regions RegionTable) []string {
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return regions[names[i]].Start < regions[names[j]].Start
	})
	return names
}
