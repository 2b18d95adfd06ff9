// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements an assembler for the SMA16 virtual machine: a
// 16-bit-cell machine whose instruction word is a 4-bit opcode packed
// into the high nibble of a cell, concatenated with a 12-bit data
// field.
//
// Assembly proceeds in a fixed pipeline of stages, each of which
// consumes the previous stage's item list and produces a new one:
//
//	parse lines -> glue labels/sections -> install vectors ->
//	plan sections -> assign addresses -> resolve references
//
// The two tables built up across stages (the reference table mapping
// symbolic names to addresses, and the region table mapping section
// names to address ranges) outlive every stage and are returned to the
// caller as part of the Result.
package asm

import (
	"fmt"
	"io"
)

// Result holds everything produced by a successful assembly.
type Result struct {
	Cells      []AddressValue // resolved, address-ordered memory cells
	References ReferenceTable // symbolic name -> address, as it stood after assembly
	Regions    RegionTable    // section name -> region, as it stood after assembly
}

// Assemble reads SMA16 assembly source from r and runs it through the
// full pipeline described in the package doc. If log is non-nil,
// per-stage progress is written to it.
func Assemble(r io.Reader, log io.Writer) (*Result, error) {
	logf := func(format string, args ...interface{}) {
		if log != nil {
			fmt.Fprintf(log, format+"\n", args...)
		}
	}

	items, err := parseLines(r)
	if err != nil {
		return nil, err
	}
	logf("parsed %d items", len(items))

	glued, err := glueLabelsAndSections(items)
	if err != nil {
		return nil, err
	}
	logf("glued %d items into sections", len(glued))

	vectored, err := assignVectors(glued)
	if err != nil {
		return nil, err
	}

	refTable := newReferenceTable()
	regionTable := newRegionTable()

	sections := sectionSizes(vectored)
	if err := checkMemoryBudget(sections); err != nil {
		return nil, err
	}
	if err := planSections(regionTable, sections); err != nil {
		return nil, err
	}
	for name, region := range regionTable {
		if region.Type == regionUser {
			logf("section %s packed at [0x%03x, 0x%03x]", name, region.Start, region.End)
		}
	}

	withConstants, err := assignConstants(refTable, regionTable, vectored)
	if err != nil {
		return nil, err
	}
	withInstructions, err := assignInstructions(refTable, regionTable, withConstants)
	if err != nil {
		return nil, err
	}

	resolved, err := resolveReferences(refTable, withInstructions)
	if err != nil {
		return nil, err
	}
	logf("resolved %d cells", len(resolved))

	return &Result{Cells: resolved, References: refTable, Regions: regionTable}, nil
}
