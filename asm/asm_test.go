// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"
	"testing"
)

func assemble(t *testing.T, source string) *Result {
	t.Helper()
	result, err := Assemble(strings.NewReader(source), nil)
	if err != nil {
		t.Fatalf("unexpected assembly error: %v", err)
	}
	return result
}

func checkASMError(t *testing.T, source string, want string) {
	t.Helper()
	_, err := Assemble(strings.NewReader(source), nil)
	if err == nil {
		t.Fatalf("expected error on %q, got none", source)
	}
	if err.Error() != want {
		t.Errorf("expected error %q, got %q", want, err.Error())
	}
}

func cellAt(t *testing.T, r *Result, address int) AddressValue {
	t.Helper()
	for _, c := range r.Cells {
		if c.Address == address {
			return c
		}
	}
	t.Fatalf("no cell at address 0x%03x", address)
	return AddressValue{}
}

func TestMinimalProgram(t *testing.T) {
	source := `
.vecreset @start
.sec code
start: HALT
`
	r := assemble(t, source)

	reset := cellAt(t, r, 0x000)
	if reset.Value != 0x2010 {
		t.Errorf("reset vector: got 0x%04x, want 0x2010", reset.Value)
	}

	halt := cellAt(t, r, 0x010)
	if halt.Value != 0x0000 {
		t.Errorf("halt instruction: got 0x%04x, want 0x0000", halt.Value)
	}
}

func TestConstantWithReference(t *testing.T) {
	source := `
.vecreset @main
.sec data
ptr: .const @main
.sec code
main: NOOP
`
	r := assemble(t, source)

	mainAddr, ok := r.References["main"]
	if !ok {
		t.Fatal("main label not bound")
	}

	ptrAddr, ok := r.References["ptr"]
	if !ok {
		t.Fatal("ptr label not bound")
	}

	ptrCell := cellAt(t, r, ptrAddr)
	if ptrCell.Value != mainAddr {
		t.Errorf("ptr cell: got 0x%04x, want main's address 0x%04x", ptrCell.Value, mainAddr)
	}
}

func TestShortStringPacking(t *testing.T) {
	source := `
.vecreset @start
.sec data
a: .const s"Ab"
b: .const s"_ "
.sec code
start: HALT
`
	r := assemble(t, source)

	aAddr := r.References["a"]
	bAddr := r.References["b"]

	if got := cellAt(t, r, aAddr).Value; got != 0x01B {
		t.Errorf("s\"Ab\": got 0x%03x, want 0x01b", got)
	}
	if got := cellAt(t, r, bAddr).Value; got != 0xFFE {
		t.Errorf("s\"_ \": got 0x%03x, want 0xffe", got)
	}
}

func TestAsciiStringPacking(t *testing.T) {
	source := `
.vecreset @start
.sec data
a: .const a"AB"
.sec code
start: HALT
`
	r := assemble(t, source)
	addr := r.References["a"]
	want := (int('B') << 8) | int('A')
	if got := cellAt(t, r, addr).Value; got != want {
		t.Errorf("a\"AB\": got 0x%04x, want 0x%04x", got, want)
	}
}

func TestUndefinedReferenceSuggestsClosestMatch(t *testing.T) {
	source := `
.vecreset @foe
.sec code
foe: HALT
bar: JUMP @foo
`
	checkASMError(t, source, "reference to undefined location foo, did you mean foe?")
}

func TestDuplicateLabelLastBindingWins(t *testing.T) {
	source := `
.vecreset @start
.sec code
start: NOOP
start: HALT
`
	r := assemble(t, source)
	addr, ok := r.References["start"]
	if !ok {
		t.Fatal("start label not bound")
	}
	if cellAt(t, r, addr).Value != 0x0000 {
		t.Errorf("expected last binding (HALT) to win, got 0x%04x", cellAt(t, r, addr).Value)
	}
}

func TestUnknownInstruction(t *testing.T) {
	checkASMError(t, "FOOBAR 0x1", "unknown instruction FOOBAR on line 1")
}

func TestUnknownDirective(t *testing.T) {
	checkASMError(t, ".bogus 1", "unknown directive .bogus on line 1")
}

func TestUnknownVector(t *testing.T) {
	checkASMError(t, ".vecbogus @start\nstart: HALT", "unknown vector bogus on line 1")
}

func TestLabelBeforeSecBindsToNextItem(t *testing.T) {
	source := `
.vecreset @start
entry:
.sec code
start: NOOP
`
	r := assemble(t, source)
	entryAddr, ok := r.References["entry"]
	if !ok {
		t.Fatal("entry label not bound")
	}
	startAddr, ok := r.References["start"]
	if !ok {
		t.Fatal("start label not bound")
	}
	if entryAddr != startAddr {
		t.Errorf("entry should bind to the same item as start: entry=0x%03x start=0x%03x", entryAddr, startAddr)
	}
}

func TestEmptySourceProducesNoCells(t *testing.T) {
	source := "# just a comment\n\n   \n"
	r := assemble(t, source)
	if len(r.Cells) != 0 {
		t.Errorf("expected no cells, got %d", len(r.Cells))
	}
	text := string(r.SerializeText())
	if !strings.Contains(text, "START_PROGRAM\nEND_PROGRAM") {
		t.Errorf("expected empty body between START_PROGRAM/END_PROGRAM markers, got %q", text)
	}
}

// Section sizing does not count the 16 reserved cells, so a section
// demand of exactly 4080 items (4096-16) already trips the "memory
// full" check: the original assembler rejects at >= 4080, not only
// when strictly over.
func TestMemoryFullAtExactBoundary(t *testing.T) {
	var b strings.Builder
	b.WriteString(".vecreset @start\n.sec code\nstart: HALT\n")
	for i := 0; i < 4079; i++ {
		b.WriteString(".const 0\n")
	}
	checkASMError(t, b.String(), "memory full")
}

func TestMemoryJustUnderBoundaryFits(t *testing.T) {
	var b strings.Builder
	b.WriteString(".vecreset @start\n.sec code\nstart: HALT\n")
	for i := 0; i < 4078; i++ {
		b.WriteString(".const 0\n")
	}
	assemble(t, b.String())
}

func TestIntegerBases(t *testing.T) {
	source := `
.vecreset @start
.sec data
a: .const 0x2A
b: .const 0b101010
c: .const 42
.sec code
start: HALT
`
	r := assemble(t, source)
	for _, name := range []string{"a", "b", "c"} {
		addr := r.References[name]
		if got := cellAt(t, r, addr).Value; got != 42 {
			t.Errorf("%s: got %d, want 42", name, got)
		}
	}
}

func TestQuestionMarkIsZero(t *testing.T) {
	source := `
.vecreset @start
.sec data
a: .const ?
.sec code
start: HALT
`
	r := assemble(t, source)
	addr := r.References["a"]
	if got := cellAt(t, r, addr).Value; got != 0 {
		t.Errorf("?: got %d, want 0", got)
	}
}

func TestSerializeBinaryAndHexAgreeWithText(t *testing.T) {
	source := `
.vecreset @start
.sec code
start: HALT
`
	r := assemble(t, source)

	bin := r.SerializeBinary()
	if len(bin) != (0x011)*2 {
		t.Errorf("binary image length: got %d, want %d", len(bin), 0x011*2)
	}

	haltOffset := 0x010 * 2
	if bin[haltOffset] != 0x00 || bin[haltOffset+1] != 0x00 {
		t.Errorf("halt cell bytes: got %02x%02x, want 0000", bin[haltOffset], bin[haltOffset+1])
	}

	resetOffset := 0x000 * 2
	if bin[resetOffset] != 0x20 || bin[resetOffset+1] != 0x10 {
		t.Errorf("reset cell bytes: got %02x%02x, want 2010", bin[resetOffset], bin[resetOffset+1])
	}

	hex := string(r.SerializeHex())
	if !strings.HasPrefix(hex, "2010") {
		t.Errorf("hex image: got %q, want prefix 2010", hex)
	}

	text := string(r.SerializeText())
	if !strings.Contains(text, "MEM(0x000, 0x2, 0x010)\n") {
		t.Errorf("text listing: got %q, want reset cell MEM(0x000, 0x2, 0x010)", text)
	}
	if !strings.Contains(text, "MEM(0x010, 0x0, 0x000)\n") {
		t.Errorf("text listing: got %q, want halt cell MEM(0x010, 0x0, 0x000)", text)
	}
}

func TestSectionsPackAfterReservedRegion(t *testing.T) {
	source := `
.vecreset @start
.sec first
a: .const 1
.sec second
b: .const 2
.sec code
start: HALT
`
	r := assemble(t, source)
	first := r.Regions["first"]
	second := r.Regions["second"]
	if first.Start != 0x010 {
		t.Errorf("first section start: got 0x%03x, want 0x010", first.Start)
	}
	if second.Start != first.End+1 {
		t.Errorf("second section should immediately follow first: second.Start=0x%03x first.End=0x%03x", second.Start, first.End)
	}
}
