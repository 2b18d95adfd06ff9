// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// assignConstants allocates an address for every ".const" directive,
// binds its labels in the reference table, and serializes its value.
// Everything else passes through unchanged. It mutates refs and
// regions as it walks.
func assignConstants(refs ReferenceTable, regions RegionTable, items []item) ([]item, error) {
	out := make([]item, 0, len(items))
	for _, it := range items {
		if it.kind != itemDirective || it.name != ".const" {
			out = append(out, it)
			continue
		}

		address, err := allocate(regions, it.section, it.line)
		if err != nil {
			return nil, err
		}
		for label := range it.labels {
			refs[label] = address
		}

		value, err := it.value.serialize()
		if err != nil {
			return nil, err
		}

		switch v := value.(type) {
		case string:
			out = append(out, item{kind: itemUnresolvedAddressConstant, unresolvedConst: UnresolvedAddressConstant{Address: address, Symbol: v}})
		case int:
			out = append(out, item{kind: itemAddressValue, resolved: AddressValue{Address: address, Value: v}})
		}
	}
	return out, nil
}

// assignInstructions allocates an address for every instruction,
// resolves its mnemonic against the opcode table, binds its labels,
// and serializes its data field. Already-resolved items (produced by
// assignVectors) pass through unchanged. Any directive remaining at
// this point is unrecognized.
func assignInstructions(refs ReferenceTable, regions RegionTable, items []item) ([]item, error) {
	out := make([]item, 0, len(items))
	for _, it := range items {
		switch it.kind {
		case itemInstruction:
			address, err := allocate(regions, it.section, it.line)
			if err != nil {
				return nil, err
			}
			for label := range it.labels {
				refs[label] = address
			}

			opcode, ok := opcodes[strings.ToUpper(it.name)]
			if !ok {
				return nil, errorf("unknown instruction %s on line %d", it.name, it.line)
			}

			value, err := it.value.serialize()
			if err != nil {
				return nil, err
			}

			switch v := value.(type) {
			case string:
				out = append(out, item{kind: itemUnresolvedAddressValue, unresolved: UnresolvedAddressValue{Address: address, Opcode: opcode, Symbol: v}})
			case int:
				cell := ((int(opcode) << 12) & 0xF000) | (v & 0x0FFF)
				out = append(out, item{kind: itemAddressValue, resolved: AddressValue{Address: address, Value: cell}})
			}

		case itemDirective:
			return nil, errorf("unknown directive %s on line %d", it.name, it.line)

		default:
			out = append(out, it)
		}
	}
	return out, nil
}

// allocate claims the next free cell in the named section, bumping its
// region's allocation count. Exhaustion is a bug: the planner sized
// every section to fit exactly the items assigned to it.
func allocate(regions RegionTable, section string, line int) (int, error) {
	region, ok := regions[section]
	if !ok {
		return 0, errorf("item from line %d has section %s which is not in region table, this is a bug", line, section)
	}

	address := region.Start + region.Count
	region.Count++

	if region.Start+region.Count-1 > region.End {
		return 0, errorf("item from line %d did not fit in section %s, this is a bug", line, section)
	}

	return address, nil
}
