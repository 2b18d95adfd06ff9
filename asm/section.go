// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "sort"

// totalAddressSpace is the fixed size of SMA16's address space: 4096
// cells, addressable with 12 bits.
const totalAddressSpace = 0x1000

// reservedCells is the number of cells pre-claimed by the vectors and
// configuration regions (0x000-0x00F), which every section budget
// calculation must leave room for.
const reservedCells = 16

// sectionDemand is one user section's name and the number of cells its
// items will consume, in the order the section was first introduced by
// the source. Packing must be deterministic across runs (assembling
// the same source twice must yield byte-identical output), so section
// order is carried explicitly rather than relying on map iteration.
type sectionDemand struct {
	name string
	size int
}

// sectionSizes walks the non-vector items and reports, in
// first-appearance order, how many cells each section's items will
// occupy.
func sectionSizes(items []item) []sectionDemand {
	var order []string
	sizes := map[string]int{}
	for _, it := range items {
		switch it.kind {
		case itemUnresolvedAddressValue, itemUnresolvedAddressConstant, itemAddressValue:
			continue
		}
		if _, seen := sizes[it.section]; !seen {
			order = append(order, it.section)
		}
		sizes[it.section]++
	}

	demand := make([]sectionDemand, len(order))
	for i, name := range order {
		demand[i] = sectionDemand{name: name, size: sizes[name]}
	}
	return demand
}

// checkMemoryBudget fails once the sum of every section's demand
// reaches 4080 (the address space minus the 16 reserved cells); a
// demand of exactly 4080 is rejected as well.
func checkMemoryBudget(sizes []sectionDemand) error {
	total := 0
	for _, d := range sizes {
		total += d.size
	}
	if total >= totalAddressSpace-reservedCells {
		return errorf("memory full")
	}
	return nil
}

// planSections packs every section in sizes into the region table, in
// the order given. The packing algorithm is greedy and deterministic,
// not optimal: for each section it scans the already-used ranges and
// takes the first free slot immediately following one of them. It
// never backtracks or reshuffles, so inputs that would require
// reshuffling to fit are rejected with "ran out of free space" even
// when a smarter packer could have fit them.
func planSections(regions RegionTable, sizes []sectionDemand) error {
	type span struct{ start, end int }

	var used []span

	inUsedSpace := func(start, end int) bool {
		if start > 0xFFF || end > 0xFFF {
			return true
		}
		for _, u := range used {
			if (start >= u.start && start <= u.end) || (end >= u.start && end <= u.end) {
				return true
			}
		}
		return false
	}

	findFreeSpace := func(size int) (int, int, error) {
		for _, u := range used {
			start, end := u.end+1, u.end+size
			if !inUsedSpace(start, end) {
				return start, end, nil
			}
		}
		return 0, 0, errorf("ran out of free space")
	}

	// Seed used_space with every currently registered region,
	// checking each one against the ranges already seen so that two
	// overlapping reserved/pre-existing regions are caught as a bug.
	for _, name := range sortedRegionNames(regions) {
		region := regions[name]
		if inUsedSpace(region.Start, region.End) {
			return errorf("region %s assigned in used space, memory is likely full", name)
		}
		used = append(used, span{region.Start, region.End})
	}

	for _, d := range sizes {
		start, end, err := findFreeSpace(d.size)
		if err != nil {
			return err
		}
		used = append(used, span{start, end})
		regions[d.name] = &Region{Type: regionUser, Start: start, End: end, Count: 0}
	}

	return nil
}

// sortedRegionNames returns a region table's keys in a stable order so
// that repeated assemblies of the same source behave identically.
func sortedRegionNames(regions RegionTable) []string {
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
