// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// glueLabelsAndSections attaches accumulated labels and the current
// section name to every directive and instruction. Labels accumulate
// across ".sec" directives (section changes do not consume pending
// labels) and are cleared only once attached to a real item.
func glueLabelsAndSections(items []item) ([]item, error) {
	glued := make([]item, 0, len(items))
	labels := map[string]bool{}
	section := "any"

	for _, it := range items {
		switch it.kind {
		case itemLabel:
			labels[it.name] = true

		case itemDirective:
			if it.name == ".sec" {
				if !it.hasVal || it.value.kind != valRaw {
					return nil, errorf("section name with invalid value on line %d", it.line)
				}
				section = it.value.s
				continue
			}
			it.labels = labels
			it.section = section
			glued = append(glued, it)
			labels = map[string]bool{}

		default: // itemInstruction
			it.labels = labels
			it.section = section
			glued = append(glued, it)
			labels = map[string]bool{}
		}
	}

	return glued, nil
}
