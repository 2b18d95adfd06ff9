// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// assignVectors converts every ".vec<name>" directive into an
// UnresolvedAddressValue: a JUMP instruction pre-addressed at the
// vector's fixed location. Everything else passes through unchanged.
func assignVectors(items []item) ([]item, error) {
	out := make([]item, 0, len(items))
	for _, it := range items {
		if it.kind == itemDirective && strings.HasPrefix(it.name, ".vec") {
			vectorName := it.name[len(".vec"):]
			addr, ok := vectors[vectorName]
			if !ok {
				return nil, errorf("unknown vector %s on line %d", vectorName, it.line)
			}
			if !it.hasVal || it.value.kind != valReference {
				return nil, errorf("vector %s requires a reference value on line %d", vectorName, it.line)
			}
			out = append(out, item{
				kind: itemUnresolvedAddressValue,
				unresolved: UnresolvedAddressValue{
					Address: addr,
					Opcode:  JUMP,
					Symbol:  it.value.s,
				},
			})
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
