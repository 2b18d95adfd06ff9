// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// resolveReferences replaces every still-symbolic item with its final
// AddressValue, looking up symbols in refs. Already-resolved items
// pass straight through.
func resolveReferences(refs ReferenceTable, items []item) ([]AddressValue, error) {
	resolved := make([]AddressValue, 0, len(items))
	for _, it := range items {
		switch it.kind {
		case itemAddressValue:
			resolved = append(resolved, it.resolved)
		case itemUnresolvedAddressValue:
			av, err := it.unresolved.resolve(refs)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, av)
		case itemUnresolvedAddressConstant:
			av, err := it.unresolvedConst.resolve(refs)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, av)
		default:
			return nil, errorf("unresolved item of unexpected kind, this is a bug")
		}
	}
	return resolved, nil
}
