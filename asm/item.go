// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"io"
	"strings"
)

// itemKind discriminates the three shapes a freshly parsed line can
// take, and the three extra shapes the pipeline narrows an item into
// once addresses have been assigned. A single struct with a
// discriminant, rather than a Go interface per variant, keeps the
// pipeline's exhaustiveness checking centralized in each stage's
// switch statement.
type itemKind int

const (
	itemLabel itemKind = iota
	itemDirective
	itemInstruction
	itemAddressValue
	itemUnresolvedAddressValue
	itemUnresolvedAddressConstant
)

// item is the pipeline's single in-flight value type. Only the fields
// relevant to its kind are populated; stages are expected to switch on
// kind and touch only the matching fields.
type item struct {
	kind itemKind

	// itemLabel, itemDirective, itemInstruction
	name    string
	value   Value
	hasVal  bool
	labels  map[string]bool
	section string
	line    int

	// itemAddressValue / itemUnresolvedAddressValue / itemUnresolvedAddressConstant
	resolved        AddressValue
	unresolved      UnresolvedAddressValue
	unresolvedConst UnresolvedAddressConstant
}

// parseLines reads every line from r and parses it into zero or more
// items, in source order.
func parseLines(r io.Reader) ([]item, error) {
	var items []item
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineItems, err := parseLine(scanner.Text(), lineNumber)
		if err != nil {
			return nil, err
		}
		items = append(items, lineItems...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// parseLine tokenizes one source line into zero or more items: a run
// of peeled-off labels followed by at most one directive or
// instruction.
func parseLine(line string, lineNumber int) ([]item, error) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return nil, nil
	}

	var items []item

	for strings.Contains(line, ":") {
		idx := strings.Index(line, ":")
		prefix := line[:idx]
		if !isCName(prefix) {
			break
		}
		items = append(items, item{kind: itemLabel, name: prefix})
		line = strings.TrimSpace(line[idx+1:])
		if line == "" {
			break
		}
	}

	if line == "" {
		return items, nil
	}

	name, rest := splitFirstField(line)
	value, hasVal, err := parseValue(rest, lineNumber)
	if err != nil {
		return nil, err
	}

	kind := itemInstruction
	if len(name) > 0 && name[0] == '.' {
		kind = itemDirective
	}

	items = append(items, item{
		kind:    kind,
		name:    name,
		value:   value,
		hasVal:  hasVal,
		labels:  nil,
		section: "any",
		line:    lineNumber,
	})
	return items, nil
}

// splitFirstField splits line on its first single space, returning the
// leading token and the untouched remainder. This mirrors the
// original's line.split(" ") / " ".join(value), which does not
// collapse runs of spaces; using strings.Fields here would mangle a
// literal like s"  " (two consecutive spaces) into a single space
// before parseValue ever sees it.
func splitFirstField(line string) (name string, rest string) {
	idx := strings.Index(line, " ")
	if idx == -1 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}
