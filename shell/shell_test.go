// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runShell(t *testing.T, commandLines string) string {
	t.Helper()
	s := New()
	var out strings.Builder
	s.Run(strings.NewReader(commandLines), &out, false)
	return out.String()
}

func writeTempSource(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.sma")
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAssemblesSourceFile(t *testing.T) {
	path := writeTempSource(t, ".vecreset @start\n.sec code\nstart: HALT\n")
	out := runShell(t, "load "+path+"\n")
	if !strings.Contains(out, "Loaded") {
		t.Errorf("expected load confirmation, got %q", out)
	}
}

func TestRegionsListsSectionsAfterLoad(t *testing.T) {
	path := writeTempSource(t, ".vecreset @start\n.sec code\nstart: HALT\n")
	out := runShell(t, "load "+path+"\nregions\n")
	if !strings.Contains(out, "vectors") || !strings.Contains(out, "code") {
		t.Errorf("expected vectors and code regions listed, got %q", out)
	}
}

func TestFindResolvesExactName(t *testing.T) {
	path := writeTempSource(t, ".vecreset @start\n.sec code\nstart: HALT\n")
	out := runShell(t, "load "+path+"\nfind start\n")
	if !strings.Contains(out, "start = 0x010") {
		t.Errorf("expected start resolved to 0x010, got %q", out)
	}
}

func TestFindSuggestsCloseMatchOnMiss(t *testing.T) {
	path := writeTempSource(t, ".vecreset @start\n.sec code\nstart: HALT\nfoe: NOOP\n")
	out := runShell(t, "load "+path+"\nfind foo\n")
	if !strings.Contains(out, "did you mean foe?") {
		t.Errorf("expected suggestion for foo, got %q", out)
	}
}

func TestDumpBeforeLoadReportsNothingLoaded(t *testing.T) {
	out := runShell(t, "dump 0x000\n")
	if !strings.Contains(out, "Nothing loaded.") {
		t.Errorf("expected nothing-loaded message, got %q", out)
	}
}

func TestQuitStopsTheLoop(t *testing.T) {
	out := runShell(t, "quit\nregions\n")
	if strings.Contains(out, "Nothing loaded.") {
		t.Errorf("expected quit to stop before processing regions, got %q", out)
	}
}
