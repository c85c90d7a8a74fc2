// gaddag_test.go
//
// Copyright (C) 2024 Vilhjálmur Þorsteinsson / Miðeind ehf.

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package crossplay

import (
	"bytes"
	"testing"
)

var testWords = []string{
	"RETAINS", "RETINAS", "NASTIER", "CAT", "CATS", "DOGS", "DOG",
	"QUARTZ", "GO", "TO", "AN", "AT", "AS", "TS",
}

var testTwoLetter = []string{"GO", "TO", "AN", "AT", "AS", "TS"}

func buildTestGaddag(t *testing.T) *GADDAG {
	t.Helper()
	g, err := BuildFromDictionary(testWords, testTwoLetter)
	if err != nil {
		t.Fatalf("BuildFromDictionary failed: %v", err)
	}
	return g
}

// Property 1: every word of length >= 2 that was inserted is found,
// and equal-or-shorter non-words are rejected.
func TestGaddagContainsPositiveAndNegative(t *testing.T) {
	g := buildTestGaddag(t)
	for _, w := range testWords {
		if !g.Contains(w) {
			t.Errorf("Contains(%q) = false, want true", w)
		}
		if !g.Contains(strings_ToLower_helper(w)) {
			t.Errorf("Contains(%q) is case-sensitive, want case-insensitive match", w)
		}
	}
	negatives := []string{"XYZ", "BLEX", "CA", "DOGGY", "RETAIN"}
	for _, w := range negatives {
		if g.Contains(w) {
			t.Errorf("Contains(%q) = true, want false", w)
		}
	}
}

func strings_ToLower_helper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Property 1: a save/load round trip preserves Contains exactly.
func TestGaddagSaveLoadRoundTrip(t *testing.T) {
	g := buildTestGaddag(t)
	var buf bytes.Buffer
	if err := g.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	loaded, err := ReadGADDAG(&buf)
	if err != nil {
		t.Fatalf("ReadGADDAG failed: %v", err)
	}
	if loaded.WordCount() != g.WordCount() {
		t.Errorf("WordCount after round trip = %d, want %d", loaded.WordCount(), g.WordCount())
	}
	for _, w := range testWords {
		if !loaded.Contains(w) {
			t.Errorf("after round trip, Contains(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"XYZ", "BLEX"} {
		if loaded.Contains(w) {
			t.Errorf("after round trip, Contains(%q) = true, want false", w)
		}
	}
}

func TestReadGADDAGRejectsBadMagic(t *testing.T) {
	bad := bytes.NewBufferString("NOPE-this-is-not-a-gaddag")
	if _, err := ReadGADDAG(bad); err == nil {
		t.Errorf("ReadGADDAG accepted a buffer with no CGDG magic")
	}
}

func TestBuildFromDictionaryRejectsInvalidCharacters(t *testing.T) {
	if _, err := BuildFromDictionary([]string{"CAT1"}, nil); err == nil {
		t.Errorf("BuildFromDictionary accepted a word containing a digit")
	}
}
