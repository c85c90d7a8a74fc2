// dictionary.go
//
// Copyright (C) 2024 Vilhjálmur Þorsteinsson / Miðeind ehf.
//
// Dictionary membership, hooks, and pattern search (C2). Grounded on
// GoSkrafl's dawg.go package-level dictionary singletons (embed.FS
// loading, panic-on-load-failure) and on the packed GADDAG's own
// dictionary-membership contract in spec §4.2.

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

import "strings"

// Dictionary is a set of legal words (length >= 2) plus an explicit
// two-letter allow-list, backed by a packed GADDAG for membership
// tests and optional precomputed hook/base-score indices.
type Dictionary struct {
	gaddag       *GADDAG
	twoLetter    map[string]bool
	frontHooks   map[string]string // word -> sorted letters L such that L+word is valid
	backHooks    map[string]string // word -> sorted letters L such that word+L is valid
	baseScores   map[string]int
	wordsByLen   map[int][]string // only populated if explicitly indexed, for find_words fallback
}

// NewDictionary builds a Dictionary wrapping an already-built
// GADDAG and the explicit two-letter allow-list used both to seed
// the GADDAG and to resolve length-2 lookups (the allow-list takes
// precedence over general GADDAG membership at length 2).
func NewDictionary(gaddag *GADDAG, twoLetterWords []string) *Dictionary {
	d := &Dictionary{
		gaddag:    gaddag,
		twoLetter: make(map[string]bool, len(twoLetterWords)),
	}
	for _, w := range twoLetterWords {
		d.twoLetter[strings.ToUpper(w)] = true
	}
	return d
}

// IsValid reports dictionary membership: length 2 is resolved by
// the two-letter allow-list; length >= 3 by the GADDAG.
func (d *Dictionary) IsValid(word string) bool {
	word = strings.ToUpper(word)
	if len(word) == 2 {
		return d.twoLetter[word]
	}
	if len(word) < 2 {
		return false
	}
	return d.gaddag.Contains(word)
}

// BuildHookIndex precomputes front/back hooks and base scores for
// every word in words, using tileScores for the base-score
// component. Optional: GetFrontHooks/GetBackHooks fall back
// to a 26-letter scan when no index has been built.
func (d *Dictionary) BuildHookIndex(words []string, tileScores map[rune]int) {
	d.frontHooks = make(map[string]string, len(words))
	d.backHooks = make(map[string]string, len(words))
	d.baseScores = make(map[string]int, len(words))
	for _, w := range words {
		w = strings.ToUpper(w)
		d.frontHooks[w] = d.scanHooks(w, true)
		d.backHooks[w] = d.scanHooks(w, false)
		score := 0
		for _, r := range w {
			score += tileScores[r]
		}
		d.baseScores[w] = score
	}
}

func (d *Dictionary) scanHooks(word string, front bool) string {
	var sb strings.Builder
	for c := byte('A'); c <= 'Z'; c++ {
		var candidate string
		if front {
			candidate = string(c) + word
		} else {
			candidate = word + string(c)
		}
		if d.IsValid(candidate) {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// GetFrontHooks returns the letters L such that L+word is valid,
// using the precomputed index if available, else a live 26-letter
// scan.
func (d *Dictionary) GetFrontHooks(word string) string {
	word = strings.ToUpper(word)
	if d.frontHooks != nil {
		if hooks, ok := d.frontHooks[word]; ok {
			return hooks
		}
	}
	return d.scanHooks(word, true)
}

// GetBackHooks returns the letters L such that word+L is valid.
func (d *Dictionary) GetBackHooks(word string) string {
	word = strings.ToUpper(word)
	if d.backHooks != nil {
		if hooks, ok := d.backHooks[word]; ok {
			return hooks
		}
	}
	return d.scanHooks(word, false)
}

// BaseScore returns the precomputed letter-value sum for word, if
// the hook index has been built; ok is false otherwise.
func (d *Dictionary) BaseScore(word string) (score int, ok bool) {
	if d.baseScores == nil {
		return 0, false
	}
	score, ok = d.baseScores[strings.ToUpper(word)]
	return
}

// FindWords returns every dictionary word of len(pattern) matching
// pattern position-wise, where pattern characters are uppercase
// letters or '?' wildcards. Requires an indexed word list grouped by
// length; see IndexWordsByLength.
func (d *Dictionary) FindWords(pattern string) []string {
	pattern = strings.ToUpper(pattern)
	candidates := d.wordsByLen[len(pattern)]
	result := make([]string, 0)
	for _, w := range candidates {
		if matchesPattern(w, pattern) {
			result = append(result, w)
		}
	}
	return result
}

// IndexWordsByLength groups words by length to support FindWords.
func (d *Dictionary) IndexWordsByLength(words []string) {
	d.wordsByLen = make(map[int][]string)
	for _, w := range words {
		w = strings.ToUpper(w)
		d.wordsByLen[len(w)] = append(d.wordsByLen[len(w)], w)
	}
}

func matchesPattern(word, pattern string) bool {
	if len(word) != len(pattern) {
		return false
	}
	for i := 0; i < len(word); i++ {
		if pattern[i] != '?' && pattern[i] != word[i] {
			return false
		}
	}
	return true
}
