// movegen.go
//
// Copyright (C) 2024 Vilhjálmur Þorsteinsson / Miðeind ehf.
//
// Anchor-driven move generator (C4): Gordon's two mutually-recursive
// GADDAG traversal (gen_left/gen_right), grounded on the structure of
// engine/move_finder.py's optimization notes and GoSkrafl's
// axis-parallel, anchor-square movegen.go (concurrent fan-out over
// anchors, Navigator-style backtracking) -- rewritten against the
// packed GADDAG's offset-level primitives instead of GoSkrafl's DAWG
// navigators, since the two tries have incompatible encodings.
//
// The distance-to-nearest-upstream-anchor optimization named in the
// spec is not applied here: gen_left is instead bounded only by board
// edges and existing tiles, and (word, start, direction) deduplication
// absorbs the resulting redundant reachability from neighboring
// anchors. See DESIGN.md.

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
	"fmt"
	"sort"
	"unicode"

	lru "github.com/hashicorp/golang-lru/simplelru"
)

// CrossSet is the set of letters legal at an empty cell for a given
// traversal direction, given the perpendicular board context. any
// marks an unconstrained cell (no perpendicular neighbor).
type CrossSet struct {
	any  bool
	mask uint32
}

// AnyCrossSet returns the unconstrained cross-set.
func AnyCrossSet() CrossSet { return CrossSet{any: true} }

// Allows reports whether letter may be placed given this cross-set.
func (cs CrossSet) Allows(letter byte) bool {
	if cs.any {
		return true
	}
	return cs.mask&(1<<uint(letter-'A')) != 0
}

func computeCrossSet(board *Board, dict *Dictionary, row, col int, dir Direction) CrossSet {
	crossHorizontal := dir == Vertical
	left, right := board.CrossWords(row, col, crossHorizontal)
	if left == "" && right == "" {
		return AnyCrossSet()
	}
	var mask uint32
	for c := byte('A'); c <= 'Z'; c++ {
		candidate := left + string(c) + right
		if dict.IsValid(candidate) {
			mask |= 1 << uint(c-'A')
		}
	}
	return CrossSet{mask: mask}
}

type crossSetKey struct {
	row, col int
	dir      Direction
}

// MoveGenerator produces every legal Move for a board/rack pair via
// anchor-driven GADDAG traversal. Cross-sets are memoized in a
// task-local LRU cache, rebuilt per board state (§5: the
// cross-check memoization table is task-local).
type MoveGenerator struct {
	board      *Board
	dict       *Dictionary
	gaddag     *GADDAG
	tileScores map[rune]int
	crossCache *lru.LRU
}

// NewMoveGenerator constructs a generator over a fixed board
// snapshot. Cross-sets are recomputed fresh for this snapshot.
func NewMoveGenerator(board *Board, dict *Dictionary, tileScores map[rune]int) *MoveGenerator {
	cache, _ := lru.NewLRU(4*BoardSize*BoardSize, nil)
	return &MoveGenerator{board: board, dict: dict, gaddag: dict.gaddag, tileScores: tileScores, crossCache: cache}
}

func (g *MoveGenerator) crossSet(row, col int, dir Direction) CrossSet {
	key := crossSetKey{row, col, dir}
	if v, ok := g.crossCache.Get(key); ok {
		return v.(CrossSet)
	}
	cs := computeCrossSet(g.board, g.dict, row, col, dir)
	g.crossCache.Add(key, cs)
	return cs
}

// anchors returns every anchor cell on the board (§4.3).
func (g *MoveGenerator) anchors() []Coordinate {
	result := make([]Coordinate, 0, 16)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if g.board.IsAnchor(r, c) {
				result = append(result, Coordinate{Row: r, Col: c})
			}
		}
	}
	return result
}

// Generate returns every legal Move for rack (letters plus '?' for
// blanks), sorted by score descending, deduplicated on
// (word, start, direction). An empty rack with no blanks returns an
// empty (not erroneous) move list.
func (g *MoveGenerator) Generate(rack []rune) []Move {
	results := make([]Move, 0, 64)
	seen := make(map[string]bool)
	for _, anchor := range g.anchors() {
		for _, dir := range [2]Direction{Horizontal, Vertical} {
			run := newGenRun(g, dir, anchor, rack, &results, seen)
			run.genLeft(0, RootOffset)
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// cellEntry is one assembled letter of the word under construction.
type cellEntry struct {
	letter   byte
	isBlank  bool
	fromRack bool
	valid    bool
}

// genRun holds the mutable state of one anchor/direction traversal.
type genRun struct {
	gen        *MoveGenerator
	dir        Direction
	anchorRow  int
	anchorCol  int
	rackCount  map[byte]int
	origRack   []rune
	cellBuf    [2*BoardSize + 1]cellEntry
	leftExtent int
	results    *[]Move
	seen       map[string]bool
}

func newGenRun(g *MoveGenerator, dir Direction, anchor Coordinate, rack []rune, results *[]Move, seen map[string]bool) *genRun {
	counts := make(map[byte]int)
	for _, r := range rack {
		counts[byte(unicode.ToUpper(r))]++
	}
	return &genRun{
		gen: g, dir: dir, anchorRow: anchor.Row, anchorCol: anchor.Col,
		rackCount: counts, origRack: rack, results: results, seen: seen,
	}
}

const genCenter = BoardSize

func (run *genRun) posAt(offset int) (row, col int, ok bool) {
	if run.dir == Horizontal {
		row, col = run.anchorRow, run.anchorCol+offset
		ok = col >= 0 && col < BoardSize
	} else {
		row, col = run.anchorRow+offset, run.anchorCol
		ok = row >= 0 && row < BoardSize
	}
	return
}

func (run *genRun) setCell(offset int, letter byte, fromRack, isBlank bool) {
	run.cellBuf[genCenter+offset] = cellEntry{letter: letter, isBlank: isBlank, fromRack: fromRack, valid: true}
}

func (run *genRun) clearCell(offset int) {
	run.cellBuf[genCenter+offset] = cellEntry{}
}

// tryRackLetters invokes fn for every rack letter (and blank) that
// is both available and legal at (row, col) per its cross-set,
// passing the GADDAG child offset reached via node. The rack count
// is decremented/incremented around each call so fn may recurse.
func (run *genRun) tryRackLetters(node, row, col int, fn func(letter byte, isBlank bool, child int)) {
	cs := run.gen.crossSet(row, col, run.dir)
	for letter := byte('A'); letter <= 'Z'; letter++ {
		if run.rackCount[letter] <= 0 || !cs.Allows(letter) {
			continue
		}
		child := run.gen.gaddag.GetChild(node, charIndex(letter))
		if child < 0 {
			continue
		}
		run.rackCount[letter]--
		fn(letter, false, child)
		run.rackCount[letter]++
	}
	if run.rackCount[BlankLetter] > 0 {
		for letter := byte('A'); letter <= 'Z'; letter++ {
			if !cs.Allows(letter) {
				continue
			}
			child := run.gen.gaddag.GetChild(node, charIndex(letter))
			if child < 0 {
				continue
			}
			run.rackCount[BlankLetter]--
			fn(letter, true, child)
			run.rackCount[BlankLetter]++
		}
	}
}

// genLeft extends the word leftward (or upward) from the anchor,
// mandatorily placing a letter at offset 0 (the anchor cell itself),
// then optionally continuing further left through empty cells or
// through a prefix of existing tiles, crossing the delimiter at
// every reachable node to hand off to genRightExtend.
func (run *genRun) genLeft(offset, node int) {
	row, col, ok := run.posAt(offset)
	if !ok {
		return
	}
	sq := run.gen.board.Sq(row, col)
	if sq.Tile != nil {
		letter := byte(unicode.ToUpper(sq.Tile.Meaning))
		child := run.gen.gaddag.GetChild(node, charIndex(letter))
		if child < 0 {
			return
		}
		run.setCell(offset, letter, false, sq.Tile.Letter == BlankLetter)
		run.crossAndExtendRight(offset, child)
		run.genLeft(offset-1, child)
		run.clearCell(offset)
		return
	}
	run.tryRackLetters(node, row, col, func(letter byte, isBlank bool, child int) {
		run.setCell(offset, letter, true, isBlank)
		run.crossAndExtendRight(offset, child)
		run.genLeft(offset-1, child)
		run.clearCell(offset)
	})
}

// crossAndExtendRight tries crossing the GADDAG delimiter edge from
// node (reached having just placed/matched the letter at offset),
// recording a play if the crossed-to node is itself terminal (the
// word ends at the anchor with no suffix), then extends rightward
// from the anchor itself: the suffix always resumes at offset 1
// regardless of how far left the prefix walked to reach offset.
func (run *genRun) crossAndExtendRight(offset, node int) {
	delim := run.gen.gaddag.GetChild(node, delimiterIndex)
	if delim < 0 {
		return
	}
	run.leftExtent = offset
	if run.gen.gaddag.IsTerminal(delim) {
		run.tryRecord(offset, 0)
	}
	run.genRightExtend(0, delim)
}

// genRightExtend extends the word rightward (or downward) from the
// point where the delimiter was crossed, walking through existing
// tiles (which must match the GADDAG edge) or placing rack letters
// at empty cells.
func (run *genRun) genRightExtend(offset, node int) {
	nextOffset := offset + 1
	row, col, ok := run.posAt(nextOffset)
	if !ok {
		return
	}
	sq := run.gen.board.Sq(row, col)
	if sq.Tile != nil {
		letter := byte(unicode.ToUpper(sq.Tile.Meaning))
		child := run.gen.gaddag.GetChild(node, charIndex(letter))
		if child < 0 {
			return
		}
		run.setCell(nextOffset, letter, false, sq.Tile.Letter == BlankLetter)
		if run.gen.gaddag.IsTerminal(child) {
			run.tryRecord(run.leftExtent, nextOffset)
		}
		run.genRightExtend(nextOffset, child)
		run.clearCell(nextOffset)
		return
	}
	run.tryRackLetters(node, row, col, func(letter byte, isBlank bool, child int) {
		run.setCell(nextOffset, letter, true, isBlank)
		if run.gen.gaddag.IsTerminal(child) {
			run.tryRecord(run.leftExtent, nextOffset)
		}
		run.genRightExtend(nextOffset, child)
		run.clearCell(nextOffset)
	})
}

// tryRecord builds and records a Move spanning cellBuf[leftExtent..rightExtent]
// if it is long enough, uses at least one rack tile, and no board tile
// directly precedes or follows it.
func (run *genRun) tryRecord(leftExtent, rightExtent int) {
	length := rightExtent - leftExtent + 1
	if length < 2 {
		return
	}
	for _, off := range []int{leftExtent - 1, rightExtent + 1} {
		if r, c, ok := run.posAt(off); ok {
			if sq := run.gen.board.Sq(r, c); sq != nil && sq.Tile != nil {
				return // the word would run on into an existing tile
			}
		}
	}
	hasNew := false
	word := make([]byte, 0, length)
	blanks := make(map[int]bool)
	tilesUsed := make([]rune, 0, length)
	for off := leftExtent; off <= rightExtent; off++ {
		cell := run.cellBuf[genCenter+off]
		if !cell.valid {
			return // gap: should not happen, defensive
		}
		word = append(word, cell.letter)
		if cell.fromRack {
			hasNew = true
			blanks[off-leftExtent] = cell.isBlank
			if cell.isBlank {
				tilesUsed = append(tilesUsed, BlankLetter)
			} else {
				tilesUsed = append(tilesUsed, rune(cell.letter))
			}
		}
	}
	if !hasNew {
		return
	}
	startRow, startCol, _ := run.posAt(leftExtent)
	startRow++
	startCol++

	blanksOnly := make(map[int]bool, len(blanks))
	for idx, isBlank := range blanks {
		if isBlank {
			blanksOnly[idx] = true
		}
	}

	key := fmt.Sprintf("%s|%d|%d|%s", word, startRow, startCol, run.dir)
	if run.seen[key] {
		return
	}

	score, crossWords, _ := ScoreMove(run.gen.board, string(word), startRow, startCol, run.dir, blanksOnly, run.gen.tileScores)

	leave := append([]rune(nil), run.origRack...)
	for _, t := range tilesUsed {
		leave = RemoveRune(leave, t)
	}

	blanksUsed := make([]int, 0, len(blanksOnly))
	for idx := range blanksOnly {
		blanksUsed = append(blanksUsed, idx)
	}
	sort.Ints(blanksUsed)

	run.seen[key] = true
	*run.results = append(*run.results, Move{
		Word:       string(word),
		Row:        startRow,
		Col:        startCol,
		Direction:  run.dir,
		Score:      score,
		TilesUsed:  tilesUsed,
		Leave:      SortedLeave(leave),
		BlanksUsed: blanksUsed,
		CrossWords: crossWords,
	})
}
