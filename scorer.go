// scorer.go
//
// Copyright (C) 2024 Vilhjálmur Þorsteinsson / Miðeind ehf.
//
// The move scorer (C5): point value of a candidate play including
// cross-words, premiums, blanks, and the bingo bonus. Adapted from
// GoSkrafl's move.go TileMove.Score, which performs the same
// single-pass-over-covered-cells algorithm against Board.Fragment/
// CrossScore; generalized here to Crossplay's Move value type and
// the spec's explicit new/existing-cell partition, with a
// parameterized BingoBonus.

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

// ScoreMove computes the total score and cross-words for a candidate
// play against the board state BEFORE the play is applied (§4.4).
// word is the full word as it will appear on the board (uppercase;
// a blank's played letter, not '?'). row, col are 1-indexed. blanks
// is the set of 0-based indices within word that are blanks.
func ScoreMove(board *Board, word string, row, col int, dir Direction, blanks map[int]bool, tileScores map[rune]int) (score int, crossWords []CrossWord, newTiles int) {
	r0, c0 := row-1, col-1
	wordMultiplier := 1
	mainScore := 0

	for i := 0; i < len(word); i++ {
		r, c := r0, c0
		if dir == Horizontal {
			c += i
		} else {
			r += i
		}
		sq := board.Sq(r, c)
		if sq == nil {
			continue
		}
		isNew := sq.Tile == nil

		var letterValue int
		if isNew {
			if blanks[i] {
				letterValue = 0
			} else {
				letterValue = tileScores[rune(word[i])]
			}
		} else {
			// Existing tile: its own Score is already 0 if it was a
			// previously-placed blank (I1).
			letterValue = sq.Tile.Score
		}

		letterMultiplier := 1
		if isNew {
			letterMultiplier = sq.LetterMultiplier
			wordMultiplier *= sq.WordMultiplier
			newTiles++
		}
		mainScore += letterValue * letterMultiplier

		if isNew {
			crossHorizontal := dir == Vertical
			hasCrossing, crossNeighborScore := board.CrossScore(r, c, crossHorizontal)
			if hasCrossing {
				thisLetterContribution := letterValue * letterMultiplier
				crossTotal := (thisLetterContribution + crossNeighborScore) * sq.WordMultiplier
				left, right := board.CrossWords(r, c, crossHorizontal)
				crossWordText := left + string(word[i]) + right
				var startRow, startCol int
				var crossDir Direction
				if crossHorizontal {
					crossDir = Horizontal
					startRow, startCol = r+1, c-len(left)+1
				} else {
					crossDir = Vertical
					startRow, startCol = r-len(left)+1, c+1
				}
				crossWords = append(crossWords, CrossWord{
					Word:      crossWordText,
					Row:       startRow,
					Col:       startCol,
					Direction: crossDir,
					Score:     crossTotal,
				})
			}
		}
	}

	mainScore *= wordMultiplier
	score = mainScore
	for _, cw := range crossWords {
		score += cw.Score
	}
	if newTiles == RackSize {
		score += BingoBonus
	}
	return
}
