// board.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson

// This file implements the Board and Rack, together with their
// Squares and the Tiles that may occupy them.

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
	"strings"
)

// colIds are the column identifiers of a board
var colIds = [BoardSize]string{
	"1", "2", "3", "4", "5",
	"6", "7", "8", "9", "10",
	"11", "12", "13", "14", "15",
}

// rowIds are the row identifiers of a board
var rowIds = [BoardSize]string{
	"A", "B", "C", "D", "E",
	"F", "G", "H", "I", "J",
	"K", "L", "M", "N", "O",
}

// Board represents the board as a matrix of Squares, and caches an
// adjacency matrix for each Square, consisting of pointers to
// adjacent Squares.
type Board struct {
	Squares   [BoardSize][BoardSize]Square
	Adjacents [BoardSize][BoardSize]AdjSquares
	// NumTiles is the number of tiles on the board
	NumTiles int
	// Blanks records which occupied cells hold a tile that was
	// originally a blank (I1): its Letter displays as the assigned
	// meaning but scores zero.
	Blanks map[Coordinate]bool
}

// Indices into AdjSquares
const (
	ABOVE = 0
	LEFT  = 1
	RIGHT = 2
	BELOW = 3
)

// AdjSquares is a list of four Square pointers, with a nil if the
// corresponding adjacent Square does not exist.
type AdjSquares [4]*Square

// Rack represents a player's rack of tiles.
type Rack struct {
	Slots [RackSize]Square
	// Letters is a map of letters in the rack with their count,
	// with blank tiles represented by '?'.
	Letters map[rune]int
}

// Tile is a tile from the Bag.
type Tile struct {
	Letter   rune
	Meaning  rune // Meaning of a blank tile (if Letter == '?')
	Score    int  // The nominal score of the tile
	PlayedBy int  // Which player played the tile
}

// Square is a Board square or Rack slot that can hold a Tile.
type Square struct {
	Tile             *Tile
	LetterMultiplier int
	WordMultiplier   int
	Row              int // Board row 0..14, or -1 if a rack square
	Col              int // Board column 0..14, or rack slot 0..6
}

// String represents a Square as a string. An empty Square is
// indicated by a dot ('.').
func (square *Square) String() string {
	if square.Tile == nil {
		return "."
	}
	if square.Tile.Letter == BlankLetter && square.Row >= 0 {
		return string(square.Tile.Meaning)
	}
	return string(square.Tile.Letter)
}

// StartSquare returns the coordinate of the center cell, the single
// anchor on an empty board.
func (board *Board) StartSquare() Coordinate {
	return Coordinate{Row: BoardSize / 2, Col: BoardSize / 2}
}

// HasStartTile returns true if the board has a tile in the start
// square.
func (board *Board) HasStartTile() bool {
	start := board.StartSquare()
	sq := board.Sq(start.Row, start.Col)
	return sq != nil && sq.Tile != nil
}

// Sq returns a pointer to a Board square, or nil if out of range.
func (board *Board) Sq(row, col int) *Square {
	if board == nil || row < 0 || row >= BoardSize ||
		col < 0 || col >= BoardSize {
		return nil
	}
	return &board.Squares[row][col]
}

// TileAt returns a pointer to the Tile in a given Square.
func (board *Board) TileAt(row, col int) *Tile {
	if board == nil || row < 0 || row >= BoardSize ||
		col < 0 || col >= BoardSize {
		return nil
	}
	return board.Squares[row][col].Tile
}

// IsEmpty reports whether no tiles have been placed on the board.
func (board *Board) IsEmpty() bool {
	return board.NumTiles == 0
}

// PlaceTile places a tile in a board square, if it is empty.
func (board *Board) PlaceTile(row, col int, tile *Tile) bool {
	sq := board.Sq(row, col)
	if sq == nil || sq.Tile != nil {
		return false
	}
	sq.Tile = tile
	board.NumTiles++
	return true
}

// String represents a Board as a string.
func (board *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for i := 0; i < BoardSize; i++ {
		sb.WriteString(fmt.Sprintf("%2s ", colIds[i]))
	}
	sb.WriteString("\n")
	for i := 0; i < BoardSize; i++ {
		sb.WriteString(fmt.Sprintf("%s ", rowIds[i]))
		for j := 0; j < BoardSize; j++ {
			sb.WriteString(fmt.Sprintf(" %v ", board.Sq(i, j)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// NumAdjacentTiles returns the number of tiles on the board that are
// adjacent to the given coordinate.
func (board *Board) NumAdjacentTiles(row, col int) int {
	adj := &board.Adjacents[row][col]
	count := 0
	for _, sq := range adj {
		if sq != nil && sq.Tile != nil {
			count++
		}
	}
	return count
}

// IsAnchor reports whether (row, col) is empty and has at least one
// occupied 4-neighbor, or is the center cell on an empty board.
func (board *Board) IsAnchor(row, col int) bool {
	sq := board.Sq(row, col)
	if sq == nil || sq.Tile != nil {
		return false
	}
	if board.IsEmpty() {
		start := board.StartSquare()
		return row == start.Row && col == start.Col
	}
	return board.NumAdjacentTiles(row, col) > 0
}

// Fragment returns a list of the tiles that extend from the square
// at row, col in the direction specified (ABOVE/BELOW/LEFT/RIGHT).
func (board *Board) Fragment(row, col int, direction int) []*Tile {
	if row < 0 || col < 0 || row >= BoardSize || col >= BoardSize {
		return nil
	}
	if direction < ABOVE || direction > BELOW {
		return nil
	}
	frag := make([]*Tile, 0, BoardSize-1)
	for {
		sq := board.Adjacents[row][col][direction]
		if sq == nil || sq.Tile == nil {
			break
		}
		frag = append(frag, sq.Tile)
		row, col = sq.Row, sq.Col
	}
	return frag
}

// WordFragment returns the word formed by the tile sequence emanating
// from the given square in the indicated direction, not including the
// square itself.
func (board *Board) WordFragment(row, col int, direction int) (result string) {
	frag := board.Fragment(row, col, direction)
	if direction == LEFT || direction == ABOVE {
		for _, tile := range frag {
			result = string(tile.Meaning) + result
		}
	} else {
		for _, tile := range frag {
			result += string(tile.Meaning)
		}
	}
	return
}

// CrossScore returns the sum of the scores of the tiles crossing the
// given cell, either horizontally or vertically. If there are no
// crossings, returns false, 0.
func (board *Board) CrossScore(row, col int, horizontal bool) (hasCrossing bool, score int) {
	var direction int
	if horizontal {
		direction = LEFT
	} else {
		direction = ABOVE
	}
	for _, tile := range board.Fragment(row, col, direction) {
		score += tile.Score
		hasCrossing = true
	}
	if horizontal {
		direction = RIGHT
	} else {
		direction = BELOW
	}
	for _, tile := range board.Fragment(row, col, direction) {
		score += tile.Score
		hasCrossing = true
	}
	return
}

// CrossWords returns the word fragments to either side of (row, col):
// above/below if horizontal is false, left/right if horizontal is true.
func (board *Board) CrossWords(row, col int, horizontal bool) (left, right string) {
	var direction int
	if horizontal {
		direction = LEFT
	} else {
		direction = ABOVE
	}
	for _, tile := range board.Fragment(row, col, direction) {
		left = string(tile.Meaning) + left
	}
	if horizontal {
		direction = RIGHT
	} else {
		direction = BELOW
	}
	for _, tile := range board.Fragment(row, col, direction) {
		right += string(tile.Meaning)
	}
	return
}

// Init initializes an empty board with the Crossplay premium layout.
func (board *Board) Init() {
	for i := 0; i < BoardSize; i++ {
		for j := 0; j < BoardSize; j++ {
			sq := board.Sq(i, j)
			sq.Row = i
			sq.Col = j
			sq.LetterMultiplier = LetterMultiplier(i+1, j+1)
			sq.WordMultiplier = WordMultiplier(i+1, j+1)
		}
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			adj := &board.Adjacents[row][col]
			if row > 0 {
				adj[ABOVE] = board.Sq(row-1, col)
			}
			if row < BoardSize-1 {
				adj[BELOW] = board.Sq(row+1, col)
			}
			if col > 0 {
				adj[LEFT] = board.Sq(row, col-1)
			}
			if col < BoardSize-1 {
				adj[RIGHT] = board.Sq(row, col+1)
			}
		}
	}
	board.Blanks = make(map[Coordinate]bool)
}

// NewBoard allocates and initializes an empty board.
func NewBoard() *Board {
	board := &Board{}
	board.Init()
	return board
}

// Clone returns an independent copy of board, suitable as a per-task
// snapshot for concurrent lookahead (§5: the per-move board snapshot
// is copied into each task payload). Tile pointers are shared since
// Tile values are immutable once placed.
func (board *Board) Clone() *Board {
	clone := NewBoard()
	clone.NumTiles = board.NumTiles
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			clone.Squares[r][c].Tile = board.Squares[r][c].Tile
		}
	}
	for coord, isBlank := range board.Blanks {
		clone.Blanks[coord] = isBlank
	}
	return clone
}

// PlacedTile records one tile placement made by place_move, enough
// to let undo_move restore the prior state exactly (I3).
type PlacedTile struct {
	Row, Col int
	Tile     *Tile
	WasBlank bool
}

// PlaceMove places every covered cell of a move onto the board and
// returns the audit list place_move/undo_move needs. Cells already
// occupied are left untouched (they are "existing" cells of the
// play, not newly placed).
func (board *Board) PlaceMove(covers []Cover) ([]PlacedTile, error) {
	placed := make([]PlacedTile, 0, len(covers))
	for _, c := range covers {
		if c.Row < 0 || c.Row >= BoardSize || c.Col < 0 || c.Col >= BoardSize {
			board.UndoMove(placed)
			return nil, &InvalidPlacementError{Row: c.Row, Col: c.Col, Reason: "out of range"}
		}
		sq := board.Sq(c.Row, c.Col)
		if sq.Tile != nil {
			if sq.Tile.Letter != c.Tile.Letter {
				board.UndoMove(placed)
				return nil, &InvalidPlacementError{Row: c.Row, Col: c.Col, Reason: "conflicting tile"}
			}
			continue
		}
		board.PlaceTile(c.Row, c.Col, c.Tile)
		isBlank := c.Tile.Letter == BlankLetter
		if isBlank {
			board.Blanks[Coordinate{c.Row, c.Col}] = true
		}
		placed = append(placed, PlacedTile{Row: c.Row, Col: c.Col, Tile: c.Tile, WasBlank: isBlank})
	}
	return placed, nil
}

// UndoMove reverses a prior PlaceMove, restoring the board
// byte-for-byte (I3).
func (board *Board) UndoMove(placed []PlacedTile) {
	for i := len(placed) - 1; i >= 0; i-- {
		p := placed[i]
		sq := board.Sq(p.Row, p.Col)
		sq.Tile = nil
		board.NumTiles--
		if p.WasBlank {
			delete(board.Blanks, Coordinate{p.Row, p.Col})
		}
	}
}

// Init initializes an empty rack.
func (rack *Rack) Init() {
	rack.Letters = make(map[rune]int)
	for i := range rack.Slots {
		sq := &rack.Slots[i]
		sq.Row = -1
		sq.Col = i
		sq.LetterMultiplier = 1
		sq.WordMultiplier = 1
	}
}

// NewRack creates a rack containing the tiles specified in r, with
// BlankLetter denoting a blank tile. Returns nil if any letter is
// not present in tileSet.
func NewRack(r []rune, tileSet *TileSet) *Rack {
	rack := &Rack{Letters: make(map[rune]int)}
	slot := 0
	for _, letter := range r {
		sq := &rack.Slots[slot]
		sq.Row = -1
		sq.Col = slot
		sq.LetterMultiplier = 1
		sq.WordMultiplier = 1
		score, ok := tileSet.Scores[letter]
		if !ok {
			return nil
		}
		sq.Tile = &Tile{Letter: letter, Meaning: letter, Score: score}
		rack.Letters[letter]++
		slot++
	}
	for i := slot; i < RackSize; i++ {
		sq := &rack.Slots[i]
		sq.Row = -1
		sq.Col = i
		sq.LetterMultiplier = 1
		sq.WordMultiplier = 1
	}
	return rack
}

// Fill draws tiles from the bag to fill a rack. Returns false if
// unable to fill all empty slots.
func (rack *Rack) Fill(bag *Bag) bool {
	for i := 0; i < RackSize; i++ {
		sq := &rack.Slots[i]
		if sq.Tile == nil {
			sq.Tile = bag.DrawTile()
		}
		if sq.Tile != nil {
			rack.Letters[sq.Tile.Letter]++
		} else {
			return false
		}
	}
	return true
}

// FillByLetters draws tiles identified by letters from the bag to
// fill the rack, as far as possible. Returns false if a requested
// letter is not found in the bag.
func (rack *Rack) FillByLetters(bag *Bag, letters []rune) bool {
	for i := 0; i < RackSize && len(letters) > 0; i++ {
		sq := &rack.Slots[i]
		if sq.Tile == nil {
			if sq.Tile = bag.DrawTileByLetter(letters[0]); sq.Tile == nil {
				return false
			}
			letters = letters[1:]
		}
		rack.Letters[sq.Tile.Letter]++
	}
	return true
}

// String returns a printable representation of a Rack.
func (rack *Rack) String() string {
	var sb strings.Builder
	for i := range rack.Slots {
		sb.WriteString(fmt.Sprintf("%v ", &rack.Slots[i]))
	}
	return sb.String()
}

// AsRunes returns the tiles in the rack as a list of runes.
func (rack *Rack) AsRunes() []rune {
	runes := make([]rune, 0, RackSize)
	for _, sq := range rack.Slots {
		if sq.Tile != nil {
			runes = append(runes, sq.Tile.Letter)
		}
	}
	return runes
}

// AsString returns the tiles in the rack as a contiguous string.
func (rack *Rack) AsString() string {
	return string(rack.AsRunes())
}

// IsEmpty returns true if the rack is empty.
func (rack *Rack) IsEmpty() bool {
	if rack == nil {
		return true
	}
	for _, sq := range rack.Slots {
		if sq.Tile != nil {
			return false
		}
	}
	return true
}

// FindTile finds a tile with the given letter (or BlankLetter) in
// the rack and returns a pointer to it, or nil if not found.
func (rack *Rack) FindTile(letter rune) *Tile {
	if rack == nil {
		return nil
	}
	for i := range rack.Slots {
		if rack.Slots[i].Tile != nil && rack.Slots[i].Tile.Letter == letter {
			return rack.Slots[i].Tile
		}
	}
	return nil
}

// FindTiles finds tiles corresponding to the given letters in the
// rack. The same physical tile is never returned twice.
func (rack *Rack) FindTiles(letters []rune) []*Tile {
	if rack == nil {
		return nil
	}
	result := make([]*Tile, 0, len(letters))
	var picked [RackSize]bool
	for _, letter := range letters {
		for i := range rack.Slots {
			if !picked[i] && rack.Slots[i].Tile != nil && rack.Slots[i].Tile.Letter == letter {
				result = append(result, rack.Slots[i].Tile)
				picked[i] = true
				break
			}
		}
	}
	return result
}

// RemoveTile removes a tile from a rack.
func (rack *Rack) RemoveTile(tile *Tile) bool {
	if rack == nil || tile == nil {
		return false
	}
	for i := range rack.Slots {
		sq := &rack.Slots[i]
		if sq.Tile == tile {
			sq.Tile = nil
			rack.Letters[tile.Letter]--
			return true
		}
	}
	return false
}

// ReturnToBag returns the tiles in the rack to a bag.
func (rack *Rack) ReturnToBag(bag *Bag) {
	if rack == nil || bag == nil {
		return
	}
	for i := range rack.Slots {
		sq := &rack.Slots[i]
		if sq.Tile != nil {
			rack.Letters[sq.Tile.Letter]--
			bag.ReturnTile(sq.Tile)
			sq.Tile = nil
		}
	}
}

// Extract obtains numTiles tiles from the rack, assigning meaning to
// any blank among them. Used by tests and by move application.
func (rack *Rack) Extract(numTiles int, meaning rune) []*Tile {
	ex := make([]*Tile, 0, numTiles)
	for i := 0; i < RackSize && numTiles > 0; i++ {
		tile := rack.Slots[i].Tile
		if tile != nil {
			if tile.Letter == BlankLetter {
				tile.Meaning = meaning
			}
			ex = append(ex, tile)
			numTiles--
		}
	}
	return ex
}
