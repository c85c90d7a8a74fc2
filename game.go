// game.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson
// This file implements the Game class

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

// Game is a container for an in-progress game between two players,
// having a Board and two Racks, as well as a Bag and a list of Moves
// made so far.
type Game struct {
	PlayerNames [2]string
	Scores      [2]int
	Board       Board
	Racks       [2]Rack
	Bag         *Bag
	MoveList    []*MoveItem
	// Dict is the dictionary used to validate and generate moves.
	Dict *Dictionary
	// TileSet is the tile set used in the game.
	TileSet *TileSet
	// NumPassMoves is the number of consecutive zero-point moves
	// (pass or failed exchange); six consecutive such moves end
	// the game.
	NumPassMoves int
}

// GameState is the bare minimum of information a robot player needs
// to decide on a move, matching §6's bot-to-runner protocol: a board
// snapshot, the rack to move, and enough game_info to compute equity.
type GameState struct {
	Dict    *Dictionary
	TileSet *TileSet
	Board   *Board
	// Rack is the rack of the player whose move it is.
	Rack *Rack
	// ExchangeForbidden is true when there are fewer than RackSize
	// tiles in the bag, disallowing an exchange move.
	ExchangeForbidden bool
	YourScore         int
	OppScore          int
	TilesInBag        int
	MoveNumber        int // 1-based
}

// MoveKind distinguishes the three move shapes a turn can take (§3).
type MoveKind int

const (
	TilePlay MoveKind = iota
	Pass
	Exchange
)

// MoveItem is an entry in the MoveList of a Game: the player's rack
// as it was before the move, the kind of move, the tile play itself
// (zero value when Kind != TilePlay), the letters exchanged (when
// Kind == Exchange), and the score the move earned.
type MoveItem struct {
	RackBefore string
	Kind       MoveKind
	Move       Move
	Exchanged  string
	Score      int
}

// NewGame instantiates a new Game over dict/tileSet and draws both
// players' racks from a fresh bag.
func NewGame(dict *Dictionary, tileSet *TileSet) *Game {
	game := &Game{Dict: dict, TileSet: tileSet}
	game.Board.Init()
	game.Racks[0].Init()
	game.Racks[1].Init()
	game.Bag = makeBag(tileSet)
	game.Racks[0].Fill(game.Bag)
	game.Racks[1].Fill(game.Bag)
	game.MoveList = make([]*MoveItem, 0, 30)
	return game
}

// State returns a GameState describing the position for the player
// whose move it is.
func (game *Game) State() *GameState {
	player := game.PlayerToMove()
	moveNumber := len(game.MoveList)/2 + 1
	return &GameState{
		Dict:              game.Dict,
		TileSet:           game.TileSet,
		Board:             &game.Board,
		Rack:              &game.Racks[player],
		ExchangeForbidden: !game.Bag.ExchangeAllowed(),
		YourScore:         game.Scores[player],
		OppScore:          game.Scores[1-player],
		TilesInBag:        len(game.Bag.Contents),
		MoveNumber:        moveNumber,
	}
}

// TileAt is a convenience function for returning the Tile at a given
// coordinate on the Game Board.
func (game *Game) TileAt(row, col int) *Tile {
	sq := game.Board.Sq(row, col)
	if sq == nil {
		return nil
	}
	return sq.Tile
}

// TilesOnBoard returns the number of tiles already laid down on the
// board.
func (game *Game) TilesOnBoard() int {
	return game.Board.NumTiles
}

// SetPlayerNames sets the names of the two players.
func (game *Game) SetPlayerNames(player0, player1 string) {
	game.PlayerNames[0] = player0
	game.PlayerNames[1] = player1
}

// PlayerToMove returns 0 or 1 depending on which player's move it is.
func (game *Game) PlayerToMove() int {
	return len(game.MoveList) % 2
}

// ApplyTileMove validates and applies a tile play against the rack of
// the player to move, using BuildCovers/Board.PlaceMove to resolve
// the move's word into concrete board cells. Returns false (with the
// game unchanged) if the rack cannot supply the letters the move
// consumes, or if placement fails (out of range / conflicting tile).
func (game *Game) ApplyTileMove(move Move) bool {
	playerToMove := game.PlayerToMove()
	rack := &game.Racks[playerToMove]
	rackBefore := rack.AsString()

	tiles := rack.FindTiles(move.TilesUsed)
	if len(tiles) != len(move.TilesUsed) {
		return false
	}
	// BuildCovers synthesizes the placed-tile values (including the
	// correct blank Meaning) from move.Word/BlanksUsed directly, so
	// placement does not need to touch the rack's own Tile pointers;
	// tiles found above are only consumed for rack bookkeeping.
	covers := BuildCovers(&game.Board, move, game.TileSet.Scores)
	if _, err := game.Board.PlaceMove(covers); err != nil {
		return false
	}
	for _, tile := range tiles {
		tile.PlayedBy = playerToMove
		rack.RemoveTile(tile)
	}

	game.NumPassMoves = 0
	game.acceptMove(rackBefore, MoveItem{Kind: TilePlay, Move: move, Score: move.Score})
	rack.Fill(game.Bag)
	game.maybeFinish(playerToMove)
	return true
}

// ApplyPass records a scoreless pass. Six consecutive pass/exchange
// moves end the game (I: matches GoSkrafl's original six-pass rule).
func (game *Game) ApplyPass() bool {
	playerToMove := game.PlayerToMove()
	rack := &game.Racks[playerToMove]
	rackBefore := rack.AsString()
	game.NumPassMoves++
	game.acceptMove(rackBefore, MoveItem{Kind: Pass})
	game.maybeFinish(playerToMove)
	return true
}

// ApplyExchange returns letters to the bag and draws the same number
// of replacements, scoring zero. Forbidden when the bag holds fewer
// than RackSize tiles.
func (game *Game) ApplyExchange(letters []rune) bool {
	if !game.Bag.ExchangeAllowed() {
		return false
	}
	playerToMove := game.PlayerToMove()
	rack := &game.Racks[playerToMove]
	rackBefore := rack.AsString()

	tiles := rack.FindTiles(letters)
	if len(tiles) != len(letters) {
		return false
	}
	for _, tile := range tiles {
		rack.RemoveTile(tile)
		game.Bag.ReturnTile(tile)
	}
	rack.Fill(game.Bag)

	game.NumPassMoves++
	game.acceptMove(rackBefore, MoveItem{Kind: Exchange, Exchanged: string(letters)})
	game.maybeFinish(playerToMove)
	return true
}

// acceptMove updates the player's score and appends item to MoveList.
// Must be called after PlayerToMove() has already been read for this
// turn, since appending reverses whose move it is next.
func (game *Game) acceptMove(rackBefore string, item MoveItem) {
	item.RackBefore = rackBefore
	game.Scores[game.PlayerToMove()] += item.Score
	game.MoveList = append(game.MoveList, &item)
}

// maybeFinish appends the two FinalMove-equivalent score adjustments
// once the game has ended, mirroring GoSkrafl's final-rack scoring:
// the finishing player is credited double the opponent's remaining
// rack value (or, when the game ends by six passes rather than an
// emptied rack, each player is credited the other player's remaining
// rack value).
func (game *Game) maybeFinish(lastPlayer int) {
	if !game.IsOver() {
		return
	}
	rackThis := game.Racks[lastPlayer].AsString()
	rackOpp := game.Racks[1-lastPlayer].AsString()
	multiplyFactor := 2
	if len(rackThis) > 0 {
		multiplyFactor = 1
	}
	game.Scores[1-lastPlayer] += multiplyFactor * rackValue(rackThis, game.TileSet)
	game.Scores[lastPlayer] += multiplyFactor * rackValue(rackOpp, game.TileSet)
}

func rackValue(letters string, tileSet *TileSet) int {
	total := 0
	for _, l := range letters {
		total += tileSet.Scores[l]
	}
	return total
}

// IsOver returns true if the Game is over after the last move played.
func (game *Game) IsOver() bool {
	if len(game.MoveList) == 0 {
		return false
	}
	if game.NumPassMoves >= 6 {
		return true
	}
	lastPlayer := 1 - (len(game.MoveList) % 2)
	return game.Racks[lastPlayer].IsEmpty() && len(game.Bag.Contents) == 0
}

// String returns a string representation of a Game.
func (game *Game) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v (%v : %v) %v\n",
		game.PlayerNames[0], game.Scores[0], game.Scores[1], game.PlayerNames[1]))
	sb.WriteString(fmt.Sprintf("%v\n", &game.Board))
	sb.WriteString(fmt.Sprintf("Rack 0: %v\n", &game.Racks[0]))
	sb.WriteString(fmt.Sprintf("Rack 1: %v\n", &game.Racks[1]))
	if len(game.MoveList) > 0 {
		sb.WriteString("Moves:\n")
		for i, item := range game.MoveList {
			desc := moveDescription(item)
			if i%2 == 0 {
				sb.WriteString(fmt.Sprintf("  %2d: (%v) %v", (i/2)+1, item.Score, desc))
			} else {
				sb.WriteString(fmt.Sprintf(" / %v (%v)\n", desc, item.Score))
			}
		}
		if len(game.MoveList)%2 == 1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// ApplyDecision dispatches a Robot's Decision to the matching Apply*
// method.
func (game *Game) ApplyDecision(d Decision) bool {
	switch d.Kind {
	case TilePlay:
		return game.ApplyTileMove(d.Move)
	case Exchange:
		return game.ApplyExchange([]rune(d.Exchanged))
	default:
		return game.ApplyPass()
	}
}

func moveDescription(item *MoveItem) string {
	switch item.Kind {
	case Pass:
		return "(pass)"
	case Exchange:
		return fmt.Sprintf("(exchange %s)", item.Exchanged)
	default:
		return item.Move.String()
	}
}
