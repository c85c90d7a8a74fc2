// game_test.go
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

import "testing"

func TestNewGameDealsFullRacks(t *testing.T) {
	d := buildTestDictionary(t)
	g := NewGame(d, EnglishTileSet)
	if len(g.Racks[0].AsRunes()) != RackSize {
		t.Errorf("player 0 rack has %d tiles, want %d", len(g.Racks[0].AsRunes()), RackSize)
	}
	if len(g.Racks[1].AsRunes()) != RackSize {
		t.Errorf("player 1 rack has %d tiles, want %d", len(g.Racks[1].AsRunes()), RackSize)
	}
	wantBag := EnglishTileSet.Size - 2*RackSize
	if g.Bag.TileCount() != wantBag {
		t.Errorf("bag has %d tiles after deal, want %d", g.Bag.TileCount(), wantBag)
	}
}

func TestApplyTileMoveUpdatesScoreRackAndTurn(t *testing.T) {
	d := buildTestDictionary(t)
	g := &Game{Dict: d, TileSet: EnglishTileSet}
	g.Board.Init()
	g.Racks[0].Init()
	g.Racks[1].Init()
	g.Bag = makeBag(EnglishTileSet)
	rack := NewRack([]rune("RETAINS"), EnglishTileSet)
	if rack == nil {
		t.Fatal("NewRack(RETAINS) returned nil")
	}
	g.Racks[0] = *rack
	g.MoveList = make([]*MoveItem, 0, 4)

	move := Move{Word: "RETAINS", Row: 8, Col: 8, Direction: Horizontal, Score: 74, TilesUsed: []rune("RETAINS")}
	if !g.ApplyTileMove(move) {
		t.Fatal("ApplyTileMove returned false for a legal play")
	}
	if g.Scores[0] != 74 {
		t.Errorf("Scores[0] = %d, want 74", g.Scores[0])
	}
	if g.PlayerToMove() != 1 {
		t.Errorf("PlayerToMove() = %d, want 1 after player 0's move", g.PlayerToMove())
	}
	if len(g.Racks[0].AsRunes()) != RackSize {
		t.Errorf("player 0's rack was not refilled: has %d tiles, want %d", len(g.Racks[0].AsRunes()), RackSize)
	}
	if g.NumPassMoves != 0 {
		t.Errorf("NumPassMoves = %d, want 0 after a scoring play", g.NumPassMoves)
	}
	if tile := g.TileAt(7, 7); tile == nil || tile.Letter != 'R' {
		t.Errorf("TileAt(7,7) = %v, want the R of RETAINS", tile)
	}
	if len(g.MoveList) != 1 || g.MoveList[0].Kind != TilePlay {
		t.Errorf("MoveList = %v, want one TilePlay entry", g.MoveList)
	}
}

func TestApplyTileMoveRejectsRackMismatch(t *testing.T) {
	d := buildTestDictionary(t)
	g := &Game{Dict: d, TileSet: EnglishTileSet}
	g.Board.Init()
	g.Racks[0].Init()
	g.Racks[1].Init()
	g.Bag = makeBag(EnglishTileSet)
	rack := NewRack([]rune("CAT"), EnglishTileSet)
	g.Racks[0] = *rack
	g.MoveList = make([]*MoveItem, 0, 4)

	// The rack has no S: this play cannot be funded from it.
	move := Move{Word: "CATS", Row: 8, Col: 8, Direction: Horizontal, Score: 10, TilesUsed: []rune("CATS")}
	if g.ApplyTileMove(move) {
		t.Error("ApplyTileMove accepted a play the rack cannot supply")
	}
	if len(g.MoveList) != 0 {
		t.Error("a rejected move must not be recorded")
	}
}

func TestApplyExchangeForbiddenWithShortBag(t *testing.T) {
	d := buildTestDictionary(t)
	g := &Game{Dict: d, TileSet: EnglishTileSet}
	g.Board.Init()
	g.Racks[0].Init()
	g.Racks[1].Init()
	rack := NewRack([]rune("CAT"), EnglishTileSet)
	g.Racks[0] = *rack
	g.Bag = &Bag{} // empty bag: fewer than RackSize tiles remain
	g.MoveList = make([]*MoveItem, 0, 4)

	if g.ApplyExchange([]rune("CAT")) {
		t.Error("ApplyExchange succeeded with fewer than RackSize tiles in the bag")
	}
}

func TestApplyExchangeReturnsAndRefills(t *testing.T) {
	d := buildTestDictionary(t)
	g := &Game{Dict: d, TileSet: EnglishTileSet}
	g.Board.Init()
	g.Racks[0].Init()
	g.Racks[1].Init()
	g.Bag = makeBag(EnglishTileSet)
	rack := NewRack([]rune("CATDOGS"), EnglishTileSet) // a full 7-tile rack
	g.Racks[0] = *rack
	g.MoveList = make([]*MoveItem, 0, 4)
	bagBefore := g.Bag.TileCount()

	if !g.ApplyExchange([]rune("CAT")) {
		t.Fatal("ApplyExchange failed though the bag has plenty of tiles")
	}
	if len(g.Racks[0].AsRunes()) != RackSize {
		t.Errorf("rack has %d tiles after exchange, want %d (the rack stays full)", len(g.Racks[0].AsRunes()), RackSize)
	}
	if g.Bag.TileCount() != bagBefore {
		t.Errorf("bag size changed across an exchange: before %d, after %d", bagBefore, g.Bag.TileCount())
	}
	if g.NumPassMoves != 1 {
		t.Errorf("NumPassMoves = %d, want 1 after an exchange", g.NumPassMoves)
	}
}

// Six consecutive passes end the game and settle the remaining racks
// per the six-pass rule: each player's own rack value is credited to
// the other.
func TestSixConsecutivePassesEndGameAndSettleRacks(t *testing.T) {
	d := buildTestDictionary(t)
	g := &Game{Dict: d, TileSet: EnglishTileSet}
	g.Board.Init()
	g.Racks[0].Init()
	g.Racks[1].Init()
	g.Racks[0] = *NewRack([]rune("AB"), EnglishTileSet) // A=1, B=3
	g.Racks[1] = *NewRack([]rune("C"), EnglishTileSet)  // C=3
	g.Bag = makeBag(EnglishTileSet)
	g.MoveList = make([]*MoveItem, 0, 8)

	for i := 0; i < 5; i++ {
		if g.IsOver() {
			t.Fatalf("game ended after only %d passes", i)
		}
		if !g.ApplyPass() {
			t.Fatalf("ApplyPass %d failed", i+1)
		}
	}
	if g.IsOver() {
		t.Fatal("game ended after only 5 passes")
	}
	if !g.ApplyPass() {
		t.Fatal("6th ApplyPass failed")
	}
	if !g.IsOver() {
		t.Fatal("game did not end after 6 consecutive passes")
	}
	// The 6th pass belongs to player 1 (passes alternate starting with
	// player 0): player 1's rack "C" (value 3) is credited to player
	// 0, and player 0's rack "AB" (value 4) is credited to player 1.
	if g.Scores[0] != 3 {
		t.Errorf("Scores[0] = %d, want 3 (player 1's rack value)", g.Scores[0])
	}
	if g.Scores[1] != 4 {
		t.Errorf("Scores[1] = %d, want 4 (player 0's rack value)", g.Scores[1])
	}
}

func TestApplyDecisionDispatchesToMatchingApply(t *testing.T) {
	d := buildTestDictionary(t)
	g := &Game{Dict: d, TileSet: EnglishTileSet}
	g.Board.Init()
	g.Racks[0].Init()
	g.Racks[1].Init()
	g.Bag = makeBag(EnglishTileSet)
	g.MoveList = make([]*MoveItem, 0, 4)

	if !g.ApplyDecision(Decision{Kind: Pass}) {
		t.Fatal("ApplyDecision(Pass) failed")
	}
	if g.NumPassMoves != 1 {
		t.Errorf("NumPassMoves = %d, want 1 after a dispatched pass", g.NumPassMoves)
	}
}
