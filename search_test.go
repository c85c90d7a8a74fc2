// search_test.go
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
	"context"
	"testing"
	"time"
)

func buildTestSearcher(t *testing.T) *Searcher {
	t.Helper()
	d := buildTestDictionary(t)
	d.BuildHookIndex(testWords, EnglishTileSet.Scores)
	return NewSearcher(d, EnglishTileSet, NewLeaveEvaluator(nil))
}

// Property 8 / S6: two independent MC runs seeded identically over
// the same candidate produce identical results. seededRNG(seed, i)
// is the controller-side stream construction MidGameSearch uses per
// candidate index; calling it twice with the same (seed, i) must
// reproduce an identical simulation run.
func TestEvaluateCandidateDeterministic(t *testing.T) {
	s := buildTestSearcher(t)
	board := NewBoard()
	candidate := Move{Word: "CAT", Row: 8, Col: 7, Direction: Horizontal, Score: 5}
	unseen := ComputeUnseenPool(EnglishTileSet, board, []rune("AE"))

	rng1 := seededRNG(42, 0)
	mean1, sims1 := s.EvaluateCandidate(context.Background(), board, candidate, unseen, TierBlitz, rng1)

	rng2 := seededRNG(42, 0)
	mean2, sims2 := s.EvaluateCandidate(context.Background(), board, candidate, unseen, TierBlitz, rng2)

	if mean1 != mean2 {
		t.Errorf("mean opponent score differs across identically-seeded runs: %v vs %v", mean1, mean2)
	}
	if sims1 != sims2 {
		t.Errorf("simulation count differs across identically-seeded runs: %v vs %v", sims1, sims2)
	}

	// A different candidate index must not be forced to collide with
	// index 0's stream.
	rng3 := seededRNG(42, 1)
	mean3, _ := s.EvaluateCandidate(context.Background(), board, candidate, unseen, TierBlitz, rng3)
	_ = mean3 // streams may coincidentally agree; only documented as independent, not guaranteed distinct.
}

// Property 9 / S5-style endgame optimality: with the bag empty and a
// single known opponent rack, SolveEndgame must choose the candidate
// maximizing our_score - opponent_best_reply. The artificial scores
// below make that candidate also the higher scorer; flipping them
// checks that the choice follows the net equity rather than the
// candidates' order.
func TestSolveEndgamePicksHigherNetEquity(t *testing.T) {
	d := buildTestDictionary(t)
	d.BuildHookIndex(testWords, EnglishTileSet.Scores)
	s := NewSearcher(d, EnglishTileSet, NewLeaveEvaluator(nil))
	board := NewBoard()

	// Both candidates are assigned artificial Score values far apart,
	// so the gap outweighs any difference in the opponent's (rack "S")
	// best reply and the outcome is never a near-tie.
	candidates := []Move{
		{Word: "CAT", Row: 8, Col: 7, Direction: Horizontal, Score: 100},
		{Word: "DOG", Row: 8, Col: 7, Direction: Horizontal, Score: 1},
	}
	opponentRack := []rune("S")

	best := s.SolveEndgame(context.Background(), board, candidates, opponentRack, time.Second)
	if best == nil {
		t.Fatal("SolveEndgame returned nil with legal candidates present")
	}
	if best.Word != "CAT" {
		t.Errorf("SolveEndgame chose %q, want CAT (its artificial equity margin dwarfs any opponent reply)", best.Word)
	}

	// Flipping which candidate carries the high artificial score must
	// flip the choice, proving the decision tracks equity rather than
	// always favoring the first or a fixed candidate.
	candidates[0].Score, candidates[1].Score = 1, 100
	best2 := s.SolveEndgame(context.Background(), board, candidates, opponentRack, time.Second)
	if best2 == nil || best2.Word != "DOG" {
		t.Errorf("after flipping scores, SolveEndgame chose %v, want DOG", best2)
	}
}

// SolveEndgame must fall back to the highest raw score if the budget
// is already exhausted before any candidate is tried.
func TestSolveEndgameZeroBudgetFallsBackToRawScore(t *testing.T) {
	d := buildTestDictionary(t)
	s := NewSearcher(d, EnglishTileSet, NewLeaveEvaluator(nil))
	board := NewBoard()
	candidates := []Move{
		{Word: "CAT", Row: 8, Col: 7, Direction: Horizontal, Score: 5},
		{Word: "DOG", Row: 8, Col: 7, Direction: Horizontal, Score: 9},
	}
	best := s.SolveEndgame(context.Background(), board, candidates, []rune("S"), 0)
	if best == nil || best.Word != "DOG" {
		t.Errorf("zero-budget SolveEndgame = %v, want the highest raw score (DOG)", best)
	}
}

// The near-endgame parity adjustment (§4.7) can overturn a raw-score
// ranking: a move that leaves the bag at a count where the opponent
// is very likely to go out next is penalized relative to one that
// does not, even when it scores less itself.
func TestSolveNearEndgameParityAdjustmentOverturnsRawScore(t *testing.T) {
	d := buildTestDictionary(t)
	s := NewSearcher(d, EnglishTileSet, NewLeaveEvaluator(nil))
	board := NewBoard()
	bagTiles := 8

	candidateA := Move{
		Word: "CAT", Row: 8, Col: 7, Direction: Horizontal, Score: 50,
		TilesUsed: []rune{'A'}, // consumes 1 tile -> bag after = 7 -> p=0.18
	}
	candidateB := Move{
		Word: "DOG", Row: 8, Col: 7, Direction: Horizontal, Score: 55,
		TilesUsed: []rune{'A', 'A', 'A', 'A', 'A', 'A', 'A'}, // 7 tiles -> bag after = 1 -> p=0.97
	}
	unseen := ComputeUnseenPool(EnglishTileSet, board, nil)

	best := s.SolveNearEndgame(context.Background(), board, []Move{candidateA, candidateB}, unseen, bagTiles, time.Second)
	if best == nil {
		t.Fatal("SolveNearEndgame returned nil")
	}
	if best.Word != "CAT" {
		t.Errorf("SolveNearEndgame chose %q (score %d), want CAT: its lower raw score is offset by a much smaller parity penalty", best.Word, best.Score)
	}
}
