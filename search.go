// search.go
//
// Copyright (C) 2024 Vilhjálmur Þorsteinsson / Miðeind ehf.
//
// Monte-Carlo search (C7) and the endgame/near-endgame solver (C8).
// The MC loop's running mean/early-stop shape and the 1-ply/partition-
// averaging split are grounded on bots/bot_fast_sim.py and
// bots/bot_endgame_expert.py; the per-task seeded-RNG/errgroup
// idiom is grounded on other_examples' negamax endgame solver
// (zerolog structured logging, golang.org/x/sync/errgroup fan-out,
// lukechampine.com/frand for reproducible sampling) rather than on
// that file's transposition-table negamax search itself, which solves
// a different (general two-player adversarial) problem than the
// single-ply/partition-exact model this spec calls for.

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
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// UnseenPool is the multiset of tiles not visible to the bot: the
// tile set's full distribution minus tiles on the board (a blank on
// the board counts as a blank, not as the letter it displays) minus
// the bot's own rack.
type UnseenPool map[rune]int

// ComputeUnseenPool builds the unseen pool for board/myRack against
// tileSet's full distribution (§4.6 step 2).
func ComputeUnseenPool(tileSet *TileSet, board *Board, myRack []rune) UnseenPool {
	pool := make(UnseenPool)
	for _, t := range tileSet.Tiles {
		pool[t.Letter]++
	}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			sq := board.Sq(r, c)
			if sq == nil || sq.Tile == nil {
				continue
			}
			letter := sq.Tile.Letter
			if board.Blanks[Coordinate{Row: r, Col: c}] {
				letter = BlankLetter
			}
			pool[letter]--
		}
	}
	for _, r := range myRack {
		pool[r]--
	}
	return pool
}

// Clone returns an independent copy of the pool.
func (u UnseenPool) Clone() UnseenPool {
	cp := make(UnseenPool, len(u))
	for k, v := range u {
		cp[k] = v
	}
	return cp
}

// Total returns the number of tiles remaining in the pool.
func (u UnseenPool) Total() int {
	n := 0
	for _, v := range u {
		if v > 0 {
			n += v
		}
	}
	return n
}

// flatten expands the pool into one rune per remaining physical tile,
// in a fixed A..Z,? order so that Sample's seeded shuffle is
// reproducible: map iteration order is randomized per range and would
// otherwise leak into the RNG stream.
func (u UnseenPool) flatten() []rune {
	flat := make([]rune, 0, u.Total())
	for letter := rune('A'); letter <= 'Z'; letter++ {
		for i := 0; i < u[letter]; i++ {
			flat = append(flat, letter)
		}
	}
	for i := 0; i < u[BlankLetter]; i++ {
		flat = append(flat, BlankLetter)
	}
	return flat
}

// Sample draws n tiles uniformly at random without replacement,
// using rng (task-local, seeded by the controller per §5).
func (u UnseenPool) Sample(n int, rng *frand.RNG) []rune {
	flat := u.flatten()
	if n > len(flat) {
		n = len(flat)
	}
	rng.Shuffle(len(flat), func(i, j int) { flat[i], flat[j] = flat[j], flat[i] })
	return append([]rune(nil), flat[:n]...)
}

// combinations returns every k-combination of pool's indices, i.e.
// every way to choose k of pool's physical tiles (duplicate letters
// are distinct physical tiles, so a repeated letter combination is
// produced once per distinct physical selection, weighting the
// average correctly).
func combinations(pool []rune, k int) [][]rune {
	n := len(pool)
	if k <= 0 || k > n {
		return nil
	}
	var result [][]rune
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]rune, k)
		for i, p := range idx {
			combo[i] = pool[p]
		}
		result = append(result, combo)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return result
}

// Searcher runs C7's Monte-Carlo equity estimation and C8's
// endgame/near-endgame solving against a fixed dictionary and tile
// set. A Searcher holds no board state of its own; every call takes
// the board snapshot it should evaluate against.
type Searcher struct {
	dict       *Dictionary
	tileSet    *TileSet
	tileScores map[rune]int
	leaves     *LeaveEvaluator
}

// NewSearcher constructs a Searcher over immutable, process-lifetime
// resources (the GADDAG-backed dictionary, tile set, and leave
// evaluator), per §4.8's "loaded once per worker lifetime."
func NewSearcher(dict *Dictionary, tileSet *TileSet, leaves *LeaveEvaluator) *Searcher {
	return &Searcher{dict: dict, tileSet: tileSet, tileScores: tileSet.Scores, leaves: leaves}
}

// bestMoveOn returns the single highest-scoring legal move for rack
// on board, or nil if rack has no legal play (§7: NoLegalMoves is not
// an error).
func (s *Searcher) bestMoveOn(board *Board, rack []rune) *Move {
	if len(rack) == 0 {
		return nil
	}
	moves := NewMoveGenerator(board, s.dict, s.tileScores).Generate(rack)
	if len(moves) == 0 {
		return nil
	}
	return &moves[0]
}

// EvaluateCandidate runs C7's Monte-Carlo loop for one candidate
// move: repeatedly sampling an opponent rack from unseen, finding
// their single best reply, and tracking the running mean with early
// stopping once esMinSims simulations have run and the standard
// error of the mean drops below esSE. Returns the mean best-reply
// score and the number of simulations actually run.
func (s *Searcher) EvaluateCandidate(ctx context.Context, board *Board, candidate Move, unseen UnseenPool, tier Tier, rng *frand.RNG) (meanOppScore float64, sims int) {
	params := Tiers[tier]
	covers := BuildCovers(board, candidate, s.tileScores)
	trial := board.Clone()
	placed, err := trial.PlaceMove(covers)
	if err != nil {
		log.Debug().Err(err).Str("word", candidate.Word).Msg("candidate could not be applied")
		return 0, 0
	}
	defer trial.UndoMove(placed)

	oppRackSize := RackSize
	if unseen.Total() < oppRackSize {
		oppRackSize = unseen.Total()
	}
	if oppRackSize == 0 {
		return 0, 0
	}

	var sum, sumSq float64
	n := 0
	for n < params.K {
		select {
		case <-ctx.Done():
			return finalizeMean(sum, n), n
		default:
		}
		oppRack := unseen.Sample(oppRackSize, rng)
		best := s.bestMoveOn(trial, oppRack)
		score := 0.0
		if best != nil {
			score = float64(best.Score)
		}
		sum += score
		sumSq += score * score
		n++
		if n >= params.ESMin && n%ESCheckEvery == 0 {
			mean := sum / float64(n)
			variance := sumSq/float64(n) - mean*mean
			if variance < 0 {
				variance = 0
			}
			se := math.Sqrt(variance / float64(n))
			if se < params.ESSE {
				break
			}
		}
	}
	return finalizeMean(sum, n), n
}

func finalizeMean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// RankedCandidate is one candidate move together with its computed
// equity (§4.6 step 4).
type RankedCandidate struct {
	Move   Move
	Equity float64
	Sims   int
}

// MidGameSearch runs the full C7 pipeline over candidates: 1-ply pre-
// ranking by score+leave, MC simulation of the top N (fanned out
// across pool's workers), and final equity = score -
// mean(opponent_best) + leave_value + positional adjustment (supplied
// by the caller, since it depends on the pre-move board the
// candidates were generated from). Each fanned-out evaluation gets
// its own seeded RNG stream, derived from seed and the candidate's
// index, so a rerun with the same seed reproduces the same result
// regardless of completion order (§5).
func (s *Searcher) MidGameSearch(ctx context.Context, pool *Pool, board *Board, candidates []Move, myRack []rune, bagTiles int, tier Tier, seed uint64, positional func(Move) float64) []RankedCandidate {
	unseenU := 0
	unseen := ComputeUnseenPool(s.tileSet, board, myRack)
	unseenU = unseen['U']

	params := Tiers[tier]
	prelim := make([]RankedCandidate, len(candidates))
	for i, c := range candidates {
		prelim[i] = RankedCandidate{Move: c, Equity: float64(c.Score) + s.leaves.Value(ctx, c.Leave, bagTiles, unseenU)}
	}
	sortRankedDesc(prelim)
	n := params.N
	if n > len(prelim) {
		n = len(prelim)
	}
	top := prelim[:n]

	err := pool.RunIndexed(ctx, len(top), func(taskCtx context.Context, i int) error {
		rng := seededRNG(seed, i)
		meanOpp, sims := s.EvaluateCandidate(taskCtx, board, top[i].Move, unseen, tier, rng)
		equity := float64(top[i].Move.Score) - meanOpp + s.leaves.Value(taskCtx, top[i].Move.Leave, bagTiles, unseenU)
		if positional != nil {
			equity += PositionalDampen * positional(top[i].Move)
		}
		top[i].Equity = equity
		top[i].Sims = sims
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("mid-game search fan-out ended early")
	}
	sortRankedDesc(top)
	return top
}

// seededRNG builds a task-local RNG stream deterministic in (seed, i)
// so that re-running the same candidate set with the same seed is
// bit-reproducible (§5) no matter which worker happens to pick it up.
func seededRNG(seed uint64, i int) *frand.RNG {
	material := make([]byte, 32)
	for b := 0; b < 8; b++ {
		material[b] = byte(seed >> (8 * b))
	}
	for b := 0; b < 8; b++ {
		material[8+b] = byte(uint64(i) >> (8 * b))
	}
	return frand.NewCustom(material, 32, 20)
}

func sortRankedDesc(rc []RankedCandidate) {
	for i := 1; i < len(rc); i++ {
		for j := i; j > 0 && rc[j].Equity > rc[j-1].Equity; j-- {
			rc[j], rc[j-1] = rc[j-1], rc[j]
		}
	}
}

// SolveEndgame implements §4.7's bag-empty case: the opponent's rack
// is exactly the unseen-tile set. Returns the move maximizing
// our_score - best_opponent_reply, subject to a global wall-clock
// budget; if the budget is exhausted before any candidate completes,
// falls back to the highest-raw-score move.
func (s *Searcher) SolveEndgame(ctx context.Context, board *Board, candidates []Move, opponentRack []rune, budget time.Duration) *Move {
	deadline := time.Now().Add(budget)
	var best *Move
	bestEquity := math.Inf(-1)
	for i := range candidates {
		if time.Now().After(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			goto doneEndgame
		default:
		}
		c := candidates[i]
		covers := BuildCovers(board, c, s.tileScores)
		trial := board.Clone()
		placed, err := trial.PlaceMove(covers)
		if err != nil {
			continue
		}
		oppBest := s.bestMoveOn(trial, opponentRack)
		trial.UndoMove(placed)
		oppScore := 0
		if oppBest != nil {
			oppScore = oppBest.Score
		}
		equity := float64(c.Score - oppScore)
		if equity > bestEquity {
			bestEquity = equity
			best = &candidates[i]
		}
	}
doneEndgame:
	if best == nil {
		best = highestRawScore(candidates)
	}
	return best
}

func highestRawScore(candidates []Move) *Move {
	if len(candidates) == 0 {
		return nil
	}
	best := &candidates[0]
	for i := range candidates {
		if candidates[i].Score > best.Score {
			best = &candidates[i]
		}
	}
	return best
}

// SolveNearEndgame implements §4.7's 1 <= bag <= 8 case. Candidates
// whose tile consumption would empty the bag are evaluated exactly
// by averaging over every partition of the unseen pool into
// (opponent rack, our next draw); other candidates fall back to a
// parity-adjusted 1-ply equity.
func (s *Searcher) SolveNearEndgame(ctx context.Context, board *Board, candidates []Move, unseen UnseenPool, bagTiles int, budget time.Duration) *Move {
	deadline := time.Now().Add(budget)
	var best *Move
	bestEquity := math.Inf(-1)
	for i := range candidates {
		if time.Now().After(deadline) {
			break
		}
		c := candidates[i]
		consumed := len(c.TilesUsed)
		emptiesBag := consumed >= bagTiles

		var equity float64
		if emptiesBag {
			equity = s.partitionAverageEquity(ctx, board, c, unseen)
		} else {
			equity = s.parityAdjustedEquity(ctx, c, unseen, bagTiles)
		}
		if equity > bestEquity {
			bestEquity = equity
			best = &candidates[i]
		}
	}
	if best == nil {
		best = highestRawScore(candidates)
	}
	return best
}

func (s *Searcher) parityAdjustedEquity(ctx context.Context, c Move, unseen UnseenPool, bagTiles int) float64 {
	equity := float64(c.Score) + s.leaves.Value(ctx, c.Leave, bagTiles, unseen['U'])
	bagAfter := bagTiles - len(c.TilesUsed)
	if p, ok := ParityOpponentEmptiesProb[bagAfter]; ok {
		equity -= p * ParityStructuralAdvantage
	}
	return equity
}

func (s *Searcher) partitionAverageEquity(ctx context.Context, board *Board, c Move, unseen UnseenPool) float64 {
	covers := BuildCovers(board, c, s.tileScores)
	trial := board.Clone()
	placed, err := trial.PlaceMove(covers)
	if err != nil {
		return math.Inf(-1)
	}
	defer trial.UndoMove(placed)

	pool := unseen.flatten()
	oppSize := RackSize
	if oppSize > len(pool) {
		oppSize = len(pool)
	}
	if oppSize == 0 {
		return float64(c.Score)
	}

	var total float64
	count := 0
	for _, oppRack := range combinations(pool, oppSize) {
		select {
		case <-ctx.Done():
			return averagedEquity(total, count, float64(c.Score))
		default:
		}
		remaining := remainingAfter(pool, oppRack)

		oppBest := s.bestMoveOn(trial, oppRack)
		oppScore := 0
		ply3 := trial
		if oppBest != nil {
			oppScore = oppBest.Score
			oCovers := BuildCovers(trial, *oppBest, s.tileScores)
			ply3 = trial.Clone()
			// ply3 is a throwaway snapshot scoped to this partition;
			// it is never reused, so there is nothing to undo.
			if _, oErr := ply3.PlaceMove(oCovers); oErr != nil {
				ply3 = trial
			}
		}
		ourFollowup := 0
		if followup := s.bestMoveOn(ply3, remaining); followup != nil {
			ourFollowup = followup.Score
		}
		total += float64(c.Score-oppScore) + float64(ourFollowup)
		count++
	}
	return averagedEquity(total, count, float64(c.Score))
}

func averagedEquity(total float64, count int, fallback float64) float64 {
	if count == 0 {
		return fallback
	}
	return total / float64(count)
}

// remainingAfter returns pool with the tiles in taken removed
// (one physical tile per occurrence of a letter in taken).
func remainingAfter(pool []rune, taken []rune) []rune {
	used := make(map[rune]int, len(taken))
	for _, t := range taken {
		used[t]++
	}
	remaining := make([]rune, 0, len(pool)-len(taken))
	for _, r := range pool {
		if used[r] > 0 {
			used[r]--
			continue
		}
		remaining = append(remaining, r)
	}
	return remaining
}
