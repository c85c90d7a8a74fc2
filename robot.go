// robot.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson
// This file implements automatic players ("robots") that pick a move
// given a GameState.

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
	"sort"
	"time"
)

// Decision is a robot's chosen action for its turn: exactly one of
// Move (a tile play), an exchange of Exchanged letters, or a pass.
type Decision struct {
	Kind      MoveKind
	Move      Move
	Exchanged string
}

// Robot is the interface automatic players implement to choose a
// move given the current game state.
type Robot interface {
	Decide(ctx context.Context, state *GameState) Decision
}

// HighScoreRobot always plays the highest-scoring legal move, falling
// back to exchanging the full rack if no tile move exists and
// exchange is allowed, or passing as a last resort. This is the
// simplest strategy in the corpus (bots/bot_greedy.py's analogue) and
// doubles as the baseline opponent-reply model C7/C8's search uses.
type HighScoreRobot struct{}

// Decide implements Robot for HighScoreRobot.
func (r *HighScoreRobot) Decide(ctx context.Context, state *GameState) Decision {
	moves := NewMoveGenerator(state.Board, state.Dict, state.TileSet.Scores).Generate(state.Rack.AsRunes())
	if len(moves) > 0 {
		sort.Slice(moves, func(i, j int) bool { return moves[i].Score > moves[j].Score })
		return Decision{Kind: TilePlay, Move: moves[0]}
	}
	if !state.ExchangeForbidden {
		return Decision{Kind: Exchange, Exchanged: state.Rack.AsString()}
	}
	return Decision{Kind: Pass}
}

// MCRobot is the tiered Monte-Carlo/endgame robot described by §4.6-
// §4.7: mid-game candidates are ranked by MC-simulated equity, bag
// <= 8 triggers the near-endgame or endgame solver, and ties resolve
// to the highest-raw-score move. Grounded on bots/dadbot.py's
// top-level move-selection dispatch (bag-size-driven strategy
// selection among mid-game/near-endgame/endgame).
type MCRobot struct {
	Searcher *Searcher
	Pool     *Pool
	Tier     Tier
	Seed     uint64
}

// NewMCRobot constructs an MCRobot over an already-built Searcher and
// Pool, at the given tier, seeded for reproducible simulation.
func NewMCRobot(searcher *Searcher, pool *Pool, tier Tier, seed uint64) *MCRobot {
	return &MCRobot{Searcher: searcher, Pool: pool, Tier: tier, Seed: seed}
}

// Decide implements Robot for MCRobot.
func (r *MCRobot) Decide(ctx context.Context, state *GameState) Decision {
	candidates := NewMoveGenerator(state.Board, state.Dict, state.TileSet.Scores).Generate(state.Rack.AsRunes())
	if len(candidates) == 0 {
		if !state.ExchangeForbidden {
			return Decision{Kind: Exchange, Exchanged: state.Rack.AsString()}
		}
		return Decision{Kind: Pass}
	}

	switch {
	case state.TilesInBag == 0:
		unseen := ComputeUnseenPool(state.TileSet, state.Board, state.Rack.AsRunes())
		opponentRack := unseen.flatten()
		budget := time.Duration(EndgameGlobalBudgetSeconds) * time.Second
		best := r.Searcher.SolveEndgame(ctx, state.Board, candidates, opponentRack, budget)
		return Decision{Kind: TilePlay, Move: *best}
	case state.TilesInBag <= 8:
		unseen := ComputeUnseenPool(state.TileSet, state.Board, state.Rack.AsRunes())
		budget := time.Duration(NearEndgameBudgetSeconds[r.Tier] * float64(time.Second))
		best := r.Searcher.SolveNearEndgame(ctx, state.Board, candidates, unseen, state.TilesInBag, budget)
		return Decision{Kind: TilePlay, Move: *best}
	default:
		positional := func(m Move) float64 { return PositionalAdjustment(state.Board, m, state.TilesInBag) }
		ranked := r.Searcher.MidGameSearch(ctx, r.Pool, state.Board, candidates, state.Rack.AsRunes(), state.TilesInBag, r.Tier, r.Seed, positional)
		return Decision{Kind: TilePlay, Move: ranked[0].Move}
	}
}
