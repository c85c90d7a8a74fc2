// config.go
//
// Copyright (C) 2024 Vilhjálmur Þorsteinsson / Miðeind ehf.
//
// This file contains the board/tile/premium constants and process
// configuration for Crossplay.

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
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BoardSize is the width/height of the playing grid
const BoardSize = 15

// RackSize is the number of tiles a player holds at one time
const RackSize = 7

// BingoBonus is the fixed bonus awarded for playing all RackSize
// tiles in one move. Crossplay uses 40, rather than the 50 of
// standard tournament Scrabble; it is a named constant so the
// rules variant is visible at every call site that uses it.
const BingoBonus = 40

// BlankLetter is the rack/tile symbol for a wildcard tile
const BlankLetter = '?'

// Tier names the preconfigured speed/accuracy bands for the
// Monte-Carlo search (C7). Each tier trades simulation count for
// wall-clock time.
type Tier string

const (
	TierBlitz    Tier = "blitz"
	TierFast     Tier = "fast"
	TierStandard Tier = "standard"
	TierDeep     Tier = "deep"
)

// TierParams holds the N/K/early-stop parameters for one tier,
// taken from the DadBot reference implementation's TIERS table.
type TierParams struct {
	N     int     // number of top candidates carried into MC simulation
	K     int     // max simulations per candidate
	ESMin int     // minimum simulations before early stopping is considered
	ESSE  float64 // standard-error threshold for early stopping
}

// Tiers is the fixed parameter table for each search tier.
var Tiers = map[Tier]TierParams{
	TierBlitz:    {N: 7, K: 150, ESMin: 20, ESSE: 1.5},
	TierFast:     {N: 15, K: 400, ESMin: 50, ESSE: 1.2},
	TierStandard: {N: 30, K: 1500, ESMin: 80, ESSE: 0.8},
	TierDeep:     {N: 35, K: 2000, ESMin: 100, ESSE: 0.5},
}

// ESCheckEvery is how often (in simulations) the running standard
// error is recomputed once ESMin has been reached.
const ESCheckEvery = 10

// PositionalDampen scales the C8 positional adjustment when it is
// combined with MC equity. Not named explicitly in any surviving
// DadBot variant; kept as a tunable per the spec's own guidance.
const PositionalDampen = 0.5

// Endgame/near-endgame time budgets, seconds.
const (
	EndgameGlobalBudgetSeconds = 180
	EndgameMinTaskSeconds      = 2
	MCTaskTimeoutSeconds       = 60
)

// NearEndgameBudgetSeconds is keyed by Tier, holding the
// tier-dependent 3/5/15/15s budgets named in the spec.
var NearEndgameBudgetSeconds = map[Tier]float64{
	TierBlitz:    3,
	TierFast:     5,
	TierStandard: 15,
	TierDeep:     15,
}

// PreEndgameBagThreshold is the bag size below which the defensive,
// opened-premium-averse scoring band engages, ahead of the true
// near-endgame band. Supplemented from bot_endgame_expert.py, which
// treats tiles_in_bag < 10 as "defensive" distinctly from the
// narrower 1-8 near-endgame band that triggers exhaustive search.
const PreEndgameBagThreshold = 10

// DefensivePenaltyWeight scales the positional "opened premium"
// penalty while in the pre-endgame defensive band.
const DefensivePenaltyWeight = 2.0

// MidGamePenaltyWeight scales the same penalty outside the
// defensive band.
const MidGamePenaltyWeight = 1.0

// ParityOpponentEmptiesProb tabulates, for each possible tiles-in-bag
// count after our draw (1-7), the probability the opponent goes out
// before we get another turn; used by the near-endgame parity
// adjustment (§4.7). Carried over verbatim from bots/dadbot.py's
// _PARITY_P_OPP_EMPTIES.
var ParityOpponentEmptiesProb = map[int]float64{
	1: 0.97, 2: 0.94, 3: 0.88, 4: 0.78,
	5: 0.62, 6: 0.40, 7: 0.18,
}

// ParityStructuralAdvantage is the constant the parity probability is
// multiplied against (§4.7). Carried over verbatim from
// bots/dadbot.py's _PARITY_STRUCTURAL_ADV.
const ParityStructuralAdvantage = 10.0

// Premium is the kind of multiplier a board square carries.
type Premium int

const (
	NoPremium Premium = iota
	DoubleLetter
	TripleLetter
	DoubleWord
	TripleWord
)

// wordMultiplierGrid and letterMultiplierGrid are GoSkrafl's
// standard 15x15 premium layout (board.go's WORD_MULTIPLIERS_STANDARD
// / LETTER_MULTIPLIERS_STANDARD digit grids), reused verbatim; see
// DESIGN.md Open Questions for why this substitutes for the
// unrecoverable engine/config.py data.
var wordMultiplierGrid = [BoardSize]string{
	"311111131111113",
	"121111111111121",
	"112111111111211",
	"111211111112111",
	"111121111121111",
	"111111111111111",
	"111111111111111",
	"311111121111113",
	"111111111111111",
	"111111111111111",
	"111121111121111",
	"111211111112111",
	"112111111111211",
	"121111111111121",
	"311111131111113",
}

var letterMultiplierGrid = [BoardSize]string{
	"111211111112111",
	"111113111311111",
	"111111212111111",
	"211111121111112",
	"111111111111111",
	"131113111311131",
	"112111212111211",
	"111211111112111",
	"112111212111211",
	"131113111311131",
	"111111111111111",
	"211111121111112",
	"111111212111111",
	"111113111311111",
	"111211111112111",
}

// PremiumTable maps a 1-indexed (row, col) to its Premium.
var PremiumTable = buildPremiumTable()

func buildPremiumTable() map[[2]int]Premium {
	table := map[[2]int]Premium{}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			pos := [2]int{r + 1, c + 1}
			switch wordMultiplierGrid[r][c] {
			case '2':
				table[pos] = DoubleWord
			case '3':
				table[pos] = TripleWord
			}
			if _, already := table[pos]; already {
				continue
			}
			switch letterMultiplierGrid[r][c] {
			case '2':
				table[pos] = DoubleLetter
			case '3':
				table[pos] = TripleLetter
			}
		}
	}
	return table
}

// LetterMultiplier returns the letter multiplier at a 1-indexed
// (row, col), or 1 if the square carries no letter premium.
func LetterMultiplier(row, col int) int {
	switch PremiumTable[[2]int{row, col}] {
	case DoubleLetter:
		return 2
	case TripleLetter:
		return 3
	default:
		return 1
	}
}

// WordMultiplier returns the word multiplier at a 1-indexed
// (row, col), or 1 if the square carries no word premium.
func WordMultiplier(row, col int) int {
	switch PremiumTable[[2]int{row, col}] {
	case DoubleWord:
		return 2
	case TripleWord:
		return 3
	default:
		return 1
	}
}

// DefaultTileSet is the English letter distribution and scores used
// by Crossplay, reusing GoSkrafl's standard English tile set (see
// DESIGN.md Open Questions for why the original config.py data could
// not be recovered from the retrieval pack).
var DefaultTileSet = EnglishTileSet

// EnvConfig holds the BOT_TIER / MC_WORKERS / DADBOT_N / DADBOT_K
// overrides that LoadEnvConfig reads from the process environment,
// optionally loaded first
// from a ".env" file if one is present (mirrors the bots' own
// env-override startup behavior). Absence of a .env file is not an
// error.
type EnvConfig struct {
	Tier      Tier
	MCWorkers int // 0 means "use CPU-derived default"
	DadbotN   int // 0 means "use tier default"
	DadbotK   int // 0 means "use tier default"
}

// LoadEnvConfig loads configuration overrides, logging at info level
// any DADBOT_N / DADBOT_K override that was supplied.
func LoadEnvConfig() EnvConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env file")
	}
	cfg := EnvConfig{Tier: TierStandard}
	if v := os.Getenv("BOT_TIER"); v != "" {
		cfg.Tier = Tier(v)
	}
	if v := os.Getenv("MC_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCWorkers = n
		}
	}
	if v := os.Getenv("DADBOT_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DadbotN = n
			log.Info().Int("DADBOT_N", n).Msg("override")
		}
	}
	if v := os.Getenv("DADBOT_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DadbotK = n
			log.Info().Int("DADBOT_K", n).Msg("override")
		}
	}
	return cfg
}

// InitLogging configures zerolog's default console writer; called
// once from the cmd/crossplay entrypoint.
func InitLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.NewConsoleWriter())
}
