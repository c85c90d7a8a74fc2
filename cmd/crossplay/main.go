// main.go
//
// Copyright (C) 2024 Vilhjálmur Þorsteinsson / Miðeind ehf.
//
// Minimal CLI entry point (§12): exercises the §6 "match" surface
// directly rather than building the full tournament runner sketched
// there. Grounded on main/main.go's simulateGame game-loop shape
// (construct a game, alternate robot turns until IsOver, report
// scores), generalized from GoSkrafl's single-locale RobotWrapper
// dispatch to crossplay's Tier-driven MCRobot/HighScoreRobot choice.

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

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/crossplay/crossplay"
	"github.com/rs/zerolog/log"
)

// loadWordList reads one uppercase word per line from path, skipping
// blank lines, for BuildFromDictionary to pack into a GADDAG.
func loadWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	return words, scanner.Err()
}

// twoLetterWords extracts the length-2 entries of words, since
// BuildFromDictionary and NewDictionary both need the allow-list
// called out explicitly rather than inferred from the general list.
func twoLetterWords(words []string) []string {
	var out []string
	for _, w := range words {
		if len(w) == 2 {
			out = append(out, w)
		}
	}
	return out
}

// newRobot builds the robot named by kind ("high" or "mc"), using
// searcher/pool/tier/seed for "mc".
func newRobot(kind string, searcher *crossplay.Searcher, pool *crossplay.Pool, tier crossplay.Tier, seed uint64) crossplay.Robot {
	if kind == "mc" {
		return crossplay.NewMCRobot(searcher, pool, tier, seed)
	}
	return &crossplay.HighScoreRobot{}
}

func main() {
	wordlist := flag.String("words", "", "path to a newline-delimited word list")
	botA := flag.String("a", "mc", "robot A: 'mc' or 'high'")
	botB := flag.String("b", "high", "robot B: 'mc' or 'high'")
	tierFlag := flag.String("tier", "", "MC search tier: blitz, fast, standard, deep (default from BOT_TIER or standard)")
	seed := flag.Uint64("seed", 42, "RNG seed for MC search reproducibility")
	verbose := flag.Bool("v", true, "print board/rack state after every move")
	flag.Parse()

	cfg := crossplay.LoadEnvConfig()
	crossplay.InitLogging(false)

	tier := cfg.Tier
	if *tierFlag != "" {
		tier = crossplay.Tier(*tierFlag)
	}
	if _, ok := crossplay.Tiers[tier]; !ok {
		log.Fatal().Str("tier", string(tier)).Msg("unknown tier")
	}

	if *wordlist == "" {
		fmt.Fprintln(os.Stderr, "usage: crossplay -words <path> [-a mc|high] [-b mc|high] [-tier blitz|fast|standard|deep] [-seed N]")
		os.Exit(1)
	}
	words, err := loadWordList(*wordlist)
	if err != nil {
		log.Fatal().Err(err).Str("path", *wordlist).Msg("could not read word list")
	}
	gaddag, err := crossplay.BuildFromDictionary(words, twoLetterWords(words))
	if err != nil {
		log.Fatal().Err(err).Msg("could not build dictionary")
	}
	dict := crossplay.NewDictionary(gaddag, twoLetterWords(words))
	dict.BuildHookIndex(words, crossplay.DefaultTileSet.Scores)

	searcher := crossplay.NewSearcher(dict, crossplay.DefaultTileSet, crossplay.NewLeaveEvaluator(nil))
	workers := cfg.MCWorkers
	pool := crossplay.NewPool(workers)
	defer pool.Shutdown(true)

	robotA := newRobot(*botA, searcher, pool, tier, *seed)
	robotB := newRobot(*botB, searcher, pool, tier, *seed+1)

	game := crossplay.NewGame(dict, crossplay.DefaultTileSet)
	game.SetPlayerNames("Robot A", "Robot B")
	ctx := context.Background()

	for turn := 0; ; turn++ {
		state := game.State()
		var decision crossplay.Decision
		if turn%2 == 0 {
			decision = robotA.Decide(ctx, state)
		} else {
			decision = robotB.Decide(ctx, state)
		}
		if !game.ApplyDecision(decision) {
			log.Fatal().Int("turn", turn).Msg("robot produced an illegal decision")
		}
		if *verbose {
			fmt.Print(game)
		}
		if game.IsOver() {
			break
		}
	}
	fmt.Printf("Final score: Robot A %d - %d Robot B\n", game.Scores[0], game.Scores[1])
}
