package transfers

import (
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
)

// pickLineup chooses a starting lineup from a full squad by projection.
// Position minimums are filled first from each position's best players,
// then the remaining slots go to the best leftovers whose position is
// still under its maximum. Ties break on lower ID, so the pick is
// deterministic.
func pickLineup(players []*squad.Player, rules squad.Rules, gameweek, horizon int, gamma float64) (lineup, bench []*squad.Player) {
	ranked := make([]*squad.Player, len(players))
	copy(ranked, players)
	sortByScore(ranked, gameweek, horizon, gamma)

	chosen := make(map[int]bool, rules.LineupSize)
	counts := make(map[squad.Position]int)

	byPosition := make(map[squad.Position][]*squad.Player)
	for _, p := range ranked {
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}
	for _, pos := range squad.Positions {
		for i := 0; i < rules.LineupMin[pos] && i < len(byPosition[pos]); i++ {
			p := byPosition[pos][i]
			chosen[p.ID] = true
			counts[pos]++
		}
	}

	for _, p := range ranked {
		if len(chosen) >= rules.LineupSize {
			break
		}
		if chosen[p.ID] || counts[p.Position] >= rules.LineupMax[p.Position] {
			continue
		}
		chosen[p.ID] = true
		counts[p.Position]++
	}

	for _, p := range ranked {
		if chosen[p.ID] {
			lineup = append(lineup, p)
		} else {
			bench = append(bench, p)
		}
	}
	return lineup, bench
}

// pickCaptain returns the highest-projected member of the lineup, and the
// second-highest as vice. Lower ID breaks ties. The lineup must come from
// pickLineup or sortByScore so its order already reflects projection.
func pickCaptain(lineup []*squad.Player, gameweek, horizon int, gamma float64) (captain, vice *squad.Player) {
	ranked := make([]*squad.Player, len(lineup))
	copy(ranked, lineup)
	sortByScore(ranked, gameweek, horizon, gamma)
	if len(ranked) > 0 {
		captain = ranked[0]
	}
	if len(ranked) > 1 {
		vice = ranked[1]
	}
	return captain, vice
}

// scoreLineup computes the decayed horizon projection of a squad with the
// given lineup and captain: starters at full weight, bench discounted, the
// captain's projection counted twice.
func scoreLineup(lineup, bench []*squad.Player, captain *squad.Player, benchWeight float64, gameweek, horizon int, gamma float64) float64 {
	total := 0.0
	for _, p := range lineup {
		total += p.HorizonScore(gameweek, horizon, gamma)
	}
	for _, p := range bench {
		total += benchWeight * p.HorizonScore(gameweek, horizon, gamma)
	}
	if captain != nil {
		total += captain.HorizonScore(gameweek, horizon, gamma)
	}
	return total
}

// resolveSquad maps a set of player IDs to pool players, skipping any ID
// the pool does not know.
func resolveSquad(pool *squad.Pool, ids []int) []*squad.Player {
	players := make([]*squad.Player, 0, len(ids))
	for _, id := range ids {
		if p := pool.Get(id); p != nil {
			players = append(players, p)
		}
	}
	return players
}
