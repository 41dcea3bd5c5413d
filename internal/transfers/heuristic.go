package transfers

import (
	"sort"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/config"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
)

// Suggestion is one candidate like-for-like swap from the greedy scan.
type Suggestion struct {
	Out *squad.Player
	In  *squad.Player
	// Gain is the decayed horizon projection improvement of the swap.
	Gain float64
}

// SuggestTransfers scans every owned player against every same-position
// candidate and returns the best single swaps by decayed projection gain.
// Only swaps that are affordable from bank plus resale, buy-eligible, and
// safe under the club cap are considered; non-positive gains are dropped.
// The scan is a single pass over squad times pool, no solver involved.
func SuggestTransfers(pool *squad.Pool, state *squad.State, cfg config.OptimizerConfig) []Suggestion {
	clubCounts := make(map[string]int)
	owned := make(map[int]bool, len(state.PlayerIDs))
	for _, id := range state.PlayerIDs {
		owned[id] = true
		if p := pool.Get(id); p != nil {
			clubCounts[p.Club]++
		}
	}

	var suggestions []Suggestion
	for _, id := range state.PlayerIDs {
		out := pool.Get(id)
		if out == nil {
			continue
		}
		budget := state.Bank + out.SellPrice
		outScore := out.HorizonScore(state.Gameweek, cfg.Horizon, cfg.Gamma)

		for _, candidateID := range pool.IDs() {
			in := pool.Get(candidateID)
			if owned[in.ID] || in.Position != out.Position {
				continue
			}
			if !in.Status.BuyEligible() {
				continue
			}
			if in.Price > budget+cfg.BudgetEpsilon {
				continue
			}
			// Club headcount after the swap: the outgoing player frees
			// a slot at his own club.
			count := clubCounts[in.Club]
			if in.Club == out.Club {
				count--
			}
			if count >= cfg.Rules.ClubCap {
				continue
			}

			gain := in.HorizonScore(state.Gameweek, cfg.Horizon, cfg.Gamma) - outScore
			if gain <= 0 {
				continue
			}
			suggestions = append(suggestions, Suggestion{Out: out, In: in, Gain: gain})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Gain != suggestions[j].Gain {
			return suggestions[i].Gain > suggestions[j].Gain
		}
		if suggestions[i].In.ID != suggestions[j].In.ID {
			return suggestions[i].In.ID < suggestions[j].In.ID
		}
		return suggestions[i].Out.ID < suggestions[j].Out.ID
	})

	if len(suggestions) > cfg.TopSuggestions {
		suggestions = suggestions[:cfg.TopSuggestions]
	}
	return suggestions
}
