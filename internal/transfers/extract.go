package transfers

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/config"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/milp"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/mathutil"
)

// ExtractResult reads a feasible solver assignment back into a Result.
// Scores and hit counts are recomputed from the selected players rather
// than trusted from the solver objective, so rounding in the relaxation
// cannot leak into reported numbers.
func ExtractResult(logger *zap.Logger, sol *milp.Solution, idx *Index, pool *squad.Pool, state *squad.State, cfg config.OptimizerConfig, method Method) (*Result, error) {
	if !sol.HasAssignment() {
		return nil, fmt.Errorf("solution with status %s carries no assignment", sol.Status)
	}

	var squadPlayers, lineup, bench, outs, ins []*squad.Player
	var captain *squad.Player

	for _, id := range idx.IDs {
		p := pool.Get(id)
		if sol.IsOne(idx.SquadVar[id]) {
			squadPlayers = append(squadPlayers, p)
			if sol.IsOne(idx.StartVar[id]) {
				lineup = append(lineup, p)
			} else {
				bench = append(bench, p)
			}
			if sol.IsOne(idx.CaptainVar[id]) {
				captain = p
			}
		}
		if out, owned := idx.OutVar[id]; owned && sol.IsOne(out) {
			outs = append(outs, p)
		}
		if in, ok := idx.InVar[id]; ok && sol.IsOne(in) {
			ins = append(ins, p)
		}
	}

	if len(squadPlayers) != cfg.Rules.SquadSize {
		return nil, fmt.Errorf("solver selected %d squad members, want %d", len(squadPlayers), cfg.Rules.SquadSize)
	}
	if len(lineup) != cfg.Rules.LineupSize {
		return nil, fmt.Errorf("solver selected %d starters, want %d", len(lineup), cfg.Rules.LineupSize)
	}
	if captain == nil {
		// A feasible assignment must name a captain; salvage by taking
		// the best starter rather than failing the whole run.
		captain, _ = pickCaptain(lineup, state.Gameweek, cfg.Horizon, cfg.Gamma)
		logger.Warn("solution named no captain, using best starter",
			zap.String("op", "transfers.ExtractResult"),
			zap.Int("captain", captain.ID),
		)
	}
	vice := pickVice(lineup, captain, state.Gameweek, cfg.Horizon, cfg.Gamma)

	// Hits are recomputed from the realized move count. The solver's hits
	// variable should agree; a mismatch means a loose external solver.
	hitCount := mathutil.MaxInt(0, len(outs)-state.FreeTransfers)
	if solverHits := int(sol.Value(idx.HitsVar) + 0.5); solverHits != hitCount {
		logger.Warn("solver hit count disagrees with realized transfers",
			zap.String("op", "transfers.ExtractResult"),
			zap.Int("solverHits", solverHits),
			zap.Int("realizedHits", hitCount),
		)
	}

	sortByPosition(lineup, state.Gameweek, cfg.Horizon, cfg.Gamma)
	sortByPosition(bench, state.Gameweek, cfg.Horizon, cfg.Gamma)
	sortByScore(outs, state.Gameweek, cfg.Horizon, cfg.Gamma)
	sortByScore(ins, state.Gameweek, cfg.Horizon, cfg.Gamma)

	return assembleResult(lineup, bench, captain, vice, outs, ins, hitCount, method, sol.Status.String(), pool, state, cfg), nil
}

// pickVice returns the highest-projected starter other than the captain,
// lower ID breaking ties.
func pickVice(lineup []*squad.Player, captain *squad.Player, gameweek, horizon int, gamma float64) *squad.Player {
	ranked := make([]*squad.Player, len(lineup))
	copy(ranked, lineup)
	sortByScore(ranked, gameweek, horizon, gamma)
	for _, p := range ranked {
		if captain == nil || p.ID != captain.ID {
			return p
		}
	}
	return nil
}

// baselineScore evaluates the unchanged squad: the reported lineup if one
// was provided and complete, otherwise a lineup picked by projection, with
// the best starter captained.
func baselineScore(pool *squad.Pool, state *squad.State, cfg config.OptimizerConfig) float64 {
	owned := resolveSquad(pool, state.PlayerIDs)

	var lineup, bench []*squad.Player
	if len(state.LineupIDs) == cfg.Rules.LineupSize {
		lineup = resolveSquad(pool, state.LineupIDs)
		starting := make(map[int]bool, len(lineup))
		for _, p := range lineup {
			starting[p.ID] = true
		}
		for _, p := range owned {
			if !starting[p.ID] {
				bench = append(bench, p)
			}
		}
	} else {
		lineup, bench = pickLineup(owned, cfg.Rules, state.Gameweek, cfg.Horizon, cfg.Gamma)
	}

	captain, _ := pickCaptain(lineup, state.Gameweek, cfg.Horizon, cfg.Gamma)
	return scoreLineup(lineup, bench, captain, cfg.BenchWeight, state.Gameweek, cfg.Horizon, cfg.Gamma)
}

// assembleResult computes the score, budget, and roll-recommendation fields
// shared by every result-producing path.
func assembleResult(lineup, bench []*squad.Player, captain, vice *squad.Player, outs, ins []*squad.Player, hitCount int, method Method, solverStatus string, pool *squad.Pool, state *squad.State, cfg config.OptimizerConfig) *Result {
	gw, horizon, gamma := state.Gameweek, cfg.Horizon, cfg.Gamma

	total := scoreLineup(lineup, bench, captain, cfg.BenchWeight, gw, horizon, gamma)
	hitCost := float64(hitCount) * cfg.HitPenalty
	net := total - hitCost
	baseline := baselineScore(pool, state, cfg)
	improvement := net - baseline

	spent, recouped := 0.0, 0.0
	for _, p := range ins {
		spent += p.Price
	}
	for _, p := range outs {
		recouped += p.SellPrice
	}

	r := &Result{
		Status:          "success",
		Method:          method,
		SolverStatus:    solverStatus,
		Gameweek:        gw,
		Horizon:         horizon,
		TransfersOut:    viewsOf(outs, gw, horizon, gamma),
		TransfersIn:     viewsOf(ins, gw, horizon, gamma),
		Lineup:          viewsOf(lineup, gw, horizon, gamma),
		Bench:           viewsOf(bench, gw, horizon, gamma),
		TotalScore:      mathutil.RoundPoints(total),
		HitCount:        hitCount,
		HitCost:         mathutil.RoundPoints(hitCost),
		NetScore:        mathutil.RoundPoints(net),
		BaselineScore:   mathutil.RoundPoints(baseline),
		NetImprovement:  mathutil.RoundPoints(improvement),
		BudgetSpent:     mathutil.RoundPrice(spent),
		BudgetRecouped:  mathutil.RoundPrice(recouped),
		BudgetRemaining: mathutil.RoundPrice(state.Bank + recouped - spent),
		ShouldRoll:      len(ins) > 0 && improvement < cfg.InertiaThreshold,
	}
	if captain != nil {
		v := viewOf(captain, gw, horizon, gamma)
		r.Captain = &v
	}
	if vice != nil {
		v := viewOf(vice, gw, horizon, gamma)
		r.ViceCaptain = &v
	}
	return r
}
