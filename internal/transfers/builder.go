package transfers

import (
	"fmt"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/config"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/milp"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
)

// Index maps pool players to their decision variables so the extractor can
// read a solution back without re-deriving variable order.
type Index struct {
	IDs        []int
	SquadVar   map[int]milp.VarID
	StartVar   map[int]milp.VarID
	CaptainVar map[int]milp.VarID
	OutVar     map[int]milp.VarID
	InVar      map[int]milp.VarID
	HitsVar    milp.VarID
}

// BuildModel assembles the transfer-planning model for one gameweek window.
//
// Per player the model carries squad membership, starting, and captaincy
// binaries; owned players additionally get a transfer-out binary and
// everyone else a transfer-in binary. Membership is linked to the transfer
// variables so the objective prices each move: keeping an owned player means
// not selling him, acquiring anyone else means buying him. A single integer
// counts transfers beyond the free allowance and is charged the hit penalty.
func BuildModel(pool *squad.Pool, state *squad.State, cfg config.OptimizerConfig) (*milp.Model, *Index, error) {
	if pool.Len() == 0 {
		return nil, nil, fmt.Errorf("player pool is empty")
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid ruleset: %w", err)
	}

	rules := cfg.Rules
	m := milp.NewModel("transfer-plan")
	idx := &Index{
		IDs:        pool.IDs(),
		SquadVar:   make(map[int]milp.VarID, pool.Len()),
		StartVar:   make(map[int]milp.VarID, pool.Len()),
		CaptainVar: make(map[int]milp.VarID, pool.Len()),
		OutVar:     make(map[int]milp.VarID, rules.SquadSize),
		InVar:      make(map[int]milp.VarID, pool.Len()),
	}

	for _, id := range idx.IDs {
		p := pool.Get(id)
		x := m.AddBinary(fmt.Sprintf("squad_%d", id))
		s := m.AddBinary(fmt.Sprintf("start_%d", id))
		c := m.AddBinary(fmt.Sprintf("captain_%d", id))
		idx.SquadVar[id] = x
		idx.StartVar[id] = s
		idx.CaptainVar[id] = c

		if state.Owns(id) {
			idx.OutVar[id] = m.AddBinary(fmt.Sprintf("out_%d", id))
		} else {
			in := m.AddBinary(fmt.Sprintf("in_%d", id))
			if !p.Status.BuyEligible() {
				// Injured, suspended, and unavailable players may be
				// kept but never bought.
				m.SetUpper(in, 0)
			}
			idx.InVar[id] = in
		}
	}
	idx.HitsVar = m.AddInteger("hits", 0, float64(cfg.MaxTransfers))

	// Objective: decayed horizon projection with starters at full weight,
	// bench members discounted, and the captain counted twice.
	for _, id := range idx.IDs {
		p := pool.Get(id)
		score := p.HorizonScore(state.Gameweek, cfg.Horizon, cfg.Gamma)
		m.AddObjective(idx.StartVar[id], score*(1-cfg.BenchWeight))
		m.AddObjective(idx.SquadVar[id], score*cfg.BenchWeight)
		m.AddObjective(idx.CaptainVar[id], score)
	}
	m.AddObjective(idx.HitsVar, -cfg.HitPenalty)

	addSquadConstraints(m, pool, idx, rules)
	addLineupConstraints(m, pool, idx, rules)
	addCaptainConstraints(m, idx)
	addTransferConstraints(m, pool, state, idx, cfg)

	if err := m.Validate(); err != nil {
		return nil, nil, fmt.Errorf("model assembly produced an invalid model: %w", err)
	}
	return m, idx, nil
}

// addSquadConstraints pins the exact position quotas and the per-club
// ownership cap. The quotas partition the pool and sum to the squad size
// (enforced by Rules.Validate), so a separate squad-size row would only
// duplicate them and cost the relaxation its full row rank.
func addSquadConstraints(m *milp.Model, pool *squad.Pool, idx *Index, rules squad.Rules) {
	byPosition := make(map[squad.Position][]milp.Term)
	byClub := make(map[string][]milp.Term)
	var clubs []string

	for _, id := range idx.IDs {
		p := pool.Get(id)
		t := milp.T(idx.SquadVar[id], 1)
		byPosition[p.Position] = append(byPosition[p.Position], t)
		if len(byClub[p.Club]) == 0 {
			clubs = append(clubs, p.Club)
		}
		byClub[p.Club] = append(byClub[p.Club], t)
	}

	for _, pos := range squad.Positions {
		m.AddConstraint(fmt.Sprintf("squad_%s", pos), milp.Equal,
			float64(rules.PositionQuota[pos]), byPosition[pos]...)
	}
	for _, club := range clubs {
		if len(byClub[club]) <= rules.ClubCap {
			continue
		}
		m.AddConstraint(fmt.Sprintf("club_cap_%s", club), milp.LessEq,
			float64(rules.ClubCap), byClub[club]...)
	}
}

// addLineupConstraints pins lineup size, start-implies-membership, the
// per-position formation bounds, and the single starting goalkeeper.
func addLineupConstraints(m *milp.Model, pool *squad.Pool, idx *Index, rules squad.Rules) {
	starters := make([]milp.Term, 0, len(idx.IDs))
	byPosition := make(map[squad.Position][]milp.Term)

	for _, id := range idx.IDs {
		p := pool.Get(id)
		t := milp.T(idx.StartVar[id], 1)
		starters = append(starters, t)
		byPosition[p.Position] = append(byPosition[p.Position], t)

		m.AddConstraint(fmt.Sprintf("start_in_squad_%d", id), milp.LessEq, 0,
			milp.T(idx.StartVar[id], 1), milp.T(idx.SquadVar[id], -1))
	}

	m.AddConstraint("lineup_size", milp.Equal, float64(rules.LineupSize), starters...)
	for _, pos := range squad.Positions {
		m.AddConstraint(fmt.Sprintf("lineup_min_%s", pos), milp.GreaterEq,
			float64(rules.LineupMin[pos]), byPosition[pos]...)
		m.AddConstraint(fmt.Sprintf("lineup_max_%s", pos), milp.LessEq,
			float64(rules.LineupMax[pos]), byPosition[pos]...)
	}
	m.AddConstraint("one_goalkeeper_starts", milp.Equal, 1,
		byPosition[squad.Goalkeeper]...)
}

// addCaptainConstraints requires exactly one captain, drawn from starters.
func addCaptainConstraints(m *milp.Model, idx *Index) {
	captains := make([]milp.Term, 0, len(idx.IDs))
	for _, id := range idx.IDs {
		captains = append(captains, milp.T(idx.CaptainVar[id], 1))
		m.AddConstraint(fmt.Sprintf("captain_starts_%d", id), milp.LessEq, 0,
			milp.T(idx.CaptainVar[id], 1), milp.T(idx.StartVar[id], -1))
	}
	m.AddConstraint("one_captain", milp.Equal, 1, captains...)
}

// addTransferConstraints links membership to moves, caps move count, prices
// hits beyond the free allowance, and enforces the budget.
func addTransferConstraints(m *milp.Model, pool *squad.Pool, state *squad.State, idx *Index, cfg config.OptimizerConfig) {
	outs := make([]milp.Term, 0, len(idx.OutVar))
	budget := make([]milp.Term, 0, len(idx.IDs))

	for _, id := range idx.IDs {
		p := pool.Get(id)
		if out, owned := idx.OutVar[id]; owned {
			// Owned: in the squad exactly when not sold.
			m.AddConstraint(fmt.Sprintf("keep_or_sell_%d", id), milp.Equal, 1,
				milp.T(idx.SquadVar[id], 1), milp.T(out, 1))
			outs = append(outs, milp.T(out, 1))
			budget = append(budget, milp.T(out, -p.SellPrice))
		} else {
			// Not owned: in the squad exactly when bought.
			m.AddConstraint(fmt.Sprintf("membership_is_purchase_%d", id), milp.Equal, 0,
				milp.T(idx.SquadVar[id], 1), milp.T(idx.InVar[id], -1))
			budget = append(budget, milp.T(idx.InVar[id], p.Price))
		}
	}

	m.AddConstraint("transfer_cap", milp.LessEq, float64(cfg.MaxTransfers), outs...)

	// hits >= outs - free, i.e. outs - hits <= free. The lower bound of
	// zero on the hits variable completes the max(0, .) linearization.
	hitTerms := append(append([]milp.Term{}, outs...), milp.T(idx.HitsVar, -1))
	m.AddConstraint("hit_allowance", milp.LessEq, float64(state.FreeTransfers), hitTerms...)

	// Purchases minus sales must fit in the bank. The epsilon absorbs
	// floating-point noise when a plan lands exactly on the budget line.
	m.AddConstraint("budget", milp.LessEq, state.Bank+cfg.BudgetEpsilon, budget...)
}
