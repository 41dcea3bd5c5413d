// Package transfers plans weekly squad changes. It builds the mixed-integer
// model for one planning window, extracts solver output into a decision
// summary, and falls back to a greedy swap scan when the exact solve cannot
// finish.
package transfers

import (
	"sort"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/mathutil"
)

// Method identifies how a result was produced.
type Method string

const (
	// MethodExact means the solver proved the plan optimal.
	MethodExact Method = "exact"
	// MethodIncumbent means the solver timed out holding a feasible plan.
	MethodIncumbent Method = "incumbent"
	// MethodHeuristic means the plan came from the greedy swap scan.
	MethodHeuristic Method = "heuristic"
	// MethodUnchanged means no change to the current squad is recommended
	// or possible.
	MethodUnchanged Method = "unchanged"
)

// PlayerView is the outward-facing projection of a player in a result.
type PlayerView struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Club      string  `json:"club"`
	Position  string  `json:"position"`
	Price     float64 `json:"price"`
	SellPrice float64 `json:"sellPrice"`
	Projected float64 `json:"projected"`
	Ownership float64 `json:"ownership"`
	Status    string  `json:"status"`
}

// Result is the complete outcome of one planning run.
type Result struct {
	Status       string `json:"status"`
	Method       Method `json:"method"`
	SolverStatus string `json:"solverStatus"`
	Gameweek     int    `json:"gameweek"`
	Horizon      int    `json:"horizon"`

	TransfersOut []PlayerView `json:"transfersOut"`
	TransfersIn  []PlayerView `json:"transfersIn"`

	Lineup      []PlayerView `json:"lineup"`
	Bench       []PlayerView `json:"bench"`
	Captain     *PlayerView  `json:"captain,omitempty"`
	ViceCaptain *PlayerView  `json:"viceCaptain,omitempty"`

	// TotalScore is the decayed projection of the recommended squad over
	// the horizon, bench discounted and captain doubled, before hits.
	TotalScore float64 `json:"totalScore"`
	HitCount   int     `json:"hitCount"`
	HitCost    float64 `json:"hitCost"`
	// NetScore is TotalScore less HitCost.
	NetScore float64 `json:"netScore"`
	// BaselineScore is the same measure for the unchanged squad.
	BaselineScore  float64 `json:"baselineScore"`
	NetImprovement float64 `json:"netImprovement"`

	BudgetSpent     float64 `json:"budgetSpent"`
	BudgetRecouped  float64 `json:"budgetRecouped"`
	BudgetRemaining float64 `json:"budgetRemaining"`

	// ShouldRoll recommends banking the free transfer instead of making
	// the proposed moves.
	ShouldRoll bool `json:"shouldRoll"`
}

// viewOf projects a player for output, with the horizon-decayed score as
// its headline number.
func viewOf(p *squad.Player, gameweek, horizon int, gamma float64) PlayerView {
	return PlayerView{
		ID:        p.ID,
		Name:      p.Name,
		Club:      p.Club,
		Position:  p.Position.String(),
		Price:     p.Price,
		SellPrice: p.SellPrice,
		Projected: mathutil.RoundPoints(p.HorizonScore(gameweek, horizon, gamma)),
		Ownership: p.Ownership,
		Status:    p.Status.Label(),
	}
}

// viewsOf projects a player slice in its given order.
func viewsOf(players []*squad.Player, gameweek, horizon int, gamma float64) []PlayerView {
	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, viewOf(p, gameweek, horizon, gamma))
	}
	return views
}

// sortByScore orders players by decayed projection descending, position
// order then lower ID breaking ties, so output order is reproducible.
func sortByScore(players []*squad.Player, gameweek, horizon int, gamma float64) {
	sort.SliceStable(players, func(i, j int) bool {
		si := players[i].HorizonScore(gameweek, horizon, gamma)
		sj := players[j].HorizonScore(gameweek, horizon, gamma)
		if si != sj {
			return si > sj
		}
		if players[i].Position != players[j].Position {
			return players[i].Position < players[j].Position
		}
		return players[i].ID < players[j].ID
	})
}

// sortByPosition orders players positionally (goalkeepers first) with
// projection descending inside each position, the conventional reading
// order for a team sheet.
func sortByPosition(players []*squad.Player, gameweek, horizon int, gamma float64) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Position != players[j].Position {
			return players[i].Position < players[j].Position
		}
		si := players[i].HorizonScore(gameweek, horizon, gamma)
		sj := players[j].HorizonScore(gameweek, horizon, gamma)
		if si != sj {
			return si > sj
		}
		return players[i].ID < players[j].ID
	})
}
